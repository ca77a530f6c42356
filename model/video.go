// Package model defines the data types shared across the tracker:
// video records, per-channel state, and the persisted snapshot.
package model

import "time"

// VideoRecord is a fully hydrated video. VideoID is the primary key;
// re-ingesting the same id replaces the stored record wholesale.
type VideoRecord struct {
	VideoID      string    `json:"videoId"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	PublishedAt  time.Time `json:"publishedAt"`
	ChannelID    string    `json:"channelId"`
	ChannelTitle string    `json:"channelTitle"`
	Duration     string    `json:"duration"`
	Views        int64     `json:"views"`
	Likes        int64     `json:"likes"`
	Comments     int64     `json:"comments"`
}

// ChannelStats holds the aggregate counters reported for a channel.
type ChannelStats struct {
	SubscriberCount int64 `json:"subscriberCount"`
	VideoCount      int64 `json:"videoCount"`
	ViewCount       int64 `json:"viewCount"`
}

// ChannelMeta is cached channel metadata. It is overwritten wholesale on
// refresh; FetchedAt drives the freshness check.
type ChannelMeta struct {
	ChannelID   string            `json:"channelId"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Thumbnails  map[string]string `json:"thumbnails,omitempty"`
	Stats       ChannelStats      `json:"stats"`
	FetchedAt   time.Time         `json:"fetchedAt"`
}

// MetaFreshness is how long cached channel metadata is served without a
// refresh.
const MetaFreshness = 24 * time.Hour

// Fresh reports whether the cached metadata is still within the freshness
// window at the given time.
func (m *ChannelMeta) Fresh(now time.Time) bool {
	return m != nil && now.Sub(m.FetchedAt) < MetaFreshness
}

// ChannelState is everything the tracker persists for one channel.
//
// LastSeenVideoID is the cursor: the most recently published video id
// observed by the last incremental ingestion. Backfill runs never touch it,
// since backfill adds older records without implying anything about newer
// ones.
type ChannelState struct {
	Videos          map[string]VideoRecord `json:"videos"`
	LastSeenVideoID string                 `json:"lastSeenVideoId,omitempty"`
	LastPublishedAt time.Time              `json:"lastPublishedAt,omitempty"`
	Meta            *ChannelMeta           `json:"meta,omitempty"`
}

// NewChannelState returns an empty state ready for merging.
func NewChannelState() *ChannelState {
	return &ChannelState{Videos: make(map[string]VideoRecord)}
}

// Rows returns the stored videos as a slice, in no particular order.
func (s *ChannelState) Rows() []VideoRecord {
	rows := make([]VideoRecord, 0, len(s.Videos))
	for _, v := range s.Videos {
		rows = append(rows, v)
	}
	return rows
}

// Snapshot is the whole persisted document, keyed by channel id.
type Snapshot map[string]*ChannelState

// Channel returns the state for channelID, creating an empty one if absent.
func (s Snapshot) Channel(channelID string) *ChannelState {
	st, ok := s[channelID]
	if !ok || st == nil {
		st = NewChannelState()
		s[channelID] = st
	}
	if st.Videos == nil {
		st.Videos = make(map[string]VideoRecord)
	}
	return st
}
