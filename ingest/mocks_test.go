package ingest

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/researchaccelerator-hub/youtube-tracker/client"
	"github.com/researchaccelerator-hub/youtube-tracker/errs"
	"github.com/researchaccelerator-hub/youtube-tracker/model"
)

// fakeAPI implements client.YouTubeAPI against an in-memory feed. The feed
// slice is newest first, matching the real API's ordering. Page tokens are
// numeric offsets.
type fakeAPI struct {
	mu sync.Mutex

	channel     *client.Channel
	feed        []client.PlaylistItem
	videos      map[string]model.VideoRecord
	searchHit   string
	searchPages []*client.SearchPage

	searchChannelCalls int
	getChannelCalls    int
	playlistCalls      int
	searchVideoCalls   int
	detailBatches      [][]string

	playlistDelay   time.Duration
	inflightWalks   int
	maxInflight     int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		channel: &client.Channel{
			ID:                "UCabcdefghijklmnopqrstuv",
			Title:             "Fake Channel",
			UploadsPlaylistID: "UUabcdefghijklmnopqrstuv",
			SubscriberCount:   1234,
		},
		videos: make(map[string]model.VideoRecord),
	}
}

func (f *fakeAPI) SearchChannel(_ context.Context, term string) (string, error) {
	f.mu.Lock()
	f.searchChannelCalls++
	f.mu.Unlock()
	if f.searchHit == "" {
		return "", errs.NotFoundf("no channel found for %q", term)
	}
	return f.searchHit, nil
}

func (f *fakeAPI) GetChannel(_ context.Context, channelID string) (*client.Channel, error) {
	f.mu.Lock()
	f.getChannelCalls++
	f.mu.Unlock()
	if f.channel == nil || f.channel.ID != channelID {
		return nil, errs.NotFoundf("channel not found: %s", channelID)
	}
	ch := *f.channel
	return &ch, nil
}

func (f *fakeAPI) ListPlaylistItems(_ context.Context, _, pageToken string, pageSize int64) (*client.PlaylistPage, error) {
	f.mu.Lock()
	f.playlistCalls++
	f.inflightWalks++
	if f.inflightWalks > f.maxInflight {
		f.maxInflight = f.inflightWalks
	}
	delay := f.playlistDelay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	defer func() {
		f.mu.Lock()
		f.inflightWalks--
		f.mu.Unlock()
	}()

	start := 0
	if pageToken != "" {
		start, _ = strconv.Atoi(pageToken)
	}
	end := start + int(pageSize)
	if end > len(f.feed) {
		end = len(f.feed)
	}
	if start >= len(f.feed) {
		return &client.PlaylistPage{}, nil
	}

	page := &client.PlaylistPage{Items: f.feed[start:end]}
	if end < len(f.feed) {
		page.NextPageToken = strconv.Itoa(end)
	}
	return page, nil
}

func (f *fakeAPI) ListVideosByIDs(_ context.Context, ids []string) ([]model.VideoRecord, error) {
	f.mu.Lock()
	batch := make([]string, len(ids))
	copy(batch, ids)
	f.detailBatches = append(f.detailBatches, batch)
	f.mu.Unlock()

	var records []model.VideoRecord
	for _, id := range ids {
		if rec, ok := f.videos[id]; ok {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (f *fakeAPI) SearchVideos(_ context.Context, _ string, _ time.Time, pageToken string) (*client.SearchPage, error) {
	f.mu.Lock()
	f.searchVideoCalls++
	f.mu.Unlock()

	idx := 0
	if pageToken != "" {
		idx, _ = strconv.Atoi(pageToken)
	}
	if idx >= len(f.searchPages) {
		return &client.SearchPage{}, nil
	}
	page := &client.SearchPage{Items: f.searchPages[idx].Items}
	if idx+1 < len(f.searchPages) {
		page.NextPageToken = strconv.Itoa(idx + 1)
	}
	return page, nil
}

var _ client.YouTubeAPI = (*fakeAPI)(nil)

// newFeed builds a newest-first feed of n items. Item i (0-based, newest)
// has id "vid-<n-i>" and is published i hours before base, so "vid-<n>" is
// the newest video.
func newFeed(n int, base time.Time) []client.PlaylistItem {
	feed := make([]client.PlaylistItem, n)
	for i := 0; i < n; i++ {
		feed[i] = client.PlaylistItem{
			VideoID:     "vid-" + strconv.Itoa(n-i),
			PublishedAt: base.Add(-time.Duration(i) * time.Hour),
		}
	}
	return feed
}

// stockVideos builds detail records for every feed item.
func stockVideos(f *fakeAPI, channelID, channelTitle string) {
	for _, item := range f.feed {
		f.videos[item.VideoID] = model.VideoRecord{
			VideoID:      item.VideoID,
			Title:        "Video " + item.VideoID,
			PublishedAt:  item.PublishedAt,
			ChannelID:    channelID,
			ChannelTitle: channelTitle,
			Views:        100,
		}
	}
}

// memStore is an in-memory store.Store recording save counts.
type memStore struct {
	mu    sync.Mutex
	snap  model.Snapshot
	saves int
}

func newMemStore() *memStore {
	return &memStore{snap: model.Snapshot{}}
}

func (m *memStore) Load() (model.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap, nil
}

func (m *memStore) Save(snap model.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = snap
	m.saves++
	return nil
}

func (m *memStore) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
