// Package client wraps the YouTube Data API behind a narrow interface so
// the ingestion core can be exercised against test doubles.
package client

import (
	"context"
	"time"

	"github.com/researchaccelerator-hub/youtube-tracker/model"
)

// Channel is the upstream view of a channel, including the uploads playlist
// id the feed walker pages through.
type Channel struct {
	ID                string
	Title             string
	Description       string
	Thumbnails        map[string]string
	SubscriberCount   int64
	VideoCount        int64
	ViewCount         int64
	UploadsPlaylistID string
}

// PlaylistItem is one entry of the uploads feed: just enough to decide
// whether the item is in the slice of interest.
type PlaylistItem struct {
	VideoID     string
	PublishedAt time.Time
}

// PlaylistPage is one page of the uploads feed, newest first.
type PlaylistPage struct {
	Items         []PlaylistItem
	NextPageToken string
}

// SearchItem is one keyword-search hit. Title and description carry enough
// text for the client-side AND filter.
type SearchItem struct {
	VideoID     string
	Title       string
	Description string
}

// SearchPage is one page of keyword-search results, newest first.
type SearchPage struct {
	Items         []SearchItem
	NextPageToken string
}

// YouTubeAPI is the boundary the core consumes. Implementations must return
// pages newest-first, matching the platform's feed ordering.
type YouTubeAPI interface {
	// SearchChannel resolves a free-form term to a channel id.
	SearchChannel(ctx context.Context, term string) (string, error)

	// GetChannel fetches channel metadata plus the uploads playlist id.
	GetChannel(ctx context.Context, channelID string) (*Channel, error)

	// ListPlaylistItems fetches one page of a playlist. An empty
	// pageToken requests the first page.
	ListPlaylistItems(ctx context.Context, playlistID, pageToken string, pageSize int64) (*PlaylistPage, error)

	// ListVideosByIDs hydrates up to 50 video ids into full records.
	// Missing or deleted ids are silently absent from the result.
	ListVideosByIDs(ctx context.Context, ids []string) ([]model.VideoRecord, error)

	// SearchVideos fetches one page of a date-bounded keyword search.
	SearchVideos(ctx context.Context, query string, publishedAfter time.Time, pageToken string) (*SearchPage, error)
}
