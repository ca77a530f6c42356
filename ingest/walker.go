package ingest

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/researchaccelerator-hub/youtube-tracker/client"
	"github.com/researchaccelerator-hub/youtube-tracker/model"
)

const (
	defaultPageSize   = 50
	defaultMaxRecords = 500
)

// Candidate is a feed entry the walker decided is in the slice of interest.
type Candidate struct {
	VideoID     string
	PublishedAt time.Time
}

// WalkOptions bound a walk. CursorVideoID only applies in Incremental mode;
// Backfill walks past the cursor on purpose to recover gaps.
type WalkOptions struct {
	Mode          model.IngestMode
	CursorVideoID string
	Since         time.Time
	MaxRecords    int
	PageSize      int64
}

// Walker pages through an uploads feed, which the API returns newest first,
// and keeps only the slice of interest.
type Walker struct {
	api   client.YouTubeAPI
	quota *QuotaTracker
}

// NewWalker returns a walker on the given API and quota tracker.
func NewWalker(api client.YouTubeAPI, quota *QuotaTracker) *Walker {
	return &Walker{api: api, quota: quota}
}

// Walk accumulates feed items until a stop condition fires, then returns
// them oldest first. Stop conditions, checked per item in page order:
//
//  1. cursor match (Incremental only) - stop, excluding the item; everything
//     collected so far is newer than the cursor
//  2. published strictly before Since - stop, excluding the item
//  3. buffer reached MaxRecords - stop, including the item
//
// The result is idempotent given the same cursor and cutoff.
func (w *Walker) Walk(ctx context.Context, playlistID string, opts WalkOptions) ([]Candidate, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > defaultPageSize {
		pageSize = defaultPageSize
	}
	maxRecords := opts.MaxRecords
	if maxRecords <= 0 {
		maxRecords = defaultMaxRecords
	}

	var buf []Candidate
	pageToken := ""
	done := false

	for !done {
		if err := w.quota.Spend(CostPlaylistItems); err != nil {
			return nil, err
		}

		page, err := w.api.ListPlaylistItems(ctx, playlistID, pageToken, pageSize)
		if err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			if opts.Mode == model.Incremental && opts.CursorVideoID != "" && item.VideoID == opts.CursorVideoID {
				done = true
				break
			}
			if !opts.Since.IsZero() && item.PublishedAt.Before(opts.Since) {
				done = true
				break
			}
			buf = append(buf, Candidate{VideoID: item.VideoID, PublishedAt: item.PublishedAt})
			if len(buf) >= maxRecords {
				done = true
				break
			}
		}

		if page.NextPageToken == "" || len(page.Items) == 0 {
			break
		}
		pageToken = page.NextPageToken
	}

	// The feed is newest first; downstream wants chronological order.
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}

	log.Debug().
		Str("playlist_id", playlistID).
		Str("mode", opts.Mode.String()).
		Int("candidates", len(buf)).
		Msg("Feed walk complete")

	return buf, nil
}
