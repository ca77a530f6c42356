package ingest

import (
	"context"

	"github.com/researchaccelerator-hub/youtube-tracker/client"
	"github.com/researchaccelerator-hub/youtube-tracker/model"
)

// maxBatchSize is the hard ceiling the videos.list endpoint accepts per
// call. Exceeding it fails the whole batch upstream, so a larger configured
// size is clamped, never passed through.
const maxBatchSize = 50

// DetailFetcher hydrates video ids into full records in bounded batches.
type DetailFetcher struct {
	api       client.YouTubeAPI
	quota     *QuotaTracker
	batchSize int
}

// NewDetailFetcher returns a fetcher issuing batches of at most batchSize
// ids, clamped to the API ceiling of 50.
func NewDetailFetcher(api client.YouTubeAPI, quota *QuotaTracker, batchSize int) *DetailFetcher {
	if batchSize <= 0 || batchSize > maxBatchSize {
		batchSize = maxBatchSize
	}
	return &DetailFetcher{api: api, quota: quota, batchSize: batchSize}
}

// FetchDetails resolves ids into records, one batch at a time. Ids the API
// no longer knows about are silently dropped.
func (f *DetailFetcher) FetchDetails(ctx context.Context, ids []string) ([]model.VideoRecord, error) {
	records := make([]model.VideoRecord, 0, len(ids))

	for start := 0; start < len(ids); start += f.batchSize {
		end := start + f.batchSize
		if end > len(ids) {
			end = len(ids)
		}

		if err := f.quota.Spend(CostVideos); err != nil {
			return nil, err
		}
		batch, err := f.api.ListVideosByIDs(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		records = append(records, batch...)
	}

	return records, nil
}
