package ingest

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/researchaccelerator-hub/youtube-tracker/client"
	"github.com/researchaccelerator-hub/youtube-tracker/model"
	"github.com/researchaccelerator-hub/youtube-tracker/store"
	"github.com/researchaccelerator-hub/youtube-tracker/telemetry"
)

// Result summarizes one ingestion run.
type Result struct {
	ChannelID string `json:"channelId"`
	Added     int    `json:"added"`
}

// Ingestor coordinates resolver, walker, detail fetcher and store for one
// ingestion run. Runs against the same channel serialize on a per-channel
// lock so concurrent load-mutate-save cycles cannot clobber each other.
type Ingestor struct {
	store      store.Store
	locks      *store.ChannelLocker
	resolver   *Resolver
	walker     *Walker
	details    *DetailFetcher
	maxRecords int
	pageSize   int64

	now func() time.Time
}

// NewIngestor wires an ingestor from its collaborators.
func NewIngestor(api client.YouTubeAPI, st store.Store, quota *QuotaTracker, maxRecords, pageSize, batchSize int) *Ingestor {
	return &Ingestor{
		store:      st,
		locks:      store.NewChannelLocker(),
		resolver:   NewResolver(api, quota),
		walker:     NewWalker(api, quota),
		details:    NewDetailFetcher(api, quota, batchSize),
		maxRecords: maxRecords,
		pageSize:   int64(pageSize),
		now:        time.Now,
	}
}

// Resolver exposes the ingestor's resolver for the read-only API surface.
func (ing *Ingestor) Resolver() *Resolver { return ing.resolver }

// Ingest runs one ingestion for input (handle or canonical id). Incremental
// runs walk down to the stored cursor and advance it; backfill runs walk
// back to since and leave the cursor alone.
func (ing *Ingestor) Ingest(ctx context.Context, input string, since time.Time, mode model.IngestMode) (Result, error) {
	runID := uuid.New().String()
	logger := log.With().Str("run_id", runID).Str("mode", mode.String()).Logger()

	channelID, err := ing.resolver.Resolve(ctx, input)
	if err != nil {
		return Result{}, err
	}
	logger = logger.With().Str("channel_id", channelID).Logger()

	unlock := ing.locks.Lock(channelID)
	defer unlock()

	snap, err := ing.store.Load()
	if err != nil {
		return Result{}, err
	}
	state := snap.Channel(channelID)

	ch, err := ing.resolver.FetchChannel(ctx, channelID)
	if err != nil {
		telemetry.IngestRuns.WithLabelValues(mode.String(), "error").Inc()
		return Result{}, err
	}

	opts := WalkOptions{
		Mode:       mode,
		Since:      since,
		MaxRecords: ing.maxRecords,
		PageSize:   ing.pageSize,
	}
	if mode == model.Incremental {
		opts.CursorVideoID = state.LastSeenVideoID
	}

	candidates, err := ing.walker.Walk(ctx, ch.UploadsPlaylistID, opts)
	if err != nil {
		telemetry.IngestRuns.WithLabelValues(mode.String(), "error").Inc()
		return Result{}, err
	}

	if len(candidates) == 0 {
		logger.Info().Msg("No new videos; store untouched")
		telemetry.IngestRuns.WithLabelValues(mode.String(), "ok").Inc()
		return Result{ChannelID: channelID, Added: 0}, nil
	}

	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.VideoID
	}

	records, err := ing.details.FetchDetails(ctx, ids)
	if err != nil {
		telemetry.IngestRuns.WithLabelValues(mode.String(), "error").Inc()
		return Result{}, err
	}

	for _, rec := range records {
		state.Videos[rec.VideoID] = rec
	}

	// The cursor tracks feed position, not store membership: it advances
	// to the newest walked candidate even if the detail fetch dropped
	// that particular video.
	if mode == model.Incremental {
		newest := candidates[len(candidates)-1]
		state.LastSeenVideoID = newest.VideoID
		state.LastPublishedAt = newest.PublishedAt
	}

	if !state.Meta.Fresh(ing.now()) {
		state.Meta = MetaFromChannel(ch, ing.now())
	}

	if err := ing.store.Save(snap); err != nil {
		telemetry.IngestRuns.WithLabelValues(mode.String(), "error").Inc()
		return Result{}, err
	}

	telemetry.VideosIngested.WithLabelValues(mode.String()).Add(float64(len(records)))
	telemetry.IngestRuns.WithLabelValues(mode.String(), "ok").Inc()
	logger.Info().
		Int("walked", len(candidates)).
		Int("added", len(records)).
		Msg("Ingestion complete")

	return Result{ChannelID: channelID, Added: len(records)}, nil
}

// ChannelRows resolves input and returns the stored rows for that channel.
// It never calls the platform API for a canonical id with stored data.
func (ing *Ingestor) ChannelRows(ctx context.Context, input string) (string, []model.VideoRecord, error) {
	channelID, err := ing.resolver.Resolve(ctx, input)
	if err != nil {
		return "", nil, err
	}

	snap, err := ing.store.Load()
	if err != nil {
		return "", nil, err
	}
	state, ok := snap[channelID]
	if !ok || state == nil {
		return channelID, nil, nil
	}
	return channelID, state.Rows(), nil
}

// Meta returns cached channel metadata, refreshing it from upstream when
// absent or older than the freshness window.
func (ing *Ingestor) Meta(ctx context.Context, input string) (*model.ChannelMeta, error) {
	channelID, err := ing.resolver.Resolve(ctx, input)
	if err != nil {
		return nil, err
	}

	unlock := ing.locks.Lock(channelID)
	defer unlock()

	snap, err := ing.store.Load()
	if err != nil {
		return nil, err
	}
	state := snap.Channel(channelID)

	if state.Meta.Fresh(ing.now()) {
		return state.Meta, nil
	}

	ch, err := ing.resolver.FetchChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	state.Meta = MetaFromChannel(ch, ing.now())

	if err := ing.store.Save(snap); err != nil {
		return nil, err
	}
	return state.Meta, nil
}
