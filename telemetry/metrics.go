// Package telemetry exposes the tracker's Prometheus collectors.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QuotaUnitsSpent counts YouTube API quota units spent by this process.
	QuotaUnitsSpent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tracker_quota_units_spent_total",
		Help: "YouTube API quota units spent.",
	})

	// VideosIngested counts video records merged into the store, by mode.
	VideosIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_videos_ingested_total",
		Help: "Video records merged into the store.",
	}, []string{"mode"})

	// IngestRuns counts completed ingestion runs, by mode and outcome.
	IngestRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tracker_ingest_runs_total",
		Help: "Completed ingestion runs.",
	}, []string{"mode", "outcome"})

	// InsightFallbacks counts narrative requests that fell through to a
	// secondary provider.
	InsightFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tracker_insight_fallbacks_total",
		Help: "Narrative generations that required a provider fallback.",
	})
)
