// Package metrics derives day-bucketed counts and top-N views from a row
// set. Everything is recomputed from the full stored history on each call;
// the store is local and small, so incremental aggregates are not worth
// their bookkeeping.
package metrics

import (
	"sort"
	"time"

	"github.com/researchaccelerator-hub/youtube-tracker/model"
)

// TopVideos is how many videos the top-by-views list carries.
const TopVideos = 10

// TopChannelCount is how many channels the keyword report aggregates.
const TopChannelCount = 5

// Report is the derived view over a window of rows.
type Report struct {
	ByDay map[string]int      `json:"byDay"`
	Rows  []model.VideoRecord `json:"rows"`
	Top   []model.VideoRecord `json:"top"`
	Total int                 `json:"total"`
}

// Compute filters rows to publishedAt within [now-days, now), sorts them
// ascending, buckets by UTC calendar day and picks the top videos by views.
func Compute(rows []model.VideoRecord, days int, now time.Time) *Report {
	cutoff := now.Add(-time.Duration(days) * 24 * time.Hour)

	filtered := make([]model.VideoRecord, 0, len(rows))
	for _, r := range rows {
		if r.PublishedAt.Before(cutoff) || !r.PublishedAt.Before(now) {
			continue
		}
		filtered = append(filtered, r)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].PublishedAt.Before(filtered[j].PublishedAt)
	})

	byDay := make(map[string]int)
	for _, r := range filtered {
		byDay[r.PublishedAt.UTC().Format("2006-01-02")]++
	}

	top := make([]model.VideoRecord, len(filtered))
	copy(top, filtered)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Views > top[j].Views
	})
	if len(top) > TopVideos {
		top = top[:TopVideos]
	}

	return &Report{
		ByDay: byDay,
		Rows:  filtered,
		Top:   top,
		Total: len(filtered),
	}
}

// ChannelAgg is one row of the keyword report's per-channel aggregation.
type ChannelAgg struct {
	Channel string `json:"channel"`
	Count   int    `json:"count"`
	Views   int64  `json:"views"`
}

// TopChannels groups rows by channel title (falling back to channel id,
// then "unknown"), summing count and views, descending by count.
func TopChannels(rows []model.VideoRecord, n int) []ChannelAgg {
	if n <= 0 {
		n = TopChannelCount
	}

	idx := make(map[string]int)
	var aggs []ChannelAgg
	for _, r := range rows {
		name := r.ChannelTitle
		if name == "" {
			name = r.ChannelID
		}
		if name == "" {
			name = "unknown"
		}
		i, ok := idx[name]
		if !ok {
			i = len(aggs)
			idx[name] = i
			aggs = append(aggs, ChannelAgg{Channel: name})
		}
		aggs[i].Count++
		aggs[i].Views += r.Views
	}

	sort.SliceStable(aggs, func(i, j int) bool {
		return aggs[i].Count > aggs[j].Count
	})
	if len(aggs) > n {
		aggs = aggs[:n]
	}
	return aggs
}

// KeywordReport is the keyword path's derived view: the channel report plus
// the cross-channel aggregation.
type KeywordReport struct {
	Query string `json:"query"`
	*Report
	TopChannels []ChannelAgg `json:"topChannels"`
}

// ComputeKeyword assembles the keyword report for rows matched by query.
func ComputeKeyword(query string, rows []model.VideoRecord, days int, now time.Time) *KeywordReport {
	report := Compute(rows, days, now)
	return &KeywordReport{
		Query:       query,
		Report:      report,
		TopChannels: TopChannels(report.Rows, TopChannelCount),
	}
}
