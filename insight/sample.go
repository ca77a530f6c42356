// Package insight turns a window of video rows into an LLM-generated
// narrative, trying providers in order with a bounded timeout per call.
package insight

import (
	"fmt"
	"sort"
	"strings"

	"github.com/researchaccelerator-hub/youtube-tracker/model"
)

// SampleRow is the size- and field-capped projection handed to a provider:
// publish date truncated to the day, title truncated to a fixed length,
// engagement numbers and the channel title.
type SampleRow struct {
	Day      string `json:"day"`
	Title    string `json:"title"`
	Channel  string `json:"channel"`
	Views    int64  `json:"views"`
	Likes    int64  `json:"likes"`
	Comments int64  `json:"comments"`
}

// BuildSample projects rows into sample rows, oldest first, capped at
// maxRows. When truncating, the most recent rows are kept.
func BuildSample(rows []model.VideoRecord, maxRows, titleLen int) []SampleRow {
	sorted := make([]model.VideoRecord, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.Before(sorted[j].PublishedAt)
	})

	if maxRows > 0 && len(sorted) > maxRows {
		sorted = sorted[len(sorted)-maxRows:]
	}

	sample := make([]SampleRow, 0, len(sorted))
	for _, r := range sorted {
		sample = append(sample, SampleRow{
			Day:      r.PublishedAt.UTC().Format("2006-01-02"),
			Title:    truncate(r.Title, titleLen),
			Channel:  r.ChannelTitle,
			Views:    r.Views,
			Likes:    r.Likes,
			Comments: r.Comments,
		})
	}
	return sample
}

func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// buildPrompt renders the sample as one line per row plus the ask.
func buildPrompt(sample []SampleRow, days int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Below are video uploads from the last %d days, one per line, oldest first:\n\n", days)
	for _, row := range sample {
		fmt.Fprintf(&b, "%s | %s | %s | views=%d likes=%d comments=%d\n",
			row.Day, row.Channel, row.Title, row.Views, row.Likes, row.Comments)
	}
	fmt.Fprintf(&b, "\nWrite a short narrative report on this channel activity: upload cadence, standout videos by engagement, and any notable trend over the period. Plain prose, no bullet lists.")
	return b.String()
}
