package insight

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchaccelerator-hub/youtube-tracker/model"
)

var sampleBase = time.Date(2026, 8, 1, 15, 30, 0, 0, time.UTC)

func TestBuildSampleOrdersOldestFirst(t *testing.T) {
	rows := []model.VideoRecord{
		{VideoID: "new", Title: "Newest", PublishedAt: sampleBase.Add(48 * time.Hour)},
		{VideoID: "old", Title: "Oldest", PublishedAt: sampleBase},
		{VideoID: "mid", Title: "Middle", PublishedAt: sampleBase.Add(24 * time.Hour)},
	}

	sample := BuildSample(rows, 10, 80)
	require.Len(t, sample, 3)
	assert.Equal(t, "Oldest", sample[0].Title)
	assert.Equal(t, "Middle", sample[1].Title)
	assert.Equal(t, "Newest", sample[2].Title)
	assert.Equal(t, "2026-08-01", sample[0].Day, "dates are truncated to the day")
}

func TestBuildSampleKeepsMostRecentOnTruncation(t *testing.T) {
	var rows []model.VideoRecord
	for i := 0; i < 20; i++ {
		rows = append(rows, model.VideoRecord{
			VideoID:     "v" + strconv.Itoa(i),
			Title:       "t" + strconv.Itoa(i),
			PublishedAt: sampleBase.Add(time.Duration(i) * time.Hour),
		})
	}

	sample := BuildSample(rows, 5, 80)
	require.Len(t, sample, 5)
	assert.Equal(t, "t15", sample[0].Title, "truncation drops the oldest rows")
	assert.Equal(t, "t19", sample[4].Title)
}

func TestBuildSampleTruncatesTitles(t *testing.T) {
	long := strings.Repeat("x", 200)
	rows := []model.VideoRecord{{VideoID: "v", Title: long, PublishedAt: sampleBase}}

	sample := BuildSample(rows, 10, 80)
	assert.Len(t, sample[0].Title, 80)
}

func TestBuildPromptMentionsWindowAndRows(t *testing.T) {
	sample := []SampleRow{
		{Day: "2026-08-01", Title: "Launch video", Channel: "Acme", Views: 1000, Likes: 10, Comments: 3},
	}

	prompt := buildPrompt(sample, 30)
	assert.Contains(t, prompt, "30 days")
	assert.Contains(t, prompt, "Launch video")
	assert.Contains(t, prompt, "views=1000")
}
