package ingest

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/researchaccelerator-hub/youtube-tracker/client"
	"github.com/researchaccelerator-hub/youtube-tracker/model"
)

// KeywordSearcher runs the keyword ingestion path. Matches span channels,
// so nothing is persisted; every call is a fresh query.
type KeywordSearcher struct {
	api      client.YouTubeAPI
	quota    *QuotaTracker
	details  *DetailFetcher
	maxPages int

	now func() time.Time
}

// NewKeywordSearcher returns a searcher capped at maxPages search pages per
// call as a quota guard.
func NewKeywordSearcher(api client.YouTubeAPI, quota *QuotaTracker, details *DetailFetcher, maxPages int) *KeywordSearcher {
	if maxPages <= 0 {
		maxPages = 3
	}
	return &KeywordSearcher{
		api:      api,
		quota:    quota,
		details:  details,
		maxPages: maxPages,
		now:      time.Now,
	}
}

// Search collects videos from the last `days` days matching every keyword,
// hydrated into full records. The upstream search only offers loose
// relevance matching, so the AND across keywords is enforced client-side on
// title plus description.
func (s *KeywordSearcher) Search(ctx context.Context, keywords []string, days int) ([]model.VideoRecord, error) {
	query := strings.Join(keywords, " ")
	publishedAfter := s.now().Add(-time.Duration(days) * 24 * time.Hour)

	var ids []string
	seen := make(map[string]bool)
	pageToken := ""

	for page := 0; page < s.maxPages; page++ {
		if err := s.quota.Spend(CostSearch); err != nil {
			return nil, err
		}

		result, err := s.api.SearchVideos(ctx, query, publishedAfter, pageToken)
		if err != nil {
			return nil, err
		}

		for _, item := range result.Items {
			if seen[item.VideoID] {
				continue
			}
			if !MatchesAllKeywords(item.Title, item.Description, keywords) {
				continue
			}
			seen[item.VideoID] = true
			ids = append(ids, item.VideoID)
		}

		if result.NextPageToken == "" {
			break
		}
		pageToken = result.NextPageToken
	}

	log.Debug().
		Str("query", query).
		Int("days", days).
		Int("matched", len(ids)).
		Msg("Keyword search complete")

	if len(ids) == 0 {
		return nil, nil
	}
	return s.details.FetchDetails(ctx, ids)
}

// MatchesAllKeywords reports whether title+description contains every
// keyword as a case-insensitive substring.
func MatchesAllKeywords(title, description string, keywords []string) bool {
	haystack := strings.ToLower(title + " " + description)
	for _, kw := range keywords {
		if !strings.Contains(haystack, strings.ToLower(kw)) {
			return false
		}
	}
	return true
}
