package client

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"github.com/researchaccelerator-hub/youtube-tracker/errs"
	"github.com/researchaccelerator-hub/youtube-tracker/model"
)

// DataAPIClient implements YouTubeAPI on the YouTube Data API v3.
type DataAPIClient struct {
	service *ytapi.Service
}

// NewDataAPIClient creates a connected Data API client. The HTTP transport
// carries a 30 second timeout; individual calls inherit it.
func NewDataAPIClient(ctx context.Context, apiKey string) (*DataAPIClient, error) {
	if apiKey == "" {
		return nil, errs.Configf("YouTube API key is required")
	}

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	service, err := ytapi.NewService(ctx, option.WithAPIKey(apiKey), option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, errs.Upstreamf(err, "failed to create YouTube service")
	}

	log.Info().Msg("Connected to YouTube API")
	return &DataAPIClient{service: service}, nil
}

// SearchChannel issues a channel-type search and returns the first hit.
func (c *DataAPIClient) SearchChannel(ctx context.Context, term string) (string, error) {
	resp, err := c.service.Search.List([]string{"snippet"}).
		Q(term).
		Type("channel").
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", errs.Upstreamf(err, "channel search failed for %q", term)
	}

	if len(resp.Items) == 0 || resp.Items[0].Id == nil || resp.Items[0].Id.ChannelId == "" {
		return "", errs.NotFoundf("no channel found for %q", term)
	}

	return resp.Items[0].Id.ChannelId, nil
}

// GetChannel fetches snippet, statistics and the uploads playlist id.
func (c *DataAPIClient) GetChannel(ctx context.Context, channelID string) (*Channel, error) {
	resp, err := c.service.Channels.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(channelID).
		MaxResults(1).
		Context(ctx).
		Do()
	if err != nil {
		return nil, errs.Upstreamf(err, "failed to get channel %s", channelID)
	}

	if len(resp.Items) == 0 {
		return nil, errs.NotFoundf("channel not found: %s", channelID)
	}

	item := resp.Items[0]
	ch := &Channel{
		ID:          item.Id,
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
		Thumbnails:  extractThumbnails(item.Snippet.Thumbnails),
	}
	if item.Statistics != nil {
		ch.SubscriberCount = int64(item.Statistics.SubscriberCount)
		ch.ViewCount = int64(item.Statistics.ViewCount)
		ch.VideoCount = int64(item.Statistics.VideoCount)
	}
	if item.ContentDetails != nil && item.ContentDetails.RelatedPlaylists != nil {
		ch.UploadsPlaylistID = item.ContentDetails.RelatedPlaylists.Uploads
	}

	log.Debug().
		Str("channel_id", ch.ID).
		Str("title", ch.Title).
		Str("uploads_playlist", ch.UploadsPlaylistID).
		Msg("Fetched channel")

	return ch, nil
}

// ListPlaylistItems fetches one page of a playlist, newest first.
func (c *DataAPIClient) ListPlaylistItems(ctx context.Context, playlistID, pageToken string, pageSize int64) (*PlaylistPage, error) {
	call := c.service.PlaylistItems.List([]string{"contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(pageSize).
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, errs.Upstreamf(err, "failed to list playlist %s", playlistID)
	}

	page := &PlaylistPage{NextPageToken: resp.NextPageToken}
	for _, item := range resp.Items {
		if item.ContentDetails == nil {
			continue
		}
		publishedAt, err := time.Parse(time.RFC3339, item.ContentDetails.VideoPublishedAt)
		if err != nil {
			log.Warn().Err(err).
				Str("video_id", item.ContentDetails.VideoId).
				Str("date", item.ContentDetails.VideoPublishedAt).
				Msg("Failed to parse video published date")
			continue
		}
		page.Items = append(page.Items, PlaylistItem{
			VideoID:     item.ContentDetails.VideoId,
			PublishedAt: publishedAt,
		})
	}

	return page, nil
}

// ListVideosByIDs hydrates up to 50 ids in one call. Ids the API no longer
// knows about are simply absent from the response.
func (c *DataAPIClient) ListVideosByIDs(ctx context.Context, ids []string) ([]model.VideoRecord, error) {
	resp, err := c.service.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, errs.Upstreamf(err, "failed to get video details")
	}

	records := make([]model.VideoRecord, 0, len(resp.Items))
	for _, item := range resp.Items {
		publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		if err != nil {
			log.Warn().Err(err).Str("video_id", item.Id).Msg("Failed to parse video published date")
			continue
		}
		rec := model.VideoRecord{
			VideoID:      item.Id,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			PublishedAt:  publishedAt,
			ChannelID:    item.Snippet.ChannelId,
			ChannelTitle: item.Snippet.ChannelTitle,
		}
		if item.Statistics != nil {
			rec.Views = int64(item.Statistics.ViewCount)
			rec.Likes = int64(item.Statistics.LikeCount)
			rec.Comments = int64(item.Statistics.CommentCount)
		}
		if item.ContentDetails != nil {
			rec.Duration = item.ContentDetails.Duration
		}
		records = append(records, rec)
	}

	return records, nil
}

// SearchVideos fetches one page of a date-bounded video search ordered
// newest first.
func (c *DataAPIClient) SearchVideos(ctx context.Context, query string, publishedAfter time.Time, pageToken string) (*SearchPage, error) {
	call := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		Order("date").
		MaxResults(50).
		Context(ctx)
	if !publishedAfter.IsZero() {
		call = call.PublishedAfter(publishedAfter.UTC().Format(time.RFC3339))
	}
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, errs.Upstreamf(err, "video search failed for %q", query)
	}

	page := &SearchPage{NextPageToken: resp.NextPageToken}
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		page.Items = append(page.Items, SearchItem{
			VideoID:     item.Id.VideoId,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
		})
	}

	return page, nil
}

func extractThumbnails(details *ytapi.ThumbnailDetails) map[string]string {
	thumbnails := make(map[string]string)
	if details == nil {
		return thumbnails
	}
	if details.Default != nil {
		thumbnails["default"] = details.Default.Url
	}
	if details.Medium != nil {
		thumbnails["medium"] = details.Medium.Url
	}
	if details.High != nil {
		thumbnails["high"] = details.High.Url
	}
	if details.Standard != nil {
		thumbnails["standard"] = details.Standard.Url
	}
	if details.Maxres != nil {
		thumbnails["maxres"] = details.Maxres.Url
	}
	return thumbnails
}
