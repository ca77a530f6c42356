package client

import (
	"context"
	"time"

	"github.com/researchaccelerator-hub/youtube-tracker/errs"
	"github.com/researchaccelerator-hub/youtube-tracker/model"
)

// Unavailable is the client used when no API key is configured. Read-only
// metrics on already stored data keep working; anything that needs the
// platform fails with a config error.
type Unavailable struct{}

// NewUnavailable returns the credential-less client.
func NewUnavailable() *Unavailable { return &Unavailable{} }

func (Unavailable) err() error {
	return errs.Configf("YouTube API key is not configured")
}

func (u Unavailable) SearchChannel(context.Context, string) (string, error) {
	return "", u.err()
}

func (u Unavailable) GetChannel(context.Context, string) (*Channel, error) {
	return nil, u.err()
}

func (u Unavailable) ListPlaylistItems(context.Context, string, string, int64) (*PlaylistPage, error) {
	return nil, u.err()
}

func (u Unavailable) ListVideosByIDs(context.Context, []string) ([]model.VideoRecord, error) {
	return nil, u.err()
}

func (u Unavailable) SearchVideos(context.Context, string, time.Time, string) (*SearchPage, error) {
	return nil, u.err()
}

var _ YouTubeAPI = Unavailable{}
