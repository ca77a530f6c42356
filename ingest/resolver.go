package ingest

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/researchaccelerator-hub/youtube-tracker/client"
	"github.com/researchaccelerator-hub/youtube-tracker/model"
)

// channelIDPattern matches canonical channel ids: "UC" plus 22 characters
// of the id alphabet.
var channelIDPattern = regexp.MustCompile(`^UC[A-Za-z0-9_-]{22}$`)

// IsChannelID reports whether input already is a canonical channel id.
func IsChannelID(input string) bool {
	return channelIDPattern.MatchString(input)
}

// Resolver maps handles and free-form terms to canonical channel ids and
// fetches channel metadata. Concurrent fetches of the same channel collapse
// into one upstream call.
type Resolver struct {
	api   client.YouTubeAPI
	quota *QuotaTracker
	group singleflight.Group
}

// NewResolver returns a resolver on the given API and quota tracker.
func NewResolver(api client.YouTubeAPI, quota *QuotaTracker) *Resolver {
	return &Resolver{api: api, quota: quota}
}

// Resolve returns the canonical channel id for input. A canonical id passes
// through untouched, costing zero API units; anything else is stripped of a
// leading "@" and resolved via a channel search.
func (r *Resolver) Resolve(ctx context.Context, input string) (string, error) {
	if IsChannelID(input) {
		return input, nil
	}

	term := strings.TrimPrefix(input, "@")
	if err := r.quota.Spend(CostSearch); err != nil {
		return "", err
	}

	channelID, err := r.api.SearchChannel(ctx, term)
	if err != nil {
		return "", err
	}

	log.Debug().Str("input", input).Str("channel_id", channelID).Msg("Resolved channel handle")
	return channelID, nil
}

// FetchChannel fetches channel details, deduplicating concurrent calls for
// the same id.
func (r *Resolver) FetchChannel(ctx context.Context, channelID string) (*client.Channel, error) {
	v, err, _ := r.group.Do(channelID, func() (interface{}, error) {
		if err := r.quota.Spend(CostChannels); err != nil {
			return nil, err
		}
		return r.api.GetChannel(ctx, channelID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*client.Channel), nil
}

// MetaFromChannel converts an upstream channel into cacheable metadata.
func MetaFromChannel(ch *client.Channel, now time.Time) *model.ChannelMeta {
	return &model.ChannelMeta{
		ChannelID:   ch.ID,
		Title:       ch.Title,
		Description: ch.Description,
		Thumbnails:  ch.Thumbnails,
		Stats: model.ChannelStats{
			SubscriberCount: ch.SubscriberCount,
			VideoCount:      ch.VideoCount,
			ViewCount:       ch.ViewCount,
		},
		FetchedAt: now,
	}
}
