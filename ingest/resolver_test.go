package ingest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchaccelerator-hub/youtube-tracker/errs"
)

func TestResolveShortCircuitsCanonicalID(t *testing.T) {
	api := newFakeAPI()
	r := NewResolver(api, NewQuotaTracker(0))

	id := "UCabcdefghijklmnopqrstuv"
	got, err := r.Resolve(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.Equal(t, 0, api.searchChannelCalls, "canonical ids must not hit the search API")
}

func TestResolveHandleViaSearch(t *testing.T) {
	api := newFakeAPI()
	api.searchHit = "UCabcdefghijklmnopqrstuv"
	r := NewResolver(api, NewQuotaTracker(0))

	got, err := r.Resolve(context.Background(), "@somecreator")
	require.NoError(t, err)
	assert.Equal(t, api.searchHit, got)
	assert.Equal(t, 1, api.searchChannelCalls)
}

func TestResolveNotFound(t *testing.T) {
	api := newFakeAPI()
	r := NewResolver(api, NewQuotaTracker(0))

	_, err := r.Resolve(context.Background(), "nobody-here")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindNotFound))
}

func TestResolveQuotaGuard(t *testing.T) {
	api := newFakeAPI()
	api.searchHit = "UCabcdefghijklmnopqrstuv"
	r := NewResolver(api, NewQuotaTracker(50)) // one search costs 100

	_, err := r.Resolve(context.Background(), "@somecreator")
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindQuotaExceeded))
	assert.Equal(t, 0, api.searchChannelCalls)
}

func TestIsChannelID(t *testing.T) {
	assert.True(t, IsChannelID("UCabcdefghijklmnopqrstuv"))
	assert.True(t, IsChannelID("UC0123456789_-abcdefghij"))
	assert.False(t, IsChannelID("@handle"))
	assert.False(t, IsChannelID("UCshort"))
	assert.False(t, IsChannelID("XXabcdefghijklmnopqrstuv"))
	assert.False(t, IsChannelID("UCabcdefghijklmnopqrstuvw"))
}
