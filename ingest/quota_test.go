package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchaccelerator-hub/youtube-tracker/errs"
)

func TestQuotaTrackerWithinBudget(t *testing.T) {
	q := NewQuotaTracker(200)

	require.NoError(t, q.Spend(CostSearch))
	require.NoError(t, q.Spend(CostSearch))
	assert.Equal(t, 200, q.Spent())
}

func TestQuotaTrackerRejectsOverspend(t *testing.T) {
	q := NewQuotaTracker(150)

	require.NoError(t, q.Spend(CostSearch))
	err := q.Spend(CostSearch)
	require.Error(t, err)
	assert.True(t, errs.IsKind(err, errs.KindQuotaExceeded))
	assert.Equal(t, 100, q.Spent(), "a rejected spend must not be recorded")
}

func TestQuotaTrackerUnlimited(t *testing.T) {
	q := NewQuotaTracker(0)
	for i := 0; i < 100; i++ {
		require.NoError(t, q.Spend(CostSearch))
	}
	assert.Equal(t, 100*CostSearch, q.Spent())
}
