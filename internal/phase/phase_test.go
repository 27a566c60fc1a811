package phase

import (
	"sort"
	"testing"
	"time"

	"github.com/openconf/reviewcycle/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *models.DeadlineConfig {
	t.Helper()
	cfg, err := models.ParseDeadlineConfig(
		"2025-01-01T00:00:00Z",
		"2025-01-10T00:00:00Z",
		"2025-01-12T00:00:00Z",
		"2025-01-20T00:00:00Z",
	)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	return cfg
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

func TestPhaseAt(t *testing.T) {
	cfg := testConfig(t)

	tests := []struct {
		name string
		now  string
		want models.Phase
	}{
		{"before bidding opens", "2024-12-25T00:00:00Z", models.PhasePreBidding},
		{"bidding start is inclusive", "2025-01-01T00:00:00Z", models.PhaseBidding},
		{"inside bidding window", "2025-01-05T00:00:00Z", models.PhaseBidding},
		{"bidding end is inclusive", "2025-01-10T00:00:00Z", models.PhaseBidding},
		{"between bidding and review", "2025-01-11T00:00:00Z", models.PhaseBetweenBiddingReview},
		{"review start is inclusive", "2025-01-12T00:00:00Z", models.PhaseReview},
		{"inside review window", "2025-01-15T00:00:00Z", models.PhaseReview},
		{"review end is inclusive", "2025-01-20T00:00:00Z", models.PhaseReview},
		{"after review closes", "2025-01-21T00:00:00Z", models.PhasePostReview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PhaseAt(mustTime(t, tt.now), cfg))
		})
	}
}

func TestPhaseAtMissingConfig(t *testing.T) {
	assert.Equal(t, models.PhasePreBidding, PhaseAt(time.Now(), nil))

	cfg, err := models.ParseDeadlineConfig("2025-01-01T00:00:00Z", "", "2025-01-12T00:00:00Z", "2025-01-20T00:00:00Z")
	require.NoError(t, err)
	assert.Nil(t, cfg, "a config with any missing boundary is absent as a whole")
	assert.Equal(t, models.PhasePreBidding, PhaseAt(mustTime(t, "2025-01-15T00:00:00Z"), cfg))
}

func TestPhaseProgressionIsMonotonic(t *testing.T) {
	cfg := testConfig(t)

	start := mustTime(t, "2024-12-20T00:00:00Z")
	times := make([]time.Time, 0, 200)
	for i := 0; i < 200; i++ {
		times = append(times, start.Add(time.Duration(i)*6*time.Hour))
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	prev := -1
	for _, now := range times {
		order := PhaseAt(now, cfg).Order()
		assert.GreaterOrEqual(t, order, prev, "phase regressed at %s", now)
		prev = order
	}
	assert.Equal(t, models.PhasePostReview.Order(), prev)
}

func TestValidateRejectsOutOfOrderBoundaries(t *testing.T) {
	cfg := testConfig(t)
	cfg.ReviewStart = cfg.BiddingEnd.Add(-24 * time.Hour)
	assert.Error(t, cfg.Validate())

	assert.NoError(t, testConfig(t).Validate())
	assert.NoError(t, (*models.DeadlineConfig)(nil).Validate())
}
