package phase

import (
	"time"

	"github.com/openconf/reviewcycle/internal/models"
)

// PhaseAt derives the review-cycle phase for a given instant. It is pure and
// total: every instant maps to exactly one phase, and an absent or incomplete
// config always yields pre-bidding so callers never crash on a half-configured
// deployment.
//
// The bidding and review windows are inclusive on both ends; the gaps between
// them are strict.
func PhaseAt(now time.Time, cfg *models.DeadlineConfig) models.Phase {
	if cfg == nil {
		return models.PhasePreBidding
	}

	switch {
	case now.Before(cfg.BiddingStart):
		return models.PhasePreBidding
	case !now.After(cfg.BiddingEnd):
		return models.PhaseBidding
	case now.Before(cfg.ReviewStart):
		return models.PhaseBetweenBiddingReview
	case !now.After(cfg.ReviewEnd):
		return models.PhaseReview
	default:
		return models.PhasePostReview
	}
}
