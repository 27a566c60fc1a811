package models

// Phase defines the stage of the review cycle. It is derived from wall-clock
// time and the configured deadline boundaries, never stored.
type Phase string

const (
	PhasePreBidding           Phase = "PRE_BIDDING"
	PhaseBidding              Phase = "BIDDING"
	PhaseBetweenBiddingReview Phase = "BETWEEN_BIDDING_REVIEW"
	PhaseReview               Phase = "REVIEW"
	PhasePostReview           Phase = "POST_REVIEW"
)

// Order returns the position of the phase in the cycle's total order.
// Phases only ever advance, so Order is monotonic in time for a fixed config.
func (p Phase) Order() int {
	switch p {
	case PhasePreBidding:
		return 0
	case PhaseBidding:
		return 1
	case PhaseBetweenBiddingReview:
		return 2
	case PhaseReview:
		return 3
	case PhasePostReview:
		return 4
	default:
		return -1
	}
}

func (p Phase) String() string {
	return string(p)
}
