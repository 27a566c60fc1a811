package models

import (
	"fmt"
	"time"
)

// DeadlineConfig holds the four boundaries of the review cycle. It is read
// once at startup and never mutated. A nil *DeadlineConfig means the
// configuration is absent or incomplete; phase derivation treats that as a
// permanent pre-bidding state rather than failing.
type DeadlineConfig struct {
	BiddingStart time.Time
	BiddingEnd   time.Time
	ReviewStart  time.Time
	ReviewEnd    time.Time
}

// ParseDeadlineConfig parses the four RFC-3339 boundary strings. If any of
// them is empty the whole config is treated as absent and (nil, nil) is
// returned. A string that is present but unparsable is a deployment error.
func ParseDeadlineConfig(biddingStart, biddingEnd, reviewStart, reviewEnd string) (*DeadlineConfig, error) {
	if biddingStart == "" || biddingEnd == "" || reviewStart == "" || reviewEnd == "" {
		return nil, nil
	}

	parse := func(name, value string) (time.Time, error) {
		t, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse %s %q: %w", name, value, err)
		}
		return t, nil
	}

	cfg := &DeadlineConfig{}
	var err error
	if cfg.BiddingStart, err = parse("bidding start", biddingStart); err != nil {
		return nil, err
	}
	if cfg.BiddingEnd, err = parse("bidding end", biddingEnd); err != nil {
		return nil, err
	}
	if cfg.ReviewStart, err = parse("review start", reviewStart); err != nil {
		return nil, err
	}
	if cfg.ReviewEnd, err = parse("review end", reviewEnd); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects boundary sets that are not monotonically ordered.
// A mis-ordered config would make phase derivation skip or repeat stages,
// so it is refused at load time instead of producing undefined phases later.
func (c *DeadlineConfig) Validate() error {
	if c == nil {
		return nil
	}
	if c.BiddingEnd.Before(c.BiddingStart) {
		return fmt.Errorf("bidding end %s precedes bidding start %s", c.BiddingEnd, c.BiddingStart)
	}
	if c.ReviewStart.Before(c.BiddingEnd) {
		return fmt.Errorf("review start %s precedes bidding end %s", c.ReviewStart, c.BiddingEnd)
	}
	if c.ReviewEnd.Before(c.ReviewStart) {
		return fmt.Errorf("review end %s precedes review start %s", c.ReviewEnd, c.ReviewStart)
	}
	return nil
}
