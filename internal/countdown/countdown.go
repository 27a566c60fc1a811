package countdown

import "time"

// Snapshot is the decomposition of the time remaining until a deadline.
// Over is the raw flag computed from the full remaining duration. Some call
// sites instead want the minute-granularity cutover of DisplayOver; the two
// signals intentionally disagree for up to 59 seconds and both are exposed so
// callers pick one explicitly.
type Snapshot struct {
	Days    int       `json:"days"`
	Hours   int       `json:"hours"`
	Minutes int       `json:"minutes"`
	Over    bool      `json:"over"`
	At      time.Time `json:"at"`
}

// DisplayOver reports whether the countdown should render as finished.
// It treats 0d 0h 0m as over even while seconds remain, so a display never
// flashes an all-zero countdown that is not yet done.
func (s Snapshot) DisplayOver() bool {
	return s.Over || (s.Days == 0 && s.Hours == 0 && s.Minutes == 0)
}

// Remaining projects deadline minus now into a Snapshot. The remainder is
// floored into whole days, then hours, then minutes; seconds are discarded.
// A nil deadline means nothing is configured and yields a permanently-over
// snapshot.
func Remaining(deadline *time.Time, now time.Time) Snapshot {
	s := Snapshot{At: now, Over: true}
	if deadline == nil {
		return s
	}

	left := deadline.Sub(now)
	if left <= 0 {
		return s
	}

	s.Over = false
	s.Days = int(left / (24 * time.Hour))
	left -= time.Duration(s.Days) * 24 * time.Hour
	s.Hours = int(left / time.Hour)
	left -= time.Duration(s.Hours) * time.Hour
	s.Minutes = int(left / time.Minute)
	return s
}
