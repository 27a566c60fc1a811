package phase

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/openconf/reviewcycle/internal/models"
	"github.com/rs/zerolog/log"
)

// Transition records a phase change observed by the tracker.
type Transition struct {
	From models.Phase `json:"from"`
	To   models.Phase `json:"to"`
	At   time.Time    `json:"at"`
}

// Tracker re-derives the phase on a fixed tick and reports transitions.
// Deriving is cheap and pure, so no caching: every tick recomputes from
// scratch and only a changed result is published.
type Tracker struct {
	cfg      *models.DeadlineConfig
	clock    clockwork.Clock
	interval time.Duration
	out      chan Transition

	current models.Phase
}

// NewTracker creates a tracker that polls at the given interval.
func NewTracker(cfg *models.DeadlineConfig, clock clockwork.Clock, interval time.Duration) *Tracker {
	return &Tracker{
		cfg:      cfg,
		clock:    clock,
		interval: interval,
		out:      make(chan Transition, 1),
		current:  PhaseAt(clock.Now(), cfg),
	}
}

// Current returns the phase as of the last tick (or construction time).
func (t *Tracker) Current() models.Phase {
	return t.current
}

// Transitions returns the channel transitions are delivered on. A slow
// consumer sees the freshest transition, not a backlog.
func (t *Tracker) Transitions() <-chan Transition {
	return t.out
}

// Run polls until the context is cancelled. It owns t.current; Current must
// not be called concurrently with Run from another goroutine.
func (t *Tracker) Run(ctx context.Context) {
	log.Info().
		Str("phase", t.current.String()).
		Dur("interval", t.interval).
		Msg("phase tracker started")

	ticker := t.clock.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("phase tracker shutting down")
			return
		case <-ticker.Chan():
			now := t.clock.Now()
			next := PhaseAt(now, t.cfg)
			if next == t.current {
				continue
			}

			tr := Transition{From: t.current, To: next, At: now}
			t.current = next

			// Drop the stale transition if the consumer has not drained it.
			select {
			case t.out <- tr:
			default:
				select {
				case <-t.out:
				default:
				}
				t.out <- tr
			}

			log.Info().
				Str("from", tr.From.String()).
				Str("to", tr.To.String()).
				Time("at", tr.At).
				Msg("phase transition")
		}
	}
}
