package countdown

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// DefaultTick is the recommended display refresh rate.
const DefaultTick = time.Second

// Engine recomputes a deadline countdown on a fixed tick and streams the
// snapshots. It never blocks on its consumer: if the previous snapshot has
// not been drained it is replaced by the fresh one.
type Engine struct {
	deadline *time.Time
	clock    clockwork.Clock
	interval time.Duration
	out      chan Snapshot
}

// NewEngine creates an engine for a single deadline. A nil deadline is valid
// and produces permanently-over snapshots.
func NewEngine(deadline *time.Time, clock clockwork.Clock, interval time.Duration) *Engine {
	if interval <= 0 {
		interval = DefaultTick
	}
	return &Engine{
		deadline: deadline,
		clock:    clock,
		interval: interval,
		out:      make(chan Snapshot, 1),
	}
}

// Snapshots returns the stream of countdown snapshots produced by Run.
func (e *Engine) Snapshots() <-chan Snapshot {
	return e.out
}

// Run emits one snapshot immediately, then one per tick, until the context is
// cancelled.
func (e *Engine) Run(ctx context.Context) {
	if e.deadline != nil {
		log.Debug().Time("deadline", *e.deadline).Dur("interval", e.interval).Msg("countdown started")
	} else {
		log.Debug().Msg("countdown started without a deadline; reporting over")
	}

	ticker := e.clock.NewTicker(e.interval)
	defer ticker.Stop()

	e.emit(Remaining(e.deadline, e.clock.Now()))

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("countdown shutting down")
			return
		case <-ticker.Chan():
			e.emit(Remaining(e.deadline, e.clock.Now()))
		}
	}
}

func (e *Engine) emit(s Snapshot) {
	select {
	case e.out <- s:
	default:
		select {
		case <-e.out:
		default:
		}
		e.out <- s
	}
}
