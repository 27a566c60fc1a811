package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/openconf/reviewcycle/internal/bidding"
	"github.com/openconf/reviewcycle/internal/clients"
	"github.com/openconf/reviewcycle/internal/countdown"
	"github.com/openconf/reviewcycle/internal/events"
	"github.com/openconf/reviewcycle/internal/models"
	"github.com/openconf/reviewcycle/internal/phase"
	"github.com/openconf/reviewcycle/internal/review"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	config, err := loadConfig(getEnv("CONFIG_FILE", ""))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	deadlines, err := models.ParseDeadlineConfig(
		config.Deadlines.BiddingStart,
		config.Deadlines.BiddingEnd,
		config.Deadlines.ReviewStart,
		config.Deadlines.ReviewEnd,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid deadline configuration")
	}
	if err := deadlines.Validate(); err != nil {
		log.Fatal().Err(err).Msg("deadline boundaries out of order")
	}
	if deadlines == nil {
		log.Warn().Msg("deadline configuration incomplete; phase stays pre-bidding")
	}

	clock := clockwork.NewRealClock()
	reviewer := models.ReviewerContext{ReviewerID: config.ReviewerID}
	api := clients.NewConferenceClient(config.APIBaseURL)

	var bus events.Bus
	switch config.Bus {
	case "nats":
		natsBus, err := events.NewNATSBus(config.NATSURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect event bus")
		}
		defer natsBus.Close()
		bus = natsBus
	default:
		bus = events.NewInProcBus()
	}

	synchronizer := bidding.NewSynchronizer(api, reviewer, clock, deadlines)
	resolver, err := review.NewResolver(api, reviewer, bus)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create review status resolver")
	}
	defer resolver.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := synchronizer.Load(ctx); err != nil {
		// Bids reload lazily on the next interaction; startup continues.
		log.Warn().Err(err).Msg("could not seed bids from server")
	}

	tracker := phase.NewTracker(deadlines, clock, config.TickInterval)
	go tracker.Run(ctx)

	engine := countdown.NewEngine(nextBoundary(tracker.Current(), deadlines), clock, config.TickInterval)
	go engine.Run(ctx)

	log.Info().
		Str("phase", tracker.Current().String()).
		Int64("reviewer_id", config.ReviewerID).
		Str("bus", config.Bus).
		Msg("reviewcycled started")

	displayOver := false
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("reviewcycled shutting down")
			return
		case tr := <-tracker.Transitions():
			log.Info().
				Str("from", tr.From.String()).
				Str("to", tr.To.String()).
				Msg("review cycle advanced")
		case snap := <-engine.Snapshots():
			if over := snap.DisplayOver(); over != displayOver {
				displayOver = over
				log.Info().
					Bool("over", snap.Over).
					Int("days", snap.Days).
					Int("hours", snap.Hours).
					Int("minutes", snap.Minutes).
					Msg("countdown display state changed")
			}
		}
	}
}

// nextBoundary picks the deadline the countdown should run against for a
// phase: the end of the active window, or the start of the next one while
// between windows. Post-review has nothing left to count down to.
func nextBoundary(p models.Phase, cfg *models.DeadlineConfig) *time.Time {
	if cfg == nil {
		return nil
	}
	switch p {
	case models.PhasePreBidding:
		return &cfg.BiddingStart
	case models.PhaseBidding:
		return &cfg.BiddingEnd
	case models.PhaseBetweenBiddingReview:
		return &cfg.ReviewStart
	case models.PhaseReview:
		return &cfg.ReviewEnd
	default:
		return nil
	}
}
