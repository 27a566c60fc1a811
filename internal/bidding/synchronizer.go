package bidding

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jonboulle/clockwork"
	"github.com/openconf/reviewcycle/internal/clients"
	"github.com/openconf/reviewcycle/internal/models"
	"github.com/openconf/reviewcycle/internal/phase"
	"github.com/rs/zerolog/log"
)

var (
	// ErrBiddingClosed rejects a choice outside the bidding window.
	ErrBiddingClosed = errors.New("bidding phase is not active")
	// ErrSaveInFlight rejects a choice while a save for the same article is
	// still unresolved. The attempt is dropped, not queued.
	ErrSaveInFlight = errors.New("a save for this article is already in flight")
)

// BidAPI defines what the synchronizer needs from the conference client.
type BidAPI interface {
	FetchBids(ctx context.Context, reviewerID int64) ([]clients.BidRecord, error)
	SaveBid(ctx context.Context, req clients.SaveBidRequest) error
}

type articleState struct {
	choice models.Choice
	saving bool
}

// Synchronizer owns one reviewer's per-article interest choices. A choice is
// applied locally before the remote write and rolled back if the write fails,
// so the visible state never shows an unconfirmed value after a failure.
type Synchronizer struct {
	api      BidAPI
	reviewer models.ReviewerContext
	clock    clockwork.Clock
	cfg      *models.DeadlineConfig

	mu    sync.Mutex
	state map[int64]*articleState
}

func NewSynchronizer(api BidAPI, reviewer models.ReviewerContext, clock clockwork.Clock, cfg *models.DeadlineConfig) *Synchronizer {
	return &Synchronizer{
		api:      api,
		reviewer: reviewer,
		clock:    clock,
		cfg:      cfg,
		state:    make(map[int64]*articleState),
	}
}

// Load seeds local state from the reviewer's stored bids. Articles with a
// save in flight keep their optimistic value.
func (s *Synchronizer) Load(ctx context.Context) error {
	bids, err := s.api.FetchBids(ctx, s.reviewer.ReviewerID)
	if err != nil {
		return fmt.Errorf("failed to load bids: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range bids {
		st := s.stateFor(b.Article)
		if st.saving {
			continue
		}
		st.choice = ParseChoice(b.Choice)
	}

	log.Debug().
		Int64("reviewer_id", s.reviewer.ReviewerID).
		Int("bids", len(bids)).
		Msg("loaded stored bids")
	return nil
}

// Choice returns the current (possibly optimistic) choice for an article.
func (s *Synchronizer) Choice(articleID int64) models.Choice {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.state[articleID]; ok {
		return st.choice
	}
	return models.ChoiceNoSelection
}

// Saving reports whether a write for the article is still unresolved.
func (s *Synchronizer) Saving(articleID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.state[articleID]; ok {
		return st.saving
	}
	return false
}

// Choose applies target to the article's choice. Selecting the active choice
// again clears it to NoSelection; that is the only toggle-off path. The new
// value is applied optimistically before the remote write and restored to the
// pre-call value if the write fails. The returned choice is the one visible
// after the call.
//
// Different articles save concurrently; a second call for the same article
// while its save is in flight is rejected with ErrSaveInFlight.
func (s *Synchronizer) Choose(ctx context.Context, articleID int64, target models.Choice) (models.Choice, error) {
	s.mu.Lock()
	st := s.stateFor(articleID)

	if current := phase.PhaseAt(s.clock.Now(), s.cfg); current != models.PhaseBidding {
		prev := st.choice
		s.mu.Unlock()
		return prev, fmt.Errorf("%w: current phase is %s", ErrBiddingClosed, current)
	}
	if st.saving {
		prev := st.choice
		s.mu.Unlock()
		return prev, ErrSaveInFlight
	}

	prev := st.choice
	next := target
	if prev == target {
		next = models.ChoiceNoSelection
	}

	st.choice = next
	st.saving = true
	s.mu.Unlock()

	err := s.api.SaveBid(ctx, clients.SaveBidRequest{
		Reviewer: s.reviewer.ReviewerID,
		Article:  articleID,
		Value:    WireValue(next),
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	st.saving = false

	if err != nil {
		st.choice = prev
		log.Error().
			Err(err).
			Int64("article_id", articleID).
			Str("rolled_back_to", string(prev)).
			Msg("bid save failed, rolled back")
		return prev, fmt.Errorf("failed to save bid for article %d: %w", articleID, err)
	}

	log.Debug().
		Int64("article_id", articleID).
		Str("choice", string(next)).
		Msg("bid saved")
	return next, nil
}

// stateFor must be called with s.mu held.
func (s *Synchronizer) stateFor(articleID int64) *articleState {
	st, ok := s.state[articleID]
	if !ok {
		st = &articleState{choice: models.ChoiceNoSelection}
		s.state[articleID] = st
	}
	return st
}
