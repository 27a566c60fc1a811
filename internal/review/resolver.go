package review

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/openconf/reviewcycle/internal/events"
	"github.com/openconf/reviewcycle/internal/models"
	"github.com/rs/zerolog/log"
)

// ReviewAPI defines what the resolver needs from the conference client.
type ReviewAPI interface {
	HasPublishedReview(ctx context.Context, articleID int64) (bool, error)
	FetchOwnReview(ctx context.Context, articleID, reviewerID int64) (*models.Review, error)
}

// Resolver derives a per-article review status from two remote signals and a
// local review-updated event stream.
//
// Precedence: a published review is terminal and short-circuits everything
// else; an existing own review means draft; otherwise pending. A transport
// failure at either step resolves to pending so the reviewer always sees an
// actionable state.
//
// Cache writes from network lookups are guarded by per-article request
// tokens: an event rotates the token, so a lookup that started before the
// event cannot overwrite the event-derived status no matter when its response
// arrives. Resolution is therefore order-independent.
type Resolver struct {
	api      ReviewAPI
	reviewer models.ReviewerContext

	mu     sync.Mutex
	cache  map[int64]models.ReviewStatus
	tokens map[int64]uuid.UUID

	unsubscribe func()
}

// NewResolver creates a resolver and subscribes it to review-updated events.
func NewResolver(api ReviewAPI, reviewer models.ReviewerContext, bus events.Bus) (*Resolver, error) {
	r := &Resolver{
		api:      api,
		reviewer: reviewer,
		cache:    make(map[int64]models.ReviewStatus),
		tokens:   make(map[int64]uuid.UUID),
	}

	unsubscribe, err := bus.SubscribeReviewUpdated(r.handleReviewUpdated)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to review-updated events: %w", err)
	}
	r.unsubscribe = unsubscribe
	return r, nil
}

// Close detaches the resolver from the event bus.
func (r *Resolver) Close() {
	if r.unsubscribe != nil {
		r.unsubscribe()
	}
}

// StatusFor returns the review status of one article, answering from cache
// when a previous lookup or event already settled it.
func (r *Resolver) StatusFor(ctx context.Context, articleID int64) models.ReviewStatus {
	r.mu.Lock()
	if status, ok := r.cache[articleID]; ok {
		r.mu.Unlock()
		return status
	}
	token := uuid.New()
	r.tokens[articleID] = token
	r.mu.Unlock()

	status, cacheable := r.compute(ctx, articleID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if cacheable && r.tokens[articleID] == token {
		r.cache[articleID] = status
	}
	if settled, ok := r.cache[articleID]; ok {
		// An event landed while the lookup was in flight; it wins.
		return settled
	}
	return status
}

// StatusAll resolves a set of articles concurrently. Lookups are independent;
// one failing article degrades to pending without affecting the rest.
func (r *Resolver) StatusAll(ctx context.Context, articleIDs []int64) map[int64]models.ReviewStatus {
	statuses := make([]models.ReviewStatus, len(articleIDs))

	var wg sync.WaitGroup
	for i, id := range articleIDs {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			statuses[i] = r.StatusFor(ctx, id)
		}(i, id)
	}
	wg.Wait()

	result := make(map[int64]models.ReviewStatus, len(articleIDs))
	for i, id := range articleIDs {
		result[id] = statuses[i]
	}
	return result
}

// AnnotateAssigned fills the derived Reviewed flag of assigned articles from
// their resolved statuses. Reviewed means a review exists and was published.
func (r *Resolver) AnnotateAssigned(ctx context.Context, articles []models.AssignedArticle) []models.AssignedArticle {
	ids := make([]int64, len(articles))
	for i, a := range articles {
		ids[i] = a.ArticleID
	}
	statuses := r.StatusAll(ctx, ids)

	annotated := make([]models.AssignedArticle, len(articles))
	for i, a := range articles {
		a.Reviewed = statuses[a.ArticleID] == models.ReviewStatusCompleted
		annotated[i] = a
	}
	return annotated
}

// compute runs the two-step remote derivation. The second return reports
// whether the result may be cached; statuses degraded by a transport failure
// are not, so the next query retries.
func (r *Resolver) compute(ctx context.Context, articleID int64) (models.ReviewStatus, bool) {
	published, err := r.api.HasPublishedReview(ctx, articleID)
	if err != nil {
		log.Warn().
			Err(err).
			Int64("article_id", articleID).
			Msg("published-review check failed, degrading to pending")
		return models.ReviewStatusPending, false
	}
	if published {
		return models.ReviewStatusCompleted, true
	}

	own, err := r.api.FetchOwnReview(ctx, articleID, r.reviewer.ReviewerID)
	if err != nil {
		log.Warn().
			Err(err).
			Int64("article_id", articleID).
			Msg("own-review check failed, degrading to pending")
		return models.ReviewStatusPending, false
	}
	if own != nil {
		return models.ReviewStatusDraft, true
	}
	return models.ReviewStatusPending, true
}

// handleReviewUpdated applies an event to the cache. An event with a state
// settles the status without a network round-trip; one without clears the
// entry so the next query recomputes. Either way the article's token rotates,
// which disarms any lookup still in flight.
func (r *Resolver) handleReviewUpdated(event events.ReviewUpdated) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tokens[event.ArticleID] = uuid.New()

	if event.State == nil {
		delete(r.cache, event.ArticleID)
		log.Debug().
			Int64("article_id", event.ArticleID).
			Msg("review-updated without state, cache entry cleared")
		return
	}

	status := statusForState(*event.State)
	r.cache[event.ArticleID] = status
	log.Debug().
		Int64("article_id", event.ArticleID).
		Str("status", string(status)).
		Msg("review-updated applied to cache")
}

func statusForState(state events.ReviewState) models.ReviewStatus {
	switch state {
	case events.ReviewStateSent, events.ReviewStateSentEdited:
		return models.ReviewStatusCompleted
	default:
		return models.ReviewStatusDraft
	}
}
