package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReviewState is the save-state hint carried by a review-updated event.
// When present, subscribers can derive the new review status directly
// instead of refetching.
type ReviewState string

const (
	ReviewStateDraft      ReviewState = "draft"
	ReviewStateSent       ReviewState = "sent"
	ReviewStateSentEdited ReviewState = "sent_edited"
)

// ReviewUpdated announces that a review for an article was saved. State is
// optional; without it subscribers must recompute from the server.
type ReviewUpdated struct {
	EventID    uuid.UUID    `json:"event_id"`
	ArticleID  int64        `json:"article_id"`
	State      *ReviewState `json:"state,omitempty"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// NewReviewUpdated builds an event with a fresh id. state may be nil.
func NewReviewUpdated(articleID int64, state *ReviewState, at time.Time) ReviewUpdated {
	return ReviewUpdated{
		EventID:    uuid.New(),
		ArticleID:  articleID,
		State:      state,
		OccurredAt: at,
	}
}

// Handler consumes a review-updated event.
type Handler func(ReviewUpdated)

// Bus is the typed publish/subscribe channel for review-updated events.
// Subscribe returns an unsubscribe func; it is safe to call more than once.
type Bus interface {
	PublishReviewUpdated(ctx context.Context, event ReviewUpdated) error
	SubscribeReviewUpdated(handler Handler) (unsubscribe func(), err error)
}
