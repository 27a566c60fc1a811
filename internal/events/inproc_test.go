package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInProcBusDispatchesToAllSubscribers(t *testing.T) {
	bus := NewInProcBus()

	var first, second []ReviewUpdated
	_, err := bus.SubscribeReviewUpdated(func(e ReviewUpdated) { first = append(first, e) })
	require.NoError(t, err)
	_, err = bus.SubscribeReviewUpdated(func(e ReviewUpdated) { second = append(second, e) })
	require.NoError(t, err)

	state := ReviewStateSent
	event := NewReviewUpdated(42, &state, time.Now())
	require.NoError(t, bus.PublishReviewUpdated(context.Background(), event))

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, event.EventID, first[0].EventID)
	assert.Equal(t, int64(42), first[0].ArticleID)
	require.NotNil(t, first[0].State)
	assert.Equal(t, ReviewStateSent, *first[0].State)
}

func TestInProcBusUnsubscribe(t *testing.T) {
	bus := NewInProcBus()

	var got int
	unsubscribe, err := bus.SubscribeReviewUpdated(func(ReviewUpdated) { got++ })
	require.NoError(t, err)

	require.NoError(t, bus.PublishReviewUpdated(context.Background(), NewReviewUpdated(1, nil, time.Now())))
	unsubscribe()
	unsubscribe() // safe to call twice
	require.NoError(t, bus.PublishReviewUpdated(context.Background(), NewReviewUpdated(2, nil, time.Now())))

	assert.Equal(t, 1, got)
}

func TestNewReviewUpdatedAssignsIDs(t *testing.T) {
	a := NewReviewUpdated(1, nil, time.Now())
	b := NewReviewUpdated(1, nil, time.Now())
	assert.NotEqual(t, a.EventID, b.EventID)
	assert.Nil(t, a.State)
}
