package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/problem-finder/internal/events"
	"github.com/jonesrussell/problem-finder/internal/testhelpers"
)

func newTestPublisher(t *testing.T) (*events.Publisher, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return events.NewPublisher(client, testhelpers.NewTestLogger()), mr
}

func TestPublish(t *testing.T) {
	pub, mr := newTestPublisher(t)

	err := pub.Publish(context.Background(), events.Event{
		EventType: events.EventProblemViewed,
		ProblemID: "p1",
	})
	require.NoError(t, err)

	entries, err := mr.Stream(events.StreamName)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.Len(t, entries[0].Values, 2)
	assert.Equal(t, "event", entries[0].Values[0])

	var got events.Event
	require.NoError(t, json.Unmarshal([]byte(entries[0].Values[1]), &got))
	assert.Equal(t, events.EventProblemViewed, got.EventType)
	assert.Equal(t, "p1", got.ProblemID)
	assert.NotZero(t, got.EventID, "event id is assigned when absent")
	assert.False(t, got.Timestamp.IsZero())
}

func TestPublishFallbackEvent(t *testing.T) {
	pub, mr := newTestPublisher(t)

	err := pub.Publish(context.Background(), events.Event{
		EventType: events.EventCatalogFallback,
		Reason:    "store_error",
	})
	require.NoError(t, err)

	entries, err := mr.Stream(events.StreamName)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	var got events.Event
	require.NoError(t, json.Unmarshal([]byte(entries[0].Values[1]), &got))
	assert.Equal(t, events.EventCatalogFallback, got.EventType)
	assert.Equal(t, "store_error", got.Reason)
}

func TestPublishAsync(t *testing.T) {
	pub, mr := newTestPublisher(t)

	pub.PublishAsync(events.Event{EventType: events.EventProblemViewed, ProblemID: "p2"})

	require.Eventually(t, func() bool {
		entries, err := mr.Stream(events.StreamName)
		return err == nil && len(entries) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNilPublisherIsNoOp(t *testing.T) {
	var pub *events.Publisher

	assert.NoError(t, pub.Publish(context.Background(), events.Event{EventType: events.EventProblemViewed}))
	pub.PublishAsync(events.Event{EventType: events.EventProblemViewed})

	assert.Nil(t, events.NewPublisher(nil, testhelpers.NewTestLogger()))
}

func TestPublishConnectionFailure(t *testing.T) {
	pub, mr := newTestPublisher(t)
	mr.Close()

	err := pub.Publish(context.Background(), events.Event{EventType: events.EventProblemViewed})
	assert.Error(t, err)
}
