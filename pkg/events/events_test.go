package events

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gridboard/gridboard/pkg/log"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestPublishSubscribe(t *testing.T) {
	broker := NewBroker()
	broker.Start()
	defer broker.Stop()

	sub := broker.Subscribe()
	assert.Equal(t, 1, broker.SubscriberCount())

	broker.Publish(&Event{
		Type:     EventActionSubmitted,
		Message:  "recover submitted",
		Metadata: map[string]string{"workflow": "workflow1"},
	})

	select {
	case ev := <-sub:
		assert.Equal(t, EventActionSubmitted, ev.Type)
		assert.Equal(t, "workflow1", ev.Metadata["workflow"])
		assert.False(t, ev.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestUnsubscribe(t *testing.T) {
	broker := NewBroker()
	broker.Start()
	defer broker.Stop()

	sub := broker.Subscribe()
	broker.Unsubscribe(sub)

	assert.Equal(t, 0, broker.SubscriberCount())

	// Channel is closed after unsubscribe
	_, open := <-sub
	assert.False(t, open)
}

func TestLogSubscriber(t *testing.T) {
	out := &syncBuffer{}
	log.Init(log.Config{Level: log.DebugLevel, JSONOutput: true, Output: out})

	broker := NewBroker()
	broker.Start()
	defer broker.Stop()

	sub := broker.Subscribe()
	done := make(chan struct{})
	go func() {
		LogSubscriber(sub)
		close(done)
	}()

	broker.Publish(&Event{
		Type:    EventCacheRefreshed,
		Message: "error cache refreshed",
	})

	assert.Eventually(t, func() bool {
		body := out.String()
		return strings.Contains(body, `"component":"events"`) &&
			strings.Contains(body, `"type":"cache.refreshed"`) &&
			strings.Contains(body, "error cache refreshed")
	}, time.Second, 10*time.Millisecond)

	broker.Unsubscribe(sub)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("subscriber did not exit after unsubscribe")
	}
}
