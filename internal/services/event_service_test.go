package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"pointage/pkg/metrics"
)

func TestEventDispatcherDrainsWithoutBroker(t *testing.T) {
	d := NewNatsEventDispatcher(nil, metrics.NewRegistry())
	d.Start()

	for i := 0; i < 10; i++ {
		d.Publish(EventPointageCreated, uuid.New(), map[string]string{"n": "payload"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := d.Stop(ctx); err != nil {
		t.Fatalf("Stop returned %v, want clean drain", err)
	}
}

func TestEventDispatcherNeverBlocksWhenFull(t *testing.T) {
	// Worker not started: the queue fills up and further publishes must
	// drop instead of blocking the caller.
	d := NewNatsEventDispatcher(nil, metrics.NewRegistry())

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			d.Publish(EventPointageCreated, uuid.Nil, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full queue")
	}
}
