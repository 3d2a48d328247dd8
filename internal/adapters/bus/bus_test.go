package bus

import (
	"context"
	"errors"
	"testing"

	"github.com/relab-mx/scoreboard/internal/domain/events"
)

func TestInProcessBus_PublishRunsHandlersInOrder(t *testing.T) {
	ctx := context.Background()
	b := NewInProcessBus()

	var order []int
	b.Subscribe(func(ctx context.Context, evt events.Event) error {
		order = append(order, 1)
		return nil
	})
	b.Subscribe(func(ctx context.Context, evt events.Event) error {
		order = append(order, 2)
		return nil
	})

	evt := events.Event{Kind: events.ResearcherSaved, ResearcherID: "r1"}
	if err := b.Publish(ctx, evt); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	// Synchronous delivery: both handlers ran before Publish returned.
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("expected handlers [1 2], got %v", order)
	}
}

func TestInProcessBus_PublishValidatesEvent(t *testing.T) {
	ctx := context.Background()
	b := NewInProcessBus()

	called := false
	b.Subscribe(func(ctx context.Context, evt events.Event) error {
		called = true
		return nil
	})

	err := b.Publish(ctx, events.Event{Kind: "bogus"})
	if !errors.Is(err, events.ErrInvalidEvent) {
		t.Errorf("expected ErrInvalidEvent, got %v", err)
	}
	if called {
		t.Error("handler must not run for an invalid event")
	}
}

func TestInProcessBus_HandlerErrorsJoin(t *testing.T) {
	ctx := context.Background()
	b := NewInProcessBus()

	errFirst := errors.New("first failed")
	b.Subscribe(func(ctx context.Context, evt events.Event) error {
		return errFirst
	})

	secondRan := false
	b.Subscribe(func(ctx context.Context, evt events.Event) error {
		secondRan = true
		return nil
	})

	evt := events.Event{Kind: events.ResearcherSaved, ResearcherID: "r1"}
	err := b.Publish(ctx, evt)
	if !errors.Is(err, errFirst) {
		t.Errorf("expected joined error to include handler error, got %v", err)
	}
	if !secondRan {
		t.Error("a failing handler must not stop later handlers")
	}
}

func TestInProcessBus_SubscribeNilIsIgnored(t *testing.T) {
	b := NewInProcessBus()
	b.Subscribe(nil)

	evt := events.Event{Kind: events.ResearcherSaved, ResearcherID: "r1"}
	if err := b.Publish(context.Background(), evt); err != nil {
		t.Fatalf("publish with nil subscriber failed: %v", err)
	}
}
