package event

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestPublishRunsSubscribersInOrder(t *testing.T) {
	logger, _ := test.NewNullLogger()
	bus := NewBus(logger, time.Second)
	var order []string
	record := func(id string) Subscriber {
		return SubscriberFunc{ID: id, Fn: func(ctx context.Context, ev Event) error {
			order = append(order, id)
			return nil
		}}
	}
	bus.Subscribe(FavoredCreatedName, record("first"), record("second"))
	bus.Subscribe(FavoredCreatedName, record("third"))
	bus.Subscribe(UserCreatedName, record("other"))

	if err := bus.Publish(context.Background(), FavoredCreated{ID: "f-1"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if strings.Join(order, ",") != "first,second,third" {
		t.Fatalf("unexpected order: %v", order)
	}
}

func TestPublishKeepsGoingAfterFailures(t *testing.T) {
	logger, hook := test.NewNullLogger()
	bus := NewBus(logger, time.Second)
	delivered := false
	bus.Subscribe(FavoredCreatedName,
		SubscriberFunc{ID: "broken", Fn: func(context.Context, Event) error { return errors.New("broker down") }},
		SubscriberFunc{ID: "panicky", Fn: func(context.Context, Event) error { panic("boom") }},
		SubscriberFunc{ID: "ok", Fn: func(context.Context, Event) error { delivered = true; return nil }},
	)

	err := bus.Publish(context.Background(), FavoredCreated{ID: "f-1"})
	if err == nil {
		t.Fatal("expected joined error")
	}
	if !strings.Contains(err.Error(), "broken: broker down") || !strings.Contains(err.Error(), "panicky") {
		t.Fatalf("unexpected error: %v", err)
	}
	if !delivered {
		t.Fatal("subscriber after failures must still run")
	}
	warnings := 0
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
		}
	}
	if warnings != 2 {
		t.Fatalf("expected 2 warnings, got %d", warnings)
	}
}

func TestPublishIgnoresCallerCancellation(t *testing.T) {
	logger, _ := test.NewNullLogger()
	bus := NewBus(logger, time.Second)
	var seen error
	bus.Subscribe(UserCreatedName, SubscriberFunc{ID: "ctx", Fn: func(ctx context.Context, ev Event) error {
		seen = ctx.Err()
		return nil
	}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := bus.Publish(ctx, UserCreated{ID: "u-1"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if seen != nil {
		t.Fatalf("subscriber saw canceled context: %v", seen)
	}
}
