package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Subscriber reacts to one event. Returning an error never undoes the write that raised the event.
type Subscriber interface {
	Name() string
	Handle(ctx context.Context, ev Event) error
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc struct {
	ID string
	Fn func(ctx context.Context, ev Event) error
}

func (s SubscriberFunc) Name() string                               { return s.ID }
func (s SubscriberFunc) Handle(ctx context.Context, ev Event) error { return s.Fn(ctx, ev) }

// Publisher is what handlers depend on.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Bus delivers each event to its subscribers in registration order, at most once.
type Bus struct {
	mu      sync.RWMutex
	subs    map[string][]Subscriber
	logger  *logrus.Logger
	timeout time.Duration
}

func NewBus(logger *logrus.Logger, timeout time.Duration) *Bus {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Bus{subs: make(map[string][]Subscriber), logger: logger, timeout: timeout}
}

func (b *Bus) Subscribe(eventName string, subs ...Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[eventName] = append(b.subs[eventName], subs...)
}

func (b *Bus) Subscribers(eventName string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[eventName])
}

// Publish runs every subscriber even when an earlier one fails, logs each failure
// and returns them joined. Delivery is detached from the caller's cancellation:
// the event describes a committed write.
func (b *Bus) Publish(ctx context.Context, ev Event) error {
	b.mu.RLock()
	subs := append([]Subscriber(nil), b.subs[ev.EventName()]...)
	b.mu.RUnlock()
	if len(subs) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.timeout)
	defer cancel()

	var errs []error
	for _, s := range subs {
		if err := deliver(ctx, s, ev); err != nil {
			b.log().WithError(err).WithFields(logrus.Fields{
				"event":      ev.EventName(),
				"subscriber": s.Name(),
			}).Warn("event delivery failed")
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

func deliver(ctx context.Context, s Subscriber, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("subscriber panic: %v", r)
		}
	}()
	return s.Handle(ctx, ev)
}

func (b *Bus) log() *logrus.Logger {
	if b.logger == nil {
		return logrus.StandardLogger()
	}
	return b.logger
}
