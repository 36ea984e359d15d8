// Package notification holds the subscribers that react to committed domain
// events: cache invalidation, search indexing, broker forwarding and email.
package notification

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-finances/config"
	"github.com/oksasatya/go-finances/internal/application/event"
	"github.com/oksasatya/go-finances/internal/application/favored"
	"github.com/oksasatya/go-finances/internal/domain/repository"
	"github.com/oksasatya/go-finances/pkg/mailer"
	mailtpl "github.com/oksasatya/go-finances/pkg/mailer/templates"
)

// EmailQueue enqueues jobs for the email worker.
type EmailQueue interface {
	PublishJSON(ctx context.Context, body any) error
}

// EventSink forwards events to the message broker, keyed by event name.
type EventSink interface {
	PublishEvent(ctx context.Context, routingKey string, body any) error
}

type Indexer interface {
	Put(ctx context.Context, doc favored.Document) error
}

// Deps are all optional; a nil dependency leaves its subscriber unregistered.
type Deps struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Cache    favored.ListCache
	Index    Indexer
	Broker   EventSink
	Emails   EmailQueue
	Contacts repository.UserRepository
	Now      func() time.Time
}

var allEvents = []string{event.UserCreatedName, event.FavoredCreatedName, event.FavoredAccountLinkedName}

// Register subscribes in a fixed order: log, cache, index, broker, email.
func Register(bus *event.Bus, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Logger != nil {
		for _, name := range allEvents {
			bus.Subscribe(name, LogEvents(d.Logger))
		}
	}
	if d.Cache != nil {
		bus.Subscribe(event.FavoredCreatedName, InvalidateFavoredList(d.Cache))
		bus.Subscribe(event.FavoredAccountLinkedName, InvalidateFavoredList(d.Cache))
	}
	if d.Index != nil {
		bus.Subscribe(event.FavoredCreatedName, IndexFavored(d.Index))
	}
	if d.Broker != nil {
		for _, name := range allEvents {
			bus.Subscribe(name, Forward(d.Broker))
		}
	}
	if d.Emails != nil && d.Config != nil {
		bus.Subscribe(event.UserCreatedName, WelcomeEmail(d.Emails, d.Config, d.Now))
		if d.Contacts != nil {
			bus.Subscribe(event.FavoredCreatedName, FavoredRegisteredEmail(d.Emails, d.Contacts, d.Config, d.Now))
		}
	}
}

func LogEvents(logger *logrus.Logger) event.Subscriber {
	return event.SubscriberFunc{ID: "log", Fn: func(_ context.Context, ev event.Event) error {
		logger.WithField("event", ev.EventName()).WithField("payload", ev).Info("domain event")
		return nil
	}}
}

func InvalidateFavoredList(cache favored.ListCache) event.Subscriber {
	return event.SubscriberFunc{ID: "favored-cache", Fn: func(ctx context.Context, ev event.Event) error {
		switch e := ev.(type) {
		case event.FavoredCreated:
			return cache.Invalidate(ctx, e.OwnerUserID)
		case event.FavoredAccountLinked:
			return cache.Invalidate(ctx, e.OwnerUserID)
		}
		return nil
	}}
}

func IndexFavored(idx Indexer) event.Subscriber {
	return event.SubscriberFunc{ID: "favored-index", Fn: func(ctx context.Context, ev event.Event) error {
		e, ok := ev.(event.FavoredCreated)
		if !ok {
			return nil
		}
		return idx.Put(ctx, favored.Document{ID: e.ID, OwnerUserID: e.OwnerUserID, Name: e.Name, TaxNumber: e.TaxNumber})
	}}
}

func Forward(sink EventSink) event.Subscriber {
	return event.SubscriberFunc{ID: "broker", Fn: func(ctx context.Context, ev event.Event) error {
		return sink.PublishEvent(ctx, ev.EventName(), ev)
	}}
}

// WelcomeEmail skips users that signed up without an email address.
func WelcomeEmail(q EmailQueue, cfg *config.Config, now func() time.Time) event.Subscriber {
	return event.SubscriberFunc{ID: "welcome-email", Fn: func(ctx context.Context, ev event.Event) error {
		e, ok := ev.(event.UserCreated)
		if !ok || e.Email == "" {
			return nil
		}
		return q.PublishJSON(ctx, mailer.EmailJob{
			To:       e.Email,
			Template: mailtpl.Welcome,
			Event:    e.EventName(),
			Data:     mailtpl.NewWelcomeData(cfg, e.FirstName, e.Email, mailtpl.WithTime(now())),
		})
	}}
}

// FavoredRegisteredEmail tells the owner a favored was added to their list.
func FavoredRegisteredEmail(q EmailQueue, contacts repository.UserRepository, cfg *config.Config, now func() time.Time) event.Subscriber {
	return event.SubscriberFunc{ID: "favored-email", Fn: func(ctx context.Context, ev event.Event) error {
		e, ok := ev.(event.FavoredCreated)
		if !ok {
			return nil
		}
		c, err := contacts.ContactOf(ctx, e.OwnerUserID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if c.Email == "" {
			return nil
		}
		return q.PublishJSON(ctx, mailer.EmailJob{
			To:       c.Email,
			Template: mailtpl.FavoredRegistered,
			Event:    e.EventName(),
			Data:     mailtpl.NewFavoredRegisteredData(cfg, "", c.Email, e.Name, e.TaxNumber, mailtpl.WithTime(now())),
		})
	}}
}
