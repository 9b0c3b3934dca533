package pubsub

import (
	"context"
	"sync"

	"shopify-oms-app/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const subscriptionBuffer = 16

// Filter selects the events a subscriber receives. Empty fields match all.
type Filter struct {
	Shop   string
	Topics []string
}

func (f Filter) matches(event domain.WebhookEvent) bool {
	if f.Shop != "" && f.Shop != event.Shop {
		return false
	}
	if len(f.Topics) == 0 {
		return true
	}
	for _, topic := range f.Topics {
		if topic == event.Topic {
			return true
		}
	}
	return false
}

// Subscription receives events until its context ends. Events is closed
// when the subscription is removed.
type Subscription struct {
	ID     string
	Events <-chan domain.WebhookEvent

	events chan domain.WebhookEvent
	filter Filter
}

// Broker fans verified webhook events out to in-process subscribers. Slow
// subscribers lose events rather than block webhook delivery.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]*Subscription

	logger zerolog.Logger
}

func NewBroker(logger zerolog.Logger) *Broker {
	return &Broker{
		subs:   make(map[string]*Subscription),
		logger: logger,
	}
}

// Subscribe registers a subscriber that is removed when ctx is done
func (b *Broker) Subscribe(ctx context.Context, filter Filter) *Subscription {
	events := make(chan domain.WebhookEvent, subscriptionBuffer)
	sub := &Subscription{
		ID:     uuid.NewString(),
		Events: events,
		events: events,
		filter: filter,
	}

	b.mu.Lock()
	b.subs[sub.ID] = sub
	b.mu.Unlock()

	b.logger.Debug().Str("subscription_id", sub.ID).Str("shop", filter.Shop).Msg("Webhook event subscription added")

	go func() {
		<-ctx.Done()
		b.unsubscribe(sub.ID)
	}()

	return sub
}

func (b *Broker) unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub, ok := b.subs[id]
	if !ok {
		return
	}
	delete(b.subs, id)
	close(sub.events)

	b.logger.Debug().Str("subscription_id", id).Msg("Webhook event subscription removed")
}

// Publish delivers event to every matching subscriber without blocking
func (b *Broker) Publish(event domain.WebhookEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, sub := range b.subs {
		if !sub.filter.matches(event) {
			continue
		}
		select {
		case sub.events <- event:
		default:
			b.logger.Warn().
				Str("subscription_id", sub.ID).
				Str("topic", event.Topic).
				Msg("Subscriber buffer full, dropping webhook event")
		}
	}
}

// Subscribers returns the number of active subscriptions
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
