package events

import (
	"context"
	"fmt"
	"sync"
)

// Handler receives the payload published on a channel.
// A non-nil error stops delivery to the remaining handlers.
type Handler func(ctx context.Context, payload any) error

// Subscription identifies one registration of a handler.
type Subscription struct {
	channel string
	handler Handler
}

// Channel returns the channel the subscription listens on.
func (s *Subscription) Channel() string {
	return s.channel
}

// Bus is a synchronous, in-process publish/subscribe register keyed by
// channel name.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]*Subscription
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string][]*Subscription)}
}

// Subscribe registers h on channel. The same handler may be registered more
// than once; each registration gets its own Subscription.
func (b *Bus) Subscribe(channel string, h Handler) *Subscription {
	sub := &Subscription{channel: channel, handler: h}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[channel] = append(b.subs[channel], sub)
	return sub
}

// Unsubscribe removes the first registration matching sub on channel and
// reports whether one was found.
func (b *Bus) Unsubscribe(channel string, sub *Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[channel]
	for i, s := range subs {
		if s == sub {
			b.subs[channel] = append(subs[:i:i], subs[i+1:]...)
			if len(b.subs[channel]) == 0 {
				delete(b.subs, channel)
			}
			return true
		}
	}
	return false
}

// Publish calls every handler registered on channel, in registration order,
// on the caller's goroutine. Registrations made or removed by a handler take
// effect on the next Publish.
func (b *Bus) Publish(ctx context.Context, channel string, payload any) error {
	b.mu.RLock()
	subs := b.subs[channel]
	b.mu.RUnlock()

	for _, s := range subs {
		if err := s.handler(ctx, payload); err != nil {
			return fmt.Errorf("handler on channel %q: %w", channel, err)
		}
	}
	return nil
}

// Subscribers returns the number of registrations on channel.
func (b *Bus) Subscribers(channel string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[channel])
}
