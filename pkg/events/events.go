// Package events fans auth-state changes out to every interested listener
// without a global event bus.
package events

import (
	"sync"
	"time"
)

type AuthEventKind uint8

const (
	AuthLogin AuthEventKind = iota + 1
	AuthLogout
	// AuthTeardown is published when an admin-scoped 401 wipes the session.
	AuthTeardown
)

var authEventKindMap = map[AuthEventKind]string{
	AuthLogin:    "login",
	AuthLogout:   "logout",
	AuthTeardown: "teardown",
}

func (k AuthEventKind) String() string {
	return authEventKindMap[k]
}

type AuthEvent struct {
	Scope  string
	Kind   AuthEventKind
	UserID string
	At     time.Time
}

// Broker delivers every published value to all current subscribers.
// Publish never blocks: a subscriber whose buffer is full misses the value.
type Broker[T any] struct {
	mu     sync.RWMutex
	subs   map[int]chan T
	nextID int
	closed bool
}

func NewBroker[T any]() *Broker[T] {
	return &Broker[T]{subs: make(map[int]chan T)}
}

// Subscribe returns a receive channel and a function that unsubscribes and
// closes it. Calling the function more than once is harmless.
func (b *Broker[T]) Subscribe(buffer int) (<-chan T, func()) {
	ch := make(chan T, buffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
}

func (b *Broker[T]) Publish(v T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- v:
		default:
		}
	}
}

func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		close(ch)
		delete(b.subs, id)
	}
}
