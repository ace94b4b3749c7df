package session

import "sync"

// EventKind tags a session event.
type EventKind string

const (
	EventState           EventKind = "STATE"
	EventError           EventKind = "ERROR"
	EventSuccess         EventKind = "SUCCESS"
	EventSessionComplete EventKind = "SESSION_COMPLETE"
	EventStreakMilestone EventKind = "STREAK_MILESTONE"
)

// Event is delivered to subscribers after every change.
type Event struct {
	Kind  EventKind
	State State
}

// subscriberBuffer is the per-subscriber channel capacity.
const subscriberBuffer = 32

// broadcaster fans events out to subscribers without ever blocking the
// engine. A subscriber that falls behind loses its oldest events.
type broadcaster struct {
	mu   sync.Mutex
	next int
	subs map[int]chan Event
}

func (b *broadcaster) subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = make(map[int]chan Event)
	}
	id := b.next
	b.next++
	ch := make(chan Event, subscriberBuffer)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (b *broadcaster) publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- ev:
			continue
		default:
		}
		// Full: make room by dropping the oldest.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- ev:
		default:
		}
	}
}
