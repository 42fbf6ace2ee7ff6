// Package events carries mutation outcomes from the data layer to whoever displays
// or reloads the list.
package events

import "sync"

// Op identifies the mutation that produced an event
type Op int

const (
	OpCreate Op = iota
	OpUpdate
	OpDelete
)

func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}
	return "unknown"
}

// Event is published once per finished mutation
type Event struct {
	Op  Op
	ID  string // empty for creates
	Err error
}

// Succeeded reports whether the mutation was applied by the service
func (e Event) Succeeded() bool { return e.Err == nil }


// subscriber queues events until its reader takes them
type subscriber struct {
	out   chan Event
	wake  chan struct{}
	done  chan struct{}
	queue []Event
}

// Bus fans out events to every subscriber
type Bus struct {
	mu     sync.Mutex
	subs   map[int]*subscriber
	nextID int
	closed bool
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{subs: make(map[int]*subscriber)}
}

// Subscribe returns a channel of future events and a function to stop receiving them.
// The channel is closed once the subscription ends.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event)
		close(ch)
		return ch, func() {}
	}

	s := &subscriber{
		out:  make(chan Event),
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = s
	go b.pump(s)

	var once sync.Once
	return s.out, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(s.done)
			}
		})
	}
}

// pump hands queued events to the reader in publish order
func (b *Bus) pump(s *subscriber) {
	defer close(s.out)
	for {
		b.mu.Lock()
		if len(s.queue) == 0 {
			b.mu.Unlock()
			select {
			case <-s.wake:
				continue
			case <-s.done:
				return
			}
		}
		e := s.queue[0]
		s.queue = s.queue[1:]
		b.mu.Unlock()

		select {
		case s.out <- e:
		case <-s.done:
			return
		}
	}
}

// Publish queues e for every subscriber and returns how many there were.
// It never blocks on a slow reader.
func (b *Bus) Publish(e Event) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, s := range b.subs {
		s.queue = append(s.queue, e)
		select {
		case s.wake <- struct{}{}:
		default:
		}
	}
	return len(b.subs)
}

// Close stops the bus and ends every subscription
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, s := range b.subs {
		close(s.done)
		delete(b.subs, id)
	}
}
