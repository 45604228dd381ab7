package coach

import "sync"

// Signal fans out "something changed" notifications. Pending notifications
// coalesce, so a subscriber that falls behind sees one wake-up.
type Signal struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

// NewSignal creates a Signal with no subscribers.
func NewSignal() *Signal {
	return &Signal{subs: make(map[chan struct{}]struct{})}
}

// Notify wakes every subscriber.
func (s *Signal) Notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribe returns a wake-up channel and a function that ends the subscription.
func (s *Signal) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, ch)
			s.mu.Unlock()
		})
	}
}
