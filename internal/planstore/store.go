package planstore

import (
	"log/slog"
	"sync"

	"github.com/claude/liftcoach/internal/models"
	"github.com/google/uuid"
)

// Store owns the session's plan state. All mutations are serialized and run
// to completion; readers only ever see whole snapshots.
type Store struct {
	mu    sync.Mutex
	state State
	newID func() string
	log   *slog.Logger

	subMu sync.Mutex
	subs  map[chan State]struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides the id source used for new plans and exercises.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// New creates a Store holding initial.
func New(initial State, log *slog.Logger, opts ...Option) *Store {
	s := &Store{
		state: initial.Clone(),
		newID: uuid.NewString,
		log:   log,
		subs:  make(map[chan State]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current state. The returned value is never mutated by
// the store, but callers must treat it as read-only.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe returns a channel that receives the state after each mutation,
// and a function that ends the subscription. A slow subscriber misses
// intermediate snapshots rather than blocking writers.
func (s *Store) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)
	s.subMu.Lock()
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, ch)
			s.subMu.Unlock()
		})
	}
}

// apply runs op under the write lock and publishes the result.
func (s *Store) apply(action string, op func(State) State) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := op(s.state)
	s.state = next
	// Publishing under the write lock keeps subscribers in mutation order.
	s.publish(next)

	s.log.Debug("plan store mutation", "action", action, "plans", len(next.Plans), "selected", next.SelectedPlanID)
	return next
}

func (s *Store) publish(st State) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- st:
		default:
			// Replace the stale pending snapshot with the latest one.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- st:
			default:
			}
		}
	}
}

// AddPlan creates and selects a new empty plan.
func (s *Store) AddPlan() State {
	id := s.newID()
	return s.apply("add_plan", func(st State) State { return AddPlan(st, id) })
}

// RenamePlan renames a plan.
func (s *Store) RenamePlan(planID, name string) State {
	return s.apply("rename_plan", func(st State) State { return RenamePlan(st, planID, name) })
}

// DeletePlan removes a plan, moving the selection if needed.
func (s *Store) DeletePlan(planID string) State {
	return s.apply("delete_plan", func(st State) State { return DeletePlan(st, planID) })
}

// SelectPlan selects a plan.
func (s *Store) SelectPlan(planID string) State {
	return s.apply("select_plan", func(st State) State { return SelectPlan(st, planID) })
}

// AddExercise appends a default exercise named name to a plan.
func (s *Store) AddExercise(planID, name string) State {
	id := s.newID()
	return s.apply("add_exercise", func(st State) State { return AddExercise(st, planID, id, name) })
}

// UpdateExercise replaces an exercise record.
func (s *Store) UpdateExercise(planID string, e models.Exercise) State {
	return s.apply("update_exercise", func(st State) State { return UpdateExercise(st, planID, e) })
}

// DeleteExercise removes an exercise.
func (s *Store) DeleteExercise(planID, exerciseID string) State {
	return s.apply("delete_exercise", func(st State) State { return DeleteExercise(st, planID, exerciseID) })
}
