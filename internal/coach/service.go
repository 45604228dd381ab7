package coach

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/claude/liftcoach/internal/models"
	"github.com/claude/liftcoach/internal/planstore"
	"github.com/claude/liftcoach/internal/suggest"
)

// Editable exercise fields for EditExerciseField.
const (
	FieldSets   = "sets"
	FieldReps   = "reps"
	FieldWeight = "weight"
)

// ErrUnknownField is returned by EditExerciseField for fields other than
// sets, reps and weight.
var ErrUnknownField = errors.New("unknown exercise field")

// Service routes user intents to the store and the orchestrator and returns
// the view derived from the resulting state. Mutations that target unknown
// ids are no-ops, not errors.
type Service struct {
	store  *planstore.Store
	orch   *suggest.Orchestrator
	signal *Signal
	log    *slog.Logger
}

// NewService creates a Service. signal should be notified by the
// orchestrator on every request state transition.
func NewService(store *planstore.Store, orch *suggest.Orchestrator, signal *Signal, log *slog.Logger) *Service {
	return &Service{store: store, orch: orch, signal: signal, log: log}
}

func (s *Service) view(st planstore.State) *View {
	v := DeriveView(st, s.orch.State())
	return &v
}

// View returns the current view.
func (s *Service) View(_ context.Context) (*View, error) {
	return s.view(s.store.Snapshot()), nil
}

// Plans returns the current plan collection.
func (s *Service) Plans(_ context.Context) ([]models.TrainingPlan, error) {
	return s.store.Snapshot().Clone().Plans, nil
}

// AddPlan creates and selects a new plan.
func (s *Service) AddPlan(_ context.Context) (*View, error) {
	return s.view(s.store.AddPlan()), nil
}

// RenamePlan renames a plan.
func (s *Service) RenamePlan(_ context.Context, planID, name string) (*View, error) {
	return s.view(s.store.RenamePlan(planID, name)), nil
}

// DeletePlan deletes a plan.
func (s *Service) DeletePlan(_ context.Context, planID string) (*View, error) {
	return s.view(s.store.DeletePlan(planID)), nil
}

// SelectPlan selects a plan.
func (s *Service) SelectPlan(_ context.Context, planID string) (*View, error) {
	return s.view(s.store.SelectPlan(planID)), nil
}

// AddExercise adds a default exercise to a plan.
func (s *Service) AddExercise(_ context.Context, planID, name string) (*View, error) {
	return s.view(s.store.AddExercise(planID, name)), nil
}

// UpdateExercise replaces an exercise record. Negative numbers are clamped to zero.
func (s *Service) UpdateExercise(_ context.Context, planID string, e models.Exercise) (*View, error) {
	return s.view(s.store.UpdateExercise(planID, e.Normalize())), nil
}

// EditExerciseField applies a single live field edit, coercing the text to a number.
func (s *Service) EditExerciseField(ctx context.Context, planID, exerciseID, field, value string) (*View, error) {
	plan, ok := s.store.Snapshot().Plan(planID)
	if !ok {
		return s.View(ctx)
	}
	i := plan.ExerciseIndex(exerciseID)
	if i < 0 {
		return s.View(ctx)
	}

	e := plan.Exercises[i]
	switch field {
	case FieldSets:
		e.Sets = CoerceCount(value)
	case FieldReps:
		e.Reps = CoerceCount(value)
	case FieldWeight:
		e.Weight = CoerceWeight(value)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return s.UpdateExercise(ctx, planID, e)
}

// DeleteExercise removes an exercise from a plan.
func (s *Service) DeleteExercise(_ context.Context, planID, exerciseID string) (*View, error) {
	return s.view(s.store.DeleteExercise(planID, exerciseID)), nil
}

// RequestSuggestions asks for feedback on the plan selected right now. With
// wait set it blocks until the request settles or ctx ends; otherwise it
// returns the state right after the request started.
func (s *Service) RequestSuggestions(ctx context.Context, wait bool) (*suggest.RequestState, error) {
	var plan *models.TrainingPlan
	if p, ok := s.store.Snapshot().SelectedPlan(); ok {
		plan = &p
		s.log.Debug("suggestions requested", "plan_id", p.ID, "wait", wait)
	}

	st, done := s.orch.Request(ctx, plan)
	if !wait {
		return &st, nil
	}
	select {
	case settled := <-done:
		return &settled, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Suggestions returns the current request state.
func (s *Service) Suggestions(_ context.Context) (*suggest.RequestState, error) {
	st := s.orch.State()
	return &st, nil
}

// DismissSuggestions closes the result view.
func (s *Service) DismissSuggestions(_ context.Context) (*View, error) {
	s.orch.Dismiss()
	return s.view(s.store.Snapshot()), nil
}

// Watch streams a fresh view after every store mutation and every request
// state transition, starting with the current view. The channel closes when
// ctx ends.
func (s *Service) Watch(ctx context.Context) <-chan View {
	out := make(chan View, 1)
	storeCh, stopStore := s.store.Subscribe()
	sigCh, stopSig := s.signal.Subscribe()

	go func() {
		defer close(out)
		defer stopStore()
		defer stopSig()

		send := func(v View) bool {
			select {
			case out <- v:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !send(*s.view(s.store.Snapshot())) {
			return
		}
		for {
			var v View
			select {
			case <-ctx.Done():
				return
			case st := <-storeCh:
				v = *s.view(st)
			case <-sigCh:
				v = *s.view(s.store.Snapshot())
			}
			if !send(v) {
				return
			}
		}
	}()
	return out
}
