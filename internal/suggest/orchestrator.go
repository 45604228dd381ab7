package suggest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/claude/liftcoach/internal/models"
)

// Generator is the external suggestion collaborator. It returns the model's
// raw text, which the orchestrator parses and validates itself.
type Generator interface {
	GenerateSuggestions(ctx context.Context, planName string, exercises []models.Exercise) ([]byte, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, planName string, exercises []models.Exercise) ([]byte, error)

// GenerateSuggestions calls f.
func (f GeneratorFunc) GenerateSuggestions(ctx context.Context, planName string, exercises []models.Exercise) ([]byte, error) {
	return f(ctx, planName, exercises)
}

// Orchestrator runs suggestion requests and owns the single RequestState.
type Orchestrator struct {
	gen Generator
	log *slog.Logger

	mu    sync.Mutex
	state RequestState
	seq   uint64

	onChange func(RequestState)
	onOpen   func(RequestState)
	report   func(error)
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithOnChange registers a hook called after every state transition. The hook
// runs while the orchestrator is locked and must not call back into it.
func WithOnChange(fn func(RequestState)) Option {
	return func(o *Orchestrator) { o.onChange = fn }
}

// WithOnOpen registers a hook called once per request when its result view opens.
func WithOnOpen(fn func(RequestState)) Option {
	return func(o *Orchestrator) { o.onOpen = fn }
}

// WithErrorReporter registers a sink for collaborator errors.
func WithErrorReporter(fn func(error)) Option {
	return func(o *Orchestrator) { o.report = fn }
}

// New creates an Orchestrator in the idle phase.
func New(gen Generator, log *slog.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		gen:   gen,
		log:   log,
		state: RequestState{Phase: PhaseIdle},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current request state.
func (o *Orchestrator) State() RequestState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Dismiss closes the result view.
func (o *Orchestrator) Dismiss() RequestState {
	return o.transition(Dismissed{})
}

// Request starts a suggestion request for plan. It returns the state right
// after the synchronous part (loading, or settled on a failed precondition)
// and a channel that receives the settled state once and is then closed.
//
// The plan is copied before any suspension; later edits to the store do not
// affect the request. The generator runs with ctx's values but not its
// cancellation, so the request outlives the caller that triggered it.
func (o *Orchestrator) Request(ctx context.Context, plan *models.TrainingPlan) (RequestState, <-chan RequestState) {
	done := make(chan RequestState, 1)

	o.mu.Lock()
	o.seq++
	seq := o.seq
	o.mu.Unlock()

	if plan == nil || len(plan.Exercises) == 0 {
		st := o.settle(Rejected{Seq: seq, Message: MsgPrecondition})
		done <- st
		close(done)
		return st, done
	}

	snapshot := plan.Clone()
	st := o.transition(Started{Seq: seq})
	o.log.Info("suggestion request started", "seq", seq, "plan", snapshot.Name, "exercises", len(snapshot.Exercises))

	go func() {
		defer close(done)
		done <- o.run(context.WithoutCancel(ctx), seq, snapshot)
	}()

	return st, done
}

func (o *Orchestrator) run(ctx context.Context, seq uint64, plan models.TrainingPlan) (st RequestState) {
	defer func() {
		if r := recover(); r != nil {
			st = o.fail(seq, fmt.Errorf("suggestion generator panic: %v", r))
		}
	}()

	raw, err := o.gen.GenerateSuggestions(ctx, plan.Name, plan.Exercises)
	if err != nil {
		return o.fail(seq, fmt.Errorf("generating suggestions: %w", err))
	}

	suggestions, err := models.ParseSuggestions(raw)
	if err != nil {
		return o.fail(seq, fmt.Errorf("parsing suggestions: %w", err))
	}

	o.log.Info("suggestion request succeeded", "seq", seq, "tips", len(suggestions.ExerciseSuggestions))
	return o.settle(Succeeded{Seq: seq, Suggestions: suggestions})
}

func (o *Orchestrator) fail(seq uint64, err error) RequestState {
	o.log.Error("suggestion request failed", "seq", seq, "error", err)
	if o.report != nil {
		o.report(err)
	}
	return o.settle(Failed{Seq: seq, Message: MsgFailed})
}

// settle applies a terminal event and opens the result view.
func (o *Orchestrator) settle(e Event) RequestState {
	st := o.transition(e)
	if o.onOpen != nil {
		o.onOpen(st)
	}
	return st
}

func (o *Orchestrator) transition(e Event) RequestState {
	o.mu.Lock()
	o.state = Transition(o.state, e)
	st := o.state
	if o.onChange != nil {
		// Called under the lock so observers see transitions in order.
		o.onChange(st)
	}
	o.mu.Unlock()
	return st
}
