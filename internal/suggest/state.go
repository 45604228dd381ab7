// Package suggest drives the request for AI coaching feedback on a plan and
// tracks its outcome as a small state machine.
package suggest

import "github.com/claude/liftcoach/internal/models"

// Phase is the lifecycle stage of the suggestion request.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseSettled Phase = "settled"
)

// User-visible failure messages.
const (
	MsgPrecondition = "Please select a plan and add at least one exercise to get suggestions."
	MsgFailed       = "Failed to get suggestions from AI. The model may be unavailable or the request failed. Please check your connection and API key."
)

// RequestState is the process-wide view of the latest suggestion request.
// When settled, exactly one of Suggestions and Error is set.
type RequestState struct {
	Phase       Phase               `json:"phase"`
	Suggestions *models.Suggestions `json:"suggestions,omitempty"`
	Error       string              `json:"error,omitempty"`
	// ResultOpen is true once a request has settled and until the result
	// view is dismissed.
	ResultOpen bool `json:"resultOpen"`
	// Seq identifies the request that last wrote this state.
	Seq uint64 `json:"seq"`
}

// Loading reports whether a request is in flight.
func (s RequestState) Loading() bool { return s.Phase == PhaseLoading }

// HasSuggestions reports whether the state settled with suggestions.
func (s RequestState) HasSuggestions() bool { return s.Phase == PhaseSettled && s.Suggestions != nil }

// Event is an input to Transition.
type Event interface{ isEvent() }

// Started marks the beginning of request Seq.
type Started struct{ Seq uint64 }

// Succeeded carries the validated payload of request Seq.
type Succeeded struct {
	Seq         uint64
	Suggestions *models.Suggestions
}

// Failed carries the user-visible message for a failed request Seq.
type Failed struct {
	Seq     uint64
	Message string
}

// Rejected is a precondition failure; the collaborator was never contacted.
type Rejected struct {
	Seq     uint64
	Message string
}

// Dismissed closes the result view.
type Dismissed struct{}

func (Started) isEvent()   {}
func (Succeeded) isEvent() {}
func (Failed) isEvent()    {}
func (Rejected) isEvent()  {}
func (Dismissed) isEvent() {}

// Transition returns the state that follows s after e. Settlement events
// always overwrite the current state, so the last request to settle wins.
func Transition(s RequestState, e Event) RequestState {
	switch ev := e.(type) {
	case Started:
		return RequestState{Phase: PhaseLoading, ResultOpen: s.ResultOpen, Seq: ev.Seq}
	case Succeeded:
		return RequestState{Phase: PhaseSettled, Suggestions: ev.Suggestions, ResultOpen: true, Seq: ev.Seq}
	case Failed:
		return RequestState{Phase: PhaseSettled, Error: ev.Message, ResultOpen: true, Seq: ev.Seq}
	case Rejected:
		return RequestState{Phase: PhaseSettled, Error: ev.Message, ResultOpen: true, Seq: ev.Seq}
	case Dismissed:
		s.ResultOpen = false
		return s
	}
	return s
}
