package suggest

import (
	"testing"

	"github.com/claude/liftcoach/internal/models"
)

// TestTransitionStartClearsPreviousResult verifies that starting a request
// drops the previous outcome.
func TestTransitionStartClearsPreviousResult(t *testing.T) {
	prev := RequestState{Phase: PhaseSettled, Error: "boom", Seq: 1}
	got := Transition(prev, Started{Seq: 2})
	if got.Phase != PhaseLoading || got.Error != "" || got.Suggestions != nil || got.Seq != 2 {
		t.Errorf("Transition(Started) = %+v", got)
	}
}

// TestTransitionSettleOpensResult verifies both terminal outcomes open the result view.
func TestTransitionSettleOpensResult(t *testing.T) {
	loading := RequestState{Phase: PhaseLoading, Seq: 1}

	ok := Transition(loading, Succeeded{Seq: 1, Suggestions: &models.Suggestions{OverallFeedback: "fine"}})
	if !ok.HasSuggestions() || !ok.ResultOpen || ok.Error != "" {
		t.Errorf("Transition(Succeeded) = %+v", ok)
	}

	bad := Transition(loading, Failed{Seq: 1, Message: MsgFailed})
	if bad.Phase != PhaseSettled || bad.Error != MsgFailed || !bad.ResultOpen || bad.Suggestions != nil {
		t.Errorf("Transition(Failed) = %+v", bad)
	}

	rej := Transition(RequestState{Phase: PhaseIdle}, Rejected{Seq: 2, Message: MsgPrecondition})
	if rej.Phase != PhaseSettled || rej.Error != MsgPrecondition || !rej.ResultOpen {
		t.Errorf("Transition(Rejected) = %+v", rej)
	}
}

// TestTransitionLastSettlementWins verifies an older request settling after a
// newer one overwrites it, and that neither leaves the state loading.
func TestTransitionLastSettlementWins(t *testing.T) {
	s := Transition(RequestState{Phase: PhaseIdle}, Started{Seq: 1})
	s = Transition(s, Started{Seq: 2})
	s = Transition(s, Succeeded{Seq: 2, Suggestions: &models.Suggestions{OverallFeedback: "second"}})
	s = Transition(s, Failed{Seq: 1, Message: MsgFailed})
	if s.Loading() {
		t.Fatal("state left loading after both requests settled")
	}
	if s.Seq != 1 || s.Error != MsgFailed {
		t.Errorf("state = %+v, want request 1's failure", s)
	}
}

// TestTransitionDismiss verifies dismissing closes the view but keeps the outcome.
func TestTransitionDismiss(t *testing.T) {
	s := RequestState{Phase: PhaseSettled, Error: "x", ResultOpen: true, Seq: 3}
	got := Transition(s, Dismissed{})
	if got.ResultOpen {
		t.Error("result view still open after dismiss")
	}
	if got.Error != "x" || got.Seq != 3 {
		t.Errorf("dismiss changed the outcome: %+v", got)
	}
}
