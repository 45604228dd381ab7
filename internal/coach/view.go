// Package coach ties the plan store and the suggestion orchestrator together
// and derives the view state that clients render.
package coach

import (
	"github.com/claude/liftcoach/internal/models"
	"github.com/claude/liftcoach/internal/planstore"
	"github.com/claude/liftcoach/internal/suggest"
)

// Labels shown by the suggest button.
const (
	LabelSuggest   = "Get AI Suggestions"
	LabelAnalyzing = "Analyzing..."
)

// View is everything a client needs to render the session.
type View struct {
	Plans         []PlanTab            `json:"plans"`
	Selected      *models.TrainingPlan `json:"selected"`
	Heading       string               `json:"heading"`
	Subtitle      string               `json:"subtitle"`
	EmptyPlan     bool                 `json:"emptyPlan"`
	CanDeletePlan bool                 `json:"canDeletePlan"`
	SuggestButton SuggestButton        `json:"suggestButton"`
	Result        ResultPanel          `json:"result"`
}

// PlanTab is one entry in the plan switcher.
type PlanTab struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

// SuggestButton describes the "get suggestions" control.
type SuggestButton struct {
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
	Loading  bool   `json:"loading"`
}

// ResultPanel is the suggestion result view.
type ResultPanel struct {
	Open        bool                `json:"open"`
	Phase       suggest.Phase       `json:"phase"`
	Loading     bool                `json:"loading"`
	Error       string              `json:"error,omitempty"`
	Suggestions *models.Suggestions `json:"suggestions,omitempty"`
}

// DeriveView computes the view for a store snapshot and request state.
func DeriveView(st planstore.State, rs suggest.RequestState) View {
	v := View{
		Plans: make([]PlanTab, len(st.Plans)),
		Result: ResultPanel{
			Open:        rs.ResultOpen,
			Phase:       rs.Phase,
			Loading:     rs.Loading(),
			Error:       rs.Error,
			Suggestions: rs.Suggestions,
		},
	}

	selected, ok := st.SelectedPlan()
	for i, p := range st.Plans {
		v.Plans[i] = PlanTab{ID: p.ID, Name: p.Name, Selected: ok && p.ID == selected.ID}
	}

	if ok {
		sel := selected.Clone()
		v.Selected = &sel
		v.Heading = sel.Name
		v.Subtitle = "Log your exercises and get AI-powered feedback."
		v.EmptyPlan = len(sel.Exercises) == 0
		v.CanDeletePlan = len(st.Plans) > 1
	} else {
		v.Heading = "Select a Plan"
		v.Subtitle = "Select or create a plan to get started."
	}

	v.SuggestButton = SuggestButton{
		Label:    LabelSuggest,
		Loading:  rs.Loading(),
		Disabled: rs.Loading() || !ok || len(selected.Exercises) == 0,
	}
	if rs.Loading() {
		v.SuggestButton.Label = LabelAnalyzing
	}
	return v
}
