// Package planstore holds the session's training plans. State values are
// immutable: every operation returns a new State and leaves its input intact,
// so snapshots handed out earlier stay valid.
package planstore

import (
	"github.com/claude/liftcoach/internal/models"
)

// State is the ordered plan collection plus the current selection.
// SelectedPlanID is empty when nothing is selected.
type State struct {
	Plans          []models.TrainingPlan `json:"plans"`
	SelectedPlanID string                `json:"selectedPlanId,omitempty"`
}

// NewState returns a state holding plans with the first one selected.
func NewState(plans []models.TrainingPlan) State {
	s := State{Plans: make([]models.TrainingPlan, 0, len(plans))}
	for _, p := range plans {
		s.Plans = append(s.Plans, p.Clone())
	}
	if len(s.Plans) > 0 {
		s.SelectedPlanID = s.Plans[0].ID
	}
	return s
}

// PlanIndex returns the position of the plan with the given id, or -1.
func (s State) PlanIndex(id string) int {
	for i, p := range s.Plans {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Plan returns the plan with the given id.
func (s State) Plan(id string) (models.TrainingPlan, bool) {
	if i := s.PlanIndex(id); i >= 0 {
		return s.Plans[i], true
	}
	return models.TrainingPlan{}, false
}

// SelectedPlan returns the selected plan. A selection that points at a plan
// no longer present reads as nothing selected.
func (s State) SelectedPlan() (models.TrainingPlan, bool) {
	if s.SelectedPlanID == "" {
		return models.TrainingPlan{}, false
	}
	return s.Plan(s.SelectedPlanID)
}

// Clone returns a deep copy that shares no slices with s.
func (s State) Clone() State {
	out := State{SelectedPlanID: s.SelectedPlanID, Plans: make([]models.TrainingPlan, len(s.Plans))}
	for i, p := range s.Plans {
		out.Plans[i] = p.Clone()
	}
	return out
}

// withPlan returns a copy of s with the plan at index i replaced.
// Other plans keep sharing their exercise slices with s.
func (s State) withPlan(i int, p models.TrainingPlan) State {
	plans := make([]models.TrainingPlan, len(s.Plans))
	copy(plans, s.Plans)
	plans[i] = p
	s.Plans = plans
	return s
}

// AddPlan appends an empty plan with a default name and selects it.
func AddPlan(s State, id string) State {
	plans := make([]models.TrainingPlan, len(s.Plans), len(s.Plans)+1)
	copy(plans, s.Plans)
	plans = append(plans, models.NewPlan(id, models.DefaultPlanName(len(s.Plans))))
	return State{Plans: plans, SelectedPlanID: id}
}

// RenamePlan sets the name of a plan. Unknown ids are ignored.
func RenamePlan(s State, planID, name string) State {
	i := s.PlanIndex(planID)
	if i < 0 {
		return s
	}
	p := s.Plans[i]
	p.Name = name
	return s.withPlan(i, p)
}

// DeletePlan removes a plan. If it was selected, the first remaining plan
// becomes selected, or nothing when none remain. Unknown ids are ignored.
func DeletePlan(s State, planID string) State {
	i := s.PlanIndex(planID)
	if i < 0 {
		return s
	}
	plans := make([]models.TrainingPlan, 0, len(s.Plans)-1)
	plans = append(plans, s.Plans[:i]...)
	plans = append(plans, s.Plans[i+1:]...)

	selected := s.SelectedPlanID
	if selected == planID {
		selected = ""
		if len(plans) > 0 {
			selected = plans[0].ID
		}
	}
	return State{Plans: plans, SelectedPlanID: selected}
}

// SelectPlan selects a plan. The id is not checked against the collection.
func SelectPlan(s State, planID string) State {
	s.SelectedPlanID = planID
	return s
}

// AddExercise appends a default exercise to a plan. Invalid names and
// unknown plans are ignored.
func AddExercise(s State, planID, exerciseID, name string) State {
	if !models.IsValidExerciseName(name) {
		return s
	}
	i := s.PlanIndex(planID)
	if i < 0 {
		return s
	}
	p := s.Plans[i]
	exercises := make([]models.Exercise, len(p.Exercises), len(p.Exercises)+1)
	copy(exercises, p.Exercises)
	p.Exercises = append(exercises, models.NewExercise(exerciseID, name))
	return s.withPlan(i, p)
}

// UpdateExercise replaces the exercise with the same id, keeping its position.
// Unknown plans or exercises are ignored.
func UpdateExercise(s State, planID string, updated models.Exercise) State {
	i := s.PlanIndex(planID)
	if i < 0 {
		return s
	}
	p := s.Plans[i]
	j := p.ExerciseIndex(updated.ID)
	if j < 0 {
		return s
	}
	p = p.Clone()
	p.Exercises[j] = updated
	return s.withPlan(i, p)
}

// DeleteExercise removes an exercise from a plan, keeping the order of the
// rest. Unknown plans or exercises are ignored.
func DeleteExercise(s State, planID, exerciseID string) State {
	i := s.PlanIndex(planID)
	if i < 0 {
		return s
	}
	p := s.Plans[i]
	j := p.ExerciseIndex(exerciseID)
	if j < 0 {
		return s
	}
	exercises := make([]models.Exercise, 0, len(p.Exercises)-1)
	exercises = append(exercises, p.Exercises[:j]...)
	p.Exercises = append(exercises, p.Exercises[j+1:]...)
	return s.withPlan(i, p)
}
