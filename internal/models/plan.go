package models

import (
	"fmt"
	"strings"
)

// Default values for a freshly added exercise.
const (
	DefaultSets   = 3
	DefaultReps   = 10
	DefaultWeight = 0
)

// Exercise is a single movement entry in a plan. It is always replaced as a
// whole record; nothing holds a pointer into a plan's exercise slice.
type Exercise struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Sets   int     `json:"sets"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"` // kg
}

// TrainingPlan is a named, ordered list of exercises. A plan owns its
// exercises; they are never shared with another plan.
type TrainingPlan struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Exercises []Exercise `json:"exercises"`
}

// IsValidExerciseName reports whether s is acceptable as the name of a new exercise.
func IsValidExerciseName(s string) bool {
	return strings.TrimSpace(s) != ""
}

// NewExercise returns an exercise with the default sets, reps and weight.
func NewExercise(id, name string) Exercise {
	return Exercise{
		ID:     id,
		Name:   name,
		Sets:   DefaultSets,
		Reps:   DefaultReps,
		Weight: DefaultWeight,
	}
}

// NewPlan returns an empty plan.
func NewPlan(id, name string) TrainingPlan {
	return TrainingPlan{ID: id, Name: name, Exercises: []Exercise{}}
}

// DefaultPlanName names the plan created when count plans already exist.
func DefaultPlanName(count int) string {
	return fmt.Sprintf("New Plan %d", count+1)
}

// Normalize clamps negative numeric fields to zero.
func (e Exercise) Normalize() Exercise {
	e.Sets = max(e.Sets, 0)
	e.Reps = max(e.Reps, 0)
	e.Weight = max(e.Weight, 0)
	return e
}

// Clone returns a deep copy of the plan.
func (p TrainingPlan) Clone() TrainingPlan {
	exercises := make([]Exercise, len(p.Exercises))
	copy(exercises, p.Exercises)
	p.Exercises = exercises
	return p
}

// ExerciseIndex returns the position of the exercise with the given id, or -1.
func (p TrainingPlan) ExerciseIndex(id string) int {
	for i, e := range p.Exercises {
		if e.ID == id {
			return i
		}
	}
	return -1
}
