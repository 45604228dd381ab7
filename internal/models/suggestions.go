package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ExerciseSuggestion is a coaching tip for one exercise.
type ExerciseSuggestion struct {
	ExerciseName string `json:"exerciseName"`
	Suggestion   string `json:"suggestion"`
}

// Suggestions is the structured feedback returned for a plan.
type Suggestions struct {
	OverallFeedback     string               `json:"overallFeedback"`
	ExerciseSuggestions []ExerciseSuggestion `json:"exerciseSuggestions"`
}

// ErrMalformedSuggestions is returned when the payload does not have the
// expected two-field shape.
var ErrMalformedSuggestions = errors.New("suggestions payload is not in the expected format")

// wireSuggestions distinguishes absent fields from zero values.
type wireSuggestions struct {
	OverallFeedback     *string           `json:"overallFeedback"`
	ExerciseSuggestions *[]wireSuggestion `json:"exerciseSuggestions"`
}

type wireSuggestion struct {
	ExerciseName *string `json:"exerciseName"`
	Suggestion   *string `json:"suggestion"`
}

// ParseSuggestions decodes raw model output and validates its shape.
// A structurally invalid payload is an error, never a partial result.
func ParseSuggestions(raw []byte) (*Suggestions, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedSuggestions)
	}

	var w wireSuggestions
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSuggestions, err)
	}
	if w.OverallFeedback == nil {
		return nil, fmt.Errorf("%w: overallFeedback missing", ErrMalformedSuggestions)
	}
	if w.ExerciseSuggestions == nil {
		return nil, fmt.Errorf("%w: exerciseSuggestions missing", ErrMalformedSuggestions)
	}

	out := &Suggestions{
		OverallFeedback:     *w.OverallFeedback,
		ExerciseSuggestions: make([]ExerciseSuggestion, 0, len(*w.ExerciseSuggestions)),
	}
	for i, item := range *w.ExerciseSuggestions {
		if item.ExerciseName == nil || item.Suggestion == nil {
			return nil, fmt.Errorf("%w: exerciseSuggestions[%d] incomplete", ErrMalformedSuggestions, i)
		}
		out.ExerciseSuggestions = append(out.ExerciseSuggestions, ExerciseSuggestion{
			ExerciseName: *item.ExerciseName,
			Suggestion:   *item.Suggestion,
		})
	}
	return out, nil
}
