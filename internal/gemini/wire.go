package gemini

import (
	"fmt"
	"strings"
)

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType"`
	ResponseSchema   *schema `json:"responseSchema,omitempty"`
	Temperature      float64 `json:"temperature"`
}

// schema is the OpenAPI subset accepted by responseSchema.
type schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*schema `json:"properties,omitempty"`
	Items       *schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

var suggestionsSchema = &schema{
	Type: "OBJECT",
	Properties: map[string]*schema{
		"overallFeedback": {
			Type:        "STRING",
			Description: "General feedback on the workout structure, balance, and intensity. Be encouraging and motivational.",
		},
		"exerciseSuggestions": {
			Type:        "ARRAY",
			Description: "Specific suggestions for each exercise in the user's workout.",
			Items: &schema{
				Type: "OBJECT",
				Properties: map[string]*schema{
					"exerciseName": {
						Type:        "STRING",
						Description: "The name of the exercise being commented on.",
					},
					"suggestion": {
						Type:        "STRING",
						Description: "A specific, actionable tip for this exercise. For example, suggest weight progression, form correction, or alternative exercises.",
					},
				},
				Required: []string{"exerciseName", "suggestion"},
			},
		},
	},
	Required: []string{"overallFeedback", "exerciseSuggestions"},
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

// text concatenates the parts of the first candidate.
func (r generateResponse) text() ([]byte, error) {
	if r.PromptFeedback != nil && r.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("%w: prompt blocked (%s)", ErrNoContent, r.PromptFeedback.BlockReason)
	}
	if len(r.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates", ErrNoContent)
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return nil, fmt.Errorf("%w: finish reason %q", ErrNoContent, r.Candidates[0].FinishReason)
	}
	return []byte(out), nil
}
