package gemini

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/claude/liftcoach/internal/models"
)

// BuildPrompt renders the coaching prompt for a plan.
func BuildPrompt(planName string, exercises []models.Exercise) string {
	lines := make([]string, len(exercises))
	for i, e := range exercises {
		lines[i] = fmt.Sprintf("%s: %d sets of %d reps at %skg",
			e.Name, e.Sets, e.Reps, strconv.FormatFloat(e.Weight, 'f', -1, 64))
	}

	return fmt.Sprintf(`Analyze the following workout plan named %q for a user whose goal is muscle gain.
Provide overall feedback and specific, actionable suggestions for each exercise.
Be encouraging and act as an expert personal trainer.

Workout Plan Contents:
%s
`, planName, strings.Join(lines, "\n"))
}
