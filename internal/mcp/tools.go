package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetView = mcp.NewTool("get_view",
	mcp.WithDescription("Get the current session view: plan tabs, the selected plan with its exercises, and the state of the AI suggestion panel."),
)

var toolListPlans = mcp.NewTool("list_plans",
	mcp.WithDescription("List all training plans with their exercises."),
)

var toolAddPlan = mcp.NewTool("add_plan",
	mcp.WithDescription("Create a new empty plan named \"New Plan N\" and select it."),
)

var toolRenamePlan = mcp.NewTool("rename_plan",
	mcp.WithDescription("Rename a plan. Unknown plan ids are ignored."),
	mcp.WithString("plan_id", mcp.Required(), mcp.Description("Plan id")),
	mcp.WithString("name", mcp.Required(), mcp.Description("New plan name")),
)

var toolDeletePlan = mcp.NewTool("delete_plan",
	mcp.WithDescription("Delete a plan. If it was selected, the first remaining plan becomes selected."),
	mcp.WithString("plan_id", mcp.Required(), mcp.Description("Plan id")),
)

var toolSelectPlan = mcp.NewTool("select_plan",
	mcp.WithDescription("Select the plan shown in the view and used for suggestions."),
	mcp.WithString("plan_id", mcp.Required(), mcp.Description("Plan id")),
)

var toolAddExercise = mcp.NewTool("add_exercise",
	mcp.WithDescription("Add an exercise with 3 sets of 10 reps at 0kg to a plan. Blank names are ignored."),
	mcp.WithString("plan_id", mcp.Required(), mcp.Description("Plan id")),
	mcp.WithString("name", mcp.Required(), mcp.Description("Exercise name (e.g. Bench Press)")),
)

var toolUpdateExercise = mcp.NewTool("update_exercise",
	mcp.WithDescription("Update an exercise. Omitted fields keep their current value; negative numbers are stored as 0."),
	mcp.WithString("plan_id", mcp.Required(), mcp.Description("Plan id")),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise id")),
	mcp.WithString("name", mcp.Description("Exercise name")),
	mcp.WithNumber("sets", mcp.Description("Number of sets")),
	mcp.WithNumber("reps", mcp.Description("Reps per set")),
	mcp.WithNumber("weight", mcp.Description("Weight in kg")),
)

var toolDeleteExercise = mcp.NewTool("delete_exercise",
	mcp.WithDescription("Remove an exercise from a plan."),
	mcp.WithString("plan_id", mcp.Required(), mcp.Description("Plan id")),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise id")),
)

var toolRequestSuggestions = mcp.NewTool("request_suggestions",
	mcp.WithDescription("Ask the AI trainer for feedback on the selected plan. The plan must have at least one exercise."),
	mcp.WithBoolean("wait", mcp.Description("Wait for the result instead of returning while it loads. Defaults to true.")),
)

var toolGetSuggestions = mcp.NewTool("get_suggestions",
	mcp.WithDescription("Get the state of the latest suggestion request: idle, loading, or settled with feedback or an error message."),
)

// --- Tool handlers ---

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) viewResult(tool string, v any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		h.log.Error("mcp "+tool, "error", err)
		return mcp.NewToolResultError(tool + " failed: " + err.Error()), nil
	}
	return jsonResult(v)
}

func (h *handlers) getView(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := h.backend.View(ctx)
	return h.viewResult("get_view", v, err)
}

func (h *handlers) listPlans(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	plans, err := h.backend.Plans(ctx)
	return h.viewResult("list_plans", plans, err)
}

func (h *handlers) addPlan(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := h.backend.AddPlan(ctx)
	return h.viewResult("add_plan", v, err)
}

func (h *handlers) renamePlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	planID, err := req.RequireString("plan_id")
	if err != nil {
		return mcp.NewToolResultError("plan_id parameter is required"), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	v, err := h.backend.RenamePlan(ctx, planID, name)
	return h.viewResult("rename_plan", v, err)
}

func (h *handlers) deletePlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	planID, err := req.RequireString("plan_id")
	if err != nil {
		return mcp.NewToolResultError("plan_id parameter is required"), nil
	}
	v, err := h.backend.DeletePlan(ctx, planID)
	return h.viewResult("delete_plan", v, err)
}

func (h *handlers) selectPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	planID, err := req.RequireString("plan_id")
	if err != nil {
		return mcp.NewToolResultError("plan_id parameter is required"), nil
	}
	v, err := h.backend.SelectPlan(ctx, planID)
	return h.viewResult("select_plan", v, err)
}

func (h *handlers) addExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	planID, err := req.RequireString("plan_id")
	if err != nil {
		return mcp.NewToolResultError("plan_id parameter is required"), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	v, err := h.backend.AddExercise(ctx, planID, name)
	return h.viewResult("add_exercise", v, err)
}

func (h *handlers) updateExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	planID, err := req.RequireString("plan_id")
	if err != nil {
		return mcp.NewToolResultError("plan_id parameter is required"), nil
	}
	exerciseID, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	plans, err := h.backend.Plans(ctx)
	if err != nil {
		return h.viewResult("update_exercise", nil, err)
	}
	for _, p := range plans {
		if p.ID != planID {
			continue
		}
		if i := p.ExerciseIndex(exerciseID); i >= 0 {
			e := p.Exercises[i]
			e.Name = req.GetString("name", e.Name)
			e.Sets = req.GetInt("sets", e.Sets)
			e.Reps = req.GetInt("reps", e.Reps)
			e.Weight = req.GetFloat("weight", e.Weight)
			v, err := h.backend.UpdateExercise(ctx, planID, e)
			return h.viewResult("update_exercise", v, err)
		}
	}

	// Unknown plan or exercise: nothing to update.
	v, err := h.backend.View(ctx)
	return h.viewResult("update_exercise", v, err)
}

func (h *handlers) deleteExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	planID, err := req.RequireString("plan_id")
	if err != nil {
		return mcp.NewToolResultError("plan_id parameter is required"), nil
	}
	exerciseID, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}
	v, err := h.backend.DeleteExercise(ctx, planID, exerciseID)
	return h.viewResult("delete_exercise", v, err)
}

func (h *handlers) requestSuggestions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := h.backend.RequestSuggestions(ctx, req.GetBool("wait", true))
	if err != nil {
		return h.viewResult("request_suggestions", nil, err)
	}
	if st.Error != "" {
		return mcp.NewToolResultError(st.Error), nil
	}
	return jsonResult(st)
}

func (h *handlers) getSuggestions(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st, err := h.backend.Suggestions(ctx)
	return h.viewResult("get_suggestions", st, err)
}
