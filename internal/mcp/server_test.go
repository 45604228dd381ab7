package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/claude/liftcoach/internal/coach"
	"github.com/claude/liftcoach/internal/models"
	"github.com/claude/liftcoach/internal/planstore"
	"github.com/claude/liftcoach/internal/suggest"
	"github.com/mark3labs/mcp-go/mcp"
)

func newTestHandlers(t *testing.T, gen suggest.GeneratorFunc) *handlers {
	t.Helper()
	log := slog.Default()
	sig := coach.NewSignal()
	orch := suggest.New(gen, log, suggest.WithOnChange(func(suggest.RequestState) { sig.Notify() }))
	store := planstore.New(planstore.NewState(models.DemoPlans()), log)
	return &handlers{backend: coach.NewService(store, orch, sig, log), log: log}
}

func callReq(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

// decodeResult unmarshals the JSON text of a successful tool result into v.
func decodeResult(t *testing.T, res *mcp.CallToolResult, v any) {
	t.Helper()
	if res.IsError {
		t.Fatalf("tool returned error: %+v", res.Content)
	}
	if len(res.Content) == 0 {
		t.Fatal("tool returned no content")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", res.Content[0])
	}
	if err := json.Unmarshal([]byte(text.Text), v); err != nil {
		t.Fatalf("decode result: %v", err)
	}
}

func okGen(context.Context, string, []models.Exercise) ([]byte, error) {
	return []byte(`{"overallFeedback":"Keep going","exerciseSuggestions":[{"exerciseName":"Squats","suggestion":"Go deeper"}]}`), nil
}

// TestNewRegistersEverything verifies the server builds with the in-process backend.
func TestNewRegistersEverything(t *testing.T) {
	h := newTestHandlers(t, okGen)
	if s := New(h.backend, "test", slog.Default()); s == nil {
		t.Fatal("New returned nil")
	}
}

// TestPlanTools walks add, rename and delete through the tool handlers.
func TestPlanTools(t *testing.T) {
	h := newTestHandlers(t, okGen)
	ctx := context.Background()

	res, _ := h.addPlan(ctx, callReq(nil))
	var v coach.View
	decodeResult(t, res, &v)
	if len(v.Plans) != 3 || v.Selected == nil {
		t.Fatalf("after add_plan: %+v", v)
	}
	id := v.Selected.ID

	res, _ = h.renamePlan(ctx, callReq(map[string]any{"plan_id": id, "name": "Core"}))
	decodeResult(t, res, &v)
	if v.Heading != "Core" {
		t.Errorf("heading = %q, want Core", v.Heading)
	}

	res, _ = h.deletePlan(ctx, callReq(map[string]any{"plan_id": id}))
	decodeResult(t, res, &v)
	if len(v.Plans) != 2 || v.Selected == nil || v.Selected.ID != "plan-1" {
		t.Errorf("after delete_plan: %+v", v)
	}
}

// TestRequiredArguments verifies missing arguments produce tool errors, not Go errors.
func TestRequiredArguments(t *testing.T) {
	h := newTestHandlers(t, okGen)
	ctx := context.Background()

	for name, fn := range map[string]func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error){
		"rename_plan":     h.renamePlan,
		"select_plan":     h.selectPlan,
		"add_exercise":    h.addExercise,
		"update_exercise": h.updateExercise,
		"delete_exercise": h.deleteExercise,
	} {
		res, err := fn(ctx, callReq(map[string]any{}))
		if err != nil {
			t.Errorf("%s: unexpected Go error %v", name, err)
			continue
		}
		if !res.IsError {
			t.Errorf("%s: expected tool error for missing arguments", name)
		}
	}
}

// TestUpdateExerciseKeepsOmittedFields verifies a partial update only changes
// the fields given.
func TestUpdateExerciseKeepsOmittedFields(t *testing.T) {
	h := newTestHandlers(t, okGen)
	ctx := context.Background()

	res, _ := h.updateExercise(ctx, callReq(map[string]any{
		"plan_id": "plan-1", "exercise_id": "ex-1", "weight": 67.5, "reps": float64(6),
	}))
	var v coach.View
	decodeResult(t, res, &v)
	got := v.Selected.Exercises[0]
	want := models.Exercise{ID: "ex-1", Name: "Bench Press", Sets: 3, Reps: 6, Weight: 67.5}
	if got != want {
		t.Errorf("exercise = %+v, want %+v", got, want)
	}

	// Unknown exercise is a no-op.
	res, _ = h.updateExercise(ctx, callReq(map[string]any{"plan_id": "plan-1", "exercise_id": "nope", "sets": float64(9)}))
	decodeResult(t, res, &v)
	if v.Selected.Exercises[0] != want {
		t.Errorf("no-op update changed exercise: %+v", v.Selected.Exercises[0])
	}
}

// TestRequestSuggestionsTool verifies the default wait returns the settled result.
func TestRequestSuggestionsTool(t *testing.T) {
	h := newTestHandlers(t, okGen)
	res, err := h.requestSuggestions(context.Background(), callReq(nil))
	if err != nil {
		t.Fatal(err)
	}
	var st suggest.RequestState
	decodeResult(t, res, &st)
	if !st.HasSuggestions() || st.Suggestions.OverallFeedback != "Keep going" {
		t.Errorf("state = %+v", st)
	}
}

// TestRequestSuggestionsToolPrecondition verifies the precondition message is
// surfaced as a tool error.
func TestRequestSuggestionsToolPrecondition(t *testing.T) {
	h := newTestHandlers(t, okGen)
	ctx := context.Background()
	h.addPlan(ctx, callReq(nil))

	res, _ := h.requestSuggestions(ctx, callReq(map[string]any{"wait": true}))
	if !res.IsError {
		t.Fatal("expected tool error for empty plan")
	}
	text := res.Content[0].(mcp.TextContent).Text
	if text != suggest.MsgPrecondition {
		t.Errorf("error text = %q", text)
	}
}

// TestSelectedPlanResource verifies the resource returns the selected plan.
func TestSelectedPlanResource(t *testing.T) {
	h := newTestHandlers(t, okGen)
	var req mcp.ReadResourceRequest
	req.Params.URI = "liftcoach://selected_plan"

	contents, err := h.selectedPlan(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	text := contents[0].(mcp.TextResourceContents)
	var plan models.TrainingPlan
	if err := json.Unmarshal([]byte(text.Text), &plan); err != nil {
		t.Fatal(err)
	}
	if plan.ID != "plan-1" || len(plan.Exercises) != 3 {
		t.Errorf("plan = %+v", plan)
	}
	if text.URI != req.Params.URI {
		t.Errorf("uri = %q", text.URI)
	}
}
