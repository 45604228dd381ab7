package client

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/claude/liftcoach/internal/coach"
	"github.com/claude/liftcoach/internal/models"
	"github.com/claude/liftcoach/internal/planstore"
	"github.com/claude/liftcoach/internal/server"
	"github.com/claude/liftcoach/internal/suggest"
)

// newStubServer creates an httptest server that routes requests to handler
// functions keyed by "METHOD path".
func newStubServer(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.Method+" "+r.URL.Path]
		if !ok {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
}

func writeTestJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatal(err)
	}
}

// newLiveServer runs the real API over a seeded session.
func newLiveServer(t *testing.T, apiKey string) *httptest.Server {
	t.Helper()
	log := slog.Default()
	gen := suggest.GeneratorFunc(func(context.Context, string, []models.Exercise) ([]byte, error) {
		return []byte(`{"overallFeedback":"Nice","exerciseSuggestions":[]}`), nil
	})
	sig := coach.NewSignal()
	orch := suggest.New(gen, log, suggest.WithOnChange(func(suggest.RequestState) { sig.Notify() }))
	store := planstore.New(planstore.NewState(models.DemoPlans()), log)
	ts := httptest.NewServer(server.New(coach.NewService(store, orch, sig, log), apiKey, log))
	t.Cleanup(ts.Close)
	return ts
}

// TestEditExerciseFieldRequest verifies the field edit body and escaped path.
func TestEditExerciseFieldRequest(t *testing.T) {
	ts := newStubServer(t, map[string]http.HandlerFunc{
		"PATCH /api/v1/plans/p 1/exercises/e1": func(w http.ResponseWriter, r *http.Request) {
			var body map[string]string
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if body["field"] != "weight" || body["value"] != "42.5" {
				t.Errorf("body = %v", body)
			}
			writeTestJSON(t, w, coach.View{Heading: "ok"})
		},
	})
	defer ts.Close()

	v, err := New(ts.URL).EditExerciseField(context.Background(), "p 1", "e1", "weight", "42.5")
	if err != nil {
		t.Fatal(err)
	}
	if v.Heading != "ok" {
		t.Errorf("heading = %q", v.Heading)
	}
}

// TestRequestSuggestionsWaitParam verifies wait is passed as a query parameter.
func TestRequestSuggestionsWaitParam(t *testing.T) {
	ts := newStubServer(t, map[string]http.HandlerFunc{
		"POST /api/v1/suggestions": func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("wait"); got != "true" {
				t.Errorf("wait=%q, want true", got)
			}
			writeTestJSON(t, w, suggest.RequestState{Phase: suggest.PhaseSettled, Error: "x"})
		},
	})
	defer ts.Close()

	st, err := New(ts.URL).RequestSuggestions(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}
	if st.Phase != suggest.PhaseSettled || st.Error != "x" {
		t.Errorf("state = %+v", st)
	}
}

// TestStatusError verifies non-200 responses surface status and body.
func TestStatusError(t *testing.T) {
	ts := newStubServer(t, map[string]http.HandlerFunc{
		"GET /api/v1/view": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		},
	})
	defer ts.Close()

	_, err := New(ts.URL).View(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.StatusCode != http.StatusBadGateway || se.Body != "boom" {
		t.Errorf("status error = %+v", se)
	}
}

// TestAgainstServer drives a real server through the client.
func TestAgainstServer(t *testing.T) {
	ts := newLiveServer(t, "key")
	c := New(ts.URL+"/", WithAPIKey("key"))
	ctx := context.Background()

	if err := c.Health(ctx); err != nil {
		t.Fatal(err)
	}

	v, err := c.AddPlan(ctx)
	if err != nil {
		t.Fatal(err)
	}
	planID := v.Selected.ID
	if _, err := c.RenamePlan(ctx, planID, "Arms"); err != nil {
		t.Fatal(err)
	}
	v, err = c.AddExercise(ctx, planID, "Curl")
	if err != nil {
		t.Fatal(err)
	}
	ex := v.Selected.Exercises[0]
	ex.Weight = 12.5
	if v, err = c.UpdateExercise(ctx, planID, ex); err != nil {
		t.Fatal(err)
	}
	if v.Selected.Name != "Arms" || v.Selected.Exercises[0].Weight != 12.5 {
		t.Errorf("selected = %+v", v.Selected)
	}

	st, err := c.RequestSuggestions(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if !st.HasSuggestions() {
		t.Errorf("state = %+v", st)
	}
	if st, err = c.Suggestions(ctx); err != nil || !st.ResultOpen {
		t.Errorf("suggestions = %+v, %v", st, err)
	}
	if v, err = c.DismissSuggestions(ctx); err != nil || v.Result.Open {
		t.Errorf("dismiss = %+v, %v", v, err)
	}

	if _, err := c.DeleteExercise(ctx, planID, ex.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := c.SelectPlan(ctx, "plan-2"); err != nil {
		t.Fatal(err)
	}
	if _, err := c.DeletePlan(ctx, planID); err != nil {
		t.Fatal(err)
	}
	plans, err := c.Plans(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(plans) != 2 {
		t.Errorf("got %d plans, want 2", len(plans))
	}
}

// TestMissingAPIKey verifies the server's auth error reaches the caller.
func TestMissingAPIKey(t *testing.T) {
	ts := newLiveServer(t, "key")
	_, err := New(ts.URL).View(context.Background())
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusUnauthorized {
		t.Errorf("err = %v, want 401", err)
	}
}
