package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/claude/liftcoach/internal/coach"
	"github.com/claude/liftcoach/internal/models"
	"github.com/go-chi/chi/v5"
)

// Mutations that target unknown ids or carry invalid names are no-ops and
// answer 200 with the unchanged view. Only malformed bodies are 400s.

type nameRequest struct {
	Name *string `json:"name"`
}

type fieldEditRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	s.respondView(w)(s.svc.View(r.Context()))
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.svc.Plans(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, plans)
}

func (s *Server) handleAddPlan(w http.ResponseWriter, r *http.Request) {
	s.respondView(w)(s.svc.AddPlan(r.Context()))
}

func (s *Server) handleRenamePlan(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	s.respondView(w)(s.svc.RenamePlan(r.Context(), chi.URLParam(r, "planID"), *req.Name))
}

func (s *Server) handleDeletePlan(w http.ResponseWriter, r *http.Request) {
	s.respondView(w)(s.svc.DeletePlan(r.Context(), chi.URLParam(r, "planID")))
}

func (s *Server) handleSelectPlan(w http.ResponseWriter, r *http.Request) {
	s.respondView(w)(s.svc.SelectPlan(r.Context(), chi.URLParam(r, "planID")))
}

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	var name string
	if req.Name != nil {
		name = *req.Name
	}
	s.respondView(w)(s.svc.AddExercise(r.Context(), chi.URLParam(r, "planID"), name))
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	var e models.Exercise
	if !decodeBody(w, r, &e) {
		return
	}
	e.ID = chi.URLParam(r, "exerciseID")
	s.respondView(w)(s.svc.UpdateExercise(r.Context(), chi.URLParam(r, "planID"), e))
}

func (s *Server) handleEditExercise(w http.ResponseWriter, r *http.Request) {
	var req fieldEditRequest
	if !decodeBody(w, r, &req) {
		return
	}
	v, err := s.svc.EditExerciseField(r.Context(),
		chi.URLParam(r, "planID"), chi.URLParam(r, "exerciseID"), req.Field, req.Value)
	if errors.Is(err, coach.ErrUnknownField) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.respondView(w)(v, err)
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	s.respondView(w)(s.svc.DeleteExercise(r.Context(), chi.URLParam(r, "planID"), chi.URLParam(r, "exerciseID")))
}

// respondView writes the view returned by a service call, or a 500.
func (s *Server) respondView(w http.ResponseWriter) func(*coach.View, error) {
	return func(v *coach.View, err error) {
		if err != nil {
			s.log.Error("view error", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, v)
	}
}

// decodeBody decodes a JSON request body, answering 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
