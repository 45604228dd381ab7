package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

func (s *Server) handleGetSuggestions(w http.ResponseWriter, r *http.Request) {
	st, err := s.svc.Suggestions(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// handleRequestSuggestions starts a request for the selected plan. With
// ?wait=true it answers once the request settles.
func (s *Server) handleRequestSuggestions(w http.ResponseWriter, r *http.Request) {
	wait, _ := strconv.ParseBool(r.URL.Query().Get("wait"))

	st, err := s.svc.RequestSuggestions(r.Context(), wait)
	if err != nil {
		// Only a caller that went away while waiting ends up here; the
		// request itself keeps running.
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleDismissSuggestions(w http.ResponseWriter, r *http.Request) {
	s.respondView(w)(s.svc.DismissSuggestions(r.Context()))
}

// handleEvents streams a "view" event on connect and after every change
// until the client disconnects.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "streaming not supported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for v := range s.svc.Watch(r.Context()) {
		data, err := json.Marshal(v)
		if err != nil {
			s.log.Error("events: marshal view", "error", err)
			continue
		}
		if _, err := fmt.Fprintf(w, "event: view\ndata: %s\n\n", data); err != nil {
			return
		}
		flusher.Flush()
	}
}
