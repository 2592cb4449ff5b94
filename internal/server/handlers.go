package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"newsgate/internal/apierr"
	"newsgate/internal/models"
	"newsgate/internal/validator"
)

// errorBody is the JSON shape of every failure response.
type errorBody struct {
	Error      string                `json:"error"`
	Kind       string                `json:"kind"`
	Violations []validator.Violation `json:"violations,omitempty"`
	RequestID  string                `json:"requestId,omitempty"`
}

func (s *Server) handleEverything(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.Search(r.Context(), r.URL.Query())
	if err != nil {
		s.writeError(w, r, models.OpSearch, err)
		return
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTopHeadlines(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.Headlines(r.Context(), r.URL.Query())
	if err != nil {
		s.writeError(w, r, models.OpHeadlines, err)
		return
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.Sources(r.Context(), r.URL.Query())
	if err != nil {
		s.writeError(w, r, models.OpSources, err)
		return
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDocs(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.docs(r))
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusNotFound, errorBody{
		Error:     "Not found",
		Kind:      "not_found",
		RequestID: middleware.GetReqID(r.Context()),
	})
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusMethodNotAllowed, errorBody{
		Error:     "Method not allowed",
		Kind:      "method_not_allowed",
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// writeError renders a pipeline failure. Unclassified errors are classified
// here so nothing raw reaches the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, op models.Operation, err error) {
	var classified *apierr.Error
	if !errors.As(err, &classified) {
		classified = apierr.Classify(op, err)
		s.logger.Error("Unclassified pipeline error", "operation", string(op), "error", err)
	}

	s.writeJSON(w, classified.Status(), errorBody{
		Error:      classified.Message,
		Kind:       classified.Kind.String(),
		Violations: classified.Violations,
		RequestID:  middleware.GetReqID(r.Context()),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", "error", err)
	}
}
