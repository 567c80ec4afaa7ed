// Package v1 implements the native REST API the browser UI drives.
package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Server is the v1 API server.
type Server struct {
	deps ServerDeps
}

// New creates a new v1 API server.
func New(deps ServerDeps) (*Server, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}
	return &Server{deps: deps}, nil
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Browse
	mux.HandleFunc("GET /api/v1/libraries", s.listLibraries)
	mux.HandleFunc("GET /api/v1/libraries/{key}/items", s.listLibraryItems)
	mux.HandleFunc("GET /api/v1/items/{ratingKey}", s.getItem)
	mux.HandleFunc("GET /api/v1/items/{ratingKey}/children", s.listChildren)

	// Track updates
	mux.HandleFunc("POST /api/v1/update/item", s.updateItem)
	mux.HandleFunc("POST /api/v1/update/season", s.updateSeason)
	mux.HandleFunc("POST /api/v1/update/show", s.updateShow)
	mux.HandleFunc("POST /api/v1/update/library", s.updateLibrary)

	// Progress
	mux.HandleFunc("GET /api/v1/progress", s.getProgress)
	mux.HandleFunc("DELETE /api/v1/progress", s.resetProgress)

	// Settings
	mux.HandleFunc("GET /api/v1/settings", s.listSettings)
	mux.HandleFunc("PUT /api/v1/settings/{key}", s.putSetting)
	mux.HandleFunc("DELETE /api/v1/settings/{key}", s.deleteSetting)

	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// pathValue extracts a required path parameter.
func pathValue(r *http.Request, name string) (string, error) {
	v := r.PathValue(name)
	if v == "" {
		return "", fmt.Errorf("missing path parameter: %s", name)
	}
	return v, nil
}
