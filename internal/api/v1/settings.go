package v1

import (
	"encoding/json"
	"net/http"
)

func (s *Server) listSettings(w http.ResponseWriter, r *http.Request) {
	values, err := s.deps.Settings.All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "STORE_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, values)
}

func (s *Server) putSetting(w http.ResponseWriter, r *http.Request) {
	key, err := pathValue(r, "key")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_KEY", err.Error())
		return
	}

	var body settingAssignment
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := s.deps.Settings.Set(key, body.Value); err != nil {
		writeError(w, http.StatusInternalServerError, "STORE_ERROR", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteSetting(w http.ResponseWriter, r *http.Request) {
	key, err := pathValue(r, "key")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_KEY", err.Error())
		return
	}
	if err := s.deps.Settings.Delete(key); err != nil {
		writeError(w, http.StatusInternalServerError, "STORE_ERROR", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
