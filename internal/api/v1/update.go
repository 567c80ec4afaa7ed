package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vmunix/trackarr/internal/batch"
	"github.com/vmunix/trackarr/internal/plex"
)

// decodeUpdateRequest parses and validates the shared update body.
func decodeUpdateRequest(r *http.Request) (*updateRequest, plex.TrackType, error) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, "", errors.New("invalid request body")
	}
	track := plex.TrackType(req.TrackType)
	if !track.Valid() {
		return nil, "", errors.New(`trackType must be "audio" or "subtitle"`)
	}
	if req.Target == nil && track != plex.TrackSubtitle {
		return nil, "", batch.ErrAudioNone
	}
	return &req, track, nil
}

// updateItem applies the target stream to one item synchronously.
// The item's full metadata is fetched first; the batch entry points
// expect streams to be present.
func (s *Server) updateItem(w http.ResponseWriter, r *http.Request) {
	req, track, err := decodeUpdateRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if req.RatingKey == "" {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "ratingKey is required")
		return
	}

	item, err := s.deps.Browser.Metadata(r.Context(), req.RatingKey)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	result := s.deps.Updater.UpdateItem(r.Context(), item, req.Target, track, req.Keyword, req.ExactMatch)
	writeJSON(w, http.StatusOK, result)
}

// startBatch launches fn on a background context and answers 202.
// The run is detached from the request: closing the browser tab must
// not abort a half-applied batch. Progress is polled separately.
func (s *Server) startBatch(w http.ResponseWriter, scope string, fn func(ctx context.Context) error) {
	if s.deps.Updater.Tracker().Processing() {
		writeError(w, http.StatusConflict, "BATCH_IN_PROGRESS", batch.ErrBatchInProgress.Error())
		return
	}

	go func() {
		if err := fn(context.Background()); err != nil {
			if errors.Is(err, batch.ErrBatchInProgress) {
				return
			}
			s.deps.log().Error("batch update failed", "scope", scope, "error", err)
		}
	}()

	writeJSON(w, http.StatusAccepted, acceptedResponse{Started: true, Scope: scope})
}

func (s *Server) updateSeason(w http.ResponseWriter, r *http.Request) {
	req, track, err := decodeUpdateRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if req.RatingKey == "" {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "ratingKey is required")
		return
	}
	s.startBatch(w, "season", func(ctx context.Context) error {
		return s.deps.Updater.UpdateSeason(ctx, req.RatingKey, req.Target, track, req.Keyword)
	})
}

func (s *Server) updateShow(w http.ResponseWriter, r *http.Request) {
	req, track, err := decodeUpdateRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if req.RatingKey == "" {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "ratingKey is required")
		return
	}
	s.startBatch(w, "show", func(ctx context.Context) error {
		return s.deps.Updater.UpdateShow(ctx, req.RatingKey, req.Target, track, req.Keyword)
	})
}

func (s *Server) updateLibrary(w http.ResponseWriter, r *http.Request) {
	req, track, err := decodeUpdateRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if req.LibraryKey == "" || req.LibraryType == "" {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "libraryKey and libraryType are required")
		return
	}
	library := plex.Library{Key: req.LibraryKey, Type: req.LibraryType}
	s.startBatch(w, "library", func(ctx context.Context) error {
		return s.deps.Updater.UpdateLibrary(ctx, library, req.Target, track, req.Keyword)
	})
}

// getProgress returns the current batch progress snapshot. The UI polls
// this while isProcessing is true and keeps a navigation warning
// installed for the duration.
func (s *Server) getProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Updater.Tracker().Snapshot())
}

// resetProgress discards a finished report.
func (s *Server) resetProgress(w http.ResponseWriter, r *http.Request) {
	if s.deps.Updater.Tracker().Processing() {
		writeError(w, http.StatusConflict, "BATCH_IN_PROGRESS", "cannot reset while a batch is processing")
		return
	}
	s.deps.Updater.Tracker().Reset()
	w.WriteHeader(http.StatusNoContent)
}
