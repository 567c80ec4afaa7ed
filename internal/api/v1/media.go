package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/vmunix/trackarr/internal/plex"
	"github.com/vmunix/trackarr/internal/search"
)

// queryInt parses an integer query parameter with a default.
func queryInt(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// writeUpstreamError maps media-server errors to API responses.
func writeUpstreamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, plex.ErrNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, plex.ErrUnauthorized):
		writeError(w, http.StatusBadGateway, "UPSTREAM_UNAUTHORIZED", err.Error())
	default:
		writeError(w, http.StatusBadGateway, "UPSTREAM_ERROR", err.Error())
	}
}

func (s *Server) listLibraries(w http.ResponseWriter, r *http.Request) {
	libs, err := s.deps.Browser.Libraries(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, libs)
}

// listLibraryItems lists a library's items. Optional query parameters:
// type (numeric item-type filter), q (fuzzy title search), limit.
func (s *Server) listLibraryItems(w http.ResponseWriter, r *http.Request) {
	key, err := pathValue(r, "key")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_KEY", err.Error())
		return
	}

	itemType := queryInt(r, "type", 0)
	items, err := s.deps.Browser.LibraryItems(r.Context(), key, itemType)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	if q := r.URL.Query().Get("q"); q != "" {
		limit := queryInt(r, "limit", 0)
		matches := search.Rank(items, q, limit)
		ranked := make([]plex.MediaItem, len(matches))
		for i, m := range matches {
			ranked[i] = m.Item
		}
		items = ranked
	}

	writeJSON(w, http.StatusOK, items)
}

func (s *Server) listChildren(w http.ResponseWriter, r *http.Request) {
	ratingKey, err := pathValue(r, "ratingKey")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_KEY", err.Error())
		return
	}

	items, err := s.deps.Browser.Children(r.Context(), ratingKey)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// getItem returns one item in full, including its stream list, reading
// through the metadata cache when one is configured.
func (s *Server) getItem(w http.ResponseWriter, r *http.Request) {
	ratingKey, err := pathValue(r, "ratingKey")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_KEY", err.Error())
		return
	}

	if s.deps.Cache != nil {
		if cached := s.deps.Cache.Get(ratingKey); cached != nil {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	item, err := s.deps.Browser.Metadata(r.Context(), ratingKey)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	if s.deps.Cache != nil {
		s.deps.Cache.Set(ratingKey, item)
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	identity, err := s.deps.Browser.Identity(r.Context())
	if err != nil {
		writeUpstreamError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{
		Server:     identity,
		Processing: s.deps.Updater.Tracker().Processing(),
	})
}
