package v1

import (
	"github.com/vmunix/trackarr/internal/plex"
)

// updateRequest is the shared request body for the update endpoints.
// Target carries the reference stream's descriptive fields; a null
// target means "deselect subtitles". Scope identification uses
// RatingKey for item/season/show scopes and LibraryKey + LibraryType
// for library scope.
type updateRequest struct {
	RatingKey   string       `json:"ratingKey,omitempty"`
	LibraryKey  string       `json:"libraryKey,omitempty"`
	LibraryType string       `json:"libraryType,omitempty"`
	TrackType   string       `json:"trackType"`
	Target      *plex.Stream `json:"target"`
	Keyword     string       `json:"keyword,omitempty"`
	ExactMatch  bool         `json:"exactMatch,omitempty"`
}

// acceptedResponse acknowledges an asynchronous batch start.
type acceptedResponse struct {
	Started bool   `json:"started"`
	Scope   string `json:"scope"`
}

// statusResponse is the response for GET /status.
type statusResponse struct {
	Server     *plex.Identity `json:"server"`
	Processing bool           `json:"isProcessing"`
}

// settingAssignment is the request body for PUT /settings/{key}.
type settingAssignment struct {
	Value string `json:"value"`
}
