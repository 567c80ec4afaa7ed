package batch

// SkipReason classifies why an item was not changed.
type SkipReason string

const (
	// SkipNoMatch means no candidate stream qualified.
	SkipNoMatch SkipReason = "NoMatch"
	// SkipAlreadyMatched means the equivalent stream is already active.
	SkipAlreadyMatched SkipReason = "AlreadyMatched"
	// SkipKeywordFiltered means the keyword filter excluded every candidate.
	SkipKeywordFiltered SkipReason = "KeywordFiltered"
	// SkipError means a remote call for this item failed.
	SkipError SkipReason = "Error"
)

// ItemResult is the outcome of processing one media item in a run.
// Exactly one of MatchReason (on success) or SkipReason (otherwise)
// is set.
type ItemResult struct {
	Title         string     `json:"title"`
	SeasonNumber  int        `json:"seasonNumber,omitempty"`
	EpisodeNumber int        `json:"episodeNumber,omitempty"`
	Success       bool       `json:"success"`
	MatchReason   string     `json:"matchReason,omitempty"`
	SkipReason    SkipReason `json:"skipReason,omitempty"`
	StreamName    string     `json:"streamName,omitempty"`
	ErrorMessage  string     `json:"errorMessage,omitempty"`
}
