// Package match selects the equivalent audio or subtitle stream on a
// target item given a reference stream picked on another item.
//
// Matching is a tiered ranking over five descriptive fields. Each
// candidate is scored at the highest rule it satisfies and the
// highest-scored candidate wins, with ties broken by candidate order.
package match

import (
	"strings"

	"github.com/vmunix/trackarr/internal/plex"
)

// Match levels, highest first. A candidate satisfying no rule is
// excluded from the results.
const (
	LevelExact             = 7 // all five fields equal
	LevelTitleDisplayCodec = 6
	LevelTitleDisplay      = 5
	LevelTitle             = 4
	LevelDisplay           = 3
	LevelLanguage          = 2
	LevelLanguageCode      = 1
)

// Human-readable reasons reported with each match level. ReasonExactSelection
// is used by the direct same-id path, not by Find.
const (
	ReasonExact             = "Exact Match (All Properties)"
	ReasonTitleDisplayCodec = "Match: Title + Display Title + Codec"
	ReasonTitleDisplay      = "Match: Title + Display Title"
	ReasonTitle             = "Match: Title"
	ReasonDisplay           = "Match: Display Title"
	ReasonLanguage          = "Match: Language"
	ReasonLanguageCode      = "Match: Language Code"
	ReasonExactSelection    = "Exact Selection"
)

// Result is the chosen candidate with the rule that selected it.
type Result struct {
	Stream plex.Stream
	Level  int
	Reason string
}

// normalize maps the absent-value spellings the server produces to one
// canonical empty string before comparison. The server reports missing
// descriptive fields as "", omits them, or emits the literal string
// "undefined" depending on version.
func normalize(v string) string {
	if v == "undefined" {
		return ""
	}
	return v
}

func fieldsEqual(a, b string) bool {
	return normalize(a) == normalize(b)
}

// score returns the highest match level the candidate satisfies against
// the reference, or 0 when none.
func score(ref, cand plex.Stream) (int, string) {
	title := fieldsEqual(ref.Title, cand.Title)
	display := fieldsEqual(ref.DisplayTitle, cand.DisplayTitle)
	language := fieldsEqual(ref.Language, cand.Language)
	code := fieldsEqual(ref.LanguageCode, cand.LanguageCode)
	codec := fieldsEqual(ref.Codec, cand.Codec)

	switch {
	case title && display && language && code && codec:
		return LevelExact, ReasonExact
	case title && display && codec:
		return LevelTitleDisplayCodec, ReasonTitleDisplayCodec
	case title && display:
		return LevelTitleDisplay, ReasonTitleDisplay
	case title:
		return LevelTitle, ReasonTitle
	case display:
		return LevelDisplay, ReasonDisplay
	case language:
		return LevelLanguage, ReasonLanguage
	case code:
		return LevelLanguageCode, ReasonLanguageCode
	default:
		return 0, ""
	}
}

// matchesKeyword reports whether the candidate's title or display title
// contains the (case-folded) keyword. Candidates with neither field set
// never match a keyword.
func matchesKeyword(cand plex.Stream, keyword string) bool {
	title := strings.ToLower(normalize(cand.Title))
	display := strings.ToLower(normalize(cand.DisplayTitle))
	return strings.Contains(title, keyword) || strings.Contains(display, keyword)
}

// Find returns the best equivalent of reference among candidates, or
// nil when none qualifies. Only candidates of the reference's stream
// type are considered. A non-empty keyword narrows candidates to those
// whose title or display title contains it, case-insensitively; the
// keyword is meant for subtitle filtering (e.g. only "forced" tracks).
//
// Two streams whose descriptive fields are all empty compare equal at
// the top level. That replicates an unlabeled default track onto items
// whose equivalent track is equally unlabeled, and is intentional.
func Find(reference plex.Stream, candidates []plex.Stream, keyword string) *Result {
	keyword = strings.ToLower(strings.TrimSpace(keyword))

	var best *Result
	for _, cand := range candidates {
		if cand.StreamType != reference.StreamType {
			continue
		}
		if keyword != "" && !matchesKeyword(cand, keyword) {
			continue
		}
		level, reason := score(reference, cand)
		if level == 0 {
			continue
		}
		if best == nil || level > best.Level {
			best = &Result{Stream: cand, Level: level, Reason: reason}
		}
	}
	return best
}
