// Package search ranks media items against a typed query so the UI can
// narrow long show and episode listings. Exact substring matches rank
// first; the rest are ordered by Jaro-Winkler similarity, which favors
// prefix matches and suits media titles.
package search

import (
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/vmunix/trackarr/internal/plex"
)

// minScore filters out candidates with no meaningful similarity.
const minScore = 0.70

// Match pairs an item with its similarity score (0.0-1.0).
type Match struct {
	Item  plex.MediaItem `json:"item"`
	Score float64        `json:"score"`
}

// Rank returns the items matching query, best first. limit <= 0 means
// no limit. An empty query matches nothing.
func Rank(items []plex.MediaItem, query string, limit int) []Match {
	q := normalizeTitle(query)
	if q == "" {
		return nil
	}

	matches := make([]Match, 0, len(items))
	for _, item := range items {
		title := normalizeTitle(item.Title)
		if title == "" {
			continue
		}

		score := float64(edlib.JaroWinklerSimilarity(q, title))
		if strings.Contains(title, q) {
			score = 1.0
		}
		if score < minScore {
			continue
		}
		matches = append(matches, Match{Item: item, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
