package batch

import (
	"context"

	"github.com/vmunix/trackarr/internal/match"
	"github.com/vmunix/trackarr/internal/plex"
)

// UpdateItem resolves and applies the target stream on a single item.
// The item must already carry its part and stream list; batch runs
// prefetch before calling, and the single-item UI action fetches the
// detail first. exactMatch selects the stream with the same id as
// target directly instead of running the match engine; it is only
// meaningful for the non-batch single-item action.
//
// A nil target means "deselect subtitles" and is invalid for audio.
// All outcomes, including remote-call failures, are returned as data;
// UpdateItem never aborts a batch.
func (u *Updater) UpdateItem(ctx context.Context, item *plex.MediaItem, target *plex.Stream, track plex.TrackType, keyword string, exactMatch bool) ItemResult {
	return u.updateOne(ctx, item, target, track, keyword, exactMatch)
}

func (u *Updater) updateOne(ctx context.Context, item *plex.MediaItem, target *plex.Stream, track plex.TrackType, keyword string, exactMatch bool) ItemResult {
	res := ItemResult{
		Title:         item.Title,
		SeasonNumber:  item.ParentIndex,
		EpisodeNumber: item.Index,
	}
	if res.Title == "" {
		res.Title = "Unknown"
	}

	part := item.FirstPart()
	if part == nil || len(part.Stream) == 0 {
		res.SkipReason = SkipError
		res.ErrorMessage = "no streams available"
		return res
	}

	var streamID int64

	switch {
	case target == nil:
		// Deselect subtitles: stream id 0. Deselection is always exact.
		if track != plex.TrackSubtitle {
			res.SkipReason = SkipError
			res.ErrorMessage = ErrAudioNone.Error()
			return res
		}
		if item.SelectedStream(plex.StreamTypeSubtitle) == nil {
			res.SkipReason = SkipAlreadyMatched
			res.StreamName = "None"
			return res
		}
		streamID = 0
		res.MatchReason = match.ReasonExact
		res.StreamName = "None"

	case exactMatch:
		var found *plex.Stream
		for i := range part.Stream {
			if part.Stream[i].ID == target.ID {
				found = &part.Stream[i]
				break
			}
		}
		if found == nil {
			res.SkipReason = SkipError
			res.ErrorMessage = "target stream not found in item"
			return res
		}
		res.StreamName = found.DisplayName()
		if found.Selected {
			res.SkipReason = SkipAlreadyMatched
			return res
		}
		streamID = found.ID
		res.MatchReason = match.ReasonExactSelection

	default:
		m := match.Find(*target, part.Stream, keyword)
		if m == nil {
			if keyword != "" {
				res.SkipReason = SkipKeywordFiltered
			} else {
				res.SkipReason = SkipNoMatch
			}
			return res
		}
		res.StreamName = m.Stream.DisplayName()
		if m.Stream.Selected {
			res.SkipReason = SkipAlreadyMatched
			return res
		}
		streamID = m.Stream.ID
		res.MatchReason = m.Reason
	}

	if err := u.server.SetStream(ctx, part.ID, streamID, track); err != nil {
		u.log.Error("stream update failed",
			"rating_key", item.RatingKey, "title", res.Title, "error", err)
		res.MatchReason = ""
		res.SkipReason = SkipError
		res.ErrorMessage = err.Error()
		return res
	}

	// The local snapshot is now stale.
	if u.cache != nil {
		u.cache.Invalidate(item.RatingKey)
	}

	res.Success = true
	return res
}
