package batch_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/trackarr/internal/batch"
	"github.com/vmunix/trackarr/internal/batch/mocks"
	"github.com/vmunix/trackarr/internal/match"
	"github.com/vmunix/trackarr/internal/plex"
	"go.uber.org/mock/gomock"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func englishAudio(id int64, selected bool) plex.Stream {
	return plex.Stream{
		ID:           id,
		StreamType:   plex.StreamTypeAudio,
		Title:        "Main",
		DisplayTitle: "English (AAC Stereo)",
		Language:     "English",
		LanguageCode: "eng",
		Codec:        "aac",
		Selected:     selected,
	}
}

func japaneseAudio(id int64, selected bool) plex.Stream {
	return plex.Stream{
		ID:           id,
		StreamType:   plex.StreamTypeAudio,
		Title:        "Original",
		DisplayTitle: "Japanese (AAC Stereo)",
		Language:     "Japanese",
		LanguageCode: "jpn",
		Codec:        "aac",
		Selected:     selected,
	}
}

func forcedSubtitle(id int64, selected bool) plex.Stream {
	return plex.Stream{
		ID:           id,
		StreamType:   plex.StreamTypeSubtitle,
		Title:        "English (Forced)",
		DisplayTitle: "English (Forced) (SRT)",
		Language:     "English",
		LanguageCode: "eng",
		Codec:        "srt",
		Selected:     selected,
	}
}

func episode(ratingKey string, partID int64, season, ep int, streams ...plex.Stream) plex.MediaItem {
	return plex.MediaItem{
		RatingKey:   ratingKey,
		Type:        "episode",
		Title:       "Episode " + ratingKey,
		Index:       ep,
		ParentIndex: season,
		Media: []plex.Media{{
			ID:   partID * 100,
			Part: []plex.Part{{ID: partID, Stream: streams}},
		}},
	}
}

func TestUpdateSeason_AppliesMatchToEveryEpisode(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	target := japaneseAudio(10, true)
	episodes := []plex.MediaItem{
		episode("101", 1, 1, 1, englishAudio(11, true), japaneseAudio(12, false)),
		episode("102", 2, 1, 2, englishAudio(13, true), japaneseAudio(14, false)),
	}

	server.EXPECT().Children(gomock.Any(), "season-1").Return(episodes, nil)
	server.EXPECT().SetStream(gomock.Any(), int64(1), int64(12), plex.TrackAudio).Return(nil)
	server.EXPECT().SetStream(gomock.Any(), int64(2), int64(14), plex.TrackAudio).Return(nil)

	u := batch.NewUpdater(server, batch.WithLogger(testLogger()))
	err := u.UpdateSeason(context.Background(), "season-1", &target, plex.TrackAudio, "")
	require.NoError(t, err)

	p := u.Tracker().Snapshot()
	assert.False(t, p.Processing)
	assert.Equal(t, 2, p.Total)
	assert.Equal(t, 2, p.Current)
	assert.Equal(t, 2, p.Success)
	assert.Equal(t, 0, p.Failed)
	require.Len(t, p.Results, 2)
	assert.True(t, p.Results[0].Success)
	assert.Equal(t, match.ReasonExact, p.Results[0].MatchReason)
	assert.Equal(t, 1, p.Results[0].SeasonNumber)
	assert.Equal(t, 1, p.Results[0].EpisodeNumber)
}

func TestUpdateSeason_AlreadyMatchedMakesNoRemoteCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	target := japaneseAudio(10, true)
	episodes := []plex.MediaItem{
		episode("101", 1, 1, 1, englishAudio(11, false), japaneseAudio(12, true)),
	}

	server.EXPECT().Children(gomock.Any(), "season-1").Return(episodes, nil)
	// No SetStream expectation: a second identical run is a no-op.

	u := batch.NewUpdater(server, batch.WithLogger(testLogger()))
	err := u.UpdateSeason(context.Background(), "season-1", &target, plex.TrackAudio, "")
	require.NoError(t, err)

	p := u.Tracker().Snapshot()
	assert.Equal(t, 0, p.Success)
	assert.Equal(t, 1, p.Failed)
	require.Len(t, p.Results, 1)
	assert.Equal(t, batch.SkipAlreadyMatched, p.Results[0].SkipReason)
}

func TestUpdateSeason_NoMatchIsCounted(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	target := japaneseAudio(10, true)
	episodes := []plex.MediaItem{
		episode("101", 1, 1, 1, plex.Stream{
			ID: 11, StreamType: plex.StreamTypeAudio,
			Title: "Andet", DisplayTitle: "Dansk (AC3)",
			Language: "Danish", LanguageCode: "dan", Codec: "ac3",
		}),
	}

	server.EXPECT().Children(gomock.Any(), "season-1").Return(episodes, nil)

	u := batch.NewUpdater(server, batch.WithLogger(testLogger()))
	require.NoError(t, u.UpdateSeason(context.Background(), "season-1", &target, plex.TrackAudio, ""))

	p := u.Tracker().Snapshot()
	require.Len(t, p.Results, 1)
	assert.Equal(t, batch.SkipNoMatch, p.Results[0].SkipReason)
	assert.Equal(t, 1, p.Failed)
}

func TestUpdateSeason_KeywordFilteredSkip(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	target := forcedSubtitle(10, true)
	episodes := []plex.MediaItem{
		// Only a plain subtitle track; the keyword excludes it.
		episode("101", 1, 1, 1, plex.Stream{
			ID: 11, StreamType: plex.StreamTypeSubtitle,
			Title: "English", DisplayTitle: "English (SRT)",
		}),
	}

	server.EXPECT().Children(gomock.Any(), "season-1").Return(episodes, nil)

	u := batch.NewUpdater(server, batch.WithLogger(testLogger()))
	require.NoError(t, u.UpdateSeason(context.Background(), "season-1", &target, plex.TrackSubtitle, "forced"))

	p := u.Tracker().Snapshot()
	require.Len(t, p.Results, 1)
	assert.Equal(t, batch.SkipKeywordFiltered, p.Results[0].SkipReason)
}

func TestUpdateSeason_RemoteFailureDoesNotAbortRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	target := japaneseAudio(10, true)
	episodes := []plex.MediaItem{
		episode("101", 1, 1, 1, japaneseAudio(12, false)),
		episode("102", 2, 1, 2, japaneseAudio(14, false)),
	}

	server.EXPECT().Children(gomock.Any(), "season-1").Return(episodes, nil)
	server.EXPECT().SetStream(gomock.Any(), int64(1), int64(12), plex.TrackAudio).Return(errors.New("server unreachable"))
	server.EXPECT().SetStream(gomock.Any(), int64(2), int64(14), plex.TrackAudio).Return(nil)

	u := batch.NewUpdater(server, batch.WithLogger(testLogger()))
	require.NoError(t, u.UpdateSeason(context.Background(), "season-1", &target, plex.TrackAudio, ""))

	p := u.Tracker().Snapshot()
	assert.Equal(t, 1, p.Success)
	assert.Equal(t, 1, p.Failed)
	require.Len(t, p.Results, 2)
	assert.Equal(t, batch.SkipError, p.Results[0].SkipReason)
	assert.Equal(t, "server unreachable", p.Results[0].ErrorMessage)
	assert.Empty(t, p.Results[0].MatchReason)
	assert.True(t, p.Results[1].Success)
}

func TestUpdateSeason_PrefetchesItemsWithoutStreams(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	target := japaneseAudio(10, true)
	bare := plex.MediaItem{RatingKey: "101", Type: "episode", Title: "Episode 101"}
	full := episode("101", 1, 1, 1, japaneseAudio(12, false))

	server.EXPECT().Children(gomock.Any(), "season-1").Return([]plex.MediaItem{bare}, nil)
	server.EXPECT().Metadata(gomock.Any(), "101").Return(&full, nil)
	server.EXPECT().SetStream(gomock.Any(), int64(1), int64(12), plex.TrackAudio).Return(nil)

	u := batch.NewUpdater(server, batch.WithLogger(testLogger()))
	require.NoError(t, u.UpdateSeason(context.Background(), "season-1", &target, plex.TrackAudio, ""))

	p := u.Tracker().Snapshot()
	assert.Equal(t, 1, p.Success)
}

func TestUpdateSeason_DroppedFetchFailuresShrinkTotal(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	target := japaneseAudio(10, true)
	bare1 := plex.MediaItem{RatingKey: "101", Type: "episode", Title: "Episode 101"}
	bare2 := plex.MediaItem{RatingKey: "102", Type: "episode", Title: "Episode 102"}
	full := episode("102", 2, 1, 2, japaneseAudio(14, false))

	server.EXPECT().Children(gomock.Any(), "season-1").Return([]plex.MediaItem{bare1, bare2}, nil)
	server.EXPECT().Metadata(gomock.Any(), "101").Return(nil, errors.New("timeout"))
	server.EXPECT().Metadata(gomock.Any(), "102").Return(&full, nil)
	server.EXPECT().SetStream(gomock.Any(), int64(2), int64(14), plex.TrackAudio).Return(nil)

	u := batch.NewUpdater(server, batch.WithLogger(testLogger()))
	require.NoError(t, u.UpdateSeason(context.Background(), "season-1", &target, plex.TrackAudio, ""))

	p := u.Tracker().Snapshot()
	assert.Equal(t, 1, p.Total)
	assert.Equal(t, 1, p.Current)
	assert.Equal(t, 1, p.Success)
	assert.Equal(t, 0, p.Failed)
	assert.Equal(t, p.Current, p.Success+p.Failed)
}

func TestUpdateSeason_PrefetchReadsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	target := japaneseAudio(10, true)
	bare := plex.MediaItem{RatingKey: "101", Type: "episode", Title: "Episode 101"}
	full := episode("101", 1, 1, 1, japaneseAudio(12, false))

	cache := plex.NewMetadataCache(plex.DefaultCacheTTL)
	cache.Set("101", &full)

	server.EXPECT().Children(gomock.Any(), "season-1").Return([]plex.MediaItem{bare}, nil)
	// No Metadata expectation: the cache satisfies the fetch.
	server.EXPECT().SetStream(gomock.Any(), int64(1), int64(12), plex.TrackAudio).Return(nil)

	u := batch.NewUpdater(server, batch.WithLogger(testLogger()), batch.WithCache(cache))
	require.NoError(t, u.UpdateSeason(context.Background(), "season-1", &target, plex.TrackAudio, ""))

	// The applied change invalidates the cached snapshot.
	assert.Nil(t, cache.Get("101"))
	assert.Equal(t, 1, u.Tracker().Snapshot().Success)
}

func TestUpdateSeason_ScopeResolutionFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	server.EXPECT().Children(gomock.Any(), "season-1").Return(nil, errors.New("not found"))

	target := japaneseAudio(10, true)
	u := batch.NewUpdater(server, batch.WithLogger(testLogger()))
	err := u.UpdateSeason(context.Background(), "season-1", &target, plex.TrackAudio, "")
	require.Error(t, err)

	p := u.Tracker().Snapshot()
	assert.False(t, p.Processing)
	assert.Contains(t, p.Error, "not found")
	assert.Empty(t, p.Results)
}

func TestUpdateShow_FansOutSeasons(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	target := japaneseAudio(10, true)
	seasons := []plex.MediaItem{
		{RatingKey: "s1", Type: "season", Title: "Season 1"},
		{RatingKey: "s2", Type: "season", Title: "Season 2"},
	}

	server.EXPECT().Children(gomock.Any(), "show-1").Return(seasons, nil)
	server.EXPECT().Children(gomock.Any(), "s1").
		Return([]plex.MediaItem{episode("101", 1, 1, 1, japaneseAudio(12, false))}, nil)
	server.EXPECT().Children(gomock.Any(), "s2").
		Return([]plex.MediaItem{episode("201", 2, 2, 1, japaneseAudio(14, false))}, nil)
	server.EXPECT().SetStream(gomock.Any(), int64(1), int64(12), plex.TrackAudio).Return(nil)
	server.EXPECT().SetStream(gomock.Any(), int64(2), int64(14), plex.TrackAudio).Return(nil)

	u := batch.NewUpdater(server, batch.WithLogger(testLogger()))
	require.NoError(t, u.UpdateShow(context.Background(), "show-1", &target, plex.TrackAudio, ""))

	p := u.Tracker().Snapshot()
	assert.Equal(t, 2, p.Total)
	assert.Equal(t, 2, p.Success)
}

func TestUpdateLibrary_ShowLibraryFetchesEpisodesDirectly(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	target := japaneseAudio(10, true)
	library := plex.Library{Key: "2", Title: "TV Shows", Type: "show"}

	server.EXPECT().LibraryItems(gomock.Any(), "2", plex.ItemTypeEpisode).
		Return([]plex.MediaItem{episode("101", 1, 1, 1, japaneseAudio(12, false))}, nil)
	server.EXPECT().SetStream(gomock.Any(), int64(1), int64(12), plex.TrackAudio).Return(nil)

	u := batch.NewUpdater(server, batch.WithLogger(testLogger()))
	require.NoError(t, u.UpdateLibrary(context.Background(), library, &target, plex.TrackAudio, ""))

	assert.Equal(t, 1, u.Tracker().Snapshot().Success)
}

func TestUpdateLibrary_EmptyLibrary(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	library := plex.Library{Key: "2", Title: "TV Shows", Type: "show"}
	server.EXPECT().LibraryItems(gomock.Any(), "2", plex.ItemTypeEpisode).Return(nil, nil)

	target := japaneseAudio(10, true)
	u := batch.NewUpdater(server, batch.WithLogger(testLogger()))
	err := u.UpdateLibrary(context.Background(), library, &target, plex.TrackAudio, "")
	require.ErrorIs(t, err, batch.ErrNoItems)

	p := u.Tracker().Snapshot()
	assert.False(t, p.Processing)
	assert.Equal(t, batch.ErrNoItems.Error(), p.Error)
}

func TestUpdateLibrary_UnknownType(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	library := plex.Library{Key: "3", Title: "Music", Type: "artist"}
	target := japaneseAudio(10, true)

	u := batch.NewUpdater(server, batch.WithLogger(testLogger()))
	err := u.UpdateLibrary(context.Background(), library, &target, plex.TrackAudio, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "artist")
}

func TestUpdater_SingleRunAtATime(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	target := japaneseAudio(10, true)
	entered := make(chan struct{})
	unblock := make(chan struct{})

	server.EXPECT().Children(gomock.Any(), "season-1").
		DoAndReturn(func(ctx context.Context, key string) ([]plex.MediaItem, error) {
			close(entered)
			<-unblock
			return nil, nil
		})

	u := batch.NewUpdater(server, batch.WithLogger(testLogger()))

	done := make(chan error, 1)
	go func() {
		done <- u.UpdateSeason(context.Background(), "season-1", &target, plex.TrackAudio, "")
	}()

	<-entered
	err := u.UpdateSeason(context.Background(), "season-1", &target, plex.TrackAudio, "")
	assert.ErrorIs(t, err, batch.ErrBatchInProgress)

	close(unblock)
	require.NoError(t, <-done)
}

func TestUpdateSeason_LargeBatchRetainsOnlyErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	server := mocks.NewMockMediaServer(ctrl)

	target := japaneseAudio(10, true)
	episodes := []plex.MediaItem{
		episode("101", 1, 1, 1, japaneseAudio(11, false)),
		episode("102", 2, 1, 2, japaneseAudio(12, false)),
		episode("103", 3, 1, 3, japaneseAudio(13, false)),
	}

	server.EXPECT().Children(gomock.Any(), "season-1").Return(episodes, nil)
	server.EXPECT().SetStream(gomock.Any(), int64(1), int64(11), plex.TrackAudio).Return(nil)
	server.EXPECT().SetStream(gomock.Any(), int64(2), int64(12), plex.TrackAudio).Return(errors.New("boom"))
	server.EXPECT().SetStream(gomock.Any(), int64(3), int64(13), plex.TrackAudio).Return(nil)

	u := batch.NewUpdater(server,
		batch.WithLogger(testLogger()),
		batch.WithMaxDetailedResults(2))
	require.NoError(t, u.UpdateSeason(context.Background(), "season-1", &target, plex.TrackAudio, ""))

	p := u.Tracker().Snapshot()
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 2, p.Success)
	assert.Equal(t, 1, p.Failed)
	require.Len(t, p.Results, 1)
	assert.Equal(t, batch.SkipError, p.Results[0].SkipReason)
}
