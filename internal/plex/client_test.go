package plex_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/trackarr/internal/plex"
)

func testSession() plex.Session {
	return plex.Session{Token: "test-token", ClientIdentifier: "test-client-id"}
}

func TestClient_Libraries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/library/sections", r.URL.Path)
		assert.Equal(t, "test-token", r.Header.Get("X-Plex-Token"))
		assert.Equal(t, "test-client-id", r.Header.Get("X-Plex-Client-Identifier"))
		assert.Equal(t, "trackarr", r.Header.Get("X-Plex-Product"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"MediaContainer":{"size":2,"Directory":[
			{"key":"1","title":"Movies","type":"movie"},
			{"key":"2","title":"TV Shows","type":"show"}
		]}}`))
	}))
	defer srv.Close()

	c := plex.NewClient(srv.URL, testSession())
	libs, err := c.Libraries(context.Background())
	require.NoError(t, err)
	require.Len(t, libs, 2)
	assert.Equal(t, plex.Library{Key: "1", Title: "Movies", Type: "movie"}, libs[0])
	assert.Equal(t, "show", libs[1].Type)
}

func TestClient_LibraryItems_TypeFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/library/sections/2/all", r.URL.Path)
		assert.Equal(t, "4", r.URL.Query().Get("type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"MediaContainer":{"size":1,"Metadata":[
			{"ratingKey":"101","type":"episode","title":"Pilot","index":1,"parentIndex":1}
		]}}`))
	}))
	defer srv.Close()

	c := plex.NewClient(srv.URL, testSession())
	items, err := c.LibraryItems(context.Background(), "2", plex.ItemTypeEpisode)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Pilot", items[0].Title)
	assert.Equal(t, 1, items[0].ParentIndex)
}

func TestClient_LibraryItems_NoFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("type"))
		_, _ = w.Write([]byte(`{"MediaContainer":{"size":0}}`))
	}))
	defer srv.Close()

	c := plex.NewClient(srv.URL, testSession())
	items, err := c.LibraryItems(context.Background(), "1", 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestClient_Metadata_ParsesStreams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/library/metadata/101", r.URL.Path)
		_, _ = w.Write([]byte(`{"MediaContainer":{"size":1,"Metadata":[{
			"ratingKey":"101","type":"episode","title":"Pilot",
			"Media":[{"id":10,"Part":[{"id":20,"Stream":[
				{"id":30,"streamType":2,"codec":"aac","language":"English","languageCode":"eng",
				 "title":"Main","displayTitle":"English (AAC Stereo)","selected":true},
				{"id":31,"streamType":3,"codec":"srt","displayTitle":"English (SRT)"}
			]}]}]
		}]}}`))
	}))
	defer srv.Close()

	c := plex.NewClient(srv.URL, testSession())
	item, err := c.Metadata(context.Background(), "101")
	require.NoError(t, err)

	require.True(t, item.HasStreams())
	part := item.FirstPart()
	require.NotNil(t, part)
	assert.Equal(t, int64(20), part.ID)
	require.Len(t, part.Stream, 2)
	assert.Equal(t, plex.StreamTypeAudio, part.Stream[0].StreamType)
	assert.True(t, part.Stream[0].Selected)

	sel := item.SelectedStream(plex.StreamTypeAudio)
	require.NotNil(t, sel)
	assert.Equal(t, int64(30), sel.ID)
	assert.Nil(t, item.SelectedStream(plex.StreamTypeSubtitle))
}

func TestClient_Metadata_EmptyContainer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"MediaContainer":{"size":0}}`))
	}))
	defer srv.Close()

	c := plex.NewClient(srv.URL, testSession())
	_, err := c.Metadata(context.Background(), "999")
	assert.ErrorIs(t, err, plex.ErrNotFound)
}

func TestClient_SetStream_Audio(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := plex.NewClient(srv.URL, testSession())
	err := c.SetStream(context.Background(), 20, 30, plex.TrackAudio)
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/library/parts/20", got.URL.Path)
	assert.Equal(t, "30", got.URL.Query().Get("audioStreamID"))
	assert.Equal(t, "1", got.URL.Query().Get("allParts"))
}

func TestClient_SetStream_SubtitleDeselect(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := plex.NewClient(srv.URL, testSession())
	err := c.SetStream(context.Background(), 20, 0, plex.TrackSubtitle)
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "0", got.URL.Query().Get("subtitleStreamID"))
	assert.False(t, got.URL.Query().Has("audioStreamID"))
}

func TestClient_SetStream_InvalidTrack(t *testing.T) {
	c := plex.NewClient("http://example.invalid", testSession())
	err := c.SetStream(context.Background(), 20, 30, plex.TrackType("video"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid track type")
}

func TestClient_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := plex.NewClient(srv.URL, testSession())
	_, err := c.Libraries(context.Background())
	assert.ErrorIs(t, err, plex.ErrUnauthorized)
}

func TestClient_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := plex.NewClient(srv.URL, testSession())
	_, err := c.Children(context.Background(), "42")
	assert.ErrorIs(t, err, plex.ErrNotFound)
}

func TestClient_NoTokenHeaderWhenEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := r.Header[http.CanonicalHeaderKey("X-Plex-Token")]
		assert.False(t, ok)
		_, _ = w.Write([]byte(`{"MediaContainer":{"size":0}}`))
	}))
	defer srv.Close()

	c := plex.NewClient(srv.URL, plex.Session{ClientIdentifier: "anon"})
	_, err := c.Libraries(context.Background())
	require.NoError(t, err)
}
