package plex_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/trackarr/internal/plex"
)

func identityHandler(machineID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/identity" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"MediaContainer":{"size":0,"machineIdentifier":"` + machineID + `","version":"1.41.0"}}`))
	}
}

func TestClient_Identity(t *testing.T) {
	srv := httptest.NewServer(identityHandler("abc123"))
	defer srv.Close()

	c := plex.NewClient(srv.URL, testSession())
	id, err := c.Identity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", id.MachineIdentifier)
	assert.Equal(t, "1.41.0", id.Version)
}

func TestPickServer_FirstResponderWins(t *testing.T) {
	fast := httptest.NewServer(identityHandler("fast"))
	defer fast.Close()

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		identityHandler("slow")(w, r)
	}))
	defer slow.Close()

	c, err := plex.PickServer(context.Background(), testSession(), []string{slow.URL, fast.URL})
	require.NoError(t, err)
	assert.Equal(t, fast.URL, c.BaseURL())
}

func TestPickServer_SkipsDeadCandidates(t *testing.T) {
	alive := httptest.NewServer(identityHandler("alive"))
	defer alive.Close()

	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer dead.Close()

	c, err := plex.PickServer(context.Background(), testSession(), []string{dead.URL, alive.URL})
	require.NoError(t, err)
	assert.Equal(t, alive.URL, c.BaseURL())
}

func TestPickServer_AllUnreachable(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer dead.Close()

	_, err := plex.PickServer(context.Background(), testSession(), []string{dead.URL})
	assert.ErrorIs(t, err, plex.ErrNoReachableServer)
}

func TestPickServer_NoCandidates(t *testing.T) {
	_, err := plex.PickServer(context.Background(), testSession(), nil)
	assert.ErrorIs(t, err, plex.ErrNoReachableServer)
}
