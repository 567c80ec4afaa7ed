package v1

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vmunix/trackarr/internal/batch"
	"github.com/vmunix/trackarr/internal/plex"
	"github.com/vmunix/trackarr/internal/settings"
)

// MediaBrowser is the read-only media server surface the browse
// handlers need. Satisfied by *plex.Client.
type MediaBrowser interface {
	Identity(ctx context.Context) (*plex.Identity, error)
	Libraries(ctx context.Context) ([]plex.Library, error)
	LibraryItems(ctx context.Context, libraryKey string, itemType int) ([]plex.MediaItem, error)
	Children(ctx context.Context, ratingKey string) ([]plex.MediaItem, error)
	Metadata(ctx context.Context, ratingKey string) (*plex.MediaItem, error)
}

// ServerDeps contains all dependencies for the API server.
type ServerDeps struct {
	Browser  MediaBrowser
	Updater  *batch.Updater
	Settings *settings.Store
	Cache    *plex.MetadataCache // optional
	Logger   *slog.Logger        // optional
}

// Validate checks that all required dependencies are provided.
func (d ServerDeps) Validate() error {
	if d.Browser == nil {
		return errors.New("media browser is required")
	}
	if d.Updater == nil {
		return errors.New("batch updater is required")
	}
	if d.Settings == nil {
		return errors.New("settings store is required")
	}
	return nil
}

func (d ServerDeps) log() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}
