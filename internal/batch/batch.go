// Package batch applies a chosen audio or subtitle stream across many
// media items: it expands a scope (item, season, show, library) into a
// concrete item list, fetches missing track metadata in bounded
// parallel groups, matches the reference stream on each item, and
// applies the change, reporting aggregated progress throughout.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vmunix/trackarr/internal/plex"
)

// Defaults for the run parameters. MaxDetailedResults bounds memory on
// very large libraries: above it only Error outcomes keep a detailed
// entry, while all outcomes still count in the aggregate numbers.
const (
	DefaultFetchBatchSize     = 10
	DefaultPublishInterval    = 500 * time.Millisecond
	DefaultMaxDetailedResults = 5000
)

// fetchProgressEvery controls how often the prefetch phase reports.
const fetchProgressEvery = 50

// Sentinel errors returned by the scope entry points.
var (
	// ErrBatchInProgress is returned when a run is already in flight.
	// Only one batch operation runs at a time.
	ErrBatchInProgress = errors.New("a batch update is already in progress")
	// ErrNoItems is returned when the resolved scope is empty.
	ErrNoItems = errors.New("no items found in scope")
	// ErrAudioNone is reported when a caller asks to deselect audio,
	// which the server does not support.
	ErrAudioNone = errors.New("cannot set audio track to none")
)

// MediaServer is the remote API surface the updater needs. It is
// satisfied by *plex.Client.
type MediaServer interface {
	LibraryItems(ctx context.Context, libraryKey string, itemType int) ([]plex.MediaItem, error)
	Children(ctx context.Context, ratingKey string) ([]plex.MediaItem, error)
	Metadata(ctx context.Context, ratingKey string) (*plex.MediaItem, error)
	SetStream(ctx context.Context, partID, streamID int64, track plex.TrackType) error
}

// Updater orchestrates batch stream updates against one media server.
type Updater struct {
	server  MediaServer
	cache   *plex.MetadataCache
	tracker *Tracker
	log     *slog.Logger

	fetchBatchSize     int
	maxDetailedResults int

	mu      sync.Mutex
	running bool
}

// UpdaterOption configures an Updater.
type UpdaterOption func(*Updater)

// WithLogger sets the updater's logger.
func WithLogger(log *slog.Logger) UpdaterOption {
	return func(u *Updater) {
		u.log = log.With("component", "batch")
	}
}

// WithCache supplies a metadata cache read during the fetch phase and
// invalidated after each applied change.
func WithCache(c *plex.MetadataCache) UpdaterOption {
	return func(u *Updater) {
		u.cache = c
	}
}

// WithFetchBatchSize overrides how many detail fetches run in parallel.
func WithFetchBatchSize(n int) UpdaterOption {
	return func(u *Updater) {
		if n > 0 {
			u.fetchBatchSize = n
		}
	}
}

// WithMaxDetailedResults overrides the memory-guard threshold.
func WithMaxDetailedResults(n int) UpdaterOption {
	return func(u *Updater) {
		if n > 0 {
			u.maxDetailedResults = n
		}
	}
}

// WithPublishInterval overrides the progress publication throttle.
func WithPublishInterval(d time.Duration) UpdaterOption {
	return func(u *Updater) {
		u.tracker = NewTracker(d)
	}
}

// NewUpdater creates an updater for the given server.
func NewUpdater(server MediaServer, opts ...UpdaterOption) *Updater {
	u := &Updater{
		server:             server,
		tracker:            NewTracker(DefaultPublishInterval),
		log:                slog.Default(),
		fetchBatchSize:     DefaultFetchBatchSize,
		maxDetailedResults: DefaultMaxDetailedResults,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Tracker exposes the progress state for the presentation layer.
func (u *Updater) Tracker() *Tracker {
	return u.tracker
}

// acquire claims the single run slot.
func (u *Updater) acquire() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.running {
		return ErrBatchInProgress
	}
	u.running = true
	return nil
}

func (u *Updater) release() {
	u.mu.Lock()
	u.running = false
	u.mu.Unlock()
}

// UpdateSeason applies the target stream to every episode of a season.
// It returns an error only when the scope itself cannot be resolved;
// per-item outcomes are reported through the tracker.
func (u *Updater) UpdateSeason(ctx context.Context, seasonKey string, target *plex.Stream, track plex.TrackType, keyword string) error {
	if err := u.acquire(); err != nil {
		return err
	}
	defer u.release()

	u.tracker.begin(0, "", "Fetching season episodes...")

	episodes, err := u.server.Children(ctx, seasonKey)
	if err != nil {
		err = fmt.Errorf("fetch season episodes: %w", err)
		u.tracker.fail(err.Error())
		return err
	}
	return u.processBatch(ctx, episodes, target, track, keyword)
}

// UpdateShow applies the target stream to every episode of every season
// of a show.
func (u *Updater) UpdateShow(ctx context.Context, showKey string, target *plex.Stream, track plex.TrackType, keyword string) error {
	if err := u.acquire(); err != nil {
		return err
	}
	defer u.release()

	u.tracker.begin(0, "", "Fetching show information...")

	seasons, err := u.server.Children(ctx, showKey)
	if err != nil {
		err = fmt.Errorf("fetch show seasons: %w", err)
		u.tracker.fail(err.Error())
		return err
	}

	var episodes []plex.MediaItem
	for _, season := range seasons {
		eps, err := u.server.Children(ctx, season.RatingKey)
		if err != nil {
			err = fmt.Errorf("fetch episodes of season %q: %w", season.Title, err)
			u.tracker.fail(err.Error())
			return err
		}
		episodes = append(episodes, eps...)
	}
	return u.processBatch(ctx, episodes, target, track, keyword)
}

// UpdateLibrary applies the target stream to every item of a library.
// Show libraries are listed directly at the episode level, avoiding the
// show -> season -> episode fan-out.
func (u *Updater) UpdateLibrary(ctx context.Context, library plex.Library, target *plex.Stream, track plex.TrackType, keyword string) error {
	if err := u.acquire(); err != nil {
		return err
	}
	defer u.release()

	u.tracker.begin(0, "", "Fetching library items...")

	var itemType int
	switch library.Type {
	case "show":
		itemType = plex.ItemTypeEpisode
	case "movie":
		itemType = 0
	default:
		err := fmt.Errorf("unsupported library type %q", library.Type)
		u.tracker.fail(err.Error())
		return err
	}

	items, err := u.server.LibraryItems(ctx, library.Key, itemType)
	if err != nil {
		err = fmt.Errorf("fetch library items: %w", err)
		u.tracker.fail(err.Error())
		return err
	}
	if len(items) == 0 {
		u.tracker.fail(ErrNoItems.Error())
		return ErrNoItems
	}
	return u.processBatch(ctx, items, target, track, keyword)
}

// processBatch runs the shared fetch-then-apply pipeline over the
// resolved item list.
func (u *Updater) processBatch(ctx context.Context, items []plex.MediaItem, target *plex.Stream, track plex.TrackType, keyword string) error {
	itemType := "episode"
	if len(items) > 0 && items[0].Type == "movie" {
		itemType = "movie"
	}

	// Partition into items already carrying streams and items needing a
	// detail fetch.
	var haveStreams, needFetch []plex.MediaItem
	for _, it := range items {
		if it.HasStreams() {
			haveStreams = append(haveStreams, it)
		} else {
			needFetch = append(needFetch, it)
		}
	}

	fetched := u.fetchDetails(ctx, needFetch)
	all := append(haveStreams, fetched...)

	// Items whose detail fetch failed were dropped and do not count as
	// attempted, so the run total is the list actually processed.
	total := len(all)
	u.tracker.begin(total, itemType, fmt.Sprintf("Processing %d items...", total))

	if total > u.maxDetailedResults {
		u.log.Info("large batch, retaining only error results",
			"total", total, "threshold", u.maxDetailedResults)
	}

	for i := range all {
		if ctx.Err() != nil {
			break
		}
		res := u.updateOne(ctx, &all[i], target, track, keyword, false)
		retain := total <= u.maxDetailedResults || res.SkipReason == SkipError
		u.tracker.record(res, retain, i == len(all)-1)
	}

	u.tracker.finish()
	return nil
}

// fetchDetails fetches full metadata for items lacking streams, in
// concurrency-limited groups so the server is not overwhelmed. Items
// whose fetch fails are logged and dropped from the run; they are not
// counted as attempted.
func (u *Updater) fetchDetails(ctx context.Context, items []plex.MediaItem) []plex.MediaItem {
	if len(items) == 0 {
		return nil
	}
	u.tracker.setFetchProgress(0, len(items))

	fetched := make([]plex.MediaItem, 0, len(items))
	for start := 0; start < len(items); start += u.fetchBatchSize {
		end := min(start+u.fetchBatchSize, len(items))
		group := items[start:end]
		results := make([]*plex.MediaItem, len(group))

		g, gctx := errgroup.WithContext(ctx)
		for i := range group {
			g.Go(func() error {
				item := group[i]
				if u.cache != nil {
					if cached := u.cache.Get(item.RatingKey); cached != nil {
						results[i] = cached
						return nil
					}
				}
				full, err := u.server.Metadata(gctx, item.RatingKey)
				if err != nil {
					u.log.Warn("metadata fetch failed, dropping item",
						"rating_key", item.RatingKey, "title", item.Title, "error", err)
					return nil
				}
				if u.cache != nil {
					u.cache.Set(item.RatingKey, full)
				}
				results[i] = full
				return nil
			})
		}
		_ = g.Wait()

		for _, r := range results {
			if r != nil {
				fetched = append(fetched, *r)
			}
		}
		if start%fetchProgressEvery == 0 {
			u.tracker.setFetchProgress(len(fetched), len(items))
		}
	}
	return fetched
}
