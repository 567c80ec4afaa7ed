// Package plex is a client for the media-server HTTP API used to browse
// libraries and change the active audio/subtitle streams of media items.
package plex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Numeric item-type filters understood by the library listing endpoint.
// Asking for episodes directly avoids the show -> season -> episode
// fan-out when expanding a whole library.
const (
	ItemTypeMovie   = 1
	ItemTypeEpisode = 4
)

const (
	defaultTimeout  = 20 * time.Second
	identityTimeout = 5 * time.Second

	productName    = "trackarr"
	productVersion = "1.0"
)

// Sentinel errors for server responses.
var (
	ErrNotFound     = errors.New("item not found")
	ErrUnauthorized = errors.New("unauthorized: invalid or expired token")
)

// Session carries the per-session credentials for a server. It is
// created at login and passed explicitly; the client keeps no other
// authentication state.
type Session struct {
	Token            string
	ClientIdentifier string
}

// Client talks to one media server.
type Client struct {
	baseURL    string
	session    Session
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout overrides the default per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "plex")
	}
}

// NewClient creates a client for the server at baseURL using the given session.
func NewClient(baseURL string, session Session, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		session: session,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server URL this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Libraries returns all library sections on the server.
func (c *Client) Libraries(ctx context.Context) ([]Library, error) {
	var out mediaContainer
	if err := c.get(ctx, "/library/sections", nil, &out); err != nil {
		return nil, fmt.Errorf("list libraries: %w", err)
	}
	return out.MediaContainer.Directory, nil
}

// LibraryItems returns all items of a library section. itemType filters
// by the numeric item type (ItemTypeMovie, ItemTypeEpisode); 0 means no
// filter. Returned items are lightweight: no parts or streams.
func (c *Client) LibraryItems(ctx context.Context, libraryKey string, itemType int) ([]MediaItem, error) {
	params := url.Values{}
	if itemType != 0 {
		params.Set("type", strconv.Itoa(itemType))
	}
	var out mediaContainer
	path := "/library/sections/" + url.PathEscape(libraryKey) + "/all"
	if err := c.get(ctx, path, params, &out); err != nil {
		return nil, fmt.Errorf("list library items: %w", err)
	}
	return out.MediaContainer.Metadata, nil
}

// Children returns the children of a container item: a show's seasons
// or a season's episodes, in server order.
func (c *Client) Children(ctx context.Context, ratingKey string) ([]MediaItem, error) {
	var out mediaContainer
	path := "/library/metadata/" + url.PathEscape(ratingKey) + "/children"
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	return out.MediaContainer.Metadata, nil
}

// Metadata returns one item in full, including its part and stream list.
func (c *Client) Metadata(ctx context.Context, ratingKey string) (*MediaItem, error) {
	var out mediaContainer
	path := "/library/metadata/" + url.PathEscape(ratingKey)
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, fmt.Errorf("get metadata: %w", err)
	}
	if len(out.MediaContainer.Metadata) == 0 {
		return nil, ErrNotFound
	}
	return &out.MediaContainer.Metadata[0], nil
}

// SetStream makes streamID the active stream of the given track type on
// a file part. streamID 0 deselects (subtitles only). The call is
// idempotent server-side.
func (c *Client) SetStream(ctx context.Context, partID, streamID int64, track TrackType) error {
	if !track.Valid() {
		return fmt.Errorf("invalid track type %q", track)
	}
	param := "audioStreamID"
	if track == TrackSubtitle {
		param = "subtitleStreamID"
	}

	params := url.Values{}
	params.Set(param, strconv.FormatInt(streamID, 10))
	params.Set("allParts", "1")

	path := "/library/parts/" + strconv.FormatInt(partID, 10)
	if err := c.do(ctx, http.MethodPost, path, params, nil); err != nil {
		return fmt.Errorf("set %s stream: %w", track, err)
	}
	if c.log != nil {
		c.log.Debug("stream updated", "part_id", partID, "stream_id", streamID, "track", track)
	}
	return nil
}

// get issues a GET request and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, params, out)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.applyHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) applyHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Plex-Product", productName)
	req.Header.Set("X-Plex-Version", productVersion)
	req.Header.Set("X-Plex-Client-Identifier", c.session.ClientIdentifier)
	if c.session.Token != "" {
		req.Header.Set("X-Plex-Token", c.session.Token)
	}
}
