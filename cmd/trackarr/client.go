package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client wraps HTTP calls to the trackarr server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new trackarr API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return serverError(resp)
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

func (c *Client) post(path string, body any, result any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return serverError(resp)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (c *Client) put(path string, body any) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	req, err := http.NewRequest(http.MethodPut, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return serverError(resp)
	}
	return nil
}

func (c *Client) delete(path string) error {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return serverError(resp)
	}
	return nil
}

// serverError extracts the API error body, falling back to raw text.
func serverError(resp *http.Response) error {
	body, _ := io.ReadAll(resp.Body)
	var apiErr struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
		return fmt.Errorf("server error %d: %s", resp.StatusCode, apiErr.Error)
	}
	return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
}

// API response types (mirror server types)

type LibraryResponse struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

type StreamResponse struct {
	ID           int64  `json:"id"`
	StreamType   int    `json:"streamType"`
	Codec        string `json:"codec,omitempty"`
	Language     string `json:"language,omitempty"`
	LanguageCode string `json:"languageCode,omitempty"`
	Title        string `json:"title,omitempty"`
	DisplayTitle string `json:"displayTitle,omitempty"`
	Selected     bool   `json:"selected,omitempty"`
}

type PartResponse struct {
	ID      int64            `json:"id"`
	Streams []StreamResponse `json:"Stream,omitempty"`
}

type MediaResponse struct {
	ID    int64          `json:"id"`
	Parts []PartResponse `json:"Part,omitempty"`
}

type MediaItemResponse struct {
	RatingKey   string          `json:"ratingKey"`
	Type        string          `json:"type"`
	Title       string          `json:"title"`
	Index       int             `json:"index,omitempty"`
	ParentIndex int             `json:"parentIndex,omitempty"`
	Media       []MediaResponse `json:"Media,omitempty"`
}

type ItemResultResponse struct {
	Title         string `json:"title"`
	SeasonNumber  int    `json:"seasonNumber,omitempty"`
	EpisodeNumber int    `json:"episodeNumber,omitempty"`
	Success       bool   `json:"success"`
	MatchReason   string `json:"matchReason,omitempty"`
	SkipReason    string `json:"skipReason,omitempty"`
	StreamName    string `json:"streamName,omitempty"`
	ErrorMessage  string `json:"errorMessage,omitempty"`
}

type ProgressResponse struct {
	Total      int                  `json:"total"`
	Current    int                  `json:"current"`
	Success    int                  `json:"success"`
	Failed     int                  `json:"failed"`
	Processing bool                 `json:"isProcessing"`
	Status     string               `json:"statusMessage"`
	ItemType   string               `json:"itemType,omitempty"`
	Error      string               `json:"error,omitempty"`
	Results    []ItemResultResponse `json:"results,omitempty"`
}

type IdentityResponse struct {
	MachineIdentifier string `json:"machineIdentifier"`
	Version           string `json:"version"`
}

type ServerStatusResponse struct {
	Server     *IdentityResponse `json:"server"`
	Processing bool              `json:"isProcessing"`
}

type AcceptedResponse struct {
	Started bool   `json:"started"`
	Scope   string `json:"scope"`
}

// updateRequest mirrors the server's update request body.
type updateRequest struct {
	RatingKey   string          `json:"ratingKey,omitempty"`
	LibraryKey  string          `json:"libraryKey,omitempty"`
	LibraryType string          `json:"libraryType,omitempty"`
	TrackType   string          `json:"trackType"`
	Target      *StreamResponse `json:"target"`
	Keyword     string          `json:"keyword,omitempty"`
	ExactMatch  bool            `json:"exactMatch,omitempty"`
}

func (c *Client) Libraries() ([]LibraryResponse, error) {
	var libs []LibraryResponse
	if err := c.get("/api/v1/libraries", &libs); err != nil {
		return nil, err
	}
	return libs, nil
}

func (c *Client) Item(ratingKey string) (*MediaItemResponse, error) {
	var item MediaItemResponse
	if err := c.get("/api/v1/items/"+ratingKey, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) Progress() (*ProgressResponse, error) {
	var p ProgressResponse
	if err := c.get("/api/v1/progress", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Status() (*ServerStatusResponse, error) {
	var s ServerStatusResponse
	if err := c.get("/api/v1/status", &s); err != nil {
		return nil, err
	}
	return &s, nil
}
