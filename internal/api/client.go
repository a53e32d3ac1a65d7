package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smartbookmarker/smark/internal/model"
)

const (
	apiPrefix = "/api"
	userAgent = "smark/1.0"
)

var (
	ErrRequest         = errors.New("API request failed")
	ErrInvalidResponse = errors.New("invalid API response")
)

// Client talks to the Smart Bookmarker HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the given base URL (scheme://host[:port],
// without the /api prefix).
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListFolders retrieves all folders.
func (c *Client) ListFolders(ctx context.Context) ([]model.Folder, error) {
	var folders []model.Folder
	if err := c.do(ctx, http.MethodGet, "/folders/", nil, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// GetFolder retrieves one folder including its bookmarks.
func (c *Client) GetFolder(ctx context.Context, id int64) (*model.FolderWithBookmarks, error) {
	var folder model.FolderWithBookmarks
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/folders/%d", id), nil, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// CreateFolder creates a new folder. The server rejects duplicate names.
func (c *Client) CreateFolder(ctx context.Context, name string) (*model.Folder, error) {
	var folder model.Folder
	if err := c.do(ctx, http.MethodPost, "/folders/", model.FolderCreate{Name: name}, &folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

// DeleteFolder deletes a folder by ID. The server refuses while the folder
// still owns bookmarks.
func (c *Client) DeleteFolder(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/folders/%d", id), nil, nil)
}

// ListBookmarks retrieves all bookmarks across folders.
func (c *Client) ListBookmarks(ctx context.Context) ([]model.Bookmark, error) {
	var bookmarks []model.Bookmark
	if err := c.do(ctx, http.MethodGet, "/bookmarks/", nil, &bookmarks); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

// GetBookmark retrieves a single bookmark by ID.
func (c *Client) GetBookmark(ctx context.Context, id int64) (*model.Bookmark, error) {
	var bookmark model.Bookmark
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/bookmarks/%d", id), nil, &bookmark); err != nil {
		return nil, err
	}
	return &bookmark, nil
}

// CreateBookmark creates a bookmark. When the request carries no title or
// folder name the server fills both in through its AI pipeline.
func (c *Client) CreateBookmark(ctx context.Context, req model.BookmarkCreate) (*model.Bookmark, error) {
	var bookmark model.Bookmark
	if err := c.do(ctx, http.MethodPost, "/bookmarks/", req, &bookmark); err != nil {
		return nil, err
	}
	return &bookmark, nil
}

// Suggest asks the server for AI-generated title, description and folder for
// a URL without saving anything.
func (c *Client) Suggest(ctx context.Context, req model.BookmarkCreate) (*model.Suggestion, error) {
	var suggestion model.Suggestion
	if err := c.do(ctx, http.MethodPost, "/bookmarks/suggest", req, &suggestion); err != nil {
		return nil, err
	}
	return &suggestion, nil
}

// DeleteBookmark deletes a bookmark by ID.
func (c *Client) DeleteBookmark(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/bookmarks/%d", id), nil, nil)
}

// do sends one JSON request and decodes the response into out (if non-nil).
// Non-2xx responses become an *Error carrying the server's detail string.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-Id", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}
