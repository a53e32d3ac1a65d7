package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/smartbookmarker/smark/internal/api"
	"github.com/smartbookmarker/smark/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return api.NewClient(server.URL, 5*time.Second)
}

func TestClient_ListFolders(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.Method, http.MethodGet)
		assert.Equal(t, r.URL.Path, "/api/folders/")
		assert.Assert(t, r.Header.Get("X-Request-Id") != "")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 1, "name": "Development", "created_at": "2025-01-10T08:00:00"},
			{"id": 2, "name": "Recipes", "created_at": "2025-01-11T09:00:00"}
		]`))
	})

	folders, err := client.ListFolders(context.Background())
	assert.NilError(t, err)
	assert.Equal(t, len(folders), 2)
	assert.Equal(t, folders[0].Name, "Development")
	assert.Equal(t, folders[1].ID, int64(2))
}

func TestClient_GetFolder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.URL.Path, "/api/folders/3")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 3, "name": "Travel", "created_at": "2025-01-10T08:00:00",
			"bookmarks": [
				{"id": 9, "url": "https://example.com/kyoto", "title": "Kyoto Guide", "folder_id": 3, "created_at": "2025-01-12T10:00:00"}
			]
		}`))
	})

	folder, err := client.GetFolder(context.Background(), 3)
	assert.NilError(t, err)
	assert.Equal(t, folder.Name, "Travel")
	assert.Equal(t, len(folder.Bookmarks), 1)
	assert.Equal(t, folder.Bookmarks[0].Title, "Kyoto Guide")
}

func TestClient_CreateFolder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.Method, http.MethodPost)
		assert.Equal(t, r.URL.Path, "/api/folders/")
		assert.Equal(t, r.Header.Get("Content-Type"), "application/json")

		var req model.FolderCreate
		assert.NilError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, req.Name, "Reading List")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 5, "name": "Reading List", "created_at": "2025-02-01T12:00:00"}`))
	})

	folder, err := client.CreateFolder(context.Background(), "Reading List")
	assert.NilError(t, err)
	assert.Equal(t, folder.ID, int64(5))
}

func TestClient_CreateFolder_Duplicate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "Folder with this name already exists"}`))
	})

	_, err := client.CreateFolder(context.Background(), "Development")
	assert.Assert(t, err != nil)

	var apiErr *api.Error
	assert.Assert(t, errors.As(err, &apiErr))
	assert.Equal(t, apiErr.StatusCode, http.StatusBadRequest)
	assert.Equal(t, apiErr.Detail, "Folder with this name already exists")
	assert.Equal(t, api.FriendlyMessage(err), "A folder with this name already exists.")
}

func TestClient_DeleteFolder_Blocked(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.Method, http.MethodDelete)
		assert.Equal(t, r.URL.Path, "/api/folders/4")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "Cannot delete folder with bookmarks. Move or delete bookmarks first."}`))
	})

	err := client.DeleteFolder(context.Background(), 4)
	assert.Assert(t, err != nil)
	assert.Equal(t, api.FriendlyMessage(err),
		"This folder still contains bookmarks. Move or delete them first.")
}

func TestClient_DeleteBookmark(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.Method, http.MethodDelete)
		assert.Equal(t, r.URL.Path, "/api/bookmarks/12")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message": "Bookmark deleted successfully"}`))
	})

	assert.NilError(t, client.DeleteBookmark(context.Background(), 12))
}

func TestClient_Suggest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.Method, http.MethodPost)
		assert.Equal(t, r.URL.Path, "/api/bookmarks/suggest")

		var req model.BookmarkCreate
		assert.NilError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, req.URL, "https://go.dev/blog")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title": "The Go Blog", "description": "Official Go project blog.", "folder_name": "Web Development"}`))
	})

	suggestion, err := client.Suggest(context.Background(), model.BookmarkCreate{URL: "https://go.dev/blog"})
	assert.NilError(t, err)
	assert.Equal(t, suggestion.Title, "The Go Blog")
	assert.Equal(t, suggestion.FolderName, "Web Development")
}

func TestClient_CreateBookmark(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req model.BookmarkCreate
		assert.NilError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, req.Title, "The Go Blog")
		assert.Equal(t, req.FolderName, "Web Development")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 20, "url": "https://go.dev/blog", "title": "The Go Blog",
			"description": "Official Go project blog.", "folder_id": 2,
			"created_at": "2025-02-01T12:00:00"
		}`))
	})

	bookmark, err := client.CreateBookmark(context.Background(), model.BookmarkCreate{
		URL:        "https://go.dev/blog",
		Title:      "The Go Blog",
		FolderName: "Web Development",
	})
	assert.NilError(t, err)
	assert.Equal(t, bookmark.ID, int64(20))
	assert.Equal(t, bookmark.FolderID, int64(2))
}

func TestClient_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail": "Bookmark not found"}`))
	})

	_, err := client.GetBookmark(context.Background(), 999)
	assert.Assert(t, err != nil)
	assert.Equal(t, api.FriendlyMessage(err), "That item no longer exists on the server.")
}

func TestClient_TransportError(t *testing.T) {
	// Point at a closed server to force a connection error.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := api.NewClient(server.URL, time.Second)

	_, err := client.ListFolders(context.Background())
	assert.Assert(t, errors.Is(err, api.ErrRequest))
	assert.Equal(t, api.FriendlyMessage(err), "Something went wrong talking to the server. Please try again.")
}

func TestClient_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	_, err := client.ListFolders(context.Background())
	assert.Assert(t, errors.Is(err, api.ErrInvalidResponse))
}

func TestFriendlyMessage_NilAndPlainErrors(t *testing.T) {
	assert.Equal(t, api.FriendlyMessage(nil), "")
	assert.Equal(t, api.FriendlyMessage(errors.New("boom")),
		"Something went wrong talking to the server. Please try again.")
}
