package tui_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartbookmarker/smark/internal/model"
	"github.com/smartbookmarker/smark/internal/tui"
)

// fakeService implements tui.Service against in-memory data.
type fakeService struct {
	folders    []model.Folder
	bookmarks  map[int64][]model.Bookmark
	suggestion model.Suggestion
	suggestErr error
	createErr  error

	nextID          int64
	getFolderCalls  int
	deletedFolders  []int64
	deletedBookmark []int64
}

func (f *fakeService) ListFolders(ctx context.Context) ([]model.Folder, error) {
	return f.folders, nil
}

func (f *fakeService) GetFolder(ctx context.Context, id int64) (*model.FolderWithBookmarks, error) {
	f.getFolderCalls++
	for _, folder := range f.folders {
		if folder.ID == id {
			return &model.FolderWithBookmarks{
				Folder:    folder,
				Bookmarks: f.bookmarks[id],
			}, nil
		}
	}
	return nil, errors.New("folder not found")
}

func (f *fakeService) CreateFolder(ctx context.Context, name string) (*model.Folder, error) {
	f.nextID++
	folder := model.Folder{ID: 100 + f.nextID, Name: name}
	f.folders = append(f.folders, folder)
	return &folder, nil
}

func (f *fakeService) DeleteFolder(ctx context.Context, id int64) error {
	f.deletedFolders = append(f.deletedFolders, id)
	return nil
}

func (f *fakeService) CreateBookmark(ctx context.Context, req model.BookmarkCreate) (*model.Bookmark, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	folderID := int64(1)
	for _, folder := range f.folders {
		if folder.Name == req.FolderName {
			folderID = folder.ID
		}
	}
	return &model.Bookmark{
		ID:          200 + f.nextID,
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		UserNote:    req.UserNote,
		FolderID:    folderID,
	}, nil
}

func (f *fakeService) Suggest(ctx context.Context, req model.BookmarkCreate) (*model.Suggestion, error) {
	if f.suggestErr != nil {
		return nil, f.suggestErr
	}
	return &f.suggestion, nil
}

func (f *fakeService) DeleteBookmark(ctx context.Context, id int64) error {
	f.deletedBookmark = append(f.deletedBookmark, id)
	return nil
}

func newFakeService() *fakeService {
	return &fakeService{
		folders: []model.Folder{
			{ID: 1, Name: "Development"},
			{ID: 2, Name: "Recipes"},
		},
		bookmarks: map[int64][]model.Bookmark{
			1: {
				{ID: 10, URL: "https://go.dev", Title: "The Go Programming Language", FolderID: 1},
				{ID: 11, URL: "https://pkg.go.dev", Title: "Go Packages", FolderID: 1},
			},
			2: {},
		},
		suggestion: model.Suggestion{
			Title:       "Suggested Title",
			Description: "Suggested description.",
			FolderName:  "Development",
		},
	}
}

// newApp creates an App with folders already loaded from the fake.
func newApp(t *testing.T, svc *fakeService) tui.App {
	t.Helper()
	app := tui.NewApp(tui.AppParams{
		Store:   model.NewStore(),
		Service: svc,
	})

	cmd := app.Init()
	if cmd == nil {
		t.Fatal("expected Init to load folders")
	}
	return update(t, app, cmd())
}

func update(t *testing.T, app tui.App, msg tea.Msg) tui.App {
	t.Helper()
	m, _ := app.Update(msg)
	return m.(tui.App)
}

func updateCmd(t *testing.T, app tui.App, msg tea.Msg) (tui.App, tea.Cmd) {
	t.Helper()
	m, cmd := app.Update(msg)
	return m.(tui.App), cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestApp_InitLoadsFolders(t *testing.T) {
	app := newApp(t, newFakeService())

	items := app.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 folder rows, got %d", len(items))
	}
	if !items[0].IsFolder() || items[0].Folder.Name != "Development" {
		t.Errorf("unexpected first item: %+v", items[0])
	}
}

func TestApp_ExpandFolderFetchesBookmarks(t *testing.T) {
	svc := newFakeService()
	app := newApp(t, svc)

	// Expand the first folder; bookmarks are not cached yet so a fetch runs.
	app, cmd := updateCmd(t, app, keyRunes("l"))
	if cmd == nil {
		t.Fatal("expected expand to trigger a fetch")
	}
	app = update(t, app, cmd())

	if svc.getFolderCalls != 1 {
		t.Errorf("expected 1 GetFolder call, got %d", svc.getFolderCalls)
	}
	if !app.IsExpanded(1) {
		t.Error("expected folder 1 to be expanded")
	}

	items := app.Items()
	if len(items) != 4 {
		t.Fatalf("expected 2 folders + 2 bookmarks, got %d rows", len(items))
	}
	if items[1].IsFolder() || items[1].Bookmark.ID != 10 {
		t.Errorf("expected bookmark row under folder, got %+v", items[1])
	}
}

func TestApp_CollapseAndReexpandUsesCache(t *testing.T) {
	svc := newFakeService()
	app := newApp(t, svc)

	app, cmd := updateCmd(t, app, keyRunes("l"))
	app = update(t, app, cmd())

	// Collapse
	app = update(t, app, keyRunes("h"))
	if app.IsExpanded(1) {
		t.Fatal("expected folder to be collapsed")
	}
	if len(app.Items()) != 2 {
		t.Fatalf("expected bookmark rows removed, got %d", len(app.Items()))
	}

	// Re-expand hits the cache, no new fetch.
	app, cmd = updateCmd(t, app, keyRunes("l"))
	if cmd != nil {
		t.Error("expected no fetch for already-loaded folder")
	}
	if svc.getFolderCalls != 1 {
		t.Errorf("expected 1 GetFolder call total, got %d", svc.getFolderCalls)
	}
	if len(app.Items()) != 4 {
		t.Errorf("expected bookmark rows restored, got %d", len(app.Items()))
	}
}

func TestApp_CollapseFromBookmarkRow(t *testing.T) {
	svc := newFakeService()
	app := newApp(t, svc)

	app, cmd := updateCmd(t, app, keyRunes("l"))
	app = update(t, app, cmd())

	// Move onto the first bookmark row, then collapse.
	app = update(t, app, keyRunes("j"))
	app = update(t, app, keyRunes("h"))

	if app.IsExpanded(1) {
		t.Error("expected enclosing folder collapsed")
	}
	if app.Cursor() != 0 {
		t.Errorf("expected cursor on the folder row, got %d", app.Cursor())
	}
}

func TestApp_DeleteFolderWithBookmarksBlocked(t *testing.T) {
	svc := newFakeService()
	app := newApp(t, svc)

	// Load folder 1's bookmarks so the pre-check knows it is non-empty.
	app, cmd := updateCmd(t, app, keyRunes("l"))
	app = update(t, app, cmd())
	app = update(t, app, keyRunes("h"))

	app = update(t, app, keyRunes("d"))

	if app.Mode() != tui.ModeNormal {
		t.Error("expected delete to be blocked without a confirm modal")
	}
	if !strings.Contains(app.Message(), "still contains bookmarks") {
		t.Errorf("expected blocking message, got %q", app.Message())
	}
	if len(svc.deletedFolders) != 0 {
		t.Error("no delete request should have been sent")
	}
}

func TestApp_DeleteEmptyFolder(t *testing.T) {
	svc := newFakeService()
	app := newApp(t, svc)

	// Load folder 2 (empty), then delete it.
	app = update(t, app, keyRunes("j"))
	app, cmd := updateCmd(t, app, keyRunes("l"))
	app = update(t, app, cmd())
	app = update(t, app, keyRunes("d"))

	if app.Mode() != tui.ModeConfirmDelete {
		t.Fatalf("expected confirm modal, got mode %v", app.Mode())
	}

	app, cmd = updateCmd(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected delete command")
	}
	app = update(t, app, cmd())

	if len(svc.deletedFolders) != 1 || svc.deletedFolders[0] != 2 {
		t.Errorf("expected folder 2 deleted on the server, got %v", svc.deletedFolders)
	}
	if app.Store().FolderByID(2) != nil {
		t.Error("expected folder removed from local store")
	}
	if app.Mode() != tui.ModeNormal {
		t.Error("expected return to normal mode")
	}
}

func TestApp_DeleteBookmark(t *testing.T) {
	svc := newFakeService()
	app := newApp(t, svc)

	app, cmd := updateCmd(t, app, keyRunes("l"))
	app = update(t, app, cmd())
	app = update(t, app, keyRunes("j")) // onto bookmark 10
	app = update(t, app, keyRunes("d"))

	if app.Mode() != tui.ModeConfirmDelete {
		t.Fatalf("expected confirm modal, got mode %v", app.Mode())
	}

	app, cmd = updateCmd(t, app, keyRunes("y"))
	app = update(t, app, cmd())

	if len(svc.deletedBookmark) != 1 || svc.deletedBookmark[0] != 10 {
		t.Errorf("expected bookmark 10 deleted, got %v", svc.deletedBookmark)
	}
	if len(app.Store().BookmarksInFolder(1)) != 1 {
		t.Error("expected bookmark removed from local store")
	}
}

func TestApp_AddBookmarkRequiresURL(t *testing.T) {
	app := newApp(t, newFakeService())

	app = update(t, app, keyRunes("a"))
	if app.Mode() != tui.ModeAddBookmark {
		t.Fatalf("expected add bookmark form, got mode %v", app.Mode())
	}

	app, cmd := updateCmd(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no request for empty URL")
	}
	if app.Mode() != tui.ModeAddBookmark {
		t.Error("expected form to stay open")
	}
	if !strings.Contains(app.Message(), "URL") {
		t.Errorf("expected URL validation message, got %q", app.Message())
	}
}

func TestApp_SuggestFlow(t *testing.T) {
	svc := newFakeService()
	app := newApp(t, svc)

	app = update(t, app, keyRunes("a"))
	app = update(t, app, keyRunes("https://example.com/post"))

	app, cmd := updateCmd(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if app.Mode() != tui.ModeSuggestLoading {
		t.Fatalf("expected loading mode, got %v", app.Mode())
	}
	if cmd == nil {
		t.Fatal("expected suggest command")
	}

	app = update(t, app, cmd())
	if app.Mode() != tui.ModeSuggestConfirm {
		t.Fatalf("expected confirm mode, got %v", app.Mode())
	}

	view := app.View()
	if !strings.Contains(view, "Suggested Title") {
		t.Error("expected suggested title prefilled in confirm view")
	}

	// Accept the suggestion.
	app, cmd = updateCmd(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected create command")
	}
	app = update(t, app, cmd())

	if app.Mode() != tui.ModeNormal {
		t.Errorf("expected return to normal mode, got %v", app.Mode())
	}
	if !strings.Contains(app.Message(), "saved") {
		t.Errorf("expected success message, got %q", app.Message())
	}
}

func TestApp_SuggestErrorReturnsToForm(t *testing.T) {
	svc := newFakeService()
	svc.suggestErr = errors.New("connection refused")
	app := newApp(t, svc)

	app = update(t, app, keyRunes("a"))
	app = update(t, app, keyRunes("https://example.com"))
	app, cmd := updateCmd(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	app = update(t, app, cmd())

	if app.Mode() != tui.ModeAddBookmark {
		t.Errorf("expected fallback to the form, got mode %v", app.Mode())
	}
	if app.Message() == "" {
		t.Error("expected an error message")
	}
}

func TestApp_AddFolderDuplicateNameBlocked(t *testing.T) {
	app := newApp(t, newFakeService())

	app = update(t, app, keyRunes("A"))
	app = update(t, app, keyRunes("Development"))
	app, cmd := updateCmd(t, app, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("expected no request for duplicate folder name")
	}
	if !strings.Contains(app.Message(), "already exists") {
		t.Errorf("expected duplicate message, got %q", app.Message())
	}
}

func TestApp_AddFolder(t *testing.T) {
	svc := newFakeService()
	app := newApp(t, svc)

	app = update(t, app, keyRunes("A"))
	app = update(t, app, keyRunes("Travel"))
	app, cmd := updateCmd(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected create folder command")
	}
	app = update(t, app, cmd())

	if app.Store().FolderByName("Travel") == nil {
		t.Error("expected new folder in local store")
	}
	if app.Mode() != tui.ModeNormal {
		t.Error("expected return to normal mode")
	}
}

func TestApp_ReloadReconciles(t *testing.T) {
	svc := newFakeService()
	app := newApp(t, svc)

	// Server side changes between loads.
	svc.folders = []model.Folder{
		{ID: 1, Name: "Development"},
		{ID: 3, Name: "Music"},
	}

	app, cmd := updateCmd(t, app, keyRunes("r"))
	if cmd == nil {
		t.Fatal("expected reload command")
	}
	app = update(t, app, cmd())

	if app.Store().FolderByID(2) != nil {
		t.Error("expected vanished folder pruned")
	}
	if app.Store().FolderByName("Music") == nil {
		t.Error("expected new folder present")
	}
}

func TestApp_ViewShowsBookmarkDetails(t *testing.T) {
	svc := newFakeService()
	app := newApp(t, svc)

	app, cmd := updateCmd(t, app, keyRunes("l"))
	app = update(t, app, cmd())
	app = update(t, app, keyRunes("j"))

	view := app.View()
	if !strings.Contains(view, "https://go.dev") {
		t.Error("expected bookmark URL in detail pane")
	}
}
