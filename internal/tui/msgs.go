package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartbookmarker/smark/internal/model"
)

// Service is the server surface the TUI talks to. *api.Client satisfies it.
type Service interface {
	ListFolders(ctx context.Context) ([]model.Folder, error)
	GetFolder(ctx context.Context, id int64) (*model.FolderWithBookmarks, error)
	CreateFolder(ctx context.Context, name string) (*model.Folder, error)
	DeleteFolder(ctx context.Context, id int64) error
	CreateBookmark(ctx context.Context, req model.BookmarkCreate) (*model.Bookmark, error)
	Suggest(ctx context.Context, req model.BookmarkCreate) (*model.Suggestion, error)
	DeleteBookmark(ctx context.Context, id int64) error
}

// requestTimeout bounds every server call issued from the TUI.
const requestTimeout = 30 * time.Second

type foldersLoadedMsg struct {
	folders []model.Folder
}

type folderBookmarksMsg struct {
	folderID  int64
	bookmarks []model.Bookmark
}

type folderCreatedMsg struct {
	folder model.Folder
}

type folderDeletedMsg struct {
	folderID int64
}

type bookmarkCreatedMsg struct {
	bookmark model.Bookmark
}

type bookmarkDeletedMsg struct {
	bookmarkID int64
}

type suggestionMsg struct {
	suggestion model.Suggestion
}

// apiErrorMsg carries a failed server call back into Update. mode is the
// mode the app should fall back to.
type apiErrorMsg struct {
	err  error
	mode Mode
}

func (a App) loadFoldersCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		folders, err := a.service.ListFolders(ctx)
		if err != nil {
			return apiErrorMsg{err: err, mode: ModeNormal}
		}
		return foldersLoadedMsg{folders: folders}
	}
}

func (a App) loadFolderBookmarksCmd(folderID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		fwb, err := a.service.GetFolder(ctx, folderID)
		if err != nil {
			return apiErrorMsg{err: err, mode: ModeNormal}
		}
		return folderBookmarksMsg{folderID: folderID, bookmarks: fwb.Bookmarks}
	}
}

func (a App) createFolderCmd(name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		folder, err := a.service.CreateFolder(ctx, name)
		if err != nil {
			return apiErrorMsg{err: err, mode: ModeAddFolder}
		}
		return folderCreatedMsg{folder: *folder}
	}
}

func (a App) deleteFolderCmd(folderID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := a.service.DeleteFolder(ctx, folderID); err != nil {
			return apiErrorMsg{err: err, mode: ModeNormal}
		}
		return folderDeletedMsg{folderID: folderID}
	}
}

func (a App) createBookmarkCmd(req model.BookmarkCreate) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		bookmark, err := a.service.CreateBookmark(ctx, req)
		if err != nil {
			return apiErrorMsg{err: err, mode: ModeAddBookmark}
		}
		return bookmarkCreatedMsg{bookmark: *bookmark}
	}
}

func (a App) suggestCmd(req model.BookmarkCreate) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		suggestion, err := a.service.Suggest(ctx, req)
		if err != nil {
			return apiErrorMsg{err: err, mode: ModeAddBookmark}
		}
		return suggestionMsg{suggestion: *suggestion}
	}
}

func (a App) deleteBookmarkCmd(bookmarkID int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := a.service.DeleteBookmark(ctx, bookmarkID); err != nil {
			return apiErrorMsg{err: err, mode: ModeNormal}
		}
		return bookmarkDeletedMsg{bookmarkID: bookmarkID}
	}
}
