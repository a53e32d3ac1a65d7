package tui

import (
	"log"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartbookmarker/smark/internal/api"
	"github.com/smartbookmarker/smark/internal/model"
)

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case foldersLoadedMsg:
		changed := a.store.ReconcileFolders(msg.folders)
		for id := range a.expanded {
			if a.store.FolderByID(id) == nil {
				delete(a.expanded, id)
			}
		}
		a.refreshItems()
		if !changed {
			return a, nil
		}
		// Expanded folders refetch their bookmarks so nested rows stay
		// in sync with the server.
		var cmds []tea.Cmd
		for id := range a.expanded {
			cmds = append(cmds, a.loadFolderBookmarksCmd(id))
		}
		return a, tea.Batch(cmds...)

	case folderBookmarksMsg:
		a.store.SetFolderBookmarks(msg.folderID, msg.bookmarks)
		a.refreshItems()
		return a, nil

	case folderCreatedMsg:
		a.store.UpsertFolder(msg.folder)
		a.refreshItems()
		a.mode = ModeNormal
		a.setMessage(MessageSuccess, "Folder \""+msg.folder.Name+"\" created.")
		return a, nil

	case folderDeletedMsg:
		a.store.RemoveFolder(msg.folderID)
		delete(a.expanded, msg.folderID)
		a.refreshItems()
		a.mode = ModeNormal
		a.setMessage(MessageSuccess, "Folder deleted.")
		return a, nil

	case bookmarkCreatedMsg:
		a.mode = ModeNormal
		a.setMessage(MessageSuccess, "Bookmark \""+msg.bookmark.Title+"\" saved.")
		if a.store.FolderByID(msg.bookmark.FolderID) == nil {
			// Server created a new folder for this bookmark; pick it up
			// with a full folder reload.
			return a, a.loadFoldersCmd()
		}
		a.store.AddBookmark(msg.bookmark)
		a.refreshItems()
		return a, nil

	case bookmarkDeletedMsg:
		a.store.RemoveBookmark(msg.bookmarkID)
		a.refreshItems()
		a.mode = ModeNormal
		a.setMessage(MessageSuccess, "Bookmark deleted.")
		return a, nil

	case suggestionMsg:
		if a.mode != ModeSuggestLoading {
			// Stale response after the user backed out.
			return a, nil
		}
		a.suggestConfirm.Apply(msg.suggestion)
		a.mode = ModeSuggestConfirm
		return a, nil

	case apiErrorMsg:
		// Raw error goes to the debug log; the status line gets the
		// friendly version.
		log.Printf("api error: %v", msg.err)
		a.mode = msg.mode
		a.setMessage(MessageError, api.FriendlyMessage(msg.err))
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.mode {
	case ModeNormal:
		return a.updateNormal(msg)
	case ModeAddBookmark:
		return a.updateAddBookmark(msg)
	case ModeSuggestLoading:
		return a.updateSuggestLoading(msg)
	case ModeSuggestConfirm:
		return a.updateSuggestConfirm(msg)
	case ModeAddFolder:
		return a.updateAddFolder(msg)
	case ModeConfirmDelete:
		return a.updateConfirmDelete(msg)
	case ModeHelp:
		return a.updateHelp(msg)
	}
	return a, nil
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if len(a.items) > 0 && a.cursor < len(a.items)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.items) > 0 {
			a.cursor = len(a.items) - 1
		}

	case key.Matches(msg, a.keys.Toggle):
		item, ok := a.currentItem()
		if !ok {
			break
		}
		if item.IsFolder() {
			return a.toggleFolder(item.Folder.ID)
		}
		return a, a.openBookmark(item.Bookmark)

	case key.Matches(msg, a.keys.Collapse):
		idx := a.enclosingFolderIndex()
		if idx < 0 {
			break
		}
		folderID := a.items[idx].Folder.ID
		if a.expanded[folderID] {
			delete(a.expanded, folderID)
			a.cursor = idx
			a.refreshItems()
		}

	case key.Matches(msg, a.keys.AddBookmark):
		a.clearMessage()
		a.addBookmark.Reset()
		a.mode = ModeAddBookmark
		return a, nil

	case key.Matches(msg, a.keys.AddFolder):
		a.clearMessage()
		a.addFolder.Reset()
		a.mode = ModeAddFolder
		return a, nil

	case key.Matches(msg, a.keys.Delete):
		item, ok := a.currentItem()
		if !ok {
			break
		}
		if item.IsFolder() && !a.store.CanDeleteFolder(item.Folder.ID) {
			a.setMessage(MessageError, "This folder still contains bookmarks. Move or delete them first.")
			break
		}
		a.confirmDelete = ConfirmDeleteState{Item: item}
		a.mode = ModeConfirmDelete
		return a, nil

	case key.Matches(msg, a.keys.Reload):
		a.clearMessage()
		return a, a.loadFoldersCmd()

	case key.Matches(msg, a.keys.Open):
		item, ok := a.currentItem()
		if ok && !item.IsFolder() {
			return a, a.openBookmark(item.Bookmark)
		}

	case key.Matches(msg, a.keys.YankURL):
		item, ok := a.currentItem()
		if ok && !item.IsFolder() {
			if err := clipboard.WriteAll(item.Bookmark.URL); err != nil {
				a.setMessage(MessageError, "Could not copy URL to clipboard.")
			} else {
				a.setMessage(MessageSuccess, "URL copied.")
			}
		}

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
		return a, nil
	}

	return a, nil
}

// toggleFolder expands or collapses the folder. Expanding a folder whose
// bookmarks have not been fetched yet triggers a lazy load.
func (a App) toggleFolder(folderID int64) (tea.Model, tea.Cmd) {
	if a.expanded[folderID] {
		delete(a.expanded, folderID)
		a.refreshItems()
		return a, nil
	}

	a.expanded[folderID] = true
	if !a.store.IsLoaded(folderID) {
		return a, a.loadFolderBookmarksCmd(folderID)
	}
	a.refreshItems()
	return a, nil
}

// enclosingFolderIndex returns the index of the folder row the cursor
// belongs to: the row itself for folders, the nearest folder row above
// for bookmarks. Returns -1 when the list is empty.
func (a App) enclosingFolderIndex() int {
	if len(a.items) == 0 || a.cursor >= len(a.items) {
		return -1
	}
	for i := a.cursor; i >= 0; i-- {
		if a.items[i].IsFolder() {
			return i
		}
	}
	return -1
}

func (a App) openBookmark(b *model.Bookmark) tea.Cmd {
	url := b.URL
	return func() tea.Msg {
		openInBrowser(url)
		return nil
	}
}

func (a App) updateAddBookmark(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = ModeNormal
		return a, nil

	case "tab", "shift+tab", "down", "up":
		a.addBookmark.Focus = (a.addBookmark.Focus + 1) % 2
		if a.addBookmark.Focus == 0 {
			a.addBookmark.URLInput.Focus()
			a.addBookmark.NoteInput.Blur()
		} else {
			a.addBookmark.URLInput.Blur()
			a.addBookmark.NoteInput.Focus()
		}
		return a, nil

	case "enter":
		url := strings.TrimSpace(a.addBookmark.URLInput.Value())
		if url == "" {
			a.setMessage(MessageError, "Enter a URL first.")
			return a, nil
		}
		a.clearMessage()
		a.pendingURL = url
		a.pendingNote = strings.TrimSpace(a.addBookmark.NoteInput.Value())
		a.mode = ModeSuggestLoading
		return a, a.suggestCmd(model.BookmarkCreate{
			URL:      a.pendingURL,
			UserNote: a.pendingNote,
		})

	case "ctrl+s":
		// Save without the suggestion round trip; the server fills in
		// page metadata itself.
		url := strings.TrimSpace(a.addBookmark.URLInput.Value())
		if url == "" {
			a.setMessage(MessageError, "Enter a URL first.")
			return a, nil
		}
		a.clearMessage()
		return a, a.createBookmarkCmd(model.BookmarkCreate{
			URL:      url,
			UserNote: strings.TrimSpace(a.addBookmark.NoteInput.Value()),
		})
	}

	var cmd tea.Cmd
	if a.addBookmark.Focus == 0 {
		a.addBookmark.URLInput, cmd = a.addBookmark.URLInput.Update(msg)
	} else {
		a.addBookmark.NoteInput, cmd = a.addBookmark.NoteInput.Update(msg)
	}
	return a, cmd
}

func (a App) updateSuggestLoading(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		a.mode = ModeAddBookmark
	}
	return a, nil
}

func (a App) updateSuggestConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = ModeAddBookmark
		return a, nil

	case "tab", "down":
		a.suggestConfirm.Focus = (a.suggestConfirm.Focus + 1) % 3
		a.focusSuggestInput()
		return a, nil

	case "shift+tab", "up":
		a.suggestConfirm.Focus = (a.suggestConfirm.Focus + 2) % 3
		a.focusSuggestInput()
		return a, nil

	case "enter":
		title := strings.TrimSpace(a.suggestConfirm.TitleInput.Value())
		folder := strings.TrimSpace(a.suggestConfirm.FolderInput.Value())
		if title == "" {
			a.setMessage(MessageError, "Enter a title first.")
			return a, nil
		}
		if folder == "" {
			a.setMessage(MessageError, "Enter a folder name first.")
			return a, nil
		}
		a.clearMessage()
		return a, a.createBookmarkCmd(model.BookmarkCreate{
			URL:         a.pendingURL,
			UserNote:    a.pendingNote,
			Title:       title,
			Description: strings.TrimSpace(a.suggestConfirm.DescInput.Value()),
			FolderName:  folder,
		})
	}

	var cmd tea.Cmd
	switch a.suggestConfirm.Focus {
	case 0:
		a.suggestConfirm.TitleInput, cmd = a.suggestConfirm.TitleInput.Update(msg)
	case 1:
		a.suggestConfirm.DescInput, cmd = a.suggestConfirm.DescInput.Update(msg)
	case 2:
		a.suggestConfirm.FolderInput, cmd = a.suggestConfirm.FolderInput.Update(msg)
	}
	return a, cmd
}

func (a *App) focusSuggestInput() {
	a.suggestConfirm.TitleInput.Blur()
	a.suggestConfirm.DescInput.Blur()
	a.suggestConfirm.FolderInput.Blur()
	switch a.suggestConfirm.Focus {
	case 0:
		a.suggestConfirm.TitleInput.Focus()
	case 1:
		a.suggestConfirm.DescInput.Focus()
	case 2:
		a.suggestConfirm.FolderInput.Focus()
	}
}

func (a App) updateAddFolder(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = ModeNormal
		return a, nil

	case "enter":
		name := strings.TrimSpace(a.addFolder.NameInput.Value())
		if name == "" {
			a.setMessage(MessageError, "Enter a folder name first.")
			return a, nil
		}
		if a.store.FolderByName(name) != nil {
			a.setMessage(MessageError, "A folder with this name already exists.")
			return a, nil
		}
		a.clearMessage()
		return a, a.createFolderCmd(name)
	}

	var cmd tea.Cmd
	a.addFolder.NameInput, cmd = a.addFolder.NameInput.Update(msg)
	return a, cmd
}

func (a App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		a.mode = ModeNormal
		return a, nil

	case "enter", "y":
		item := a.confirmDelete.Item
		if item.IsFolder() {
			return a, a.deleteFolderCmd(item.Folder.ID)
		}
		return a, a.deleteBookmarkCmd(item.Bookmark.ID)
	}
	return a, nil
}

func (a App) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "q", "esc":
		a.mode = ModeNormal
	}
	return a, nil
}
