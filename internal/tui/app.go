package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartbookmarker/smark/internal/model"
	"github.com/smartbookmarker/smark/internal/tui/layout"
)

// App is the main bubbletea model for the bookmark browser.
type App struct {
	store        *model.Store
	service      Service
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	mode Mode

	// Tree state
	cursor   int
	items    []Item
	expanded map[int64]bool // folder IDs currently expanded

	// Form state
	addBookmark    AddBookmarkState
	suggestConfirm SuggestConfirmState
	addFolder      AddFolderState
	confirmDelete  ConfirmDeleteState

	// pendingURL and pendingNote carry the add bookmark form values
	// through the suggestion round trip.
	pendingURL  string
	pendingNote string

	// Status bar message
	messageText string
	messageType MessageType

	// For gg command
	lastKeyWasG bool

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Store   *model.Store
	Service Service
	Keys    *KeyMap // optional, uses default if nil
	Styles  *Styles // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutConfig := layout.DefaultConfig()

	app := App{
		store:          params.Store,
		service:        params.Service,
		keys:           keys,
		styles:         styles,
		layoutConfig:   layoutConfig,
		mode:           ModeNormal,
		expanded:       make(map[int64]bool),
		addBookmark:    NewAddBookmarkState(layoutConfig),
		suggestConfirm: NewSuggestConfirmState(layoutConfig),
		addFolder:      NewAddFolderState(layoutConfig),
		width:          80,
		height:         24,
	}

	app.refreshItems()
	return app
}

// refreshItems rebuilds the flat item list from the store. Expanded
// folders contribute their bookmarks as nested rows.
func (a *App) refreshItems() {
	a.items = a.items[:0]

	folders := a.store.Folders
	for i := range folders {
		a.items = append(a.items, Item{
			Kind:   ItemFolder,
			Folder: &folders[i],
		})

		if !a.expanded[folders[i].ID] {
			continue
		}
		bookmarks := a.store.BookmarksInFolder(folders[i].ID)
		for j := range bookmarks {
			a.items = append(a.items, Item{
				Kind:     ItemBookmark,
				Bookmark: &bookmarks[j],
			})
		}
	}

	if a.cursor >= len(a.items) {
		a.cursor = len(a.items) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// currentItem returns the item under the cursor, or a zero Item if the
// list is empty.
func (a App) currentItem() (Item, bool) {
	if len(a.items) == 0 || a.cursor >= len(a.items) {
		return Item{}, false
	}
	return a.items[a.cursor], true
}

// setMessage updates the status bar message.
func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

// clearMessage removes the status bar message.
func (a *App) clearMessage() {
	a.messageText = ""
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Items returns the current list of items.
func (a App) Items() []Item {
	return a.items
}

// Mode returns the current UI mode.
func (a App) Mode() Mode {
	return a.mode
}

// Message returns the current status bar message.
func (a App) Message() string {
	return a.messageText
}

// IsExpanded reports whether the folder row is expanded.
func (a App) IsExpanded(folderID int64) bool {
	return a.expanded[folderID]
}

// Store returns the underlying store.
func (a App) Store() *model.Store {
	return a.store
}

// Init implements tea.Model. The folder list loads on startup.
func (a App) Init() tea.Cmd {
	return a.loadFoldersCmd()
}
