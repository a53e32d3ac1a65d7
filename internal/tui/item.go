package tui

import "github.com/smartbookmarker/smark/internal/model"

// ItemKind distinguishes between folders and bookmarks in the tree.
type ItemKind int

const (
	ItemFolder ItemKind = iota
	ItemBookmark
)

// Item represents one row in the folder tree: either a folder or a
// bookmark nested under an expanded folder.
type Item struct {
	Kind     ItemKind
	Folder   *model.Folder
	Bookmark *model.Bookmark
}

// Title returns a display title for the item.
func (i Item) Title() string {
	if i.Kind == ItemFolder {
		return i.Folder.Name
	}
	return i.Bookmark.Title
}

// IsFolder returns true if this item is a folder.
func (i Item) IsFolder() bool {
	return i.Kind == ItemFolder
}
