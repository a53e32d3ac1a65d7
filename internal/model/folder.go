package model

// Folder represents a named grouping of bookmarks.
// The server keeps folders flat; there is no nesting.
type Folder struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt Timestamp `json:"created_at"`
}

// FolderWithBookmarks is a folder together with its bookmarks, as returned
// by the single-folder endpoint.
type FolderWithBookmarks struct {
	Folder
	Bookmarks []Bookmark `json:"bookmarks"`
}

// FolderCreate holds the fields sent when creating a folder.
type FolderCreate struct {
	Name string `json:"name"`
}
