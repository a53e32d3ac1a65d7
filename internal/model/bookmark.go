package model

// Bookmark represents a saved URL as the server returns it.
// IDs are assigned server-side.
type Bookmark struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	UserNote    string    `json:"user_note,omitempty"`
	FolderID    int64     `json:"folder_id"`
	CreatedAt   Timestamp `json:"created_at"`
}

// BookmarkCreate holds the fields sent when creating a bookmark.
// Title, Description and FolderName are optional; when present they carry
// a previously confirmed suggestion, otherwise the server generates them.
type BookmarkCreate struct {
	URL         string `json:"url"`
	UserNote    string `json:"user_note,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	FolderName  string `json:"folder_name,omitempty"`
}

// Suggestion is the AI-generated metadata for a URL, returned by the
// suggest endpoint without saving anything.
type Suggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	FolderName  string `json:"folder_name"`
}
