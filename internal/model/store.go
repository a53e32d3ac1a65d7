package model

import (
	"bytes"
	"encoding/json"
)

// Store is the ephemeral local mirror of server state. Folder contents are
// fetched lazily; the loaded map records which folders have been fetched so
// an empty slice can be told apart from "not loaded yet".
//
// The mirror is never authoritative: fresh server data replaces it via
// ReconcileFolders/SetFolderBookmarks, and successful mutations patch it
// optimistically (RemoveBookmark, RemoveFolder, UpsertFolder).
type Store struct {
	Folders   []Folder
	bookmarks map[int64][]Bookmark
	loaded    map[int64]bool
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		Folders:   []Folder{},
		bookmarks: make(map[int64][]Bookmark),
		loaded:    make(map[int64]bool),
	}
}

// ReconcileFolders replaces the folder list with fresh server data.
// Returns false when the incoming payload is identical to the local copy
// (serialized equality), in which case nothing is touched. Bookmarks of
// folders that no longer exist are dropped; loaded state of surviving
// folders is kept.
func (s *Store) ReconcileFolders(remote []Folder) bool {
	if remote == nil {
		remote = []Folder{}
	}

	local, _ := json.Marshal(s.Folders)
	fresh, _ := json.Marshal(remote)
	if bytes.Equal(local, fresh) {
		return false
	}

	s.Folders = remote

	alive := make(map[int64]bool, len(remote))
	for _, f := range remote {
		alive[f.ID] = true
	}
	for id := range s.loaded {
		if !alive[id] {
			delete(s.loaded, id)
			delete(s.bookmarks, id)
		}
	}

	return true
}

// SetFolderBookmarks replaces the bookmarks of one folder and marks it loaded.
func (s *Store) SetFolderBookmarks(folderID int64, bookmarks []Bookmark) {
	if bookmarks == nil {
		bookmarks = []Bookmark{}
	}
	s.bookmarks[folderID] = bookmarks
	s.loaded[folderID] = true
}

// BookmarksInFolder returns the loaded bookmarks of a folder, or nil when
// the folder has not been loaded.
func (s *Store) BookmarksInFolder(folderID int64) []Bookmark {
	return s.bookmarks[folderID]
}

// IsLoaded reports whether a folder's bookmarks have been fetched.
func (s *Store) IsLoaded(folderID int64) bool {
	return s.loaded[folderID]
}

// FolderByID finds a folder by ID, returns nil if not found.
func (s *Store) FolderByID(id int64) *Folder {
	for i := range s.Folders {
		if s.Folders[i].ID == id {
			return &s.Folders[i]
		}
	}
	return nil
}

// FolderByName finds a folder by exact name, returns nil if not found.
func (s *Store) FolderByName(name string) *Folder {
	for i := range s.Folders {
		if s.Folders[i].Name == name {
			return &s.Folders[i]
		}
	}
	return nil
}

// CanDeleteFolder is the client-side pre-check for the server constraint
// that a folder owning bookmarks cannot be deleted. It only blocks when the
// folder's bookmarks are loaded and non-empty; otherwise the server has the
// final say.
func (s *Store) CanDeleteFolder(folderID int64) bool {
	if !s.loaded[folderID] {
		return true
	}
	return len(s.bookmarks[folderID]) == 0
}

// UpsertFolder patches the mirror after a successful folder create.
// New folders are appended; the next reconcile restores server order.
func (s *Store) UpsertFolder(f Folder) {
	for i := range s.Folders {
		if s.Folders[i].ID == f.ID {
			s.Folders[i] = f
			return
		}
	}
	s.Folders = append(s.Folders, f)
}

// RemoveFolder patches the mirror after a successful folder delete.
func (s *Store) RemoveFolder(id int64) {
	for i := range s.Folders {
		if s.Folders[i].ID == id {
			s.Folders = append(s.Folders[:i], s.Folders[i+1:]...)
			break
		}
	}
	delete(s.bookmarks, id)
	delete(s.loaded, id)
}

// AddBookmark patches the mirror after a successful bookmark create.
// Only folders already loaded are touched; an unloaded folder will pick the
// bookmark up on its first fetch.
func (s *Store) AddBookmark(b Bookmark) {
	if !s.loaded[b.FolderID] {
		return
	}
	s.bookmarks[b.FolderID] = append(s.bookmarks[b.FolderID], b)
}

// RemoveBookmark patches the mirror after a successful bookmark delete.
func (s *Store) RemoveBookmark(id int64) {
	for folderID, list := range s.bookmarks {
		for i := range list {
			if list[i].ID == id {
				s.bookmarks[folderID] = append(list[:i], list[i+1:]...)
				return
			}
		}
	}
}

// Snapshot flattens the mirror into a serializable form for the local cache.
func (s *Store) Snapshot() *Snapshot {
	snap := &Snapshot{
		Folders:   append([]Folder{}, s.Folders...),
		Bookmarks: []Bookmark{},
	}
	for _, f := range s.Folders {
		snap.Bookmarks = append(snap.Bookmarks, s.bookmarks[f.ID]...)
	}
	return snap
}

// FromSnapshot rebuilds a Store from a cached snapshot. All folders present
// in the snapshot count as loaded.
func FromSnapshot(snap *Snapshot) *Store {
	s := NewStore()
	if snap == nil {
		return s
	}
	s.Folders = append(s.Folders, snap.Folders...)
	for _, f := range snap.Folders {
		s.loaded[f.ID] = true
		s.bookmarks[f.ID] = []Bookmark{}
	}
	for _, b := range snap.Bookmarks {
		if _, ok := s.bookmarks[b.FolderID]; ok {
			s.bookmarks[b.FolderID] = append(s.bookmarks[b.FolderID], b)
		}
	}
	return s
}

// Snapshot is the flat, serializable form of the last-synced server state.
type Snapshot struct {
	Folders   []Folder   `json:"folders"`
	Bookmarks []Bookmark `json:"bookmarks"`
}

// NewSnapshot creates an empty Snapshot with initialized slices.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Folders:   []Folder{},
		Bookmarks: []Bookmark{},
	}
}
