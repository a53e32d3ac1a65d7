package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/smartbookmarker/smark/internal/model"
)

// SQLiteStorage implements Storage using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema. IDs come from the server, so no
// autoincrement anywhere.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS folders (
			id INTEGER PRIMARY KEY NOT NULL,
			name TEXT NOT NULL,
			created_at TEXT
		);

		CREATE TABLE IF NOT EXISTS bookmarks (
			id INTEGER PRIMARY KEY NOT NULL,
			url TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			user_note TEXT,
			folder_id INTEGER NOT NULL,
			created_at TEXT,
			FOREIGN KEY (folder_id) REFERENCES folders(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_bookmarks_folder_id ON bookmarks(folder_id);
		CREATE INDEX IF NOT EXISTS idx_bookmarks_url ON bookmarks(url);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the snapshot from the SQLite database.
func (s *SQLiteStorage) Load() (*model.Snapshot, error) {
	snap := model.NewSnapshot()

	rows, err := s.db.Query(`
		SELECT id, name, created_at
		FROM folders
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var f model.Folder
		var createdAt sql.NullString

		if err := rows.Scan(&f.ID, &f.Name, &createdAt); err != nil {
			return nil, err
		}
		if createdAt.Valid {
			if t, err := time.Parse(time.RFC3339, createdAt.String); err == nil {
				f.CreatedAt = model.NewTimestamp(t)
			}
		}

		snap.Folders = append(snap.Folders, f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`
		SELECT id, url, title, description, user_note, folder_id, created_at
		FROM bookmarks
		ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var b model.Bookmark
		var description, userNote, createdAt sql.NullString

		if err := rows.Scan(
			&b.ID, &b.URL, &b.Title, &description, &userNote,
			&b.FolderID, &createdAt,
		); err != nil {
			return nil, err
		}

		b.Description = description.String
		b.UserNote = userNote.String
		if createdAt.Valid {
			if t, err := time.Parse(time.RFC3339, createdAt.String); err == nil {
				b.CreatedAt = model.NewTimestamp(t)
			}
		}

		snap.Bookmarks = append(snap.Bookmarks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return snap, nil
}

// Save writes the snapshot to the SQLite database.
// Uses a transaction for atomicity - all or nothing.
func (s *SQLiteStorage) Save(snap *model.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Replace the whole snapshot; bookmarks cascade on folder delete but the
	// explicit delete keeps orphans out when folder rows are missing.
	if _, err := tx.Exec("DELETE FROM bookmarks"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM folders"); err != nil {
		return err
	}

	folderStmt, err := tx.Prepare(`
		INSERT INTO folders (id, name, created_at)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer folderStmt.Close()

	for _, f := range snap.Folders {
		if _, err := folderStmt.Exec(f.ID, f.Name, timestampString(f.CreatedAt)); err != nil {
			return err
		}
	}

	bookmarkStmt, err := tx.Prepare(`
		INSERT INTO bookmarks (id, url, title, description, user_note, folder_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer bookmarkStmt.Close()

	for _, b := range snap.Bookmarks {
		if _, err := bookmarkStmt.Exec(
			b.ID, b.URL, b.Title, nullableString(b.Description),
			nullableString(b.UserNote), b.FolderID, timestampString(b.CreatedAt),
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func timestampString(t model.Timestamp) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
