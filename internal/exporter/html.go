package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/smartbookmarker/smark/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/bookmarks-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("bookmarks-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML renders the snapshot as Netscape bookmark HTML. Folders
// are flat on the server, so the output is one folder level deep.
func ExportHTML(snap *model.Snapshot) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	if snap != nil {
		byFolder := make(map[int64][]model.Bookmark)
		for _, bm := range snap.Bookmarks {
			byFolder[bm.FolderID] = append(byFolder[bm.FolderID], bm)
		}

		for _, folder := range snap.Folders {
			fmt.Fprintf(&b, "    <DT><H3>%s</H3>\n", html.EscapeString(folder.Name))
			b.WriteString("    <DL><p>\n")
			for _, bm := range byFolder[folder.ID] {
				writeBookmark(&b, bm, 2)
			}
			b.WriteString("    </DL><p>\n")
		}

		// Bookmarks whose folder is missing from the snapshot still
		// get exported, at the top level.
		known := make(map[int64]bool, len(snap.Folders))
		for _, folder := range snap.Folders {
			known[folder.ID] = true
		}
		for _, bm := range snap.Bookmarks {
			if !known[bm.FolderID] {
				writeBookmark(&b, bm, 1)
			}
		}
	}

	b.WriteString("</DL><p>\n")
	return b.String()
}

func writeBookmark(b *strings.Builder, bm model.Bookmark, indent int) {
	prefix := strings.Repeat("    ", indent)

	title := bm.Title
	if title == "" {
		title = bm.URL
	}

	fmt.Fprintf(b,
		"%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\">%s</A>\n",
		prefix,
		html.EscapeString(bm.URL),
		bm.CreatedAt.Unix(),
		html.EscapeString(title),
	)
}
