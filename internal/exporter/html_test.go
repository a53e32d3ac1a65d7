package exporter_test

import (
	"strings"
	"testing"
	"time"

	"github.com/smartbookmarker/smark/internal/exporter"
	"github.com/smartbookmarker/smark/internal/importer"
	"github.com/smartbookmarker/smark/internal/model"
)

func sampleSnapshot() *model.Snapshot {
	created := model.NewTimestamp(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	return &model.Snapshot{
		Folders: []model.Folder{
			{ID: 1, Name: "Development"},
			{ID: 2, Name: "Recipes & Food"},
		},
		Bookmarks: []model.Bookmark{
			{ID: 10, URL: "https://go.dev", Title: "The Go Programming Language", FolderID: 1, CreatedAt: created},
			{ID: 11, URL: "https://bread.example?a=1&b=2", Title: "Sourdough", FolderID: 2, CreatedAt: created},
			{ID: 12, URL: "https://orphan.example", Title: "Orphan", FolderID: 99, CreatedAt: created},
		},
	}
}

func TestExportHTML(t *testing.T) {
	out := exporter.ExportHTML(sampleSnapshot())

	if !strings.Contains(out, "<!DOCTYPE NETSCAPE-Bookmark-file-1>") {
		t.Error("missing Netscape doctype")
	}
	if !strings.Contains(out, "<H3>Development</H3>") {
		t.Error("missing folder heading")
	}
	if !strings.Contains(out, "<H3>Recipes &amp; Food</H3>") {
		t.Error("folder name not HTML-escaped")
	}
	if !strings.Contains(out, `HREF="https://go.dev"`) {
		t.Error("missing bookmark href")
	}
	if !strings.Contains(out, "https://bread.example?a=1&amp;b=2") {
		t.Error("URL not HTML-escaped")
	}
	if !strings.Contains(out, "Orphan") {
		t.Error("bookmark with unknown folder should still be exported")
	}
}

func TestExportHTML_NilSnapshot(t *testing.T) {
	out := exporter.ExportHTML(nil)
	if !strings.Contains(out, "<DL><p>") || !strings.Contains(out, "</DL><p>") {
		t.Error("expected well-formed empty document")
	}
}

func TestExportHTML_RoundTripsThroughImporter(t *testing.T) {
	out := exporter.ExportHTML(sampleSnapshot())

	entries, err := importer.ParseHTMLBookmarks(strings.NewReader(out))
	if err != nil {
		t.Fatalf("failed to reparse export: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries after round trip, got %d", len(entries))
	}

	byURL := make(map[string]importer.Entry)
	for _, e := range entries {
		byURL[e.URL] = e
	}
	if e, ok := byURL["https://go.dev"]; !ok || e.FolderName != "Development" {
		t.Errorf("round trip lost folder assignment: %+v", e)
	}
}
