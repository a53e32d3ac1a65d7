package picker_test

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smartbookmarker/smark/internal/model"
	"github.com/smartbookmarker/smark/internal/picker"
	"github.com/smartbookmarker/smark/internal/search"
)

func testResults() []search.Result {
	return []search.Result{
		{Bookmark: &model.Bookmark{ID: 10, Title: "The Go Blog", URL: "https://go.dev/blog", FolderID: 1}},
		{Bookmark: &model.Bookmark{ID: 11, Title: "Go Playground", URL: "https://go.dev/play", FolderID: 2}},
	}
}

func keyRunes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestPicker_Navigation(t *testing.T) {
	p := picker.New(testResults(), "go", nil)

	updated, _ := p.Update(keyRunes('j'))
	p = updated.(picker.Picker)

	updated, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = updated.(picker.Picker)

	selected := p.SelectedBookmark()
	if selected == nil || selected.ID != 11 {
		t.Errorf("expected bookmark 11 selected, got %+v", selected)
	}
}

func TestPicker_NavigationBounds(t *testing.T) {
	p := picker.New(testResults(), "go", nil)

	// k at top stays put, j past bottom stays at bottom
	updated, _ := p.Update(keyRunes('k'))
	p = updated.(picker.Picker)
	updated, _ = p.Update(keyRunes('j'))
	p = updated.(picker.Picker)
	updated, _ = p.Update(keyRunes('j'))
	p = updated.(picker.Picker)

	updated, _ = p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = updated.(picker.Picker)

	selected := p.SelectedBookmark()
	if selected == nil || selected.ID != 11 {
		t.Errorf("expected last bookmark selected, got %+v", selected)
	}
}

func TestPicker_Cancel(t *testing.T) {
	p := picker.New(testResults(), "go", nil)

	updated, _ := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	p = updated.(picker.Picker)

	if !p.Cancelled() {
		t.Error("expected picker to be cancelled")
	}
	if p.SelectedBookmark() != nil {
		t.Error("cancelled picker should return nil bookmark")
	}
}

func TestPicker_ViewShowsFolderNames(t *testing.T) {
	p := picker.New(testResults(), "go", map[int64]string{1: "Development"})

	view := p.View()
	if !strings.Contains(view, "[Development]") {
		t.Error("expected folder name in view")
	}
	if !strings.Contains(view, "https://go.dev/blog") {
		t.Error("expected URL in view")
	}
}
