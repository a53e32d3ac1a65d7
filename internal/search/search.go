package search

import (
	"github.com/sahilm/fuzzy"

	"github.com/smartbookmarker/smark/internal/model"
)

// Result represents a fuzzy search match.
type Result struct {
	Bookmark       *model.Bookmark
	MatchedIndexes []int
	Score          int
}

// bookmarkTitles implements fuzzy.Source for bookmark slice.
type bookmarkTitles []*model.Bookmark

func (bt bookmarkTitles) String(i int) string {
	return bt[i].Title
}

func (bt bookmarkTitles) Len() int {
	return len(bt)
}

// Bookmarks searches the snapshot's bookmarks by title using fuzzy matching.
// Returns results sorted by match score (best first).
func Bookmarks(snap *model.Snapshot, query string) []Result {
	if query == "" || snap == nil {
		return nil
	}

	bookmarks := make(bookmarkTitles, len(snap.Bookmarks))
	for i := range snap.Bookmarks {
		bookmarks[i] = &snap.Bookmarks[i]
	}

	matches := fuzzy.FindFrom(query, bookmarks)

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Bookmark:       bookmarks[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
