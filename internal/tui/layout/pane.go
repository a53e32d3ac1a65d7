package layout

// PaneLayout holds calculated widths for the two-pane view.
type PaneLayout struct {
	TreeWidth   int
	DetailWidth int
}

// CalculatePaneHeight computes the content height for panes.
// Returns at least MinHeight.
func CalculatePaneHeight(terminalHeight int, cfg PaneConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculatePaneWidth splits the terminal into tree and detail panes.
// The tree pane gets TreeWidthPercent of the usable width, the detail
// pane the rest. Both are clamped to their minimums.
func CalculatePaneWidth(terminalWidth int, cfg PaneConfig) PaneLayout {
	usable := terminalWidth - cfg.WidthOffset

	treeWidth := usable * cfg.TreeWidthPercent / 100
	if treeWidth < cfg.MinTreeWidth {
		treeWidth = cfg.MinTreeWidth
	}

	detailWidth := usable - treeWidth
	if detailWidth < cfg.MinDetailWidth {
		detailWidth = cfg.MinDetailWidth
	}

	return PaneLayout{
		TreeWidth:   treeWidth,
		DetailWidth: detailWidth,
	}
}

// CalculateItemWidth computes the width available for item content.
func CalculateItemWidth(paneWidth int, cfg PaneConfig) int {
	return paneWidth - cfg.ContentPadding
}

// CalculateVisibleHeight computes the visible item count in a pane.
func CalculateVisibleHeight(paneHeight, headerLines int) int {
	height := paneHeight - headerLines
	if height < 1 {
		return 1
	}
	return height
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected item visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}

// CalculateVisibleListItems computes the start and end indices for a scrollable list.
// Returns (start, end) where items[start:end] should be displayed.
func CalculateVisibleListItems(maxVisible, selectedIdx, totalItems int) (start, end int) {
	if totalItems <= maxVisible {
		return 0, totalItems
	}

	if selectedIdx >= maxVisible {
		start = selectedIdx - maxVisible + 1
	}

	end = start + maxVisible
	if end > totalItems {
		end = totalItems
	}

	return start, end
}
