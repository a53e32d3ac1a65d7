package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smartbookmarker/smark/internal/tui/layout"
)

// View implements tea.Model.
func (a App) View() string {
	if a.mode != ModeNormal {
		return a.renderModal()
	}

	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)
	paneLayout := layout.CalculatePaneWidth(a.width, a.layoutConfig.Pane)

	treePane := a.renderTreePane(paneLayout.TreeWidth, paneHeight)
	detailPane := a.renderDetailPane(paneLayout.DetailWidth, paneHeight)

	panes := lipgloss.JoinHorizontal(lipgloss.Top, treePane, detailPane)

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, a.renderHeader(), panes, a.renderHelpBar()),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders the app name and folder count above the panes.
func (a App) renderHeader() string {
	count := len(a.store.Folders)
	label := fmt.Sprintf("smark  %d folders", count)
	if count == 1 {
		label = "smark  1 folder"
	}
	return a.styles.Header.Render(label)
}

// renderTreePane renders the folder tree with expanded bookmark rows.
func (a App) renderTreePane(width, height int) string {
	var content strings.Builder

	visibleHeight := layout.CalculateVisibleHeight(height, 0)
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	if len(a.items) == 0 {
		content.WriteString(a.styles.Empty.Render("(no folders)"))
	} else {
		offset := layout.CalculateViewportOffset(a.cursor, len(a.items), visibleHeight)

		for i, item := range a.items {
			if i < offset {
				continue
			}
			if i >= offset+visibleHeight {
				break
			}
			line := a.renderItem(item, i == a.cursor, itemWidth)
			content.WriteString(line + "\n")
		}
	}

	return a.styles.PaneActive.
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

// renderItem renders a single tree row. Folder rows carry an expansion
// marker, bookmark rows are indented beneath their folder.
func (a App) renderItem(item Item, isCursor bool, maxWidth int) string {
	var prefix, text, suffix string

	if item.IsFolder() {
		if a.expanded[item.Folder.ID] {
			prefix = "v "
		} else {
			prefix = "> "
		}
		text = item.Title()
		suffix = "/"
	} else {
		prefix = "    "
		text = item.Title()
		if text == "" {
			text = item.Bookmark.URL
		}
	}

	line, _ := layout.TruncateWithPrefixSuffix(text, maxWidth, prefix, suffix, a.layoutConfig.Text)

	if isCursor {
		// Pad to fill width for selection highlight
		for len(line) < maxWidth {
			line += " "
		}
		return a.styles.ItemSelected.Render(line)
	}
	return a.styles.Item.Render(line)
}

// renderDetailPane renders details for the item under the cursor.
func (a App) renderDetailPane(width, height int) string {
	var content strings.Builder

	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	item, ok := a.currentItem()
	if !ok {
		content.WriteString(a.styles.Empty.Render("Nothing selected"))
	} else if item.IsFolder() {
		content.WriteString(a.styles.Title.Render(item.Folder.Name+"/") + "\n\n")

		if !a.store.IsLoaded(item.Folder.ID) {
			content.WriteString(a.styles.Empty.Render("Expand to load bookmarks"))
		} else {
			n := len(a.store.BookmarksInFolder(item.Folder.ID))
			switch n {
			case 0:
				content.WriteString(a.styles.Empty.Render("Empty folder"))
			case 1:
				content.WriteString(a.styles.Empty.Render("1 bookmark"))
			default:
				content.WriteString(a.styles.Empty.Render(fmt.Sprintf("%d bookmarks", n)))
			}
		}

		if !item.Folder.CreatedAt.IsZero() {
			content.WriteString("\n\n")
			content.WriteString(a.styles.Date.Render(
				"Created: " + item.Folder.CreatedAt.Format("2006-01-02"),
			))
		}
	} else {
		b := item.Bookmark
		content.WriteString(a.styles.Title.Render(b.Title) + "\n\n")

		url, _ := layout.TruncateText(b.URL, itemWidth, a.layoutConfig.Text)
		content.WriteString(a.styles.URL.Render(url) + "\n\n")

		if b.Description != "" {
			content.WriteString(b.Description + "\n\n")
		}
		if b.UserNote != "" {
			content.WriteString(a.styles.Note.Render("Note: "+b.UserNote) + "\n\n")
		}
		if !b.CreatedAt.IsZero() {
			content.WriteString(a.styles.Date.Render(
				"Created: " + b.CreatedAt.Format("2006-01-02"),
			))
		}
	}

	return a.styles.Pane.
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

// renderModal renders the current modal dialog.
func (a App) renderModal() string {
	if a.mode == ModeHelp {
		return a.renderHelpOverlay()
	}

	var title, content strings.Builder

	widthPercent := a.layoutConfig.Modal.DefaultWidthPercent
	if a.mode == ModeSuggestConfirm {
		widthPercent = a.layoutConfig.Modal.LargeWidthPercent
	}

	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	modalWidth := layout.CalculateModalWidth(a.width, widthPercent, a.layoutConfig.Modal)
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(modalWidth)

	switch a.mode {
	case ModeAddBookmark:
		title.WriteString("Add Bookmark\n\n")
		content.WriteString("URL:\n")
		content.WriteString(a.addBookmark.URLInput.View())
		content.WriteString("\n\n")
		content.WriteString("Note:\n")
		content.WriteString(a.addBookmark.NoteInput.View())

	case ModeSuggestLoading:
		title.WriteString("Add Bookmark\n\n")
		content.WriteString(a.styles.URL.Render(a.pendingURL) + "\n\n")
		content.WriteString("Fetching suggestions...\n\n")
		content.WriteString(a.styles.Empty.Render("The server suggests a title, description, and folder"))

	case ModeSuggestConfirm:
		title.WriteString("Confirm Bookmark\n\n")
		content.WriteString(a.styles.URL.Render(a.pendingURL) + "\n\n")
		content.WriteString("Title:\n")
		content.WriteString(a.suggestConfirm.TitleInput.View())
		content.WriteString("\n\n")
		content.WriteString("Description:\n")
		content.WriteString(a.suggestConfirm.DescInput.View())
		content.WriteString("\n\n")
		content.WriteString("Folder:\n")
		content.WriteString(a.suggestConfirm.FolderInput.View())

	case ModeAddFolder:
		title.WriteString("Add Folder\n\n")
		content.WriteString("Name:\n")
		content.WriteString(a.addFolder.NameInput.View())

	case ModeConfirmDelete:
		item := a.confirmDelete.Item
		if item.IsFolder() {
			title.WriteString("Delete Folder?\n\n")
			content.WriteString("\"" + item.Folder.Name + "\"\n\n")
		} else {
			title.WriteString("Delete Bookmark?\n\n")
			content.WriteString("\"" + item.Bookmark.Title + "\"\n\n")
		}
		content.WriteString(a.styles.Help.Render("This action cannot be undone.") + "\n\n")
		content.WriteString(a.renderHintsInline([]Hint{
			{Key: "Enter", Desc: "confirm"},
			{Key: "Esc", Desc: "cancel"},
		}))
	}

	modalContent := a.styles.Title.Render(title.String()) + content.String()

	// Place modal in center, then add help bar at bottom
	modal := lipgloss.Place(
		a.width,
		a.height-3, // Leave room for help bar
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(modalContent),
	)

	return lipgloss.JoinVertical(lipgloss.Left, modal, a.renderHelpBar())
}

// renderHelpBar renders the message line plus contextual hints.
func (a App) renderHelpBar() string {
	var lines []string

	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "") // Empty line provides gap when no message
	}

	hints := a.renderHints(a.getContextualHints())
	if hints != "" {
		lines = append(lines, hints)
	}

	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default: // MessageInfo
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
	}

	return msgStyle.Render(prefix + a.messageText)
}

// renderHelpOverlay renders the help overlay.
func (a App) renderHelpOverlay() string {
	// Brutalist style: no border, just raw columns
	modalStyle := lipgloss.NewStyle().
		Padding(1, 2)

	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("j/k  move\n")
	left.WriteString("l    expand folder\n")
	left.WriteString("h    collapse\n")
	left.WriteString("gg   top\n")
	left.WriteString("G    bottom\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("act") + "\n")
	left.WriteString("o    open url\n")
	left.WriteString("Y    yank url\n")
	left.WriteString("r    reload\n")

	var right strings.Builder
	right.WriteString(a.styles.Title.Render("edit") + "\n")
	right.WriteString("a    add bookmark\n")
	right.WriteString("A    add folder\n")
	right.WriteString("d    delete\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Title.Render("forms") + "\n")
	right.WriteString("Tab     next field\n")
	right.WriteString("Enter   submit\n")
	right.WriteString("Ctrl+s  save as-is\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/esc] close  [q] quit"))

	leftCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpLeftColumnWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpRightColumnWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}
