package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Pane  PaneConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + header (1) + pane borders (2) + status bar (3) = 7
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// TreeWidthPercent is the tree pane's share of terminal width.
	TreeWidthPercent int

	// WidthOffset is subtracted from terminal width before splitting.
	// Accounts for borders and spacing between the two panes.
	WidthOffset int

	// MinTreeWidth is the minimum width of the tree pane.
	MinTreeWidth int

	// MinDetailWidth is the minimum width of the detail pane.
	MinDetailWidth int

	// ContentPadding is subtracted from pane width for item rendering.
	// Accounts for pane border/padding on each side.
	ContentPadding int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// LargeWidthPercent is used for modals needing more space (suggestion confirm).
	LargeWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// HelpLeftColumnWidth: width for help overlay left column.
	HelpLeftColumnWidth int

	// HelpRightColumnWidth: width for help overlay right column.
	HelpRightColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	// Character limits
	URLCharLimit    int
	NoteCharLimit   int
	TitleCharLimit  int
	FolderCharLimit int

	// Display widths
	StandardWidth int // Used for note, title, folder inputs
	URLWidth      int // Used for URL input (wider)
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction:  7, // app padding (1) + header (1) + pane borders (2) + status bar (3)
			MinHeight:        5,
			TreeWidthPercent: 40,
			WidthOffset:      6,
			MinTreeWidth:     24,
			MinDetailWidth:   30,
			ContentPadding:   4,
		},
		Modal: ModalConfig{
			DefaultWidthPercent:  40,
			LargeWidthPercent:    55,
			MinWidth:             50,
			MaxWidth:             80,
			HelpLeftColumnWidth:  18,
			HelpRightColumnWidth: 24,
		},
		Input: InputConfig{
			URLCharLimit:    500,
			NoteCharLimit:   300,
			TitleCharLimit:  200,
			FolderCharLimit: 100,
			StandardWidth:   40,
			URLWidth:        50,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
