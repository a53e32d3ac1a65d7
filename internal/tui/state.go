package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/smartbookmarker/smark/internal/model"
	"github.com/smartbookmarker/smark/internal/tui/layout"
)

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddBookmark
	ModeSuggestLoading
	ModeSuggestConfirm
	ModeAddFolder
	ModeConfirmDelete
	ModeHelp
)

// MessageType categorizes the status bar message.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageError
)

// AddBookmarkState holds state for the add bookmark form.
type AddBookmarkState struct {
	URLInput  textinput.Model
	NoteInput textinput.Model
	Focus     int // 0 = URL, 1 = note
}

// NewAddBookmarkState creates a new AddBookmarkState with initialized inputs.
func NewAddBookmarkState(cfg layout.LayoutConfig) AddBookmarkState {
	urlInput := textinput.New()
	urlInput.Placeholder = "https://..."
	urlInput.CharLimit = cfg.Input.URLCharLimit
	urlInput.Width = cfg.Input.URLWidth

	noteInput := textinput.New()
	noteInput.Placeholder = "Optional note"
	noteInput.CharLimit = cfg.Input.NoteCharLimit
	noteInput.Width = cfg.Input.StandardWidth

	return AddBookmarkState{
		URLInput:  urlInput,
		NoteInput: noteInput,
	}
}

// Reset clears the form for a new session.
func (s *AddBookmarkState) Reset() {
	s.URLInput.Reset()
	s.NoteInput.Reset()
	s.Focus = 0
	s.URLInput.Focus()
	s.NoteInput.Blur()
}

// SuggestConfirmState holds the editable suggestion preview.
type SuggestConfirmState struct {
	TitleInput  textinput.Model
	DescInput   textinput.Model
	FolderInput textinput.Model
	Focus       int // 0 = title, 1 = description, 2 = folder
}

// NewSuggestConfirmState creates a new SuggestConfirmState with initialized inputs.
func NewSuggestConfirmState(cfg layout.LayoutConfig) SuggestConfirmState {
	titleInput := textinput.New()
	titleInput.Placeholder = "Title"
	titleInput.CharLimit = cfg.Input.TitleCharLimit
	titleInput.Width = cfg.Input.StandardWidth

	descInput := textinput.New()
	descInput.Placeholder = "Description"
	descInput.CharLimit = cfg.Input.NoteCharLimit
	descInput.Width = cfg.Input.StandardWidth

	folderInput := textinput.New()
	folderInput.Placeholder = "Folder"
	folderInput.CharLimit = cfg.Input.FolderCharLimit
	folderInput.Width = cfg.Input.StandardWidth

	return SuggestConfirmState{
		TitleInput:  titleInput,
		DescInput:   descInput,
		FolderInput: folderInput,
	}
}

// Apply prefills the form from a server suggestion.
func (s *SuggestConfirmState) Apply(sug model.Suggestion) {
	s.TitleInput.SetValue(sug.Title)
	s.DescInput.SetValue(sug.Description)
	s.FolderInput.SetValue(sug.FolderName)
	s.Focus = 0
	s.TitleInput.Focus()
	s.DescInput.Blur()
	s.FolderInput.Blur()
}

// Reset clears the form.
func (s *SuggestConfirmState) Reset() {
	s.TitleInput.Reset()
	s.DescInput.Reset()
	s.FolderInput.Reset()
	s.Focus = 0
}

// AddFolderState holds state for the add folder form.
type AddFolderState struct {
	NameInput textinput.Model
}

// NewAddFolderState creates a new AddFolderState with initialized input.
func NewAddFolderState(cfg layout.LayoutConfig) AddFolderState {
	nameInput := textinput.New()
	nameInput.Placeholder = "Folder name"
	nameInput.CharLimit = cfg.Input.FolderCharLimit
	nameInput.Width = cfg.Input.StandardWidth

	return AddFolderState{NameInput: nameInput}
}

// Reset clears the form for a new session.
func (s *AddFolderState) Reset() {
	s.NameInput.Reset()
	s.NameInput.Focus()
}

// ConfirmDeleteState holds the item pending deletion.
type ConfirmDeleteState struct {
	Item Item
}
