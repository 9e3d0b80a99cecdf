package store

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Font is the editor font family choice.
type Font string

const (
	FontSans  Font = "sans"
	FontSerif Font = "serif"
	FontMono  Font = "mono"
)

// Settings is the process-wide editor configuration: loaded once at startup,
// mutated by the user, persisted on every change.
type Settings struct {
	DarkMode       bool   `json:"darkMode"`
	EditorFont     Font   `json:"editorFont"`
	EditorFontSize int    `json:"editorFontSize"`
	EditorColor    string `json:"editorColor"`
	SidebarOpen    bool   `json:"sidebarOpen"`
}

// DefaultSettings returns the out-of-the-box configuration.
func DefaultSettings() Settings {
	return Settings{
		DarkMode:       false,
		EditorFont:     FontSans,
		EditorFontSize: 16,
		EditorColor:    "#333333",
		SidebarOpen:    true,
	}
}

// sanitized backfills fields that are missing or invalid in a stored blob.
func (s Settings) sanitized() Settings {
	def := DefaultSettings()
	switch s.EditorFont {
	case FontSans, FontSerif, FontMono:
	default:
		s.EditorFont = def.EditorFont
	}
	if s.EditorFontSize <= 0 {
		s.EditorFontSize = def.EditorFontSize
	}
	if _, err := colorful.Hex(s.EditorColor); err != nil {
		s.EditorColor = def.EditorColor
	}
	return s
}
