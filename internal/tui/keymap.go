package tui

// Key binding constants used in handleKey.
const (
	KeyQuit         = "ctrl+c"
	KeyUp           = "up"
	KeyDown         = "down"
	KeyToggle       = "enter"
	KeyNextLink     = "tab"
	KeyPrevLink     = "shift+tab"
	KeyBack         = "esc"
	KeyBackspace    = "backspace"
	KeyClearQuery   = "ctrl+u"
	KeyRecent       = "ctrl+r"
	KeyClearRecents = "ctrl+l"
)
