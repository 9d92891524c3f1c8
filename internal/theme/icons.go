package theme

// Icon names a glyph used by buttons and navigation entries.
type Icon int

const (
	IconNone Icon = iota
	IconArrowsPointingOut
	IconBeaker
	IconBellAlert
	IconChevronUpDown
	IconCog6Tooth
	IconCommandLine
	IconDocument
	IconDocumentText
	IconFolder
	IconFolderOpen
	IconLockClosed
	IconMagnifyingGlass
	IconMusicalNote
	IconPhoneXMark
	IconPlay
	IconSpeakerWave
	IconSpeakerXMark
	IconSquare2Stack
	IconUser
	IconVideoCamera
	IconWindow
	IconXMark
)

var glyphs = map[Icon]string{
	IconArrowsPointingOut: "⤢",
	IconBeaker:            "⚗",
	IconBellAlert:         "🔔",
	IconChevronUpDown:     "⇕",
	IconCog6Tooth:         "⚙",
	IconCommandLine:       "⌘",
	IconDocument:          "🗋",
	IconDocumentText:      "🗎",
	IconFolder:            "🗀",
	IconFolderOpen:        "🗁",
	IconLockClosed:        "🔒",
	IconMagnifyingGlass:   "⌕",
	IconMusicalNote:       "♪",
	IconPhoneXMark:        "☎",
	IconPlay:              "▶",
	IconSpeakerWave:       "🔊",
	IconSpeakerXMark:      "🔇",
	IconSquare2Stack:      "⧉",
	IconUser:              "👤",
	IconVideoCamera:       "🎥",
	IconWindow:            "🗔",
	IconXMark:             "✕",
}

// Glyph returns the terminal glyph for the icon, or "" for IconNone.
func (i Icon) Glyph() string {
	return glyphs[i]
}
