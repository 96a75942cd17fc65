// Package style carries styled text from the renderer to the terminal.
// Text is tagged with a Style and only resolved to ANSI escape sequences, or
// left plain, when it is written out.
package style

// Style tags a piece of output with its role.
type Style int

const (
	Plain Style = iota
	Key
	String
	Number
	True
	False
	Null
	Brace
	Punctuation
)

var styleNames = [...]string{
	Plain:       "plain",
	Key:         "key",
	String:      "string",
	Number:      "number",
	True:        "true",
	False:       "false",
	Null:        "null",
	Brace:       "brace",
	Punctuation: "punctuation",
}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return "unknown"
	}
	return styleNames[s]
}

// Segment is a run of text rendered in one style.
type Segment struct {
	Text  string
	Style Style
}

// Reset ends any ANSI styling.
const Reset = "\x1b[0m"

// Palette maps styles to ANSI escape sequences. An empty sequence leaves the
// text unstyled.
type Palette struct {
	Key         string
	String      string
	Number      string
	True        string
	False       string
	Null        string
	Brace       string
	Punctuation string
}

// Code returns the escape sequence for s.
func (p Palette) Code(s Style) string {
	switch s {
	case Key:
		return p.Key
	case String:
		return p.String
	case Number:
		return p.Number
	case True:
		return p.True
	case False:
		return p.False
	case Null:
		return p.Null
	case Brace:
		return p.Brace
	case Punctuation:
		return p.Punctuation
	default:
		return ""
	}
}
