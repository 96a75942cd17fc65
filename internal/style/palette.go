package style

import (
	"fmt"
	"sort"
	"strings"
)

const (
	DefaultPaletteName = "default"
	NonePaletteName    = "none"
)

// PaletteDefault is jqk's own look: bold blue keys and green strings, with
// numbers, booleans and null highlighted the way Python's rich does.
var PaletteDefault = Palette{
	Key:    "\x1b[1;34m",
	String: "\x1b[32m",
	Number: "\x1b[1;36m",
	True:   "\x1b[3;92m",
	False:  "\x1b[3;91m",
	Null:   "\x1b[3;35m",
	Brace:  "\x1b[1m",
}

// PaletteJQ mirrors jq's default JQ_COLORS.
var PaletteJQ = Palette{
	Key:         "\x1b[1;34m",
	String:      "\x1b[0;32m",
	Number:      "\x1b[0;39m",
	True:        "\x1b[0;39m",
	False:       "\x1b[0;39m",
	Null:        "\x1b[0;90m",
	Brace:       "\x1b[1;39m",
	Punctuation: "\x1b[1;39m",
}

var PaletteTokyoNight = Palette{
	Key:         "\x1b[38;5;69m",
	String:      "\x1b[38;5;110m",
	Number:      "\x1b[38;5;176m",
	True:        "\x1b[38;5;117m",
	False:       "\x1b[38;5;117m",
	Null:        "\x1b[38;5;244m",
	Brace:       "\x1b[38;5;74m",
	Punctuation: "\x1b[38;5;244m",
}

var PaletteCatppuccinMocha = Palette{
	Key:         "\x1b[38;5;217m",
	String:      "\x1b[38;5;183m",
	Number:      "\x1b[38;5;147m",
	True:        "\x1b[38;5;152m",
	False:       "\x1b[38;5;152m",
	Null:        "\x1b[38;5;244m",
	Brace:       "\x1b[38;5;182m",
	Punctuation: "\x1b[38;5;244m",
}

var PaletteDoomNord = Palette{
	Key:         "\x1b[38;5;153m",
	String:      "\x1b[38;5;152m",
	Number:      "\x1b[38;5;109m",
	True:        "\x1b[38;5;115m",
	False:       "\x1b[38;5;115m",
	Null:        "\x1b[38;5;245m",
	Brace:       "\x1b[38;5;110m",
	Punctuation: "\x1b[38;5;245m",
}

var PaletteGruvboxLight = Palette{
	Key:         "\x1b[38;5;130m",
	String:      "\x1b[38;5;108m",
	Number:      "\x1b[38;5;66m",
	True:        "\x1b[38;5;142m",
	False:       "\x1b[38;5;142m",
	Null:        "\x1b[38;5;180m",
	Brace:       "\x1b[38;5;136m",
	Punctuation: "\x1b[38;5;180m",
}

var paletteRegistry = map[string]Palette{
	DefaultPaletteName: PaletteDefault,
	"jq":               PaletteJQ,
	"tokyo-night":      PaletteTokyoNight,
	"catppuccin-mocha": PaletteCatppuccinMocha,
	"doom-nord":        PaletteDoomNord,
	"gruvbox-light":    PaletteGruvboxLight,
	NonePaletteName:    {},
}

// PaletteNames returns the sorted list of palette names, including "none".
func PaletteNames() []string {
	names := make([]string, 0, len(paletteRegistry))
	for name := range paletteRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupPalette returns the palette registered under name. An empty name
// selects the default palette.
func LookupPalette(name string) (Palette, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultPaletteName
	}
	p, ok := paletteRegistry[name]
	if !ok {
		return Palette{}, fmt.Errorf("unknown palette %q (use one of: %s)", name, strings.Join(PaletteNames(), ", "))
	}
	return p, nil
}
