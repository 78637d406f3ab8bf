package model

import (
	"fmt"
	"strings"
)

// GameFormat is a league game format. The numeric values are the player
// counts used by the storage layer and the league API.
type GameFormat int16

const (
	FormatUnknown    GameFormat = 0
	FormatSixes      GameFormat = 6
	FormatHighlander GameFormat = 9
)

func ParseGameFormat(s string) (GameFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sixes", "6s", "6":
		return FormatSixes, nil
	case "highlander", "hl", "9":
		return FormatHighlander, nil
	default:
		return FormatUnknown, fmt.Errorf("unknown game format: %q", s)
	}
}

func (f GameFormat) String() string {
	switch f {
	case FormatSixes:
		return "Sixes"
	case FormatHighlander:
		return "Highlander"
	default:
		return "Unknown"
	}
}

func (f GameFormat) ShortName() string {
	switch f {
	case FormatSixes:
		return "6s"
	case FormatHighlander:
		return "HL"
	default:
		return "?"
	}
}
