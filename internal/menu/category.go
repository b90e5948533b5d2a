package menu

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// GroupKind tags the section a dish is rendered under.
type GroupKind int

const (
	GroupUnresolved GroupKind = iota
	GroupNorth
	GroupCentral
	GroupSouth
	GroupSnack
	GroupDrink
	GroupOther
)

const (
	KeyNorth   = "bắc"
	KeyCentral = "trung"
	KeySouth   = "nam"
	KeySnack   = "đồ ăn vặt"
	KeyDrink   = "nước uống"
)

// canonicalOrder is the display order of the five fixed sections.
var canonicalOrder = []GroupKind{GroupNorth, GroupCentral, GroupSouth, GroupSnack, GroupDrink}

var canonicalKeys = map[GroupKind]string{
	GroupNorth:   KeyNorth,
	GroupCentral: KeyCentral,
	GroupSouth:   KeySouth,
	GroupSnack:   KeySnack,
	GroupDrink:   KeyDrink,
}

// Group is a resolved category: one of the canonical kinds, or GroupOther
// carrying the lower-cased raw category as its key.
type Group struct {
	Kind GroupKind
	Key  string
}

func (g Group) Canonical() bool {
	return g.Kind != GroupOther && g.Kind != GroupUnresolved
}

// ResolveGroup maps a free-text category to its group. First match wins:
// drinks, snacks, north, central, south, then the raw lower-cased label.
func ResolveGroup(category string) Group {
	lower := strings.ToLower(category)

	var kind GroupKind
	switch {
	case strings.Contains(lower, "nước uống"):
		kind = GroupDrink
	case strings.Contains(lower, "ăn vặt"), strings.Contains(lower, "đồ ăn vặt"):
		kind = GroupSnack
	case strings.Contains(lower, "bắc"):
		kind = GroupNorth
	case strings.Contains(lower, "trung"):
		kind = GroupCentral
	case strings.Contains(lower, "nam"):
		kind = GroupSouth
	default:
		return Group{Kind: GroupOther, Key: lower}
	}

	return Group{Kind: kind, Key: canonicalKeys[kind]}
}

// DisplayTitle returns the section heading for a group key.
func DisplayTitle(key string) string {
	switch key {
	case KeySnack:
		return "🍟 Ăn vặt"
	case KeyDrink:
		return "🥤 Nước uống"
	case KeyNorth, KeyCentral, KeySouth:
		return "🇻🇳 Miền " + capitalize(key)
	default:
		return capitalize(key)
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
