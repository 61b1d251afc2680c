// Package keys models modifier sets and key-combo specifications like
// "Ctrl+Shift+A" or "super+alt".
package keys

import (
	"errors"
	"fmt"
	"strings"
)

// Modifier is a bitmask of held modifier keys.
type Modifier uint8

const (
	ModNone Modifier = 0

	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Has reports whether m contains mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns m with mod added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns m with mod removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// Contains reports whether every modifier in set is also in m.
func (m Modifier) Contains(set Modifier) bool {
	return m&set == set
}

func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var parts []string
	if m.Has(ModSuper) {
		parts = append(parts, "Super")
	}
	if m.Has(ModCtrl) {
		parts = append(parts, "Ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "Alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "Shift")
	}
	return strings.Join(parts, "+")
}

var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// modifierNames accepts the common aliases seen in configs.
var modifierNames = map[string]Modifier{
	"shift":   ModShift,
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"opt":     ModAlt,
	"option":  ModAlt,
	"super":   ModSuper,
	"win":     ModSuper,
	"cmd":     ModSuper,
	"meta":    ModSuper,
}

// ModifierFromName maps a single modifier name to its bit. Returns ModNone
// for unknown names.
func ModifierFromName(name string) Modifier {
	return modifierNames[strings.ToLower(strings.TrimSpace(name))]
}

// ParseModifiers parses a modifiers-only spec such as "super+alt". Every
// part must name a modifier.
func ParseModifiers(spec string) (Modifier, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return ModNone, ErrEmptySpec
	}
	var mods Modifier
	for _, part := range strings.Split(spec, "+") {
		mod := ModifierFromName(part)
		if mod == ModNone {
			return ModNone, fmt.Errorf("%w: %q is not a modifier", ErrInvalidSpec, strings.TrimSpace(part))
		}
		mods = mods.With(mod)
	}
	return mods, nil
}

// Combo is a parsed key combination: a modifier set plus one named key.
type Combo struct {
	Mods Modifier
	Key  string // lowercase key name: "a", "f4", "enter", "space"
}

func (c Combo) String() string {
	if c.Mods == ModNone {
		return c.Key
	}
	return c.Mods.String() + "+" + c.Key
}

// ParseCombo parses a spec like "Ctrl+Shift+A" or "Alt+F4". All parts but
// the last must be modifiers; the last part is the key.
func ParseCombo(spec string) (Combo, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Combo{}, ErrEmptySpec
	}
	parts := strings.Split(spec, "+")
	var mods Modifier
	for _, part := range parts[:len(parts)-1] {
		mod := ModifierFromName(part)
		if mod == ModNone {
			return Combo{}, fmt.Errorf("%w: %q is not a modifier", ErrInvalidSpec, strings.TrimSpace(part))
		}
		mods = mods.With(mod)
	}
	key := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
	if key == "" {
		return Combo{}, fmt.Errorf("%w: missing key", ErrInvalidSpec)
	}
	return Combo{Mods: mods, Key: key}, nil
}
