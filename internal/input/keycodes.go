package input

import "pinwheel/internal/keys"

// ModifierFromRawcode maps a platform virtual key code to the modifier it
// represents. The per-GOOS tables live in keycodes_*.go.
func ModifierFromRawcode(rawcode uint16) (keys.Modifier, bool) {
	mod, ok := modifierRawcodes[rawcode]
	return mod, ok
}

// KeyName returns the configuration name of a non-modifier key this program
// cares about (currently only the cancel key), or "" if unnamed.
func KeyName(rawcode uint16) string {
	return namedRawcodes[rawcode]
}
