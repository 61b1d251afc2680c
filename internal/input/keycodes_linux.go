//go:build linux

package input

import "pinwheel/internal/keys"

// gohook reports X11 keysyms in Rawcode on Linux.
var modifierRawcodes = map[uint16]keys.Modifier{
	65505: keys.ModShift, // Shift_L
	65506: keys.ModShift, // Shift_R
	65507: keys.ModCtrl,  // Control_L
	65508: keys.ModCtrl,  // Control_R
	65513: keys.ModAlt,   // Alt_L
	65514: keys.ModAlt,   // Alt_R
	65515: keys.ModSuper, // Super_L
	65516: keys.ModSuper, // Super_R
}

var namedRawcodes = map[uint16]string{
	65307: "escape",
}
