//go:build darwin

package input

import "pinwheel/internal/keys"

// macOS virtual key codes (Carbon kVK_* values).
var modifierRawcodes = map[uint16]keys.Modifier{
	0x38: keys.ModShift, // kVK_Shift
	0x3C: keys.ModShift, // kVK_RightShift
	0x3B: keys.ModCtrl,  // kVK_Control
	0x3E: keys.ModCtrl,  // kVK_RightControl
	0x3A: keys.ModAlt,   // kVK_Option
	0x3D: keys.ModAlt,   // kVK_RightOption
	0x37: keys.ModSuper, // kVK_Command
	0x36: keys.ModSuper, // kVK_RightCommand
}

var namedRawcodes = map[uint16]string{
	0x35: "escape", // kVK_Escape
}
