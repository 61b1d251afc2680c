//go:build windows

package input

import "pinwheel/internal/keys"

// Windows virtual-key codes.
var modifierRawcodes = map[uint16]keys.Modifier{
	0x10: keys.ModShift, // VK_SHIFT
	0xA0: keys.ModShift, // VK_LSHIFT
	0xA1: keys.ModShift, // VK_RSHIFT
	0x11: keys.ModCtrl,  // VK_CONTROL
	0xA2: keys.ModCtrl,  // VK_LCONTROL
	0xA3: keys.ModCtrl,  // VK_RCONTROL
	0x12: keys.ModAlt,   // VK_MENU
	0xA4: keys.ModAlt,   // VK_LMENU
	0xA5: keys.ModAlt,   // VK_RMENU
	0x5B: keys.ModSuper, // VK_LWIN
	0x5C: keys.ModSuper, // VK_RWIN
}

var namedRawcodes = map[uint16]string{
	0x1B: "escape", // VK_ESCAPE
}
