package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseModifiers(t *testing.T) {
	tests := []struct {
		spec string
		want Modifier
	}{
		{"super+alt", ModSuper | ModAlt},
		{"Super+Alt", ModSuper | ModAlt},
		{"ctrl+shift", ModCtrl | ModShift},
		{"win+alt", ModSuper | ModAlt},
		{"cmd", ModSuper},
		{" ctrl + alt ", ModCtrl | ModAlt},
	}
	for _, tt := range tests {
		got, err := ParseModifiers(tt.spec)
		require.NoError(t, err, "spec %q", tt.spec)
		assert.Equal(t, tt.want, got, "spec %q", tt.spec)
	}
}

func TestParseModifiersRejectsNonModifiers(t *testing.T) {
	_, err := ParseModifiers("ctrl+a")
	assert.ErrorIs(t, err, ErrInvalidSpec)

	_, err = ParseModifiers("")
	assert.ErrorIs(t, err, ErrEmptySpec)
}

func TestParseCombo(t *testing.T) {
	tests := []struct {
		spec     string
		wantMods Modifier
		wantKey  string
	}{
		{"Ctrl+Shift+A", ModCtrl | ModShift, "a"},
		{"Ctrl+C", ModCtrl, "c"},
		{"Alt+F4", ModAlt, "f4"},
		{"Super+Space", ModSuper, "space"},
		{"enter", ModNone, "enter"},
		{"x", ModNone, "x"},
	}
	for _, tt := range tests {
		combo, err := ParseCombo(tt.spec)
		require.NoError(t, err, "spec %q", tt.spec)
		assert.Equal(t, tt.wantMods, combo.Mods, "spec %q", tt.spec)
		assert.Equal(t, tt.wantKey, combo.Key, "spec %q", tt.spec)
	}
}

func TestParseComboErrors(t *testing.T) {
	_, err := ParseCombo("")
	assert.ErrorIs(t, err, ErrEmptySpec)

	// A non-modifier in a modifier position is rejected.
	_, err = ParseCombo("q+a")
	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestModifierSetOps(t *testing.T) {
	m := ModNone.With(ModCtrl).With(ModShift)
	assert.True(t, m.Has(ModCtrl))
	assert.True(t, m.Contains(ModCtrl|ModShift))
	assert.False(t, m.Contains(ModCtrl|ModAlt))
	assert.False(t, m.Without(ModCtrl).Has(ModCtrl))
}

func TestModifierString(t *testing.T) {
	assert.Equal(t, "Super+Alt", (ModSuper | ModAlt).String())
	assert.Equal(t, "", ModNone.String())
	assert.Equal(t, "Ctrl+Shift+c", Combo{Mods: ModCtrl | ModShift, Key: "c"}.String())
}
