package wheel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWheelIsEmpty(t *testing.T) {
	w := New()
	for i, s := range w.Slots {
		assert.Equal(t, KindEmpty, s.Kind, "slot %d", i)
		assert.Equal(t, EmptyLabel, s.Label, "slot %d", i)
	}
	assert.NoError(t, w.Validate())
}

func TestNewSubfolderReservesBackSlot(t *testing.T) {
	w := NewSubfolder()
	assert.Equal(t, KindBack, w.Slots[BackSlotIndex].Kind)
	assert.Equal(t, "Back", w.Slots[BackSlotIndex].Label)
	assert.NoError(t, w.Validate())
}

func TestSetSlotValidation(t *testing.T) {
	w := New()

	assert.Error(t, w.SetSlot(-1, Slot{}), "negative index")
	assert.Error(t, w.SetSlot(NumSlots, Slot{}), "index past the wheel")
	assert.Error(t, w.SetSlot(0, Slot{Kind: KindCommand}), "command without value")
	assert.Error(t, w.SetSlot(0, Slot{Kind: KindFolder}), "folder without child")

	require.NoError(t, w.SetSlot(0, Slot{Label: "ls", Kind: KindCommand, Value: "ls"}))
	assert.Equal(t, "ls", w.Slots[0].Value)
}

func TestLookup(t *testing.T) {
	leaf := NewSubfolder()
	mid := NewSubfolder()
	require.NoError(t, mid.SetSlot(2, Slot{Label: "deep", Kind: KindFolder, Child: leaf}))
	root := New()
	require.NoError(t, root.SetSlot(4, Slot{Label: "f", Kind: KindFolder, Child: mid}))

	got, err := root.Lookup(nil)
	require.NoError(t, err)
	assert.Same(t, root, got)

	got, err = root.Lookup([]int{4, 2})
	require.NoError(t, err)
	assert.Same(t, leaf, got)

	_, err = root.Lookup([]int{0})
	assert.Error(t, err, "path through a non-folder slot")

	_, err = root.Lookup([]int{9})
	assert.Error(t, err, "index out of range")
}

func TestMarshalRoundTrip(t *testing.T) {
	child := NewSubfolder()
	require.NoError(t, child.SetSlot(5, Slot{Label: "Copy", Kind: KindKeystroke, Value: "Ctrl+C"}))
	root := New()
	require.NoError(t, root.SetSlot(0, Slot{Label: "Term", Kind: KindLaunch, Value: "/usr/bin/xterm", Args: []string{"-fg", "green"}}))
	require.NoError(t, root.SetSlot(3, Slot{Label: "Tools", Kind: KindFolder, Child: child}))

	data, err := Marshal(root)
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, root.Slots[0], got.Slots[0])
	require.Equal(t, KindFolder, got.Slots[3].Kind)
	require.NotNil(t, got.Slots[3].Child)
	assert.Equal(t, child.Slots[5], got.Slots[3].Child.Slots[5])
	assert.Equal(t, KindBack, got.Slots[3].Child.Slots[BackSlotIndex].Kind)
}

func TestUnmarshalRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "nope"},
		{"missing root", `{"other": {"slots": []}}`},
		{"wrong slot count", `{"root": {"slots": [{"label": "x"}]}}`},
		{"unknown type", `{"root": {"slots": [
			{"label":"x","type":"teleport"},{},{},{},{},{},{},{}]}}`},
		{"dangling folder", `{"root": {"slots": [
			{"label":"f","type":"folder","value":"folder_9"},{},{},{},{},{},{},{}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.data))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestUnmarshalRejectsFolderCycle(t *testing.T) {
	// A folder that contains itself.
	data := `{
		"root": {"slots": [
			{"label":"f","type":"folder","value":"folder_1"},{},{},{},{},{},{},{}]},
		"folder_1": {"slots": [
			{"label":"loop","type":"folder","value":"folder_1"},{},{},{},{},{},{},{}]}
	}`
	_, err := Unmarshal([]byte(data))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestLoadBootstrapsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wheel.json")

	w, err := Load(path)
	require.NoError(t, err)
	for _, s := range w.Slots {
		assert.Equal(t, KindEmpty, s.Kind)
	}

	// The default tree was persisted and loads back.
	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, w, again)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "wheel.json")
	root := New()
	require.NoError(t, root.SetSlot(6, Slot{Label: "hi", Kind: KindCommand, Value: "notify-send hi"}))

	require.NoError(t, Save(path, root))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, root, got)
}
