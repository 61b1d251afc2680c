package wheel

import (
	"errors"
	"fmt"
)

// NumSlots is the fixed number of slots per wheel.
const NumSlots = 8

// BackSlotIndex is the slot reserved for the Back entry in auto-created
// subfolders (top-right).
const BackSlotIndex = 7

// Kind identifies what a slot does when committed.
type Kind int

const (
	KindEmpty Kind = iota
	KindKeystroke
	KindCommand
	KindLaunch
	KindFolder
	KindBack
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindKeystroke:
		return "keystroke"
	case KindCommand:
		return "command"
	case KindLaunch:
		return "launch"
	case KindFolder:
		return "folder"
	case KindBack:
		return "back"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindFromString maps a persisted type name back to a Kind.
func KindFromString(s string) (Kind, error) {
	switch s {
	case "", "empty":
		return KindEmpty, nil
	case "keystroke":
		return KindKeystroke, nil
	case "command":
		return KindCommand, nil
	case "launch":
		return KindLaunch, nil
	case "folder":
		return KindFolder, nil
	case "back":
		return KindBack, nil
	}
	return KindEmpty, fmt.Errorf("%w: unknown slot type %q", ErrMalformed, s)
}

// Slot is one of the eight positions in a wheel. Value holds the keystroke
// combo, shell command line, or program path depending on Kind; Args carries
// extra arguments for KindLaunch; Child is set only for KindFolder.
type Slot struct {
	Label string
	Kind  Kind
	Value string
	Args  []string
	Child *Wheel
}

// Wheel is one ordered set of exactly eight slots.
type Wheel struct {
	Slots [NumSlots]Slot
}

// ErrMalformed reports a wheel tree that violates the model invariants.
var ErrMalformed = errors.New("malformed wheel config")

// EmptyLabel is the label given to unconfigured slots.
const EmptyLabel = "Select to add action"

// New returns a wheel of eight empty slots.
func New() *Wheel {
	w := &Wheel{}
	for i := range w.Slots {
		w.Slots[i] = Slot{Label: EmptyLabel}
	}
	return w
}

// NewSubfolder returns a fresh child wheel with the Back entry reserved at
// the top-right slot.
func NewSubfolder() *Wheel {
	w := New()
	w.Slots[BackSlotIndex] = Slot{Label: "Back", Kind: KindBack}
	return w
}

// Lookup walks Folder slots from this wheel along path and returns the wheel
// the path leads to. An empty path returns the receiver.
func (w *Wheel) Lookup(path []int) (*Wheel, error) {
	cur := w
	for depth, idx := range path {
		if idx < 0 || idx >= NumSlots {
			return nil, fmt.Errorf("%w: slot index %d out of range at depth %d", ErrMalformed, idx, depth)
		}
		slot := cur.Slots[idx]
		if slot.Kind != KindFolder || slot.Child == nil {
			return nil, fmt.Errorf("path element %d at depth %d is not a folder", idx, depth)
		}
		cur = slot.Child
	}
	return cur, nil
}

// SetSlot replaces the slot at idx. Only the external editing path uses this;
// the interaction engine treats the tree as read-only.
func (w *Wheel) SetSlot(idx int, s Slot) error {
	if idx < 0 || idx >= NumSlots {
		return fmt.Errorf("slot index %d out of range", idx)
	}
	if err := validateSlot(s, idx); err != nil {
		return err
	}
	w.Slots[idx] = s
	return nil
}

// Validate checks the model invariants over the whole tree: slot kinds have
// the fields they need and every Folder slot carries a child wheel.
func (w *Wheel) Validate() error {
	return w.validate(make(map[*Wheel]bool))
}

func (w *Wheel) validate(seen map[*Wheel]bool) error {
	if seen[w] {
		return fmt.Errorf("%w: folder cycle detected", ErrMalformed)
	}
	seen[w] = true
	for i, s := range w.Slots {
		if err := validateSlot(s, i); err != nil {
			return err
		}
		if s.Kind == KindFolder {
			if err := s.Child.validate(seen); err != nil {
				return err
			}
		}
	}
	delete(seen, w)
	return nil
}

func validateSlot(s Slot, idx int) error {
	switch s.Kind {
	case KindEmpty, KindBack:
		return nil
	case KindKeystroke, KindCommand:
		if s.Value == "" {
			return fmt.Errorf("%w: slot %d (%s) has no value", ErrMalformed, idx, s.Kind)
		}
	case KindLaunch:
		if s.Value == "" {
			return fmt.Errorf("%w: slot %d (launch) has no program path", ErrMalformed, idx)
		}
	case KindFolder:
		if s.Child == nil {
			return fmt.Errorf("%w: slot %d (folder) has no child wheel", ErrMalformed, idx)
		}
	default:
		return fmt.Errorf("%w: slot %d has unknown kind %d", ErrMalformed, idx, int(s.Kind))
	}
	return nil
}
