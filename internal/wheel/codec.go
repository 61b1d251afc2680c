package wheel

import (
	"encoding/json"
	"fmt"
)

// The persisted form is a flat table of folders keyed by id, with "root" as
// the entry point. Folder slots reference their child by id in "value".

const rootKey = "root"

type slotDoc struct {
	Label string   `json:"label"`
	Type  string   `json:"type,omitempty"`
	Value string   `json:"value,omitempty"`
	Args  []string `json:"args,omitempty"`
}

type folderDoc struct {
	Slots []slotDoc `json:"slots"`
}

// Marshal encodes the tree into the flat folder-table JSON form.
func Marshal(w *Wheel) ([]byte, error) {
	doc := make(map[string]folderDoc)
	nextID := 0
	if err := encodeFolder(w, rootKey, doc, &nextID); err != nil {
		return nil, err
	}
	return json.MarshalIndent(doc, "", "  ")
}

func encodeFolder(w *Wheel, key string, doc map[string]folderDoc, nextID *int) error {
	slots := make([]slotDoc, NumSlots)
	for i, s := range w.Slots {
		sd := slotDoc{Label: s.Label, Value: s.Value, Args: s.Args}
		if s.Kind != KindEmpty {
			sd.Type = s.Kind.String()
		}
		if s.Kind == KindFolder {
			if s.Child == nil {
				return fmt.Errorf("%w: folder slot %d in %q has no child", ErrMalformed, i, key)
			}
			*nextID++
			childKey := fmt.Sprintf("folder_%d", *nextID)
			sd.Value = childKey
			if err := encodeFolder(s.Child, childKey, doc, nextID); err != nil {
				return err
			}
		}
		slots[i] = sd
	}
	doc[key] = folderDoc{Slots: slots}
	return nil
}

// Unmarshal decodes the flat folder-table JSON form back into a tree and
// validates it.
func Unmarshal(data []byte) (*Wheel, error) {
	var doc map[string]folderDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, ok := doc[rootKey]; !ok {
		return nil, fmt.Errorf("%w: missing %q folder", ErrMalformed, rootKey)
	}
	w, err := decodeFolder(doc, rootKey, make(map[string]bool))
	if err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func decodeFolder(doc map[string]folderDoc, key string, visiting map[string]bool) (*Wheel, error) {
	if visiting[key] {
		return nil, fmt.Errorf("%w: folder cycle through %q", ErrMalformed, key)
	}
	visiting[key] = true
	defer delete(visiting, key)

	fd, ok := doc[key]
	if !ok {
		return nil, fmt.Errorf("%w: dangling folder reference %q", ErrMalformed, key)
	}
	if len(fd.Slots) != NumSlots {
		return nil, fmt.Errorf("%w: folder %q has %d slots, want %d", ErrMalformed, key, len(fd.Slots), NumSlots)
	}

	w := &Wheel{}
	for i, sd := range fd.Slots {
		kind, err := KindFromString(sd.Type)
		if err != nil {
			return nil, err
		}
		slot := Slot{Label: sd.Label, Kind: kind, Value: sd.Value, Args: sd.Args}
		if kind == KindFolder {
			child, err := decodeFolder(doc, sd.Value, visiting)
			if err != nil {
				return nil, err
			}
			slot.Child = child
			slot.Value = ""
		}
		w.Slots[i] = slot
	}
	return w, nil
}
