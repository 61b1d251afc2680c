package wheel

import (
	"fmt"
	"os"
	"path/filepath"
)

// Load reads the wheel tree from path. If the file does not exist yet, a
// default root wheel of eight empty slots is written there and returned.
func Load(path string) (*Wheel, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		w := New()
		if err := Save(path, w); err != nil {
			return nil, fmt.Errorf("failed to write default wheel config: %v", err)
		}
		return w, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

// Save writes the wheel tree to path, creating the directory if needed.
func Save(path string, w *Wheel) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := Marshal(w)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
