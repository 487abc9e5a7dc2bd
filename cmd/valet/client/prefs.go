package client

import (
	"bytes"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/cloudvalet/valet/common"
)

// Prefs is the only persisted UI state: the dark mode flag
type Prefs struct {
	DarkMode bool `toml:"dark_mode"`

	filename string
}

// LoadPrefs reads preferences from filename. A missing file gives
// default preferences.
func LoadPrefs(filename string) (*Prefs, error) {
	prefs := &Prefs{filename: filename}
	if !common.PathExist(filename) {
		return prefs, nil
	}
	if _, err := toml.DecodeFile(filename, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// Save writes preferences back to their file
func (p *Prefs) Save() error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(p); err != nil {
		return err
	}
	return os.WriteFile(p.filename, buf.Bytes(), 0644)
}
