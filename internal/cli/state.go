package cli

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// State persiste entre invocaciones lo que la sesión recuerda en memoria
// (hoy solo la mascota seleccionada). Path vacío = no persiste.
type State struct {
	Path string `json:"-"`

	SelectedPet string `json:"selected_pet,omitempty"`
}

// DefaultStatePath vive junto a la config del usuario.
func DefaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "petlog", "state.json")
}

func LoadState(path string) (*State, error) {
	st := &State{Path: path}
	if path == "" {
		return st, nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return st, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *State) Save() error {
	if s == nil || s.Path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, raw, 0o600)
}
