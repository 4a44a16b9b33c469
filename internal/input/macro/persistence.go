package macro

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/keychord/internal/input/key"
)

// macroFile is the YAML layout of a saved macro set. Each register maps to
// its tokens joined by spaces, the same notation command tables use.
type macroFile struct {
	Version    int               `yaml:"version"`
	SavedAt    time.Time         `yaml:"saved_at"`
	LastPlayed string            `yaml:"last_played,omitempty"`
	Registers  map[string]string `yaml:"registers"`
}

const currentVersion = 1

// Marshal encodes the recorder's registers as YAML.
func Marshal(rec *Recorder) ([]byte, error) {
	data := macroFile{
		Version:   currentVersion,
		SavedAt:   time.Now().UTC(),
		Registers: make(map[string]string),
	}
	if last := rec.LastPlayed(); last != 0 {
		data.LastPlayed = string(last)
	}
	for _, reg := range rec.Registers() {
		data.Registers[string(reg)] = key.Join(rec.Get(reg))
	}

	out, err := yaml.Marshal(&data)
	if err != nil {
		return nil, fmt.Errorf("marshal macros: %w", err)
	}
	return out, nil
}

// Unmarshal decodes YAML produced by Marshal into rec, replacing all of its
// registers. Entries with an invalid register name are skipped.
func Unmarshal(raw []byte, rec *Recorder) error {
	var data macroFile
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal macros: %w", err)
	}
	if data.Version > currentVersion {
		return fmt.Errorf("unsupported macros file version %d (max %d)", data.Version, currentVersion)
	}

	rec.Clear()
	for name, joined := range data.Registers {
		reg, ok := singleRegister(name)
		if !ok {
			continue
		}
		tokens, err := key.Split(joined)
		if err != nil {
			continue
		}
		_ = rec.Set(reg, tokens)
	}
	if reg, ok := singleRegister(data.LastPlayed); ok {
		rec.setLastPlayed(reg)
	}
	return nil
}

// singleRegister accepts a one-letter lowercase register name.
func singleRegister(name string) (rune, bool) {
	runes := []rune(name)
	if len(runes) != 1 {
		return 0, false
	}
	reg, appendTo, err := ParseRegister(runes[0])
	if err != nil || appendTo {
		return 0, false
	}
	return reg, true
}

// Save writes the recorder's registers to path.
// The file is written atomically using a temporary file and rename.
func Save(rec *Recorder, path string) error {
	raw, err := Marshal(rec)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create macros directory: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, raw, 0o644); err != nil {
		return fmt.Errorf("write macros: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("write macros: %w", err)
	}
	return nil
}

// Load reads registers from path into rec. A missing file leaves rec
// untouched.
func Load(rec *Recorder, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read macros: %w", err)
	}
	return Unmarshal(raw, rec)
}
