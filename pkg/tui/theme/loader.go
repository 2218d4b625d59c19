// ABOUTME: JSON theme file loading with validation and default fallback
// ABOUTME: Resolve accepts a built-in name or a path to a .json theme file

package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sahilm/fuzzy"
)

// ErrUnknownTheme is wrapped by Resolve for names that are neither
// built in nor a theme file.
var ErrUnknownTheme = errors.New("unknown theme")

// jsonPalette is the file form of a Palette. Unset fields inherit from
// DefaultPalette.
type jsonPalette struct {
	Marker   Color `json:"marker"`
	StatusFg Color `json:"status_fg"`
	StatusBg Color `json:"status_bg"`
	Reverse  *bool `json:"reverse"`
	Bold     *bool `json:"bold"`
}

type jsonTheme struct {
	Name    string      `json:"name"`
	Palette jsonPalette `json:"palette"`
}

// LoadFile reads a JSON theme file and returns a Theme.
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	var jt jsonTheme
	if err := json.Unmarshal(data, &jt); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}

	p := DefaultPalette()
	for _, c := range []struct {
		name string
		src  Color
		dst  *Color
	}{
		{"marker", jt.Palette.Marker, &p.Marker},
		{"status_fg", jt.Palette.StatusFg, &p.StatusFg},
		{"status_bg", jt.Palette.StatusBg, &p.StatusBg},
	} {
		if !c.src.Valid() {
			return nil, fmt.Errorf("theme file %s: invalid color %q for %s", path, c.src, c.name)
		}
		if c.src != "" {
			*c.dst = c.src
		}
	}
	if jt.Palette.Reverse != nil {
		p.Reverse = *jt.Palette.Reverse
	}
	if jt.Palette.Bold != nil {
		p.Bold = *jt.Palette.Bold
	}

	name := jt.Name
	if name == "" {
		name = path
	}
	return &Theme{Name: name, Palette: p}, nil
}

// Resolve returns the built-in theme called nameOrPath, or loads it from
// a file when it ends in ".json". The empty string means "default".
func Resolve(nameOrPath string) (*Theme, error) {
	if nameOrPath == "" {
		return Builtin("default"), nil
	}
	if th := Builtin(nameOrPath); th != nil {
		return th, nil
	}
	if strings.HasSuffix(nameOrPath, ".json") {
		return LoadFile(nameOrPath)
	}
	if matches := fuzzy.Find(nameOrPath, BuiltinNames()); len(matches) > 0 {
		return nil, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknownTheme, nameOrPath, matches[0].Str)
	}
	return nil, fmt.Errorf("%w %q (built in: %s)", ErrUnknownTheme, nameOrPath, strings.Join(BuiltinNames(), ", "))
}
