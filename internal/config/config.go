// ABOUTME: Settings loading with global + project config merge
// ABOUTME: Reads config.json with encoding/json or config.yaml/.yml with yaml.v3

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mauromedda/kilo-go/internal/log"
	"github.com/mauromedda/kilo-go/pkg/tui/key"
)

// DefaultQuitKey is used when no config layer sets quit_key.
const DefaultQuitKey = "q"

// Settings holds the merged configuration. Toggles are pointers so a
// project file can switch off what the global file switched on.
type Settings struct {
	QuitKey        string `json:"quit_key,omitempty" yaml:"quit_key,omitempty"`
	BracketedPaste *bool  `json:"bracketed_paste,omitempty" yaml:"bracketed_paste,omitempty"`
	FocusChange    *bool  `json:"focus_change,omitempty" yaml:"focus_change,omitempty"`
	MouseCapture   *bool  `json:"mouse_capture,omitempty" yaml:"mouse_capture,omitempty"`
	SyncOutput     *bool  `json:"sync_output,omitempty" yaml:"sync_output,omitempty"`
	LogLevel       string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFile        string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	Theme          string `json:"theme,omitempty" yaml:"theme,omitempty"` // built-in name or .json path
}

// Load reads and merges global and project-local settings.
// Project settings override global settings.
func Load(projectRoot string) (*Settings, error) {
	return LoadFrom(GlobalDir(), ProjectDir(projectRoot))
}

// LoadFrom merges the config files found in globalDir and projectDir.
// Missing files are skipped; unreadable or malformed ones are errors.
func LoadFrom(globalDir, projectDir string) (*Settings, error) {
	global, err := loadDir(globalDir)
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	project, err := loadDir(projectDir)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	merged := merge(global, project)
	ResolveEnvVars(merged)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

func loadDir(dir string) (*Settings, error) {
	path := FindConfigFile(dir)
	if path == "" {
		return &Settings{}, nil
	}
	return LoadFile(path)
}

// LoadFile reads Settings from a JSON or YAML file, chosen by extension.
func LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Settings
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &s)
	default:
		err = json.Unmarshal(data, &s)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge overlays project settings onto global settings.
// Set project values override global values.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	if project.QuitKey != "" {
		result.QuitKey = project.QuitKey
	}
	if project.BracketedPaste != nil {
		result.BracketedPaste = project.BracketedPaste
	}
	if project.FocusChange != nil {
		result.FocusChange = project.FocusChange
	}
	if project.MouseCapture != nil {
		result.MouseCapture = project.MouseCapture
	}
	if project.SyncOutput != nil {
		result.SyncOutput = project.SyncOutput
	}
	if project.LogLevel != "" {
		result.LogLevel = project.LogLevel
	}
	if project.LogFile != "" {
		result.LogFile = project.LogFile
	}
	if project.Theme != "" {
		result.Theme = project.Theme
	}

	return &result
}

// Validate checks the quit key and log level.
func (s *Settings) Validate() error {
	var errs []error
	if _, err := s.Quit(); err != nil {
		errs = append(errs, fmt.Errorf("quit_key: %w", err))
	}
	if _, err := log.ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// Quit parses the configured quit key, defaulting to "q".
func (s *Settings) Quit() (key.Key, error) {
	spec := s.QuitKey
	if spec == "" {
		spec = DefaultQuitKey
	}
	return key.ParseSpec(spec)
}

// PasteEnabled reports whether bracketed paste is on (default true).
func (s *Settings) PasteEnabled() bool { return boolOr(s.BracketedPaste, true) }

// FocusEnabled reports whether focus change reporting is on (default true).
func (s *Settings) FocusEnabled() bool { return boolOr(s.FocusChange, true) }

// MouseEnabled reports whether mouse capture is on (default true).
func (s *Settings) MouseEnabled() bool { return boolOr(s.MouseCapture, true) }

// SyncEnabled reports whether synchronized output is on (default false).
func (s *Settings) SyncEnabled() bool { return boolOr(s.SyncOutput, false) }

// Bool returns a pointer to v, for building Settings literals.
func Bool(v bool) *bool { return &v }

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
