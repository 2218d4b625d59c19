// ABOUTME: Standard filesystem paths for kilo-go configuration
// ABOUTME: Resolves ~/.kilo-go/ for global and .kilo-go/ for project-local config files

package config

import (
	"os"
	"path/filepath"
)

const (
	globalDirName  = ".kilo-go"
	projectDirName = ".kilo-go"
	configBaseName = "config"
)

// configExts lists accepted config file extensions in lookup order.
var configExts = []string{".json", ".yaml", ".yml"}

// GlobalDir returns the user-global config directory (~/.kilo-go/).
func GlobalDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", globalDirName)
	}
	return filepath.Join(home, globalDirName)
}

// ProjectDir returns the project-local config directory (.kilo-go/ in projectRoot).
func ProjectDir(projectRoot string) string {
	return filepath.Join(projectRoot, projectDirName)
}

// FindConfigFile returns the first config.{json,yaml,yml} that exists in
// dir, or "" when there is none.
func FindConfigFile(dir string) string {
	for _, ext := range configExts {
		p := filepath.Join(dir, configBaseName+ext)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}
