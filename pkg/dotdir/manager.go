// Package dotdir manages the .dify/ and ~/.dify directories.
//
// The directory holds config.toml, the generated end-user id and
// conversations.json, the latter mapping an app to the conversation the CLI
// last continued so that "dify chat --continue" can resume it.
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DirName is the name of the dify directory.
	DirName = ".dify"

	// HomeEnv points at a dify directory and wins over ./.dify and ~/.dify.
	HomeEnv = "DIFY_HOME"
)

// Manager resolves and reads the dify directory.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Target returns the absolute path of the dify directory, creating it when
// missing. Order of precedence is as follows:
//  1. Provided override
//  2. $DIFY_HOME
//  3. Local ./.dify/ dir
//  4. Home ~/.dify/ dir
func (m *Manager) Target(overrideDir string) (string, error) {
	dir, err := m.resolve(overrideDir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating dify directory %s: %w", dir, err)
	}

	return filepath.Abs(dir)
}

func (m *Manager) resolve(overrideDir string) (string, error) {
	if overrideDir != "" {
		return overrideDir, nil
	}
	if env := os.Getenv(HomeEnv); env != "" {
		return env, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	local := filepath.Join(cwd, DirName)
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		return local, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, DirName), nil
}
