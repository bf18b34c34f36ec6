package dotdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const (
	userIDFile   = "user_id"
	userIDPrefix = "dify-cli-"
)

// UserID returns the end-user identifier stored in the .dify directory,
// generating and saving a new one on first use. The platform scopes
// conversations to this identifier, so it must stay stable.
func (m *Manager) UserID(overrideDir string) (string, error) {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, userIDFile)

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("reading user id: %w", err)
	}

	id := userIDPrefix + uuid.NewString()
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("writing user id: %w", err)
	}
	return id, nil
}
