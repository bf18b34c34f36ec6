package dotdir

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	conversationsFile = "conversations.json"
)

// ConversationState is the persisted map of app name to the conversation id
// the CLI last used with that app.
type ConversationState struct {
	Conversations map[string]string `json:"conversations"`
}

// LoadConversations loads the state from a target .dify/conversations.json.
// A missing file yields an empty, non-nil state.
func (m *Manager) LoadConversations(overrideDir string) (*ConversationState, error) {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return nil, err
	}

	state := &ConversationState{Conversations: map[string]string{}}

	data, err := os.ReadFile(filepath.Join(dir, conversationsFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return state, nil
		}
		return nil, fmt.Errorf("reading conversation state: %w", err)
	}

	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("parsing conversation state: %w", err)
	}
	if state.Conversations == nil {
		state.Conversations = map[string]string{}
	}

	return state, nil
}

// Conversation returns the last conversation id recorded for app, or "".
func (m *Manager) Conversation(app, overrideDir string) (string, error) {
	state, err := m.LoadConversations(overrideDir)
	if err != nil {
		return "", err
	}
	return state.Conversations[app], nil
}

// SaveConversation records conversationID as the last conversation for app.
// An empty id removes the entry.
func (m *Manager) SaveConversation(app, conversationID, overrideDir string) error {
	if app == "" {
		return errors.New("cannot save conversation for empty app name")
	}

	state, err := m.LoadConversations(overrideDir)
	if err != nil {
		return err
	}

	if conversationID == "" {
		delete(state.Conversations, app)
	} else {
		state.Conversations[app] = conversationID
	}

	return m.writeConversations(state, overrideDir)
}

// ClearConversations removes the state file.
// Returns nil if the file doesn't exist.
func (m *Manager) ClearConversations(overrideDir string) error {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(dir, conversationsFile)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("removing conversation state: %w", err)
	}

	return nil
}

func (m *Manager) writeConversations(state *ConversationState, overrideDir string) error {
	dir, err := m.Target(overrideDir)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling conversation state: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, conversationsFile), data, 0o600); err != nil {
		return fmt.Errorf("writing conversation state: %w", err)
	}

	return nil
}
