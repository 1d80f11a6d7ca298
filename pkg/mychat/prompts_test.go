package mychat

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const samplePromptYAML = `name: translate
messages:
  - role: system
    content: You translate text to Portuguese.
`

func writePromptFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadPromptsFromDir(t *testing.T) {
	dir := t.TempDir()
	writePromptFile(t, dir, "translate.yml", samplePromptYAML)
	writePromptFile(t, dir, "notes.txt", "ignored")

	prompts, err := loadPromptsFromDir(dir)
	require.NoError(t, err)
	require.Len(t, prompts, 1)
	require.Equal(t, RoleSystem, prompts["translate"][0].Role)
}

func TestLoadPromptsFromDirRejectsMissingName(t *testing.T) {
	dir := t.TempDir()
	writePromptFile(t, dir, "broken.yml", "messages:\n  - role: user\n    content: hi\n")

	_, err := loadPromptsFromDir(dir)
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing prompt name")
}

func TestLoadPromptsFromDirRejectsEmptyMessages(t *testing.T) {
	dir := t.TempDir()
	writePromptFile(t, dir, "broken.yml", "name: empty\n")

	_, err := loadPromptsFromDir(dir)
	require.Error(t, err)
}

func TestNewMergesPromptsDir(t *testing.T) {
	dir := t.TempDir()
	writePromptFile(t, dir, "translate.yml", samplePromptYAML)

	cfg := DefaultConfig()
	cfg.Model = "gpt-3.5-turbo"
	cfg.APIKey = "sk-test"
	cfg.PromptsDir = dir
	cfg.Prompts = map[string][]Message{
		"grammar": {{Role: RoleSystem, Content: "You fix grammar."}},
	}

	chat, err := New(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, []string{"grammar", "translate"}, chat.PromptNames())
}

func TestNewDoesNotMutateCallerPrompts(t *testing.T) {
	dir := t.TempDir()
	writePromptFile(t, dir, "translate.yml", samplePromptYAML)

	cfg := DefaultConfig()
	cfg.Model = "gpt-3.5-turbo"
	cfg.APIKey = "sk-test"
	cfg.PromptsDir = dir
	cfg.Prompts = map[string][]Message{
		"grammar": {{Role: RoleSystem, Content: "You fix grammar."}},
	}

	first, err := New(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, []string{"grammar", "translate"}, first.PromptNames())

	// The caller's catalog is untouched, so the same Config value
	// constructs a second session without a collision error.
	require.Len(t, cfg.Prompts, 1)
	second, err := New(context.Background(), cfg)
	require.NoError(t, err)
	require.Equal(t, []string{"grammar", "translate"}, second.PromptNames())
}

func TestNewRejectsPromptCollision(t *testing.T) {
	dir := t.TempDir()
	writePromptFile(t, dir, "grammar.yml", "name: grammar\nmessages:\n  - role: system\n    content: other\n")

	cfg := DefaultConfig()
	cfg.Model = "gpt-3.5-turbo"
	cfg.APIKey = "sk-test"
	cfg.PromptsDir = dir
	cfg.Prompts = map[string][]Message{
		"grammar": {{Role: RoleSystem, Content: "You fix grammar."}},
	}

	_, err := New(context.Background(), cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "grammar")
}
