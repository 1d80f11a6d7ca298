// Prompt template discovery from a templates directory.
package mychat

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// promptFile mirrors one template file inside prompts_dir.
type promptFile struct {
	Name     string    `yaml:"name"`
	Messages []Message `yaml:"messages"`
}

// loadPromptsFromDir walks a directory tree and parses every .yml/.yaml file
// into a named prompt template.
func loadPromptsFromDir(dir string) (map[string][]Message, error) {
	prompts := map[string][]Message{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if ext != ".yml" && ext != ".yaml" {
			return nil
		}
		pf, err := parsePromptFile(path)
		if err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if _, ok := prompts[pf.Name]; ok {
			return fmt.Errorf("duplicate prompt %q in %s", pf.Name, path)
		}
		prompts[pf.Name] = pf.Messages
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prompts, nil
}

// parsePromptFile reads one template file and validates its metadata.
func parsePromptFile(path string) (promptFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return promptFile{}, err
	}

	var pf promptFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return promptFile{}, err
	}
	pf.Name = strings.TrimSpace(pf.Name)
	if pf.Name == "" {
		return promptFile{}, fmt.Errorf("missing prompt name")
	}
	if len(pf.Messages) == 0 {
		return promptFile{}, fmt.Errorf("prompt %q has no messages", pf.Name)
	}
	return pf, nil
}

// mergePrompts folds directory templates into the configured catalog. A name
// already defined in the configuration is a load-time error, not an override.
func mergePrompts(catalog map[string][]Message, extra map[string][]Message) error {
	for name, msgs := range extra {
		if _, ok := catalog[name]; ok {
			return fmt.Errorf("prompt %q defined both in config and prompts_dir", name)
		}
		catalog[name] = msgs
	}
	return nil
}
