package mychat

import "fmt"

// PromptNotFoundError reports a prompt name that is missing from the catalog.
type PromptNotFoundError struct {
	Name string
}

func (e *PromptNotFoundError) Error() string {
	return fmt.Sprintf("prompt %q does not exist in the catalog", e.Name)
}
