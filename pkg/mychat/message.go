package mychat

// Role is the role for a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged unit of conversational content. Ordering within
// a sequence is meaningful and determines the context sent to the service.
type Message struct {
	Role    Role   `yaml:"role" json:"role"`
	Content string `yaml:"content" json:"content"`
}

// cloneMessages returns an independently owned copy of a message sequence.
// Prompt templates are never extended in place.
func cloneMessages(msgs []Message) []Message {
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}
