// Message assembly for completion requests.
package mychat

// BuildMessages assembles the ordered message sequence to send. Empty strings
// mean the argument is absent.
//
// Without a prompt name: a present context yields system(context) followed by
// user(message); otherwise the message alone becomes a single user message.
// With a prompt name: the named catalog template is copied and extended with
// system(context) and user(message) when present. The catalog entry itself is
// never mutated.
func BuildMessages(catalog map[string][]Message, message, context, promptName string) ([]Message, error) {
	if promptName == "" {
		if context != "" {
			return []Message{
				{Role: RoleSystem, Content: context},
				{Role: RoleUser, Content: message},
			}, nil
		}
		return []Message{{Role: RoleUser, Content: message}}, nil
	}

	template, ok := catalog[promptName]
	if !ok {
		return nil, &PromptNotFoundError{Name: promptName}
	}

	messages := cloneMessages(template)
	if context != "" {
		messages = append(messages, Message{Role: RoleSystem, Content: context})
	}
	if message != "" {
		messages = append(messages, Message{Role: RoleUser, Content: message})
	}
	return messages, nil
}

// BuildMessages assembles a message sequence against this session's catalog.
func (c *Chat) BuildMessages(message, context, promptName string) ([]Message, error) {
	return BuildMessages(c.config.Prompts, message, context, promptName)
}
