// Token estimation for pre-flight cost checks.
package mychat

import (
	"strings"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

// encodingState caches the tokenizer bound to the configured model. The
// lookup is deferred so an unknown model never fails session construction.
type encodingState struct {
	loaded bool
	enc    *tiktoken.Tiktoken
}

// TokenCount estimates how many tokens the assembled sequence for these
// arguments would consume. It never participates in the completion path.
// When no tokenizer is known for the model, a word/character heuristic is
// used instead.
func (c *Chat) TokenCount(message, context, promptName string) (int, error) {
	messages, err := c.BuildMessages(message, context, promptName)
	if err != nil {
		return 0, err
	}
	text := renderMessages(messages)

	enc := c.modelEncoding()
	if enc == nil {
		return estimateTokens(text), nil
	}
	return len(enc.Encode(text, nil, nil)), nil
}

func (c *Chat) modelEncoding() *tiktoken.Tiktoken {
	if !c.encoding.loaded {
		c.encoding.loaded = true
		enc, err := tiktoken.EncodingForModel(c.config.Model)
		if err != nil {
			c.debugf("[verbose] tokens: no encoding for model %s, using heuristic: %v", c.config.Model, err)
		} else {
			c.encoding.enc = enc
		}
	}
	return c.encoding.enc
}

// estimateTokens approximates a token count from text when no tokenizer is
// available. Blend of word and character estimates, ~4 chars per token.
func estimateTokens(text string) int {
	words := len(strings.Fields(text))
	chars := len(text)
	return (words + chars/4) / 2
}

// renderMessages serializes a message sequence to the text form used for
// token counting and transcript question blocks.
func renderMessages(messages []Message) string {
	var sb strings.Builder
	for _, msg := range messages {
		sb.WriteString(string(msg.Role))
		sb.WriteString(": ")
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
