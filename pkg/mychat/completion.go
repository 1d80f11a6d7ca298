// Completion request/response handling and session state updates.
package mychat

import (
	"errors"
	"fmt"

	"github.com/openai/openai-go"
)

// CompletionResult describes one successful exchange with the completion
// service.
type CompletionResult struct {
	Answer           string
	FinishReason     string
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
	Raw              string
}

// Complete sends a non-empty message sequence to the completion service and
// returns the result. On success the session state is updated and one
// transcript block and one ledger row are written; any failure propagates to
// the caller with no retry. A service failure leaves session state at its
// prior value.
func (c *Chat) Complete(messages []Message) (CompletionResult, error) {
	return c.complete(messages, "")
}

func (c *Chat) complete(messages []Message, promptName string) (CompletionResult, error) {
	if len(messages) == 0 {
		return CompletionResult{}, errors.New("messages must not be empty")
	}

	params, err := toOpenAIMessages(messages)
	if err != nil {
		return CompletionResult{}, err
	}

	c.debugf("[verbose] completion: sending %d message(s) model=%s", len(messages), c.config.Model)
	completion, err := c.client.Chat.Completions.New(c.ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.config.Model),
		Messages: params,
	})
	if err != nil {
		return CompletionResult{}, err
	}
	if len(completion.Choices) == 0 {
		return CompletionResult{}, errors.New("empty completion choices")
	}

	choice := completion.Choices[0]
	result := CompletionResult{
		Answer:           choice.Message.Content,
		FinishReason:     string(choice.FinishReason),
		PromptTokens:     completion.Usage.PromptTokens,
		CompletionTokens: completion.Usage.CompletionTokens,
		TotalTokens:      completion.Usage.TotalTokens,
		Raw:              completion.RawJSON(),
	}
	c.debugf("[verbose] completion: finish_reason=%s total_tokens=%d", result.FinishReason, result.TotalTokens)

	// State updates happen only after a successful response.
	c.lastMessages = cloneMessages(messages)
	c.lastCompletion = result.Raw
	c.lastTotalTokens = result.TotalTokens
	c.lastPrice = float64(result.TotalTokens) * PricePerToken
	c.lastAnswer = result.Answer
	c.hasLast = true

	if err := c.writeTranscript(renderMessages(messages), result.Answer); err != nil {
		return CompletionResult{}, fmt.Errorf("record transcript: %w", err)
	}
	if err := c.appendLedger(result, messages, promptName); err != nil {
		return CompletionResult{}, fmt.Errorf("record ledger: %w", err)
	}
	return result, nil
}

func toOpenAIMessages(messages []Message) ([]openai.ChatCompletionMessageParamUnion, error) {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case RoleUser:
			out = append(out, openai.UserMessage(msg.Content))
		case RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		default:
			return nil, fmt.Errorf("invalid message role at index %d: %q", i, msg.Role)
		}
	}
	return out, nil
}
