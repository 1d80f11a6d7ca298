// Package mychat implements a small chat client around a remote completion
// service: it assembles message sequences from named prompt templates, sends
// them, tracks token usage and derived price, and records every exchange to a
// transcript file and a CSV usage ledger.
package mychat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// PricePerToken is the flat price charged per total token of a completion.
const PricePerToken = 0.000002

// Chat is one chat session. It owns the completion client, the prompt
// catalog, and the state of the most recent completion call. A Chat is not
// safe for concurrent use, and two sessions must not share the same
// transcript or ledger paths.
type Chat struct {
	config    Config
	client    openai.Client
	ctx       context.Context
	logger    Logger
	verbose   bool
	sessionID string

	encoding *encodingState

	hasLast         bool
	lastMessages    []Message
	lastCompletion  string
	lastTotalTokens int64
	lastPrice       float64
	lastAnswer      string
}

// New initializes a chat session with the provided context and config.
// Construction fails, without touching any file, when no API key resolves or
// the model is missing.
func New(ctx context.Context, cfg Config) (*Chat, error) {
	cfg = normalizeConfig(cfg)
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.Model == "" {
		return nil, errors.New("model is not set")
	}

	apiKey, err := resolveAPIKey(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.PromptsDir != "" {
		extra, err := loadPromptsFromDir(cfg.PromptsDir)
		if err != nil {
			return nil, fmt.Errorf("load prompts: %w", err)
		}
		if err := mergePrompts(cfg.Prompts, extra); err != nil {
			return nil, err
		}
	}

	c := &Chat{
		config:    cfg,
		client:    newOpenAIClient(cfg, apiKey),
		ctx:       ctx,
		logger:    cfg.Logger,
		verbose:   cfg.Verbose,
		sessionID: uuid.NewString(),
		encoding:  &encodingState{},
	}
	c.debugf("[verbose] session init: id=%s model=%s base_url=%s prompts=%d", c.sessionID, cfg.Model, cfg.BaseURL, len(cfg.Prompts))
	return c, nil
}

func newOpenAIClient(cfg Config, apiKey string) openai.Client {
	// Failures surface to the caller unchanged; the SDK's default retries
	// are disabled.
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	return openai.NewClient(opts...)
}

// SessionID returns the identifier recorded with every ledger row.
func (c *Chat) SessionID() string {
	return c.sessionID
}

// PromptNames returns the catalog's prompt names in sorted order.
func (c *Chat) PromptNames() []string {
	names := make([]string, 0, len(c.config.Prompts))
	for name := range c.config.Prompts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}

// Ask assembles a message sequence for the question and runs one completion,
// returning the answer text. The transcript and ledger writes happen as part
// of the same call; a failure there is not rolled back, so session state may
// already reflect a completed call the caller never saw durably logged.
func (c *Chat) Ask(question, context, promptName string) (string, error) {
	messages, err := c.BuildMessages(question, context, promptName)
	if err != nil {
		return "", err
	}
	result, err := c.complete(messages, promptName)
	if err != nil {
		return "", err
	}
	return result.Answer, nil
}

// LastAnswer returns the answer text of the most recent completion. The
// second return is false before any completion has succeeded.
func (c *Chat) LastAnswer() (string, bool) {
	return c.lastAnswer, c.hasLast
}

// LastMessages returns the message sequence sent on the most recent
// completion.
func (c *Chat) LastMessages() ([]Message, bool) {
	if !c.hasLast {
		return nil, false
	}
	return cloneMessages(c.lastMessages), true
}

// LastCompletion returns the raw payload of the most recent completion.
func (c *Chat) LastCompletion() (string, bool) {
	return c.lastCompletion, c.hasLast
}

// LastTotalTokens returns the total token count of the most recent
// completion.
func (c *Chat) LastTotalTokens() (int64, bool) {
	return c.lastTotalTokens, c.hasLast
}

// LastPrice returns the derived price of the most recent completion.
func (c *Chat) LastPrice() (float64, bool) {
	return c.lastPrice, c.hasLast
}

func (c *Chat) debugf(format string, args ...any) {
	debugf(c.verbose, c.logger, format, args...)
}
