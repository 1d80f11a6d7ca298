package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/minhyannv/mychat-go/pkg/mychat"
)

// quitSentinel ends the conversation when typed on its own.
const quitSentinel = "q"

// replOptions configures REPL behavior.
type replOptions struct {
	ConversationFile string
	Verbose          bool
	Logger           mychat.Logger
}

// replyPair is one canned regex reply checked before the remote call.
type replyPair struct {
	pattern  *regexp.Regexp
	response string
}

var replyPairs = []replyPair{
	{regexp.MustCompile(`(?i)^(?:hi|hello|hey)[.!]?$`), "Hello!"},
	{regexp.MustCompile(`(?i)^what is your name\??$`), "My name is Chatbot, nice to meet you!"},
	{regexp.MustCompile(`(?i)^how are you\??$`), "I'm doing well, thanks for asking. How about you?"},
	{regexp.MustCompile(`(?i)^i'm (.*)$`), "Nice to hear that you are %1!"},
	{regexp.MustCompile(`(?i)^what can you do\??$`), "I can answer simple questions, have conversations, and tell jokes!"},
	{regexp.MustCompile(`(?i)^tell me a joke$`), "Why did the tomato turn red? Because it saw the salad dressing!"},
	{regexp.MustCompile(`(?i)^(?:bye|goodbye)[.!]?$`), "Goodbye!"},
}

// matchReply checks the input against the canned reply pairs. Capture groups
// substitute %1, %2, ... in the response.
func matchReply(input string) (string, bool) {
	for _, pair := range replyPairs {
		m := pair.pattern.FindStringSubmatch(input)
		if m == nil {
			continue
		}
		reply := pair.response
		for i := 1; i < len(m); i++ {
			reply = strings.ReplaceAll(reply, "%"+strconv.Itoa(i), m[i])
		}
		return reply, true
	}
	return "", false
}

// runREPL starts an interactive conversation for the given chat session.
func runREPL(chat *mychat.Chat, opts replOptions, in io.Reader, out io.Writer) error {
	if chat == nil {
		return fmt.Errorf("chat session is required")
	}
	if in == nil {
		return fmt.Errorf("input reader is required")
	}
	if out == nil {
		out = io.Discard
	}

	if opts.Verbose && opts.Logger != nil {
		opts.Logger.Debugf("[verbose] repl start: conversation_file=%s", opts.ConversationFile)
	}

	conv, err := os.OpenFile(opts.ConversationFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open conversation file: %w", err)
	}
	defer func() { _ = conv.Close() }()

	scanner := bufio.NewScanner(in)
	printWelcome(out)

	for {
		_, _ = fmt.Fprint(out, "You: ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if strings.EqualFold(input, quitSentinel) {
			_, _ = fmt.Fprintln(out, "Goodbye!")
			break
		}

		if strings.HasPrefix(input, "/") {
			handled, shouldQuit := handleCommand(input, chat, out)
			if shouldQuit {
				break
			}
			if handled {
				continue
			}
		}

		_, _ = fmt.Fprintf(conv, "User: %s\n", input)

		answer, ok := matchReply(input)
		if !ok {
			answer, err = chat.Ask(input, "", "")
			if err != nil {
				_, _ = fmt.Fprintf(out, "Error: %v\n\n", err)
				continue
			}
		}

		_, _ = fmt.Fprintf(conv, "Chatbot: %s\n", answer)
		_, _ = fmt.Fprintf(out, "Chatbot: %s\n\n", answer)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

func printWelcome(out io.Writer) {
	_, _ = fmt.Fprintln(out, "Type your message to start the conversation or 'q' to exit.")
	_, _ = fmt.Fprintln(out, "Commands:")
	_, _ = fmt.Fprintln(out, "  /help          - Show this help message")
	_, _ = fmt.Fprintln(out, "  /prompts       - List available prompt templates")
	_, _ = fmt.Fprintln(out, "  /tokens <text> - Estimate the token count for a message")
	_, _ = fmt.Fprintln(out, "  /quit          - Exit the program")
	_, _ = fmt.Fprintln(out)
}

func handleCommand(input string, chat *mychat.Chat, out io.Writer) (bool, bool) {
	cmd := strings.ToLower(input)
	switch {
	case cmd == "/help" || cmd == "/h":
		printWelcome(out)
		return true, false
	case cmd == "/prompts" || cmd == "/p":
		names := chat.PromptNames()
		if len(names) == 0 {
			_, _ = fmt.Fprintln(out, "No prompt templates configured.")
		}
		for _, name := range names {
			_, _ = fmt.Fprintf(out, "  %s\n", name)
		}
		_, _ = fmt.Fprintln(out)
		return true, false
	case cmd == "/tokens" || strings.HasPrefix(cmd, "/tokens "):
		text := strings.TrimSpace(strings.TrimPrefix(input, "/tokens"))
		count, err := chat.TokenCount(text, "", "")
		if err != nil {
			_, _ = fmt.Fprintf(out, "Error: %v\n\n", err)
			return true, false
		}
		_, _ = fmt.Fprintf(out, "Estimated tokens: %d\n\n", count)
		return true, false
	case cmd == "/quit" || cmd == "/exit" || cmd == "/q":
		_, _ = fmt.Fprintln(out, "Goodbye!")
		return true, true
	default:
		_, _ = fmt.Fprintf(out, "Unknown command: %s. Type /help for available commands.\n\n", input)
		return true, false
	}
}
