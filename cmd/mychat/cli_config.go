package main

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/minhyannv/mychat-go/pkg/mychat"
)

const debugLogFile = "mychat.log"

// parseCLIConfig loads env + flags into runtime config.
func parseCLIConfig() (mychat.Config, replOptions, error) {
	_ = godotenv.Load(filepath.Join("config", "secrets.env"))
	_ = godotenv.Load()

	configPath := flag.String("config", filepath.Join("config", "base.yml"), "Path to the YAML chat configuration")
	conversationFile := flag.String("conversation_file", defaultConversationFile(), "File under logs/ to save the conversation history to")
	verbose := flag.Bool("verbose", false, "Verbose debug logging")
	flag.Parse()

	cfg, err := mychat.LoadConfig(*configPath)
	if err != nil {
		return mychat.Config{}, replOptions{}, err
	}
	cfg.BaseURL = strings.TrimSpace(os.Getenv("OPENAI_BASE_URL"))
	cfg.Verbose = *verbose

	// The transcript, ledger, and conversation files all live under logs/.
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return mychat.Config{}, replOptions{}, err
	}

	logger := mychat.NewWriterLogger(debugWriter())
	cfg.Logger = logger

	return cfg, replOptions{
		ConversationFile: filepath.Join("logs", filepath.Base(*conversationFile)),
		Verbose:          *verbose,
		Logger:           logger,
	}, nil
}

// debugWriter sends debug logs to mychat.log, echoed to stderr when the file
// cannot be opened.
func debugWriter() io.Writer {
	f, err := os.OpenFile(debugLogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return os.Stderr
	}
	return io.MultiWriter(f, os.Stderr)
}

func defaultConversationFile() string {
	if v := strings.TrimSpace(os.Getenv("CONVERSATION_FILE")); v != "" {
		return v
	}
	return "conversation_history.txt"
}
