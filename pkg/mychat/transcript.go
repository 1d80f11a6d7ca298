// Transcript file writing.
package mychat

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const timestampLayout = "2006-01-02 15:04"

// writeTranscript appends one question/answer block to the transcript file.
// Prior content is never truncated; failure to open the file propagates.
func (c *Chat) writeTranscript(question, answer string) error {
	f, err := os.OpenFile(c.config.TranscriptPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open transcript: %w", err)
	}
	defer func() { _ = f.Close() }()

	var sb strings.Builder
	sb.WriteString(time.Now().Format(timestampLayout))
	sb.WriteString("\n")
	sb.WriteString(question)
	sb.WriteString("\n===\n")
	sb.WriteString(answer)
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Tokens: %d | Price: $%v\n", c.lastTotalTokens, c.lastPrice))
	sb.WriteString(strings.Repeat("=", 60))
	sb.WriteString("\n")

	if _, err := f.WriteString(sb.String()); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}
