// Usage ledger persistence.
package mychat

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/gocarina/gocsv"
)

// LedgerRow is one record per completion call. Rows are appended, never
// updated or deleted.
type LedgerRow struct {
	SessionID        string `csv:"session_id"`
	Timestamp        string `csv:"timestamp"`
	Prompt           string `csv:"prompt"`
	Role             string `csv:"role"`
	Content          string `csv:"content"`
	FinishReason     string `csv:"finish_reason"`
	CompletionTokens int64  `csv:"completion_tokens"`
	PromptTokens     int64  `csv:"prompt_tokens"`
	TotalTokens      int64  `csv:"total_tokens"`
	Messages         string `csv:"messages"`
	Completion       string `csv:"completion"`
}

func (c *Chat) appendLedger(result CompletionResult, messages []Message, promptName string) error {
	outbound, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("encode messages: %w", err)
	}
	row := LedgerRow{
		SessionID:        c.sessionID,
		Timestamp:        time.Now().Format(timestampLayout),
		Prompt:           promptName,
		Role:             string(RoleAssistant),
		Content:          result.Answer,
		FinishReason:     result.FinishReason,
		CompletionTokens: result.CompletionTokens,
		PromptTokens:     result.PromptTokens,
		TotalTokens:      result.TotalTokens,
		Messages:         string(outbound),
		Completion:       result.Raw,
	}
	c.debugf("[verbose] ledger: appending row to %s", c.config.LedgerPath)
	return appendLedgerRow(c.config.LedgerPath, row, c.verbose, c.logger)
}

// appendLedgerRow loads the ledger, appends one row, and rewrites the whole
// file. A missing file starts empty; an unparseable file is treated as empty,
// discarding its rows. Any other open failure propagates rather than wiping
// the file. Not crash-atomic and O(n) in prior rows per call, acceptable at
// this call volume.
func appendLedgerRow(path string, row LedgerRow, verbose bool, logger Logger) error {
	var rows []LedgerRow
	f, err := os.Open(path)
	switch {
	case err == nil:
		if err := gocsv.UnmarshalFile(f, &rows); err != nil {
			debugf(verbose, logger, "[verbose] ledger: %s is not a valid table, starting empty: %v", path, err)
			rows = nil
		}
		_ = f.Close()
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("open ledger: %w", err)
	}

	rows = append(rows, row)

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer func() { _ = out.Close() }()

	if err := gocsv.MarshalFile(&rows, out); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}

// ReadLedger loads all rows currently recorded at path.
func ReadLedger(path string) ([]LedgerRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	defer func() { _ = f.Close() }()

	var rows []LedgerRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse ledger: %w", err)
	}
	return rows, nil
}
