package mychat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleRow(session, content string) LedgerRow {
	return LedgerRow{
		SessionID:        session,
		Timestamp:        "2024-01-01 12:00",
		Prompt:           "grammar",
		Role:             "assistant",
		Content:          content,
		FinishReason:     "stop",
		CompletionTokens: 5,
		PromptTokens:     10,
		TotalTokens:      15,
		Messages:         `[{"role":"user","content":"hi"}]`,
		Completion:       `{"id":"chatcmpl-test"}`,
	}
}

func TestAppendLedgerRowCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conv.csv")

	require.NoError(t, appendLedgerRow(path, sampleRow("s1", "one"), false, NopLogger{}))

	rows, err := ReadLedger(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, sampleRow("s1", "one"), rows[0])
}

func TestAppendLedgerRowPreservesPriorRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conv.csv")

	require.NoError(t, appendLedgerRow(path, sampleRow("s1", "one"), false, NopLogger{}))
	require.NoError(t, appendLedgerRow(path, sampleRow("s1", "two"), false, NopLogger{}))

	rows, err := ReadLedger(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "one", rows[0].Content)
	require.Equal(t, "two", rows[1].Content)
}

// An unparseable ledger is treated as empty: after one append the file holds
// exactly the new row, prior content is lost.
func TestAppendLedgerRowResetsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conv.csv")
	require.NoError(t, os.WriteFile(path, []byte("\"unterminated\n"), 0o644))

	require.NoError(t, appendLedgerRow(path, sampleRow("s1", "fresh"), false, NopLogger{}))

	rows, err := ReadLedger(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "fresh", rows[0].Content)
}

// An existing file that cannot be opened must surface the error instead of
// being treated as absent and rewritten from empty.
func TestAppendLedgerRowPropagatesOpenError(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}
	path := filepath.Join(t.TempDir(), "conv.csv")
	require.NoError(t, appendLedgerRow(path, sampleRow("s1", "one"), false, NopLogger{}))
	require.NoError(t, os.Chmod(path, 0o000))

	err := appendLedgerRow(path, sampleRow("s1", "two"), false, NopLogger{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "open ledger")

	require.NoError(t, os.Chmod(path, 0o644))
	rows, err := ReadLedger(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "one", rows[0].Content)
}

func TestAppendLedgerRowFailsOnUnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "conv.csv")
	err := appendLedgerRow(path, sampleRow("s1", "one"), false, NopLogger{})
	require.Error(t, err)
}

func TestReadLedgerMissingFile(t *testing.T) {
	_, err := ReadLedger(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
}
