package report_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopmate/internal/report"
)

func TestAppendWritesOneLinePerOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summaries.jsonl")
	w := report.NewSummaryWriter(path)

	require.NoError(t, w.Append(report.Summary{OrderID: "o-1", Customer: "Asha", Total: 20, Timestamp: "2026-01-02T15:04:05Z"}))
	require.NoError(t, w.Append(report.Summary{OrderID: "o-2", Customer: "Moira", Total: 54.5, Timestamp: "2026-01-02T15:05:05Z"}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2)

	var s report.Summary
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &s))
	assert.Equal(t, "o-2", s.OrderID)
	assert.Equal(t, 54.5, s.Total)
}
