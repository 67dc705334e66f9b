package outwriter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/opendxi/opendxi/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sprintsFixture() []schema.Sprint {
	return []schema.Sprint{
		{Label: "Current Sprint", Value: "2026-03-04|2026-03-17", Start: "2026-03-04", End: "2026-03-17", IsCurrent: true},
		{Label: "Sprint 2026-02-18 to 2026-03-03", Value: "2026-02-18|2026-03-03", Start: "2026-02-18", End: "2026-03-03"},
	}
}

func TestWriteSprintsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSprintsCSV(&buf, sprintsFixture()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "label,start,end,is_current", lines[0])
	assert.Equal(t, "Current Sprint,2026-03-04,2026-03-17,true", lines[1])
	assert.Equal(t, "Sprint 2026-02-18 to 2026-03-03,2026-02-18,2026-03-03,false", lines[2])
}

func TestWriteSprintsTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSprintsTable(&buf, sprintsFixture()))

	out := buf.String()
	assert.Contains(t, out, "Current Sprint")
	assert.Contains(t, out, "2026-02-18")
	assert.Contains(t, out, "*")
}
