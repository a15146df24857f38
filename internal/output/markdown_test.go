// Copyright 2026 The Qualitydash Authors
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/qualitydash/internal/quality"
)

func TestMarkdownFormatterName(t *testing.T) {
	assert.Equal(t, "markdown", NewMarkdownFormatter().Name())
}

func TestMarkdownFormat_Header(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownFormatter().Format(sampleReport(), &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Kwaliteitsrapport\n\n**Datum:** 14-03-26 09:30\n"), out)
}

func TestMarkdownFormat_StatusTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownFormatter().Format(sampleReport(), &buf))

	out := buf.String()
	assert.Contains(t, out, "| red | 1 |\n")
	assert.Contains(t, out, "| green | 1 |\n")
	assert.Contains(t, out, "| missing | 1 |\n")
	assert.Contains(t, out, "| perfect | 0 |\n")
}

func TestMarkdownFormat_Sections(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownFormatter().Format(sampleReport(), &buf))

	out := buf.String()
	assert.Contains(t, out, "## Tests A (2 metrieken)\n")
	assert.Contains(t, out, "## Tests B (1 metrieken)\n")
	assert.Contains(t, out, "| PD-1 | green | 3 issues | Maximaal 10 |\n")
	assert.Contains(t, out, `| PE-1 | red | 2 diensten \| down |  |`)
	assert.NotContains(t, out, "## Build", "sections without metrics are skipped")
}

func TestMarkdownFormat_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownFormatter().Format(&quality.Report{Title: "Leeg"}, &buf))
	assert.True(t, strings.HasPrefix(buf.String(), "# Leeg\n\n| Status | Aantal |"))
}

func TestMarkdownFormat_WriteError(t *testing.T) {
	err := NewMarkdownFormatter().Format(sampleReport(), &errWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write header")
}
