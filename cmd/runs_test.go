package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dublin-research/property-cli/internal/model"
)

func TestFormatRunsList(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	runs := []model.Run{
		{
			ID:        "abc12345-6789-0000-0000-000000000000",
			Command:   "run",
			Status:    model.RunStatusComplete,
			Rows:      1200,
			Geocoded:  1100,
			CreatedAt: now,
			UpdatedAt: now.Add(2 * time.Minute),
		},
		{
			ID:        "def12345-6789-0000-0000-000000000000",
			Command:   "scrape",
			Status:    model.RunStatusFailed,
			CreatedAt: now.Add(-time.Hour),
			UpdatedAt: now.Add(-30 * time.Minute),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, formatRunsList(&buf, runs))

	output := buf.String()
	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "COMMAND")
	assert.Contains(t, output, "STATUS")
	assert.Contains(t, output, "abc12345")
	assert.Contains(t, output, "complete")
	assert.Contains(t, output, "1200")
	assert.Contains(t, output, "scrape")
	assert.Contains(t, output, "failed")
	assert.Contains(t, output, "2025-06-15 10:30:00")
}

func TestFormatRunsList_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, formatRunsList(&buf, nil))
	assert.Contains(t, buf.String(), "ID\t")
}
