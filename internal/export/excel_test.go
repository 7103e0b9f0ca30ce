package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonesrussell/problem-finder/internal/models"
)

func sampleProblems() []models.Problem {
	created := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	return []models.Problem{
		{
			ID:        "1",
			Statement: "Need a faster way to compare tire prices.",
			Solution:  "TireScan",
			CreatedAt: created,
			UpdatedAt: created.Add(48 * time.Hour),
			Sources: []models.Source{
				{ID: "s1", URL: "https://forum.example.com/t/1"},
				{ID: "s2", URL: "https://forum.example.com/t/2"},
			},
		},
		{
			ID:        "2",
			Statement: "Need a calmer alternative to group chat.",
			CreatedAt: created,
			UpdatedAt: created.Add(time.Hour),
			Sources:   []models.Source{},
		},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleProblems()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, headers, rows[0][:len(headers)])

	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "Need a faster way to compare tire prices.", rows[1][1])
	assert.Equal(t, "TireScan", rows[1][2])
	assert.Equal(t, "https://forum.example.com/t/1\nhttps://forum.example.com/t/2", rows[1][6])

	assert.Equal(t, "2", rows[2][0])
}

func TestWriteEmptyCollection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
