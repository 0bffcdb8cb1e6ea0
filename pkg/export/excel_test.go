package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/eco-tools/cpi-pulse/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteChangeRates(t *testing.T) {
	mom := 0.32
	yoy := 3.25
	changeRates := []domain.ChangeRate{
		{
			Timestamp: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
			Level:     309.7,
		},
		{
			Timestamp: time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
			Level:     310.3,
			MoMPct:    &mom,
			YoYPct:    &yoy,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteChangeRates(&buf, "All items", changeRates))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Product", "Date", "Level", "MoM %", "YoY %"}, rows[0])

	assert.Equal(t, "All items", rows[1][0])
	assert.Equal(t, "2024-05", rows[1][1])
	// Absent rates stay empty instead of rendering as zero.
	assert.LessOrEqual(t, len(rows[1]), 3)

	require.GreaterOrEqual(t, len(rows[2]), 5)
	assert.Equal(t, "2024-06", rows[2][1])
	assert.Equal(t, "0.32", rows[2][3])
	assert.Equal(t, "3.25", rows[2][4])
}

func TestWriteChangeRatesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteChangeRates(&buf, "Food", nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 1, "only the header row is written")
}
