package export

import (
	"path/filepath"
	"strconv"
	"testing"

	"github.com/piwi3910/blastplan/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportHoleSchedule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.xlsx")
	r := buildTestResult(t)

	require.NoError(t, ExportHoleSchedule(path, r))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{HolesSheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(HolesSheet)
	require.NoError(t, err)
	require.Len(t, rows, r.Layout.HoleCount()+1)
	assert.Equal(t, "Hole", rows[0][0])
	assert.Equal(t, "Charge (kg)", rows[0][9])

	for i, h := range r.Layout.Holes {
		row := rows[i+1]
		assert.Equal(t, strconv.Itoa(i+1), row[0])
		x, err := strconv.ParseFloat(row[1], 64)
		require.NoError(t, err)
		assert.InDelta(t, h.X, x, 1e-6)
		assert.Equal(t, r.Explosive.String(), row[8])
	}

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	found := false
	for _, row := range summary {
		if len(row) == 2 && row[0] == "num_holes" {
			found = true
			assert.Equal(t, strconv.Itoa(r.HoleCount), row[1])
		}
	}
	assert.True(t, found, "summary should list num_holes")
}

func TestExportHoleSchedule_EmptyLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	assert.Error(t, ExportHoleSchedule(path, engine.Result{}))
}
