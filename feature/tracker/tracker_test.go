package tracker

import (
	"os"
	"path/filepath"
	"testing"

	"tablet-ingest/core/reconcile"
	"tablet-ingest/core/serial"
	"tablet-ingest/core/table"
	"tablet-ingest/feature/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSlotColumn(t *testing.T) {
	var cols []int
	for i := range 7 {
		cols = append(cols, slotColumn(i))
	}
	assert.Equal(t, []int{2, 3, 5, 7, 9, 11, 13}, cols)
	assert.Equal(t, 27, slotColumn(13))
}

func writeTracker(t *testing.T, dir string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(dir, "tablet-tracker-KITKIT.csv")
	header := []string{"village", "date", "serial_1", "serial_2", "notes_2", "serial_3", "notes_3", "serial_4"}
	require.NoError(t, table.Write(path, header, rows))
	return path
}

func TestLoad(t *testing.T) {
	path := writeTracker(t, t.TempDir(), [][]string{
		{"57", "2018-05-25", "5A23001564", "6115000540", "swapped", "", "", "6116002162"},
		{"58", "2018-05-25", " 6115000540 ", "5a2300156", "typo", "6111001905"},
		{"59", "2018-05-25"},
	})

	got, err := Load(path, 7)
	require.NoError(t, err)
	assert.Equal(t, []serial.Number{"5A23001564", "6115000540", "6116002162", "5a2300156", "6111001905"}, got)
}

func TestLoad_SlotLimit(t *testing.T) {
	path := writeTracker(t, t.TempDir(), [][]string{
		{"57", "2018-05-25", "5A23001564", "6115000540", "", "6116002162"},
	})

	got, err := Load(path, 2)
	require.NoError(t, err)
	assert.Equal(t, []serial.Number{"5A23001564", "6115000540"}, got)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.csv"), 7)
	assert.Error(t, err)
}

func TestReconciler(t *testing.T) {
	dir := t.TempDir()
	trackerPath := writeTracker(t, dir, [][]string{
		{"57", "2018-05-25", "5A23001564", "6115000540", "", "6116002162"},
	})
	inventoryPath := filepath.Join(dir, "tablets-uploading-data-KITKIT.csv")
	require.NoError(t, table.Write(inventoryPath, inventory.Header, [][]string{
		{"KITKIT", "57", "2018-05-25", "2", "5A23001564;6115000541"},
	}))

	report, err := NewReconciler(7, reconcile.Options{Sort: true}, zap.NewNop()).Run(trackerPath, inventoryPath)
	require.NoError(t, err)

	require.Len(t, report.Missing, 1)
	assert.Equal(t, []string{"6115000541", "6115000540", "0.9"}, report.Missing[0].Record())
	require.Len(t, report.Unused, 2)
	assert.Equal(t, serial.Number("6115000540"), report.Unused[0].ID)
	assert.Equal(t, serial.Number("6116002162"), report.Unused[1].ID)

	paths, err := Write(filepath.Join(dir, "out"), report)
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, MissingFile, filepath.Base(paths[0]))

	missing, err := table.Read(paths[0])
	require.NoError(t, err)
	assert.Equal(t, reconcile.Header, missing.Header)
	assert.Equal(t, [][]string{{"6115000541", "6115000540", "0.9"}}, missing.Rows)

	_, err = os.Stat(filepath.Join(dir, "out", UnusedFile))
	assert.NoError(t, err)
}
