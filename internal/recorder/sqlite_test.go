package recorder

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CurrencySentinel/internal/analysis"
	"CurrencySentinel/internal/model"
)

func sampleReport(t *testing.T) *analysis.Report {
	t.Helper()
	start := time.Date(2023, 12, 4, 0, 0, 0, 0, time.UTC)
	closes := []float64{89.5, 89.7, 90.1, 89.2, 89.9, 90.4}
	pts := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		pts[i] = model.PricePoint{Date: start.AddDate(0, 0, i), Open: c, High: c + 0.3, Low: c - 0.3, Close: c}
	}
	rep, err := analysis.Analyze(context.Background(), model.Series{Symbol: "EURINR=X", Points: pts},
		[]int{1, 5}, time.Time{}, time.Time{})
	require.NoError(t, err)
	rep.Source = "mock"
	return rep
}

func TestSQLiteRecorder_RecordRun(t *testing.T) {
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "db", "sentinel.db"))
	require.NoError(t, err)
	defer rec.Close()

	rep := sampleReport(t)
	require.NoError(t, rec.RecordRun(rep))

	var n int
	require.NoError(t, rec.db.QueryRow(`SELECT COUNT(*) FROM observations WHERE run_id = ?`, rep.RunID.String()).Scan(&n))
	assert.Equal(t, 12, n, "six rows for each of two windows")

	var sma float64
	var decision string
	require.NoError(t, rec.db.QueryRow(`SELECT sma, sma_decision FROM observations
		WHERE run_id = ? AND window_size = 1 AND date = '2023-12-04'`, rep.RunID.String()).Scan(&sma, &decision))
	assert.Equal(t, 89.5, sma)
	assert.True(t, model.Decision(decision).Valid())

	runs, err := rec.LatestRuns(5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, rep.RunID.String(), runs[0].RunID)
	assert.Equal(t, "1,5", runs[0].Windows)
	assert.Equal(t, 6, runs[0].Rows)
	assert.Equal(t, "mock", runs[0].Source)
}

func TestSQLiteRecorder_DuplicateRunRollsBack(t *testing.T) {
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "sentinel.db"))
	require.NoError(t, err)
	defer rec.Close()

	rep := sampleReport(t)
	require.NoError(t, rec.RecordRun(rep))
	assert.Error(t, rec.RecordRun(rep), "run_id is a primary key")

	var n int
	require.NoError(t, rec.db.QueryRow(`SELECT COUNT(*) FROM observations`).Scan(&n))
	assert.Equal(t, 12, n)
}

func TestNoopRecorder(t *testing.T) {
	var rec Recorder = NewNoopRecorder()
	assert.NoError(t, rec.RecordRun(sampleReport(t)))
	assert.NoError(t, rec.Close())
}
