// ABOUTME: Shared test helpers for storage tests.
// ABOUTME: Provides an isolated provider and deterministic forecast records.
package storage

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/sunshine/internal/models"
)

var testDay = time.Date(2024, 6, 24, 0, 0, 0, 0, time.UTC)

func setupTestProvider(t *testing.T) *Provider {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewProvider(db, log.New(io.Discard))
}

// makeRecords returns n records on consecutive days starting at testDay.
func makeRecords(n int, conditionID int) []*models.WeatherRecord {
	records := make([]*models.WeatherRecord, 0, n)
	for i := 0; i < n; i++ {
		day := testDay.AddDate(0, 0, i)
		records = append(records, models.NewWeatherRecord(day, conditionID).
			WithTemps(20+float64(i), 10+float64(i)).
			WithAtmosphere(50, 1010).
			WithWind(2.5, 180))
	}
	return records
}
