// ABOUTME: Forecast sources feeding the local weather cache.
// ABOUTME: FakeSource generates a week of plausible days for offline use and tests.
package sync

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/harperreed/sunshine/internal/models"
)

// Source fetches forecast days for a location.
type Source interface {
	Fetch(ctx context.Context, location string, days int) ([]*models.WeatherRecord, error)
}

// FakeConditionIDs are the condition ids FakeSource picks from.
var FakeConditionIDs = []int{200, 300, 500, 711, 900, 962}

// FakeSource produces random forecast days starting today.
type FakeSource struct {
	mu  sync.Mutex
	rng *rand.Rand

	// Now is the clock used to pick "today". Defaults to time.Now.
	Now func() time.Time
}

// NewFakeSource creates a FakeSource with a fixed seed.
func NewFakeSource(seed uint64) *FakeSource {
	return &FakeSource{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Now: time.Now,
	}
}

// Fetch returns days consecutive normalized records beginning today.
func (f *FakeSource) Fetch(ctx context.Context, location string, days int) ([]*models.WeatherRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	today := f.Now().UTC()
	records := make([]*models.WeatherRecord, 0, days)
	for i := 0; i < days; i++ {
		high := float64(f.rng.IntN(45) - 10)
		low := high - float64(f.rng.IntN(15))
		rec := models.NewWeatherRecord(today.AddDate(0, 0, i), FakeConditionIDs[f.rng.IntN(len(FakeConditionIDs))]).
			WithTemps(high, low).
			WithAtmosphere(f.rng.Float64()*100, 875+f.rng.Float64()*100).
			WithWind(f.rng.Float64()*10, f.rng.Float64()*360)
		records = append(records, rec)
	}
	return records, nil
}
