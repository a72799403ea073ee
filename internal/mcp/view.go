// ABOUTME: Live "today onwards" forecast rows shared by the list and detail tools.
// ABOUTME: A started loader keeps the rows current as the cache changes.
package mcp

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/sunshine/internal/adapter"
	"github.com/harperreed/sunshine/internal/models"
)

// forecastView holds the current rows of the forecast list.
type forecastView struct {
	adapter *adapter.Adapter
	loader  *adapter.Loader
	now     func() time.Time

	mu         sync.Mutex
	day        int64
	generation int
	unwatch    func()
}

func newForecastView(source adapter.Source, now func() time.Time, logger *log.Logger) *forecastView {
	// Rows only; each caller renders with its own formatter.
	a := adapter.New(nil, nil, adapter.Options{})
	loader := adapter.NewLoader(source, a, logger)
	loader.Now = now
	return &forecastView{adapter: a, loader: loader, now: now}
}

// start loads the rows and follows every later change.
func (v *forecastView) start(ctx context.Context) error {
	v.unwatch = v.adapter.OnInvalidate(func() {
		v.mu.Lock()
		v.day = models.NormalizeDate(v.now())
		v.generation++
		v.mu.Unlock()
	})
	return v.loader.Start(ctx)
}

// rows returns the current rows and their generation, reloading once the day has rolled over.
func (v *forecastView) rows(ctx context.Context) (adapter.RowSet, int, error) {
	v.mu.Lock()
	stale := v.day != models.NormalizeDate(v.now())
	v.mu.Unlock()

	if stale {
		if err := v.loader.Reload(ctx); err != nil {
			return nil, 0, err
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	return v.adapter.Rows(), v.generation, nil
}

func (v *forecastView) close() {
	v.loader.Close()
	if v.unwatch != nil {
		v.unwatch()
	}
}
