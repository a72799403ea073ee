// ABOUTME: Keeps an adapter in sync with the "today onwards" forecast query.
// ABOUTME: Re-queries whenever the provider publishes a change to the weather resource.
package adapter

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/sunshine/internal/contract"
	"github.com/harperreed/sunshine/internal/storage"
)

// ForecastProjection is the column set the list needs.
var ForecastProjection = []string{
	contract.ColumnDate,
	contract.ColumnMaxTemp,
	contract.ColumnMinTemp,
	contract.ColumnConditionID,
}

// Source is the subset of the data access facade a Loader uses.
type Source interface {
	Query(ctx context.Context, r contract.Resource, q storage.Query) (*storage.ResultSet, error)
	Subscribe(r contract.Resource, fn func(changed contract.Resource)) *storage.Subscription
}

// Loader feeds query results into an Adapter.
type Loader struct {
	source  Source
	adapter *Adapter
	logger  *log.Logger

	// Now is the clock for the today-onwards filter. Defaults to time.Now.
	Now func() time.Time
	// All drops the today-onwards filter.
	All bool

	mu  sync.Mutex
	sub *storage.Subscription
}

// NewLoader creates a Loader. Call Start to run the first query.
func NewLoader(source Source, a *Adapter, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{
		source:  source,
		adapter: a,
		logger:  logger.WithPrefix("loader"),
		Now:     time.Now,
	}
}

// Query builds the list query: today onwards, ascending by date.
func (l *Loader) Query() storage.Query {
	q := storage.Query{
		Projection: ForecastProjection,
		SortOrder:  contract.ColumnDate + " ASC",
	}
	if !l.All {
		q.Selection, q.SelectionArgs = contract.SelectTodayOnwards(l.Now())
	}
	return q
}

// Start loads the current rows and subscribes for changes.
func (l *Loader) Start(ctx context.Context) error {
	if err := l.Reload(ctx); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sub == nil {
		l.sub = l.source.Subscribe(contract.AllWeather(), func(changed contract.Resource) {
			l.logger.Debug("change observed, reloading", "resource", changed.String())
			if err := l.Reload(ctx); err != nil {
				l.logger.Error("reload failed", "err", err)
			}
		})
	}
	return nil
}

// Reload runs the query and swaps the result into the adapter.
func (l *Loader) Reload(ctx context.Context) error {
	rs, err := l.source.Query(ctx, contract.AllWeather(), l.Query())
	if err != nil {
		return err
	}
	l.adapter.ReplaceResultSet(rs)
	return nil
}

// Close cancels the change subscription and unbinds the adapter.
func (l *Loader) Close() {
	l.mu.Lock()
	sub := l.sub
	l.sub = nil
	l.mu.Unlock()

	sub.Cancel()
	l.adapter.ReplaceResultSet(nil)
}
