// ABOUTME: Data access facade over the weather record store.
// ABOUTME: Routes resources to query shapes, guards date normalization, publishes changes.
package storage

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/harperreed/sunshine/internal/contract"
	"github.com/harperreed/sunshine/internal/models"
)

const insertWeatherSQL = `
	INSERT INTO weather (date, conditionId, maxTemp, minTemp, humidity, pressure, windSpeed, degrees)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

// Provider is the only write path into the weather store.
// All writes go through BulkInsert so normalization is checked in one place
// and each batch produces a single change signal.
type Provider struct {
	store    *DB
	notifier *Notifier
	logger   *log.Logger
}

// NewProvider wraps a store. A nil logger uses the charm default logger.
func NewProvider(store *DB, logger *log.Logger) *Provider {
	if logger == nil {
		logger = log.Default()
	}
	return &Provider{
		store:    store,
		notifier: NewNotifier(),
		logger:   logger.WithPrefix("provider"),
	}
}

// Store returns the underlying record store.
func (p *Provider) Store() *DB {
	return p.store
}

// BulkInsert writes records in one transaction and returns how many were stored.
// An unnormalized date aborts the batch and rolls back everything written so far.
// Any other per-row failure is logged and skipped; the rest of the batch commits.
func (p *Provider) BulkInsert(ctx context.Context, r contract.Resource, records []*models.WeatherRecord) (int, error) {
	if r.Kind() != contract.KindAllWeather {
		return 0, fmt.Errorf("bulk insert %q: %w", r.String(), ErrUnsupported)
	}

	tx, err := p.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin bulk insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertWeatherSQL)
	if err != nil {
		return 0, fmt.Errorf("prepare bulk insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for i, rec := range records {
		if rec == nil {
			return 0, fmt.Errorf("record %d is nil: %w", i, ErrValidation)
		}
		if !models.IsDateNormalized(rec.Date) {
			return 0, fmt.Errorf("record %d date %d is not normalized: %w", i, rec.Date, ErrValidation)
		}

		_, err := stmt.ExecContext(ctx,
			rec.Date,
			rec.WeatherConditionID,
			rec.MaxTemp,
			rec.MinTemp,
			rec.Humidity,
			rec.Pressure,
			rec.WindSpeed,
			rec.Degrees,
		)
		if err != nil {
			p.logger.Warn("insert failed, row skipped", "index", i, "date", rec.Date, "err", err)
			continue
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit bulk insert: %w", err)
	}

	p.logger.Debug("bulk insert", "resource", r.String(), "requested", len(records), "inserted", inserted)
	if inserted > 0 {
		p.notifier.Notify(r)
	}
	return inserted, nil
}

// Query reads rows for a resource.
// WeatherByDate ignores the caller's selection and matches on its own date.
func (p *Provider) Query(ctx context.Context, r contract.Resource, q Query) (*ResultSet, error) {
	selection, args := q.Selection, q.SelectionArgs

	switch r.Kind() {
	case contract.KindAllWeather:
	case contract.KindWeatherByDate:
		date, _ := r.Date()
		selection = contract.ColumnDate + " = ?"
		args = []any{date}
	default:
		return nil, fmt.Errorf("query %q: %w", r.String(), ErrUnsupported)
	}

	columns, err := projectionColumns(q.Projection)
	if err != nil {
		return nil, fmt.Errorf("query weather: %w", err)
	}

	query, err := buildSelect(columns, selection, q.SortOrder)
	if err != nil {
		return nil, fmt.Errorf("query weather: %w", err)
	}

	rows, err := p.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query weather: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows, columns)
	if err != nil {
		return nil, err
	}

	return NewResultSet(r, columns, records), nil
}

// Delete removes rows matching selection. An empty selection removes every row.
func (p *Provider) Delete(ctx context.Context, r contract.Resource, selection string, args []any) (int, error) {
	if r.Kind() != contract.KindAllWeather {
		return 0, fmt.Errorf("delete %q: %w", r.String(), ErrUnsupported)
	}
	if selection == "" {
		selection = "1"
	}

	result, err := p.store.db.ExecContext(ctx, "DELETE FROM weather WHERE "+selection, args...)
	if err != nil {
		return 0, fmt.Errorf("delete weather: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete weather: %w", err)
	}

	p.logger.Debug("delete", "resource", r.String(), "deleted", affected)
	if affected > 0 {
		p.notifier.Notify(r)
	}
	return int(affected), nil
}

// Insert is not supported; use BulkInsert.
func (p *Provider) Insert(ctx context.Context, r contract.Resource, record *models.WeatherRecord) (contract.Resource, error) {
	return contract.NoMatch(), fmt.Errorf("insert %q: use bulk insert: %w", r.String(), ErrUnsupported)
}

// Update is not supported; rows are replaced by deleting and re-inserting.
func (p *Provider) Update(ctx context.Context, r contract.Resource, record *models.WeatherRecord, selection string, args []any) (int, error) {
	return 0, fmt.Errorf("update %q: %w", r.String(), ErrUnsupported)
}

// GetType is not supported.
func (p *Provider) GetType(r contract.Resource) (string, error) {
	return "", fmt.Errorf("get type %q: %w", r.String(), ErrUnsupported)
}

// Subscribe registers fn to run after successful mutations covering r.
func (p *Provider) Subscribe(r contract.Resource, fn func(changed contract.Resource)) *Subscription {
	return p.notifier.Subscribe(r, fn)
}

// Close closes the underlying record store.
func (p *Provider) Close() error {
	return p.store.Close()
}

// Count returns the number of stored rows.
func (p *Provider) Count(ctx context.Context) (int, error) {
	var n int
	if err := p.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM weather").Scan(&n); err != nil {
		return 0, fmt.Errorf("count weather: %w", err)
	}
	return n, nil
}
