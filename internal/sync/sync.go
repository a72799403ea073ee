// ABOUTME: Syncer refreshes the weather cache from a forecast source.
// ABOUTME: Fetches for the preferred location, purges old rows, then bulk inserts.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/harperreed/sunshine/internal/contract"
	"github.com/harperreed/sunshine/internal/models"
)

// DefaultDays is how many forecast days a sync fetches.
const DefaultDays = 14

// Writer is the part of the data access facade a sync mutates.
type Writer interface {
	BulkInsert(ctx context.Context, r contract.Resource, records []*models.WeatherRecord) (int, error)
	Delete(ctx context.Context, r contract.Resource, selection string, args []any) (int, error)
}

// LocationProvider supplies the location to fetch for.
type LocationProvider interface {
	PreferredLocation() (string, error)
}

// Result summarizes one sync run.
type Result struct {
	BatchID  uuid.UUID `json:"batch_id"`
	Location string    `json:"location"`
	Fetched  int       `json:"fetched"`
	Deleted  int       `json:"deleted"`
	Inserted int       `json:"inserted"`
	Duration string    `json:"duration"`
}

// Syncer replaces cached forecasts with fresh ones.
type Syncer struct {
	writer   Writer
	location LocationProvider
	source   Source
	logger   *log.Logger

	// Days is the number of days requested per sync.
	Days int
}

// NewSyncer creates a Syncer.
func NewSyncer(writer Writer, location LocationProvider, source Source, logger *log.Logger) *Syncer {
	if logger == nil {
		logger = log.Default()
	}
	return &Syncer{
		writer:   writer,
		location: location,
		source:   source,
		logger:   logger.WithPrefix("sync"),
		Days:     DefaultDays,
	}
}

// Sync fetches fresh forecasts and swaps them into the cache.
// Nothing is deleted if the fetch fails.
func (s *Syncer) Sync(ctx context.Context) (*Result, error) {
	start := time.Now()
	res := &Result{BatchID: uuid.New()}
	logger := s.logger.With("batch", res.BatchID.String())

	loc, err := s.location.PreferredLocation()
	if err != nil {
		return nil, fmt.Errorf("read preferred location: %w", err)
	}
	res.Location = loc

	days := s.Days
	if days <= 0 {
		days = DefaultDays
	}

	records, err := s.source.Fetch(ctx, loc, days)
	if err != nil {
		return nil, fmt.Errorf("fetch forecast for %s: %w", loc, err)
	}
	res.Fetched = len(records)
	if len(records) == 0 {
		logger.Warn("source returned no forecast days", "location", loc)
		res.Duration = time.Since(start).String()
		return res, nil
	}

	res.Deleted, err = s.writer.Delete(ctx, contract.AllWeather(), "", nil)
	if err != nil {
		return nil, fmt.Errorf("purge cached forecast: %w", err)
	}

	res.Inserted, err = s.writer.BulkInsert(ctx, contract.AllWeather(), records)
	if err != nil {
		return nil, fmt.Errorf("store forecast: %w", err)
	}

	res.Duration = time.Since(start).String()
	logger.Info("forecast synced",
		"location", loc,
		"fetched", res.Fetched,
		"deleted", res.Deleted,
		"inserted", res.Inserted,
		"duration", res.Duration,
	)
	return res, nil
}
