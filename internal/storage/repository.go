// ABOUTME: ContentProvider interface for weather data access.
// ABOUTME: Resource-addressed bulk insert, query, delete and change subscription.
package storage

import (
	"context"

	"github.com/harperreed/sunshine/internal/contract"
	"github.com/harperreed/sunshine/internal/models"
)

// ContentProvider defines the data access contract for weather records.
// This interface allows swapping implementations (e.g., for testing).
type ContentProvider interface {
	// Supported operations
	BulkInsert(ctx context.Context, r contract.Resource, records []*models.WeatherRecord) (int, error)
	Query(ctx context.Context, r contract.Resource, q Query) (*ResultSet, error)
	Delete(ctx context.Context, r contract.Resource, selection string, args []any) (int, error)

	// Always fail with ErrUnsupported
	Insert(ctx context.Context, r contract.Resource, record *models.WeatherRecord) (contract.Resource, error)
	Update(ctx context.Context, r contract.Resource, record *models.WeatherRecord, selection string, args []any) (int, error)
	GetType(r contract.Resource) (string, error)

	// Change notification
	Subscribe(r contract.Resource, fn func(changed contract.Resource)) *Subscription
}

var _ ContentProvider = (*Provider)(nil)
