// ABOUTME: Immutable, indexable snapshot of a weather query result.
// ABOUTME: Replaces a positioned cursor; readers never share mutable state.
package storage

import (
	"fmt"

	"github.com/harperreed/sunshine/internal/contract"
	"github.com/harperreed/sunshine/internal/models"
)

// ResultSet holds the ordered rows of one query.
// Fields outside the projection are left at their zero value.
type ResultSet struct {
	resource contract.Resource
	columns  []string
	records  []models.WeatherRecord
}

// NewResultSet builds a snapshot from already-loaded records.
func NewResultSet(r contract.Resource, columns []string, records []models.WeatherRecord) *ResultSet {
	cols := make([]string, len(columns))
	copy(cols, columns)
	recs := make([]models.WeatherRecord, len(records))
	copy(recs, records)
	return &ResultSet{resource: r, columns: cols, records: recs}
}

// Resource is the resource the query was issued against.
func (rs *ResultSet) Resource() contract.Resource {
	return rs.resource
}

// Len returns the number of rows. A nil ResultSet has none.
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.records)
}

// At returns the row at position i.
func (rs *ResultSet) At(i int) (models.WeatherRecord, error) {
	if i < 0 || i >= rs.Len() {
		return models.WeatherRecord{}, fmt.Errorf("row %d of %d: %w", i, rs.Len(), ErrOutOfRange)
	}
	return rs.records[i], nil
}

// Columns returns the projected column names in order.
func (rs *ResultSet) Columns() []string {
	cols := make([]string, len(rs.columns))
	copy(cols, rs.columns)
	return cols
}

// HasColumn reports whether name was part of the projection.
func (rs *ResultSet) HasColumn(name string) bool {
	for _, c := range rs.columns {
		if c == name {
			return true
		}
	}
	return false
}

// Records returns a copy of all rows.
func (rs *ResultSet) Records() []models.WeatherRecord {
	if rs == nil {
		return nil
	}
	recs := make([]models.WeatherRecord, len(rs.records))
	copy(recs, rs.records)
	return recs
}

// Dates returns the date column of every row, in order.
func (rs *ResultSet) Dates() []int64 {
	dates := make([]int64, 0, rs.Len())
	for i := 0; i < rs.Len(); i++ {
		dates = append(dates, rs.records[i].Date)
	}
	return dates
}
