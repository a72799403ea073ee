// ABOUTME: Query building and row scanning for the weather table.
// ABOUTME: Projections and sort orders are checked against known columns.
package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/harperreed/sunshine/internal/contract"
	"github.com/harperreed/sunshine/internal/models"
)

// Query describes a read against a weather resource.
// Selection is a boolean SQL expression using ? placeholders bound to SelectionArgs.
// SortOrder is a comma separated list of "column [ASC|DESC]" terms.
type Query struct {
	Projection    []string
	Selection     string
	SelectionArgs []any
	SortOrder     string
}

// projectionColumns validates a projection, defaulting to every column.
func projectionColumns(projection []string) ([]string, error) {
	if len(projection) == 0 {
		return contract.AllColumns, nil
	}
	for _, c := range projection {
		if !contract.IsValidColumn(c) {
			return nil, fmt.Errorf("unknown column in projection: %q", c)
		}
	}
	return projection, nil
}

// orderByClause validates and normalizes a sort order.
func orderByClause(sortOrder string) (string, error) {
	sortOrder = strings.TrimSpace(sortOrder)
	if sortOrder == "" {
		return "", nil
	}

	var terms []string
	for _, term := range strings.Split(sortOrder, ",") {
		fields := strings.Fields(term)
		if len(fields) == 0 || len(fields) > 2 {
			return "", fmt.Errorf("invalid sort term: %q", term)
		}
		if !contract.IsValidColumn(fields[0]) {
			return "", fmt.Errorf("unknown column in sort order: %q", fields[0])
		}
		dir := "ASC"
		if len(fields) == 2 {
			dir = strings.ToUpper(fields[1])
			if dir != "ASC" && dir != "DESC" {
				return "", fmt.Errorf("invalid sort direction: %q", fields[1])
			}
		}
		terms = append(terms, fields[0]+" "+dir)
	}
	return " ORDER BY " + strings.Join(terms, ", "), nil
}

// buildSelect assembles the SELECT statement for a validated query.
func buildSelect(columns []string, selection, sortOrder string) (string, error) {
	orderBy, err := orderByClause(sortOrder)
	if err != nil {
		return "", err
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), contract.TableWeather)
	if strings.TrimSpace(selection) != "" {
		query += " WHERE " + selection
	}
	return query + orderBy, nil
}

// scanTarget returns the record field a column scans into.
func scanTarget(r *models.WeatherRecord, column string) any {
	switch column {
	case contract.ColumnDate:
		return &r.Date
	case contract.ColumnConditionID:
		return &r.WeatherConditionID
	case contract.ColumnMaxTemp:
		return &r.MaxTemp
	case contract.ColumnMinTemp:
		return &r.MinTemp
	case contract.ColumnHumidity:
		return &r.Humidity
	case contract.ColumnPressure:
		return &r.Pressure
	case contract.ColumnWindSpeed:
		return &r.WindSpeed
	case contract.ColumnDegrees:
		return &r.Degrees
	default:
		return new(any)
	}
}

// scanRecords scans rows into records using the projected column order.
func scanRecords(rows *sql.Rows, columns []string) ([]models.WeatherRecord, error) {
	var records []models.WeatherRecord

	for rows.Next() {
		var r models.WeatherRecord
		targets := make([]any, len(columns))
		for i, c := range columns {
			targets[i] = scanTarget(&r, c)
		}
		if err := rows.Scan(targets...); err != nil {
			return nil, fmt.Errorf("scan weather: %w", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}
