// ABOUTME: Export and import functionality for cached forecasts.
// ABOUTME: Supports JSON and YAML export; import goes through BulkInsert.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/sunshine/internal/contract"
	"github.com/harperreed/sunshine/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for weather data.
type ExportData struct {
	Version    string                  `json:"version" yaml:"version"`
	ExportedAt time.Time               `json:"exported_at" yaml:"exported_at"`
	Tool       string                  `json:"tool" yaml:"tool"`
	Records    []*models.WeatherRecord `json:"records" yaml:"records"`
}

// GetAllData retrieves every stored row in date order.
func (p *Provider) GetAllData(ctx context.Context) (*ExportData, error) {
	rs, err := p.Query(ctx, contract.AllWeather(), Query{SortOrder: contract.ColumnDate + " ASC"})
	if err != nil {
		return nil, fmt.Errorf("list weather: %w", err)
	}

	records := make([]*models.WeatherRecord, 0, rs.Len())
	for _, r := range rs.Records() {
		r := r
		records = append(records, &r)
	}

	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "sunshine",
		Records:    records,
	}, nil
}

// ImportData bulk inserts the records of an export.
func (p *Provider) ImportData(ctx context.Context, data *ExportData) (int, error) {
	n, err := p.BulkInsert(ctx, contract.AllWeather(), data.Records)
	if err != nil {
		return 0, fmt.Errorf("import weather: %w", err)
	}
	return n, nil
}

// ExportJSON exports all data as JSON.
func (p *Provider) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := p.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports a JSON export produced by ExportJSON.
func (p *Provider) ImportJSON(ctx context.Context, raw []byte) (int, error) {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return 0, fmt.Errorf("parse export: %w", err)
	}
	return p.ImportData(ctx, &data)
}

type yamlRecord struct {
	Day         string  `yaml:"day"`
	Date        int64   `yaml:"date"`
	ConditionID int     `yaml:"condition_id"`
	High        float64 `yaml:"high_c"`
	Low         float64 `yaml:"low_c"`
	Humidity    float64 `yaml:"humidity"`
	Pressure    float64 `yaml:"pressure"`
	Wind        float64 `yaml:"wind_speed"`
	Degrees     float64 `yaml:"wind_degrees"`
}

// ExportYAML exports all data as YAML with a readable day per row.
func (p *Provider) ExportYAML(ctx context.Context) ([]byte, error) {
	data, err := p.GetAllData(ctx)
	if err != nil {
		return nil, err
	}

	out := struct {
		Version    string       `yaml:"version"`
		ExportedAt string       `yaml:"exported_at"`
		Tool       string       `yaml:"tool"`
		Forecast   []yamlRecord `yaml:"forecast"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Forecast:   make([]yamlRecord, 0, len(data.Records)),
	}

	for _, r := range data.Records {
		out.Forecast = append(out.Forecast, yamlRecord{
			Day:         r.Time().Format("2006-01-02"),
			Date:        r.Date,
			ConditionID: r.WeatherConditionID,
			High:        r.MaxTemp,
			Low:         r.MinTemp,
			Humidity:    r.Humidity,
			Pressure:    r.Pressure,
			Wind:        r.WindSpeed,
			Degrees:     r.Degrees,
		})
	}

	return yaml.Marshal(out)
}
