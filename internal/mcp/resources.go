// ABOUTME: MCP resource implementations for the forecast cache.
// ABOUTME: Serves the content:// weather URIs through the URI router and facade.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/sunshine/internal/contract"
	"github.com/harperreed/sunshine/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// WeatherByDateTemplate is the URI template for a single day.
var WeatherByDateTemplate = contract.AllWeather().String() + "/{date}"

func (s *Server) registerResources() {
	// All cached days
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         contract.AllWeather().String(),
		Name:        "Weather Forecast",
		Description: "Every cached forecast day in date order",
		MIMEType:    "application/json",
	}, s.handleWeatherResource)

	// One day by normalized epoch millis
	s.mcpServer.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: WeatherByDateTemplate,
		Name:        "Weather For Day",
		Description: "Forecast for one day, addressed by its UTC-midnight epoch millis",
		MIMEType:    "application/json",
	}, s.handleWeatherResource)
}

// Resource handlers

func (s *Server) handleWeatherResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := contract.AllWeather().String()
	if req != nil && req.Params != nil && req.Params.URI != "" {
		uri = req.Params.URI
	}

	r := contract.Parse(uri)
	if !r.IsMatch() {
		return nil, mcp.ResourceNotFoundError(uri)
	}

	rs, err := s.provider.Query(ctx, r, storage.Query{SortOrder: contract.ColumnDate + " ASC"})
	if err != nil {
		return nil, fmt.Errorf("failed to query weather: %w", err)
	}

	var payload any
	switch r.Kind() {
	case contract.KindWeatherByDate:
		if rs.Len() == 0 {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		rec, _ := rs.At(0)
		payload = rec
	default:
		payload = map[string]any{
			"count":   rs.Len(),
			"records": rs.Records(),
		}
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      r.String(),
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
