// ABOUTME: MCP tool implementations for the forecast cache.
// ABOUTME: Lists rendered forecast rows, reads one day, syncs, and purges.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/sunshine/internal/adapter"
	"github.com/harperreed/sunshine/internal/contract"
	"github.com/harperreed/sunshine/internal/models"
	"github.com/harperreed/sunshine/internal/storage"
	"github.com/harperreed/sunshine/internal/weatherutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// list_forecast
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_forecast",
		Description: "List cached forecast days from today onwards as display rows",
	}, s.handleListForecast)

	// get_weather
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_weather",
		Description: "Get the full forecast for one day",
	}, s.handleGetWeather)

	// sync_forecast
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "sync_forecast",
		Description: "Refresh the forecast cache for the preferred location",
	}, s.handleSyncForecast)

	// delete_weather
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_weather",
		Description: "Delete cached forecast days before a date, or all of them",
	}, s.handleDeleteWeather)
}

// Tool input/output types

type listForecastInput struct {
	All   bool `json:"all,omitempty" jsonschema:"include days before today"`
	Limit int  `json:"limit,omitempty" jsonschema:"max rows to return (default all)"`
}

type forecastRow struct {
	Date            int64  `json:"date"`
	Day             string `json:"day"`
	Label           string `json:"label"`
	ViewType        string `json:"view_type"`
	Icon            string `json:"icon"`
	Description     string `json:"description"`
	High            string `json:"high"`
	Low             string `json:"low"`
	HighDescription string `json:"high_description"`
	LowDescription  string `json:"low_description"`
}

type listForecastOutput struct {
	Location   string        `json:"location"`
	Metric     bool          `json:"metric"`
	Generation int           `json:"generation,omitempty"`
	Count      int           `json:"count"`
	Rows       []forecastRow `json:"rows"`
	Message    string        `json:"message,omitempty"`
}

type getWeatherInput struct {
	Date string `json:"date,omitempty" jsonschema:"day to read: YYYY-MM-DD, today, tomorrow, or epoch millis"`
	Row  *int   `json:"row,omitempty" jsonschema:"row position from list_forecast, used instead of date"`
}

type weatherDetail struct {
	Date        int64   `json:"date"`
	Day         string  `json:"day"`
	Label       string  `json:"label"`
	ConditionID int     `json:"condition_id"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	High        string  `json:"high"`
	Low         string  `json:"low"`
	Humidity    string  `json:"humidity"`
	Pressure    string  `json:"pressure"`
	Wind        string  `json:"wind"`
	MaxTempC    float64 `json:"max_temp_c"`
	MinTempC    float64 `json:"min_temp_c"`
}

type syncForecastInput struct {
	Days int `json:"days,omitempty" jsonschema:"number of days to fetch (default from config)"`
}

type syncForecastOutput struct {
	BatchID  string `json:"batch_id"`
	Location string `json:"location"`
	Fetched  int    `json:"fetched"`
	Deleted  int    `json:"deleted"`
	Inserted int    `json:"inserted"`
	Message  string `json:"message"`
}

type deleteWeatherInput struct {
	Before string `json:"before,omitempty" jsonschema:"delete days strictly before this date (YYYY-MM-DD, today, or epoch millis)"`
	All    bool   `json:"all,omitempty" jsonschema:"delete every cached day"`
}

type deleteWeatherOutput struct {
	Deleted int    `json:"deleted"`
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleListForecast(ctx context.Context, req *mcp.CallToolRequest, input listForecastInput) (*mcp.CallToolResult, listForecastOutput, error) {
	f, err := s.formatter()
	if err != nil {
		return nil, listForecastOutput{}, fmt.Errorf("failed to read units: %w", err)
	}
	location, err := s.prefs.PreferredLocation()
	if err != nil {
		return nil, listForecastOutput{}, fmt.Errorf("failed to read location: %w", err)
	}

	a := adapter.New(f, nil, adapter.Options{UseTodayLayout: s.opts.UseTodayLayout})
	var generation int
	if input.All {
		loader := adapter.NewLoader(s.provider, a, s.logger)
		loader.Now = s.opts.Now
		loader.All = true
		if err := loader.Reload(ctx); err != nil {
			return nil, listForecastOutput{}, fmt.Errorf("failed to query forecast: %w", err)
		}
	} else {
		rows, gen, err := s.view.rows(ctx)
		if err != nil {
			return nil, listForecastOutput{}, fmt.Errorf("failed to query forecast: %w", err)
		}
		a.ReplaceResultSet(rows)
		generation = gen
	}

	slots, err := a.Render()
	if err != nil {
		return nil, listForecastOutput{}, fmt.Errorf("failed to render forecast: %w", err)
	}
	if input.Limit > 0 && len(slots) > input.Limit {
		slots = slots[:input.Limit]
	}

	out := listForecastOutput{
		Location:   location,
		Metric:     f.IsMetric(),
		Generation: generation,
		Rows:     make([]forecastRow, 0, len(slots)),
	}
	for _, slot := range slots {
		rec, err := slot.Record()
		if err != nil {
			return nil, listForecastOutput{}, err
		}
		out.Rows = append(out.Rows, forecastRow{
			Date:            rec.Date,
			Day:             rec.Time().Format("2006-01-02"),
			Label:           slot.Date.Text,
			ViewType:        slot.ViewType.String(),
			Icon:            string(slot.Icon),
			Description:     slot.Description.Text,
			High:            slot.High.Text,
			Low:             slot.Low.Text,
			HighDescription: slot.High.ContentDescription,
			LowDescription:  slot.Low.ContentDescription,
		})
	}
	out.Count = len(out.Rows)
	if out.Count == 0 {
		out.Message = "No forecast cached. Run sync_forecast first."
	}

	return nil, out, nil
}

func (s *Server) handleGetWeather(ctx context.Context, req *mcp.CallToolRequest, input getWeatherInput) (*mcp.CallToolResult, weatherDetail, error) {
	var (
		date int64
		err  error
	)
	switch {
	case input.Row != nil:
		date, err = s.clickRow(ctx, *input.Row)
	case input.Date != "":
		date, err = models.ParseDate(input.Date, s.opts.Now())
	default:
		err = fmt.Errorf("specify date or row")
	}
	if err != nil {
		return nil, weatherDetail{}, err
	}

	rs, err := s.provider.Query(ctx, contract.WeatherByDate(date), storage.Query{})
	if err != nil {
		return nil, weatherDetail{}, fmt.Errorf("failed to query weather: %w", err)
	}
	if rs.Len() == 0 {
		return nil, weatherDetail{}, fmt.Errorf("no forecast for %s", models.DateFromMillis(date).Format("2006-01-02"))
	}

	rec, err := rs.At(0)
	if err != nil {
		return nil, weatherDetail{}, err
	}

	f, err := s.formatter()
	if err != nil {
		return nil, weatherDetail{}, fmt.Errorf("failed to read units: %w", err)
	}

	return nil, detailFor(f, rec), nil
}

// clickRow resolves a list position to its date the way a tapped row does.
func (s *Server) clickRow(ctx context.Context, position int) (int64, error) {
	rows, _, err := s.view.rows(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to query forecast: %w", err)
	}

	f, err := s.formatter()
	if err != nil {
		return 0, fmt.Errorf("failed to read units: %w", err)
	}

	var clicked int64
	a := adapter.New(f, adapter.ClickHandlerFunc(func(date int64) { clicked = date }),
		adapter.Options{UseTodayLayout: s.opts.UseTodayLayout})
	a.ReplaceResultSet(rows)

	slot, err := a.CreateSlot(a.ViewTypeFor(position))
	if err != nil {
		return 0, err
	}
	if err := a.BindSlot(slot, position); err != nil {
		return 0, err
	}
	if err := slot.Click(); err != nil {
		return 0, err
	}
	return clicked, nil
}

func detailFor(f *weatherutil.Formatter, rec models.WeatherRecord) weatherDetail {
	return weatherDetail{
		Date:        rec.Date,
		Day:         rec.Time().Format("2006-01-02"),
		Label:       f.FriendlyDateString(rec.Date, true),
		ConditionID: rec.WeatherConditionID,
		Description: weatherutil.DescriptionForCondition(rec.WeatherConditionID),
		Icon:        string(weatherutil.IconForCondition(rec.WeatherConditionID, true)),
		High:        f.FormatTemperature(rec.MaxTemp),
		Low:         f.FormatTemperature(rec.MinTemp),
		Humidity:    f.FormatHumidity(rec.Humidity),
		Pressure:    f.FormatPressure(rec.Pressure),
		Wind:        f.FormatWind(rec.WindSpeed, rec.Degrees),
		MaxTempC:    rec.MaxTemp,
		MinTempC:    rec.MinTemp,
	}
}

func (s *Server) handleSyncForecast(ctx context.Context, req *mcp.CallToolRequest, input syncForecastInput) (*mcp.CallToolResult, syncForecastOutput, error) {
	syncer := *s.syncer
	if input.Days > 0 {
		syncer.Days = input.Days
	}

	res, err := syncer.Sync(ctx)
	if err != nil {
		return nil, syncForecastOutput{}, fmt.Errorf("failed to sync forecast: %w", err)
	}

	return nil, syncForecastOutput{
		BatchID:  res.BatchID.String(),
		Location: res.Location,
		Fetched:  res.Fetched,
		Deleted:  res.Deleted,
		Inserted: res.Inserted,
		Message:  fmt.Sprintf("Synced %d day(s) for %s", res.Inserted, res.Location),
	}, nil
}

func (s *Server) handleDeleteWeather(ctx context.Context, req *mcp.CallToolRequest, input deleteWeatherInput) (*mcp.CallToolResult, deleteWeatherOutput, error) {
	var (
		selection string
		args      []any
		scope     string
	)

	switch {
	case input.Before != "":
		date, err := models.ParseDate(input.Before, s.opts.Now())
		if err != nil {
			return nil, deleteWeatherOutput{}, err
		}
		selection = contract.ColumnDate + " < ?"
		args = []any{date}
		scope = "before " + models.DateFromMillis(date).Format("2006-01-02")
	case input.All:
		scope = "all days"
	default:
		return nil, deleteWeatherOutput{}, fmt.Errorf("specify before or all")
	}

	n, err := s.provider.Delete(ctx, contract.AllWeather(), selection, args)
	if err != nil {
		return nil, deleteWeatherOutput{}, fmt.Errorf("failed to delete weather: %w", err)
	}

	return nil, deleteWeatherOutput{
		Deleted: n,
		Message: fmt.Sprintf("Deleted %d cached day(s), %s", n, scope),
	}, nil
}
