// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers.
package mcp

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/sunshine/internal/contract"
	"github.com/harperreed/sunshine/internal/models"
	"github.com/harperreed/sunshine/internal/prefs"
	"github.com/harperreed/sunshine/internal/storage"
	forecastsync "github.com/harperreed/sunshine/internal/sync"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/text/language"
)

var fixedNow = time.Date(2024, 6, 24, 10, 0, 0, 0, time.UTC)

type testEnv struct {
	server   *Server
	provider *storage.Provider
	prefs    *prefs.KVStore
}

// setupTestServer creates a server over a temp database and prefs store.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()
	tmpDir := t.TempDir()

	db, err := storage.Open(filepath.Join(tmpDir, "weather.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	provider := storage.NewProvider(db, log.New(io.Discard))
	t.Cleanup(func() { provider.Close() })

	kv, err := prefs.OpenBadger(filepath.Join(tmpDir, "prefs"))
	if err != nil {
		t.Fatalf("Failed to open prefs: %v", err)
	}
	store := prefs.NewKVStore(kv)
	t.Cleanup(func() { store.Close() })

	src := forecastsync.NewFakeSource(7)
	src.Now = func() time.Time { return fixedNow }

	server, err := NewServer(provider, store, Options{
		UseTodayLayout: true,
		Language:       language.English,
		SyncDays:       7,
		Source:         src,
		Logger:         log.New(io.Discard),
		Now:            func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	t.Cleanup(server.Close)

	return &testEnv{server: server, provider: provider, prefs: store}
}

func seedWeek(t *testing.T, env *testEnv, conditionID int) []*models.WeatherRecord {
	t.Helper()
	var records []*models.WeatherRecord
	for i := 0; i < 7; i++ {
		records = append(records, models.NewWeatherRecord(fixedNow.AddDate(0, 0, i), conditionID).
			WithTemps(20+float64(i), 10).
			WithAtmosphere(60, 1012).
			WithWind(12, 270))
	}
	if _, err := env.provider.BulkInsert(context.Background(), contract.AllWeather(), records); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	return records
}

func TestNewServer(t *testing.T) {
	env := setupTestServer(t)

	if env.server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if env.server.provider == nil {
		t.Error("Expected non-nil provider")
	}
	if env.server.syncer.Days != 7 {
		t.Errorf("syncer days = %d, want 7", env.server.syncer.Days)
	}
}

func TestHandleListForecast(t *testing.T) {
	env := setupTestServer(t)
	seedWeek(t, env, 200)
	ctx := context.Background()

	_, out, err := env.server.handleListForecast(ctx, &mcp.CallToolRequest{}, listForecastInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if out.Count != 7 {
		t.Fatalf("Count = %d, want 7", out.Count)
	}
	if out.Location != prefs.DefaultLocation {
		t.Errorf("Location = %q", out.Location)
	}
	if !out.Metric {
		t.Error("Expected metric units by default")
	}

	first := out.Rows[0]
	if first.ViewType != "today" || first.Icon != "art_storm" {
		t.Errorf("first row = %+v", first)
	}
	if first.Label != "Today, Jun 24" {
		t.Errorf("first label = %q", first.Label)
	}
	if first.High != "20°" || first.HighDescription != "High: 20°" {
		t.Errorf("first high = %q / %q", first.High, first.HighDescription)
	}

	second := out.Rows[1]
	if second.ViewType != "future_day" || second.Icon != "ic_storm" || second.Label != "Tomorrow" {
		t.Errorf("second row = %+v", second)
	}
}

func TestHandleListForecastImperialAndLimit(t *testing.T) {
	env := setupTestServer(t)
	seedWeek(t, env, 800)
	if err := env.prefs.SetUnits(prefs.UnitsImperial); err != nil {
		t.Fatal(err)
	}

	_, out, err := env.server.handleListForecast(context.Background(), &mcp.CallToolRequest{}, listForecastInput{Limit: 2})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Count != 2 {
		t.Errorf("Count = %d, want 2", out.Count)
	}
	if out.Rows[0].High != "68°" {
		t.Errorf("imperial high = %q, want 68°", out.Rows[0].High)
	}
}

func TestHandleListForecastEmpty(t *testing.T) {
	env := setupTestServer(t)

	_, out, err := env.server.handleListForecast(context.Background(), &mcp.CallToolRequest{}, listForecastInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Count != 0 || out.Message == "" {
		t.Errorf("expected empty result with message, got %+v", out)
	}
}

func TestHandleGetWeather(t *testing.T) {
	env := setupTestServer(t)
	seedWeek(t, env, 500)
	ctx := context.Background()

	tests := []struct {
		name      string
		date      string
		wantErr   bool
		errSubstr string
		wantLabel string
	}{
		{"today", "today", false, "", "Today, Jun 24"},
		{"iso date", "2024-06-26", false, "", "Wednesday, Jun 26"},
		{"missing day", "2024-08-01", true, "no forecast", ""},
		{"bad date", "someday", true, "invalid date", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := env.server.handleGetWeather(ctx, &mcp.CallToolRequest{}, getWeatherInput{Date: tt.date})
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errSubstr) {
					t.Errorf("error %q should contain %q", err.Error(), tt.errSubstr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if out.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", out.Label, tt.wantLabel)
			}
			if out.Icon != "art_rain" || out.Description != "Light rain" {
				t.Errorf("icon/description = %q / %q", out.Icon, out.Description)
			}
			if out.Wind != "12 km/h W" {
				t.Errorf("Wind = %q", out.Wind)
			}
		})
	}
}

func TestHandleSyncForecast(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	_, out, err := env.server.handleSyncForecast(ctx, &mcp.CallToolRequest{}, syncForecastInput{Days: 3})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Inserted != 3 || out.BatchID == "" {
		t.Errorf("unexpected sync output: %+v", out)
	}
	if env.server.syncer.Days != 7 {
		t.Error("per-call days must not change the configured default")
	}

	count, _ := env.provider.Count(ctx)
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestHandleDeleteWeather(t *testing.T) {
	env := setupTestServer(t)
	seedWeek(t, env, 800)
	ctx := context.Background()

	_, _, err := env.server.handleDeleteWeather(ctx, &mcp.CallToolRequest{}, deleteWeatherInput{})
	if err == nil {
		t.Error("Expected error when neither before nor all is set")
	}

	_, out, err := env.server.handleDeleteWeather(ctx, &mcp.CallToolRequest{}, deleteWeatherInput{Before: "2024-06-26"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Deleted != 2 {
		t.Errorf("Deleted = %d, want 2", out.Deleted)
	}

	_, out, err = env.server.handleDeleteWeather(ctx, &mcp.CallToolRequest{}, deleteWeatherInput{All: true})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Deleted != 5 {
		t.Errorf("Deleted = %d, want 5", out.Deleted)
	}
}

func readResource(t *testing.T, env *testEnv, uri string) (*mcp.ReadResourceResult, error) {
	t.Helper()
	return env.server.handleWeatherResource(context.Background(), &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	})
}

func TestHandleWeatherResourceAll(t *testing.T) {
	env := setupTestServer(t)
	seedWeek(t, env, 800)

	uri := contract.AllWeather().String()
	result, err := readResource(t, env, uri)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Contents) == 0 {
		t.Fatal("Expected non-empty contents")
	}
	if result.Contents[0].URI != uri {
		t.Errorf("URI = %s, want %s", result.Contents[0].URI, uri)
	}
	if result.Contents[0].MIMEType != "application/json" {
		t.Errorf("MIMEType = %s, want application/json", result.Contents[0].MIMEType)
	}

	var payload struct {
		Count   int                    `json:"count"`
		Records []models.WeatherRecord `json:"records"`
	}
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.Count != 7 || len(payload.Records) != 7 {
		t.Errorf("count = %d, records = %d", payload.Count, len(payload.Records))
	}
}

func TestHandleWeatherResourceByDate(t *testing.T) {
	env := setupTestServer(t)
	records := seedWeek(t, env, 711)

	uri := contract.AllWeather().String() + "/" + strconv.FormatInt(records[2].Date, 10)
	result, err := readResource(t, env, uri)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var rec models.WeatherRecord
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &rec); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if rec.Date != records[2].Date || rec.WeatherConditionID != 711 {
		t.Errorf("unexpected record: %+v", rec)
	}
}

func TestHandleWeatherResourceNotFound(t *testing.T) {
	env := setupTestServer(t)

	tests := []string{
		"content://elsewhere/weather",
		contract.AllWeather().String() + "/abc",
		contract.WeatherByDate(models.NormalizeDate(fixedNow)).String(),
	}
	for _, uri := range tests {
		if _, err := readResource(t, env, uri); err == nil {
			t.Errorf("Expected error for %s", uri)
		}
	}
}

func TestListForecastFollowsCacheChanges(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	_, before, err := env.server.handleListForecast(ctx, &mcp.CallToolRequest{}, listForecastInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if before.Count != 0 {
		t.Fatalf("Count = %d, want 0", before.Count)
	}

	seedWeek(t, env, 800)

	_, after, err := env.server.handleListForecast(ctx, &mcp.CallToolRequest{}, listForecastInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if after.Count != 7 {
		t.Errorf("Count = %d, want 7", after.Count)
	}
	if after.Generation <= before.Generation {
		t.Errorf("generation %d should advance past %d", after.Generation, before.Generation)
	}
}

func TestGetWeatherByRow(t *testing.T) {
	env := setupTestServer(t)
	records := seedWeek(t, env, 500)
	ctx := context.Background()

	row := 2
	_, out, err := env.server.handleGetWeather(ctx, &mcp.CallToolRequest{}, getWeatherInput{Row: &row})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Date != records[2].Date {
		t.Errorf("Date = %d, want %d", out.Date, records[2].Date)
	}
	if out.Label != "Wednesday, Jun 26" {
		t.Errorf("Label = %q", out.Label)
	}

	missing := 7
	if _, _, err := env.server.handleGetWeather(ctx, &mcp.CallToolRequest{}, getWeatherInput{Row: &missing}); err == nil {
		t.Error("Expected error for a row past the end of the list")
	}
	if _, _, err := env.server.handleGetWeather(ctx, &mcp.CallToolRequest{}, getWeatherInput{}); err == nil {
		t.Error("Expected error when neither date nor row is set")
	}
}

func TestResourceSubscriptions(t *testing.T) {
	env := setupTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	updated := make(chan string, 16)
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, &mcp.ClientOptions{
		ResourceUpdatedHandler: func(_ context.Context, req *mcp.ResourceUpdatedNotificationRequest) {
			updated <- req.Params.URI
		},
	})

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := env.server.mcpServer.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect failed: %v", err)
	}
	defer ss.Close()
	cs, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect failed: %v", err)
	}
	defer cs.Close()

	if err := cs.Subscribe(ctx, &mcp.SubscribeParams{URI: "content://elsewhere/weather"}); err == nil {
		t.Error("Expected error subscribing to an unknown URI")
	}

	day := contract.WeatherByDate(models.NormalizeDate(fixedNow.AddDate(0, 0, 2))).String()
	all := contract.AllWeather().String()
	for _, uri := range []string{day, all} {
		if err := cs.Subscribe(ctx, &mcp.SubscribeParams{URI: uri}); err != nil {
			t.Fatalf("Subscribe(%s) failed: %v", uri, err)
		}
	}

	seedWeek(t, env, 800)

	got := map[string]bool{}
	for len(got) < 2 {
		select {
		case uri := <-updated:
			got[uri] = true
		case <-ctx.Done():
			t.Fatalf("timed out waiting for updates, got %v", got)
		}
	}
	if !got[day] || !got[all] {
		t.Errorf("updates = %v, want %s and %s", got, day, all)
	}

	if err := cs.Unsubscribe(ctx, &mcp.UnsubscribeParams{URI: day}); err != nil {
		t.Fatalf("Unsubscribe failed: %v", err)
	}
	other := contract.WeatherByDate(models.NormalizeDate(fixedNow.AddDate(0, 0, 5)))
	if uris := env.server.watchedCovering(other); len(uris) != 1 || uris[0] != all {
		t.Errorf("watchers of %s = %v, want only %s", other, uris, all)
	}
}
