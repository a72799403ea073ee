// ABOUTME: Tests for the weather data access facade.
// ABOUTME: Covers bulk insert atomicity, both query shapes, delete, and unsupported paths.
package storage

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/harperreed/sunshine/internal/contract"
	"github.com/harperreed/sunshine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBulkInsertThenQueryAll(t *testing.T) {
	ctx := context.Background()
	p := setupTestProvider(t)
	records := makeRecords(5, 800)

	// Insert out of order; the sort clause decides result order.
	shuffled := []*models.WeatherRecord{records[3], records[0], records[4], records[1], records[2]}
	n, err := p.BulkInsert(ctx, contract.AllWeather(), shuffled)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	rs, err := p.Query(ctx, contract.AllWeather(), Query{SortOrder: "date ASC"})
	require.NoError(t, err)
	require.Equal(t, 5, rs.Len())

	for i, want := range records {
		got, err := rs.At(i)
		require.NoError(t, err)
		assert.Equal(t, *want, got)
	}

	desc, err := p.Query(ctx, contract.AllWeather(), Query{SortOrder: "date desc"})
	require.NoError(t, err)
	first, _ := desc.At(0)
	assert.Equal(t, records[4].Date, first.Date)
}

func TestBulkInsertRejectsUnnormalizedDate(t *testing.T) {
	ctx := context.Background()
	p := setupTestProvider(t)

	_, err := p.BulkInsert(ctx, contract.AllWeather(), makeRecords(2, 500))
	require.NoError(t, err)

	batch := makeRecords(7, 200)
	for _, r := range batch {
		r.Date += 10 * models.DayInMillis
	}
	batch[4].Date += 1

	n, err := p.BulkInsert(ctx, contract.AllWeather(), batch)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 0, n)

	count, err := p.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "rows from the rejected batch must be rolled back")
}

func TestBulkInsertNilRecord(t *testing.T) {
	p := setupTestProvider(t)

	_, err := p.BulkInsert(context.Background(), contract.AllWeather(), []*models.WeatherRecord{nil})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBulkInsertEmptyBatch(t *testing.T) {
	p := setupTestProvider(t)
	calls := 0
	p.Subscribe(contract.AllWeather(), func(contract.Resource) { calls++ })

	n, err := p.BulkInsert(context.Background(), contract.AllWeather(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, calls)
}

func TestBulkInsertSameDateReplaces(t *testing.T) {
	ctx := context.Background()
	p := setupTestProvider(t)

	first := makeRecords(1, 200)[0]
	second := *first
	second.WeatherConditionID = 800

	n, err := p.BulkInsert(ctx, contract.AllWeather(), []*models.WeatherRecord{first, &second})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rs, err := p.Query(ctx, contract.WeatherByDate(first.Date), Query{})
	require.NoError(t, err)
	require.Equal(t, 1, rs.Len())
	got, _ := rs.At(0)
	assert.Equal(t, 800, got.WeatherConditionID)
}

func TestQueryByDateIgnoresSelection(t *testing.T) {
	ctx := context.Background()
	p := setupTestProvider(t)
	records := makeRecords(3, 300)
	_, err := p.BulkInsert(ctx, contract.AllWeather(), records)
	require.NoError(t, err)

	target := records[1].Date
	rs, err := p.Query(ctx, contract.WeatherByDate(target), Query{
		Selection:     "date = ?",
		SelectionArgs: []any{records[2].Date},
	})
	require.NoError(t, err)
	require.Equal(t, 1, rs.Len())

	got, _ := rs.At(0)
	assert.Equal(t, target, got.Date)
	assert.Equal(t, contract.WeatherByDate(target), rs.Resource())
}

func TestQueryByMissingDate(t *testing.T) {
	p := setupTestProvider(t)

	rs, err := p.Query(context.Background(), contract.WeatherByDate(testDay.UnixMilli()), Query{})
	require.NoError(t, err)
	assert.Equal(t, 0, rs.Len())
}

func TestQueryWithSelection(t *testing.T) {
	ctx := context.Background()
	p := setupTestProvider(t)
	records := makeRecords(7, 200)
	_, err := p.BulkInsert(ctx, contract.AllWeather(), records)
	require.NoError(t, err)

	sel, args := contract.SelectTodayOnwards(records[3].Time().Add(5 * time.Hour))
	rs, err := p.Query(ctx, contract.AllWeather(), Query{
		Selection:     sel,
		SelectionArgs: args,
		SortOrder:     "date ASC",
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{records[3].Date, records[4].Date, records[5].Date, records[6].Date}, rs.Dates())
}

func TestQueryProjection(t *testing.T) {
	ctx := context.Background()
	p := setupTestProvider(t)
	_, err := p.BulkInsert(ctx, contract.AllWeather(), makeRecords(1, 711))
	require.NoError(t, err)

	projection := []string{contract.ColumnDate, contract.ColumnMaxTemp, contract.ColumnMinTemp, contract.ColumnConditionID}
	rs, err := p.Query(ctx, contract.AllWeather(), Query{Projection: projection})
	require.NoError(t, err)

	assert.Equal(t, projection, rs.Columns())
	assert.True(t, rs.HasColumn(contract.ColumnMaxTemp))
	assert.False(t, rs.HasColumn(contract.ColumnHumidity))

	got, _ := rs.At(0)
	assert.Equal(t, 711, got.WeatherConditionID)
	assert.Equal(t, 20.0, got.MaxTemp)
	assert.Zero(t, got.Humidity, "unprojected fields stay zero")
	assert.Zero(t, got.Pressure)
}

func TestQueryRejectsBadInput(t *testing.T) {
	p := setupTestProvider(t)
	ctx := context.Background()

	tests := []struct {
		name string
		q    Query
	}{
		{"unknown projection column", Query{Projection: []string{"_id"}}},
		{"unknown sort column", Query{SortOrder: "city ASC"}},
		{"bad sort direction", Query{SortOrder: "date SIDEWAYS"}},
		{"empty sort term", Query{SortOrder: "date ASC,"}},
		{"bad selection", Query{Selection: "date >>> ?", SelectionArgs: []any{1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Query(ctx, contract.AllWeather(), tt.q)
			assert.Error(t, err)
		})
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	p := setupTestProvider(t)
	records := makeRecords(6, 200)
	_, err := p.BulkInsert(ctx, contract.AllWeather(), records)
	require.NoError(t, err)

	n, err := p.Delete(ctx, contract.AllWeather(), "date < ?", []any{records[2].Date})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	count, _ := p.Count(ctx)
	assert.Equal(t, 4, count)

	n, err = p.Delete(ctx, contract.AllWeather(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	count, _ = p.Count(ctx)
	assert.Equal(t, 0, count)
}

func TestUnsupportedOperations(t *testing.T) {
	ctx := context.Background()
	p := setupTestProvider(t)
	byDate := contract.WeatherByDate(testDay.UnixMilli())

	_, err := p.Query(ctx, contract.NoMatch(), Query{})
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = p.Query(ctx, contract.Parse("content://elsewhere/weather"), Query{})
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = p.Delete(ctx, byDate, "", nil)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = p.BulkInsert(ctx, byDate, makeRecords(1, 200))
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = p.Insert(ctx, contract.AllWeather(), makeRecords(1, 200)[0])
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = p.Update(ctx, contract.AllWeather(), makeRecords(1, 200)[0], "", nil)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = p.GetType(contract.AllWeather())
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestMutationsNotifySubscribers(t *testing.T) {
	ctx := context.Background()
	p := setupTestProvider(t)
	records := makeRecords(3, 200)

	var allCalls, dayCalls int
	p.Subscribe(contract.AllWeather(), func(changed contract.Resource) {
		assert.Equal(t, contract.AllWeather(), changed)
		allCalls++
	})
	daySub := p.Subscribe(contract.WeatherByDate(records[0].Date), func(contract.Resource) { dayCalls++ })

	_, err := p.BulkInsert(ctx, contract.AllWeather(), records)
	require.NoError(t, err)
	assert.Equal(t, 1, allCalls, "one notification per batch")
	assert.Equal(t, 1, dayCalls)

	// Nothing deleted, nothing notified.
	_, err = p.Delete(ctx, contract.AllWeather(), "date < ?", []any{int64(0)})
	require.NoError(t, err)
	assert.Equal(t, 1, allCalls)

	daySub.Cancel()
	_, err = p.Delete(ctx, contract.AllWeather(), "", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, allCalls)
	assert.Equal(t, 1, dayCalls)

	// A rejected batch must not notify.
	bad := makeRecords(1, 200)
	bad[0].Date++
	_, err = p.BulkInsert(ctx, contract.AllWeather(), bad)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 2, allCalls)
}

func TestSubscriberCanRequery(t *testing.T) {
	ctx := context.Background()
	p := setupTestProvider(t)

	var seen int
	p.Subscribe(contract.AllWeather(), func(changed contract.Resource) {
		rs, err := p.Query(ctx, changed, Query{})
		require.NoError(t, err)
		seen = rs.Len()
	})

	_, err := p.BulkInsert(ctx, contract.AllWeather(), makeRecords(4, 200))
	require.NoError(t, err)
	assert.Equal(t, 4, seen)
}

func TestBulkInsertSkipsFailedRow(t *testing.T) {
	ctx := context.Background()
	p := setupTestProvider(t)

	var notified int
	sub := p.Subscribe(contract.AllWeather(), func(contract.Resource) { notified++ })
	defer sub.Cancel()

	// NaN binds as NULL and trips the NOT NULL constraint for that row only.
	records := makeRecords(3, 500)
	records[1].MaxTemp = math.NaN()

	n, err := p.BulkInsert(ctx, contract.AllWeather(), records)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	count, err := p.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 1, notified)

	rs, err := p.Query(ctx, contract.AllWeather(), Query{SortOrder: "date ASC"})
	require.NoError(t, err)
	assert.Equal(t, []int64{records[0].Date, records[2].Date}, rs.Dates())
}
