// ABOUTME: Binds an ordered forecast result set to list view slots.
// ABOUTME: Row 0 may use the enlarged today layout; everything else uses the day layout.
package adapter

import (
	"errors"
	"fmt"
	"sync"

	"github.com/harperreed/sunshine/internal/contract"
	"github.com/harperreed/sunshine/internal/models"
	"github.com/harperreed/sunshine/internal/weatherutil"
)

var (
	// ErrInvalidViewType is returned for a view type the adapter does not know.
	ErrInvalidViewType = errors.New("invalid view type")

	// ErrPositionOutOfRange is returned when binding past the end of the result set.
	ErrPositionOutOfRange = errors.New("position out of range")

	// ErrMissingColumn is returned when the result set lacks a column needed to bind.
	ErrMissingColumn = errors.New("result set is missing a required column")
)

// RequiredColumns are the columns BindSlot reads.
var RequiredColumns = []string{
	contract.ColumnDate,
	contract.ColumnConditionID,
	contract.ColumnMaxTemp,
	contract.ColumnMinTemp,
}

// RowSet is an immutable indexable snapshot of query results.
type RowSet interface {
	Len() int
	At(i int) (models.WeatherRecord, error)
	HasColumn(name string) bool
}

// Formatter renders dates and temperatures for display.
type Formatter interface {
	FriendlyDateString(date int64, showFullDate bool) string
	FormatTemperature(celsius float64) string
	ForecastLabel(description string) string
	HighLabel(temp string) string
	LowLabel(temp string) string
}

// ClickHandler receives the date of a clicked row.
type ClickHandler interface {
	OnForecastRowClicked(date int64)
}

// ClickHandlerFunc adapts a function to ClickHandler.
type ClickHandlerFunc func(date int64)

// OnForecastRowClicked calls f(date).
func (f ClickHandlerFunc) OnForecastRowClicked(date int64) {
	f(date)
}

// Options configures an Adapter. It is read once at construction.
type Options struct {
	UseTodayLayout bool
}

// Adapter maps result set rows to slots.
type Adapter struct {
	opts      Options
	formatter Formatter
	clicks    ClickHandler

	mu        sync.RWMutex
	rows      RowSet
	observers map[int]func()
	nextID    int
}

// New creates an unbound Adapter.
func New(formatter Formatter, clicks ClickHandler, opts Options) *Adapter {
	return &Adapter{
		opts:      opts,
		formatter: formatter,
		clicks:    clicks,
		observers: make(map[int]func()),
	}
}

// ViewTypeFor returns the layout used at position.
func (a *Adapter) ViewTypeFor(position int) ViewType {
	if a.opts.UseTodayLayout && position == 0 {
		return ViewTypeToday
	}
	return ViewTypeFutureDay
}

// CreateSlot allocates an empty slot for a view type.
func (a *Adapter) CreateSlot(vt ViewType) (*Slot, error) {
	var template string
	switch vt {
	case ViewTypeToday:
		template = TemplateToday
	case ViewTypeFutureDay:
		template = TemplateFutureDay
	default:
		return nil, fmt.Errorf("create slot for %s: %w", vt, ErrInvalidViewType)
	}
	return &Slot{ViewType: vt, Template: template, clicks: a.clicks}, nil
}

// BindSlot fills slot with the row at position in the current result set.
func (a *Adapter) BindSlot(slot *Slot, position int) error {
	rows := a.Rows()
	if rows == nil || position < 0 || position >= rows.Len() {
		return fmt.Errorf("bind position %d: %w", position, ErrPositionOutOfRange)
	}
	for _, col := range RequiredColumns {
		if !rows.HasColumn(col) {
			return fmt.Errorf("bind position %d: %s: %w", position, col, ErrMissingColumn)
		}
	}

	rec, err := rows.At(position)
	if err != nil {
		return fmt.Errorf("bind position %d: %w", position, err)
	}

	large := a.ViewTypeFor(position) == ViewTypeToday

	slot.reset()
	slot.Icon = weatherutil.IconForCondition(rec.WeatherConditionID, large)

	slot.Date = TextField{Text: a.formatter.FriendlyDateString(rec.Date, false)}

	description := weatherutil.DescriptionForCondition(rec.WeatherConditionID)
	slot.Description = TextField{Text: description, ContentDescription: a.formatter.ForecastLabel(description)}

	high := a.formatter.FormatTemperature(rec.MaxTemp)
	slot.High = TextField{Text: high, ContentDescription: a.formatter.HighLabel(high)}

	low := a.formatter.FormatTemperature(rec.MinTemp)
	slot.Low = TextField{Text: low, ContentDescription: a.formatter.LowLabel(low)}

	slot.rows = rows
	slot.position = position
	slot.clicks = a.clicks
	return nil
}

// RowCount returns the number of rows bound, or 0 when unbound.
func (a *Adapter) RowCount() int {
	rows := a.Rows()
	if rows == nil {
		return 0
	}
	return rows.Len()
}

// Rows returns the current result set, or nil.
func (a *Adapter) Rows() RowSet {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.rows
}

// ReplaceResultSet swaps in rows (nil to unbind) and invalidates every rendered slot.
func (a *Adapter) ReplaceResultSet(rows RowSet) {
	a.mu.Lock()
	a.rows = rows
	observers := make([]func(), 0, len(a.observers))
	for id := 0; id < a.nextID; id++ {
		if fn, ok := a.observers[id]; ok {
			observers = append(observers, fn)
		}
	}
	a.mu.Unlock()

	for _, fn := range observers {
		fn()
	}
}

// OnInvalidate registers fn to run after each ReplaceResultSet. The returned func unregisters it.
func (a *Adapter) OnInvalidate(fn func()) func() {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.observers[id] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.observers, id)
		a.mu.Unlock()
	}
}

// Render creates and binds a slot for every row.
func (a *Adapter) Render() ([]*Slot, error) {
	n := a.RowCount()
	slots := make([]*Slot, 0, n)
	for i := 0; i < n; i++ {
		slot, err := a.CreateSlot(a.ViewTypeFor(i))
		if err != nil {
			return nil, err
		}
		if err := a.BindSlot(slot, i); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, nil
}
