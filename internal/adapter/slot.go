// ABOUTME: View slot state produced by the forecast list adapter.
// ABOUTME: A slot holds display text, its icon, and the snapshot row it was bound from.
package adapter

import (
	"errors"
	"fmt"

	"github.com/harperreed/sunshine/internal/models"
	"github.com/harperreed/sunshine/internal/weatherutil"
)

// ErrUnboundSlot is returned when clicking a slot that has not been bound.
var ErrUnboundSlot = errors.New("slot is not bound")

// ViewType selects one of the two row layouts.
type ViewType int

const (
	ViewTypeToday ViewType = iota
	ViewTypeFutureDay
)

func (v ViewType) String() string {
	switch v {
	case ViewTypeToday:
		return "today"
	case ViewTypeFutureDay:
		return "future_day"
	}
	return fmt.Sprintf("ViewType(%d)", int(v))
}

// Layout templates for each view type.
const (
	TemplateToday     = "list_item_forecast_today"
	TemplateFutureDay = "forecast_list_item"
)

// TextField is a piece of display text with its accessibility description.
type TextField struct {
	Text               string
	ContentDescription string
}

// Slot is a reusable row view. Bind fills it; Click reports its row's date.
type Slot struct {
	ViewType    ViewType
	Template    string
	Icon        weatherutil.Icon
	Date        TextField
	Description TextField
	High        TextField
	Low         TextField

	rows     RowSet
	position int
	clicks   ClickHandler
}

// Position returns the bound row position, or -1 when unbound.
func (s *Slot) Position() int {
	if s.rows == nil {
		return -1
	}
	return s.position
}

// Bound reports whether the slot holds row data.
func (s *Slot) Bound() bool {
	return s.rows != nil
}

// Record returns the row the slot was bound from.
func (s *Slot) Record() (models.WeatherRecord, error) {
	if s.rows == nil {
		return models.WeatherRecord{}, ErrUnboundSlot
	}
	return s.rows.At(s.position)
}

// Click resolves the bound row's date and forwards it to the click handler.
func (s *Slot) Click() error {
	rec, err := s.Record()
	if err != nil {
		return err
	}
	if s.clicks != nil {
		s.clicks.OnForecastRowClicked(rec.Date)
	}
	return nil
}

func (s *Slot) reset() {
	s.Icon = ""
	s.Date = TextField{}
	s.Description = TextField{}
	s.High = TextField{}
	s.Low = TextField{}
	s.rows = nil
	s.position = 0
}
