package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

// Day and time-of-day values as stored in product_availabilities.
const (
	DayAll     = "Todos"
	TimeAllDay = "Dia Todo"
	TimeLunch  = "Almoço"
	TimeDinner = "Jantar"

	lunchCutoffHour = 15
)

var weekdayNames = [...]string{
	time.Sunday:    "Domingo",
	time.Monday:    "Segunda",
	time.Tuesday:   "Terça",
	time.Wednesday: "Quarta",
	time.Thursday:  "Quinta",
	time.Friday:    "Sexta",
	time.Saturday:  "Sábado",
}

// Slot is the (day, time-of-day) bucket a moment falls into.
type Slot struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

// SlotAt buckets t, which must already be in the restaurant's local zone.
func SlotAt(t time.Time) Slot {
	period := TimeDinner
	if t.Hour() < lunchCutoffHour {
		period = TimeLunch
	}
	return Slot{Day: weekdayNames[t.Weekday()], Time: period}
}

// Window is one availability rule of a product.
type Window struct {
	ID              uint
	DayOfWeek       string
	TimeOfDay       string
	PriceAdjustment decimal.Decimal
}

func (w Window) matches(s Slot) bool {
	dayOK := w.DayOfWeek == s.Day || w.DayOfWeek == DayAll
	timeOK := w.TimeOfDay == s.Time || w.TimeOfDay == TimeAllDay
	return dayOK && timeOK
}

type Availability struct {
	Available       bool
	PriceAdjustment decimal.Decimal
	Slot            Slot
}

// Resolve applies the first window matching slot, in the order given.
// A product without windows is always available at its base price.
func Resolve(windows []Window, slot Slot) Availability {
	if len(windows) == 0 {
		return Availability{Available: true, PriceAdjustment: decimal.Zero, Slot: slot}
	}

	for _, w := range windows {
		if w.matches(slot) {
			return Availability{Available: true, PriceAdjustment: w.PriceAdjustment, Slot: slot}
		}
	}

	return Availability{Available: false, PriceAdjustment: decimal.Zero, Slot: slot}
}

func ValidDay(day string) bool {
	if day == DayAll {
		return true
	}
	for _, d := range weekdayNames {
		if d == day {
			return true
		}
	}
	return false
}

func ValidTimeOfDay(t string) bool {
	return t == TimeAllDay || t == TimeLunch || t == TimeDinner
}
