package order

import "time"

// PeriodStart returns the UTC instant at which period began, judged on
// now's wall clock: today from midnight, week from Monday, month from the 1st.
func PeriodStart(period string, now time.Time) *time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var start time.Time
	switch period {
	case PeriodToday:
		start = midnight
	case PeriodWeek:
		sinceMonday := (int(now.Weekday()) + 6) % 7
		start = midnight.AddDate(0, 0, -sinceMonday)
	case PeriodMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return nil
	}

	start = start.UTC()
	return &start
}

func (f AdminFilter) Resolve(now time.Time) Query {
	return Query{Status: f.Status, Since: PeriodStart(f.Period, now)}
}
