package timeutil

import (
	"fmt"
	"time"
)

// Report range filters.
const (
	FilterToday   = "today"
	FilterWeek    = "week"
	FilterMonth   = "month"
	FilterQuarter = "quarter"
	FilterYear    = "year"
	FilterCustom  = "custom"
	FilterAll     = "all"
)

// DateRange is an inclusive day range in the shop timezone. An unbounded
// range (all-time) has Bounded=false and zero Start/End.
type DateRange struct {
	Bounded bool
	Start   time.Time // start of first day
	End     time.Time // end of last day
}

// Days returns the span of the range in whole days (1 for a single day).
func (r DateRange) Days() int {
	if !r.Bounded {
		return 0
	}
	return r.SpanDays() + 1
}

// SpanDays returns the calendar-date difference between end and start
// (0 for a single day). A 32-calendar-day range spans 31 days.
func (r DateRange) SpanDays() int {
	if !r.Bounded {
		return 0
	}
	return int(dateOnly(r.End).Sub(dateOnly(r.Start)).Hours() / 24)
}

// dateOnly pins a shop-timezone calendar date in UTC so day arithmetic
// is not skewed by DST transitions shortening or stretching a day.
func dateOnly(t time.Time) time.Time {
	local := t.In(ShopTZ)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// Contains reports whether t falls inside the range. Unbounded ranges
// contain everything.
func (r DateRange) Contains(t time.Time) bool {
	if !r.Bounded {
		return true
	}
	return !t.Before(r.Start) && !t.After(r.End)
}

// ResolveRange turns a filter name into a concrete date range relative to
// now. Week starts on Monday; month, quarter and year are calendar
// boundaries, not rolling windows. Custom ranges take start/end as
// YYYY-MM-DD; anything unparseable falls back to all-time.
func ResolveRange(filter, startStr, endStr string, now time.Time) (DateRange, error) {
	today := StartOfDay(now)

	switch filter {
	case FilterToday:
		return DateRange{Bounded: true, Start: today, End: EndOfDay(today)}, nil

	case FilterWeek:
		// Monday-start week. time.Weekday has Sunday == 0.
		offset := (int(today.Weekday()) + 6) % 7
		start := today.AddDate(0, 0, -offset)
		return DateRange{Bounded: true, Start: start, End: EndOfDay(start.AddDate(0, 0, 6))}, nil

	case FilterMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, ShopTZ)
		end := start.AddDate(0, 1, -1)
		return DateRange{Bounded: true, Start: start, End: EndOfDay(end)}, nil

	case FilterQuarter:
		quarter := (int(today.Month()) - 1) / 3
		start := time.Date(today.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, ShopTZ)
		end := start.AddDate(0, 3, -1)
		return DateRange{Bounded: true, Start: start, End: EndOfDay(end)}, nil

	case FilterYear:
		start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, ShopTZ)
		end := time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, ShopTZ)
		return DateRange{Bounded: true, Start: start, End: EndOfDay(end)}, nil

	case FilterCustom:
		start, err := time.ParseInLocation(DateLayout, startStr, ShopTZ)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid start date %q", startStr)
		}
		end, err := time.ParseInLocation(DateLayout, endStr, ShopTZ)
		if err != nil {
			return DateRange{}, fmt.Errorf("invalid end date %q", endStr)
		}
		if end.Before(start) {
			return DateRange{}, fmt.Errorf("end date before start date")
		}
		return DateRange{Bounded: true, Start: StartOfDay(start), End: EndOfDay(end)}, nil

	default:
		// all-time
		return DateRange{}, nil
	}
}
