package pageref

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// DateKey identifies a day as "YYYY-MM-DD".
type DateKey string

// YearMonth identifies a month as "YYYY-MM".
type YearMonth string

// DateKeyOf returns the date key of t.
func DateKeyOf(t time.Time) DateKey { return DateKey(t.Format(dateLayout)) }

// YearMonthOf returns the month key of t.
func YearMonthOf(t time.Time) YearMonth { return YearMonth(t.Format(monthLayout)) }

// Time parses the month key into the first day of that month (UTC).
func (m YearMonth) Time() (time.Time, error) {
	return time.Parse(monthLayout, string(m))
}

// Time parses the date key (UTC).
func (d DateKey) Time() (time.Time, error) {
	return time.Parse(dateLayout, string(d))
}

// WeekKey identifies a Sunday-first week by the year of its Sunday and the
// week-of-year number of that Sunday (strftime's %U applied to the Sunday).
// Days before a year's first Sunday belong to the previous year's last week.
type WeekKey struct {
	Year int
	Week int
}

// String renders the key as "YYYY-Www".
func (w WeekKey) String() string { return fmt.Sprintf("%04d-W%02d", w.Year, w.Week) }

// IsZero reports whether the key is unset.
func (w WeekKey) IsZero() bool { return w == WeekKey{} }

// MarshalText lets WeekKey serve as a JSON object key.
func (w WeekKey) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

// UnmarshalText parses "YYYY-Www".
func (w *WeekKey) UnmarshalText(b []byte) error {
	year, week, ok := strings.Cut(strings.TrimSpace(string(b)), "-W")
	if !ok {
		return fmt.Errorf("pageref: invalid week key %q", b)
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return fmt.Errorf("pageref: invalid week key %q: %w", b, err)
	}
	n, err := strconv.Atoi(week)
	if err != nil {
		return fmt.Errorf("pageref: invalid week key %q: %w", b, err)
	}
	*w = WeekKey{Year: y, Week: n}
	return nil
}

// WeekStart returns the Sunday on or before t, at midnight in t's location.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday())) // Sunday == 0
}

// WeekOf returns the week key of the Sunday-first week containing t. Every
// week number in the planner is computed here.
func WeekOf(t time.Time) WeekKey {
	s := WeekStart(t)
	return WeekKey{Year: s.Year(), Week: (s.YearDay() + 6) / 7}
}

// Days lists every day from start to end inclusive. An end before start
// yields no days.
func Days(start, end time.Time) []time.Time {
	var days []time.Time
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// Months lists the first day of every month touched by [start, end].
func Months(start, end time.Time) []time.Time {
	var months []time.Time
	if end.Before(start) {
		return months
	}
	m := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	for ; !m.After(last); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}

// DaysIn returns the number of days in the month containing t.
func DaysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
