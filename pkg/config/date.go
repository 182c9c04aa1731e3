package config

import (
	"fmt"
	"time"

	"github.com/matzehuels/planwright/pkg/errors"
)

// Date is a calendar day without a time of day. It reads TOML local dates
// (start = 2025-01-01) as well as "YYYY-MM-DD" strings in TOML and JSON.
type Date struct {
	t time.Time
}

// NewDate truncates t to its calendar day in UTC.
func NewDate(t time.Time) Date {
	return Date{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// MustDate parses a "YYYY-MM-DD" string and panics on error. For tests and
// literals only.
func MustDate(s string) Date {
	var d Date
	if err := d.UnmarshalText([]byte(s)); err != nil {
		panic(err)
	}
	return d
}

// Time returns the day at midnight UTC.
func (d Date) Time() time.Time { return d.t }

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(errors.DateLayout)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	t, err := errors.ValidateDate("date", string(b))
	if err != nil {
		return err
	}
	*d = NewDate(t)
	return nil
}

// UnmarshalTOML accepts TOML local dates, datetimes and strings.
func (d *Date) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case time.Time:
		*d = NewDate(x)
		return nil
	case string:
		return d.UnmarshalText([]byte(x))
	default:
		return fmt.Errorf("date: unsupported TOML value %T", v)
	}
}
