package task

import (
	"encoding/json"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	choreserrors "github.com/abatilo/chores/internal/errors"
)

// DateLayout is the on-disk and command-line date format (dd.mm.yy).
const DateLayout = "02.01.06"

// Two-digit years round-trip only inside this window.
const (
	MinStorableYear = 1969
	MaxStorableYear = 2068
)

// Date is a calendar day without a time of day. The zero Date means no date.
type Date struct {
	t time.Time
}

// NewDate returns the given calendar day. Out-of-range values are normalized
// the way time.Date normalizes them; use ValidDate to reject them instead.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// Today returns the current local calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// ValidDate reports whether year-month-day names a real calendar day.
func ValidDate(year int, month time.Month, day int) bool {
	if month < time.January || month > time.December || day < 1 {
		return false
	}
	d := NewDate(year, month, day)
	return d.Year() == year && d.Month() == month && d.Day() == day
}

// ParseDate parses a dd.mm.yy date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, choreserrors.ValidationError{Field: "date", Value: s, Reason: "expected dd.mm.yy"}
	}
	return DateOf(t), nil
}

// IsZero reports whether d is the absent date.
func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Year() int { return d.t.Year() }

func (d Date) Month() time.Month { return d.t.Month() }

func (d Date) Day() int { return d.t.Day() }

// Time returns midnight UTC of d.
func (d Date) Time() time.Time { return d.t }

// AddDays returns d moved by n days.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

func (d Date) After(o Date) bool { return d.t.After(o.t) }

func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

// String formats d as dd.mm.yy, or "" for the absent date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

func (d Date) validate() error {
	if d.IsZero() {
		return nil
	}
	if d.Year() < MinStorableYear || d.Year() > MaxStorableYear {
		return choreserrors.ValidationError{
			Field:  "date",
			Value:  d.t.Format("2006-01-02"),
			Reason: "year must be between 1969 and 2068 to be stored as dd.mm.yy",
		}
	}
	return nil
}

// MarshalJSON encodes d as "dd.mm.yy" or null.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes "dd.mm.yy" or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return choreserrors.ValidationError{Field: "date", Value: string(data), Reason: "expected a dd.mm.yy string"}
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML encodes d as "dd.mm.yy" or null.
func (d Date) MarshalYAML() (any, error) {
	if d.IsZero() {
		return nil, nil //nolint:nilnil // null is the YAML encoding of an absent date
	}
	return d.String(), nil
}

// UnmarshalYAML decodes "dd.mm.yy" or null.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return choreserrors.ValidationError{Field: "date", Reason: "expected a dd.mm.yy string"}
	}
	if node.ShortTag() == "!!null" || node.Value == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(node.Value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
