package task

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	choreserrors "github.com/abatilo/chores/internal/errors"
)

// IntervalKind tags the recurrence rule carried by an Interval.
type IntervalKind uint8

const (
	KindNone IntervalKind = iota
	KindDays
	KindMonth
	KindYear
)

// MaxDayCount bounds a day-count rule to about a century, so one step
// cannot leave the storable date window.
const MaxDayCount = 36500

// Recurrence tags as stored on disk and accepted on the command line.
const (
	TagMonth = "month"
	TagYear  = "year"
)

// Interval is a recurrence rule: every n days, every month, every year, or none.
// The zero Interval is none.
type Interval struct {
	kind IntervalKind
	days int
}

// Days returns a rule that repeats every n days.
func Days(n int) Interval {
	return Interval{kind: KindDays, days: n}
}

// Monthly returns a rule that repeats on the same day every month.
func Monthly() Interval {
	return Interval{kind: KindMonth}
}

// Yearly returns a rule that repeats on the same day every year.
func Yearly() Interval {
	return Interval{kind: KindYear}
}

func (iv Interval) Kind() IntervalKind { return iv.kind }

// DayCount returns n for a Days(n) rule and 0 otherwise.
func (iv Interval) DayCount() int {
	if iv.kind != KindDays {
		return 0
	}
	return iv.days
}

// IsZero reports whether iv is the absent rule.
func (iv Interval) IsZero() bool { return iv.kind == KindNone }

// String returns the command-line spelling: a day count, "month", "year" or "".
func (iv Interval) String() string {
	switch iv.kind {
	case KindDays:
		return strconv.Itoa(iv.days)
	case KindMonth:
		return TagMonth
	case KindYear:
		return TagYear
	default:
		return ""
	}
}

// Validate checks that iv is a known rule with a positive day count.
func (iv Interval) Validate() error {
	switch iv.kind {
	case KindNone, KindMonth, KindYear:
		return nil
	case KindDays:
		if iv.days < 1 {
			return choreserrors.ValidationError{
				Field:  "interval",
				Value:  strconv.Itoa(iv.days),
				Reason: "day count must be a positive integer",
			}
		}
		if iv.days > MaxDayCount {
			return choreserrors.ValidationError{
				Field:  "interval",
				Value:  strconv.Itoa(iv.days),
				Reason: "day count must be at most " + strconv.Itoa(MaxDayCount),
			}
		}
		return nil
	default:
		return choreserrors.ValidationError{Field: "interval", Reason: "unknown recurrence kind"}
	}
}

// ParseInterval parses a day count, "month", "year", or "" / "none" for no rule.
func ParseInterval(s string) (Interval, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "none":
		return Interval{}, nil
	case TagMonth:
		return Monthly(), nil
	case TagYear:
		return Yearly(), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return Interval{}, choreserrors.ValidationError{
			Field:  "interval",
			Value:  s,
			Reason: "expected a day count, month or year",
		}
	}
	iv := Days(n)
	if err := iv.Validate(); err != nil {
		return Interval{}, err
	}
	return iv, nil
}

// MarshalJSON encodes iv as an integer, "month", "year" or null.
func (iv Interval) MarshalJSON() ([]byte, error) {
	switch iv.kind {
	case KindNone:
		return []byte("null"), nil
	case KindDays:
		return []byte(strconv.Itoa(iv.days)), nil
	default:
		return json.Marshal(iv.String())
	}
}

// UnmarshalJSON decodes an integer, "month", "year" or null.
func (iv *Interval) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*iv = Interval{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return iv.setTag(s)
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return choreserrors.ValidationError{
			Field:  "interval",
			Value:  string(data),
			Reason: "expected a day count, month or year",
		}
	}
	return iv.setDays(n)
}

// MarshalYAML encodes iv as an integer, "month", "year" or null.
func (iv Interval) MarshalYAML() (any, error) {
	switch iv.kind {
	case KindNone:
		return nil, nil //nolint:nilnil // null is the YAML encoding of no rule
	case KindDays:
		return iv.days, nil
	default:
		return iv.String(), nil
	}
}

// UnmarshalYAML decodes an integer, "month", "year" or null.
func (iv *Interval) UnmarshalYAML(node *yaml.Node) error {
	switch node.ShortTag() {
	case "!!null":
		*iv = Interval{}
		return nil
	case "!!int":
		n, err := strconv.Atoi(node.Value)
		if err != nil {
			return choreserrors.ValidationError{Field: "interval", Value: node.Value, Reason: "day count out of range"}
		}
		return iv.setDays(n)
	case "!!str":
		return iv.setTag(node.Value)
	default:
		return choreserrors.ValidationError{
			Field:  "interval",
			Value:  node.Value,
			Reason: "expected a day count, month or year",
		}
	}
}

func (iv *Interval) setDays(n int) error {
	parsed := Days(n)
	if err := parsed.Validate(); err != nil {
		return err
	}
	*iv = parsed
	return nil
}

func (iv *Interval) setTag(s string) error {
	switch s {
	case TagMonth:
		*iv = Monthly()
	case TagYear:
		*iv = Yearly()
	default:
		return choreserrors.ValidationError{Field: "interval", Value: s, Reason: "expected month or year"}
	}
	return nil
}
