//nolint:testpackage // Tests require internal access for thorough testing
package task

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	choreserrors "github.com/abatilo/chores/internal/errors"
)

// requireFieldError asserts err is a ValidationError naming field.
func requireFieldError(t *testing.T, err error, field string) {
	t.Helper()
	var verr choreserrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, field, verr.Field)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{"05.02.20", NewDate(2020, time.February, 5), false},
		{"31.12.99", NewDate(1999, time.December, 31), false},
		{"01.01.68", NewDate(2068, time.January, 1), false},
		{"29.02.20", NewDate(2020, time.February, 29), false},
		{" 01.03.21 ", NewDate(2021, time.March, 1), false},
		{"29.02.21", Date{}, true},
		{"2020-02-05", Date{}, true},
		{"", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				requireFieldError(t, err, "date")
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "ParseDate(%q) = %s, want %s", tt.input, got, tt.want)
		})
	}
}

func TestValidDate(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		day   int
		valid bool
	}{
		{"regular day", 2021, time.March, 15, true},
		{"leap day in leap year", 2020, time.February, 29, true},
		{"leap day in common year", 2021, time.February, 29, false},
		{"century non-leap", 2100, time.February, 29, false},
		{"31st of 30-day month", 2021, time.April, 31, false},
		{"day zero", 2021, time.April, 0, false},
		{"month 13", 2021, time.Month(13), 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidDate(tt.year, tt.month, tt.day))
		})
	}
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		input   string
		want    Interval
		wantErr bool
	}{
		{"", Interval{}, false},
		{"none", Interval{}, false},
		{"month", Monthly(), false},
		{"YEAR", Yearly(), false},
		{"10", Days(10), false},
		{"1", Days(1), false},
		{"36500", Days(MaxDayCount), false},
		{"36501", Interval{}, true},
		{"4611686018427387904", Interval{}, true},
		{"0", Interval{}, true},
		{"-3", Interval{}, true},
		{"week", Interval{}, true},
		{"2.5", Interval{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseInterval(tt.input)
			if tt.wantErr {
				requireFieldError(t, err, "interval")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntervalValidateBounds(t *testing.T) {
	assert.NoError(t, Days(1).Validate())
	assert.NoError(t, Days(MaxDayCount).Validate())
	requireFieldError(t, Days(MaxDayCount+1).Validate(), "interval")
	requireFieldError(t, Days(1<<62).Validate(), "interval")
	requireFieldError(t, Task{Date: NewDate(2020, time.January, 1), Interval: Days(1 << 62)}.Validate(), "interval")
}

func TestIntervalJSON(t *testing.T) {
	tests := []struct {
		json    string
		want    Interval
		wantErr bool
	}{
		{"null", Interval{}, false},
		{"10", Days(10), false},
		{`"month"`, Monthly(), false},
		{`"year"`, Yearly(), false},
		{"0", Interval{}, true},
		{"40000", Interval{}, true},
		{"2.5", Interval{}, true},
		{"true", Interval{}, true},
		{`"week"`, Interval{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.json, func(t *testing.T) {
			var got Interval
			err := json.Unmarshal([]byte(tt.json), &got)
			if tt.wantErr {
				assert.Error(t, err, "Unmarshal(%s) = %v", tt.json, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			data, err := json.Marshal(got)
			require.NoError(t, err)
			assert.JSONEq(t, tt.json, string(data))
		})
	}
}

func TestIntervalYAML(t *testing.T) {
	type doc struct {
		Interval Interval `yaml:"interval"`
	}

	var d doc
	require.NoError(t, yaml.Unmarshal([]byte("interval: 7\n"), &d))
	assert.Equal(t, Days(7), d.Interval)

	require.NoError(t, yaml.Unmarshal([]byte("interval: month\n"), &d))
	assert.Equal(t, Monthly(), d.Interval)

	assert.Error(t, yaml.Unmarshal([]byte("interval: fortnight\n"), &d), "unknown tag")
	assert.Error(t, yaml.Unmarshal([]byte("interval: 40000\n"), &d), "day count over the bound")
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2021, time.January, 31)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"31.01.21"`, string(data))

	var zero Date
	data, err = json.Marshal(zero)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	var got Date
	require.NoError(t, json.Unmarshal([]byte(`"31.01.21"`), &got))
	assert.True(t, got.Equal(d), "Unmarshal = %s, want %s", got, d)
}

func TestDateYAML(t *testing.T) {
	type doc struct {
		Date Date `yaml:"date"`
	}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"date", "date: 31.01.21\n", "31.01.21", false},
		{"null", "date: null\n", "", false},
		{"empty", "date: \"\"\n", "", false},
		{"mapping", "date: {day: 1}\n", "", true},
		{"sequence", "date: [01.01.21]\n", "", true},
		{"not a day", "date: 31.02.21\n", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d doc
			err := yaml.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				requireFieldError(t, err, "date")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Date.String())
		})
	}
}

func TestDateValidate(t *testing.T) {
	tk := Task{Text: "far future", Date: NewDate(2100, time.January, 1)}
	requireFieldError(t, tk.Validate(), "date")

	tk.Date = NewDate(2030, time.January, 1)
	assert.NoError(t, tk.Validate())
}

func TestIsRecurring(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"date and interval", Task{Date: NewDate(2020, time.January, 1), Interval: Days(3)}, true},
		{"interval without date", Task{Interval: Monthly()}, false},
		{"date without interval", Task{Date: NewDate(2020, time.January, 1)}, false},
		{"neither", Task{Text: "plain"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.IsRecurring())
		})
	}
}

func TestPatchApply(t *testing.T) {
	orig := Task{
		Text:     "water plants",
		Date:     NewDate(2020, time.January, 1),
		Interval: Days(3),
		Done:     true,
	}

	text := "water cactus"
	want := orig
	want.Text = "water cactus"
	assert.Equal(t, want, Patch{Text: &text}.Apply(orig))

	var noDate Date
	var noInterval Interval
	got := Patch{Date: &noDate, Interval: &noInterval}.Apply(orig)
	assert.True(t, got.Date.IsZero(), "date should be cleared")
	assert.True(t, got.Interval.IsZero(), "interval should be cleared")
	assert.Equal(t, orig.Text, got.Text)
	assert.Equal(t, orig.Done, got.Done)

	notDone := false
	assert.False(t, Patch{Done: &notDone}.Apply(orig).Done)

	assert.True(t, Patch{}.IsEmpty())
}

func TestPatchValidate(t *testing.T) {
	bad := Days(0)
	requireFieldError(t, Patch{Interval: &bad}.Validate(), "interval")

	huge := Days(MaxDayCount + 1)
	requireFieldError(t, Patch{Interval: &huge}.Validate(), "interval")
}
