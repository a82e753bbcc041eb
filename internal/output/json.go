package output

import (
	"encoding/json"

	"github.com/abatilo/chores/internal/storage"
	"github.com/abatilo/chores/internal/task"
)

// JSONFormatter formats output as JSON.
type JSONFormatter struct{}

// marshalJSON marshals a value to indented JSON with a trailing newline.
func marshalJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data) + "\n"
}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// taskJSON is the JSON representation of a numbered task.
type taskJSON struct {
	Number     int           `json:"number"`
	Text       string        `json:"text"`
	Date       task.Date     `json:"date"`
	Interval   task.Interval `json:"interval"`
	Recurrence string        `json:"recurrence,omitempty"`
	Done       bool          `json:"done"`
}

func toTaskJSON(e Entry) taskJSON {
	return taskJSON{
		Number:     e.Number,
		Text:       e.Task.Text,
		Date:       e.Task.Date,
		Interval:   e.Task.Interval,
		Recurrence: Recurrence(e.Task.Interval),
		Done:       e.Task.Done,
	}
}

// FormatTask formats a single task as JSON.
func (f *JSONFormatter) FormatTask(e Entry) string {
	return marshalJSON(toTaskJSON(e))
}

// FormatTaskList formats a list of tasks as JSON. Status is always included.
func (f *JSONFormatter) FormatTaskList(entries []Entry, _ ListOptions) string {
	jsonTasks := make([]taskJSON, len(entries))
	for i, e := range entries {
		jsonTasks[i] = toTaskJSON(e)
	}
	return marshalJSON(jsonTasks)
}

type problemJSON struct {
	Location string `json:"location,omitempty"`
	Message  string `json:"message"`
}

type checkJSON struct {
	Path     string        `json:"path"`
	Valid    bool          `json:"valid"`
	Tasks    int           `json:"tasks"`
	Problems []problemJSON `json:"problems"`
}

// FormatCheck formats a validation result as JSON.
func (f *JSONFormatter) FormatCheck(r *storage.CheckResult) string {
	cj := checkJSON{
		Path:     r.Path,
		Valid:    r.Valid(),
		Tasks:    r.Tasks,
		Problems: make([]problemJSON, len(r.Problems)),
	}
	for i, p := range r.Problems {
		cj.Problems[i] = problemJSON{Location: p.Location, Message: p.Message}
	}
	return marshalJSON(cj)
}

// errorJSON is the JSON representation of an error.
type errorJSON struct {
	Error string `json:"error"`
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(err error) string {
	return marshalJSON(errorJSON{Error: err.Error()})
}

// messageJSON is the JSON representation of a message.
type messageJSON struct {
	Message string `json:"message"`
}

// FormatMessage formats a simple message as JSON.
func (f *JSONFormatter) FormatMessage(msg string) string {
	return marshalJSON(messageJSON{Message: msg})
}
