package output

import (
	"fmt"
	"strings"

	"github.com/abatilo/chores/internal/storage"
	"github.com/abatilo/chores/internal/task"
)

// HumanFormatter formats output for human-readable terminal display.
type HumanFormatter struct{}

// NewHumanFormatter creates a new HumanFormatter.
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// FormatTask formats a single task for display.
func (f *HumanFormatter) FormatTask(e Entry) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%d. %s\n", e.Number, f.text(e.Task))
	fmt.Fprintf(&sb, "  Status: %s\n", f.statusWord(e.Task))
	if !e.Task.Date.IsZero() {
		fmt.Fprintf(&sb, "  Due:    %s\n", e.Task.Date)
	}
	if rec := Recurrence(e.Task.Interval); rec != "" {
		fmt.Fprintf(&sb, "  Repeat: %s\n", rec)
		if e.Task.Date.IsZero() {
			sb.WriteString("          (inactive until a date is set)\n")
		}
	}

	return sb.String()
}

// FormatTaskList formats a list of tasks for display.
func (f *HumanFormatter) FormatTaskList(entries []Entry, opts ListOptions) string {
	if len(entries) == 0 {
		return "No tasks found.\n"
	}

	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(f.formatTaskLine(e, opts))
	}
	return sb.String()
}

// formatTaskLine formats a single task as a compact one-liner.
func (f *HumanFormatter) formatTaskLine(e Entry, opts ListOptions) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d. ", e.Number)
	if opts.ShowStatus {
		sb.WriteString(f.statusIcon(e.Task))
		sb.WriteString(" ")
	}
	sb.WriteString(f.text(e.Task))
	if !e.Task.Date.IsZero() {
		details := e.Task.Date.String()
		if rec := Recurrence(e.Task.Interval); rec != "" {
			details += ", " + rec
		}
		fmt.Fprintf(&sb, " (%s)", details)
	}
	sb.WriteString("\n")
	return sb.String()
}

func (f *HumanFormatter) text(t task.Task) string {
	if t.Text == "" {
		return "(no text)"
	}
	return t.Text
}

func (f *HumanFormatter) statusIcon(t task.Task) string {
	if t.Done {
		return "[*]"
	}
	return "[ ]"
}

func (f *HumanFormatter) statusWord(t task.Task) string {
	if t.Done {
		return "done"
	}
	return "pending"
}

// FormatCheck formats the result of validating a task file.
func (f *HumanFormatter) FormatCheck(r *storage.CheckResult) string {
	if r.Valid() {
		return fmt.Sprintf("%s: ok (%d tasks)\n", r.Path, r.Tasks)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %d problem(s)\n", r.Path, len(r.Problems))
	for _, p := range r.Problems {
		fmt.Fprintf(&sb, "  %s\n", p)
	}
	return sb.String()
}

// FormatError formats an error for display.
func (f *HumanFormatter) FormatError(err error) string {
	return fmt.Sprintf("Error: %s\n", err.Error())
}

// FormatMessage formats a simple message.
func (f *HumanFormatter) FormatMessage(msg string) string {
	return msg + "\n"
}
