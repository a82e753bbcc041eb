package output

import (
	"github.com/abatilo/chores/internal/storage"
	"github.com/abatilo/chores/internal/task"
)

// Formatter defines the interface for output formatting.
type Formatter interface {
	FormatTask(e Entry) string
	FormatTaskList(entries []Entry, opts ListOptions) string
	FormatCheck(r *storage.CheckResult) string
	FormatError(err error) string
	FormatMessage(msg string) string
}

// Entry is a task together with its 1-based position in the full list.
// Filtered listings keep the full-list numbers so they can be passed back
// to commands.
type Entry struct {
	Number int
	Task   task.Task
}

// ListOptions controls list rendering.
type ListOptions struct {
	ShowStatus bool
}

// Entries numbers tasks and keeps those accepted by keep. A nil keep
// accepts every task.
func Entries(tasks []task.Task, keep func(task.Task) bool) []Entry {
	entries := make([]Entry, 0, len(tasks))
	for i, t := range tasks {
		if keep != nil && !keep(t) {
			continue
		}
		entries = append(entries, Entry{Number: i + 1, Task: t})
	}
	return entries
}

// Recurrence describes iv in words: "every 3 days", "monthly", "yearly" or "".
func Recurrence(iv task.Interval) string {
	switch iv.Kind() {
	case task.KindDays:
		if iv.DayCount() == 1 {
			return "daily"
		}
		return "every " + iv.String() + " days"
	case task.KindMonth:
		return "monthly"
	case task.KindYear:
		return "yearly"
	default:
		return ""
	}
}
