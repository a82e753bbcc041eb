//nolint:revive // Package name intentionally matches stdlib for domain clarity
package errors

import "fmt"

// NotFoundError indicates the task file does not exist.
type NotFoundError struct {
	Path string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("task file not found: %s", e.Path)
}

// IndexError indicates an operation addressed a position outside the list.
type IndexError struct {
	Index int
	Len   int
}

func (e IndexError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("index %d out of range: task list is empty", e.Index)
	}
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Len)
}

// ValidationError indicates a task field has the wrong shape.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// NotInitializedError indicates no data file was configured or created yet.
type NotInitializedError struct {
	Path string
}

func (e NotInitializedError) Error() string {
	return fmt.Sprintf("chores not initialized: %s does not exist (run 'chores init' first)", e.Path)
}

// AlreadyInitializedError indicates the data file already exists.
type AlreadyInitializedError struct {
	Path string
}

func (e AlreadyInitializedError) Error() string {
	return fmt.Sprintf("chores already initialized at %s", e.Path)
}
