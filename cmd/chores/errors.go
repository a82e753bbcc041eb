package main

import (
	"errors"
	"fmt"

	choreserrors "github.com/abatilo/chores/internal/errors"
)

// PositionError indicates a task number outside the list. Positions are
// 1-based, as shown by 'chores list'.
type PositionError struct {
	Position int
	Count    int
}

func (e PositionError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("no task %d: the list is empty", e.Position)
	}
	return fmt.Sprintf("no task %d (valid: 1-%d)", e.Position, e.Count)
}

// InvalidPositionError indicates a task number argument that is not a
// positive integer.
type InvalidPositionError struct {
	Value string
}

func (e InvalidPositionError) Error() string {
	return fmt.Sprintf("invalid task number %q: expected a positive integer", e.Value)
}

// NoChangesError indicates edit was called without any field to change.
type NoChangesError struct{}

func (e NoChangesError) Error() string {
	return "nothing to change: pass --text, --date, --every, --clear-date, --clear-every, --done or --undone"
}

// userError rewrites store errors in terms of the 1-based numbers users type.
func userError(err error) error {
	var indexErr choreserrors.IndexError
	if errors.As(err, &indexErr) {
		return PositionError{Position: indexErr.Index + 1, Count: indexErr.Len}
	}
	return err
}
