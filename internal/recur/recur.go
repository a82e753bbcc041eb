// Package recur advances the due dates of recurring tasks.
package recur

import (
	"time"

	"github.com/abatilo/chores/internal/task"
)

// Next returns the occurrence that follows d under rule iv. It returns d
// unchanged for an absent date, a rule of none, or an invalid rule.
//
// Month and year steps keep the day of month when it exists. When it does not
// (Jan 31 -> Feb, Feb 29 -> a common year) the day is decremented until the
// date is legal. The clamped day is carried into later steps, so Jan 31 steps
// to Feb 28 and then to Mar 28.
func Next(d task.Date, iv task.Interval) task.Date {
	if d.IsZero() || iv.Validate() != nil {
		return d
	}
	switch iv.Kind() {
	case task.KindDays:
		return d.AddDays(iv.DayCount())
	case task.KindMonth:
		year, month := d.Year(), d.Month()+1
		if month > time.December {
			year, month = year+1, time.January
		}
		return clamp(year, month, d.Day())
	case task.KindYear:
		return clamp(d.Year()+1, d.Month(), d.Day())
	default:
		return d
	}
}

// clamp walks day down until year-month-day exists.
func clamp(year int, month time.Month, day int) task.Date {
	for day > 1 && !task.ValidDate(year, month, day) {
		day--
	}
	return task.NewDate(year, month, day)
}

// CatchUp applies Next until the date is no longer strictly before today.
// A date that lands on today is left there. See Advance for the cases where
// d is returned unchanged.
func CatchUp(d task.Date, iv task.Interval, today task.Date) task.Date {
	next, _ := Advance(d, iv, today)
	return next
}

// Advance is CatchUp that also reports whether the date could be moved. When
// the next occurrence would fall after task.MaxStorableYear, or a step fails
// to move forward, d is returned unchanged with ok false.
func Advance(d task.Date, iv task.Interval, today task.Date) (task.Date, bool) {
	if d.IsZero() || iv.IsZero() || iv.Validate() != nil {
		return d, true
	}
	cur := d
	for cur.Before(today) {
		next := Next(cur, iv)
		if !next.After(cur) || next.Year() > task.MaxStorableYear {
			return d, false
		}
		cur = next
	}
	return cur, true
}

// CatchUpAll advances every recurring task in tasks in place. It returns the
// indices whose date moved and the indices left alone because their next
// occurrence cannot be stored.
func CatchUpAll(tasks []task.Task, today task.Date) (advanced, held []int) {
	for i := range tasks {
		if !tasks[i].IsRecurring() {
			continue
		}
		next, ok := Advance(tasks[i].Date, tasks[i].Interval, today)
		if !ok {
			held = append(held, i)
			continue
		}
		if !next.Equal(tasks[i].Date) {
			tasks[i].Date = next
			advanced = append(advanced, i)
		}
	}
	return advanced, held
}
