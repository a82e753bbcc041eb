package task

// Task is one entry of the task list. Tasks have no identity of their own:
// callers address them by position in the list.
type Task struct {
	Text     string
	Date     Date
	Interval Interval
	Done     bool
}

// IsRecurring reports whether the task has both a due date and a rule.
// A rule without a date is inert.
func (t Task) IsRecurring() bool {
	return !t.Date.IsZero() && !t.Interval.IsZero()
}

// Validate checks every field of t.
func (t Task) Validate() error {
	if err := t.Date.validate(); err != nil {
		return err
	}
	return t.Interval.Validate()
}

// Patch is a partial update. A nil field is left untouched; a pointer to the
// zero value ("" text, zero Date, zero Interval) clears the field.
type Patch struct {
	Text     *string
	Date     *Date
	Interval *Interval
	Done     *bool
}

// IsEmpty reports whether p changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Text == nil && p.Date == nil && p.Interval == nil && p.Done == nil
}

// Validate checks every supplied field of p.
func (p Patch) Validate() error {
	if p.Date != nil {
		if err := p.Date.validate(); err != nil {
			return err
		}
	}
	if p.Interval != nil {
		if err := p.Interval.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Apply returns t with the supplied fields of p overwritten.
func (p Patch) Apply(t Task) Task {
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Interval != nil {
		t.Interval = *p.Interval
	}
	if p.Done != nil {
		t.Done = *p.Done
	}
	return t
}
