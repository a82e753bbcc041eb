package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	choreserrors "github.com/abatilo/chores/internal/errors"
	"github.com/abatilo/chores/internal/logging"
	"github.com/abatilo/chores/internal/recur"
	"github.com/abatilo/chores/internal/task"
)

// Store reads and rewrites a task list kept in a single file.
//
// Nothing is cached between calls: every operation loads the whole file,
// advances overdue recurring tasks, applies its change and writes the whole
// list back. Concurrent use of one file by several processes can lose
// updates.
type Store struct {
	path   string
	codec  Codec
	now    func() time.Time
	logger *log.Logger

	// advancedOnOpen is the number of tasks moved by the pass in Open.
	advancedOnOpen int
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the source of "today" used by the catch-up pass.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// WithLogger sets the logger for catch-up and decode diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithCodec overrides the codec picked from the file extension.
func WithCodec(codec Codec) Option {
	return func(s *Store) {
		s.codec = codec
	}
}

// Open returns a Store over an existing file and runs one catch-up pass.
func Open(path string, opts ...Option) (*Store, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && info.IsDir()) {
		return nil, choreserrors.NotFoundError{Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	s := &Store{
		path:   path,
		codec:  CodecFor(path),
		now:    time.Now,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.advancedOnOpen, err = s.CatchUp(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// AdvancedOnOpen returns how many recurring tasks the catch-up pass in Open
// moved forward.
func (s *Store) AdvancedOnOpen() int {
	return s.advancedOnOpen
}

// snapshot is the result of one load.
type snapshot struct {
	tasks    []task.Task
	advanced []int
	// decoded is false when the file was empty or unreadable as a task list.
	decoded bool
}

// load reads the file and advances overdue recurring tasks in memory.
//
// Content that does not decode as a task list is treated as an empty list.
// This keeps a freshly created empty file usable, but it also hides a
// corrupted file; the next save replaces it. Use Check to see what is wrong.
func (s *Store) load() (snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return snapshot{}, choreserrors.NotFoundError{Path: s.path}
	}
	if err != nil {
		return snapshot{}, fmt.Errorf("read %s: %w", s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return snapshot{}, nil
	}

	tasks, err := s.codec.Decode(data)
	if err != nil {
		s.logger.Warn("task file is not a valid task list, treating it as empty", "path", s.path, "err", err)
		return snapshot{}, nil
	}

	today := task.DateOf(s.now())
	advanced, held := recur.CatchUpAll(tasks, today)
	for _, i := range advanced {
		s.logger.Debug("advanced recurring task", "index", i, "date", tasks[i].Date, "interval", tasks[i].Interval)
	}
	for _, i := range held {
		s.logger.Warn("recurring task not advanced: next date is past the storable range",
			"index", i, "date", tasks[i].Date, "interval", tasks[i].Interval, "max_year", task.MaxStorableYear)
	}

	return snapshot{tasks: tasks, advanced: advanced, decoded: true}, nil
}

// save rewrites the whole file with tasks.
func (s *Store) save(tasks []task.Task) error {
	data, err := s.codec.Encode(tasks)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}
	//nolint:gosec // G306: 0644 is appropriate for a user-readable task file
	if err = os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}

// update runs one load-mutate-save cycle. fn sees the caught-up list and
// returns the list to persist.
func (s *Store) update(fn func([]task.Task) ([]task.Task, error)) error {
	snap, err := s.load()
	if err != nil {
		return err
	}
	tasks, err := fn(snap.tasks)
	if err != nil {
		return err
	}
	return s.save(tasks)
}

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return choreserrors.IndexError{Index: i, Len: n}
	}
	return nil
}

// List returns all tasks in order, with overdue recurring dates advanced.
// An empty or undecodable file yields an empty list.
func (s *Store) List() ([]task.Task, error) {
	snap, err := s.load()
	if err != nil {
		return nil, err
	}
	if snap.tasks == nil {
		return []task.Task{}, nil
	}
	return snap.tasks, nil
}

// Get returns the task at index i.
func (s *Store) Get(i int) (task.Task, error) {
	tasks, err := s.List()
	if err != nil {
		return task.Task{}, err
	}
	if err = checkIndex(i, len(tasks)); err != nil {
		return task.Task{}, err
	}
	return tasks[i], nil
}

// Add appends t and returns its index.
func (s *Store) Add(t task.Task) (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	var index int
	err := s.update(func(tasks []task.Task) ([]task.Task, error) {
		tasks = append(tasks, t)
		index = len(tasks) - 1
		return tasks, nil
	})
	if err != nil {
		return 0, err
	}
	s.logger.Debug("added task", "index", index)
	return index, nil
}

// Delete removes the task at index i. Later tasks shift down by one.
func (s *Store) Delete(i int) error {
	return s.update(func(tasks []task.Task) ([]task.Task, error) {
		if err := checkIndex(i, len(tasks)); err != nil {
			return nil, err
		}
		return slices.Delete(tasks, i, i+1), nil
	})
}

// Edit overwrites the fields supplied in p on the task at index i.
func (s *Store) Edit(i int, p task.Patch) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.update(func(tasks []task.Task) ([]task.Task, error) {
		if err := checkIndex(i, len(tasks)); err != nil {
			return nil, err
		}
		tasks[i] = p.Apply(tasks[i])
		return tasks, nil
	})
}

// Swap exchanges the tasks at indices a and b.
func (s *Store) Swap(a, b int) error {
	return s.update(func(tasks []task.Task) ([]task.Task, error) {
		if err := checkIndex(a, len(tasks)); err != nil {
			return nil, err
		}
		if err := checkIndex(b, len(tasks)); err != nil {
			return nil, err
		}
		tasks[a], tasks[b] = tasks[b], tasks[a]
		return tasks, nil
	})
}

// Move takes the task at index from and reinserts it at index to. Tasks
// between the two positions shift by one.
func (s *Store) Move(from, to int) error {
	return s.update(func(tasks []task.Task) ([]task.Task, error) {
		if err := checkIndex(from, len(tasks)); err != nil {
			return nil, err
		}
		if err := checkIndex(to, len(tasks)); err != nil {
			return nil, err
		}
		t := tasks[from]
		tasks = slices.Delete(tasks, from, from+1)
		return slices.Insert(tasks, to, t), nil
	})
}

// ToggleDone flips the done flag of the task at index i and returns the new value.
func (s *Store) ToggleDone(i int) (bool, error) {
	var done bool
	err := s.update(func(tasks []task.Task) ([]task.Task, error) {
		if err := checkIndex(i, len(tasks)); err != nil {
			return nil, err
		}
		tasks[i].Done = !tasks[i].Done
		done = tasks[i].Done
		return tasks, nil
	})
	return done, err
}

// RemoveDone deletes every task marked done and returns how many were removed.
func (s *Store) RemoveDone() (int, error) {
	var removed int
	err := s.update(func(tasks []task.Task) ([]task.Task, error) {
		before := len(tasks)
		tasks = slices.DeleteFunc(tasks, func(t task.Task) bool { return t.Done })
		removed = before - len(tasks)
		return tasks, nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// CatchUp advances overdue recurring tasks and persists the result. It
// returns how many tasks moved. A file that does not decode is left alone.
func (s *Store) CatchUp() (int, error) {
	snap, err := s.load()
	if err != nil {
		return 0, err
	}
	if !snap.decoded {
		return 0, nil
	}
	if err = s.save(snap.tasks); err != nil {
		return 0, err
	}
	return len(snap.advanced), nil
}
