// Package task persists pending Pomodoro tasks in the flat tasks table.
//
// Every task carries a generated uuid; edit, delete, and complete
// address rows by id rather than by list position, so reordering or
// concurrent actions cannot hit the wrong row. Mutations are row-level
// operations serialized inside the store: each one reloads the table,
// applies the change, and rewrites atomically under the store mutex.
package task

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/roach88/focustrack/internal/apperr"
	"github.com/roach88/focustrack/internal/table"
)

// Durations are the three allowed work-interval lengths in minutes.
// The input surface enforces membership; the store accepts what it is given.
var Durations = []int{25, 18, 52}

var columns = []table.Column{
	table.Col("id"),
	table.Col("username"),
	table.Col("task_name"),
	table.NumCol("duration"),
	table.Col("completed"),
}

// Task is one pending task row.
type Task struct {
	ID        string
	Username  string
	Name      string
	Duration  int
	Completed bool
}

// CompletionLog receives exactly one record when a task is completed.
// Implemented by history.Log.
type CompletionLog interface {
	Append(username, taskName string) error
}

// Store provides row-level CRUD over the pending tasks table.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store backed by the tasks table at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// ValidDuration reports whether d is one of the allowed lengths.
func ValidDuration(d int) bool {
	for _, allowed := range Durations {
		if d == allowed {
			return true
		}
	}
	return false
}

// ListForUser returns the user's pending tasks in storage order.
// Rows read from a pre-upgrade table without an id column are healed
// with a fresh uuid and persisted back.
func (s *Store) ListForUser(username string) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.load()
	if err != nil {
		return nil, err
	}

	var tasks []Task
	for _, row := range rows {
		if row["username"] != username {
			continue
		}
		tasks = append(tasks, fromRow(row))
	}
	return tasks, nil
}

// Add appends a new pending task for the user and returns it with its
// generated id.
func (s *Store) Add(username, name string, duration int) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.load()
	if err != nil {
		return Task{}, err
	}

	t := Task{
		ID:       uuid.NewString(),
		Username: username,
		Name:     name,
		Duration: duration,
	}
	if err := s.save(append(rows, toRow(t))); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.load()
	if err != nil {
		return Task{}, err
	}
	for _, row := range rows {
		if row["id"] == id {
			return fromRow(row), nil
		}
	}
	return Task{}, apperr.NewTaskNotFound(id)
}

// Update rewrites the name and duration of the task with the given id,
// preserving its owner and completed flag.
func (s *Store) Update(id, name string, duration int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.load()
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row["id"] != id {
			continue
		}
		row["task_name"] = name
		row["duration"] = strconv.Itoa(duration)
		return s.save(rows)
	}
	return apperr.NewTaskNotFound(id)
}

// Delete removes the task with the given id from the pending set.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.load()
	if err != nil {
		return err
	}
	for i, row := range rows {
		if row["id"] == id {
			rows = append(rows[:i], rows[i+1:]...)
			return s.save(rows)
		}
	}
	return apperr.NewTaskNotFound(id)
}

// Complete removes the task from the pending set and appends exactly
// one record to the completion log. A task is never present in both
// tables: the log append happens first, so a write failure on the
// rewrite leaves the task pending alongside its record rather than
// silently losing the completion.
func (s *Store) Complete(id string, log CompletionLog) (Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.load()
	if err != nil {
		return Task{}, err
	}
	for i, row := range rows {
		if row["id"] != id {
			continue
		}
		done := fromRow(row)
		if err := log.Append(done.Username, done.Name); err != nil {
			return Task{}, err
		}
		rows = append(rows[:i], rows[i+1:]...)
		if err := s.save(rows); err != nil {
			return Task{}, err
		}
		return done, nil
	}
	return Task{}, apperr.NewTaskNotFound(id)
}

// load reads the table and heals rows missing an id.
func (s *Store) load() ([]table.Row, error) {
	rows, err := table.Read(s.path, columns)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	healed := false
	for _, row := range rows {
		if row["id"] == "" {
			row["id"] = uuid.NewString()
			healed = true
		}
	}
	if healed {
		if err := s.save(rows); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

func (s *Store) save(rows []table.Row) error {
	if err := table.Write(s.path, columns, rows); err != nil {
		return apperr.NewStoreWrite(err)
	}
	return nil
}

func toRow(t Task) table.Row {
	return table.Row{
		"id":        t.ID,
		"username":  t.Username,
		"task_name": t.Name,
		"duration":  strconv.Itoa(t.Duration),
		"completed": strconv.FormatBool(t.Completed),
	}
}

func fromRow(row table.Row) Task {
	duration, _ := strconv.Atoi(row["duration"])
	completed, _ := strconv.ParseBool(row["completed"])
	return Task{
		ID:        row["id"],
		Username:  row["username"],
		Name:      row["task_name"],
		Duration:  duration,
		Completed: completed,
	}
}
