// Package history records completed tasks in an append-only table.
package history

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/roach88/focustrack/internal/apperr"
	"github.com/roach88/focustrack/internal/clock"
	"github.com/roach88/focustrack/internal/table"
)

// TimeFormat is the on-disk completion timestamp layout, second precision.
const TimeFormat = "2006-01-02 15:04:05"

var columns = []table.Column{
	table.Col("username"),
	table.Col("task_name"),
	table.Col("completion_date"),
}

// Record is one immutable completion entry.
type Record struct {
	Username    string
	TaskName    string
	CompletedAt time.Time
}

// Log is the append-only completion history. Rows are never updated or
// deleted once written.
type Log struct {
	mu    sync.Mutex
	path  string
	clock clock.Clock
}

// NewLog creates a completion log backed by the table at path, stamping
// records with the given clock.
func NewLog(path string, clk clock.Clock) *Log {
	return &Log{path: path, clock: clk}
}

// Append writes exactly one completion record for the task, stamped
// with the current wall-clock time at second precision.
func (l *Log) Append(username, taskName string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	row := table.Row{
		"username":        username,
		"task_name":       taskName,
		"completion_date": l.clock.Now().Format(TimeFormat),
	}
	if err := table.Append(l.path, columns, row); err != nil {
		return apperr.NewStoreWrite(fmt.Errorf("append completion for %s: %w", username, err))
	}
	return nil
}

// ListForUser returns the user's completion records in storage order.
// Rows with an unparseable completion_date keep a zero CompletedAt
// rather than failing the read.
func (l *Log) ListForUser(username string) ([]Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := table.Read(l.path, columns)
	if err != nil {
		return nil, fmt.Errorf("list completions for %s: %w", username, err)
	}

	var records []Record
	for _, row := range rows {
		if row["username"] != username {
			continue
		}
		at, _ := time.ParseInLocation(TimeFormat, row["completion_date"], time.Local)
		records = append(records, Record{
			Username:    row["username"],
			TaskName:    row["task_name"],
			CompletedAt: at,
		})
	}
	return records, nil
}

// SortNewestFirst orders records by completion time descending, for the
// history table display.
func SortNewestFirst(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CompletedAt.After(records[j].CompletedAt)
	})
}
