package task

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/focustrack/internal/apperr"
	"github.com/roach88/focustrack/internal/clock/clocktest"
	"github.com/roach88/focustrack/internal/history"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "tasks_data.csv"))
}

func TestAdd_ThenList(t *testing.T) {
	s := newTestStore(t)

	added, err := s.Add("alice", "Write report", 25)
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)

	tasks, err := s.ListForUser("alice")
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	assert.Equal(t, added.ID, tasks[0].ID)
	assert.Equal(t, "Write report", tasks[0].Name)
	assert.Equal(t, 25, tasks[0].Duration)
	assert.False(t, tasks[0].Completed)
}

func TestList_ScopedToOwner(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Add("alice", "Hers", 18)
	require.NoError(t, err)
	_, err = s.Add("bob", "His", 52)
	require.NoError(t, err)

	tasks, err := s.ListForUser("alice")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Hers", tasks[0].Name)
}

func TestList_InsertionOrder(t *testing.T) {
	s := newTestStore(t)

	for _, name := range []string{"first", "second", "third"} {
		_, err := s.Add("alice", name, 25)
		require.NoError(t, err)
	}

	tasks, err := s.ListForUser("alice")
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "first", tasks[0].Name)
	assert.Equal(t, "second", tasks[1].Name)
	assert.Equal(t, "third", tasks[2].Name)
}

func TestUpdate_PreservesOwnerAndFlag(t *testing.T) {
	s := newTestStore(t)

	added, err := s.Add("alice", "Write report", 25)
	require.NoError(t, err)

	require.NoError(t, s.Update(added.ID, "Write annual report", 52))

	tasks, err := s.ListForUser("alice")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, added.ID, tasks[0].ID)
	assert.Equal(t, "alice", tasks[0].Username)
	assert.Equal(t, "Write annual report", tasks[0].Name)
	assert.Equal(t, 52, tasks[0].Duration)
	assert.False(t, tasks[0].Completed)
}

func TestUpdate_UnknownID(t *testing.T) {
	s := newTestStore(t)

	err := s.Update("no-such-id", "x", 25)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeTaskNotFound, apperr.CodeOf(err))
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)

	keep, err := s.Add("alice", "keep", 18)
	require.NoError(t, err)
	drop, err := s.Add("alice", "drop", 25)
	require.NoError(t, err)

	require.NoError(t, s.Delete(drop.ID))

	tasks, err := s.ListForUser("alice")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, keep.ID, tasks[0].ID)

	err = s.Delete(drop.ID)
	assert.Equal(t, apperr.CodeTaskNotFound, apperr.CodeOf(err))
}

func TestComplete_MovesRowToLog(t *testing.T) {
	start := time.Date(2026, 8, 28, 14, 0, 0, 0, time.Local)
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "tasks_data.csv"))
	log := history.NewLog(filepath.Join(dir, "completed_tasks.csv"), clocktest.At(start))

	added, err := s.Add("alice", "Write report", 25)
	require.NoError(t, err)

	done, err := s.Complete(added.ID, log)
	require.NoError(t, err)
	assert.Equal(t, "Write report", done.Name)

	tasks, err := s.ListForUser("alice")
	require.NoError(t, err)
	assert.Empty(t, tasks, "completed task leaves the pending set")

	records, err := log.ListForUser("alice")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Write report", records[0].TaskName)
	assert.False(t, records[0].CompletedAt.Before(start), "stamp is at or after the call")
}

func TestComplete_UnknownID(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "tasks_data.csv"))
	log := history.NewLog(filepath.Join(dir, "completed_tasks.csv"), clocktest.At(time.Now()))

	_, err := s.Complete("no-such-id", log)
	assert.Equal(t, apperr.CodeTaskNotFound, apperr.CodeOf(err))
}

func TestLoad_HealsRowsWithoutID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks_data.csv")

	// Table written by the pre-upgrade schema, no id column.
	legacy := "username,task_name,duration,completed\nalice,Write report,25,False\n"
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	s := NewStore(path)
	tasks, err := s.ListForUser("alice")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.NotEmpty(t, tasks[0].ID, "legacy row gets a generated id")
	assert.Equal(t, 25, tasks[0].Duration)

	// The healed id is persisted, not regenerated per read.
	again, err := s.ListForUser("alice")
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, tasks[0].ID, again[0].ID)
}

func TestValidDuration(t *testing.T) {
	assert.True(t, ValidDuration(18))
	assert.True(t, ValidDuration(25))
	assert.True(t, ValidDuration(52))
	assert.False(t, ValidDuration(30))
	assert.False(t, ValidDuration(0))
}
