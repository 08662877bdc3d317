package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/focustrack/internal/task"
)

func TestManager_CreateAndGet(t *testing.T) {
	m := NewManager()

	s := m.Create()
	assert.NotEmpty(t, s.Token)
	assert.False(t, s.LoggedIn)
	assert.Empty(t, s.Username)
	assert.Empty(t, s.EditID)
	assert.Nil(t, s.Timer)

	got, ok := m.Get(s.Token)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = m.Get("unknown-token")
	assert.False(t, ok)
}

func TestSession_LoginIsOneWay(t *testing.T) {
	m := NewManager()
	s := m.Create()

	s.Login("alice")
	assert.True(t, s.LoggedIn)
	assert.Equal(t, "alice", s.Username)
}

func TestSession_EditToggling(t *testing.T) {
	s := &Session{}

	s.StartEdit("task-1")
	assert.Equal(t, "task-1", s.EditID)

	s.EndEdit()
	assert.Empty(t, s.EditID)
}

func TestSession_StartTimerOverwrites(t *testing.T) {
	s := &Session{}
	end := time.Date(2026, 8, 28, 10, 25, 0, 0, time.Local)

	s.StartTimer(task.Task{ID: "a", Name: "Write report", Duration: 25}, end)
	require.NotNil(t, s.Timer)
	assert.Equal(t, "Write report", s.Timer.TaskName)
	assert.Equal(t, end, s.Timer.End)

	later := end.Add(time.Hour)
	s.StartTimer(task.Task{ID: "b", Name: "Review PR", Duration: 52}, later)
	assert.Equal(t, "b", s.Timer.TaskID, "a later Start replaces the running timer")
	assert.Equal(t, later, s.Timer.End)
}

func TestManager_Evict(t *testing.T) {
	m := NewManager()
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	stale := m.Create()
	now = now.Add(2 * time.Hour)
	fresh := m.Create()

	evicted := m.Evict(time.Hour)
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, m.Len())

	_, ok := m.Get(stale.Token)
	assert.False(t, ok)
	_, ok = m.Get(fresh.Token)
	assert.True(t, ok)
}
