package timer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBreakMinutes(t *testing.T) {
	assert.Equal(t, 5, BreakMinutes(18))
	assert.Equal(t, 5, BreakMinutes(25))
	assert.Equal(t, 20, BreakMinutes(52))
}

func TestEndFor(t *testing.T) {
	start := time.Date(2026, 8, 28, 10, 0, 0, 0, time.Local)
	assert.Equal(t, start.Add(25*time.Minute), EndFor(start, 25))
	assert.Equal(t, start.Add(52*time.Minute), EndFor(start, 52))
}

func TestRender_EmbedsEndTimeAndTask(t *testing.T) {
	var buf bytes.Buffer
	end := time.Date(2026, 8, 28, 10, 25, 0, 0, time.Local)

	err := Render(&buf, View{TaskName: "Write report", Duration: 25, End: end})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Task: Write report")
	assert.Contains(t, out, `new Date("2026-08-28 10:25:00")`)
	assert.Contains(t, out, "var breakDuration = 5;")
	assert.Contains(t, out, "Time's up!")
	assert.Contains(t, out, "Break is over!")
}

func TestRender_LongTaskGetsLongBreak(t *testing.T) {
	var buf bytes.Buffer
	end := time.Date(2026, 8, 28, 10, 52, 0, 0, time.Local)

	err := Render(&buf, View{TaskName: "Deep work", Duration: 52, End: end})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "var breakDuration = 20;")
}

func TestRender_EscapesTaskName(t *testing.T) {
	var buf bytes.Buffer
	end := time.Date(2026, 8, 28, 10, 25, 0, 0, time.Local)

	err := Render(&buf, View{TaskName: "<script>alert(1)</script>", Duration: 25, End: end})
	require.NoError(t, err)

	out := buf.String()
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.True(t, strings.Contains(out, "&lt;script&gt;"), "task name is HTML-escaped")
}

func TestRender_Golden(t *testing.T) {
	g := goldie.New(t)
	end := time.Date(2026, 8, 28, 10, 25, 0, 0, time.Local)

	var short bytes.Buffer
	require.NoError(t, Render(&short, View{TaskName: "Write report", Duration: 25, End: end}))
	g.Assert(t, "countdown_short_break", short.Bytes())

	var long bytes.Buffer
	require.NoError(t, Render(&long, View{TaskName: "Deep work", Duration: 52, End: end.Add(27 * time.Minute)}))
	g.Assert(t, "countdown_long_break", long.Bytes())
}
