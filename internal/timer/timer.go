// Package timer renders the client-side countdown view.
//
// The countdown is pure presentation: the server computes the end-time
// once at Start and emits a self-contained HTML/script snippet that
// ticks against the visitor's wall clock. Nothing here touches the
// stores, and the server never observes expiry.
package timer

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"time"
)

//go:embed countdown.html.tmpl
var countdownTmpl string

var tmpl = template.Must(template.New("countdown").Parse(countdownTmpl))

// LongTaskMinutes is the duration threshold for the long break: tasks
// shorter than this earn a 5-minute break, tasks at or above it a
// 20-minute one.
const LongTaskMinutes = 52

// TimeLayout is the end-time format embedded in the script; it parses
// in the visitor's local zone, matching the server's local clock.
const TimeLayout = "2006-01-02 15:04:05"

// View is the input to one countdown rendering.
type View struct {
	TaskName string
	Duration int // minutes, decides the break length
	End      time.Time
}

// BreakMinutes returns the break length earned by a task of the given
// duration.
func BreakMinutes(duration int) int {
	if duration < LongTaskMinutes {
		return 5
	}
	return 20
}

// EndFor computes the countdown end-time for a task started now.
func EndFor(now time.Time, durationMinutes int) time.Time {
	return now.Add(time.Duration(durationMinutes) * time.Minute)
}

// Render writes the countdown snippet for v to w.
//
// The emitted script ticks once per second: while remaining time is
// positive it shows minutes and seconds, at zero it shows "Time's up!"
// and reveals the Start Break button, which runs a second countdown of
// BreakMinutes ending in "Break is over!".
func Render(w io.Writer, v View) error {
	// BreakMinutes is typed template.JS so the script gets the bare
	// number; the default JS escaper pads numeric values with spaces.
	data := struct {
		TaskName     string
		End          string
		BreakMinutes template.JS
	}{
		TaskName:     v.TaskName,
		End:          v.End.Format(TimeLayout),
		BreakMinutes: template.JS(strconv.Itoa(BreakMinutes(v.Duration))),
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("render countdown: %w", err)
	}
	return nil
}
