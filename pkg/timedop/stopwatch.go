// Copyright 2024 The TimedOp Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package timedop

import (
	"fmt"
	"strings"
	"time"

	"oss.indeed.com/go/libtime"
)

// DefaultFormat is the template applied to the elapsed seconds when a
// Stopwatch is rendered as text
const DefaultFormat = "%0.2f"

type (
	// clock is the source of the current time for a Stopwatch
	clock interface {
		Now() time.Time
	}

	// Stopwatch measures the wall-clock duration of a block of work. All the
	// mutating methods return the same instance, so the calls may be chained:
	//
	//	sw := timedop.New("Elapsed: ").Start()
	//	doSomeWork()
	//	fmt.Println(sw.Stop()) // prints something like "Elapsed: 0.24"
	//
	// A Stopwatch is not safe for concurrent use.
	Stopwatch struct {
		label   string
		format  string
		startAt time.Time
		stopAt  time.Time
		clock   clock
	}
)

// New creates a Stopwatch with the label provided and the DefaultFormat. The
// label, which may be empty, is printed before the elapsed value in the text
// form. The new Stopwatch is not running until Start() is called.
func New(label string) *Stopwatch {
	return &Stopwatch{label: label, format: DefaultFormat, clock: libtime.SystemClock()}
}

// Start records the current instant as the measurement beginning, drops the
// previous stop instant, if any, and returns the instance. Calling Start
// again restarts the measurement.
func (sw *Stopwatch) Start() *Stopwatch {
	sw.stopAt = time.Time{}
	sw.startAt = sw.clock.Now()
	return sw
}

// Stop records the current instant as the measurement end and returns the
// instance. Stop without a prior Start is not an error, the elapsed time just
// stays zero then.
func (sw *Stopwatch) Stop() *Stopwatch {
	sw.stopAt = sw.clock.Now()
	return sw
}

// Elapsed returns the duration between the start instant and the stop one. A
// still running Stopwatch (started, but not stopped) is measured against the
// current clock reading, so consecutive calls return growing values. The
// result is zero if the Stopwatch was never started. Elapsed is a pure query,
// it never mutates the state.
func (sw *Stopwatch) Elapsed() time.Duration {
	if sw.startAt.IsZero() {
		return 0
	}
	if sw.stopAt.IsZero() {
		return sw.clock.Now().Sub(sw.startAt)
	}
	return sw.stopAt.Sub(sw.startAt)
}

// Seconds returns Elapsed() as a floating-point number of seconds, the unit
// the format template is applied to
func (sw *Stopwatch) Seconds() float64 {
	return sw.Elapsed().Seconds()
}

// SetFormat replaces the template used to render the elapsed seconds and
// returns the instance. The template must contain one fmt verb applicable to
// float64 ("%0.2f", "%v", "%.1f seconds" etc.), it is checked by a trial
// render. An invalid template is ignored and the current one is kept.
// SetFormat changes the rendering only, never the Elapsed() result.
func (sw *Stopwatch) SetFormat(format string) *Stopwatch {
	if format != "" && !strings.Contains(fmt.Sprintf(format, 1.0), "%!") {
		sw.format = format
	}
	return sw
}

// Sleep blocks the calling goroutine for the duration d and returns the
// instance. It is a pure delegation convenience, the timer state is not
// affected, so New("").Start().Sleep(d).Stop() measures at least d.
func (sw *Stopwatch) Sleep(d time.Duration) *Stopwatch {
	time.Sleep(d)
	return sw
}

// Do measures fn: it starts the Stopwatch, runs fn and stops the Stopwatch on
// any exit path, so the elapsed time covers the whole fn run even if fn
// panics (the panic is not recovered). Do is the scoped equivalent of the
// manual Start() and Stop() pair around the block.
func (sw *Stopwatch) Do(fn func()) *Stopwatch {
	sw.Start()
	defer sw.Stop()
	fn()
	return sw
}

// String implements fmt.Stringer. The result is the label followed by the
// elapsed seconds rendered with the format template, like "Elapsed: 0.24".
// A never-started Stopwatch is rendered as the label followed by "0".
func (sw *Stopwatch) String() string {
	if sw.startAt.IsZero() {
		return sw.label + "0"
	}
	return sw.label + fmt.Sprintf(sw.format, sw.Seconds())
}
