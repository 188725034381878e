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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testClock struct {
	now time.Time
}

func (tc *testClock) Now() time.Time { return tc.now }

func TestStopwatchChain(t *testing.T) {
	d := 10 * time.Millisecond
	elapsed := New("").Start().Sleep(d).Stop().Elapsed()
	assert.True(t, elapsed >= d)
	assert.True(t, elapsed < time.Minute)
}

func TestStopwatchNeverStarted(t *testing.T) {
	sw := New("Elapsed: ")
	assert.Equal(t, time.Duration(0), sw.Elapsed())
	assert.Equal(t, 0.0, sw.Seconds())
	assert.Equal(t, "Elapsed: 0", sw.String())
}

func TestStopwatchStopWithoutStart(t *testing.T) {
	sw := New("t: ").Stop()
	assert.Equal(t, time.Duration(0), sw.Elapsed())
	assert.Equal(t, "t: 0", sw.String())
}

func TestStopwatchStillRunning(t *testing.T) {
	tc := &testClock{now: time.Unix(1000, 0)}
	sw := New("")
	sw.clock = tc
	sw.Start()

	tc.now = tc.now.Add(100 * time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, sw.Elapsed())
	tc.now = tc.now.Add(150 * time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, sw.Elapsed())
	// Elapsed() must not stop the measurement
	assert.True(t, sw.stopAt.IsZero())

	sw.Stop()
	tc.now = tc.now.Add(time.Hour)
	assert.Equal(t, 250*time.Millisecond, sw.Elapsed())
}

func TestStopwatchRestart(t *testing.T) {
	tc := &testClock{now: time.Unix(1000, 0)}
	sw := New("")
	sw.clock = tc

	sw.Start()
	tc.now = tc.now.Add(time.Second)
	sw.Stop()
	assert.Equal(t, time.Second, sw.Elapsed())

	sw.Start()
	assert.True(t, sw.stopAt.IsZero())
	tc.now = tc.now.Add(300 * time.Millisecond)
	sw.Stop()
	assert.Equal(t, 300*time.Millisecond, sw.Elapsed())
}

func TestStopwatchString(t *testing.T) {
	tc := &testClock{now: time.Unix(1000, 0)}
	sw := New("Elapsed: ")
	sw.clock = tc
	sw.Start()
	tc.now = tc.now.Add(240 * time.Millisecond)
	sw.Stop()

	assert.Equal(t, "Elapsed: 0.24", sw.String())
	assert.Equal(t, "Elapsed: 0.2400", sw.SetFormat("%0.4f").String())
	assert.Equal(t, "Elapsed: 0.24s", sw.SetFormat("%0.2fs").String())
}

func TestStopwatchSetFormat(t *testing.T) {
	tc := &testClock{now: time.Unix(1000, 0)}
	sw := New("")
	sw.clock = tc
	sw.Start()
	tc.now = tc.now.Add(time.Second)
	sw.Stop()

	// SetFormat changes the rendering only, never the elapsed value
	before := sw.Elapsed()
	sw.SetFormat("%.1f seconds")
	assert.Equal(t, before, sw.Elapsed())
	assert.Equal(t, "1.0 seconds", sw.String())

	// the broken templates are ignored
	for _, bad := range []string{"", "%d", "%s", "no verb at all"} {
		sw.SetFormat(bad)
		assert.Equal(t, "%.1f seconds", sw.format, "the format %q must be rejected", bad)
	}
	for _, good := range []string{"%v", "%0.2f", "%.3f sec"} {
		sw.SetFormat(good)
		assert.Equal(t, good, sw.format)
	}
}

func TestStopwatchDo(t *testing.T) {
	sw := New("")
	sw.Do(func() {
		time.Sleep(10 * time.Millisecond)
	})
	assert.True(t, sw.Elapsed() >= 10*time.Millisecond)
	assert.False(t, sw.stopAt.IsZero())
}

func TestStopwatchDoEquivalence(t *testing.T) {
	work := func() { time.Sleep(20 * time.Millisecond) }

	manual := New("").Start()
	work()
	manual.Stop()

	scoped := New("").Do(work)

	assert.True(t, manual.Elapsed() >= 20*time.Millisecond)
	assert.True(t, scoped.Elapsed() >= 20*time.Millisecond)
	assert.True(t, manual.Elapsed() < time.Second)
	assert.True(t, scoped.Elapsed() < time.Second)
}

func TestStopwatchDoPanics(t *testing.T) {
	sw := New("")
	assert.PanicsWithValue(t, "oops", func() {
		sw.Do(func() {
			time.Sleep(10 * time.Millisecond)
			panic("oops")
		})
	})
	// the measurement still ends when the block panics
	assert.False(t, sw.stopAt.IsZero())
	assert.True(t, sw.Elapsed() >= 10*time.Millisecond)
}

func TestStopwatchSleep(t *testing.T) {
	start := time.Now()
	sw := New("").Sleep(10 * time.Millisecond)
	assert.True(t, time.Since(start) >= 10*time.Millisecond)
	// Sleep is unrelated to the timer state
	assert.True(t, sw.startAt.IsZero())
	assert.True(t, sw.stopAt.IsZero())
}
