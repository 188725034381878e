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
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"time"

	context2 "github.com/welbornprod/timedop/golibs/context"
	"github.com/welbornprod/timedop/golibs/errors"
	"oss.indeed.com/go/libtime"
)

// DefaultTimeout bounds the Call() wait when the WithTimeout option is not
// provided
const DefaultTimeout = 4 * time.Second

type (
	// Func is the unit of work for Call(). The context passed to it is
	// cancelled as soon as the caller stops waiting for the result (the
	// timeout fired or the caller context was closed), and the cancellation
	// cause is available via ctx.Err() then. A cooperative fn may watch the
	// context to stop early, an opaque one is free to ignore it and run to
	// completion (see Call).
	Func[T any] func(ctx context.Context) (T, error)

	// Option tunes one Call() invocation
	Option func(co *callOpts)

	callOpts struct {
		timeout    time.Duration
		timeoutSet bool
		name       string
		args       []any
		kwargs     map[string]any
	}

	// callRes is the completion slot record - either the fn outcome or the
	// panic it raised. It is written at most once, by the worker.
	callRes[T any] struct {
		val      T
		err      error
		panicked bool
		panicVal any
	}
)

// WithTimeout limits the Call() wait to d instead of the DefaultTimeout. The
// value must be positive, Call() fails with the errors.ErrInvalid class
// otherwise.
func WithTimeout(d time.Duration) Option {
	return func(co *callOpts) {
		co.timeout = d
		co.timeoutSet = true
	}
}

// WithName sets the function display name used in the TimedOut description.
// When the option is omitted, the name is derived from the fn pointer via
// runtime, which gives something like "demo.BusyWork" or "demo.Run.func1"
// for closures.
func WithName(name string) Option {
	return func(co *callOpts) {
		co.name = name
	}
}

// WithArgs attaches the positional arguments of the call for the diagnostics.
// Call() never touches the values, they only appear in the TimedOut
// description, so the fn closure still receives its arguments the usual Go
// way.
func WithArgs(args ...any) Option {
	return func(co *callOpts) {
		co.args = args
	}
}

// WithKwargs attaches the named arguments of the call for the diagnostics,
// like WithArgs does for the positional ones
func WithKwargs(kwargs map[string]any) Option {
	return func(co *callOpts) {
		co.kwargs = kwargs
	}
}

// Call runs fn in a separate goroutine and waits for its completion, but not
// longer than the timeout provided with WithTimeout (DefaultTimeout if the
// option is omitted). If fn completes in time, its result and error are
// returned as is, never wrapped, and a panic raised by fn is re-raised in the
// calling goroutine with the original panic value. If the deadline passes
// first, Call returns *TimedOut, which matches the errors.ErrTimedOut class
// and carries the name, the arguments and the timeout of the call (see
// WithName, WithArgs, WithKwargs). Closing the caller ctx while waiting stops
// the wait with ctx.Err().
//
// Call bounds the wait only, never the fn execution: there is no forced
// goroutine termination, so on timeout the worker is abandoned and may keep
// running, its eventual outcome is not observed and its side effects may
// still happen. The context passed to fn is cancelled with the *TimedOut as
// the cause, which gives an interruptible fn a cooperative way out; the
// callers that need bounded resource usage, not just a bounded wait, should
// make their fn watch that context.
//
// A nil fn and a non-positive explicit timeout fail fast with the
// errors.ErrInvalid class before any goroutine is launched.
func Call[T any](ctx context.Context, fn Func[T], opts ...Option) (T, error) {
	var zero T
	if fn == nil {
		return zero, fmt.Errorf("the fn must not be nil: %w", errors.ErrInvalid)
	}
	var co callOpts
	for _, opt := range opts {
		opt(&co)
	}
	if co.timeoutSet && co.timeout <= 0 {
		return zero, fmt.Errorf("the timeout must be positive, but got %v: %w", co.timeout, errors.ErrInvalid)
	}
	if !co.timeoutSet {
		co.timeout = DefaultTimeout
	}
	if co.name == "" {
		co.name = funcName(fn)
	}

	wctx, cancel := context2.WithCancelError(ctx)
	defer cancel(nil)

	// the buffer guarantees the single send of an abandoned worker always
	// completes, so the worker goroutine never leaks
	slot := make(chan callRes[T], 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				slot <- callRes[T]{panicked: true, panicVal: p}
			}
		}()
		var r callRes[T]
		r.val, r.err = fn(wctx)
		slot <- r
	}()

	tmr, stopTmr := libtime.SafeTimer(co.timeout)
	defer stopTmr()

	select {
	case r := <-slot:
		if r.panicked {
			panic(r.panicVal)
		}
		return r.val, r.err
	case <-tmr.C:
		err := newTimedOut(co.name, co.args, co.kwargs, co.timeout)
		cancel(err)
		return zero, err
	case <-ctx.Done():
		cancel(ctx.Err())
		return zero, ctx.Err()
	}
}

// funcName returns the fn symbol name known to runtime, without the package
// path prefix
func funcName(fn any) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return "func"
	}
	name := f.Name()
	if idx := strings.LastIndexByte(name, '/'); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}
