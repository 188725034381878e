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
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/welbornprod/timedop/golibs/errors"
)

// TimedOut is returned by Call() when the wait deadline elapsed before the
// function completed. It carries the full call context for the diagnostics:
// the function display name, the arguments the call was made with, the
// timeout value and the Formatted description combining all of the above.
// TimedOut matches the errors.ErrTimedOut class, so the callers may test it
// with errors.Is(err, errors.ErrTimedOut).
type TimedOut struct {
	// Name is the display name of the function that timed out
	Name string
	// Args are the positional arguments of the call, as provided by WithArgs
	Args []any
	// Kwargs are the named arguments of the call, as provided by WithKwargs
	Kwargs map[string]any
	// Timeout is the wait deadline that elapsed
	Timeout time.Duration
	// Formatted is the precomputed human-readable description of the call in
	// the form "name(arg1, arg2, key1=val1), 0.01 seconds"
	Formatted string
}

func newTimedOut(name string, args []any, kwargs map[string]any, timeout time.Duration) *TimedOut {
	return &TimedOut{
		Name:      name,
		Args:      args,
		Kwargs:    kwargs,
		Timeout:   timeout,
		Formatted: formatCall(name, args, kwargs, timeout),
	}
}

// Error implements the error interface
func (e *TimedOut) Error() string {
	return "operation timed out: " + e.Formatted
}

// Is makes every *TimedOut match the errors.ErrTimedOut class
func (e *TimedOut) Is(target error) bool {
	return target == errors.ErrTimedOut
}

// formatCall builds the call description like "busyWork(100000000000,
// increment=2), 0.01 seconds". The named arguments are rendered in the sorted
// key order to keep the text stable, the timeout is rendered as a plain
// number of seconds.
func formatCall(name string, args []any, kwargs map[string]any, timeout time.Duration) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v", a)
	}
	keys := make([]string, 0, len(kwargs))
	for k := range kwargs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for i, k := range keys {
		if i > 0 || len(args) > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%v", k, kwargs[k])
	}
	sb.WriteString("), ")
	sb.WriteString(strconv.FormatFloat(timeout.Seconds(), 'f', -1, 64))
	sb.WriteString(" seconds")
	return sb.String()
}
