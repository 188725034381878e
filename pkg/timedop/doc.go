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
/*
Package timedop provides two small timing facilities:
  - Stopwatch: measures the wall-clock duration of a block of work. It can be
    used directly with the chainable Start() and Stop() calls, or in the
    scoped form via Do(), which guarantees the measurement ends on any exit
    path from the block.
  - Call(): runs a function on a separate goroutine and bounds how long the
    caller waits for its completion. If the function is not done within the
    timeout, Call() gives up with the *TimedOut error describing the call,
    and the worker goroutine is abandoned, not terminated - it receives a
    cancelled context and may use it to stop early on its own.
*/
package timedop
