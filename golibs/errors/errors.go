// Copyright 2023 The acquirecloud Authors
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
package errors

import "errors"

var (
	// ErrInvalid is returned when an input parameter doesn't pass the validation
	ErrInvalid = errors.New("invalid value")

	// ErrNotExist is returned when a requested object (a file, for instance) doesn't exist
	ErrNotExist = errors.New("does not exist")

	// ErrClosed is returned when an operation is requested on an object, which is already closed
	ErrClosed = errors.New("closed")

	// ErrTimedOut is returned when an operation could not be completed in the time provided for it
	ErrTimedOut = errors.New("timed out")
)

// Is reports whether any error in err's chain matches target. The function
// behaves like the standard errors.Is(), it exists to let the callers use
// one errors package only.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target. Same as the
// standard errors.As()
func As(err error, target any) bool {
	return errors.As(err, target)
}
