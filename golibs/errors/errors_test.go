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

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs(t *testing.T) {
	assert.True(t, Is(fmt.Errorf("fddd %w", ErrNotExist), ErrNotExist))
	assert.True(t, Is(fmt.Errorf("a: %w", fmt.Errorf("b: %w", ErrTimedOut)), ErrTimedOut))
	assert.False(t, Is(fmt.Errorf("fddd %s", ErrNotExist), ErrNotExist))
	assert.False(t, Is(nil, ErrInvalid))
	assert.False(t, Is(ErrClosed, ErrInvalid))
}

type testErr struct {
	code int
}

func (e *testErr) Error() string { return fmt.Sprintf("test error %d", e.code) }

func TestAs(t *testing.T) {
	var te *testErr
	assert.True(t, As(fmt.Errorf("oops: %w", &testErr{code: 42}), &te))
	assert.Equal(t, 42, te.code)
	assert.False(t, As(ErrInvalid, &te))
}
