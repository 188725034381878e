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

package demo

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/welbornprod/timedop/golibs/cast"
	"github.com/welbornprod/timedop/golibs/errors"
)

func TestRunToWalkthrough(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	cfg := &Config{
		Label:      "Elapsed: ",
		Format:     "%0.2fs",
		TimeoutSec: cast.Ptr(0.05),
		Values:     []int64{1000, 100000000000},
		Increment:  2,
	}
	var buf bytes.Buffer
	require.Nil(t, runTo(context.Background(), cfg, &buf))

	out := buf.String()
	assert.Contains(t, out, "Simulating some long operation.")
	assert.Contains(t, out, "1: Elapsed: ")
	assert.Contains(t, out, "Sub Operation 1: ")
	assert.Contains(t, out, "Total: ")
	assert.Contains(t, out, "A timed call returned: 1000")
	assert.Contains(t, out, "operation timed out: busyWork(100000000000, increment=2), 0.05 seconds")
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := runTo(ctx, getDefaultConfig(), &buf)
	assert.Equal(t, context.Canceled, err)
}

func TestRunBadIncrement(t *testing.T) {
	cfg := getDefaultConfig()
	cfg.Increment = -1

	var buf bytes.Buffer
	err := runTo(context.Background(), cfg, &buf)
	assert.True(t, errors.Is(err, errors.ErrInvalid))
	assert.Equal(t, "", buf.String())
}

func TestBusyWork(t *testing.T) {
	res, err := busyWork(context.Background(), 100, 3)
	assert.Nil(t, err)
	assert.Equal(t, int64(102), res)

	res, err = busyWork(context.Background(), 100, 100)
	assert.Nil(t, err)
	assert.Equal(t, int64(100), res)

	// zero stop means "some" work
	res, err = busyWork(context.Background(), 0, 1)
	assert.Nil(t, err)
	assert.True(t, res >= 4000000)
}

func TestBusyWorkCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := busyWork(ctx, 1<<40, 1)
	assert.Equal(t, context.Canceled, err)
}
