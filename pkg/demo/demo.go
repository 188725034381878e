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

// Package demo walks through the timedop library usage the way a first-time
// reader would: the basic stopwatch, the scoped and the nested measurements,
// and finally the bounded calls, where the last one deliberately times out.
package demo

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/welbornprod/timedop/golibs/errors"
	"github.com/welbornprod/timedop/golibs/logging"
	"github.com/welbornprod/timedop/pkg/timedop"
	"github.com/welbornprod/timedop/pkg/version"
)

// busyChoices are the loop bounds picked randomly when a scenario asks for
// "some" work
var busyChoices = []int64{4000000, 5000000, 7000000}

// Run executes the whole demo walk-through and writes its output to stdout.
// It returns early with the ctx error if the context is closed between the
// scenarios (SIGINT, for instance).
func Run(ctx context.Context, cfg *Config) error {
	return runTo(ctx, cfg, os.Stdout)
}

func runTo(ctx context.Context, cfg *Config, out io.Writer) error {
	log := logging.NewLogger("demo")
	log.Infof("starting the demo: %s", version.BuildVersionString())
	log.Infof("%s", spew.Sprint(cfg))
	defer log.Infof("the demo is over")

	if cfg.Increment <= 0 {
		return fmt.Errorf("the busy-work increment must be positive, but got %d: %w", cfg.Increment, errors.ErrInvalid)
	}

	for _, scenario := range []func(context.Context, *Config, io.Writer) error{
		basicScenario,
		scopedScenario,
		nestedScenario,
		timedCallScenario,
	} {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := scenario(ctx, cfg, out); err != nil {
			return err
		}
	}
	return nil
}

// basicScenario measures one busy-work run with the manual Start/Stop pair
func basicScenario(ctx context.Context, cfg *Config, out io.Writer) error {
	t := timedop.New(cfg.Label).SetFormat(cfg.Format).Start()
	fmt.Fprintln(out, "Simulating some long operation.")
	_, _ = busyWork(ctx, 0, 1)
	fmt.Fprintln(out, t.Stop())
	return nil
}

// scopedScenario runs a few busy-work rounds within one scoped measurement,
// peeking at the still-running stopwatch after every round
func scopedScenario(ctx context.Context, cfg *Config, out io.Writer) error {
	fmt.Fprintln(out)
	t := timedop.New(cfg.Label)
	t.Do(func() {
		for i := 1; i <= 3; i++ {
			_, _ = busyWork(ctx, 0, 1)
			fmt.Fprintf(out, "%d: %s\n", i, t)
		}
	})
	return nil
}

// nestedScenario measures every sub operation on its own stopwatch while the
// total one keeps running
func nestedScenario(ctx context.Context, cfg *Config, out io.Writer) error {
	fmt.Fprintln(out)
	total := timedop.New("Total: ")
	total.Do(func() {
		for i := 1; i <= 3; i++ {
			sub := timedop.New(fmt.Sprintf("Sub Operation %d: ", i))
			sub.Do(func() {
				_, _ = busyWork(ctx, 0, 1)
			})
			fmt.Fprintln(out, sub)
		}
		fmt.Fprintln(out, total)
	})
	return nil
}

// timedCallScenario runs the busy work through timedop.Call for every
// configured value. The oversized values hit the deadline and render the red
// TimedOut description instead of the result.
func timedCallScenario(ctx context.Context, cfg *Config, out io.Writer) error {
	log := logging.NewLogger("demo")
	for _, value := range cfg.Values {
		fmt.Fprintln(out)
		res, err := timedop.Call(ctx, func(ctx context.Context) (int64, error) {
			return busyWork(ctx, value, cfg.Increment)
		},
			timedop.WithName("busyWork"),
			timedop.WithArgs(value),
			timedop.WithKwargs(map[string]any{"increment": cfg.Increment}),
			timedop.WithTimeout(cfg.Timeout()),
		)
		switch {
		case err == nil:
			fmt.Fprintln(out, color.GreenString("A timed call returned: %d", res))
		case errors.Is(err, errors.ErrTimedOut):
			fmt.Fprintln(out, color.RedString("%s", err))
			log.Debugf("the worker was abandoned: %s", err)
		default:
			return err
		}
	}
	return nil
}

// busyWork spins a counter up to stop by the increment steps and returns the
// counter. Zero stop means "some" amount of work, picked randomly. The loop
// checks the ctx once in a while, so an abandoned run releases the CPU soon
// after the caller gave up waiting.
func busyWork(ctx context.Context, stop, increment int64) (int64, error) {
	if stop == 0 {
		stop = busyChoices[rand.Intn(len(busyChoices))]
	}
	var start int64
	for start < stop {
		start += increment
		if start&0xFFFFF < increment && ctx.Err() != nil {
			return start, ctx.Err()
		}
	}
	return start, nil
}
