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
	"encoding/json"
	"fmt"
	"time"

	"github.com/welbornprod/timedop/golibs/cast"
	"github.com/welbornprod/timedop/golibs/config"
	"github.com/welbornprod/timedop/golibs/logging"
	"github.com/welbornprod/timedop/pkg/timedop"
)

type (
	// Config defines the demo walk-through settings
	Config struct {
		// Label is printed by the demo stopwatches before the elapsed seconds
		Label string
		// Format is the fmt template applied to the elapsed seconds
		Format string
		// TimeoutSec is the bounded-call timeout in seconds. Nil means the
		// library default (timedop.DefaultTimeout).
		TimeoutSec *float64 `json:"timeout"`
		// Values are the busy-work loop bounds for the timed calls. The
		// oversized last one is expected to time out.
		Values []int64
		// Increment is the busy-work loop step
		Increment int64
		// LogLevel defines the logging verbosity (error, warn, info, debug or trace)
		LogLevel string
	}
)

// getDefaultConfig returns the default demo config, which reproduces the
// original walk-through: two timed calls with the timeout of 2 seconds, where
// the second value is big enough to hit the deadline
func getDefaultConfig() *Config {
	return &Config{
		Label:      "Elapsed: ",
		Format:     "%0.2fs",
		TimeoutSec: cast.Ptr(2.0),
		Values:     []int64{5000000, 100000000000},
		Increment:  2,
		LogLevel:   "info",
	}
}

// BuildConfig constructs the demo config: the defaults, overlaid by the
// cfgFile content (JSON or YAML), overlaid by the TIMEDOP_* environment
// variables
func BuildConfig(cfgFile string) (*Config, error) {
	log := logging.NewLogger("timedop.ConfigBuilder")
	log.Infof("trying to build config. cfgFile=%s", cfgFile)
	e := config.NewEnricher(*getDefaultConfig())
	fe := config.NewEnricher(Config{})
	err := fe.LoadFromFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("could not read data from the file %s: %w", cfgFile, err)
	}
	// overwrite default
	_ = e.ApplyOther(fe)
	_ = e.ApplyEnvVariables("TIMEDOP", "_")
	cfg := e.Value()
	return &cfg, nil
}

// Timeout returns the bounded-call timeout: the configured TimeoutSec, or
// timedop.DefaultTimeout when the value is not provided
func (c *Config) Timeout() time.Duration {
	secs := cast.Value(c.TimeoutSec, timedop.DefaultTimeout.Seconds())
	return time.Duration(secs * float64(time.Second))
}

// String implements fmt.Stringify interface in a pretty console form
func (c *Config) String() string {
	b, _ := json.MarshalIndent(*c, "", "  ")
	return string(b)
}
