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

package main

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/welbornprod/timedop/golibs/cast"
	context2 "github.com/welbornprod/timedop/golibs/context"
	"github.com/welbornprod/timedop/golibs/logging"
	"github.com/welbornprod/timedop/pkg/demo"
	"github.com/welbornprod/timedop/pkg/version"
)

var (
	cfgFile    string
	timeoutSec float64
	logLevel   string
	showVer    bool
)

var rootCmd = &cobra.Command{
	Use:   "timedop",
	Short: "The timedop library walk-through",
	Long: `timedop demonstrates the timedop library: the basic, the scoped and the
nested stopwatch measurements, then the bounded calls of a busy-work function,
where an oversized value deliberately times out.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "the demo config file (JSON or YAML)")
	rootCmd.Flags().Float64Var(&timeoutSec, "timeout", 0, "the bounded-call timeout in seconds, overrides the config value")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "the logging verbosity: error, warn, info, debug or trace")
	rootCmd.Flags().BoolVar(&showVer, "version", false, "print the version and exit")
}

func run(cmd *cobra.Command, _ []string) error {
	if showVer {
		fmt.Println(version.BuildVersionString())
		return nil
	}

	cfg, err := demo.BuildConfig(cfgFile)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("timeout") {
		cfg.TimeoutSec = cast.Ptr(timeoutSec)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	lvl, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logging.SetLevel(lvl)

	ctx := context2.NewSignalsContext(os.Interrupt, syscall.SIGTERM)
	return demo.Run(ctx, cfg)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
