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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/welbornprod/timedop/golibs/errors"
)

func TestBuildConfigDefaults(t *testing.T) {
	cfg, err := BuildConfig("")
	require.Nil(t, err)
	assert.Equal(t, "Elapsed: ", cfg.Label)
	assert.Equal(t, "%0.2fs", cfg.Format)
	assert.Equal(t, 2.0, *cfg.TimeoutSec)
	assert.Equal(t, []int64{5000000, 100000000000}, cfg.Values)
	assert.Equal(t, int64(2), cfg.Increment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.Timeout())
}

func TestBuildConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "demo.yaml")
	require.Nil(t, os.WriteFile(fn, []byte(`
label: "Took: "
timeout: 0.5
values: [1000]
`), 0644))

	cfg, err := BuildConfig(fn)
	require.Nil(t, err)
	assert.Equal(t, "Took: ", cfg.Label)
	assert.Equal(t, 0.5, *cfg.TimeoutSec)
	assert.Equal(t, 500*time.Millisecond, cfg.Timeout())
	assert.Equal(t, []int64{1000}, cfg.Values)
	// the fields that the file doesn't mention keep the defaults
	assert.Equal(t, int64(2), cfg.Increment)
	assert.Equal(t, "%0.2fs", cfg.Format)
}

func TestBuildConfigFromEnv(t *testing.T) {
	t.Setenv("TIMEDOP_TIMEOUT", "0.25")
	t.Setenv("TIMEDOP_LABEL", "Spent: ")
	t.Setenv("TIMEDOP_INCREMENT", "5")

	cfg, err := BuildConfig("")
	require.Nil(t, err)
	assert.Equal(t, 0.25, *cfg.TimeoutSec)
	assert.Equal(t, "Spent: ", cfg.Label)
	assert.Equal(t, int64(5), cfg.Increment)
}

func TestBuildConfigEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "demo.json")
	require.Nil(t, os.WriteFile(fn, []byte(`{"timeout": 0.5, "label": "File: "}`), 0644))
	t.Setenv("TIMEDOP_TIMEOUT", "1.5")

	cfg, err := BuildConfig(fn)
	require.Nil(t, err)
	assert.Equal(t, 1.5, *cfg.TimeoutSec)
	assert.Equal(t, "File: ", cfg.Label)
}

func TestBuildConfigBadFile(t *testing.T) {
	_, err := BuildConfig(filepath.Join(t.TempDir(), "doesNotExist.yaml"))
	assert.True(t, errors.Is(err, errors.ErrNotExist))
}

func TestConfigTimeoutDefault(t *testing.T) {
	cfg := Config{}
	assert.Equal(t, 4*time.Second, cfg.Timeout())
}

func TestConfigString(t *testing.T) {
	cfg := getDefaultConfig()
	s := cfg.String()
	assert.Contains(t, s, `"Label"`)
	assert.Contains(t, s, `"timeout"`)
}
