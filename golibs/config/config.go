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
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/welbornprod/timedop/golibs/errors"
)

// LoadJSONAndApply reads a flat JSON object of the key-value pairs from the
// path and applies them to the enricher value the way ApplyEnvVariables does,
// but without a prefix. The keys address the structure fields by the same
// rules (the "_"-separated path, json aliases, case-insensitive), which makes
// the function handy for the mounted override files:
//
//	{"TIMEOUT": "0.5", "LOGLEVEL": "debug"}
//
//	e := config.NewEnricher(demo.Config{})
//	if err := config.LoadJSONAndApply(e, "/mnt/demo/overrides"); err != nil { ...
//
// An empty path is a misuse and fails with the errors.ErrInvalid class, a
// missing or malformed file is reported as an error too.
func LoadJSONAndApply[T any](e Enricher[T], path string) error {
	if path == "" {
		return fmt.Errorf("LoadJSONAndApply() requires a file name, but got the empty path: %w", errors.ErrInvalid)
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read file %s: %w", path, err)
	}
	keyValues := map[string]string{}
	if err = json.Unmarshal(buf, &keyValues); err != nil {
		return fmt.Errorf("could not unmarshal json file(%s): %w", path, err)
	}
	e.ApplyKeyValues("", "_", keyValues)
	return nil
}
