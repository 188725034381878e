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

// Package version holds the build information injected via ldflags:
//
//	go build -ldflags "-X github.com/welbornprod/timedop/pkg/version.Version=1.2.3 \
//	  -X github.com/welbornprod/timedop/pkg/version.GitCommit=$(git rev-parse --short HEAD)"
package version

var (
	// Version is the semantic version of the build
	Version = "0.0.7"

	// GitCommit is the git commit hash the binary was built from, empty for
	// the local builds
	GitCommit = ""
)

// BuildVersionString returns the one-line version banner
func BuildVersionString() string {
	s := "TimedOp v. " + Version
	if GitCommit != "" {
		s += " (" + GitCommit + ")"
	}
	return s
}
