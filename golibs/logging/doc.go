// Copyright 2023 The acquirecloud Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
/*
Package logging contains an abstract logging interface and methods that may be
used with any logging engine. The loggers are produced by the package-level
NewLogger() function, and the engine behind it may be replaced via SetConfig(),
so the library code never depends on a concrete logging solution. The default
engine prints leveled messages to stderr.
*/
package logging
