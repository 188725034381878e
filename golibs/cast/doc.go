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
Package cast contains utility functions for turning values to the pointers to
their types and back. The casting is useful when it needs to distinguish whether
a value was passed at all from the default value (in configuration structures
unmarshalled from JSON, for example). In this case the target golang structures
may use pointers to the types instead of the concrete types, so a nil pointer
means "not provided", and the cast.Value() call turns it to the default needed.
*/
package cast
