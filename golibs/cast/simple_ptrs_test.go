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
package cast

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func TestValue(t *testing.T) {
	now := time.Now()
	assert.Equal(t, time.Time{}, Value[time.Time](nil, time.Time{}))
	assert.Equal(t, now, Value(Ptr(now), time.Time{}))
	assert.Equal(t, 4.0, Value[float64](nil, 4.0))
	assert.Equal(t, 0.01, Value(Ptr(0.01), 4.0))
}

func TestPtr(t *testing.T) {
	p := Ptr("aaa")
	assert.Equal(t, "aaa", *p)
	assert.NotNil(t, Ptr(0))
}
