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
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// stdLogger is the default engine: leveled lines in the form
// [HH:MM:SS.micros] LEVEL	name: message
type stdLogger struct {
	writer io.Writer
	name   string
}

var (
	stdMx     sync.Mutex
	stdLevel  = int32(INFO)
	levelTags = map[Level]string{ERROR: "ERROR", WARN: "WARN", INFO: "INFO", DEBUG: "DEBUG", TRACE: "TRACE"}
)

func stdNewLogger(name string) Logger {
	// the messages go to stderr, stdout is left to the application output
	return &stdLogger{writer: os.Stderr, name: name}
}

func stdSetLevel(lvl Level) {
	atomic.StoreInt32(&stdLevel, int32(lvl))
}

func stdGetLevel() Level {
	return Level(atomic.LoadInt32(&stdLevel))
}

func (sl *stdLogger) Warnf(format string, args ...interface{}) {
	sl.logf(WARN, format, args...)
}

func (sl *stdLogger) Infof(format string, args ...interface{}) {
	sl.logf(INFO, format, args...)
}

func (sl *stdLogger) Debugf(format string, args ...interface{}) {
	sl.logf(DEBUG, format, args...)
}

func (sl *stdLogger) Tracef(format string, args ...interface{}) {
	sl.logf(TRACE, format, args...)
}

func (sl *stdLogger) Errorf(format string, args ...interface{}) {
	sl.logf(ERROR, format, args...)
}

func (sl *stdLogger) logf(lvl Level, format string, args ...interface{}) {
	if Level(atomic.LoadInt32(&stdLevel)) < lvl {
		return
	}
	// the line is built aside of the lock, only the write is serialized
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(time.Now().Format("15:04:05.000000"))
	sb.WriteString("] ")
	sb.WriteString(levelTags[lvl])
	sb.WriteByte('\t')
	sb.WriteString(sl.name)
	sb.WriteString(": ")
	fmt.Fprintf(&sb, format, args...)
	sb.WriteByte('\n')

	stdMx.Lock()
	_, _ = io.WriteString(sl.writer, sb.String())
	stdMx.Unlock()
}
