// Copyright 2025 The OpenCGMES Authors. All rights reserved.
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

// Package clog is the logging facade of the OpenCGMES packages.
//
// Parse-time diagnostics with a source location travel through the
// parser's ErrorHandler; clog carries everything that has no handler in
// scope - profile registry warnings, index finalization, and the debug
// trace of the parser state machine. The library never terminates the
// process, so the facade has no fatal level.
package clog

import (
	"log"
	"os"
	"sync/atomic"
)

// Logger is the backend the facade writes to.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

var current Logger = &stdLogger{l: log.New(os.Stderr, "cimxml: ", log.LstdFlags)}

// SetLogger replaces the logging backend and returns the previous one,
// so callers can restore it.
func SetLogger(l Logger) Logger {
	prev := current
	current = l
	return prev
}

var verbosity int32

// V reports whether debug output at the given level is enabled.
func V(level int) bool {
	return atomic.LoadInt32(&verbosity) >= int32(level)
}

// SetV enables debug output up to the given level. Level 0, the
// default, silences Debugf entirely.
func SetV(level int) {
	atomic.StoreInt32(&verbosity, int32(level))
}

// Debugf traces parser and store internals. It is a no-op unless a
// verbosity of at least 1 has been set.
func Debugf(format string, args ...interface{}) {
	if current == nil || !V(1) {
		return
	}
	current.Debugf(format, args...)
}

// Infof logs information level messages.
func Infof(format string, args ...interface{}) {
	if current != nil {
		current.Infof(format, args...)
	}
}

// Warningf logs recoverable conditions, such as unknown primitive type
// mappings or rewritten CIM identifiers.
func Warningf(format string, args ...interface{}) {
	if current != nil {
		current.Warningf(format, args...)
	}
}

// Errorf logs failures that the caller still gets returned as errors.
func Errorf(format string, args ...interface{}) {
	if current != nil {
		current.Errorf(format, args...)
	}
}

// stdLogger is the default backend, writing to stderr.
type stdLogger struct {
	l *log.Logger
}

func (s *stdLogger) Debugf(format string, args ...interface{}) {
	s.l.Printf("DEBUG: "+format, args...)
}

func (s *stdLogger) Infof(format string, args ...interface{}) {
	s.l.Printf(format, args...)
}

func (s *stdLogger) Warningf(format string, args ...interface{}) {
	s.l.Printf("WARN: "+format, args...)
}

func (s *stdLogger) Errorf(format string, args ...interface{}) {
	s.l.Printf("ERROR: "+format, args...)
}
