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

package parser

import (
	"fmt"

	"github.com/spah-soptim/OpenCGMES/clog"
)

// Position is a source location in the XML input. Line and Col are
// 1-based; a zero Position means the location is unknown.
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string {
	if p.Line <= 0 && p.Col <= 0 {
		return "[-, -]"
	}
	return fmt.Sprintf("[line: %d, col: %d]", p.Line, p.Col)
}

// ParseError is a fatal parse failure with its source location.
type ParseError struct {
	Msg string
	Pos Position
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s %s", e.Pos, e.Msg)
}

// ErrorHandler receives the parser's diagnostics. Warning never stops
// the parse; Error and Fatal return the error that aborts it.
type ErrorHandler interface {
	Warning(msg string, pos Position)
	Error(msg string, pos Position) error
	Fatal(msg string, pos Position) error
}

// defaultErrorHandler logs warnings through clog and turns errors into
// ParseErrors.
type defaultErrorHandler struct{}

// DefaultErrorHandler returns the standard handler.
func DefaultErrorHandler() ErrorHandler { return defaultErrorHandler{} }

func (defaultErrorHandler) Warning(msg string, pos Position) {
	clog.Warningf("%s %s", pos, msg)
}

func (defaultErrorHandler) Error(msg string, pos Position) error {
	return &ParseError{Msg: msg, Pos: pos}
}

func (defaultErrorHandler) Fatal(msg string, pos Position) error {
	return &ParseError{Msg: msg, Pos: pos}
}
