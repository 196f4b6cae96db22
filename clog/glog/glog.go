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

// Package glog routes clog output through github.com/golang/glog.
// Importing it for side effects installs the backend:
//
//	import _ "github.com/spah-soptim/OpenCGMES/clog/glog"
//
// clog's debug level maps onto glog verbosity 2: debug records reach glog
// only when clog.SetV(1) or higher is set, and glog prints them only when
// it runs with -v=2 or higher.
package glog

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/spah-soptim/OpenCGMES/clog"
)

func init() {
	clog.SetLogger(Backend{})
}

// callDepth skips the Backend method and the clog facade function so
// glog attributes records to the original call site.
const callDepth = 2

// Backend forwards clog records to glog.
type Backend struct{}

func (Backend) Debugf(format string, args ...interface{}) {
	if glog.V(2) {
		glog.InfoDepth(callDepth, "DEBUG: "+fmt.Sprintf(format, args...))
	}
}

func (Backend) Infof(format string, args ...interface{}) {
	glog.InfoDepth(callDepth, fmt.Sprintf(format, args...))
}

func (Backend) Warningf(format string, args ...interface{}) {
	glog.WarningDepth(callDepth, fmt.Sprintf(format, args...))
}

func (Backend) Errorf(format string, args ...interface{}) {
	glog.ErrorDepth(callDepth, fmt.Sprintf(format, args...))
}
