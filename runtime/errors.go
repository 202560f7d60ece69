// Copyright 2016 Google Inc. All Rights Reserved.
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

package runtime

import "fmt"

// internalError distinguishes a violated Go-level invariant (a clashing
// TypeFactory registration, a malformed TypeSpec) from a Python-visible
// exception (*BaseException). §7's three-channel error model keeps these
// separate on purpose: callers use errors.As to tell "this program is
// misusing the API" apart from "the Python program being run raised",
// rather than overloading one error type for both.
type internalError struct {
	msg string
}

func newInternalError(format string, args ...interface{}) *internalError {
	return &internalError{msg: fmt.Sprintf(format, args...)}
}

func (e *internalError) Error() string {
	return e.msg
}

// clashError reports that a host class is already owned by a different
// TypeFactory construction, the specific internalError raised by §4.5's
// single-construction-owner-per-class rule.
type clashError struct {
	*internalError
	existing *PyType
}

func newClashError(existing *PyType) *clashError {
	return &clashError{
		internalError: newInternalError(
			"host class already owned by type %q", existing.Name()),
		existing: existing,
	}
}
