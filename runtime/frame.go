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

// Frame is the context threaded through every type-system operation. The
// full bytecode interpreter's Frame carries a call stack, checkpoints and
// line numbers; none of that belongs to the object/type core, so this Frame
// keeps only what the core needs: per-goroutine exception state and the
// repr re-entrancy guard described in the teacher's frame.go.
type Frame struct {
	threadState *threadState
}

// NewRootFrame creates a Frame with fresh exception state. It is the
// equivalent of the teacher's NewRootFrame, trimmed of call-stack bookkeeping
// that belongs to the bytecode interpreter, not the type core.
func NewRootFrame() *Frame {
	return &Frame{threadState: newThreadState()}
}

// RaiseType sets f's current exception to an instance of typ constructed from
// msg and returns it so callers can write "return nil, f.RaiseType(...)".
func (f *Frame) RaiseType(t *PyType, msg string) *BaseException {
	exc := newBaseException(t, msg)
	f.threadState.excValue = exc
	return exc
}

// ExcInfo returns the exception currently set on f, if any.
func (f *Frame) ExcInfo() *BaseException {
	return f.threadState.excValue
}

// RestoreExc clears (or replaces) f's currently set exception. It mirrors
// the teacher's RestoreExc, used after an exception has been examined and
// handled (e.g. GetAttr() clearing an AttributeError when a default is
// supplied).
func (f *Frame) RestoreExc(e *BaseException) *BaseException {
	prev := f.threadState.excValue
	f.threadState.excValue = e
	return prev
}

// reprEnter/reprLeave guard against infinite recursion when a container's
// __repr__ contains itself, exactly as in the teacher's frame.go.
func (f *Frame) reprEnter(o *Object) bool {
	if f.threadState.reprState == nil {
		f.threadState.reprState = make(map[*Object]bool)
	}
	if f.threadState.reprState[o] {
		return true
	}
	f.threadState.reprState[o] = true
	return false
}

func (f *Frame) reprLeave(o *Object) {
	delete(f.threadState.reprState, o)
}
