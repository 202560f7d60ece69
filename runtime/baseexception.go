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

import "reflect"

// BaseException is the root of the exception taxonomy (§7, §3's
// "BaseException taxonomy" addition). It is deliberately thin next to the
// teacher's baseexception.go: args/traceback/cause chaining that the
// bytecode interpreter needs are out of scope here; what the type core
// needs is a Python-visible object carrying a message, usable as the
// Frame's current exception.
type BaseException struct {
	Object
	args []*Object
}

var baseExceptionBasis = reflect.TypeOf(BaseException{})

func toBaseExceptionUnsafe(o *Object) *BaseException {
	return (*BaseException)(ptrOf(o))
}

// ToObject upcasts e to *Object.
func (e *BaseException) ToObject() *Object {
	return &e.Object
}

// Args returns the positional arguments e was constructed with, matching
// the teacher's BaseException.args exposure (e.g. str(exc) uses args[0]).
func (e *BaseException) Args() []*Object {
	return e.args
}

// newBaseException constructs an instance of t (t must be BaseException or
// a subclass) carrying msg as its sole argument - the common case used by
// Frame.RaiseType and by every internal Raise call site.
func newBaseException(t *PyType, msg string) *BaseException {
	e := &BaseException{Object: Object{rep: t.rep}}
	if msg != "" {
		e.args = []*Object{NewStr(msg).ToObject()}
	}
	return e
}

// exceptionStr implements BaseException.__str__: the sole arg's str() if
// there is exactly one, "" if there are none, else a tuple-like repr of
// them all - mirroring the teacher's exceptionStr.
func exceptionStr(f *Frame, e *BaseException) (*Object, *BaseException) {
	switch len(e.args) {
	case 0:
		return NewStr("").ToObject(), nil
	case 1:
		s, raised := ToStr(f, e.args[0])
		if raised != nil {
			return nil, raised
		}
		return s.ToObject(), nil
	default:
		parts := make([]string, len(e.args))
		for i, a := range e.args {
			s, raised := ToStr(f, a)
			if raised != nil {
				return nil, raised
			}
			parts[i] = s.Value()
		}
		return NewStr(joinExceptionArgs(parts)).ToObject(), nil
	}
}

func joinExceptionArgs(parts []string) string {
	out := "("
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out + ")"
}
