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

import (
	"fmt"
	"reflect"
)

// Method represents a bound method: a Function together with the instance
// it was looked up on. Calling a Method prepends the instance to the
// argument list, matching the teacher's method.go.
type Method struct {
	Object
	function *Object
	self     *Object
}

var methodBasis = reflect.TypeOf(Method{})

func newBoundMethod(function, self *Object) *Method {
	return &Method{Object: Object{rep: methodRep()}, function: function, self: self}
}

func toMethodUnsafe(o *Object) *Method {
	return (*Method)(ptrOf(o))
}

// ToObject upcasts m to *Object.
func (m *Method) ToObject() *Object {
	return &m.Object
}

func methodCall(f *Frame, callable *Object, args Args, kwargs KWArgs) (*Object, *BaseException) {
	m := toMethodUnsafe(callable)
	callArgs := make(Args, len(args)+1)
	callArgs[0] = m.self
	copy(callArgs[1:], args)
	return m.function.Call(f, callArgs, kwargs)
}

func methodRepr(_ *Frame, o *Object) (*Object, *BaseException) {
	m := toMethodUnsafe(o)
	name := toFunctionUnsafe(m.function).Name()
	return NewStr(fmt.Sprintf("<bound method %s.%s of %s>",
		m.self.Type().Name(), name, mustRepr(m.self))).ToObject(), nil
}

// mustRepr is a best-effort repr used only for diagnostic strings
// (__repr__ of a bound method); it never itself raises, falling back to
// the type name on failure instead of propagating to callers that aren't
// expecting a *BaseException here.
func mustRepr(o *Object) string {
	f := NewRootFrame()
	r, raised := Repr(f, o)
	if raised != nil {
		return fmt.Sprintf("<%s object>", o.Type().Name())
	}
	return r.Value()
}
