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

// Str is a Python string, trimmed from the teacher's str.go (roughly 1450
// lines of Unicode normalization, formatting mini-language and slicing) to
// the handful of operations the object/type core actually needs: a value
// recognizable to attribute lookup, hashable and comparable through the
// dispatch vector like any other type, and renderable via __repr__/__str__.
// Text processing beyond that belongs to the stdlib's string type, not the
// core being built here.
type Str struct {
	Object
	value string
}

var strBasis = reflect.TypeOf(Str{})

// NewStr creates a Str value. Every __repr__/__str__ implementation and
// every diagnostic message in this package goes through NewStr, so it must
// produce a fully wired instance: StrType.rep, once Bootstrap has run. The
// handful of call sites that run before StrType exists (bootstrap's own
// type/none __repr__ implementations) are never invoked until Bootstrap has
// returned, so StrType is always set by the time NewStr actually runs.
func NewStr(s string) *Str {
	var rep *Representation
	if StrType != nil {
		rep = StrType.rep
	}
	return &Str{Object: Object{rep: rep}, value: s}
}

func toStrUnsafe(o *Object) *Str {
	return (*Str)(ptrOf(o))
}

// ToObject upcasts s to *Object.
func (s *Str) ToObject() *Object {
	return &s.Object
}

// Value returns the wrapped Go string.
func (s *Str) Value() string {
	return s.value
}

func strEq(f *Frame, v, w *Object) (*Object, *BaseException) {
	if w.Type() != StrType {
		return NotImplemented, nil
	}
	return GetBool(toStrUnsafe(v).value == toStrUnsafe(w).value).ToObject(), nil
}

func strHash(f *Frame, o *Object) (*Object, *BaseException) {
	s := toStrUnsafe(o).value
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return NewInt(int(h)).ToObject(), nil
}

func strRepr(f *Frame, o *Object) (*Object, *BaseException) {
	return NewStr(fmt.Sprintf("%q", toStrUnsafe(o).value)).ToObject(), nil
}

func strStr(f *Frame, o *Object) (*Object, *BaseException) {
	return o, nil
}
