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

// Int and Bool are the two numeric bootstrap types, trimmed from the
// teacher's int.go (which carries bignum promotion to a separate Long
// type, floor/true division, bitwise shifts with overflow checks, and
// much more arithmetic this core doesn't exercise). Their only job here is
// to exist as a concrete example of an Adoptive-capable Simple type pair
// (bool IS-A int, not a shared-basis adoption) that exercises the dispatch
// vector end to end: __add__/__eq__/__hash__/__repr__/__nonzero__.
type Int struct {
	Object
	value int
}

var intBasis = reflect.TypeOf(Int{})

func NewInt(v int) *Int {
	return &Int{Object: Object{rep: IntType.rep}, value: v}
}

func toIntUnsafe(o *Object) *Int {
	return (*Int)(ptrOf(o))
}

// ToObject upcasts i to *Object.
func (i *Int) ToObject() *Object {
	return &i.Object
}

// Value returns i's underlying Go int.
func (i *Int) Value() int {
	return i.value
}

// IsTrue reports whether i is nonzero.
func (i *Int) IsTrue() bool {
	return i.value != 0
}

func intAdd(f *Frame, v, w *Object) (*Object, *BaseException) {
	if w.Type() != IntType && w.Type() != BoolType {
		return NotImplemented, nil
	}
	return NewInt(toIntUnsafe(v).value + toIntUnsafe(w).value).ToObject(), nil
}

func intSub(f *Frame, v, w *Object) (*Object, *BaseException) {
	if w.Type() != IntType && w.Type() != BoolType {
		return NotImplemented, nil
	}
	return NewInt(toIntUnsafe(v).value - toIntUnsafe(w).value).ToObject(), nil
}

func intEq(f *Frame, v, w *Object) (*Object, *BaseException) {
	if w.Type() != IntType && w.Type() != BoolType {
		return NotImplemented, nil
	}
	return GetBool(toIntUnsafe(v).value == toIntUnsafe(w).value).ToObject(), nil
}

func intHash(f *Frame, o *Object) (*Object, *BaseException) {
	return NewInt(toIntUnsafe(o).value).ToObject(), nil
}

func intRepr(f *Frame, o *Object) (*Object, *BaseException) {
	return NewStr(fmt.Sprintf("%d", toIntUnsafe(o).value)).ToObject(), nil
}

func intNonZero(f *Frame, o *Object) (*Object, *BaseException) {
	return GetBool(toIntUnsafe(o).value != 0).ToObject(), nil
}

// Bool represents Python 'bool' objects: exactly two instances exist,
// True and False, both allocated once during Bootstrap. Bool embeds Int
// rather than Object directly since bool IS-A int in the type hierarchy
// (BoolType.bases == []*PyType{IntType}), matching CPython's layout.
type Bool struct {
	Int
}

var boolBasis = reflect.TypeOf(Bool{})

func toBoolUnsafe(o *Object) *Bool {
	return (*Bool)(ptrOf(o))
}

// GetBool returns the canonical True or False singleton for v.
func GetBool(v bool) *Bool {
	if v {
		return True
	}
	return False
}

// ToObject upcasts b to *Object.
func (b *Bool) ToObject() *Object {
	return &b.Object
}
