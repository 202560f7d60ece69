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
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repObj struct{ Object }

var repBasis = reflect.TypeOf(repObj{})

type repSiblingObj struct{ Object }

var repSiblingBasis = reflect.TypeOf(repSiblingObj{})

func TestRepresentationUnsetSlotIsEmpty(t *testing.T) {
	typ := &PyType{name: "Rep"}
	r := newRepresentation(repBasis, typ)
	assert.True(t, r.slot(OpRepr).empty())
	assert.Same(t, theEmptySlot, r.slot(OpRepr))
}

func TestRepresentationSetSlotThenRead(t *testing.T) {
	typ := &PyType{name: "Rep"}
	r := newRepresentation(repBasis, typ)
	h := &unaryOpSlot{Fn: func(f *Frame, o *Object) (*Object, *BaseException) {
		return NewStr("hi").ToObject(), nil
	}}
	r.setSlot(OpRepr, h)
	require.False(t, r.slot(OpRepr).empty())
	assert.Same(t, h, r.slot(OpRepr))
}

func TestRepresentationSetSlotNilFallsBackToEmpty(t *testing.T) {
	typ := &PyType{name: "Rep"}
	r := newRepresentation(repBasis, typ)
	r.setSlot(OpHash, &unaryOpSlot{Fn: func(f *Frame, o *Object) (*Object, *BaseException) {
		return nil, nil
	}})
	require.False(t, r.slot(OpHash).empty())

	r.setSlot(OpHash, nil)
	assert.Same(t, theEmptySlot, r.slot(OpHash))
	assert.True(t, r.slot(OpHash).empty())
}

func TestRepresentationTypeOfFixedType(t *testing.T) {
	typ := &PyType{name: "Rep"}
	r := newRepresentation(repBasis, typ)
	o := &Object{rep: r}
	assert.Same(t, typ, r.typeOf(o))
}

func TestRepresentationTypeOfInstanceTypeFunc(t *testing.T) {
	metaclass := &PyType{name: "meta"}
	r := newRepresentation(typeBasis, nil)
	r.instanceTypeFunc = func(o *Object) *PyType { return metaclass }

	fake := &Object{rep: r}
	assert.Same(t, metaclass, r.typeOf(fake))
}

// TestRepresentationSelfClassesStartsWithOwnBasis checks §4.2's self_classes
// contract at the Representation level: a freshly built Representation
// reports its own basis as the one legal self-class, not the *PyType it
// resolves to.
func TestRepresentationSelfClassesStartsWithOwnBasis(t *testing.T) {
	typ := &PyType{name: "Rep"}
	r := newRepresentation(repBasis, typ)
	assert.Equal(t, []reflect.Type{repBasis}, r.SelfClasses())
}

// TestRepresentationAddSelfClassAppends checks Accept's effect: a second
// host class mapped directly onto an existing Representation is appended
// to SelfClasses in order, and selfClassIndex can find it by position.
func TestRepresentationAddSelfClassAppends(t *testing.T) {
	typ := &PyType{name: "Rep"}
	r := newRepresentation(repBasis, typ)

	r.addSelfClass(repSiblingBasis)
	assert.Equal(t, []reflect.Type{repBasis, repSiblingBasis}, r.SelfClasses())

	idx, ok := r.selfClassIndex(repSiblingBasis)
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = r.selfClassIndex(reflect.TypeOf(0))
	assert.False(t, ok)
}

func TestRepresentationNilBasisHasNoInitialSelfClass(t *testing.T) {
	r := newRepresentation(nil, nil)
	assert.Empty(t, r.SelfClasses())
}

func TestRepresentationBasisReturnsHostType(t *testing.T) {
	typ := &PyType{name: "Rep"}
	r := newRepresentation(repBasis, typ)
	assert.Equal(t, repBasis, r.Basis())
}
