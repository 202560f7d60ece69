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

type pointObj struct {
	Object
	X *Object
}

var pointBasis = reflect.TypeOf(pointObj{})

func newPointType(t *testing.T, f *Frame) *PyType {
	spec := NewTypeSpec("Point", pointBasis).Extends(ObjectType).
		WithMember("x", "X").
		WithMethod("double", func(f *Frame, args Args, _ KWArgs) (*Object, *BaseException) {
			self := (*pointObj)(ptrOf(args[0]))
			return NewInt(toIntUnsafe(self.X).Value() * 2).ToObject(), nil
		})
	typ, raised := NewTypeFactory(newTypeRegistry(nil)).FromSpec(f, spec)
	require.Nil(t, raised)
	return typ
}

func newPoint(typ *PyType, x int) *pointObj {
	return &pointObj{Object: Object{rep: typ.rep}, X: NewInt(x).ToObject()}
}

func TestMemberDescriptorGetAndSet(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	typ := newPointType(t, f)
	p := newPoint(typ, 7)

	v, raised := GetAttr(f, p.ToObject(), NewStr("x"), nil)
	require.Nil(t, raised)
	assert.Equal(t, 7, toIntUnsafe(v).Value())

	raised = SetAttr(f, p.ToObject(), NewStr("x"), NewInt(9).ToObject())
	require.Nil(t, raised)
	assert.Equal(t, 9, toIntUnsafe(p.X).Value())
}

func TestMemberDescriptorUnsetFieldRaisesAttributeError(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	typ := newPointType(t, f)
	p := &pointObj{Object: Object{rep: typ.rep}}

	_, raised := GetAttr(f, p.ToObject(), NewStr("x"), nil)
	require.NotNil(t, raised)
	assert.True(t, isInstance(raised.ToObject(), AttributeErrorType))
}

func TestMethodDescriptorBindsSelf(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	typ := newPointType(t, f)
	p := newPoint(typ, 5)

	bound, raised := GetAttr(f, p.ToObject(), NewStr("double"), nil)
	require.Nil(t, raised)
	require.Equal(t, MethodType, bound.Type())

	result, raised := bound.Call(f, nil, nil)
	require.Nil(t, raised)
	assert.Equal(t, 10, toIntUnsafe(result).Value())
}

func TestDescriptorGetRejectsForeignInstance(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	typ := newPointType(t, f)

	desc, ok := typ.Dict().get("x")
	require.True(t, ok)

	foreign := NewInt(3).ToObject()
	_, raised := descriptorGet(f, desc, foreign, IntType)
	require.NotNil(t, raised)
	assert.True(t, isInstance(raised.ToObject(), TypeErrorType))
}

func TestDescriptorGetWithNilInstanceReturnsUnboundWrapped(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	typ := newPointType(t, f)

	desc, ok := typ.Dict().get("double")
	require.True(t, ok)

	v, raised := descriptorGet(f, desc, nil, typ)
	require.Nil(t, raised)
	assert.Equal(t, FunctionType, v.Type())
}
