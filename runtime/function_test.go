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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionCallInvokesUnderlyingFunc(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	fn := newBuiltinFunction("addOne", func(f *Frame, args Args, _ KWArgs) (*Object, *BaseException) {
		return NewInt(toIntUnsafe(args[0]).Value() + 1).ToObject(), nil
	})

	result, raised := fn.ToObject().Call(f, Args{NewInt(4).ToObject()}, nil)
	require.Nil(t, raised)
	assert.Equal(t, 5, toIntUnsafe(result).Value())
}

func TestCallOnNonCallableRaisesTypeError(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	_, raised := NewInt(3).ToObject().Call(f, nil, nil)
	require.NotNil(t, raised)
	assert.True(t, isInstance(raised.ToObject(), TypeErrorType))
}

func TestFunctionGetBindsInstanceAsMethod(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	fn := newBuiltinFunction("ident", func(f *Frame, args Args, _ KWArgs) (*Object, *BaseException) {
		return args[0], nil
	})

	unbound, raised := functionGet(f, fn.ToObject(), nil, FunctionType)
	require.Nil(t, raised)
	assert.Same(t, fn.ToObject(), unbound)

	self := NewInt(9).ToObject()
	bound, raised := functionGet(f, fn.ToObject(), self, IntType)
	require.Nil(t, raised)
	require.Equal(t, MethodType, bound.Type())

	result, raised := bound.Call(f, nil, nil)
	require.Nil(t, raised)
	assert.Same(t, self, result)
}

func TestStaticMethodGetReturnsWrappedCallableUnchanged(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	fn := newBuiltinFunction("helper", func(f *Frame, args Args, _ KWArgs) (*Object, *BaseException) {
		return None, nil
	})
	sm := newStaticMethod(fn.ToObject())

	got, raised := staticMethodGet(f, sm.ToObject(), NewInt(1).ToObject(), IntType)
	require.Nil(t, raised)
	assert.Same(t, fn.ToObject(), got)
}

func TestStaticMethodGetUninitializedRaisesRuntimeError(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	sm := newStaticMethod(nil)
	_, raised := staticMethodGet(f, sm.ToObject(), nil, nil)
	require.NotNil(t, raised)
	assert.True(t, isInstance(raised.ToObject(), RuntimeErrorType))
}

func TestCheckFunctionArgsWrongCountRaisesTypeError(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	raised := checkFunctionArgs(f, "frob", Args{NewInt(1).ToObject()}, IntType, IntType)
	require.NotNil(t, raised)
	assert.True(t, isInstance(raised.ToObject(), TypeErrorType))
}

func TestCheckFunctionArgsWrongTypeRaisesTypeError(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	raised := checkFunctionArgs(f, "frob", Args{NewStr("x").ToObject()}, IntType)
	require.NotNil(t, raised)
	assert.True(t, isInstance(raised.ToObject(), TypeErrorType))
}

func TestCheckFunctionArgsAccepts(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	raised := checkFunctionArgs(f, "frob", Args{NewInt(1).ToObject(), NewStr("x").ToObject()}, IntType, StrType)
	assert.Nil(t, raised)
}

func TestCheckFunctionVarArgsAllowsExtraTrailingArgs(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	raised := checkFunctionVarArgs(f, "frob", Args{NewInt(1).ToObject(), NewStr("x").ToObject(), NewStr("y").ToObject()}, IntType)
	assert.Nil(t, raised)
}
