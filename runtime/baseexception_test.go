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

func TestNewBaseExceptionCarriesMessage(t *testing.T) {
	Bootstrap()
	e := newBaseException(TypeErrorType, "bad value")
	require.Len(t, e.Args(), 1)
	assert.Equal(t, "bad value", toStrUnsafe(e.Args()[0]).Value())
	assert.Equal(t, TypeErrorType, e.ToObject().Type())
}

func TestNewBaseExceptionEmptyMessageHasNoArgs(t *testing.T) {
	Bootstrap()
	e := newBaseException(RuntimeErrorType, "")
	assert.Empty(t, e.Args())
}

func TestExceptionStrNoArgsIsEmptyString(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	e := newBaseException(ValueErrorType, "")
	s, raised := exceptionStr(f, e)
	require.Nil(t, raised)
	assert.Equal(t, "", toStrUnsafe(s).Value())
}

func TestExceptionStrSingleArgIsItsStr(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	e := newBaseException(ValueErrorType, "oops")
	s, raised := exceptionStr(f, e)
	require.Nil(t, raised)
	assert.Equal(t, "oops", toStrUnsafe(s).Value())
}

func TestExceptionStrMultipleArgsJoinsAsTuple(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	e := &BaseException{
		Object: Object{rep: ValueErrorType.rep},
		args:   []*Object{NewStr("a").ToObject(), NewStr("b").ToObject()},
	}
	s, raised := exceptionStr(f, e)
	require.Nil(t, raised)
	assert.Equal(t, "(a, b)", toStrUnsafe(s).Value())
}

func TestRaiseTypeProducesMatchingException(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	raised := f.RaiseType(KeyErrorType, "missing")
	require.NotNil(t, raised)
	assert.True(t, isInstance(raised.ToObject(), KeyErrorType))
	assert.True(t, isInstance(raised.ToObject(), LookupErrorType))
	assert.True(t, isInstance(raised.ToObject(), BaseExceptionType))
}

func TestExceptionTaxonomyHierarchy(t *testing.T) {
	Bootstrap()
	assert.True(t, isSubclass(TypeErrorType, BaseExceptionType))
	assert.True(t, isSubclass(IndexErrorType, LookupErrorType))
	assert.True(t, isSubclass(KeyErrorType, LookupErrorType))
	assert.True(t, isSubclass(DeprecationWarningType, WarningType))
	assert.False(t, isSubclass(TypeErrorType, LookupErrorType))
}
