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

type replaceableObj struct {
	Object
	n int
}

var replaceableBasis = reflect.TypeOf(replaceableObj{})

// TestSetClassSucceedsBetweenCompatibleReplaceableTypes checks §8 scenario
// 5: reassigning __class__ between two Replaceable types sharing the same
// primary host class mutates the object's Representation in place and
// leaves its identity/fields untouched.
func TestSetClassSucceedsBetweenCompatibleReplaceableTypes(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	tf := NewTypeFactory(newTypeRegistry(nil))

	fromSpec := NewTypeSpec("From", replaceableBasis).Extends(ObjectType).Replaceable()
	fromType, raised := tf.FromSpec(f, fromSpec)
	require.Nil(t, raised)

	// A second Replaceable class sharing replaceableBasis's exact layout:
	// FromSpec's registry clash guard only admits one *published*
	// Representation per basis, so this scenario's "two classes, one
	// compatible layout" setup is built directly rather than through a
	// second FromSpec call for the same basis.
	toType := &PyType{name: "To", basis: replaceableBasis, variant: variantReplaceable,
		flags: typeFlagDefault}
	toType.rep = newRepresentation(replaceableBasis, toType)
	toType.Object.rep = typeRep()
	toType.mro = []*PyType{toType, ObjectType}

	obj := &replaceableObj{Object: Object{rep: fromType.rep}, n: 7}
	require.Same(t, fromType, obj.Type())

	raisedErr := SetClass(f, obj.ToObject(), toType)
	require.Nil(t, raisedErr)
	assert.Same(t, toType, obj.Type())
	assert.Equal(t, 7, obj.n)
}

type otherReplaceableObj struct {
	Object
	n int
}

var otherReplaceableBasis = reflect.TypeOf(otherReplaceableObj{})

// TestSetClassRejectsMismatchedBasis checks §8 scenario 6: reassigning
// __class__ to a Replaceable type with an incompatible host layout raises
// TypeError naming both types, and leaves the object's class untouched.
func TestSetClassRejectsMismatchedBasis(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	tf := NewTypeFactory(newTypeRegistry(nil))

	fromSpec := NewTypeSpec("MismFrom", replaceableBasis).Extends(ObjectType).Replaceable()
	fromType, raised := tf.FromSpec(f, fromSpec)
	require.Nil(t, raised)

	toSpec := NewTypeSpec("MismTo", otherReplaceableBasis).Extends(ObjectType).Replaceable()
	toType, raised := tf.FromSpec(f, toSpec)
	require.Nil(t, raised)

	obj := &replaceableObj{Object: Object{rep: fromType.rep}}
	raisedErr := SetClass(f, obj.ToObject(), toType)
	require.NotNil(t, raisedErr)
	assert.True(t, isInstance(raisedErr.ToObject(), TypeErrorType))
	assert.Same(t, fromType, obj.Type())

	msg, _ := ToStr(f, raisedErr.ToObject())
	assert.Contains(t, msg.Value(), "MismFrom")
	assert.Contains(t, msg.Value(), "MismTo")
}

// TestSetClassRejectsNonReplaceableType checks that __class__ reassignment
// is refused outright when either side isn't a Replaceable type at all
// (e.g. a built-in type like int), not just when bases mismatch.
func TestSetClassRejectsNonReplaceableType(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	tf := NewTypeFactory(newTypeRegistry(nil))

	fromSpec := NewTypeSpec("NotReplaceable", replaceableBasis).Extends(ObjectType)
	fromType, raised := tf.FromSpec(f, fromSpec)
	require.Nil(t, raised)

	obj := &replaceableObj{Object: Object{rep: fromType.rep}}
	raisedErr := SetClass(f, obj.ToObject(), fromType)
	require.NotNil(t, raisedErr)
	assert.True(t, isInstance(raisedErr.ToObject(), TypeErrorType))
}
