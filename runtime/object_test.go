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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectDictLazyAllocation(t *testing.T) {
	o := newObject(ObjectType.rep)
	assert.False(t, o.hasDict())

	d := o.Dict()
	require.NotNil(t, d)
	assert.True(t, o.hasDict())
	assert.Same(t, d, o.Dict())
}

// TestObjectDictConcurrentFirstWriteIsRaceFree races N goroutines calling
// Dict() on the same fresh Object for the first time; every one must
// observe the same *attrDict, the CAS guarantee Object.Dict exists for.
func TestObjectDictConcurrentFirstWriteIsRaceFree(t *testing.T) {
	o := newObject(ObjectType.rep)
	const n = 32
	dicts := make([]*attrDict, n)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			dicts[i] = o.Dict()
		}(i)
	}
	close(start)
	wg.Wait()

	first := dicts[0]
	for _, d := range dicts[1:] {
		assert.Same(t, first, d)
	}
}

func TestIsInstanceChecksMRO(t *testing.T) {
	Bootstrap()
	assert.True(t, isInstance(True.ToObject(), IntType))
	assert.True(t, isInstance(True.ToObject(), BoolType))
	assert.False(t, isInstance(NewInt(1).ToObject(), BoolType))
}

func TestObjectHashIsIdentityBased(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	a := newObject(ObjectType.rep)
	b := newObject(ObjectType.rep)

	ha, raised := Hash(f, a.ToObject())
	require.Nil(t, raised)
	hb, raised := Hash(f, b.ToObject())
	require.Nil(t, raised)
	assert.NotEqual(t, ha.Value(), hb.Value())

	ha2, raised := Hash(f, a.ToObject())
	require.Nil(t, raised)
	assert.Equal(t, ha.Value(), ha2.Value())
}

func TestObjectDefaultEqIsIdentity(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	a := newObject(ObjectType.rep)
	b := newObject(ObjectType.rep)

	eq, raised := Eq(f, a.ToObject(), a.ToObject())
	require.Nil(t, raised)
	assert.Same(t, True, toBoolUnsafe(eq))

	eq, raised = Eq(f, a.ToObject(), b.ToObject())
	require.Nil(t, raised)
	assert.Same(t, False, toBoolUnsafe(eq))
}

func TestObjectNewRejectsAbstractTypes(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	_, raised := objectNew(f, NoneType, nil, nil)
	require.NotNil(t, raised)
	assert.True(t, isInstance(raised.ToObject(), TypeErrorType))
}

func TestObjectInitRejectsArgsWithoutCustomNew(t *testing.T) {
	Bootstrap()
	f := NewRootFrame()
	o := newObject(ObjectType.rep)
	_, raised := objectInit(f, o.ToObject(), Args{NewInt(1).ToObject()}, nil)
	require.NotNil(t, raised)
	assert.True(t, isInstance(raised.ToObject(), TypeErrorType))
}
