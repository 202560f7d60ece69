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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type regObjA struct{ Object }
type regObjB struct{ Object }

func TestRegistryLookupMissReturnsFalse(t *testing.T) {
	r := newTypeRegistry(nil)
	_, ok := r.Lookup(reflect.TypeOf(regObjA{}))
	assert.False(t, ok)
}

func TestRegistryPublishThenLookup(t *testing.T) {
	r := newTypeRegistry(nil)
	basis := reflect.TypeOf(regObjA{})
	rep := newRepresentation(basis, nil)
	r.publish(basis, rep)

	got, ok := r.Lookup(basis)
	require.True(t, ok)
	assert.Same(t, rep, got)
}

// TestRegistryGetHitsPublishedMapWithoutDiscovery checks Get's first
// resolution tier (§4.3): a known basis resolves straight from the
// published map, never touching the discoverer.
func TestRegistryGetHitsPublishedMapWithoutDiscovery(t *testing.T) {
	r := newTypeRegistry(nil)
	basis := reflect.TypeOf(regObjA{})
	rep := newRepresentation(basis, nil)
	r.publish(basis, rep)
	r.setDiscoverer(func(*Frame, reflect.Type) (*Representation, *BaseException) {
		t.Fatal("discoverer should not be consulted on a published-map hit")
		return nil, nil
	})

	f := NewRootFrame()
	got, raised := r.Get(f, basis)
	require.Nil(t, raised)
	assert.Same(t, rep, got)
}

// TestRegistryGetDelegatesToDiscovererOnMiss checks Get's second
// resolution tier: an unpublished basis is handed to the discoverer, and
// the discoverer's result is returned as-is.
func TestRegistryGetDelegatesToDiscovererOnMiss(t *testing.T) {
	r := newTypeRegistry(nil)
	basis := reflect.TypeOf(regObjB{})
	want := newRepresentation(basis, nil)
	var seen reflect.Type
	r.setDiscoverer(func(f *Frame, host reflect.Type) (*Representation, *BaseException) {
		seen = host
		return want, nil
	})

	f := NewRootFrame()
	got, raised := r.Get(f, basis)
	require.Nil(t, raised)
	assert.Same(t, want, got)
	assert.Equal(t, basis, seen)
}

// TestRegistryGetWithNoDiscovererRaisesRuntimeError checks Get never
// returns a nil Representation silently: with no discoverer wired (the
// state before Bootstrap finishes wiring one), a miss raises rather than
// panicking downstream.
func TestRegistryGetWithNoDiscovererRaisesRuntimeError(t *testing.T) {
	Bootstrap()
	r := newTypeRegistry(nil)
	f := NewRootFrame()
	_, raised := r.Get(f, reflect.TypeOf(regObjA{}))
	require.NotNil(t, raised)
	assert.True(t, isInstance(raised.ToObject(), RuntimeErrorType))
}

// TestRegistryConcurrentPublishIsRaceFree publishes many distinct bases
// from concurrent goroutines and checks every one is visible afterward -
// the property the registry's mutex exists to guarantee (§4.3).
func TestRegistryConcurrentPublishIsRaceFree(t *testing.T) {
	r := newTypeRegistry(nil)
	const n = 64
	bases := make([]reflect.Type, n)
	for i := range bases {
		bases[i] = reflect.StructOf([]reflect.StructField{
			{Name: fmt.Sprintf("Tag%d", i), Type: reflect.TypeOf(i)},
		})
	}

	var wg sync.WaitGroup
	for _, basis := range bases {
		wg.Add(1)
		go func(basis reflect.Type) {
			defer wg.Done()
			r.publish(basis, newRepresentation(basis, nil))
		}(basis)
	}
	wg.Wait()

	for _, basis := range bases {
		_, ok := r.Lookup(basis)
		assert.True(t, ok)
	}
}
