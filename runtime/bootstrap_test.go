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

func TestBootstrapPublishesCoreTypes(t *testing.T) {
	r := Bootstrap()
	require.True(t, r.Ready())

	require.NotNil(t, ObjectType)
	require.NotNil(t, TypeType)
	assert.Equal(t, TypeType, ObjectType.Type())
	assert.Equal(t, TypeType, TypeType.Type())
	assert.True(t, isSubclass(TypeType, ObjectType))

	for _, typ := range []*PyType{
		DescriptorType, FunctionType, StaticMethodType, MethodType,
		BaseExceptionType, TypeErrorType, AttributeErrorType, KeyErrorType,
		BoolType, IntType, StrType, NoneType,
	} {
		assert.NotNil(t, typ)
	}
	assert.True(t, isSubclass(BoolType, IntType))
	assert.True(t, isSubclass(KeyErrorType, BaseExceptionType))
}

// TestBootstrapSingleThreaded races N goroutines calling Bootstrap/Wait
// concurrently, the scenario §8 asks for: every one of them must observe a
// Ready runtime and the same *Runtime value, since Bootstrap is
// package-level idempotent (only the first caller's goroutine actually
// constructs the universe).
func TestBootstrapSingleThreaded(t *testing.T) {
	const n = 8
	var wg sync.WaitGroup
	start := make(chan struct{})
	runtimes := make([]*Runtime, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			r := Bootstrap()
			r.Wait()
			runtimes[i] = r
		}(i)
	}
	close(start)
	wg.Wait()

	first := runtimes[0]
	require.NotNil(t, first)
	require.True(t, first.Ready())
	for _, r := range runtimes[1:] {
		assert.Same(t, first, r)
		assert.True(t, r.Ready())
	}
}

func TestRuntimeWaitBlocksUntilReady(t *testing.T) {
	r := &Runtime{barrier: make(chan struct{})}
	done := make(chan struct{})
	go func() {
		r.Wait()
		close(done)
	}()
	select {
	case <-done:
		t.Fatal("Wait returned before barrier was closed")
	default:
	}
	close(r.barrier)
	<-done
}
