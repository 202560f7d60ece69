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

	"go.uber.org/zap"
)

// TypeRegistry is the lazy host-class -> Representation cache from §4.3.
// Grounded on the teacher's two-step basisTypes/nativeTypes lookup in
// type.go/native.go, and on the DI-container typeRegistry
// (service map + sync.RWMutex) for the lockable table shape.
type TypeRegistry struct {
	mu      sync.RWMutex
	byBasis map[reflect.Type]*Representation
	log     *zap.Logger

	// discoverer is TypeFactory's find-or-create callback (§4.5), wired in
	// by Bootstrap once both the registry and its factory exist. Get's
	// second resolution tier delegates here instead of the registry
	// creating anything itself - the registry never takes the factory
	// lock directly, only through this call, preserving the
	// factory-then-registry lock order §5 requires.
	discoverer func(*Frame, reflect.Type) (*Representation, *BaseException)
}

func newTypeRegistry(log *zap.Logger) *TypeRegistry {
	if log == nil {
		log = zap.NewNop()
	}
	return &TypeRegistry{byBasis: make(map[reflect.Type]*Representation), log: log}
}

// Lookup returns the Representation published for basis, if any. It never
// allocates: a miss means either the host class hasn't been registered yet
// or hasn't been discovered through Get - the synchronous, creation-free
// half of §4.3's contract.
func (r *TypeRegistry) Lookup(basis reflect.Type) (*Representation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rep, ok := r.byBasis[basis]
	return rep, ok
}

// publish installs rep under basis. Called exactly once per basis by
// TypeFactory (or by bootstrap for the handful of types it constructs by
// hand); a second publish for the same basis without an intervening
// adoption is the clash TypeFactory guards against (§4.5).
func (r *TypeRegistry) publish(basis reflect.Type, rep *Representation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byBasis[basis] = rep
	r.log.Debug("representation published", zap.String("basis", basis.String()))
}

// setDiscoverer wires fn as the callback Get falls back to on a miss.
func (r *TypeRegistry) setDiscoverer(fn func(*Frame, reflect.Type) (*Representation, *BaseException)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.discoverer = fn
}

// Get implements §4.3's get(host_class): it never fails for a class that is
// legally the instance class of any object in the runtime. Resolution
// order: (1) the published map; (2) on a miss, the factory's find-or-create
// (§4.5), which runs the discovery policy and may complete publication; (3)
// the result, now guaranteed published.
func (r *TypeRegistry) Get(f *Frame, basis reflect.Type) (*Representation, *BaseException) {
	if rep, ok := r.Lookup(basis); ok {
		return rep, nil
	}
	r.mu.RLock()
	discover := r.discoverer
	r.mu.RUnlock()
	if discover == nil {
		return nil, f.RaiseType(RuntimeErrorType, fmt.Sprintf(
			"no representation published for %s and no discovery policy installed", basis))
	}
	return discover(f, basis)
}
