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

	"go.uber.org/zap"
)

// FactoryOption configures a TypeFactory at construction time, following
// the DI-container reference code's RegisterOption pattern (§2.1: no
// config file/env var surface, just functional options on constructors).
type FactoryOption func(*TypeFactory)

// WithFactoryLogger supplies the *zap.Logger the factory logs
// class-published/clash-detected events through.
func WithFactoryLogger(log *zap.Logger) FactoryOption {
	return func(tf *TypeFactory) { tf.log = log }
}

// TypeFactory is the reflective builder from §4.5: it turns a TypeSpec
// into a published *PyType, enforcing that at most one construction owns
// any given host class at a time. Generalizes the teacher's newClass +
// prepareType + builtinTypes work-table/state-machine into an explicit
// fromSpec call.
type TypeFactory struct {
	registry *TypeRegistry
	log      *zap.Logger
	// constructionLock serializes fromSpec calls. A single goroutine may
	// re-enter (a field initializer triggering another fromSpec for a
	// different spec; re-entry for the same spec raises RuntimeError), but
	// two goroutines never build concurrently - the
	// same contract as the teacher's recursiveMutex guarding class
	// creation.
	constructionLock recursiveMutex
	building         map[*TypeSpec]bool
}

func newTypeFactory(registry *TypeRegistry, log *zap.Logger) *TypeFactory {
	if log == nil {
		log = zap.NewNop()
	}
	return &TypeFactory{registry: registry, log: log, building: make(map[*TypeSpec]bool)}
}

// NewTypeFactory constructs a standalone TypeFactory bound to registry,
// for callers building their own type universe outside of Bootstrap (e.g.
// tests exercising TypeFactory in isolation).
func NewTypeFactory(registry *TypeRegistry, opts ...FactoryOption) *TypeFactory {
	tf := newTypeFactory(registry, nil)
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// FromSpec builds and publishes a *PyType from spec, following the
// eight-step protocol: (1) acquire the construction lock, (2) check for a
// host-class clash, (3) resolve bases, (4) select/obtain the
// Representation, (5) compute the MRO, (6) run the reflective exposure
// pass populating descriptors, (7) populate the dispatch vector from both
// exposure and explicit Slot overrides, (8) freeze the dict if the spec
// has the IMMUTABLE feature, then publish.
//
// An Adoptive spec (spec.adopts set) takes a different, shorter path: it
// never mints a new PyType at all. It attaches a brand-new Representation
// to the already-published owner type so the adopted host class reports
// that same, shared type via Object.Type() - see adopt.
func (tf *TypeFactory) FromSpec(f *Frame, spec *TypeSpec) (*PyType, *BaseException) {
	tf.constructionLock.Lock(f)
	defer tf.constructionLock.Unlock(f)

	if tf.building[spec] {
		return nil, f.RaiseType(RuntimeErrorType, fmt.Sprintf("re-entrant construction of %q", spec.name))
	}
	tf.building[spec] = true
	defer delete(tf.building, spec)

	if spec.features&featureAdoptive != 0 {
		return tf.adopt(f, spec)
	}

	t := &PyType{name: spec.name, basis: spec.basis, bases: spec.bases, flags: typeFlagDefault}
	if spec.features&featureAbstract != 0 {
		t.flags &^= typeFlagInstantiable
	}
	if spec.features&featureFinal != 0 {
		t.flags &^= typeFlagBasetype
	}
	if spec.features&featureImmutable != 0 {
		t.immutable = true
	}

	if _, ok := tf.registry.Lookup(spec.basis); ok {
		err := newClashError(t)
		tf.log.Warn("clash detected", zap.String("type", spec.name), zap.Error(err))
		return nil, f.RaiseType(TypeErrorType, err.Error())
	}
	for _, accepted := range spec.accepts {
		if _, ok := tf.registry.Lookup(accepted); ok {
			err := newClashError(t)
			tf.log.Warn("clash detected", zap.String("type", spec.name), zap.Error(err))
			return nil, f.RaiseType(TypeErrorType, err.Error())
		}
	}

	rep := newRepresentation(spec.basis, t)
	t.rep = rep
	t.Object.rep = typeRep()
	t.selfClasses = []reflect.Type{spec.basis}

	if spec.features&featureReplaceable != 0 {
		t.variant = variantReplaceable
	} else {
		t.variant = variantSimple
	}

	if len(t.bases) > 0 {
		t.mro = mroCalc(t)
		if t.mro == nil {
			return nil, f.RaiseType(TypeErrorType, fmt.Sprintf(
				"cannot create a consistent method resolution order (MRO) for bases of %q", spec.name))
		}
	} else {
		t.mro = []*PyType{t}
	}

	tf.exposeMembers(t, spec)
	tf.wireSlots(t, spec)
	inheritSlots(t)

	if spec.doc != "" {
		t.Dict().set("__doc__", NewStr(spec.doc).ToObject())
	}
	if t.immutable {
		t.Dict().freeze()
	}

	tf.registry.publish(spec.basis, rep)
	t.addConstructor(spec.basis, rep.slot(OpNew))
	for _, accepted := range spec.accepts {
		rep.addSelfClass(accepted)
		t.selfClasses = append(t.selfClasses, accepted)
		tf.registry.publish(accepted, rep)
		t.addConstructor(accepted, rep.slot(OpNew))
	}

	tf.log.Info("class published", zap.String("name", spec.name), zap.String("variant", t.Variant()))
	return t, nil
}

// adopt implements the Adoptive path: spec.adopts must already be
// published (its own Representation exists), and spec.basis must be an
// entirely new host class. adopt mints a fresh Representation for
// spec.basis whose typ points back at the owner's existing *PyType -
// never at a new one - so instances of the adopted host class report
// exactly the same PyType the owner's own instances do, and publishes the
// new basis into the registry so a later TypeRegistry.Lookup/Get on it
// succeeds (§4.2, §4.6).
func (tf *TypeFactory) adopt(f *Frame, spec *TypeSpec) (*PyType, *BaseException) {
	ownerRep, ok := tf.registry.Lookup(spec.adopts)
	if !ok {
		err := newClashError(&PyType{name: spec.name, basis: spec.basis})
		tf.log.Warn("clash detected", zap.String("type", spec.name), zap.Error(err))
		return nil, f.RaiseType(TypeErrorType, err.Error())
	}
	owner := ownerRep.typ
	if owner == nil {
		return nil, f.RaiseType(TypeErrorType, fmt.Sprintf(
			"%q cannot adopt into a representation with no fixed type", spec.name))
	}
	if _, ok := tf.registry.Lookup(spec.basis); ok {
		err := newClashError(owner)
		tf.log.Warn("clash detected", zap.String("type", spec.name), zap.Error(err))
		return nil, f.RaiseType(TypeErrorType, err.Error())
	}

	rep := newRepresentation(spec.basis, owner)
	tf.registry.publish(spec.basis, rep)
	owner.selfClasses = append(owner.selfClasses, spec.basis)
	owner.addConstructor(spec.basis, rep.slot(OpNew))

	tf.log.Info("class adopted", zap.String("name", spec.name), zap.String("owner", owner.name))
	return owner, nil
}

// discover implements §4.5's find-or-create registry callback: acquire the
// factory lock, recheck the registry (another goroutine may have
// discovered the same host class first), then run §4.3's discovery
// policy, publishing whatever it decides on under the same locking
// discipline the rest of construction uses.
func (tf *TypeFactory) discover(f *Frame, host reflect.Type) (*Representation, *BaseException) {
	tf.constructionLock.Lock(f)
	defer tf.constructionLock.Unlock(f)

	if rep, ok := tf.registry.Lookup(host); ok {
		return rep, nil
	}

	if pt, ok := craftedPyTypeOf(host); ok {
		rep := pt.rep
		tf.registry.publish(host, rep)
		tf.log.Info("representation discovered via crafted marker", zap.String("basis", host.String()))
		return rep, nil
	}

	for anc := host; anc.Kind() == reflect.Struct && anc.NumField() > 0; {
		field := anc.Field(0)
		if !field.Anonymous {
			break
		}
		anc = field.Type
		if rep, ok := tf.registry.Lookup(anc); ok {
			tf.registry.publish(host, rep)
			tf.log.Info("representation discovered via superclass walk",
				zap.String("basis", host.String()), zap.String("ancestor", anc.String()))
			return rep, nil
		}
	}

	rep := newRepresentation(host, ObjectType)
	tf.registry.publish(host, rep)
	tf.log.Warn("synthetic representation created, falling back to object",
		zap.String("basis", host.String()))
	return rep, nil
}

// craftedPyObject is the "crafted Python object" marker from §4.3: a host
// struct built deliberately for this runtime can expose its own fixed
// PyType directly, short-circuiting the superclass walk.
type craftedPyObject interface {
	PyType() *PyType
}

var craftedPyObjectType = reflect.TypeOf((*craftedPyObject)(nil)).Elem()

// craftedPyTypeOf reports host's PyType via the crafted marker, if host
// implements it on a pointer receiver. The zero-valued instance used to
// invoke the method must never be exposed to Python code; well-behaved
// markers return a fixed value independent of instance state.
func craftedPyTypeOf(host reflect.Type) (*PyType, bool) {
	if host.Kind() != reflect.Struct {
		return nil, false
	}
	if !reflect.PtrTo(host).Implements(craftedPyObjectType) {
		return nil, false
	}
	instance, ok := reflect.New(host).Interface().(craftedPyObject)
	if !ok {
		return nil, false
	}
	return instance.PyType(), true
}

// exposeMembers implements step 6: the reflective exposure pass. It turns
// each methodSpec/memberSpec/getSetSpec on spec into a Descriptor and
// installs it in t's attribute dict, the same restricted-reflection shape
// as the teacher's prepareBuiltinType (private to this package, so no
// external type can spoof exposure).
func (tf *TypeFactory) exposeMembers(t *PyType, spec *TypeSpec) {
	for _, m := range spec.methods {
		fn := newBuiltinFunction(m.name, m.fn)
		t.Dict().set(m.name, newMethodDescriptor(t, m.name, fn.ToObject()).ToObject())
		if sm, ok := specialMethodByName(m.name); ok {
			h := newSlotForKind(specialMethodTable[sm].kind)
			h.wrapCallable(fn.ToObject())
			t.rep.setSlot(sm, h)
		}
	}
	for _, m := range spec.members {
		t.Dict().set(m.name, newMemberDescriptor(t, m.name, m.field).ToObject())
	}
	for _, g := range spec.getsets {
		t.Dict().set(g.name, newGetSetDescriptor(t, g.name, g.getter, g.setter).ToObject())
	}
}

// inheritSlots fills every dispatch-vector entry FromSpec's own steps left
// empty by copying the first non-empty handle found walking t's MRO after
// itself, the teacher's prepareType "inherit slots from typ's mro" pass
// ported to the Representation-per-type shape (§4.2): without this, a
// built class would have no __getattribute__/__hash__/__repr__/... of its
// own and every default object behavior would silently stop working the
// moment a TypeSpec didn't re-declare it.
func inheritSlots(t *PyType) {
	for sm := SpecialMethod(0); sm < numSpecialMethods; sm++ {
		if !t.rep.slot(sm).empty() {
			continue
		}
		for _, base := range t.mro[1:] {
			if h := base.rep.slot(sm); !h.empty() {
				t.rep.setSlot(sm, h)
				break
			}
		}
	}
}

// wireSlots implements step 7: explicit Slot() overrides from the spec are
// installed directly into the dispatch vector, and a matching
// WrapperDescriptor is published in the dict so the slot is also visible
// as an ordinary Python attribute (obj.__add__), mirroring the teacher's
// slot.makeCallable contract.
func (tf *TypeFactory) wireSlots(t *PyType, spec *TypeSpec) {
	for sm, handle := range spec.slots {
		t.rep.setSlot(sm, handle)
		if callable := handle.makeCallable(t, sm.Name()); callable != nil {
			t.Dict().set(sm.Name(), newWrapperDescriptor(t, sm.Name(), callable).ToObject())
		}
	}
}
