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
	"unsafe"
)

type typeFlag int

const (
	// typeFlagInstantiable is set when instances can be created via
	// __new__. Cleared for types like NoneType that must stay singletons.
	typeFlagInstantiable typeFlag = 1 << iota
	// typeFlagBasetype is set when the type can be used as a base class.
	typeFlagBasetype typeFlag = 1 << iota
	typeFlagDefault          = typeFlagInstantiable | typeFlagBasetype
)

// typeVariant distinguishes the three PyType shapes from §4.6: Simple (one
// host class, no adoption, no __class__ reassignment), Adoptive (more than
// one host class backs one Python class), Replaceable (instances may
// have __class__ reassigned post-construction to another type compatible
// with the same basis).
type typeVariant int

const (
	variantSimple typeVariant = iota
	variantAdoptive
	variantReplaceable
)

// PyType represents a Python type object: `type` itself, `object`, and
// everything a TypeFactory builds from a TypeSpec. It generalizes the
// teacher's single Type struct (basis + bases + mro + flags + slots) by
// pulling the dispatch vector out into a separate Representation value
// (§4.2) and tagging each instance with which of the three variants from
// §4.6 it is.
type PyType struct {
	Object

	name    string
	basis   reflect.Type
	bases   []*PyType
	mro     []*PyType
	flags   typeFlag
	variant typeVariant

	// rep is this type's own dispatch table - the Representation that
	// instances of the primary basis carry a pointer to. Each adopted host
	// class gets a Representation of its own whose type is this PyType;
	// see selfClasses.
	rep *Representation

	// replaceableMembers is not populated by FromSpec and not consulted by
	// SetClass, which admits a __class__ reassignment between any two
	// Replaceable types sharing the same basis.
	replaceableMembers []*PyType

	// selfClasses lists every host Go class legally acceptable as self for
	// this PyType (§4.2/§4.4): the primary basis first, then each adopted
	// basis (one per sibling Representation sharing this PyType), then any
	// accepted basis (sharing the primary Representation).
	selfClasses []reflect.Type

	// constructors catalogues, per host basis, the __new__ handle that
	// allocates an instance of that basis (§4.6's "constructor catalogue"):
	// normally just the primary basis, but an Adoptive type accumulates one
	// entry per adopted basis so a base class's __new__ can still allocate
	// the right concrete host struct for a given subclass representation.
	constructors map[reflect.Type]slot

	// immutable records whether this type was built with the IMMUTABLE
	// feature (§4.4): if set, Dict() is frozen once FromSpec publishes the
	// type and IsMutable reports false.
	immutable bool
}

var basisTypes = map[reflect.Type]*Representation{}

var typeBasis = reflect.TypeOf(PyType{})

// typeRep returns the Representation every PyType instance's Object header
// points to - TypeType's own Representation, since every class is an
// instance of `type` (or a metaclass descended from it). Bootstrap
// populates TypeType before any other PyType is built, so this is always
// valid by the time newBasisType/newSimpleType call it.
func typeRep() *Representation {
	return TypeType.rep
}

func toTypeUnsafe(o *Object) *PyType {
	return (*PyType)(unsafe.Pointer(o))
}

// ToObject upcasts t to an Object.
func (t *PyType) ToObject() *Object {
	return &t.Object
}

// Name returns t's bare class name.
func (t *PyType) Name() string {
	return t.name
}

// FullName returns t's dotted name including __module__, falling back to
// the bare name when no module attribute is set - matches the teacher's
// Type.FullName.
func (t *PyType) FullName(f *Frame) (string, *BaseException) {
	if v, ok := t.Dict().get("__module__"); ok {
		if v.Type() == StrType {
			if m := toStrUnsafe(v).Value(); m != "builtins" {
				return fmt.Sprintf("%s.%s", m, t.name), nil
			}
		}
	}
	return t.name, nil
}

// Variant reports which of the three shapes (§4.6) t is.
func (t *PyType) Variant() string {
	switch t.variant {
	case variantAdoptive:
		return "adoptive"
	case variantReplaceable:
		return "replaceable"
	default:
		return "simple"
	}
}

// MRO returns t's linearized method resolution order, t first.
func (t *PyType) MRO() []*PyType {
	return t.mro
}

// Bases returns t's direct base classes, in declaration order.
func (t *PyType) Bases() []*PyType {
	return t.bases
}

// isSubclass reports whether sub is t or has t anywhere in its MRO.
func isSubclass(sub, t *PyType) bool {
	for _, m := range sub.mro {
		if m == t {
			return true
		}
	}
	return false
}

// mroLookup walks t's MRO looking up name in each class's attribute dict,
// stopping at the first hit - the teacher's mroLookup, used by attribute
// lookup and descriptor resolution.
func mroLookup(t *PyType, name string) (*Object, bool) {
	for _, m := range t.mro {
		if v, ok := m.Dict().get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// IsSubtypeOf reports whether t is other or a descendant of other (§4.6).
// It must stay total even on a partially-built type: a type still under
// construction has no mro yet, so the fallback chains through base pointers
// (first declared base only, matching single-inheritance bootstrap types)
// until it reaches the root `object` sentinel.
func (t *PyType) IsSubtypeOf(other *PyType) bool {
	if t.mro != nil {
		return isSubclass(t, other)
	}
	for cur := t; cur != nil; {
		if cur == other {
			return true
		}
		if len(cur.bases) == 0 {
			return false
		}
		cur = cur.bases[0]
	}
	return false
}

// Check is the subtype predicate: obj's type is t or a descendant of t.
func (t *PyType) Check(obj *Object) bool {
	return obj.Type().IsSubtypeOf(t)
}

// CheckExact is the identity predicate: obj's type is exactly t.
func (t *PyType) CheckExact(obj *Object) bool {
	return obj.Type() == t
}

// Lookup walks t's MRO for name, returning the raw dict entry with no
// descriptor __get__ invoked (§4.6) - the public counterpart to the
// package-private mroLookup used by attribute dispatch.
func (t *PyType) Lookup(name string) (*Object, bool) {
	return mroLookup(t, name)
}

// SelfClasses reports every host Go class legally acceptable as self for t:
// the primary basis at index 0, then each adopted basis, then any accepted
// basis (§4.2, §4.4).
func (t *PyType) SelfClasses() []reflect.Type {
	return t.selfClasses
}

// Constructors returns t's constructor catalogue (§4.6): the __new__
// handle to use for each host basis t owns, letting a base class's
// constructor path allocate the right concrete struct for a subclass
// representation instead of only its own.
func (t *PyType) Constructors() map[reflect.Type]slot {
	return t.constructors
}

func (t *PyType) addConstructor(basis reflect.Type, h slot) {
	if t.constructors == nil {
		t.constructors = make(map[reflect.Type]slot)
	}
	if h == nil {
		h = theEmptySlot
	}
	t.constructors[basis] = h
}

// IsSequence reports whether t exposes __getitem__ (a minimal sequence
// protocol stand-in; this core does not distinguish sequences from
// mappings, per spec.md's own scope cut).
func (t *PyType) IsSequence() bool {
	return !t.rep.slot(OpGetItem).empty()
}

// IsIterable reports whether t exposes __iter__.
func (t *PyType) IsIterable() bool {
	return !t.rep.slot(OpIter).empty()
}

// IsIterator reports whether t exposes __next__.
func (t *PyType) IsIterator() bool {
	return !t.rep.slot(OpNext).empty()
}

// IsDescr reports whether t is a descriptor type (exposes __get__).
func (t *PyType) IsDescr() bool {
	return !t.rep.slot(OpGet).empty()
}

// IsDataDescr reports whether t is a data descriptor (exposes both
// __get__ and __set__) - data descriptors take priority over instance
// dict entries in attribute lookup.
func (t *PyType) IsDataDescr() bool {
	return !t.rep.slot(OpGet).empty() && !t.rep.slot(OpSet).empty()
}

// IsMethodDescr reports whether t is a callable, non-data descriptor (a
// method-like descriptor: bound via __get__, invoked via __call__).
func (t *PyType) IsMethodDescr() bool {
	return t.IsDescr() && !t.IsDataDescr() && !t.rep.slot(OpCall).empty()
}

// IsMutable reports whether t's attribute dict still accepts writes -
// false once built with the IMMUTABLE feature (§4.4).
func (t *PyType) IsMutable() bool {
	return !t.immutable
}

// SetClass implements `__class__` reassignment for Replaceable types
// (§4.6): permitted iff newType's primary host class equals o's current
// type's primary host class, and both types are Replaceable. On mismatch it
// raises a TypeError naming both types; on success it mutates o's
// Representation in place, preserving identity.
func SetClass(f *Frame, o *Object, newType *PyType) *BaseException {
	oldType := o.Type()
	if oldType.variant != variantReplaceable || newType.variant != variantReplaceable {
		return f.RaiseType(TypeErrorType, fmt.Sprintf(
			"__class__ assignment only supported for heap types, not '%s' or '%s'", oldType.Name(), newType.Name()))
	}
	if oldType.basis != newType.basis {
		return f.RaiseType(TypeErrorType, fmt.Sprintf(
			"__class__ assignment: '%s' object layout differs from '%s'", oldType.Name(), newType.Name()))
	}
	o.rep = newType.rep
	return nil
}

// mroMerge is the C3 linearization merge step, ported from the teacher's
// type.go unchanged: given the MROs of each base plus the base list itself,
// repeatedly pick the first head that appears nowhere else but at a head.
func mroMerge(seqs [][]*PyType) []*PyType {
	var res []*PyType
	numSeqs := len(seqs)
	hasNonEmptySeqs := true
	for hasNonEmptySeqs {
		var cand *PyType
		for i := 0; i < numSeqs && cand == nil; i++ {
			seq := seqs[i]
			if len(seq) == 0 {
				continue
			}
			cand = seq[0]
		RejectCandidate:
			for _, seq := range seqs {
				numElems := len(seq)
				for j := 1; j < numElems; j++ {
					if seq[j] == cand {
						cand = nil
						break RejectCandidate
					}
				}
			}
		}
		if cand == nil {
			return nil
		}
		res = append(res, cand)
		hasNonEmptySeqs = false
		for i, seq := range seqs {
			if len(seq) > 0 {
				if seq[0] == cand {
					seqs[i] = seq[1:]
				}
				if len(seqs[i]) > 0 {
					hasNonEmptySeqs = true
				}
			}
		}
	}
	return res
}

// mroCalc computes t's MRO from its bases' already-computed MROs, per C3.
func mroCalc(t *PyType) []*PyType {
	seqs := [][]*PyType{{t}}
	for _, b := range t.bases {
		seqs = append(seqs, b.mro)
	}
	seqs = append(seqs, t.bases)
	return mroMerge(seqs)
}

// basisSelect picks the basis every subclass must share: either the
// explicit basis given to newBasisType, or the first non-object basis
// found among bases (the teacher's basisSelect/basisParent logic),
// enforcing §4.2's "one host layout per inheritance chain" rule.
func basisSelect(bases []*PyType, basis reflect.Type) (reflect.Type, error) {
	if basis != nil {
		return basis, nil
	}
	for _, b := range bases {
		if b.basis != objectBasis {
			return b.basis, nil
		}
	}
	return objectBasis, nil
}

// newBasisType creates a new builtin type whose instances are backed by
// basis, the way the teacher's newBasisType creates int/str/dict/etc. It
// registers a fresh Representation for basis in the global basisTypes map
// and returns the PyType that owns it. Used only for the handful of
// bootstrap classes (descriptor, function, BaseException, str, int, ...);
// object and type are built by hand in bootstrapObjectAndType, and
// everything else goes through TypeFactory.
func newBasisType(name string, basis reflect.Type, base *PyType) *PyType {
	bases := []*PyType{base}
	if base == nil {
		bases = nil
	}
	t := &PyType{
		name:  name,
		basis: basis,
		bases: bases,
		flags: typeFlagDefault,
	}
	rep := newRepresentation(basis, t)
	t.rep = rep
	t.Object.rep = typeRep()
	t.selfClasses = []reflect.Type{basis}
	basisTypes[basis] = rep
	if len(bases) > 0 {
		t.mro = mroCalc(t)
	} else {
		t.mro = []*PyType{t}
	}
	inheritSlots(t)
	t.addConstructor(basis, t.rep.slot(OpNew))
	return t
}

// newSimpleType creates a Python-only subclass sharing base's basis - the
// teacher's newSimpleType, used for exception subclasses and other classes
// that add no new Go fields.
func newSimpleType(name string, base *PyType) *PyType {
	t := &PyType{
		name:  name,
		basis: base.basis,
		bases: []*PyType{base},
		flags: typeFlagDefault,
	}
	t.rep = newRepresentation(t.basis, t)
	t.Object.rep = typeRep()
	t.selfClasses = []reflect.Type{t.basis}
	t.mro = mroCalc(t)
	inheritSlots(t)
	t.addConstructor(t.basis, t.rep.slot(OpNew))
	return t
}
