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

import "reflect"

// typeFeature is a bit describing a requested capability of a TypeSpec,
// used by TypeFactory to pick which of the three PyType variants (§4.6) the
// built class ends up as.
type typeFeature int

const (
	featureAdoptive typeFeature = 1 << iota
	featureReplaceable
	featureAbstract  // not instantiable directly
	featureFinal     // not usable as a base
	featureImmutable // attribute dict frozen after construction (§4.4)
)

// Feature is a TypeSpec capability flag from §6's public builder surface,
// turned on/off via Add/Remove as an alternative to the dedicated
// per-feature setters (Abstract/Final/Replaceable).
type Feature int

const (
	// FeatureImmutable freezes the built type's attribute dict once
	// FromSpec publishes it.
	FeatureImmutable Feature = iota
	// FeatureReplaceable admits __class__ reassignment among compatible
	// types (§4.6).
	FeatureReplaceable
	// FeatureInstantiable exposes a constructor; the inverse of the
	// internal "abstract" bit, which defaults to instantiable.
	FeatureInstantiable
)

// Add turns on feature, per §6's add(Feature) builder option.
func (s *TypeSpec) Add(feature Feature) *TypeSpec {
	switch feature {
	case FeatureImmutable:
		s.features |= featureImmutable
	case FeatureReplaceable:
		s.features |= featureReplaceable
	case FeatureInstantiable:
		s.features &^= featureAbstract
	}
	return s
}

// Remove turns off feature, per §6's remove(Feature) builder option.
func (s *TypeSpec) Remove(feature Feature) *TypeSpec {
	switch feature {
	case FeatureImmutable:
		s.features &^= featureImmutable
	case FeatureReplaceable:
		s.features &^= featureReplaceable
	case FeatureInstantiable:
		s.features |= featureAbstract
	}
	return s
}

// TypeSpec is the declarative description of a class to build, fed to
// TypeFactory.FromSpec. It is a fresh fluent builder - there is no
// equivalent object in the teacher, whose types are all hand-written Go
// literals - grounded on the functional-option composition style of the
// DI-container reference code's RegisterOption (Singleton()/
// WithDependencies()/...), adapted to type construction instead of service
// registration.
type TypeSpec struct {
	name     string
	basis    reflect.Type
	bases    []*PyType
	features typeFeature

	// methods/members/getsets are populated by the With* builder methods
	// below and turned into Descriptors by TypeFactory.fromSpec's
	// reflective exposure pass.
	methods []methodSpec
	members []memberSpec
	getsets []getSetSpec

	// adopts names the already-published host class whose PyType the
	// spec's basis joins: the basis gets a new Representation of its own
	// that reports that existing PyType - the Adoptive variant's defining
	// feature (§4.6).
	adopts reflect.Type

	// accepts lists host classes that become legal as self directly on
	// this spec's own Representation, with no Representation of their
	// own (§4.4's accept(class...)).
	accepts []reflect.Type

	// doc is the docstring TypeFactory installs as __doc__ (§4.4/§6).
	doc string

	// slots holds direct dispatch-vector overrides installed via Slot,
	// keyed by SpecialMethod rather than by name.
	slots map[SpecialMethod]slot
}

type methodSpec struct {
	name string
	fn   Func
}

type memberSpec struct {
	name  string
	field reflect.StructField
}

type getSetSpec struct {
	name   string
	getter func(*Frame, *Object) (*Object, *BaseException)
	setter func(*Frame, *Object, *Object) *BaseException
}

// NewTypeSpec starts a builder for a class named name, backed by basis.
func NewTypeSpec(name string, basis reflect.Type) *TypeSpec {
	return &TypeSpec{name: name, basis: basis}
}

// Extends appends base to the spec's base-class list, in declaration
// order (first base is first in the C3 merge, same as Python's class
// statement).
func (s *TypeSpec) Extends(bases ...*PyType) *TypeSpec {
	s.bases = append(s.bases, bases...)
	return s
}

// Adoptive marks the spec's basis as an additional host class of the
// PyType that already owns owner: FromSpec mints a new Representation for
// the basis that reports owner's PyType, and adds the basis to that
// PyType's self-classes (§4.6). No new PyType is built.
func (s *TypeSpec) Adoptive(owner reflect.Type) *TypeSpec {
	s.features |= featureAdoptive
	s.adopts = owner
	return s
}

// Accept adds classes as legal self-classes that map straight onto this
// spec's own Representation instead of getting one of their own (§4.4) -
// distinct from Adoptive, which mints a new Representation sharing the
// built PyType.
func (s *TypeSpec) Accept(classes ...reflect.Type) *TypeSpec {
	s.accepts = append(s.accepts, classes...)
	return s
}

// Doc supplies the docstring TypeFactory installs as __doc__ (§4.4).
func (s *TypeSpec) Doc(doc string) *TypeSpec {
	s.doc = doc
	return s
}

// Replaceable marks the spec's instances as eligible for __class__
// reassignment (§4.6). SetClass checks compatibility (both types
// Replaceable, same basis) at reassignment time; FromSpec checks nothing
// further.
func (s *TypeSpec) Replaceable() *TypeSpec {
	s.features |= featureReplaceable
	return s
}

// Abstract prevents direct instantiation (object.__new__ style guard),
// used for types like NoneType that exist as a single shared singleton.
func (s *TypeSpec) Abstract() *TypeSpec {
	s.features |= featureAbstract
	return s
}

// Final prevents the built class from being used as a base.
func (s *TypeSpec) Final() *TypeSpec {
	s.features |= featureFinal
	return s
}

// WithMethod exposes fn as a Python-callable method named name - becomes a
// MethodDescriptor.
func (s *TypeSpec) WithMethod(name string, fn Func) *TypeSpec {
	s.methods = append(s.methods, methodSpec{name, fn})
	return s
}

// WithMember exposes the Go struct field matching fieldName as a Python
// attribute named name - becomes a MemberDescriptor. fieldName is resolved
// against basis by reflection here, and WithMember panics if basis has no
// such field.
func (s *TypeSpec) WithMember(name, fieldName string) *TypeSpec {
	field, ok := s.basis.FieldByName(fieldName)
	if !ok {
		panic("runtime: TypeSpec.WithMember: no such field " + fieldName + " on " + s.basis.String())
	}
	s.members = append(s.members, memberSpec{name, field})
	return s
}

// WithGetSet exposes an explicit getter/setter pair as a Python attribute -
// becomes a GetSetDescriptor. setter may be nil for a read-only attribute.
func (s *TypeSpec) WithGetSet(name string,
	getter func(*Frame, *Object) (*Object, *BaseException),
	setter func(*Frame, *Object, *Object) *BaseException) *TypeSpec {
	s.getsets = append(s.getsets, getSetSpec{name, getter, setter})
	return s
}

// Slot installs fn directly into the built type's dispatch vector for sm,
// bypassing the reflective exposure pass - used for special methods, which
// are identified by slot rather than by name lookup.
func (s *TypeSpec) Slot(sm SpecialMethod, handle slot) *TypeSpec {
	if s.slots == nil {
		s.slots = make(map[SpecialMethod]slot)
	}
	s.slots[sm] = handle
	return s
}
