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
)

// descriptorKind is the capability variant a Descriptor plays -
// Design Notes' "descriptor protocol polymorphism": rather than a type
// hierarchy of descriptor subclasses, attribute machinery branches on this
// tag. Grounded on the teacher's descriptor.go Property/field-descriptor
// split, generalized to the four named variants.
type descriptorKind int

const (
	// descriptorMethod wraps a Go method exposed for Python call syntax
	// (obj.method(...)); __get__ binds it to the instance as a Method.
	descriptorMethod descriptorKind = iota
	// descriptorMember reads/writes a tagged field directly via reflection.
	descriptorMember
	// descriptorGetSet wraps an explicit getter/setter pair.
	descriptorGetSet
	// descriptorWrapper exposes a slot (e.g. __add__) as a callable
	// attribute, the makeCallable() result from slots.go.
	descriptorWrapper
)

// Descriptor is the common shape for every attribute a TypeFactory exposes
// reflectively: owning class, name, and the kind-specific behavior.
// Matches the spec's Descriptor entity: "owning type (objclass); attribute
// name; handle or getter/setter".
type Descriptor struct {
	Object
	objclass *PyType
	name     string
	kind     descriptorKind

	// member descriptor fields
	field reflect.StructField

	// get-set descriptor fields
	getter func(f *Frame, o *Object) (*Object, *BaseException)
	setter func(f *Frame, o, value *Object) *BaseException

	// wrapper/method descriptor fields
	wrapped *Object
}

var descriptorBasis = reflect.TypeOf(Descriptor{})

func toDescriptorUnsafe(o *Object) *Descriptor {
	return (*Descriptor)(ptrOf(o))
}

// ToObject upcasts d to *Object.
func (d *Descriptor) ToObject() *Object {
	return &d.Object
}

// ObjClass returns the type d was declared on. §3's invariant -
// "descriptor.objclass is on the MRO of any legal self" - is checked by
// descriptorGet below rather than merely documented.
func (d *Descriptor) ObjClass() *PyType {
	return d.objclass
}

func newMethodDescriptor(objclass *PyType, name string, wrapped *Object) *Descriptor {
	return &Descriptor{Object: Object{rep: descriptorRep()}, objclass: objclass, name: name, kind: descriptorMethod, wrapped: wrapped}
}

func newMemberDescriptor(objclass *PyType, name string, field reflect.StructField) *Descriptor {
	return &Descriptor{Object: Object{rep: descriptorRep()}, objclass: objclass, name: name, kind: descriptorMember, field: field}
}

func newGetSetDescriptor(objclass *PyType, name string,
	getter func(*Frame, *Object) (*Object, *BaseException),
	setter func(*Frame, *Object, *Object) *BaseException) *Descriptor {
	return &Descriptor{Object: Object{rep: descriptorRep()}, objclass: objclass, name: name, kind: descriptorGetSet, getter: getter, setter: setter}
}

func newWrapperDescriptor(objclass *PyType, name string, wrapped *Object) *Descriptor {
	return &Descriptor{Object: Object{rep: descriptorRep()}, objclass: objclass, name: name, kind: descriptorWrapper, wrapped: wrapped}
}

// descriptorGet implements __get__ for every Descriptor variant, branching
// on kind rather than dispatching through an interface hierarchy.
func descriptorGet(f *Frame, desc, inst *Object, owner *PyType) (*Object, *BaseException) {
	d := toDescriptorUnsafe(desc)
	if inst == nil {
		switch d.kind {
		case descriptorMethod, descriptorWrapper:
			return d.wrapped, nil
		}
		return desc, nil
	}
	if !isSubclass(inst.Type(), d.objclass) {
		return nil, f.RaiseType(TypeErrorType, fmt.Sprintf(
			"descriptor %q for %q objects doesn't apply to a %q object",
			d.name, d.objclass.Name(), inst.Type().Name()))
	}
	switch d.kind {
	case descriptorMethod, descriptorWrapper:
		return newBoundMethod(d.wrapped, inst).ToObject(), nil
	case descriptorMember:
		rv := reflect.NewAt(d.objclass.basis, ptrOf(inst)).Elem().FieldByIndex(d.field.Index)
		if wrapped, ok := rv.Interface().(*Object); ok {
			if wrapped == nil {
				return nil, f.RaiseType(AttributeErrorType, fmt.Sprintf("%q object attribute %q is unset", inst.Type().Name(), d.name))
			}
			return wrapped, nil
		}
		return WrapNative(f, rv)
	case descriptorGetSet:
		return d.getter(f, inst)
	}
	return nil, f.RaiseType(RuntimeErrorType, "unreachable descriptor kind")
}

// descriptorSet implements __set__ for the variants that support
// assignment (member, get-set); method and wrapper descriptors are
// read-only, matching CPython.
func descriptorSet(f *Frame, desc, inst, value *Object) *BaseException {
	d := toDescriptorUnsafe(desc)
	switch d.kind {
	case descriptorMember:
		rv := reflect.NewAt(d.objclass.basis, ptrOf(inst)).Elem().FieldByIndex(d.field.Index)
		if rv.Type() == reflect.TypeOf((*Object)(nil)) {
			rv.Set(reflect.ValueOf(value))
			return nil
		}
		return f.RaiseType(AttributeErrorType, fmt.Sprintf("attribute %q is read-only", d.name))
	case descriptorGetSet:
		if d.setter == nil {
			return f.RaiseType(AttributeErrorType, fmt.Sprintf("attribute %q of %q objects is not writable", d.name, d.objclass.Name()))
		}
		return d.setter(f, inst, value)
	}
	return f.RaiseType(AttributeErrorType, fmt.Sprintf("attribute %q of %q objects is not writable", d.name, d.objclass.Name()))
}
