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
	"sync/atomic"
	"unsafe"
)

var objectBasis = reflect.TypeOf(Object{})

// Object is the header every Python value carries: a pointer to the
// Representation that governs its dispatch, and (for classes that allow
// attributes) an attribute dictionary. Concrete values embed Object (by
// value) as their first field -
// the basis of Adoptive typing (§4.2): a host struct is adopted into the
// Python universe by giving it this header.
type Object struct {
	rep *Representation
	// dict holds instance attributes. It is nil until first write for
	// classes without __slots__-style restriction; the atomic.Pointer
	// indirection matches the teacher's object.go, where Dict()/setDict
	// race against concurrent attribute writes from other goroutines.
	dict unsafe.Pointer // *attrDict
}

// newObject allocates a bare Object governed by rep. Concrete types embed
// this rather than constructing it standalone.
func newObject(rep *Representation) *Object {
	return &Object{rep: rep}
}

// ptrOf returns o's address as an untyped pointer, used by the
// to<Type>Unsafe family to reinterpret an *Object as the concrete struct
// that embeds it - valid because every such struct embeds Object as its
// first field, giving it the same address.
func ptrOf(o *Object) unsafe.Pointer {
	return unsafe.Pointer(o)
}

func uintptrOf(p unsafe.Pointer) uintptr {
	return uintptr(p)
}

// Representation returns the Representation governing o's dispatch.
func (o *Object) Representation() *Representation {
	return o.rep
}

// Type returns the Python type of o, resolving the instance-typed case
// (objects whose type is *PyType itself, i.e. classes) the same way the
// teacher's Object.Type does: via instanceTypeFunc when the Representation
// carries one, otherwise the fixed typ.
func (o *Object) Type() *PyType {
	return o.rep.typeOf(o)
}

// Dict returns o's attribute dictionary, allocating one on first use. It
// mirrors the teacher's Object.Dict / setDict compare-and-swap dance so
// concurrent first-writes from different goroutines don't clobber one
// another.
func (o *Object) Dict() *attrDict {
	p := atomic.LoadPointer(&o.dict)
	if p != nil {
		return (*attrDict)(p)
	}
	nd := newAttrDict()
	if atomic.CompareAndSwapPointer(&o.dict, nil, unsafe.Pointer(nd)) {
		return nd
	}
	return (*attrDict)(atomic.LoadPointer(&o.dict))
}

// hasDict reports whether o has ever had an attribute dictionary
// allocated, without allocating one as a side effect.
func (o *Object) hasDict() bool {
	return atomic.LoadPointer(&o.dict) != nil
}

// ToObject is the identity conversion; present because every Python value
// type in this package (Str, BaseException, PyType, ...) provides a
// ToObject() *Object method, and *Object's own is the base case other
// embedders inherit implicitly by embedding Object as their first field.
func (o *Object) ToObject() *Object {
	return o
}

// isInstance reports whether o's type is t or a (possibly indirect)
// subclass of t, per the teacher's object.go isInstance helper.
func isInstance(o *Object, t *PyType) bool {
	return isSubclass(o.Type(), t)
}

// objectGetAttribute implements the default attribute lookup protocol (type dict
// MRO walk, then instance dict, then AttributeError), used as
// object.__getattribute__ and inherited by every class that doesn't
// override it. Grounded on the teacher's objectGetAttribute.
func objectGetAttribute(f *Frame, o *Object, name *Str) (*Object, *BaseException) {
	key := name.Value()
	typ := o.Type()

	if descr, foundOnType := mroLookup(typ, key); foundOnType {
		if get := descr.Type().rep.slot(OpGet); !get.empty() {
			return invokeGet(f, get, descr, o, typ)
		}
	}

	if o.hasDict() {
		if v, ok := o.Dict().get(key); ok {
			return v, nil
		}
	}

	if descr, foundOnType := mroLookup(typ, key); foundOnType {
		return descr, nil
	}

	return nil, f.RaiseType(AttributeErrorType, fmt.Sprintf(
		"'%s' object has no attribute '%s'", typ.Name(), key))
}

// objectSetAttr implements object.__setattr__: a data descriptor found on the
// type wins over an instance dict entry; otherwise the instance dict is
// written directly. Grounded on the teacher's objectSetAttr.
func objectSetAttr(f *Frame, o *Object, name *Str, value *Object) *BaseException {
	key := name.Value()
	typ := o.Type()

	if descr, found := mroLookup(typ, key); found {
		if set := descr.Type().rep.slot(OpSet); !set.empty() {
			return invokeSet(f, set, descr, o, value)
		}
	}

	if err := o.Dict().set(key, value); err != nil {
		return f.RaiseType(TypeErrorType, fmt.Sprintf("can't set attribute '%s': %s", key, err.Error()))
	}
	return nil
}

// objectDelAttr implements object.__delattr__, the del-descriptor-or-instance-dict
// mirror of objectSetAttr.
func objectDelAttr(f *Frame, o *Object, name *Str) *BaseException {
	key := name.Value()
	typ := o.Type()

	if descr, found := mroLookup(typ, key); found {
		if del := descr.Type().rep.slot(OpDelete); !del.empty() {
			return invokeDelete(f, del, descr, o)
		}
	}

	if o.hasDict() {
		if _, ok := o.Dict().del(key); ok {
			return nil
		}
	}

	return f.RaiseType(AttributeErrorType, fmt.Sprintf(
		"'%s' object has no attribute '%s'", typ.Name(), key))
}

// objectHash is the default __hash__: identity-based, the teacher's
// objectHash (hash of the pointer value).
func objectHash(f *Frame, o *Object) (*Object, *BaseException) {
	return NewInt(int(uintptr(unsafe.Pointer(o)))).ToObject(), nil
}

// objectRepr is the default __repr__: "<ClassName object at 0x...>",
// matching the teacher's objectRepr format exactly.
func objectRepr(f *Frame, o *Object) (*Object, *BaseException) {
	s := fmt.Sprintf("<%s object at %p>", o.Type().Name(), o)
	return NewStr(s).ToObject(), nil
}

// objectNew is object.__new__: allocate a bare instance of typ with no
// further initialization, matching the teacher's objectNew.
func objectNew(f *Frame, typ *PyType, args Args, kwargs KWArgs) (*Object, *BaseException) {
	if typ.flags&typeFlagInstantiable == 0 {
		return nil, f.RaiseType(TypeErrorType, fmt.Sprintf("cannot create '%s' instances", typ.Name()))
	}
	return newObject(typ.rep), nil
}

// objectInit is the default object.__init__: a no-op that rejects
// unexpected arguments when the class hasn't overridden __new__, matching
// CPython's (and the teacher's) behavior.
func objectInit(f *Frame, o *Object, args Args, kwargs KWArgs) (*Object, *BaseException) {
	if len(args) != 0 || len(kwargs) != 0 {
		if o.Type().rep.slot(OpNew) == ObjectType.rep.slot(OpNew) {
			return nil, f.RaiseType(TypeErrorType, "object.__init__() takes no parameters")
		}
	}
	return None, nil
}
