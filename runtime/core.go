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

// Package runtime implements the object and type subsystem of a
// Python-compatible runtime: the SpecialMethod catalogue, Representation,
// TypeRegistry, TypeSpec, TypeFactory, the three PyType variants and the
// Bootstrap controller that brings the universe up.
package runtime

import (
	"fmt"
	"log"
)

var logFatal = func(msg string) { log.Fatal(msg) }

const errUnsupportedOperand = "unsupported operand type(s) for %s: '%s' and '%s'"

// Abs is equivalent to the Python expression abs(o).
func Abs(f *Frame, o *Object) (*Object, *BaseException) {
	abs := o.Type().rep.slot(OpAbs)
	if abs.empty() {
		return nil, f.RaiseType(TypeErrorType, fmt.Sprintf("bad operand type for abs(): '%s'", o.Type().Name()))
	}
	return abs.(*unaryOpSlot).Fn(f, o)
}

// Add is equivalent to the Python expression v + w.
func Add(f *Frame, v, w *Object) (*Object, *BaseException) {
	return binaryOp(f, v, w, OpAdd, "+")
}

// Sub is equivalent to the Python expression v - w.
func Sub(f *Frame, v, w *Object) (*Object, *BaseException) {
	return binaryOp(f, v, w, OpSub, "-")
}

// Mul is equivalent to the Python expression v * w.
func Mul(f *Frame, v, w *Object) (*Object, *BaseException) {
	return binaryOp(f, v, w, OpMul, "*")
}

// And is equivalent to the Python expression v & w.
func And(f *Frame, v, w *Object) (*Object, *BaseException) {
	return binaryOp(f, v, w, OpAnd, "&")
}

// Xor is equivalent to the Python expression v ^ w.
func Xor(f *Frame, v, w *Object) (*Object, *BaseException) {
	return binaryOp(f, v, w, OpXor, "^")
}

// GetAttr is equivalent to the Python expression getattr(o, name, def).
func GetAttr(f *Frame, o *Object, name *Str, def *Object) (*Object, *BaseException) {
	getAttribute := o.Type().rep.slot(OpGetAttribute)
	if getAttribute.empty() {
		return nil, f.RaiseType(AttributeErrorType, fmt.Sprintf("'%s' has no attribute '%s'", o.Type().Name(), name.Value()))
	}
	result, raised := getAttribute.(*getAttributeSlot).Fn(f, o, name)
	if raised != nil && isInstance(raised.ToObject(), AttributeErrorType) && def != nil {
		f.RestoreExc(nil)
		return def, nil
	}
	return result, raised
}

// SetAttr is equivalent to the Python statement o.name = value.
func SetAttr(f *Frame, o *Object, name *Str, value *Object) *BaseException {
	setAttr := o.Type().rep.slot(OpSetAttr)
	if setAttr.empty() {
		return f.RaiseType(TypeErrorType, fmt.Sprintf("'%s' object has no __setattr__ method", o.Type().Name()))
	}
	return setAttr.(*setAttrSlot).Fn(f, o, name, value)
}

// DelAttr is equivalent to the Python statement del o.name.
func DelAttr(f *Frame, o *Object, name *Str) *BaseException {
	delAttr := o.Type().rep.slot(OpDelAttr)
	if delAttr.empty() {
		return f.RaiseType(TypeErrorType, fmt.Sprintf("'%s' object has no __delattr__ method", o.Type().Name()))
	}
	return delAttr.(*delAttrSlot).Fn(f, o, name)
}

// GetItem is equivalent to the Python expression o[key].
func GetItem(f *Frame, o, key *Object) (*Object, *BaseException) {
	getItem := o.Type().rep.slot(OpGetItem)
	if getItem.empty() {
		return nil, f.RaiseType(TypeErrorType, fmt.Sprintf("'%s' object has no attribute '__getitem__'", o.Type().Name()))
	}
	return getItem.(*getItemSlot).Fn(f, o, key)
}

// SetItem is equivalent to the Python statement o[key] = value.
func SetItem(f *Frame, o, key, value *Object) *BaseException {
	setItem := o.Type().rep.slot(OpSetItem)
	if setItem.empty() {
		return f.RaiseType(TypeErrorType, fmt.Sprintf("'%s' object has no attribute '__setitem__'", o.Type().Name()))
	}
	return setItem.(*setItemSlot).Fn(f, o, key, value)
}

// DelItem is equivalent to the Python statement del o[key].
func DelItem(f *Frame, o, key *Object) *BaseException {
	delItem := o.Type().rep.slot(OpDelItem)
	if delItem.empty() {
		return f.RaiseType(TypeErrorType, fmt.Sprintf("'%s' object does not support item deletion", o.Type().Name()))
	}
	return delItem.(*delItemSlot).Fn(f, o, key)
}

// Hash is equivalent to the Python expression hash(o).
func Hash(f *Frame, o *Object) (*Int, *BaseException) {
	hash := o.Type().rep.slot(OpHash)
	if hash.empty() {
		return nil, f.RaiseType(TypeErrorType, fmt.Sprintf("unhashable type: '%s'", o.Type().Name()))
	}
	h, raised := hash.(*unaryOpSlot).Fn(f, o)
	if raised != nil {
		return nil, raised
	}
	if h.Type() != IntType {
		return nil, f.RaiseType(TypeErrorType, "an integer is required")
	}
	return toIntUnsafe(h), nil
}

// Repr is equivalent to the Python expression repr(o). If o's __repr__
// recurses into itself (a container repr-ing its own contents) the inner
// call returns a placeholder rather than recursing forever, matching the
// teacher's repr re-entrancy guard.
func Repr(f *Frame, o *Object) (*Str, *BaseException) {
	if f.reprEnter(o) {
		return NewStr(fmt.Sprintf("<%s object at %p>", o.Type().Name(), o)), nil
	}
	defer f.reprLeave(o)

	repr := o.Type().rep.slot(OpRepr)
	if repr.empty() {
		name, raised := o.Type().FullName(f)
		if raised != nil {
			return nil, raised
		}
		return NewStr(fmt.Sprintf("<%s object at %p>", name, o)), nil
	}
	r, raised := repr.(*unaryOpSlot).Fn(f, o)
	if raised != nil {
		return nil, raised
	}
	if r.Type() != StrType {
		return nil, f.RaiseType(TypeErrorType, fmt.Sprintf("__repr__ returned non-string (type %s)", r.Type().Name()))
	}
	return toStrUnsafe(r), nil
}

// ToStr is equivalent to the Python expression str(o), falling back to
// __repr__ when __str__ isn't overridden, matching object.__str__.
func ToStr(f *Frame, o *Object) (*Str, *BaseException) {
	str := o.Type().rep.slot(OpStr)
	if str.empty() {
		return Repr(f, o)
	}
	r, raised := str.(*unaryOpSlot).Fn(f, o)
	if raised != nil {
		return nil, raised
	}
	if r.Type() != StrType {
		return nil, f.RaiseType(TypeErrorType, fmt.Sprintf("__str__ returned non-string (type %s)", r.Type().Name()))
	}
	return toStrUnsafe(r), nil
}

// IsTrue is equivalent to the Python expression bool(o).
func IsTrue(f *Frame, o *Object) (bool, *BaseException) {
	switch o {
	case True.ToObject():
		return true, nil
	case False.ToObject(), None:
		return false, nil
	}
	nonzero := o.Type().rep.slot(OpNonZero)
	if !nonzero.empty() {
		r, raised := nonzero.(*unaryOpSlot).Fn(f, o)
		if raised != nil {
			return false, raised
		}
		if r.Type() != BoolType {
			return false, f.RaiseType(TypeErrorType, fmt.Sprintf("__nonzero__ should return bool, returned %s", r.Type().Name()))
		}
		return toIntUnsafe(r).IsTrue(), nil
	}
	if length := o.Type().rep.slot(OpLen); !length.empty() {
		l, raised := length.(*unaryOpSlot).Fn(f, o)
		if raised != nil {
			return false, raised
		}
		return toIntUnsafe(l).IsTrue(), nil
	}
	return true, nil
}

// Eq is equivalent to the Python expression v == w.
func Eq(f *Frame, v, w *Object) (*Object, *BaseException) {
	r, raised := compareRich(f, OpEq, v, w)
	if raised != nil {
		return nil, raised
	}
	if r != NotImplemented {
		return r, nil
	}
	return GetBool(compareDefault(v, w) == 0).ToObject(), nil
}

// LT is equivalent to the Python expression v < w.
func LT(f *Frame, v, w *Object) (*Object, *BaseException) {
	r, raised := compareRich(f, OpLT, v, w)
	if raised != nil {
		return nil, raised
	}
	if r != NotImplemented {
		return r, nil
	}
	return GetBool(compareDefault(v, w) < 0).ToObject(), nil
}

// LE is equivalent to the Python expression v <= w.
func LE(f *Frame, v, w *Object) (*Object, *BaseException) {
	r, raised := compareRich(f, OpLE, v, w)
	if raised != nil {
		return nil, raised
	}
	if r != NotImplemented {
		return r, nil
	}
	return GetBool(compareDefault(v, w) <= 0).ToObject(), nil
}

// GT is equivalent to the Python expression v > w.
func GT(f *Frame, v, w *Object) (*Object, *BaseException) {
	r, raised := compareRich(f, OpGT, v, w)
	if raised != nil {
		return nil, raised
	}
	if r != NotImplemented {
		return r, nil
	}
	return GetBool(compareDefault(v, w) > 0).ToObject(), nil
}

// GE is equivalent to the Python expression v >= w.
func GE(f *Frame, v, w *Object) (*Object, *BaseException) {
	r, raised := compareRich(f, OpGE, v, w)
	if raised != nil {
		return nil, raised
	}
	if r != NotImplemented {
		return r, nil
	}
	return GetBool(compareDefault(v, w) >= 0).ToObject(), nil
}

// NE is equivalent to the Python expression v != w.
func NE(f *Frame, v, w *Object) (*Object, *BaseException) {
	r, raised := compareRich(f, OpNE, v, w)
	if raised != nil {
		return nil, raised
	}
	if r != NotImplemented {
		return r, nil
	}
	return GetBool(compareDefault(v, w) != 0).ToObject(), nil
}

// Contains is equivalent to the Python expression item in container. A
// container with no __contains__ raises TypeError (§8 scenario 4) rather
// than falling back to an O(n) __iter__-based scan - this core does not
// specify the iterator protocol's concrete bodies, only its discovery (see
// spec.md's Out-of-scope note).
func Contains(f *Frame, container, item *Object) (bool, *BaseException) {
	contains := container.Type().rep.slot(OpContains)
	if contains.empty() {
		return false, f.RaiseType(TypeErrorType, fmt.Sprintf(
			"'%s' object is not a container", container.Type().Name()))
	}
	r, raised := contains.(*binaryOpSlot).Fn(f, container, item)
	if raised != nil {
		return false, raised
	}
	return IsTrue(f, r)
}

// In is equivalent to the Python expression item in container - the
// argument order the `in` operator itself uses, item first.
func In(f *Frame, item, container *Object) (bool, *BaseException) {
	return Contains(f, container, item)
}

// invokeGet/invokeSet/invokeDelete adapt a resolved descriptor slot into a
// call, used by object.go's attribute lookup.
func invokeGet(f *Frame, s slot, desc, inst *Object, owner *PyType) (*Object, *BaseException) {
	return s.(*getSlot).Fn(f, desc, inst, owner)
}

func invokeSet(f *Frame, s slot, desc, inst, value *Object) *BaseException {
	return s.(*setSlot).Fn(f, desc, inst, value)
}

func invokeDelete(f *Frame, s slot, desc, inst *Object) *BaseException {
	return s.(*deleteSlot).Fn(f, desc, inst)
}

// binaryOp implements the subtype-first reflected-operand dispatch rule
// from §8: when type(w) is a proper subclass of type(v) that overrides the
// reflected slot, try it first; otherwise try v's forward slot, then w's
// reflected slot. Ported from the teacher's core.go binaryOp.
func binaryOp(f *Frame, v, w *Object, sm SpecialMethod, opName string) (*Object, *BaseException) {
	vt, wt := v.Type(), w.Type()
	rsm := sm.Reflected()
	op := vt.rep.slot(sm)
	vrop := vt.rep.slot(rsm)
	wrop := wt.rep.slot(rsm)

	if vt != wt && isSubclass(wt, vt) {
		if !wrop.empty() && differentSlots(wrop, vrop) {
			r, raised := wrop.(*binaryOpSlot).Fn(f, w, v)
			if raised != nil {
				return nil, raised
			}
			if r != NotImplemented {
				return r, nil
			}
		}
	}
	if !op.empty() {
		r, raised := op.(*binaryOpSlot).Fn(f, v, w)
		if raised != nil {
			return nil, raised
		}
		if r != NotImplemented {
			return r, nil
		}
	}
	if !wrop.empty() {
		r, raised := wrop.(*binaryOpSlot).Fn(f, w, v)
		if raised != nil {
			return nil, raised
		}
		if r != NotImplemented {
			return r, nil
		}
	}
	return nil, f.RaiseType(TypeErrorType, fmt.Sprintf(errUnsupportedOperand, opName, vt.Name(), wt.Name()))
}

func differentSlots(a, b slot) bool {
	return a != b
}

// compareRich implements the rich-comparison fallback chain used by Eq/LT/
// etc: try w's swapped slot first when w's type is a more specific
// subclass, then v's own slot for sm.
func compareRich(f *Frame, sm SpecialMethod, v, w *Object) (*Object, *BaseException) {
	vt, wt := v.Type(), w.Type()
	if vt != wt && isSubclass(wt, vt) {
		if s := wt.rep.slot(swappedCompare(sm)); !s.empty() {
			r, raised := s.(*binaryOpSlot).Fn(f, w, v)
			if raised != nil {
				return nil, raised
			}
			if r != NotImplemented {
				return r, nil
			}
		}
	}
	if s := vt.rep.slot(sm); !s.empty() {
		r, raised := s.(*binaryOpSlot).Fn(f, v, w)
		if raised != nil {
			return nil, raised
		}
		if r != NotImplemented {
			return r, nil
		}
	}
	if s := wt.rep.slot(swappedCompare(sm)); !s.empty() {
		return s.(*binaryOpSlot).Fn(f, w, v)
	}
	return NotImplemented, nil
}

func swappedCompare(sm SpecialMethod) SpecialMethod {
	switch sm {
	case OpLT:
		return OpGT
	case OpLE:
		return OpGE
	case OpGE:
		return OpLE
	case OpGT:
		return OpLT
	default:
		return sm // Eq/NE are their own swap
	}
}

// compareDefault is the identity/name/pointer fallback used when no rich
// comparison method resolves the question, ported verbatim in structure
// from the teacher's compareDefault (CPython's default_3way_compare).
func compareDefault(v, w *Object) int {
	vt, wt := v.Type(), w.Type()
	if vt == wt {
		pv, pw := ptrOf(v), ptrOf(w)
		switch {
		case pv == pw:
			return 0
		case uintptrOf(pv) < uintptrOf(pw):
			return -1
		default:
			return 1
		}
	}
	if v == None {
		return -1
	}
	if w == None {
		return 1
	}
	if vt.Name() < wt.Name() {
		return -1
	}
	if vt.Name() != wt.Name() {
		return 1
	}
	return 1
}
