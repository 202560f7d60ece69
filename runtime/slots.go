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

import "fmt"

// SpecialMethod names one dispatch slot in the fixed, ordered catalogue of
// special methods (__add__, __iter__, __call__, ...). It is a closed
// enumeration: two members never share a name, and iteration order is
// stable, matching §4.1 of the spec. Unlike the teacher's typeSlots (a
// reflected struct of named fields), SpecialMethod is a plain int so that a
// Representation's dispatch vector is a flat array indexed by it - an
// array-of-handles, not a map lookup, on the interpreter's hot path.
type SpecialMethod int

// The catalogue. Order matters: it is the order dispatch vectors are built
// and inherited in, and it is part of what a round-tripped TypeSpec must
// reproduce identically (§8, round-trip property).
const (
	OpAbs SpecialMethod = iota
	OpAdd
	OpAnd
	OpCall
	OpCmp
	OpComplex
	OpContains
	OpDelAttr
	OpDelete
	OpDelItem
	OpDiv
	OpDivMod
	OpEq
	OpFloat
	OpFloorDiv
	OpGE
	OpGet
	OpGetAttribute
	OpGetItem
	OpGT
	OpHash
	OpHex
	OpIAdd
	OpIAnd
	OpIDiv
	OpIDivMod
	OpIFloorDiv
	OpILShift
	OpIMod
	OpIMul
	OpIndex
	OpInit
	OpInt
	OpInvert
	OpIOr
	OpIPow
	OpIRShift
	OpISub
	OpIter
	OpIXor
	OpLE
	OpLen
	OpLong
	OpLShift
	OpLT
	OpMod
	OpMul
	OpNE
	OpNeg
	OpNew
	OpNext
	OpNonZero
	OpOr
	OpPos
	OpPow
	OpRAdd
	OpRAnd
	OpRDiv
	OpRDivMod
	OpRepr
	OpRFloorDiv
	OpRLShift
	OpRMod
	OpRMul
	OpROr
	OpRPow
	OpRRShift
	OpRShift
	OpRSub
	OpRXor
	OpSet
	OpSetAttr
	OpSetItem
	OpStr
	OpSub
	OpXor

	numSpecialMethods
)

// slotKind classifies the canonical signature a SpecialMethod carries, per
// §4.1 ("each slot defines a canonical signature"). TypeFactory uses it to
// pick which slot wrapper a primary-class method matching a special-method
// name is wrapped in; the method itself is not checked against that shape.
type slotKind int

const (
	kindUnaryOp slotKind = iota
	kindBinaryOp
	kindCall
	kindGetAttribute
	kindSetAttr
	kindDelAttr
	kindGet
	kindSet
	kindDelete
	kindGetItem
	kindSetItem
	kindDelItem
	kindNew
	kindInit
	kindNative
	kindBasis
)

type specialMethodInfo struct {
	name       string
	kind       slotKind
	isBinaryOp bool
	reflected  SpecialMethod // itself if not a binary operator
}

var specialMethodTable = buildSpecialMethodTable()

func buildSpecialMethodTable() [numSpecialMethods]specialMethodInfo {
	var t [numSpecialMethods]specialMethodInfo
	unary := func(sm SpecialMethod, name string) { t[sm] = specialMethodInfo{name: name, kind: kindUnaryOp, reflected: sm} }
	binary := func(sm, reflected SpecialMethod, name string) {
		t[sm] = specialMethodInfo{name: name, kind: kindBinaryOp, isBinaryOp: true, reflected: reflected}
	}

	unary(OpAbs, "__abs__")
	binary(OpAdd, OpRAdd, "__add__")
	binary(OpAnd, OpRAnd, "__and__")
	t[OpCall] = specialMethodInfo{name: "__call__", kind: kindCall, reflected: OpCall}
	binary(OpCmp, OpCmp, "__cmp__")
	unary(OpComplex, "__complex__")
	binary(OpContains, OpContains, "__contains__")
	t[OpDelAttr] = specialMethodInfo{name: "__delattr__", kind: kindDelAttr, reflected: OpDelAttr}
	t[OpDelete] = specialMethodInfo{name: "__delete__", kind: kindDelete, reflected: OpDelete}
	t[OpDelItem] = specialMethodInfo{name: "__delitem__", kind: kindDelItem, reflected: OpDelItem}
	binary(OpDiv, OpRDiv, "__div__")
	binary(OpDivMod, OpRDivMod, "__divmod__")
	binary(OpEq, OpEq, "__eq__")
	unary(OpFloat, "__float__")
	binary(OpFloorDiv, OpRFloorDiv, "__floordiv__")
	binary(OpGE, OpGE, "__ge__")
	t[OpGet] = specialMethodInfo{name: "__get__", kind: kindGet, reflected: OpGet}
	t[OpGetAttribute] = specialMethodInfo{name: "__getattribute__", kind: kindGetAttribute, reflected: OpGetAttribute}
	t[OpGetItem] = specialMethodInfo{name: "__getitem__", kind: kindGetItem, reflected: OpGetItem}
	binary(OpGT, OpGT, "__gt__")
	unary(OpHash, "__hash__")
	unary(OpHex, "__hex__")
	binary(OpIAdd, OpIAdd, "__iadd__")
	binary(OpIAnd, OpIAnd, "__iand__")
	binary(OpIDiv, OpIDiv, "__idiv__")
	binary(OpIDivMod, OpIDivMod, "__idivmod__")
	binary(OpIFloorDiv, OpIFloorDiv, "__ifloordiv__")
	binary(OpILShift, OpILShift, "__ilshift__")
	binary(OpIMod, OpIMod, "__imod__")
	binary(OpIMul, OpIMul, "__imul__")
	unary(OpIndex, "__index__")
	t[OpInit] = specialMethodInfo{name: "__init__", kind: kindInit, reflected: OpInit}
	unary(OpInt, "__int__")
	unary(OpInvert, "__invert__")
	binary(OpIOr, OpIOr, "__ior__")
	binary(OpIPow, OpIPow, "__ipow__")
	binary(OpIRShift, OpIRShift, "__irshift__")
	binary(OpISub, OpISub, "__isub__")
	unary(OpIter, "__iter__")
	binary(OpIXor, OpIXor, "__ixor__")
	binary(OpLE, OpLE, "__le__")
	unary(OpLen, "__len__")
	unary(OpLong, "__long__")
	binary(OpLShift, OpRLShift, "__lshift__")
	binary(OpLT, OpLT, "__lt__")
	binary(OpMod, OpRMod, "__mod__")
	binary(OpMul, OpRMul, "__mul__")
	binary(OpNE, OpNE, "__ne__")
	unary(OpNeg, "__neg__")
	t[OpNew] = specialMethodInfo{name: "__new__", kind: kindNew, reflected: OpNew}
	unary(OpNext, "next")
	unary(OpNonZero, "__nonzero__")
	binary(OpOr, OpROr, "__or__")
	unary(OpPos, "__pos__")
	binary(OpPow, OpRPow, "__pow__")
	binary(OpRAdd, OpAdd, "__radd__")
	binary(OpRAnd, OpAnd, "__rand__")
	binary(OpRDiv, OpDiv, "__rdiv__")
	binary(OpRDivMod, OpDivMod, "__rdivmod__")
	unary(OpRepr, "__repr__")
	binary(OpRFloorDiv, OpFloorDiv, "__rfloordiv__")
	binary(OpRLShift, OpLShift, "__rlshift__")
	binary(OpRMod, OpMod, "__rmod__")
	binary(OpRMul, OpMul, "__rmul__")
	binary(OpROr, OpOr, "__ror__")
	binary(OpRPow, OpPow, "__rpow__")
	binary(OpRRShift, OpRShift, "__rrshift__")
	binary(OpRShift, OpRRShift, "__rshift__")
	binary(OpRSub, OpSub, "__rsub__")
	binary(OpRXor, OpXor, "__rxor__")
	t[OpSet] = specialMethodInfo{name: "__set__", kind: kindSet, reflected: OpSet}
	t[OpSetAttr] = specialMethodInfo{name: "__setattr__", kind: kindSetAttr, reflected: OpSetAttr}
	t[OpSetItem] = specialMethodInfo{name: "__setitem__", kind: kindSetItem, reflected: OpSetItem}
	unary(OpStr, "__str__")
	binary(OpSub, OpRSub, "__sub__")
	binary(OpXor, OpRXor, "__xor__")

	return t
}

// Name returns sm's Python-visible special method name, e.g. "__add__".
func (sm SpecialMethod) Name() string {
	if sm < 0 || sm >= numSpecialMethods {
		panic(fmt.Sprintf("invalid SpecialMethod value: %d", sm))
	}
	return specialMethodTable[sm].name
}

// IsBinaryOp reports whether sm is a binary arithmetic/comparison operator,
// i.e. one that participates in the subtype-first reflected-operand rule
// (§8).
func (sm SpecialMethod) IsBinaryOp() bool {
	return specialMethodTable[sm].isBinaryOp
}

// Reflected returns the slot that should be tried first when the right
// operand's type is a proper subtype of the left operand's type (__lt__ <->
// __gt__, __add__ <-> __radd__, ...). For slots with no reflected
// counterpart, Reflected returns sm itself.
func (sm SpecialMethod) Reflected() SpecialMethod {
	return specialMethodTable[sm].reflected
}

func specialMethodByName(name string) (SpecialMethod, bool) {
	for sm := SpecialMethod(0); sm < numSpecialMethods; sm++ {
		if specialMethodTable[sm].name == name {
			return sm, true
		}
	}
	return 0, false
}

// slot is the common interface every per-kind dispatch wrapper satisfies.
// It is the teacher's slot interface, verbatim: makeCallable exposes the
// slot as a Python-callable builtin function (used to populate a type's
// dict so the slot is visible from Python); wrapCallable installs a
// Python-level override (a subclass defining __add__ in terms of a Python
// function) back into the slot.
type slot interface {
	makeCallable(t *PyType, name string) *Object
	wrapCallable(callable *Object) bool
	// empty reports whether this slot carries no implementation - the
	// "empty handle" described in §4.1, always returned by slot() rather
	// than nil so callers never nil-check.
	empty() bool
}

// emptySlot is the always-present placeholder for a SpecialMethod nobody
// implements. The dispatch helpers in core.go test empty() before invoking
// a slot and, on an empty one, take either a fallback path (reflected
// operator, identity comparison) or raise a Python-visible TypeError; the
// empty slot itself is never invoked and raises nothing.
type emptySlot struct{}

func (emptySlot) makeCallable(*PyType, string) *Object { return nil }
func (emptySlot) wrapCallable(*Object) bool            { return false }
func (emptySlot) empty() bool                          { return true }

var theEmptySlot slot = &emptySlot{}

// emptySlotSignal is an error value naming an unimplemented slot (§7.2,
// Design Notes §9 "Throwable-as-signal"). It is never panicked, and the
// dispatch helpers in core.go do not produce it: they test slot.empty()
// instead.
type emptySlotSignal struct{ sm SpecialMethod }

func (e emptySlotSignal) Error() string {
	return fmt.Sprintf("slot %s not implemented", e.sm.Name())
}

func isEmptySlotSignal(err error) bool {
	_, ok := err.(emptySlotSignal)
	return ok
}

// The concrete per-kind slot wrappers below are ported from the teacher's
// slots.go: each SpecialMethod kind gets its own Fn signature matching its
// canonical call shape (§4.1), and makeCallable/wrapCallable adapt between
// that native Go signature and the Args/KWArgs calling convention a Python
// override uses.

type unaryOpFunc func(*Frame, *Object) (*Object, *BaseException)

type unaryOpSlot struct{ Fn unaryOpFunc }

func (s *unaryOpSlot) makeCallable(t *PyType, name string) *Object {
	if s.Fn == nil {
		return nil
	}
	return newBuiltinFunction(name, func(f *Frame, args Args, kwargs KWArgs) (*Object, *BaseException) {
		if raised := checkMethodArgs(f, name, args, t); raised != nil {
			return nil, raised
		}
		return s.Fn(f, args[0])
	}).ToObject()
}

func (s *unaryOpSlot) wrapCallable(callable *Object) bool {
	s.Fn = func(f *Frame, o *Object) (*Object, *BaseException) {
		return callable.Call(f, Args{o}, nil)
	}
	return true
}

func (s *unaryOpSlot) empty() bool { return s.Fn == nil }

type binaryOpFunc func(*Frame, *Object, *Object) (*Object, *BaseException)

type binaryOpSlot struct{ Fn binaryOpFunc }

func (s *binaryOpSlot) makeCallable(t *PyType, name string) *Object {
	if s.Fn == nil {
		return nil
	}
	return newBuiltinFunction(name, func(f *Frame, args Args, kwargs KWArgs) (*Object, *BaseException) {
		if raised := checkMethodArgs(f, name, args, t, ObjectType); raised != nil {
			return nil, raised
		}
		return s.Fn(f, args[0], args[1])
	}).ToObject()
}

func (s *binaryOpSlot) wrapCallable(callable *Object) bool {
	s.Fn = func(f *Frame, v, w *Object) (*Object, *BaseException) {
		return callable.Call(f, Args{v, w}, nil)
	}
	return true
}

func (s *binaryOpSlot) empty() bool { return s.Fn == nil }

type callFunc func(*Frame, *Object, Args, KWArgs) (*Object, *BaseException)

type callSlot struct{ Fn callFunc }

func (s *callSlot) makeCallable(t *PyType, _ string) *Object {
	if s.Fn == nil {
		return nil
	}
	return newBuiltinFunction("__call__", func(f *Frame, args Args, kwargs KWArgs) (*Object, *BaseException) {
		if raised := checkMethodVarArgs(f, "__call__", args, t); raised != nil {
			return nil, raised
		}
		return s.Fn(f, args[0], args[1:], kwargs)
	}).ToObject()
}

func (s *callSlot) wrapCallable(callable *Object) bool {
	s.Fn = func(f *Frame, o *Object, args Args, kwargs KWArgs) (*Object, *BaseException) {
		callArgs := make(Args, len(args)+1)
		callArgs[0] = o
		copy(callArgs[1:], args)
		return callable.Call(f, callArgs, kwargs)
	}
	return true
}

func (s *callSlot) empty() bool { return s.Fn == nil }

type getAttributeFunc func(*Frame, *Object, *Str) (*Object, *BaseException)

type getAttributeSlot struct{ Fn getAttributeFunc }

func (s *getAttributeSlot) makeCallable(t *PyType, name string) *Object {
	if s.Fn == nil {
		return nil
	}
	return newBuiltinFunction(name, func(f *Frame, args Args, kwargs KWArgs) (*Object, *BaseException) {
		if raised := checkMethodArgs(f, name, args, t, StrType); raised != nil {
			return nil, raised
		}
		return s.Fn(f, args[0], toStrUnsafe(args[1]))
	}).ToObject()
}

func (s *getAttributeSlot) wrapCallable(callable *Object) bool {
	s.Fn = func(f *Frame, o *Object, name *Str) (*Object, *BaseException) {
		return callable.Call(f, Args{o, name.ToObject()}, nil)
	}
	return true
}

func (s *getAttributeSlot) empty() bool { return s.Fn == nil }

type setAttrFunc func(*Frame, *Object, *Str, *Object) *BaseException

type setAttrSlot struct{ Fn setAttrFunc }

func (s *setAttrSlot) makeCallable(t *PyType, name string) *Object {
	if s.Fn == nil {
		return nil
	}
	return newBuiltinFunction(name, func(f *Frame, args Args, kwargs KWArgs) (*Object, *BaseException) {
		if raised := checkMethodArgs(f, name, args, t, StrType, ObjectType); raised != nil {
			return nil, raised
		}
		if raised := s.Fn(f, args[0], toStrUnsafe(args[1]), args[2]); raised != nil {
			return nil, raised
		}
		return None, nil
	}).ToObject()
}

func (s *setAttrSlot) wrapCallable(callable *Object) bool {
	s.Fn = func(f *Frame, o *Object, name *Str, value *Object) *BaseException {
		_, raised := callable.Call(f, Args{o, name.ToObject(), value}, nil)
		return raised
	}
	return true
}

func (s *setAttrSlot) empty() bool { return s.Fn == nil }

type delAttrFunc func(*Frame, *Object, *Str) *BaseException

type delAttrSlot struct{ Fn delAttrFunc }

func (s *delAttrSlot) makeCallable(t *PyType, name string) *Object {
	if s.Fn == nil {
		return nil
	}
	return newBuiltinFunction(name, func(f *Frame, args Args, kwargs KWArgs) (*Object, *BaseException) {
		if raised := checkMethodArgs(f, name, args, t, StrType); raised != nil {
			return nil, raised
		}
		if raised := s.Fn(f, args[0], toStrUnsafe(args[1])); raised != nil {
			return nil, raised
		}
		return None, nil
	}).ToObject()
}

func (s *delAttrSlot) wrapCallable(callable *Object) bool {
	s.Fn = func(f *Frame, o *Object, name *Str) *BaseException {
		_, raised := callable.Call(f, Args{o, name.ToObject()}, nil)
		return raised
	}
	return true
}

func (s *delAttrSlot) empty() bool { return s.Fn == nil }

type getFunc func(*Frame, *Object, *Object, *PyType) (*Object, *BaseException)

type getSlot struct{ Fn getFunc }

func (s *getSlot) makeCallable(t *PyType, name string) *Object {
	if s.Fn == nil {
		return nil
	}
	return newBuiltinFunction(name, func(f *Frame, args Args, kwargs KWArgs) (*Object, *BaseException) {
		if raised := checkMethodArgs(f, name, args, t, ObjectType, TypeType); raised != nil {
			return nil, raised
		}
		return s.Fn(f, args[0], args[1], toTypeUnsafe(args[2]))
	}).ToObject()
}

func (s *getSlot) wrapCallable(callable *Object) bool {
	s.Fn = func(f *Frame, desc, inst *Object, owner *PyType) (*Object, *BaseException) {
		return callable.Call(f, Args{desc, inst, owner.ToObject()}, nil)
	}
	return true
}

func (s *getSlot) empty() bool { return s.Fn == nil }

type setFunc func(*Frame, *Object, *Object, *Object) *BaseException

type setSlot struct{ Fn setFunc }

func (s *setSlot) makeCallable(t *PyType, name string) *Object {
	if s.Fn == nil {
		return nil
	}
	return newBuiltinFunction(name, func(f *Frame, args Args, kwargs KWArgs) (*Object, *BaseException) {
		if raised := checkMethodArgs(f, name, args, t, ObjectType, ObjectType); raised != nil {
			return nil, raised
		}
		if raised := s.Fn(f, args[0], args[1], args[2]); raised != nil {
			return nil, raised
		}
		return None, nil
	}).ToObject()
}

func (s *setSlot) wrapCallable(callable *Object) bool {
	s.Fn = func(f *Frame, desc, inst, value *Object) *BaseException {
		_, raised := callable.Call(f, Args{desc, inst, value}, nil)
		return raised
	}
	return true
}

func (s *setSlot) empty() bool { return s.Fn == nil }

type deleteFunc func(*Frame, *Object, *Object) *BaseException

type deleteSlot struct{ Fn deleteFunc }

func (s *deleteSlot) makeCallable(t *PyType, name string) *Object {
	if s.Fn == nil {
		return nil
	}
	return newBuiltinFunction(name, func(f *Frame, args Args, kwargs KWArgs) (*Object, *BaseException) {
		if raised := checkMethodArgs(f, name, args, t, ObjectType); raised != nil {
			return nil, raised
		}
		if raised := s.Fn(f, args[0], args[1]); raised != nil {
			return nil, raised
		}
		return None, nil
	}).ToObject()
}

func (s *deleteSlot) wrapCallable(callable *Object) bool {
	s.Fn = func(f *Frame, desc, inst *Object) *BaseException {
		_, raised := callable.Call(f, Args{desc, inst}, nil)
		return raised
	}
	return true
}

func (s *deleteSlot) empty() bool { return s.Fn == nil }

type getItemSlot struct{ Fn binaryOpFunc }

func (s *getItemSlot) makeCallable(t *PyType, name string) *Object {
	if s.Fn == nil {
		return nil
	}
	return newBuiltinFunction(name, func(f *Frame, args Args, kwargs KWArgs) (*Object, *BaseException) {
		if raised := checkMethodArgs(f, name, args, t, ObjectType); raised != nil {
			return nil, raised
		}
		return s.Fn(f, args[0], args[1])
	}).ToObject()
}

func (s *getItemSlot) wrapCallable(callable *Object) bool {
	s.Fn = func(f *Frame, o, key *Object) (*Object, *BaseException) {
		return callable.Call(f, Args{o, key}, nil)
	}
	return true
}

func (s *getItemSlot) empty() bool { return s.Fn == nil }

type setItemFunc func(*Frame, *Object, *Object, *Object) *BaseException

type setItemSlot struct{ Fn setItemFunc }

func (s *setItemSlot) makeCallable(t *PyType, name string) *Object {
	if s.Fn == nil {
		return nil
	}
	return newBuiltinFunction(name, func(f *Frame, args Args, kwargs KWArgs) (*Object, *BaseException) {
		if raised := checkMethodArgs(f, name, args, t, ObjectType, ObjectType); raised != nil {
			return nil, raised
		}
		if raised := s.Fn(f, args[0], args[1], args[2]); raised != nil {
			return nil, raised
		}
		return None, nil
	}).ToObject()
}

func (s *setItemSlot) wrapCallable(callable *Object) bool {
	s.Fn = func(f *Frame, o, key, value *Object) *BaseException {
		_, raised := callable.Call(f, Args{o, key, value}, nil)
		return raised
	}
	return true
}

func (s *setItemSlot) empty() bool { return s.Fn == nil }

type delItemFunc func(*Frame, *Object, *Object) *BaseException

type delItemSlot struct{ Fn delItemFunc }

func (s *delItemSlot) makeCallable(t *PyType, name string) *Object {
	if s.Fn == nil {
		return nil
	}
	return newBuiltinFunction(name, func(f *Frame, args Args, kwargs KWArgs) (*Object, *BaseException) {
		if raised := checkMethodArgs(f, name, args, t, ObjectType); raised != nil {
			return nil, raised
		}
		if raised := s.Fn(f, args[0], args[1]); raised != nil {
			return nil, raised
		}
		return None, nil
	}).ToObject()
}

func (s *delItemSlot) wrapCallable(callable *Object) bool {
	s.Fn = func(f *Frame, o, key *Object) *BaseException {
		_, raised := callable.Call(f, Args{o, key}, nil)
		return raised
	}
	return true
}

func (s *delItemSlot) empty() bool { return s.Fn == nil }

type newFunc func(*Frame, *PyType, Args, KWArgs) (*Object, *BaseException)

type newSlot struct{ Fn newFunc }

func (s *newSlot) makeCallable(t *PyType, _ string) *Object {
	if s.Fn == nil {
		return nil
	}
	return newStaticMethod(newBuiltinFunction("__new__", func(f *Frame, args Args, kwargs KWArgs) (*Object, *BaseException) {
		if raised := checkFunctionVarArgs(f, "__new__", args, TypeType); raised != nil {
			return nil, raised
		}
		typeArg := toTypeUnsafe(args[0])
		if !isSubclass(typeArg, t) {
			return nil, f.RaiseType(TypeErrorType, fmt.Sprintf(
				"%s.__new__(%s): %s is not a subtype of %s", t.Name(), typeArg.Name(), typeArg.Name(), t.Name()))
		}
		return s.Fn(f, typeArg, args[1:], kwargs)
	}).ToObject()).ToObject()
}

func (s *newSlot) wrapCallable(callable *Object) bool {
	s.Fn = func(f *Frame, t *PyType, args Args, kwargs KWArgs) (*Object, *BaseException) {
		callArgs := make(Args, len(args)+1)
		callArgs[0] = t.ToObject()
		copy(callArgs[1:], args)
		return callable.Call(f, callArgs, kwargs)
	}
	return true
}

func (s *newSlot) empty() bool { return s.Fn == nil }

type initFunc func(*Frame, *Object, Args, KWArgs) (*Object, *BaseException)

type initSlot struct{ Fn initFunc }

func (s *initSlot) makeCallable(t *PyType, _ string) *Object {
	if s.Fn == nil {
		return nil
	}
	return newBuiltinFunction("__init__", func(f *Frame, args Args, kwargs KWArgs) (*Object, *BaseException) {
		if raised := checkMethodVarArgs(f, "__init__", args, t); raised != nil {
			return nil, raised
		}
		return s.Fn(f, args[0], args[1:], kwargs)
	}).ToObject()
}

func (s *initSlot) wrapCallable(callable *Object) bool {
	s.Fn = func(f *Frame, o *Object, args Args, kwargs KWArgs) (*Object, *BaseException) {
		callArgs := make(Args, len(args)+1)
		callArgs[0] = o
		copy(callArgs[1:], args)
		return callable.Call(f, callArgs, kwargs)
	}
	return true
}

func (s *initSlot) empty() bool { return s.Fn == nil }

// newSlotForKind returns a zero-valued slot wrapper of the shape kind
// describes, ready for wrapCallable to populate. Used by TypeFactory to
// wire a primary-class method whose name matches a special method into
// the dispatch vector; the method's shape is not validated.
func newSlotForKind(kind slotKind) slot {
	switch kind {
	case kindUnaryOp:
		return &unaryOpSlot{}
	case kindBinaryOp:
		return &binaryOpSlot{}
	case kindCall:
		return &callSlot{}
	case kindGetAttribute:
		return &getAttributeSlot{}
	case kindSetAttr:
		return &setAttrSlot{}
	case kindDelAttr:
		return &delAttrSlot{}
	case kindGet:
		return &getSlot{}
	case kindSet:
		return &setSlot{}
	case kindDelete:
		return &deleteSlot{}
	case kindGetItem:
		return &getItemSlot{}
	case kindSetItem:
		return &setItemSlot{}
	case kindDelItem:
		return &delItemSlot{}
	case kindNew:
		return &newSlot{}
	case kindInit:
		return &initSlot{}
	default:
		return theEmptySlot
	}
}

// basisSlot exposes a Representation's host-class basis where a Python
// override cannot sensibly replace it (e.g. __basis__ bookkeeping slots);
// present for completeness with the teacher's slots.go but never settable
// from Python.
type basisSlot struct{}

func (s *basisSlot) makeCallable(*PyType, string) *Object { return nil }
func (s *basisSlot) wrapCallable(*Object) bool            { return false }
func (s *basisSlot) empty() bool                          { return true }
