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
	"reflect"
	"sync/atomic"

	"go.uber.org/zap"
)

// bootstrapPhase is the latch state Design Notes §9 asks for in place of
// the teacher's package-init-order singleton (builtinTypes +
// typeStateNotReady/Initializing/Ready recursion, triggered implicitly by
// Go's init() ordering): an explicit state machine a caller can Wait() on,
// race-free, instead of implicit init() sequencing.
type bootstrapPhase int32

const (
	phaseNotStarted bootstrapPhase = iota
	phaseInProgress
	phaseReady
)

// Runtime owns the registry every Representation is published into and
// the factory used to build further classes. Bootstrap returns a *Runtime
// rather than operating on bare package globals so that Registry/Factory
// are reachable values, not hidden package state, even though the
// bootstrap types themselves (ObjectType, TypeType, ...) are process-wide
// singletons - the Open Question decision recorded in DESIGN.md.
type Runtime struct {
	phase   int32
	log     *zap.Logger
	barrier chan struct{}

	Registry *TypeRegistry
	Factory  *TypeFactory
}

// RuntimeOption configures Bootstrap. Following the DI-container reference
// code's RegisterOption pattern rather than a config file/env var, since
// the core has no on-disk configuration surface (§6, §2.1).
type RuntimeOption func(*Runtime)

// WithLogger supplies the *zap.Logger bootstrap, the registry and the
// factory log structured events through. Defaults to zap.NewNop().
func WithLogger(log *zap.Logger) RuntimeOption {
	return func(r *Runtime) { r.log = log }
}

var defaultRuntime atomic.Pointer[Runtime]

// Bootstrap brings up the object/type universe: `object` and `type` first
// (each depends on the other's existence to assign its own Type() field),
// descriptor types next since the reflective exposer manufactures
// descriptors, then the exception taxonomy and the primitive bootstrap
// types (bool, int, str) whose identities the descriptor machinery's own
// docstrings/messages reference. This is an explicit one-shot state
// machine, never a package init() - the exact replacement Design Notes §9
// calls for.
//
// The universe itself (ObjectType, TypeType, ... None/True/False) lives in
// package-level vars, the same as the teacher's: there is exactly one
// object/type universe per process, matching CPython's own single
// interpreter-wide type table. Bootstrap is package-level idempotent
// instead - a race of N callers (§8's scenario) all get the same *Runtime,
// and only the first actually does the construction work.
func Bootstrap(opts ...RuntimeOption) *Runtime {
	r := &Runtime{log: zap.NewNop(), barrier: make(chan struct{})}
	for _, opt := range opts {
		opt(r)
	}
	if !defaultRuntime.CompareAndSwap(nil, r) {
		return defaultRuntime.Load()
	}

	atomic.CompareAndSwapInt32(&r.phase, int32(phaseNotStarted), int32(phaseInProgress))
	r.log.Info("bootstrap start")

	r.Registry = newTypeRegistry(r.log)
	r.Factory = newTypeFactory(r.Registry, r.log)

	bootstrapObjectAndType(r)
	bootstrapDescriptorTypes(r)
	bootstrapExceptionTaxonomy(r)
	bootstrapPrimitives(r)

	atomic.StoreInt32(&r.phase, int32(phaseReady))
	close(r.barrier)
	r.log.Info("bootstrap ready")
	return r
}

// Ready reports whether r has completed bootstrap; a goroutine that races
// Bootstrap's caller can block on Wait instead of busy-polling this.
func (r *Runtime) Ready() bool {
	return atomic.LoadInt32(&r.phase) == int32(phaseReady)
}

// Wait blocks until bootstrap has completed. Safe to call from any number
// of goroutines concurrently with Bootstrap finishing - the race scenario
// §8 calls out (8 goroutines racing PyType.Of).
func (r *Runtime) Wait() {
	<-r.barrier
}

var (
	// ObjectType is the root of every PyType's MRO.
	ObjectType *PyType
	// TypeType is type's own PyType - TypeType.Type() == TypeType.
	TypeType *PyType

	// DescriptorType is the single Python-visible class backing all four
	// descriptor variants from Design Notes' "descriptor protocol
	// polymorphism" (method/member/get-set/wrapper); descriptor.go
	// branches on descriptorKind rather than giving each variant its own
	// PyType, since nothing in this core's attribute machinery needs to
	// tell them apart by class.
	DescriptorType *PyType

	FunctionType     *PyType
	StaticMethodType *PyType
	MethodType       *PyType

	BaseExceptionType   *PyType
	TypeErrorType       *PyType
	AttributeErrorType  *PyType
	NameErrorType       *PyType
	LookupErrorType     *PyType
	IndexErrorType      *PyType
	KeyErrorType        *PyType
	ValueErrorType      *PyType
	RuntimeErrorType    *PyType
	SystemErrorType     *PyType
	StopIterationType   *PyType
	WarningType         *PyType
	DeprecationWarningType *PyType

	BoolType *PyType
	IntType  *PyType
	StrType  *PyType
	NoneType *PyType

	None           *Object
	NotImplemented *Object
	True           *Bool
	False          *Bool
)

func functionRep() *Representation     { return FunctionType.rep }
func staticMethodRep() *Representation { return StaticMethodType.rep }
func methodRep() *Representation       { return MethodType.rep }
func descriptorRep() *Representation   { return DescriptorType.rep }

// bootstrapObjectAndType constructs the two types each other's instances
// ultimately point back to. TypeType's own Representation cannot carry a
// fixed *PyType for "the type of a PyType instance" without a
// chicken-and-egg cycle (every PyType IS an instance of some metaclass,
// and the obvious metaclass is TypeType itself) so it uses
// instanceTypeFunc, exactly the case Design Notes §9 calls out.
func bootstrapObjectAndType(r *Runtime) {
	ObjectType = &PyType{
		name:  "object",
		basis: objectBasis,
		flags: typeFlagDefault,
	}
	objRep := newRepresentation(objectBasis, ObjectType)
	ObjectType.rep = objRep
	ObjectType.mro = []*PyType{ObjectType}
	ObjectType.selfClasses = []reflect.Type{objectBasis}

	TypeType = &PyType{
		name:  "type",
		basis: typeBasis,
		bases: []*PyType{ObjectType},
		flags: typeFlagDefault,
	}
	typeRep := newRepresentation(typeBasis, nil)
	typeRep.instanceTypeFunc = func(o *Object) *PyType { return TypeType }
	TypeType.rep = typeRep
	TypeType.mro = mroCalc(TypeType)
	TypeType.selfClasses = []reflect.Type{typeBasis}

	ObjectType.Object.rep = typeRep
	TypeType.Object.rep = typeRep

	r.Registry.publish(objectBasis, objRep)
	r.Registry.publish(typeBasis, typeRep)

	objRep.setSlot(OpGetAttribute, &getAttributeSlot{Fn: objectGetAttribute})
	objRep.setSlot(OpSetAttr, &setAttrSlot{Fn: objectSetAttr})
	objRep.setSlot(OpDelAttr, &delAttrSlot{Fn: objectDelAttr})
	objRep.setSlot(OpHash, &unaryOpSlot{Fn: objectHash})
	objRep.setSlot(OpRepr, &unaryOpSlot{Fn: objectRepr})
	objRep.setSlot(OpNew, &newSlot{Fn: objectNew})
	objRep.setSlot(OpInit, &initSlot{Fn: objectInit})
	objRep.setSlot(OpEq, &binaryOpSlot{Fn: objectDefaultEq})

	typeRep.setSlot(OpCall, &callSlot{Fn: typeCall})
	typeRep.setSlot(OpGetAttribute, &getAttributeSlot{Fn: objectGetAttribute})
	typeRep.setSlot(OpRepr, &unaryOpSlot{Fn: typeRepr})
	inheritSlots(TypeType)

	ObjectType.addConstructor(objectBasis, objRep.slot(OpNew))
	TypeType.addConstructor(typeBasis, typeRep.slot(OpNew))

	r.Registry.setDiscoverer(r.Factory.discover)

	r.log.Info("class published", zap.String("name", "object"), zap.String("name", "type"))
}

func objectDefaultEq(f *Frame, v, w *Object) (*Object, *BaseException) {
	if v == w {
		return True.ToObject(), nil
	}
	return NotImplemented, nil
}

func typeCall(f *Frame, callable *Object, args Args, kwargs KWArgs) (*Object, *BaseException) {
	t := toTypeUnsafe(callable)
	newSl := t.rep.slot(OpNew)
	if newSl.empty() {
		return nil, f.RaiseType(TypeErrorType, "cannot instantiate abstract type")
	}
	o, raised := newSl.(*newSlot).Fn(f, t, args, kwargs)
	if raised != nil {
		return nil, raised
	}
	if o.Type() == t {
		if initSl := t.rep.slot(OpInit); !initSl.empty() {
			if _, raised := initSl.(*initSlot).Fn(f, o, args, kwargs); raised != nil {
				return nil, raised
			}
		}
	}
	return o, nil
}

func typeRepr(f *Frame, o *Object) (*Object, *BaseException) {
	t := toTypeUnsafe(o)
	name, raised := t.FullName(f)
	if raised != nil {
		return nil, raised
	}
	return NewStr("<class '" + name + "'>").ToObject(), nil
}

func bootstrapDescriptorTypes(r *Runtime) {
	DescriptorType = newBasisType("descriptor", descriptorBasis, ObjectType)
	DescriptorType.rep.setSlot(OpGet, &getSlot{Fn: descriptorGet})
	DescriptorType.rep.setSlot(OpSet, &setSlot{Fn: descriptorSet})
	r.Registry.publish(descriptorBasis, DescriptorType.rep)

	FunctionType = newBasisType("function", functionBasis, ObjectType)
	FunctionType.flags &^= typeFlagInstantiable | typeFlagBasetype
	FunctionType.rep.setSlot(OpCall, &callSlot{Fn: functionCall})
	FunctionType.rep.setSlot(OpGet, &getSlot{Fn: functionGet})
	FunctionType.rep.setSlot(OpRepr, &unaryOpSlot{Fn: functionRepr})
	r.Registry.publish(functionBasis, FunctionType.rep)

	StaticMethodType = newBasisType("staticmethod", staticMethodBasis, ObjectType)
	StaticMethodType.rep.setSlot(OpGet, &getSlot{Fn: staticMethodGet})
	r.Registry.publish(staticMethodBasis, StaticMethodType.rep)

	MethodType = newBasisType("method", methodBasis, ObjectType)
	MethodType.rep.setSlot(OpCall, &callSlot{Fn: methodCall})
	MethodType.rep.setSlot(OpRepr, &unaryOpSlot{Fn: methodRepr})
	r.Registry.publish(methodBasis, MethodType.rep)

	r.log.Info("class published", zap.String("name", "descriptor"))
}

func bootstrapExceptionTaxonomy(r *Runtime) {
	BaseExceptionType = newBasisType("BaseException", baseExceptionBasis, ObjectType)
	BaseExceptionType.rep.setSlot(OpStr, &unaryOpSlot{Fn: func(f *Frame, o *Object) (*Object, *BaseException) {
		return exceptionStr(f, toBaseExceptionUnsafe(o))
	}})
	r.Registry.publish(baseExceptionBasis, BaseExceptionType.rep)

	// Subclasses share BaseException's basis (they add no new Go fields)
	// but each gets its own Representation so a future override of e.g.
	// __str__ on just KeyError doesn't leak into its siblings. None of
	// these needs a TypeRegistry entry of its own: an exception's
	// Representation is always reached via the *PyType that constructed
	// it (newBaseException), never via reflect.Type lookup on a bare Go
	// value, so only the taxonomy root is published.
	simple := func(name string, base *PyType) *PyType {
		return newSimpleType(name, base)
	}
	exceptionType := simple("Exception", BaseExceptionType)
	StandardErrorType := simple("StandardError", exceptionType)
	TypeErrorType = simple("TypeError", StandardErrorType)
	AttributeErrorType = simple("AttributeError", StandardErrorType)
	NameErrorType = simple("NameError", StandardErrorType)
	LookupErrorType = simple("LookupError", StandardErrorType)
	IndexErrorType = simple("IndexError", LookupErrorType)
	KeyErrorType = simple("KeyError", LookupErrorType)
	ValueErrorType = simple("ValueError", StandardErrorType)
	RuntimeErrorType = simple("RuntimeError", StandardErrorType)
	SystemErrorType = simple("SystemError", StandardErrorType)
	StopIterationType = simple("StopIteration", exceptionType)
	WarningType = simple("Warning", exceptionType)
	DeprecationWarningType = simple("DeprecationWarning", WarningType)

	r.log.Info("class published", zap.String("name", "BaseException taxonomy"))
}

func bootstrapPrimitives(r *Runtime) {
	StrType = newBasisType("str", strBasis, ObjectType)
	StrType.rep.setSlot(OpEq, &binaryOpSlot{Fn: strEq})
	StrType.rep.setSlot(OpHash, &unaryOpSlot{Fn: strHash})
	StrType.rep.setSlot(OpRepr, &unaryOpSlot{Fn: strRepr})
	StrType.rep.setSlot(OpStr, &unaryOpSlot{Fn: strStr})
	r.Registry.publish(strBasis, StrType.rep)

	IntType = newBasisType("int", intBasis, ObjectType)
	IntType.rep.setSlot(OpAdd, &binaryOpSlot{Fn: intAdd})
	IntType.rep.setSlot(OpSub, &binaryOpSlot{Fn: intSub})
	IntType.rep.setSlot(OpEq, &binaryOpSlot{Fn: intEq})
	IntType.rep.setSlot(OpHash, &unaryOpSlot{Fn: intHash})
	IntType.rep.setSlot(OpRepr, &unaryOpSlot{Fn: intRepr})
	IntType.rep.setSlot(OpNonZero, &unaryOpSlot{Fn: intNonZero})
	for _, sm := range []SpecialMethod{OpAdd, OpSub, OpEq, OpHash, OpRepr, OpNonZero} {
		callable := IntType.rep.slot(sm).makeCallable(IntType, sm.Name())
		IntType.Dict().set(sm.Name(), newWrapperDescriptor(IntType, sm.Name(), callable).ToObject())
	}
	r.Registry.publish(intBasis, IntType.rep)

	// bool IS-A int in the type hierarchy - the ordinary single-inheritance
	// case, not adoption - so it must be built after int exists, letting it
	// inherit int's arithmetic/hash/repr slots in the same pass newBasisType
	// runs for every other type.
	BoolType = newBasisType("bool", boolBasis, IntType)
	r.Registry.publish(boolBasis, BoolType.rep)

	NoneType = newBasisType("NoneType", reflect.TypeOf(noneType{}), ObjectType)
	NoneType.flags &^= typeFlagInstantiable | typeFlagBasetype
	NoneType.rep.setSlot(OpRepr, &unaryOpSlot{Fn: func(f *Frame, o *Object) (*Object, *BaseException) {
		return NewStr("None").ToObject(), nil
	}})
	NoneType.rep.setSlot(OpNonZero, &unaryOpSlot{Fn: func(f *Frame, o *Object) (*Object, *BaseException) {
		return False.ToObject(), nil
	}})
	r.Registry.publish(NoneType.basis, NoneType.rep)

	None = &Object{rep: NoneType.rep}
	NotImplemented = &Object{rep: ObjectType.rep}
	False = &Bool{Int: Int{Object: Object{rep: BoolType.rep}, value: 0}}
	True = &Bool{Int: Int{Object: Object{rep: BoolType.rep}, value: 1}}

	r.log.Info("class published", zap.String("name", "bool/int/str/NoneType"))
}

type noneType struct{ Object }
