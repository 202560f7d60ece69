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

// Args represents positional parameters in a call.
type Args []*Object

// KWArg is one keyword argument in a call.
type KWArg struct {
	Name  string
	Value *Object
}

// KWArgs represents the keyword parameters in a call.
type KWArgs []KWArg

func (k KWArgs) get(name string, def *Object) *Object {
	for _, kw := range k {
		if kw.Name == name {
			return kw.Value
		}
	}
	return def
}

// Func is the Go function underlying a builtin Function object.
type Func func(f *Frame, args Args, kwargs KWArgs) (*Object, *BaseException)

// Function represents Python 'function' objects: the callables produced by
// makeCallable for every slot, and anything TypeSpec registers as a method.
// Trimmed from the teacher's function.go: no bytecode *Code/globals, since
// every Function here wraps a native Go closure rather than interpreted
// Python source.
type Function struct {
	Object
	fn   Func
	name string
}

var functionBasis = reflect.TypeOf(Function{})

func newBuiltinFunction(name string, fn Func) *Function {
	return &Function{Object: Object{rep: functionRep()}, fn: fn, name: name}
}

func toFunctionUnsafe(o *Object) *Function {
	return (*Function)(ptrOf(o))
}

// ToObject upcasts fn to *Object.
func (fn *Function) ToObject() *Object {
	return &fn.Object
}

// Name returns fn's name.
func (fn *Function) Name() string {
	return fn.name
}

// Call invokes o as a callable: either a Function's native fn, or whatever
// the object's __call__ slot resolves to. This is the single entry point
// every slot wrapper's wrapCallable/makeCallable closures call through, so
// a Python-level override and a native implementation are invoked
// identically.
func (o *Object) Call(f *Frame, args Args, kwargs KWArgs) (*Object, *BaseException) {
	if o.Type() == FunctionType {
		return toFunctionUnsafe(o).fn(f, args, kwargs)
	}
	call := o.Type().rep.slot(OpCall)
	if call.empty() {
		return nil, f.RaiseType(TypeErrorType, fmt.Sprintf("'%s' object is not callable", o.Type().Name()))
	}
	return call.(*callSlot).Fn(f, o, args, kwargs)
}

func functionCall(f *Frame, callable *Object, args Args, kwargs KWArgs) (*Object, *BaseException) {
	return toFunctionUnsafe(callable).fn(f, args, kwargs)
}

func functionGet(f *Frame, desc, instance *Object, owner *PyType) (*Object, *BaseException) {
	if instance == nil {
		return desc, nil
	}
	return newBoundMethod(desc, instance).ToObject(), nil
}

func functionRepr(_ *Frame, o *Object) (*Object, *BaseException) {
	fn := toFunctionUnsafe(o)
	return NewStr(fmt.Sprintf("<function %s at %p>", fn.Name(), fn)).ToObject(), nil
}

// staticMethod represents Python 'staticmethod' objects: a descriptor that
// returns its wrapped callable unchanged, regardless of instance.
type staticMethod struct {
	Object
	callable *Object
}

var staticMethodBasis = reflect.TypeOf(staticMethod{})

func newStaticMethod(callable *Object) *staticMethod {
	return &staticMethod{Object: Object{rep: staticMethodRep()}, callable: callable}
}

func toStaticMethodUnsafe(o *Object) *staticMethod {
	return (*staticMethod)(ptrOf(o))
}

func (m *staticMethod) ToObject() *Object {
	return &m.Object
}

func staticMethodGet(f *Frame, desc, _ *Object, _ *PyType) (*Object, *BaseException) {
	m := toStaticMethodUnsafe(desc)
	if m.callable == nil {
		return nil, f.RaiseType(RuntimeErrorType, "uninitialized staticmethod object")
	}
	return m.callable, nil
}

func checkFunctionArgs(f *Frame, function string, args Args, types ...*PyType) *BaseException {
	if len(args) != len(types) {
		return f.RaiseType(TypeErrorType, fmt.Sprintf("'%s' requires %d arguments", function, len(types)))
	}
	for i, t := range types {
		if !isInstance(args[i], t) {
			return f.RaiseType(TypeErrorType, fmt.Sprintf(
				"'%s' requires a '%s' object but received a %q", function, t.Name(), args[i].Type().Name()))
		}
	}
	return nil
}

func checkFunctionVarArgs(f *Frame, function string, args Args, types ...*PyType) *BaseException {
	if len(args) <= len(types) {
		return checkFunctionArgs(f, function, args, types...)
	}
	return checkFunctionArgs(f, function, args[:len(types)], types...)
}

func checkMethodArgs(f *Frame, method string, args Args, types ...*PyType) *BaseException {
	if len(args) != len(types) {
		name := "?"
		if len(types) > 0 {
			name = types[0].Name()
		}
		return f.RaiseType(TypeErrorType, fmt.Sprintf("'%s' of '%s' requires %d arguments", method, name, len(types)))
	}
	for i, t := range types {
		if !isInstance(args[i], t) {
			return f.RaiseType(TypeErrorType, fmt.Sprintf(
				"'%s' requires a '%s' object but received a '%s'", method, t.Name(), args[i].Type().Name()))
		}
	}
	return nil
}

func checkMethodVarArgs(f *Frame, method string, args Args, types ...*PyType) *BaseException {
	if len(args) <= len(types) {
		return checkMethodArgs(f, method, args, types...)
	}
	return checkMethodArgs(f, method, args[:len(types)], types...)
}
