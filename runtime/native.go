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

// WrapNative converts a reflect.Value that is not itself a *Object back
// into one, wrapping plain Go values (ints, strings, bools) in their
// corresponding bootstrap type. Used by MemberDescriptor's default path
// when a struct field holds a raw Go value rather than a *Object,
// trimmed from the teacher's native.go WrapNative/nativeTypes discovery
// machinery (which also handles maps, slices and arbitrary structs - out
// of scope for the object/type core itself).
func WrapNative(f *Frame, v reflect.Value) (*Object, *BaseException) {
	if !v.IsValid() {
		return None, nil
	}
	switch v.Kind() {
	case reflect.String:
		return NewStr(v.String()).ToObject(), nil
	case reflect.Bool:
		return GetBool(v.Bool()).ToObject(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewInt(int(v.Int())).ToObject(), nil
	case reflect.Ptr:
		if o, ok := v.Interface().(*Object); ok {
			if o == nil {
				return None, nil
			}
			return o, nil
		}
	}
	return nil, f.RaiseType(TypeErrorType, fmt.Sprintf("cannot wrap native value of kind %s", v.Kind()))
}
