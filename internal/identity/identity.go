// Package identity implements the identity-or-strict-equality rule used to match map keys.
//
// Values of the same dynamic type are compared by value when they are plain data
// (bool, numbers, strings, and arrays or structs made of such),
// and by identity when they refer to something (pointers, maps, channels, slices, funcs).
// Values of different dynamic types are never equal.
package identity

import (
	"reflect"
	"sync"
	"unsafe"
)

// Equal reports whether x and y are the same key.
func Equal(x, y any) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	typ := reflect.TypeOf(x)
	if typ != reflect.TypeOf(y) {
		return false
	}
	switch typ.Kind() {
	case reflect.Func:
		return funcPtrOfAny(x) == funcPtrOfAny(y)
	case reflect.Slice, reflect.Map:
		return equal(reflect.ValueOf(x), reflect.ValueOf(y))
	case reflect.Struct, reflect.Array:
		if needsWalk(typ) {
			return equal(addressable(x), addressable(y))
		}
		return x == y
	default:
		return x == y
	}
}

func equal(x, y reflect.Value) bool {
	switch x.Kind() {
	case reflect.Invalid:
		return !y.IsValid()
	case reflect.Bool:
		return x.Bool() == y.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return x.Int() == y.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return x.Uint() == y.Uint()
	case reflect.Float32, reflect.Float64:
		return x.Float() == y.Float()
	case reflect.Complex64, reflect.Complex128:
		return x.Complex() == y.Complex()
	case reflect.String:
		return x.String() == y.String()
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		return x.Pointer() == y.Pointer()
	case reflect.Slice:
		return x.Pointer() == y.Pointer() && x.Len() == y.Len() && x.Cap() == y.Cap()
	case reflect.Func:
		return funcPtr(x) == funcPtr(y)
	case reflect.Interface:
		if x.IsNil() || y.IsNil() {
			return x.IsNil() && y.IsNil()
		}
		xe, ye := x.Elem(), y.Elem()
		if xe.Type() != ye.Type() {
			return false
		}
		return equal(xe, ye)
	case reflect.Array:
		for i := 0; i < x.Len(); i++ {
			if !equal(x.Index(i), y.Index(i)) {
				return false
			}
		}
		return true
	case reflect.Struct:
		for i := 0; i < x.NumField(); i++ {
			if !equal(x.Field(i), y.Field(i)) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// addressable copies v into a new variable,
// so func members reached through it can be identified by their closure pointer.
func addressable(v any) reflect.Value {
	rv := reflect.ValueOf(v)
	ptr := reflect.New(rv.Type())
	ptr.Elem().Set(rv)
	return ptr.Elem()
}

// funcPtrOfAny returns the closure pointer of a func held in an interface.
// A func value is pointer shaped, so the interface data word is the closure itself.
func funcPtrOfAny(fn any) unsafe.Pointer {
	type eface struct {
		typ  unsafe.Pointer
		data unsafe.Pointer
	}
	return (*eface)(unsafe.Pointer(&fn)).data
}

func funcPtr(v reflect.Value) unsafe.Pointer {
	if v.IsNil() {
		return nil
	}
	if v.CanAddr() {
		return *(*unsafe.Pointer)(v.Addr().UnsafePointer())
	}
	// the closure can't be reached, only its code
	return v.UnsafePointer()
}

var walkCache sync.Map // map[reflect.Type]bool

// needsWalk tells if values of typ can't be compared with the builtin == operator
// while following the identity rules.
func needsWalk(typ reflect.Type) bool {
	if v, ok := walkCache.Load(typ); ok {
		return v.(bool)
	}
	nw := !typ.Comparable() || hasInterface(typ, map[reflect.Type]struct{}{})
	walkCache.Store(typ, nw)
	return nw
}

func hasInterface(typ reflect.Type, seen map[reflect.Type]struct{}) bool {
	if _, ok := seen[typ]; ok {
		return false
	}
	seen[typ] = struct{}{}
	switch typ.Kind() {
	case reflect.Interface:
		return true
	case reflect.Array:
		return hasInterface(typ.Elem(), seen)
	case reflect.Struct:
		for i := 0; i < typ.NumField(); i++ {
			if hasInterface(typ.Field(i).Type, seen) {
				return true
			}
		}
	}
	return false
}
