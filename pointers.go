package temparena

import (
	"fmt"
	"reflect"
	"sync"
)

// pointerTypes caches containsPointers per type for the typed helpers.
var pointerTypes sync.Map // reflect.Type -> bool

// mustBePointerFree panics with ErrPointerType if T holds Go pointers.
func mustBePointerFree[T any]() {
	t := reflect.TypeFor[T]()
	has, ok := pointerTypes.Load(t)
	if !ok {
		has, _ = pointerTypes.LoadOrStore(t, containsPointers(t))
	}
	if has.(bool) {
		panic(fmt.Errorf("%w: %v", ErrPointerType, t))
	}
}

// containsPointers reports whether t (recursively) holds any Go pointers:
// ptr, slice, map, chan, func, interface, string or unsafe.Pointer.
func containsPointers(t reflect.Type) bool {
	return containsPointersRec(t, make(map[reflect.Type]bool))
}

func containsPointersRec(t reflect.Type, visited map[reflect.Type]bool) bool {
	if t == nil || visited[t] {
		return false
	}
	visited[t] = true

	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func,
		reflect.Interface, reflect.UnsafePointer, reflect.String:
		return true
	case reflect.Array:
		return t.Len() > 0 && containsPointersRec(t.Elem(), visited)
	case reflect.Struct:
		for i := range t.NumField() {
			if containsPointersRec(t.Field(i).Type, visited) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
