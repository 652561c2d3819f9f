package arena

import (
	"fmt"
	"math"
	"reflect"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
)

// Alloc returns a pointer to a zeroed T stored inside the arena.
// T must not contain Go pointers: arena memory is not scanned by the GC.
func Alloc[T any](a *Arena) (*T, error) {
	p, err := AllocUninitialized[T](a)
	if err != nil {
		return nil, err
	}
	var zero T
	*p = zero
	return p, nil
}

// AllocUninitialized returns a *T located in the arena without zeroing it.
// Memory that was never handed out before reads as zero; memory reclaimed
// by Reset or Rollback holds whatever was last written there.
func AllocUninitialized[T any](a *Arena) (*T, error) {
	mustBePointerFree[T]()
	var zero T
	b, err := a.allocAligned(int(unsafe.Sizeof(zero)), unsafe.Alignof(zero))
	if err != nil {
		return nil, err
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(b))), nil
}

// AllocSlice allocates a slice of n elements of type T inside the arena.
// The elements are not initialized. n == 0 yields an empty, non-nil slice.
func AllocSlice[T any](a *Arena, n int) ([]T, error) {
	mustBePointerFree[T]()
	var zero T
	size := int(unsafe.Sizeof(zero))
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "%d elements", n)
	}
	if size > 0 && n > math.MaxInt/size {
		return nil, errors.Wrapf(ErrInvalidSize, "%d elements of %d bytes", n, size)
	}
	if n == 0 || size == 0 {
		a.panicIfReleased()
		return make([]T, n), nil
	}
	b, err := a.allocAligned(size*n, unsafe.Alignof(zero))
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n), nil
}

// AllocSliceZeroed is AllocSlice followed by clearing every element.
func AllocSliceZeroed[T any](a *Arena, n int) ([]T, error) {
	s, err := AllocSlice[T](a, n)
	if err != nil {
		return nil, err
	}
	clear(s)
	return s, nil
}

// CloneBytes copies b into the arena.
func CloneBytes(a *Arena, b []byte) ([]byte, error) {
	dst, err := a.AllocBytes(len(b))
	if err != nil {
		return nil, err
	}
	copy(dst, b)
	return dst, nil
}

// CloneString copies s into the arena and returns a string backed by arena
// memory. The string must not be used after the bytes are reclaimed.
func CloneString(a *Arena, s string) (string, error) {
	dst, err := a.AllocBytes(len(s))
	if err != nil {
		return "", err
	}
	if len(dst) == 0 {
		return "", nil
	}
	copy(dst, s)
	return unsafe.String(unsafe.SliceData(dst), len(dst)), nil
}

var pointerFree sync.Map // reflect.Type -> bool

// mustBePointerFree panics if T holds Go pointers.
func mustBePointerFree[T any]() {
	t := reflect.TypeFor[T]()
	ok, cached := pointerFree.Load(t)
	if !cached {
		ok = !hasPointers(t)
		pointerFree.Store(t, ok)
	}
	if !ok.(bool) {
		panic(fmt.Sprintf("arena: %s contains pointers and cannot live in arena memory", t))
	}
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return true
	}
}
