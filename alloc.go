package zone

import (
	"runtime"
	"unsafe"
)

// Alloc returns a pointer to a zeroed T stored inside the zone. The pointer
// is valid until the zone is cleared or released. No finalizer is
// registered; use Construct for objects that need cleanup.
func Alloc[T any](z *Zone) (*T, error) {
	b, _, err := z.allocraw(sizeoft[T](), Alignment)
	if err != nil {
		return nil, err
	}
	clear(b)
	return (*T)(unsafe.Pointer(&b[0])), nil
}

// AllocUninitialized returns a *T located in the zone without zeroing the
// storage. Faster than Alloc but the contents are whatever the chunk held.
func AllocUninitialized[T any](z *Zone) (*T, error) {
	b, _, err := z.allocraw(sizeoft[T](), Alignment)
	if err != nil {
		return nil, err
	}
	return (*T)(unsafe.Pointer(&b[0])), nil
}

// AllocSlice allocates a slice of n elements of type T inside the zone.
// The elements are not zeroed. Returns nil for n <= 0.
func AllocSlice[T any](z *Zone, n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	var zero T
	total := int(unsafe.Sizeof(zero)) * n
	if total == 0 {
		total = 1
	}
	b, _, err := z.allocraw(total, Alignment)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n), nil
}

// AllocSliceZeroed allocates a slice of n elements of type T with zeroed
// storage.
func AllocSliceZeroed[T any](z *Zone, n int) ([]T, error) {
	sl, err := AllocSlice[T](z, n)
	if err != nil {
		return nil, err
	}
	clear(sl)
	return sl, nil
}

// Construct allocates aligned storage for a T inside the zone, initializes
// it with ctor and registers fini to run at Clear or Release time, after
// the finalizers of any objects constructed later.
//
// The finalizer slot is reserved before ctor runs, so a failure midway can
// always be cancelled: if the ledger cannot grow, the storage reservation
// is undone; if ctor fails or panics, the pending entry is removed without
// being invoked (the object never became valid) and the storage reservation
// is undone. Either way the zone is left exactly as it was before the call.
// ctor sees zeroed storage and may be nil; fini must not be.
func Construct[T any](z *Zone, ctor func(*T) error, fini func(*T)) (*T, error) {
	if fini == nil {
		panicerr("Construct with nil finalizer, use Alloc instead")
	}
	b, used, err := z.allocraw(sizeoft[T](), Alignment)
	if err != nil {
		return nil, err
	}
	clear(b)
	obj := (*T)(unsafe.Pointer(&b[0]))
	if err := z.finals.push(finalizer{fn: finifunc(fini), data: unsafe.Pointer(obj)}); err != nil {
		z.chunks.undo(used)
		return nil, err
	}
	pending := true
	defer func() {
		if pending {
			z.finals.popLast()
			z.chunks.undo(used)
		}
	}()
	if ctor != nil {
		if err := ctor(obj); err != nil {
			return nil, err
		}
	}
	pending = false
	return obj, nil
}

// Finalize transfers cleanup responsibility for an externally constructed
// object into the zone. Typed wrapper over PushFinalizer.
func Finalize[T any](z *Zone, obj *T, fini func(*T)) error {
	if obj == nil || fini == nil {
		panicerr("Finalize with nil object or finalizer")
	}
	return z.PushFinalizer(finifunc(fini), unsafe.Pointer(obj))
}

// PtrAndKeepAlive returns t and calls runtime.KeepAlive on the zone, to
// keep the zone reachable while the pointer is in use from unsafe code.
func PtrAndKeepAlive[T any](z *Zone, t *T) *T {
	runtime.KeepAlive(z)
	return t
}

func finifunc[T any](fini func(*T)) func(unsafe.Pointer) {
	return func(p unsafe.Pointer) { fini((*T)(p)) }
}

// sizeoft is Sizeof with zero-size types bumped to one byte, so every
// allocation has a distinct, dereferenceable address.
func sizeoft[T any]() int {
	var zero T
	if size := int(unsafe.Sizeof(zero)); size > 0 {
		return size
	}
	return 1
}
