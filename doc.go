// Package zone implements a finalizing region allocator: a chunked bump
// allocator that also tracks per-object cleanup, for workloads that build
// many small heterogeneous objects whose lifetimes all end together at a
// well-defined checkpoint (end of a message, end of a request).
//
// # Overview
//
// A Zone hands out storage by advancing a cursor within pre-acquired
// chunks, growing by a new chunk when the current one is exhausted. Objects
// that hold resources register a finalizer; Clear() and Release() replay
// every registered finalizer in reverse registration order, mirroring
// reverse construction order, before the chunks are reclaimed. This is the
// shape a deserializer needs: allocate an object graph bottom-up, tear the
// whole thing down at once.
//
// # Basic Usage
//
//	z, err := zone.New(nil) // Defaultsettings()
//	if err != nil { ... }
//	defer z.Release()
//
//	// Raw storage, aligned or packed
//	buf, err := z.Alloc(1024)
//	raw, err := z.AllocUnaligned(3)
//
//	// Typed values without cleanup
//	p, err := zone.Alloc[Header](z)
//	s, err := zone.AllocSlice[int32](z, 100)
//
//	// Typed values with cleanup, torn down in reverse order by Clear
//	f, err := zone.Construct[File](z,
//		func(f *File) error { return f.open(path) },
//		func(f *File) { f.close() })
//
//	z.Clear() // run finalizers, keep one warm chunk, ready for reuse
//
// # Construction Protocol
//
// Construct reserves the finalizer slot before the initializer runs. If
// the ledger cannot grow, or the initializer fails or panics, both the
// storage reservation and the pending finalizer entry are cancelled
// together: the zone is observably unchanged and the failed object's
// finalizer never runs.
//
// # Configuration
//
// Zones are configured through gosettings maps, see Defaultsettings():
// "chunksize" fixes the nominal chunk granularity and "capacity" bounds
// the heap bytes a zone may acquire. Exceeding the capacity surfaces as
// ErrorOutofMemory with the zone left valid and unchanged.
//
// # Thread Safety
//
// A zone has a single logical owner. No internal locking is provided;
// concurrent mutation needs external synchronization.
//
// # Important Notes
//
//   - Allocated memory is only valid until the next Clear() or Release();
//     there is no individual deallocation
//   - Chunks are plain byte slabs invisible to the garbage collector's
//     pointer scan: objects placed in a zone must not be the only reference
//     to Go-heap values (keep such referents alive elsewhere, or use
//     PtrAndKeepAlive)
//   - Zero-byte requests succeed without consuming space
package zone
