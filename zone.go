package zone

import (
	"errors"
	"fmt"
	"unsafe"

	humanize "github.com/dustin/go-humanize"
	s "github.com/prataprc/gosettings"
)

// ErrorOutofMemory is returned when acquiring a chunk, or growing the
// finalizer ledger, would push the zone past its configured capacity.
var ErrorOutofMemory = errors.New("zone.outofmemory")

// budget tracks heap bytes acquired by a zone against its configured
// capacity. Zero capacity means unlimited.
type budget struct {
	capacity int64
	used     int64
}

func (b *budget) reserve(n int64) error {
	if b.capacity > 0 && b.used+n > b.capacity {
		return ErrorOutofMemory
	}
	b.used += n
	return nil
}

func (b *budget) credit(n int64) {
	b.used -= n
}

// Zone is a region allocator: many small, variable lifetime allocations are
// batched into coarse chunks and torn down together. Objects that need
// cleanup register a finalizer, replayed in reverse allocation order by
// Clear and Release. A zone has a single logical owner; it is not safe for
// concurrent use.
type Zone struct {
	chunks    chunkList
	finals    finalizerStack
	bud       budget
	chunksize int
}

// New creates a zone from setts, which is applied over Defaultsettings().
// Returns ErrorOutofMemory when the configured capacity cannot hold even
// the first chunk; no zone is created in that case.
func New(setts s.Settings) (*Zone, error) {
	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	chunksize, capacity := setts.Int64("chunksize"), setts.Int64("capacity")
	if chunksize <= 0 {
		panicerr("chunksize %v must be positive", chunksize)
	} else if capacity < 0 || capacity > Maxzonesize {
		panicerr("capacity %v out of range (0..%v)", capacity, Maxzonesize)
	}
	z := &Zone{chunksize: int(chunksize), bud: budget{capacity: capacity}}
	z.finals.bud = &z.bud
	chunks, err := newchunkList(int(chunksize), &z.bud)
	if err != nil {
		return nil, err
	}
	z.chunks = chunks
	return z, nil
}

// Alloc returns n bytes of zone-owned storage whose address is a multiple
// of Alignment. The range stays valid until Clear or Release; it must not
// be individually freed. No finalizer is registered.
func (z *Zone) Alloc(n int) ([]byte, error) {
	buf, _, err := z.allocraw(n, Alignment)
	return buf, err
}

// AllocUnaligned is Alloc without the alignment round-up, packing requests
// back to back.
func (z *Zone) AllocUnaligned(n int) ([]byte, error) {
	buf, _, err := z.allocraw(n, 1)
	return buf, err
}

// EnsureCapacity makes sure the current chunk can serve n more bytes
// without growing mid-request. Growth happens now, or not at all.
func (z *Zone) EnsureCapacity(n int) error {
	z.panicifreleased()
	if n <= 0 || z.chunks.free >= n {
		return nil
	}
	_, used, err := z.chunks.alloc(n, 1)
	if err != nil {
		return err
	}
	z.chunks.undo(used)
	return nil
}

func (z *Zone) allocraw(n, align int) ([]byte, int, error) {
	z.panicifreleased()
	if n < 0 {
		panicerr("allocation size %v is negative", n)
	} else if n == 0 {
		return []byte{}, 0, nil
	}
	return z.chunks.alloc(n, align)
}

// PushFinalizer transfers cleanup responsibility for an externally
// constructed object into the zone: fn runs on data when the zone is
// cleared or released, after any finalizer registered later. No storage is
// allocated. The caller relinquishes its own ownership of the cleanup.
func (z *Zone) PushFinalizer(fn func(unsafe.Pointer), data unsafe.Pointer) error {
	z.panicifreleased()
	if fn == nil {
		panicerr("PushFinalizer with nil function")
	}
	return z.finals.push(finalizer{fn: fn, data: data})
}

// Clear tears down every live object and collapses storage back to the
// construction-time chunk. Finalizers run in reverse registration order
// while their memory is still intact, then the extra chunks are dropped.
// The zone is immediately reusable, with one warm chunk.
func (z *Zone) Clear() {
	z.panicifreleased()
	nfinals := z.finals.count()
	z.finals.reset()
	released := z.chunks.clear()
	clearsTotal.Inc()
	infof("zone: cleared, %v finalized, %v reclaimed",
		nfinals, humanize.Bytes(uint64(released)))
}

// Swap exchanges the entire contents of two zones in constant time.
// Ownership of every chunk and finalizer transfers; both zones remain
// independently valid, each owning what was previously the other's.
func (z *Zone) Swap(o *Zone) {
	z.chunks, o.chunks = o.chunks, z.chunks
	z.finals, o.finals = o.finals, z.finals
	z.bud, o.bud = o.bud, z.bud
	z.chunksize, o.chunksize = o.chunksize, z.chunksize
	z.chunks.bud, o.chunks.bud = &z.bud, &o.bud
	z.finals.bud, o.finals.bud = &z.bud, &o.bud
}

// Release runs every registered finalizer exactly once, in reverse
// registration order, then drops every chunk outright. The zone is
// unusable afterwards; subsequent operations panic. Release on an already
// released zone is a no-op.
func (z *Zone) Release() {
	if z.chunks.chunks == nil {
		return
	}
	nfinals := z.finals.count()
	z.finals.release()
	released := z.chunks.release()
	infof("zone: released, %v finalized, %v reclaimed",
		nfinals, humanize.Bytes(uint64(released)))
}

func (z *Zone) panicifreleased() {
	if z.chunks.chunks == nil {
		panic("zone: use after Release()")
	}
}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}
