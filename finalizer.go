package zone

import "unsafe"

// seedFinalizers is the ledger capacity seeded on first growth.
const seedFinalizers = 8

// finalizer pairs a cleanup function with the address it runs on.
type finalizer struct {
	fn   func(unsafe.Pointer)
	data unsafe.Pointer
}

func (f finalizer) call() { f.fn(f.data) }

// finalizerStack records cleanup actions in allocation order and replays
// them in reverse. Growth is explicit, not left to append, so it can be
// gated by the zone's capacity budget and a failed growth leaves the stack
// unchanged.
type finalizerStack struct {
	entries []finalizer
	bud     *budget
}

func (fs *finalizerStack) count() int {
	return len(fs.entries)
}

// push appends an entry, amortized O(1). A growth failure returns
// ErrorOutofMemory without recording the entry.
func (fs *finalizerStack) push(f finalizer) error {
	if len(fs.entries) == cap(fs.entries) {
		if err := fs.grow(); err != nil {
			return err
		}
	}
	fs.entries = append(fs.entries, f)
	finalizersTotal.Inc()
	return nil
}

func (fs *finalizerStack) grow() error {
	nnext := seedFinalizers
	if n := cap(fs.entries); n > 0 {
		nnext = n * 2
	}
	entrysize := int64(unsafe.Sizeof(finalizer{}))
	if err := fs.bud.reserve(int64(nnext-cap(fs.entries)) * entrysize); err != nil {
		return err
	}
	grown := make([]finalizer, len(fs.entries), nnext)
	copy(grown, fs.entries)
	fs.entries = grown
	allocatedBytes.WithLabelValues("ledger").Add(float64(nnext) * float64(entrysize))
	return nil
}

// popLast drops the most recent entry without invoking it. Used to cancel a
// registration whose object never finished constructing.
func (fs *finalizerStack) popLast() {
	last := len(fs.entries) - 1
	fs.entries[last] = finalizer{}
	fs.entries = fs.entries[:last]
}

// callAll invokes every recorded finalizer newest first. Later objects may
// reference earlier ones, so teardown mirrors reverse construction order.
// Memory is not released here; that is the chunk list's job.
func (fs *finalizerStack) callAll() {
	for i := len(fs.entries) - 1; i >= 0; i-- {
		fs.entries[i].call()
	}
}

// reset calls every finalizer and rewinds the tail. The backing array keeps
// its capacity for the next fill cycle.
func (fs *finalizerStack) reset() {
	fs.callAll()
	clear(fs.entries)
	fs.entries = fs.entries[:0]
}

// release calls every finalizer and drops the backing array.
func (fs *finalizerStack) release() {
	fs.callAll()
	fs.bud.credit(int64(cap(fs.entries)) * int64(unsafe.Sizeof(finalizer{})))
	fs.entries = nil
}
