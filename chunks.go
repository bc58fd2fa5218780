package zone

// chunk is one contiguous block of memory owned by a zone.
type chunk struct {
	buf []byte
}

// chunkList owns every chunk a zone has acquired. Chunks are kept in
// acquisition order, the last element is the current chunk being bump
// allocated from. Invariant: off + free == len(current chunk).
type chunkList struct {
	chunks  []chunk
	off     int   // next allocation offset within the current chunk
	free    int   // bytes remaining in the current chunk
	inuse   int64 // bytes handed out, including alignment padding
	nominal int   // chunk granularity, fixed at zone construction
	bud     *budget
}

func newchunkList(chunksize int, bud *budget) (chunkList, error) {
	if err := bud.reserve(int64(chunksize)); err != nil {
		return chunkList{}, err
	}
	chunksTotal.Inc()
	allocatedBytes.WithLabelValues("chunk_init").Add(float64(chunksize))
	return chunkList{
		chunks:  []chunk{{buf: make([]byte, chunksize)}},
		free:    chunksize,
		nominal: chunksize,
		bud:     bud,
	}, nil
}

// alloc bump-allocates n bytes from the current chunk, growing when it
// cannot fit. If align > 1 the cursor is first advanced to the next multiple
// of align; chunk bases come from the Go heap and are at least 8-byte
// aligned, so keeping offsets aligned keeps addresses aligned. The returned
// used count is the exact number of bytes consumed (padding included), for
// a matching undo.
func (cl *chunkList) alloc(n, align int) (buf []byte, used int, err error) {
	pad := 0
	if align > 1 {
		if rem := cl.off % align; rem != 0 {
			pad = align - rem
		}
	}
	if cl.free < pad+n {
		return cl.grow(n)
	}
	c := &cl.chunks[len(cl.chunks)-1]
	start := cl.off + pad
	cl.off = start + n
	cl.free -= pad + n
	cl.inuse += int64(pad + n)
	return c.buf[start : start+n : start+n], pad + n, nil
}

// grow acquires a new chunk sized by doubling the nominal granularity until
// the request fits, and serves the request from its start. On failure the
// current chunk is left untouched.
func (cl *chunkList) grow(n int) ([]byte, int, error) {
	size := cl.nominal
	for size < n {
		size *= 2
	}
	if err := cl.bud.reserve(int64(size)); err != nil {
		return nil, 0, err
	}
	buf := make([]byte, size)
	cl.chunks = append(cl.chunks, chunk{buf: buf})
	cl.off = n
	cl.free = size - n
	cl.inuse += int64(n)
	chunksTotal.Inc()
	allocatedBytes.WithLabelValues("chunk_grow").Add(float64(size))
	debugf("zone: grew by %v byte chunk for %v byte request", size, n)
	return buf[0:n:n], n, nil
}

// undo cancels the most recent alloc. Must be called with the used count
// that alloc returned, before any further allocation, and never across a
// growth boundary.
func (cl *chunkList) undo(used int) {
	cl.off -= used
	cl.free += used
	cl.inuse -= int64(used)
}

// clear drops every chunk except the construction-time chunk, which is
// always nominal sized and stays warm for reuse. The cursor is reset to its
// start. Returns the number of heap bytes given back.
func (cl *chunkList) clear() int64 {
	released := int64(0)
	for i := 1; i < len(cl.chunks); i++ {
		released += int64(len(cl.chunks[i].buf))
		cl.chunks[i] = chunk{}
	}
	cl.chunks = cl.chunks[:1]
	cl.off, cl.free = 0, len(cl.chunks[0].buf)
	cl.inuse = 0
	cl.bud.credit(released)
	return released
}

// release drops every chunk outright. The list is unusable afterwards.
func (cl *chunkList) release() int64 {
	released := int64(0)
	for _, c := range cl.chunks {
		released += int64(len(c.buf))
	}
	cl.chunks = nil
	cl.off, cl.free, cl.inuse = 0, 0, 0
	cl.bud.credit(released)
	return released
}

func (cl *chunkList) capacity() int64 {
	total := int64(0)
	for _, c := range cl.chunks {
		total += int64(len(c.buf))
	}
	return total
}
