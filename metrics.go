package zone

import (
	"fmt"

	humanize "github.com/dustin/go-humanize"
)

// SizeInUse returns the number of bytes currently handed out by the zone,
// including internal fragmentation due to alignment.
func (z *Zone) SizeInUse() int64 {
	return z.chunks.inuse
}

// NumChunks returns the number of chunks currently owned by the zone.
func (z *Zone) NumChunks() int {
	return len(z.chunks.chunks)
}

// NumFinalizers returns the number of finalizers currently registered.
func (z *Zone) NumFinalizers() int {
	return z.finals.count()
}

// Capacity returns the total capacity, in bytes, of all chunks owned by
// the zone.
func (z *Zone) Capacity() int64 {
	return z.chunks.capacity()
}

// Utilization returns the ratio of bytes in use to total chunk capacity
// (0.0 to 1.0). Returns 0.0 if the zone has no capacity.
func (z *Zone) Utilization() float64 {
	capacity := z.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(z.SizeInUse()) / float64(capacity)
}

// ChunkSize returns the nominal chunk granularity of this zone.
func (z *Zone) ChunkSize() int {
	return z.chunksize
}

// Metrics returns a snapshot of zone statistics.
func (z *Zone) Metrics() ZoneMetrics {
	return ZoneMetrics{
		SizeInUse:     z.SizeInUse(),
		Capacity:      z.Capacity(),
		NumChunks:     z.NumChunks(),
		NumFinalizers: z.NumFinalizers(),
		ChunkSize:     z.ChunkSize(),
		Utilization:   z.Utilization(),
	}
}

// ZoneMetrics contains statistical information about a zone.
type ZoneMetrics struct {
	SizeInUse     int64   // Bytes currently allocated
	Capacity      int64   // Total chunk capacity in bytes
	NumChunks     int     // Number of chunks
	NumFinalizers int     // Number of registered finalizers
	ChunkSize     int     // Nominal chunk granularity
	Utilization   float64 // Ratio of used to total capacity (0.0-1.0)
}

func (m ZoneMetrics) String() string {
	return fmt.Sprintf(
		"zone: %v of %v used (%.2f%%), %v chunks, %v finalizers",
		humanize.Bytes(uint64(m.SizeInUse)), humanize.Bytes(uint64(m.Capacity)),
		m.Utilization*100, m.NumChunks, m.NumFinalizers)
}
