package zone

import (
	sigar "github.com/cloudfoundry/gosigar"
	s "github.com/prataprc/gosettings"
)

// DefaultChunkSize nominal chunk granularity for new zones (8 KiB).
const DefaultChunkSize = 8 * 1024

// Alignment for Alloc and typed allocations; returned addresses are
// multiples of Alignment.
const Alignment = 8

// Maxzonesize maximum capacity configurable for a zone.
const Maxzonesize = int64(1024 * 1024 * 1024 * 1024) // 1TB

// Defaultsettings for a zone.
//
// "chunksize" (int64, default: DefaultChunkSize)
//
//	Nominal chunk granularity: the size of the first chunk and the
//	baseline doubled to fit oversized requests.
//
// "capacity" (int64, default: free system RAM)
//
//	Maximum heap bytes the zone may acquire, counting chunks and the
//	finalizer ledger. 0 means unlimited.
func Defaultsettings() s.Settings {
	_, _, free := getsysmem()
	capacity := int64(free)
	if capacity <= 0 || capacity > Maxzonesize {
		capacity = Maxzonesize
	}
	return s.Settings{
		"chunksize": int64(DefaultChunkSize),
		"capacity":  capacity,
	}
}

func getsysmem() (total, used, free uint64) {
	mem := sigar.Mem{}
	mem.Get()
	return mem.Total, mem.Used, mem.Free
}
