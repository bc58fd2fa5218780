package zone

import (
	"strings"
	"testing"

	s "github.com/prataprc/gosettings"
)

func TestMetricsFresh(t *testing.T) {
	z, _ := New(s.Settings{"chunksize": int64(1024)})
	defer z.Release()

	m := z.Metrics()
	if m.SizeInUse != 0 || m.Capacity != 1024 || m.NumChunks != 1 {
		t.Errorf("fresh zone metrics = %+v", m)
	}
	if m.NumFinalizers != 0 || m.ChunkSize != 1024 || m.Utilization != 0 {
		t.Errorf("fresh zone metrics = %+v", m)
	}
}

func TestMetricsAfterUse(t *testing.T) {
	z, _ := New(s.Settings{"chunksize": int64(1024)})
	defer z.Release()

	z.Alloc(256)
	Construct(z,
		func(*int64) error { return nil },
		func(*int64) {})

	m := z.Metrics()
	if m.SizeInUse != 256+8 {
		t.Errorf("SizeInUse = %d, want %d", m.SizeInUse, 256+8)
	}
	if m.NumFinalizers != 1 {
		t.Errorf("NumFinalizers = %d, want 1", m.NumFinalizers)
	}
	if want := float64(264) / float64(1024); m.Utilization != want {
		t.Errorf("Utilization = %v, want %v", m.Utilization, want)
	}

	z.Alloc(3000) // growth includes alignment padding in use counts
	if got := z.Metrics().NumChunks; got != 2 {
		t.Errorf("NumChunks = %d, want 2", got)
	}
}

func TestMetricsReleased(t *testing.T) {
	z, _ := New(s.Settings{"chunksize": int64(1024)})
	z.Alloc(100)
	z.Release()

	m := z.Metrics()
	if m.SizeInUse != 0 || m.Capacity != 0 || m.NumChunks != 0 || m.Utilization != 0 {
		t.Errorf("released zone metrics = %+v", m)
	}
}

func TestMetricsString(t *testing.T) {
	z, _ := New(s.Settings{"chunksize": int64(1024)})
	defer z.Release()
	z.Alloc(512)

	str := z.Metrics().String()
	if !strings.HasPrefix(str, "zone: ") || !strings.Contains(str, "chunks") {
		t.Errorf("unexpected metrics string %q", str)
	}
}
