package zone

import (
	"testing"
	"unsafe"
)

func testfini(order *[]int, id int) finalizer {
	return finalizer{
		fn:   func(unsafe.Pointer) { *order = append(*order, id) },
		data: nil,
	}
}

func TestFinalizerOrder(t *testing.T) {
	bud := &budget{}
	fs := finalizerStack{bud: bud}

	order := []int{}
	for id := 1; id <= 20; id++ {
		if err := fs.push(testfini(&order, id)); err != nil {
			t.Fatalf("push %d: %v", id, err)
		}
	}
	if fs.count() != 20 {
		t.Fatalf("count = %d, want 20", fs.count())
	}

	fs.callAll()
	if len(order) != 20 {
		t.Fatalf("invoked %d finalizers, want 20", len(order))
	}
	for i, id := range order {
		if id != 20-i {
			t.Fatalf("invocation %d was finalizer %d, want %d", i, id, 20-i)
		}
	}
}

func TestFinalizerGrowth(t *testing.T) {
	bud := &budget{}
	fs := finalizerStack{bud: bud}

	fs.push(testfini(&[]int{}, 0))
	if cap(fs.entries) != seedFinalizers {
		t.Errorf("seed capacity = %d, want %d", cap(fs.entries), seedFinalizers)
	}
	for i := 0; i < seedFinalizers; i++ {
		fs.push(testfini(&[]int{}, i))
	}
	if cap(fs.entries) != 2*seedFinalizers {
		t.Errorf("capacity after overflow = %d, want %d",
			cap(fs.entries), 2*seedFinalizers)
	}
}

func TestFinalizerGrowthFailure(t *testing.T) {
	entrysize := int64(unsafe.Sizeof(finalizer{}))
	bud := &budget{capacity: int64(seedFinalizers) * entrysize}
	fs := finalizerStack{bud: bud}

	order := []int{}
	for id := 1; id <= seedFinalizers; id++ {
		if err := fs.push(testfini(&order, id)); err != nil {
			t.Fatalf("push %d: %v", id, err)
		}
	}
	if err := fs.push(testfini(&order, 99)); err != ErrorOutofMemory {
		t.Fatalf("expected ErrorOutofMemory, got %v", err)
	}
	// the failed push is not recorded
	if fs.count() != seedFinalizers {
		t.Errorf("count = %d after failed push, want %d", fs.count(), seedFinalizers)
	}
	fs.callAll()
	for _, id := range order {
		if id == 99 {
			t.Errorf("failed push was invoked")
		}
	}
}

func TestFinalizerPopLast(t *testing.T) {
	bud := &budget{}
	fs := finalizerStack{bud: bud}

	order := []int{}
	fs.push(testfini(&order, 1))
	fs.push(testfini(&order, 2))
	fs.push(testfini(&order, 3))
	fs.popLast()

	fs.callAll()
	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Errorf("callAll after popLast invoked %v, want [2 1]", order)
	}
}

func TestFinalizerReset(t *testing.T) {
	bud := &budget{}
	fs := finalizerStack{bud: bud}

	order := []int{}
	for id := 1; id <= 10; id++ {
		fs.push(testfini(&order, id))
	}
	grown := cap(fs.entries)

	fs.reset()
	if len(order) != 10 {
		t.Errorf("reset invoked %d finalizers, want 10", len(order))
	}
	if fs.count() != 0 {
		t.Errorf("count = %d after reset, want 0", fs.count())
	}
	// capacity stays warm across reset
	if cap(fs.entries) != grown {
		t.Errorf("capacity = %d after reset, want %d", cap(fs.entries), grown)
	}

	// second reset must not re-invoke anything
	fs.reset()
	if len(order) != 10 {
		t.Errorf("re-invoked finalizers on empty reset")
	}
}

func TestFinalizerRelease(t *testing.T) {
	bud := &budget{}
	fs := finalizerStack{bud: bud}

	n := 0
	for i := 0; i < 5; i++ {
		fs.push(finalizer{fn: func(unsafe.Pointer) { n++ }})
	}
	fs.release()
	if n != 5 {
		t.Errorf("release invoked %d finalizers, want 5", n)
	}
	if fs.entries != nil || bud.used != 0 {
		t.Errorf("release must drop the array and credit the budget")
	}
}
