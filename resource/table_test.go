package resource

import (
	"testing"
)

type testDropper struct {
	dropped int
}

func (d *testDropper) Drop() {
	d.dropped++
}

func TestTable_Basic(t *testing.T) {
	table := NewTable()

	// Insert
	h := table.Insert(1, "test")
	if h == Nil {
		t.Fatal("Expected non-zero handle")
	}

	// Get
	val, ok := table.Get(h)
	if !ok {
		t.Fatal("Get failed")
	}
	if val != "test" {
		t.Fatalf("Expected 'test', got %v", val)
	}

	// GetTyped with correct type
	_, ok = table.GetTyped(h, 1)
	if !ok {
		t.Fatal("GetTyped with correct type failed")
	}

	// GetTyped with wrong type
	_, ok = table.GetTyped(h, 2)
	if ok {
		t.Fatal("GetTyped with wrong type should fail")
	}

	// Remove
	val, ok = table.Remove(h)
	if !ok {
		t.Fatal("Remove failed")
	}
	if val != "test" {
		t.Fatalf("Expected 'test', got %v", val)
	}

	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Remove")
	}
}

func TestTable_NilHandle(t *testing.T) {
	table := NewTable()

	if _, ok := table.Get(Nil); ok {
		t.Fatal("Get(Nil) should fail")
	}
	if _, ok := table.GetTyped(Nil, 1); ok {
		t.Fatal("GetTyped(Nil) should fail")
	}
	if _, ok := table.Remove(Nil); ok {
		t.Fatal("Remove(Nil) should fail")
	}
}

func TestTable_NoHandleReuse(t *testing.T) {
	table := NewTable()

	h1 := table.Insert(1, "a")
	table.Remove(h1)

	h2 := table.Insert(1, "b")
	if h2 == h1 {
		t.Fatal("Freed handle must not be reused")
	}

	// The freed handle stays dead
	if _, ok := table.Get(h1); ok {
		t.Fatal("Freed handle should not resolve")
	}
}

func TestTable_Dropper(t *testing.T) {
	table := NewTable()
	d := &testDropper{}

	h := table.Insert(1, d)
	table.Remove(h)

	if d.dropped != 1 {
		t.Fatalf("Expected Drop called once, got %d", d.dropped)
	}

	// Removing again is a no-op
	if _, ok := table.Remove(h); ok {
		t.Fatal("Second Remove should fail")
	}
	if d.dropped != 1 {
		t.Fatalf("Drop should not run twice, got %d", d.dropped)
	}
}

func TestTable_RemoveTyped(t *testing.T) {
	table := NewTable()

	h := table.Insert(1, "value")
	if _, ok := table.RemoveTyped(h, 2); ok {
		t.Fatal("RemoveTyped with wrong type should fail")
	}
	if table.Len() != 1 {
		t.Fatal("Wrong-typed remove must not drop the entry")
	}
	if _, ok := table.RemoveTyped(h, 1); !ok {
		t.Fatal("RemoveTyped with correct type failed")
	}
}

func TestTable_Exhaustion(t *testing.T) {
	table := NewTable()

	h := table.Insert(1, "live")
	table.next = ^Handle(0)

	if got := table.Insert(1, "wrap"); got != Nil {
		t.Fatal("Insert at counter wrap should return Nil")
	}
	// Exhaustion latches: the counter must not restart and hand out
	// handles that alias live entries.
	if got := table.Insert(1, "after"); got != Nil {
		t.Fatal("Insert after exhaustion should return Nil")
	}
	if v, ok := table.Get(h); !ok || v != "live" {
		t.Fatal("Exhaustion must not disturb live entries")
	}
	if table.Len() != 1 {
		t.Fatalf("Len = %d, want 1", table.Len())
	}
}

func TestTable_Close(t *testing.T) {
	table := NewTable()
	d := &testDropper{}

	table.Insert(1, d)
	table.Insert(2, "other")

	if err := table.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if d.dropped != 1 {
		t.Fatal("Close should drop remaining resources")
	}
	if table.Len() != 0 {
		t.Fatal("Table should be empty after Close")
	}

	// Inserts after Close return Nil
	if h := table.Insert(1, "late"); h != Nil {
		t.Fatal("Insert after Close should return Nil")
	}
}
