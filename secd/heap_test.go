package secd

import (
	"testing"
)

func TestHeapIntRoundTrip(t *testing.T) {
	h := NewHeap(10)
	addr, err := h.NewInt(42)
	if err != nil {
		t.Fatal(err)
	}
	tag, err := h.Tag(addr)
	if err != nil {
		t.Fatal(err)
	}
	if tag != TagInt {
		t.Fatalf("tag = %s, want INT", tag)
	}
	v, err := h.GetInt(addr)
	if err != nil {
		t.Fatal(err)
	}
	if v != 42 {
		t.Fatalf("GetInt = %d, want 42", v)
	}
}

func TestHeapConsCarCdr(t *testing.T) {
	h := NewHeap(10)
	x, _ := h.NewInt(1)
	y, _ := h.NewInt(2)
	c, err := h.Cons(x, y)
	if err != nil {
		t.Fatal(err)
	}
	tag, _ := h.Tag(c)
	if tag != TagCons {
		t.Fatalf("tag = %s, want CONS", tag)
	}
	car, err := h.Car(c)
	if err != nil || car != x {
		t.Fatalf("Car = %d, %v, want %d, nil", car, err, x)
	}
	cdr, err := h.Cdr(c)
	if err != nil || cdr != y {
		t.Fatalf("Cdr = %d, %v, want %d, nil", cdr, err, y)
	}
}

func TestHeapNil(t *testing.T) {
	h := NewHeap(10)
	n, err := h.NewNil()
	if err != nil {
		t.Fatal(err)
	}
	isNil, err := h.IsNil(n)
	if err != nil {
		t.Fatal(err)
	}
	if !isNil {
		t.Fatalf("IsNil(%d) = false, want true", n)
	}
	x, _ := h.NewInt(1)
	cons, _ := h.Cons(x, n)
	isNil, err = h.IsNil(cons)
	if err != nil {
		t.Fatal(err)
	}
	if isNil {
		t.Fatalf("IsNil(%d) = true, want false", cons)
	}
}

func TestHeapExhaustion(t *testing.T) {
	h := NewHeap(2)
	if _, err := h.NewInt(1); err != nil {
		t.Fatal(err)
	}
	if _, err := h.NewInt(2); err != nil {
		t.Fatal(err)
	}
	if _, err := h.NewInt(3); err == nil {
		t.Fatal("expected heap exhaustion error, got nil")
	}
}

func TestHeapPushPop(t *testing.T) {
	h := NewHeap(10)
	var s Addr
	a, _ := h.NewInt(1)
	b, _ := h.NewInt(2)
	if err := h.Push(&s, a); err != nil {
		t.Fatal(err)
	}
	if err := h.Push(&s, b); err != nil {
		t.Fatal(err)
	}
	top, err := h.Pop(&s)
	if err != nil || top != b {
		t.Fatalf("Pop = %d, %v, want %d, nil", top, err, b)
	}
	top, err = h.Pop(&s)
	if err != nil || top != a {
		t.Fatalf("Pop = %d, %v, want %d, nil", top, err, a)
	}
}

func TestStoreTreeDecode(t *testing.T) {
	h := NewHeap(100)
	tree := []Value{int64(1), []Value{int64(2), int64(3)}, OpAdd}
	addr, err := h.StoreTree(tree)
	if err != nil {
		t.Fatal(err)
	}
	got, err := h.Decode(addr)
	if err != nil {
		t.Fatal(err)
	}
	list, ok := got.([]Value)
	if !ok || len(list) != 3 {
		t.Fatalf("Decode = %#v, want a 3-element list", got)
	}
	if list[0] != int64(1) {
		t.Fatalf("list[0] = %#v, want int64(1)", list[0])
	}
	nested, ok := list[1].([]Value)
	if !ok || len(nested) != 2 || nested[0] != int64(2) || nested[1] != int64(3) {
		t.Fatalf("list[1] = %#v, want [2 3]", list[1])
	}
	if list[2] != OpAdd {
		t.Fatalf("list[2] = %#v, want OpAdd", list[2])
	}
}

func TestDecodeCycle(t *testing.T) {
	h := NewHeap(10)
	// Build a self-referencing cell by hand: a cons cell whose car is patched
	// to point back at itself, a minimal stand-in for the cycle RAP closes.
	placeholder, err := h.Cons(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.SetCons(placeholder, placeholder, 0); err != nil {
		t.Fatal(err)
	}
	got, err := h.Decode(placeholder)
	if err != nil {
		t.Fatal(err)
	}
	list, ok := got.([]Value)
	if !ok || len(list) != 1 {
		t.Fatalf("Decode = %#v, want a 1-element list", got)
	}
	if _, ok := list[0].(Cycle); !ok {
		t.Fatalf("list[0] = %#v, want a Cycle sentinel", list[0])
	}
}
