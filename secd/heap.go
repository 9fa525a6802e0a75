// This file is part of pysecd - https://github.com/carlohamalainen/pysecd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package secd

import "github.com/pkg/errors"

// Addr is a heap address. 0 is the canonical nil pointer and is never
// allocated.
type Addr int32

// Tag is the externally-visible cell classification (spec §4.1: tag(addr)
// returns INT or CONS).
type Tag uint8

const (
	// TagInt marks a cell holding an integer or opcode value.
	TagInt Tag = iota
	// TagCons marks a cell holding a (car, cdr) pair.
	TagCons
)

func (t Tag) String() string {
	switch t {
	case TagInt:
		return "INT"
	case TagCons:
		return "CONS"
	default:
		return "???"
	}
}

// kind distinguishes, for TagInt cells, whether the stored value is a plain
// integer, an opcode symbol or an unresolved-name symbol. Spec §9's design notes recommend keeping
// these distinct internally even though both report TagInt externally; the
// source conflates them as a debugging shortcut we don't need to repeat.
type kind uint8

const (
	kindInteger kind = iota
	kindOpcode
	kindSymbol
)

type cell struct {
	tag Tag

	// valid when tag == TagInt
	k    kind
	ival int64
	op   Opcode
	sym  string

	// valid when tag == TagCons
	car, cdr Addr
}

// Heap is the SECD machine's tagged-cell memory: a bump allocator with a
// fixed ceiling and no garbage collection (spec §3.1, §5).
type Heap struct {
	cells   []cell
	next    Addr
	ceiling Addr
}

// DefaultCeiling is the default maximum address, matching the original's
// MAX_ADDRESS.
const DefaultCeiling = 1000

// NewHeap creates a heap with room for ceiling cells (address 0 excluded).
// A ceiling of 0 selects DefaultCeiling.
func NewHeap(ceiling int) *Heap {
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}
	return &Heap{
		cells:   make([]cell, ceiling+1),
		next:    0,
		ceiling: Addr(ceiling),
	}
}

// Alloc returns the next unused address. Returns an error once the heap's
// ceiling is reached; this is a fatal allocation failure per spec §5/§7.
func (h *Heap) Alloc() (Addr, error) {
	if h.next >= h.ceiling {
		return 0, errors.Errorf("heap exhausted: ceiling of %d cells reached", h.ceiling)
	}
	h.next++
	return h.next, nil
}

func (h *Heap) checkAddr(a Addr) error {
	if a <= 0 || int(a) >= len(h.cells) || a > h.next {
		return errors.Errorf("invalid heap address %d", a)
	}
	return nil
}

// SetInt tags addr as an integer cell holding x.
func (h *Heap) SetInt(addr Addr, x int64) error {
	if err := h.checkAddr(addr); err != nil {
		return err
	}
	h.cells[addr] = cell{tag: TagInt, k: kindInteger, ival: x}
	return nil
}

// SetOpcode tags addr as an integer cell holding the opcode op. Opcodes are
// stored inline in the code list and behave as constants at fetch time.
func (h *Heap) SetOpcode(addr Addr, op Opcode) error {
	if err := h.checkAddr(addr); err != nil {
		return err
	}
	h.cells[addr] = cell{tag: TagInt, k: kindOpcode, op: op}
	return nil
}

// SetCons tags addr as a cons cell (car, cdr).
func (h *Heap) SetCons(addr, car, cdr Addr) error {
	if err := h.checkAddr(addr); err != nil {
		return err
	}
	h.cells[addr] = cell{tag: TagCons, car: car, cdr: cdr}
	return nil
}

// SetSymbol tags addr as an integer cell holding an unresolved-name
// placeholder. This exists only for the compiler's permissive handling of
// names that index can't resolve (spec §9, "Unresolved variables"); no
// opcode handler ever produces or expects one, and trying to use it as an
// integer is a runtime fault, which is the point.
func (h *Heap) SetSymbol(addr Addr, s string) error {
	if err := h.checkAddr(addr); err != nil {
		return err
	}
	h.cells[addr] = cell{tag: TagInt, k: kindSymbol, sym: s}
	return nil
}

// Tag reports whether addr holds an integer or a cons cell.
func (h *Heap) Tag(addr Addr) (Tag, error) {
	if err := h.checkAddr(addr); err != nil {
		return 0, err
	}
	return h.cells[addr].tag, nil
}

// GetInt returns the integer stored at addr. addr must be an integer cell
// holding a plain value, not an opcode.
func (h *Heap) GetInt(addr Addr) (int64, error) {
	if err := h.checkAddr(addr); err != nil {
		return 0, err
	}
	c := h.cells[addr]
	if c.tag != TagInt {
		return 0, errors.Errorf("tag mismatch at %d: expected INT, got %s", addr, c.tag)
	}
	switch c.k {
	case kindOpcode:
		return 0, errors.Errorf("cell at %d holds opcode %s, not an integer", addr, c.op)
	case kindSymbol:
		return 0, errors.Errorf("cell at %d holds the unresolved name %q, not an integer", addr, c.sym)
	}
	return c.ival, nil
}

// GetOpcode returns the opcode stored at addr. addr must be an integer cell
// holding an opcode symbol.
func (h *Heap) GetOpcode(addr Addr) (Opcode, error) {
	if err := h.checkAddr(addr); err != nil {
		return 0, err
	}
	c := h.cells[addr]
	if c.tag != TagInt || c.k != kindOpcode {
		return 0, errors.Errorf("cell at %d is not an opcode", addr)
	}
	return c.op, nil
}

// Car returns the car field of the cons cell at addr.
func (h *Heap) Car(addr Addr) (Addr, error) {
	if err := h.checkAddr(addr); err != nil {
		return 0, err
	}
	c := h.cells[addr]
	if c.tag != TagCons {
		return 0, errors.Errorf("tag mismatch at %d: expected CONS, got %s", addr, c.tag)
	}
	return c.car, nil
}

// Cdr returns the cdr field of the cons cell at addr.
func (h *Heap) Cdr(addr Addr) (Addr, error) {
	if err := h.checkAddr(addr); err != nil {
		return 0, err
	}
	c := h.cells[addr]
	if c.tag != TagCons {
		return 0, errors.Errorf("tag mismatch at %d: expected CONS, got %s", addr, c.tag)
	}
	return c.cdr, nil
}

// IsNil reports whether addr is the canonical empty list: a cons cell whose
// car and cdr are both the nil pointer.
func (h *Heap) IsNil(addr Addr) (bool, error) {
	if addr == 0 {
		return true, nil
	}
	car, err := h.Car(addr)
	if err != nil {
		return false, err
	}
	cdr, err := h.Cdr(addr)
	if err != nil {
		return false, err
	}
	return car == 0 && cdr == 0, nil
}

// Cons allocates a fresh cons cell (car, cdr) and returns its address.
func (h *Heap) Cons(car, cdr Addr) (Addr, error) {
	addr, err := h.Alloc()
	if err != nil {
		return 0, err
	}
	if err := h.SetCons(addr, car, cdr); err != nil {
		return 0, err
	}
	return addr, nil
}

// NewInt allocates a fresh integer cell holding x and returns its address.
func (h *Heap) NewInt(x int64) (Addr, error) {
	addr, err := h.Alloc()
	if err != nil {
		return 0, err
	}
	if err := h.SetInt(addr, x); err != nil {
		return 0, err
	}
	return addr, nil
}

// NewOpcode allocates a fresh integer cell holding opcode op and returns its
// address.
func (h *Heap) NewOpcode(op Opcode) (Addr, error) {
	addr, err := h.Alloc()
	if err != nil {
		return 0, err
	}
	if err := h.SetOpcode(addr, op); err != nil {
		return 0, err
	}
	return addr, nil
}

// NewSymbol allocates a fresh unresolved-name placeholder cell (see
// SetSymbol) and returns its address.
func (h *Heap) NewSymbol(s string) (Addr, error) {
	addr, err := h.Alloc()
	if err != nil {
		return 0, err
	}
	if err := h.SetSymbol(addr, s); err != nil {
		return 0, err
	}
	return addr, nil
}

// NewNil allocates a fresh empty-list cell: a cons cell with both fields 0.
func (h *Heap) NewNil() (Addr, error) {
	return h.Cons(0, 0)
}

// Push pushes value v onto the cons-chain stack rooted at *reg.
func (h *Heap) Push(reg *Addr, v Addr) error {
	addr, err := h.Cons(v, *reg)
	if err != nil {
		return err
	}
	*reg = addr
	return nil
}

// Pop pops the top value off the cons-chain stack rooted at *reg.
func (h *Heap) Pop(reg *Addr) (Addr, error) {
	v, err := h.Car(*reg)
	if err != nil {
		return 0, err
	}
	rest, err := h.Cdr(*reg)
	if err != nil {
		return 0, err
	}
	*reg = rest
	return v, nil
}
