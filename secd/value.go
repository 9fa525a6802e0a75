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

// Value is a host-side representation of heap-storable data: an integer
// (int64), an opcode symbol (Opcode), a nested list ([]Value), or a Symbol
// (an unresolved-name placeholder, see Heap.SetSymbol). It is what the
// compiler emits and what Heap.StoreTree/Heap.Decode translate to and from
// heap addresses.
type Value interface{}

// Symbol is the LDC operand the compiler emits for a name index couldn't
// resolve (spec §9). It carries the original identifier through for
// debugging; no opcode handler reads one as an integer.
type Symbol string

// Cycle is the sentinel Decode returns in place of any address it has
// already visited during the current walk (spec §4.1, §9: DUM/RAP can build
// a cyclic environment and Decode must not loop forever).
type Cycle struct{ Addr Addr }

// NilPlaceholder is the sentinel Decode emits for the cons cell DUM inserts
// ahead of RAP's patch: car = 0 (the raw nil pointer, not an empty list) and
// cdr != 0.
type NilPlaceholder struct{}

// StoreTree recursively lays out a host value into the heap and returns the
// address of its root cell. Lists of opcode symbols are encoded as integer
// cells, matching the source's "opcodes are inline constants" shortcut.
func (h *Heap) StoreTree(v Value) (Addr, error) {
	switch x := v.(type) {
	case nil:
		return h.NewNil()
	case Opcode:
		return h.NewOpcode(x)
	case Symbol:
		return h.NewSymbol(string(x))
	case int:
		return h.NewInt(int64(x))
	case int64:
		return h.NewInt(x)
	case []Value:
		if len(x) == 0 {
			return h.NewNil()
		}
		car, err := h.StoreTree(x[0])
		if err != nil {
			return 0, err
		}
		cdr, err := h.StoreTree(x[1:])
		if err != nil {
			return 0, err
		}
		return h.Cons(car, cdr)
	default:
		return 0, errors.Errorf("cannot store value of type %T in the heap", v)
	}
}

// Decode is the inverse of StoreTree for acyclic structures. For the
// DUM-inserted nil placeholder (a cons cell with car=0, cdr!=0) it returns a
// NilPlaceholder followed, in the enclosing list, by the decode of cdr. For
// any address revisited during the walk it returns a Cycle sentinel instead
// of recursing. Used only for debugging and test observation.
func (h *Heap) Decode(addr Addr) (Value, error) {
	return h.decode(addr, make(map[Addr]bool))
}

func (h *Heap) decode(addr Addr, seen map[Addr]bool) (Value, error) {
	if addr == 0 {
		return []Value{}, nil
	}
	if seen[addr] {
		return Cycle{addr}, nil
	}
	seen[addr] = true

	tag, err := h.Tag(addr)
	if err != nil {
		return nil, err
	}
	switch tag {
	case TagInt:
		c := h.cells[addr]
		switch c.k {
		case kindOpcode:
			return c.op, nil
		case kindSymbol:
			return Symbol(c.sym), nil
		default:
			return c.ival, nil
		}
	case TagCons:
		car, err := h.Car(addr)
		if err != nil {
			return nil, err
		}
		cdr, err := h.Cdr(addr)
		if err != nil {
			return nil, err
		}
		if car == 0 && cdr == 0 {
			return []Value{}, nil
		}
		if car == 0 {
			rest, err := h.decode(cdr, seen)
			if err != nil {
				return nil, err
			}
			return prepend(NilPlaceholder{}, rest), nil
		}
		carVal, err := h.decode(car, seen)
		if err != nil {
			return nil, err
		}
		cdrVal, err := h.decode(cdr, seen)
		if err != nil {
			return nil, err
		}
		return prepend(carVal, cdrVal), nil
	default:
		return nil, errors.Errorf("unknown tag at %d", addr)
	}
}

// prepend conses head onto a decoded list value (or wraps it into one, if
// rest didn't itself decode to a list — this happens when the cdr decodes
// to a Cycle sentinel or to an integer).
func prepend(head Value, rest Value) []Value {
	if l, ok := rest.([]Value); ok {
		return append([]Value{head}, l...)
	}
	return []Value{head, rest}
}
