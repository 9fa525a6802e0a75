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

import (
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/carlohamalainen/pysecd/internal/secdi"
)

// DisassembleCode writes a human-readable listing of the code list rooted at
// addr to w, one mnemonic per line. LDC's operand is printed as its decoded
// value; LD's as "(i j)"; LDF's body is disassembled recursively, indented,
// since it is itself a nested code list (spec §4.1, §6.1).
func (h *Heap) DisassembleCode(addr Addr, w io.Writer) error {
	ew := secdi.NewErrWriter(w)
	h.disassemble(addr, ew, 0)
	return ew.Err
}

func (h *Heap) disassemble(addr Addr, w *secdi.ErrWriter, depth int) {
	indent := func() {
		for i := 0; i < depth; i++ {
			w.WriteString("  ")
		}
	}

	for addr != 0 {
		if w.Err != nil {
			return
		}

		isNil, err := h.IsNil(addr)
		if err != nil {
			w.Err = err
			return
		}
		if isNil {
			return
		}

		opAddr, err := h.Car(addr)
		if err != nil {
			w.Err = err
			return
		}
		addr, err = h.Cdr(addr)
		if err != nil {
			w.Err = err
			return
		}
		op, err := h.GetOpcode(opAddr)
		if err != nil {
			w.Err = errors.Wrap(err, "disassemble")
			return
		}

		indent()
		w.WriteString(op.String())

		switch op {
		case OpLdc:
			operand, rest, err := h.takeOperand(addr)
			if err != nil {
				w.Err = err
				return
			}
			addr = rest
			v, err := h.Decode(operand)
			if err != nil {
				w.Err = err
				return
			}
			w.WriteString(" " + formatValue(v))
		case OpLd:
			ij, rest, err := h.takeOperand(addr)
			if err != nil {
				w.Err = err
				return
			}
			addr = rest
			i, err := h.Car(ij)
			if err != nil {
				w.Err = err
				return
			}
			jCell, err := h.Cdr(ij)
			if err != nil {
				w.Err = err
				return
			}
			j, err := h.Car(jCell)
			if err != nil {
				w.Err = err
				return
			}
			iv, err := h.GetInt(i)
			if err != nil {
				w.Err = err
				return
			}
			jv, err := h.GetInt(j)
			if err != nil {
				w.Err = err
				return
			}
			w.WriteString(" (" + strconv.FormatInt(iv, 10) + " " + strconv.FormatInt(jv, 10) + ")")
		case OpLdf:
			body, rest, err := h.takeOperand(addr)
			if err != nil {
				w.Err = err
				return
			}
			addr = rest
			w.WriteString("\n")
			h.disassemble(body, w, depth+1)
			continue
		case OpSel:
			thenAddr, rest1, err := h.takeOperand(addr)
			if err != nil {
				w.Err = err
				return
			}
			elseAddr, rest2, err := h.takeOperand(rest1)
			if err != nil {
				w.Err = err
				return
			}
			addr = rest2
			w.WriteString("\n")
			h.disassemble(thenAddr, w, depth+1)
			h.disassemble(elseAddr, w, depth+1)
			continue
		}

		w.WriteString("\n")
	}
}

// takeOperand reads the next operand off a code cons chain, returning it and
// the chain with that operand consumed.
func (h *Heap) takeOperand(addr Addr) (operand, rest Addr, err error) {
	operand, err = h.Car(addr)
	if err != nil {
		return 0, 0, err
	}
	rest, err = h.Cdr(addr)
	if err != nil {
		return 0, 0, err
	}
	return operand, rest, nil
}

func formatValue(v Value) string {
	switch x := v.(type) {
	case int64:
		return strconv.FormatInt(x, 10)
	case Opcode:
		return x.String()
	case Symbol:
		return string(x)
	case []Value:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = formatValue(e)
		}
		s := "("
		for i, p := range parts {
			if i > 0 {
				s += " "
			}
			s += p
		}
		return s + ")"
	case Cycle:
		return "#<cycle " + strconv.Itoa(int(x.Addr)) + ">"
	case NilPlaceholder:
		return "#<dum>"
	default:
		return "?"
	}
}
