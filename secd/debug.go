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

	"github.com/carlohamalainen/pysecd/internal/secdi"
)

func dumpRegister(w *secdi.ErrWriter, name string, h *Heap, addr Addr) {
	w.WriteString(name + " = ")
	if w.Err != nil {
		return
	}
	v, err := h.Decode(addr)
	if err != nil {
		w.Err = err
		return
	}
	w.WriteString(formatValue(v))
	w.WriteString("\n")
}

// DumpRegisters writes the decoded contents of S, E, C and D to w, one per
// line. A DUM/RAP letrec environment can make E cyclic; Decode's Cycle
// sentinel keeps this from looping forever.
func DumpRegisters(m *Machine, w io.Writer) error {
	ew := secdi.NewErrWriter(w)
	dumpRegister(ew, "S", m.Heap, m.S)
	dumpRegister(ew, "E", m.Heap, m.E)
	dumpRegister(ew, "C", m.Heap, m.C)
	dumpRegister(ew, "D", m.Heap, m.D)
	return ew.Err
}
