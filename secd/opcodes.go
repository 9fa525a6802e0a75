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

// Opcode identifies one of the SECD machine's instructions. Opcodes are
// stored inline in the code list as ordinary heap cells (tagged TagInt, with
// an internal opcode kind) and behave as constants at fetch time.
type Opcode int

// The SECD opcode alphabet. Any opcode cell fetched whose value is not one
// of these is a fatal error (spec §6.1).
const (
	OpAdd Opcode = iota
	OpSub
	OpMul
	OpDiv

	OpNil
	OpCons
	OpLdc
	OpLdf
	OpAp
	OpLd
	OpCar
	OpCdr

	OpDum
	OpRap

	OpJoin
	OpRtn
	OpSel
	OpNull

	OpWritei
	OpWritec

	OpReadc
	OpReadi

	OpStop

	OpZerop
	OpGt0p
	OpLt0p
)

var opcodeNames = [...]string{
	OpAdd:    "ADD",
	OpSub:    "SUB",
	OpMul:    "MUL",
	OpDiv:    "DIV",
	OpNil:    "NIL",
	OpCons:   "CONS",
	OpLdc:    "LDC",
	OpLdf:    "LDF",
	OpAp:     "AP",
	OpLd:     "LD",
	OpCar:    "CAR",
	OpCdr:    "CDR",
	OpDum:    "DUM",
	OpRap:    "RAP",
	OpJoin:   "JOIN",
	OpRtn:    "RTN",
	OpSel:    "SEL",
	OpNull:   "NULL",
	OpWritei: "WRITEI",
	OpWritec: "WRITEC",
	OpReadc:  "READC",
	OpReadi:  "READI",
	OpStop:   "STOP",
	OpZerop:  "ZEROP",
	OpGt0p:   "GT0P",
	OpLt0p:   "LT0P",
}

// String returns the opcode's mnemonic, or "???" for an out-of-range value.
func (op Opcode) String() string {
	if op < 0 || int(op) >= len(opcodeNames) {
		return "???"
	}
	return opcodeNames[op]
}

var opcodeByName = func() map[string]Opcode {
	m := make(map[string]Opcode, len(opcodeNames))
	for i, n := range opcodeNames {
		m[n] = Opcode(i)
	}
	return m
}()

// OpcodeByName looks up an opcode by its mnemonic. ok is false if name is
// not a known opcode.
func OpcodeByName(name string) (op Opcode, ok bool) {
	op, ok = opcodeByName[name]
	return op, ok
}
