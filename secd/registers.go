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
	"fmt"
	"io"
	"os"
)

// Option configures a Machine at construction time, in the style of a
// functional-options constructor.
type Option func(*Machine) error

// MemoryCeiling sets the heap's maximum address (default DefaultCeiling).
func MemoryCeiling(n int) Option {
	return func(m *Machine) error {
		m.Heap = NewHeap(n)
		return nil
	}
}

// Input sets the stream READI reads from (default os.Stdin).
func Input(r io.Reader) Option {
	return func(m *Machine) error {
		m.input = newRuneReader(r)
		return nil
	}
}

// Output sets the stream WRITEI/WRITEC write to (default os.Stdout).
func Output(w io.Writer) Option {
	return func(m *Machine) error {
		m.output = newRuneWriter(w)
		return nil
	}
}

// Debug enables opcode trace events on the machine's trace writer. Tracing
// never affects semantics (spec §6.3).
func Debug(w io.Writer) Option {
	return func(m *Machine) error {
		m.debug = true
		m.trace = w
		return nil
	}
}

// Machine holds the four SECD registers plus the heap they are rooted in,
// and the running flag and I/O streams. A Machine is not safe for use from
// more than one goroutine at a time (spec §5).
type Machine struct {
	Heap *Heap

	S Addr // operand stack
	E Addr // environment
	C Addr // code
	D Addr // dump

	running bool

	input  io.RuneReader
	output runeWriter
	debug  bool
	trace  io.Writer

	insCount int64
}

// New creates a Machine with empty S/E/D, no code loaded, and default I/O
// streams (stdin/stdout) and heap ceiling, then applies opts.
func New(opts ...Option) (*Machine, error) {
	m := &Machine{
		Heap:   NewHeap(0),
		input:  newRuneReader(os.Stdin),
		output: newRuneWriter(os.Stdout),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Running reports whether the machine has not yet executed STOP.
func (m *Machine) Running() bool {
	return m.running
}

// InstructionCount returns the number of opcodes dispatched so far by the
// current Run call.
func (m *Machine) InstructionCount() int64 {
	return m.insCount
}

func (m *Machine) tracef(format string, args ...interface{}) {
	if m.debug && m.trace != nil {
		fmt.Fprintf(m.trace, format, args...)
	}
}
