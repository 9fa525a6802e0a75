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

// Load sets C to a fresh cons chain built from code and S to a fresh cons
// chain built from initialStack, then starts the machine (spec §4.5).
func (m *Machine) Load(code []Value, initialStack []Value) error {
	c, err := m.Heap.StoreTree(Value(toValues(code)))
	if err != nil {
		return errors.Wrap(err, "load program: code")
	}
	s, err := m.Heap.StoreTree(Value(toValues(initialStack)))
	if err != nil {
		return errors.Wrap(err, "load program: initial stack")
	}
	m.C = c
	m.S = s
	m.running = true
	return nil
}

func toValues(vs []Value) []Value {
	if vs == nil {
		return []Value{}
	}
	return vs
}

// snapshot renders the current register addresses for fault reporting.
func (m *Machine) snapshot() string {
	return errors.Errorf("S=%d E=%d C=%d D=%d insCount=%d", m.S, m.E, m.C, m.D, m.insCount).Error()
}

// Run executes opcodes until STOP clears the running flag or a fault
// occurs. Calling Run when the machine is not running (never loaded, or
// already stopped) is a programming error.
func (m *Machine) Run() error {
	if !m.running {
		return errors.New("Run called while machine is not running")
	}
	m.insCount = 0
	for m.running {
		if m.C == 0 {
			return errors.Errorf("code exhausted without STOP (%s)", m.snapshot())
		}
		opAddr, err := m.Heap.Car(m.C)
		if err != nil {
			return errors.Wrapf(err, "fetch failed (%s)", m.snapshot())
		}
		op, err := m.Heap.GetOpcode(opAddr)
		if err != nil {
			return errors.Wrapf(err, "unknown opcode (%s)", m.snapshot())
		}
		m.C, err = m.Heap.Cdr(m.C)
		if err != nil {
			return errors.Wrapf(err, "advance past %s (%s)", op, m.snapshot())
		}
		m.tracef("%s\n", op)
		if err := m.dispatch(op); err != nil {
			return errors.Wrapf(err, "%s failed (%s)", op, m.snapshot())
		}
		m.insCount++
	}
	return nil
}

func (m *Machine) dispatch(op Opcode) error {
	switch op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return m.opArith(op)
	case OpNil:
		addr, err := m.Heap.NewNil()
		if err != nil {
			return err
		}
		return m.Heap.Push(&m.S, addr)
	case OpCons:
		return m.opCons()
	case OpCar:
		return m.opCar()
	case OpCdr:
		return m.opCdr()
	case OpNull:
		return m.opNull()
	case OpLdc:
		return m.opLdc()
	case OpLd:
		return m.opLd()
	case OpLdf:
		return m.opLdf()
	case OpAp:
		return m.opAp()
	case OpRtn:
		return m.opRtn()
	case OpDum:
		return m.opDum()
	case OpRap:
		return m.opRap()
	case OpSel:
		return m.opSel()
	case OpJoin:
		return m.opJoin()
	case OpWritei:
		return m.opWritei()
	case OpWritec:
		return m.opWritec()
	case OpReadi:
		return m.opReadi()
	case OpReadc:
		return errors.New("READC is not implemented")
	case OpStop:
		m.running = false
		return nil
	case OpZerop, OpGt0p, OpLt0p:
		return m.opPredicate(op)
	default:
		return errors.Errorf("opcode %d is not a recognised instruction", int(op))
	}
}

func (m *Machine) opArith(op Opcode) error {
	v1addr, err := m.Heap.Pop(&m.S)
	if err != nil {
		return err
	}
	v2addr, err := m.Heap.Pop(&m.S)
	if err != nil {
		return err
	}
	v1, err := m.Heap.GetInt(v1addr)
	if err != nil {
		return err
	}
	v2, err := m.Heap.GetInt(v2addr)
	if err != nil {
		return err
	}
	var result int64
	switch op {
	case OpAdd:
		result = v1 + v2
	case OpSub:
		result = v1 - v2
	case OpMul:
		result = v1 * v2
	case OpDiv:
		if v2 == 0 {
			return errors.New("division by zero")
		}
		result = v1 / v2 // Go's integer division truncates toward zero
	}
	addr, err := m.Heap.NewInt(result)
	if err != nil {
		return err
	}
	return m.Heap.Push(&m.S, addr)
}

func (m *Machine) opCons() error {
	x, err := m.Heap.Pop(&m.S)
	if err != nil {
		return err
	}
	y, err := m.Heap.Pop(&m.S)
	if err != nil {
		return err
	}
	addr, err := m.Heap.Cons(x, y)
	if err != nil {
		return err
	}
	return m.Heap.Push(&m.S, addr)
}

func (m *Machine) opCar() error {
	l, err := m.Heap.Pop(&m.S)
	if err != nil {
		return err
	}
	car, err := m.Heap.Car(l)
	if err != nil {
		return err
	}
	return m.Heap.Push(&m.S, car)
}

func (m *Machine) opCdr() error {
	l, err := m.Heap.Pop(&m.S)
	if err != nil {
		return err
	}
	cdr, err := m.Heap.Cdr(l)
	if err != nil {
		return err
	}
	return m.Heap.Push(&m.S, cdr)
}

func (m *Machine) opNull() error {
	top, err := m.Heap.Car(m.S)
	if err != nil {
		return err
	}
	isNil, err := m.Heap.IsNil(top)
	if err != nil {
		return err
	}
	return m.pushBool(isNil)
}

func (m *Machine) opLdc() error {
	rest, err := m.Heap.Cdr(m.C)
	if err != nil {
		return err
	}
	operand, err := m.Heap.Car(m.C)
	if err != nil {
		return err
	}
	m.C = rest
	return m.Heap.Push(&m.S, operand)
}

func (m *Machine) opLd() error {
	ij, err := m.Heap.Car(m.C)
	if err != nil {
		return err
	}
	rest, err := m.Heap.Cdr(m.C)
	if err != nil {
		return err
	}
	m.C = rest
	val, err := m.locate(ij, m.E)
	if err != nil {
		return err
	}
	return m.Heap.Push(&m.S, val)
}

// locate returns the j-th element (1-based) of the i-th frame (1-based) of
// the environment list env, where ij is the heap address of a 2-element
// list (i, j).
func (m *Machine) locate(ij, env Addr) (Addr, error) {
	iAddr, err := m.Heap.Car(ij)
	if err != nil {
		return 0, err
	}
	jCell, err := m.Heap.Cdr(ij)
	if err != nil {
		return 0, err
	}
	jAddr, err := m.Heap.Car(jCell)
	if err != nil {
		return 0, err
	}
	i, err := m.Heap.GetInt(iAddr)
	if err != nil {
		return 0, err
	}
	j, err := m.Heap.GetInt(jAddr)
	if err != nil {
		return 0, err
	}
	frames := env
	for k := int64(1); k < i; k++ {
		frames, err = m.Heap.Cdr(frames)
		if err != nil {
			return 0, err
		}
	}
	frame, err := m.Heap.Car(frames)
	if err != nil {
		return 0, err
	}
	for k := int64(1); k < j; k++ {
		frame, err = m.Heap.Cdr(frame)
		if err != nil {
			return 0, err
		}
	}
	return m.Heap.Car(frame)
}

func (m *Machine) opLdf() error {
	body, err := m.Heap.Car(m.C)
	if err != nil {
		return err
	}
	rest, err := m.Heap.Cdr(m.C)
	if err != nil {
		return err
	}
	m.C = rest
	tail, err := m.Heap.Cons(m.E, 0)
	if err != nil {
		return err
	}
	closure, err := m.Heap.Cons(body, tail)
	if err != nil {
		return err
	}
	return m.Heap.Push(&m.S, closure)
}

func (m *Machine) opAp() error {
	closure, err := m.Heap.Pop(&m.S)
	if err != nil {
		return err
	}
	args, err := m.Heap.Pop(&m.S)
	if err != nil {
		return err
	}
	restS := m.S

	body, env, err := m.closureParts(closure)
	if err != nil {
		return err
	}
	// The dispatcher has already advanced C past AP itself, so m.C is
	// already "the code to resume at after the call returns".
	if err := m.Heap.Push(&m.D, restS); err != nil {
		return err
	}
	if err := m.Heap.Push(&m.D, m.E); err != nil {
		return err
	}
	if err := m.Heap.Push(&m.D, m.C); err != nil {
		return err
	}
	nilAddr, err := m.Heap.NewNil()
	if err != nil {
		return err
	}
	newE, err := m.Heap.Cons(args, env)
	if err != nil {
		return err
	}
	m.S = nilAddr
	m.E = newE
	m.C = body
	return nil
}

func (m *Machine) closureParts(closure Addr) (body, env Addr, err error) {
	body, err = m.Heap.Car(closure)
	if err != nil {
		return 0, 0, err
	}
	tail, err := m.Heap.Cdr(closure)
	if err != nil {
		return 0, 0, err
	}
	env, err = m.Heap.Car(tail)
	if err != nil {
		return 0, 0, err
	}
	return body, env, nil
}

func (m *Machine) opRtn() error {
	result, err := m.Heap.Car(m.S)
	if err != nil {
		return err
	}
	savedC, err := m.Heap.Pop(&m.D)
	if err != nil {
		return err
	}
	savedE, err := m.Heap.Pop(&m.D)
	if err != nil {
		return err
	}
	savedS, err := m.Heap.Pop(&m.D)
	if err != nil {
		return err
	}
	newS, err := m.Heap.Cons(result, savedS)
	if err != nil {
		return err
	}
	m.S = newS
	m.E = savedE
	m.C = savedC
	return nil
}

func (m *Machine) opDum() error {
	newE, err := m.Heap.Cons(0, m.E)
	if err != nil {
		return err
	}
	m.E = newE
	return nil
}

func (m *Machine) opRap() error {
	closure, err := m.Heap.Pop(&m.S)
	if err != nil {
		return err
	}
	args, err := m.Heap.Pop(&m.S)
	if err != nil {
		return err
	}
	restS := m.S

	preDumE, err := m.Heap.Cdr(m.E)
	if err != nil {
		return err
	}
	// Patch the DUM placeholder in place: this is what closes the letrec
	// cycle, since every closure built between DUM and RAP captured m.E's
	// address (not its contents).
	if err := m.Heap.SetCons(m.E, args, preDumE); err != nil {
		return err
	}

	body, _, err := m.closureParts(closure)
	if err != nil {
		return err
	}
	// As in opAp, m.C is already the post-opcode continuation.
	if err := m.Heap.Push(&m.D, restS); err != nil {
		return err
	}
	if err := m.Heap.Push(&m.D, preDumE); err != nil {
		return err
	}
	if err := m.Heap.Push(&m.D, m.C); err != nil {
		return err
	}
	nilAddr, err := m.Heap.NewNil()
	if err != nil {
		return err
	}
	m.S = nilAddr
	m.C = body
	// m.E is unchanged: it still points at the cell we just patched.
	return nil
}

func (m *Machine) opSel() error {
	vAddr, err := m.Heap.Pop(&m.S)
	if err != nil {
		return err
	}
	v, err := m.Heap.GetInt(vAddr)
	if err != nil {
		return err
	}
	thenAddr, err := m.Heap.Car(m.C)
	if err != nil {
		return err
	}
	rest1, err := m.Heap.Cdr(m.C)
	if err != nil {
		return err
	}
	elseAddr, err := m.Heap.Car(rest1)
	if err != nil {
		return err
	}
	cont, err := m.Heap.Cdr(rest1)
	if err != nil {
		return err
	}
	contCell, err := m.Heap.NewInt(int64(cont))
	if err != nil {
		return err
	}
	if err := m.Heap.Push(&m.D, contCell); err != nil {
		return err
	}
	if v != 0 {
		m.C = thenAddr
	} else {
		m.C = elseAddr
	}
	return nil
}

func (m *Machine) opJoin() error {
	contCell, err := m.Heap.Pop(&m.D)
	if err != nil {
		return err
	}
	cont, err := m.Heap.GetInt(contCell)
	if err != nil {
		return err
	}
	m.C = Addr(cont)
	return nil
}

func (m *Machine) opPredicate(op Opcode) error {
	top, err := m.Heap.Car(m.S)
	if err != nil {
		return err
	}
	v, err := m.Heap.GetInt(top)
	if err != nil {
		return err
	}
	var result bool
	switch op {
	case OpZerop:
		result = v == 0
	case OpGt0p:
		result = v > 0
	case OpLt0p:
		result = v < 0
	}
	return m.pushBool(result)
}

func (m *Machine) pushBool(b bool) error {
	var v int64
	if b {
		v = 1
	}
	addr, err := m.Heap.NewInt(v)
	if err != nil {
		return err
	}
	return m.Heap.Push(&m.S, addr)
}
