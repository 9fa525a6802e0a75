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

package compiler

import (
	"fmt"

	"github.com/carlohamalainen/pysecd/secd"
)

// builtins maps a surface name straight onto the opcode that implements it.
// ADD/SUB/MUL/DIV/WRITEI/WRITEC/CAR/CDR are the original's set; CONS, NULL
// and the three predicates have no other surface form and are folded in here
// too (the source's own compile_builtin carries a "FIXME any other
// builtins?" comment next to its list).
var builtins = map[Sym]secd.Opcode{
	"ADD":    secd.OpAdd,
	"SUB":    secd.OpSub,
	"MUL":    secd.OpMul,
	"DIV":    secd.OpDiv,
	"WRITEI": secd.OpWritei,
	"WRITEC": secd.OpWritec,
	"CAR":    secd.OpCar,
	"CDR":    secd.OpCdr,
	"CONS":   secd.OpCons,
	"NULL":   secd.OpNull,
	"ZEROP":  secd.OpZerop,
	"GT0P":   secd.OpGt0p,
	"LT0P":   secd.OpLt0p,
}

// builtinArity is the number of arguments each built-in expects. Anything
// not listed here takes one.
var builtinArity = map[Sym]int{
	"ADD":  2,
	"SUB":  2,
	"MUL":  2,
	"DIV":  2,
	"CONS": 2,
}

func arityOf(sym Sym) int {
	if n, ok := builtinArity[sym]; ok {
		return n
	}
	return 1
}

// The special-form names: in function position compile never treats these
// as a built-in or a bound variable, even if one happens to be in scope.
const (
	symLambda = Sym("LAMBDA")
	symIf     = Sym("IF")
	symLet    = Sym("LET")
	symLetrec = Sym("LETREC")
	symList   = Sym("LIST")
)

// Option configures a Compiler.
type Option func(*Compiler)

// Strict makes an unresolved variable reference a compile-time Error instead
// of the default permissive LDC-of-the-name fallback (spec §9, "Unresolved
// variables").
func Strict(on bool) Option {
	return func(c *Compiler) { c.strict = on }
}

// Compiler turns Expr trees into secd.Value code lists. The zero value
// (via New) runs permissively.
type Compiler struct {
	strict bool
	errs   Errors
}

// New builds a Compiler with the given options applied.
func New(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Compile compiles e in namelist n, continuing into the already-compiled
// tail c, and returns the resulting code list. n is nil for a top-level
// expression with no enclosing LAMBDA/LET/LETREC.
//
// This mirrors the structure of the original's compile/compile_builtin/
// compile_app: c is an accumulator that later code is consed onto, so the
// call tree is built from the tail backwards.
func (cp *Compiler) Compile(e Expr, n NameList, c []secd.Value) ([]secd.Value, error) {
	cp.errs = nil
	code := cp.compile(e, n, c)
	if len(cp.errs) > 0 {
		return nil, cp.errs
	}
	return code, nil
}

// Compile is the package-level convenience form of (&Compiler{}).Compile,
// for a top-level expression with an empty namelist.
func Compile(e Expr, c []secd.Value) ([]secd.Value, error) {
	return New().Compile(e, nil, c)
}

func (cp *Compiler) fail(e Expr, format string, args ...interface{}) {
	cp.errs = append(cp.errs, Error{Expr: e, Msg: fmt.Sprintf(format, args...)})
}

func (cp *Compiler) compile(e Expr, n NameList, c []secd.Value) []secd.Value {
	if isAtom(e) {
		switch x := e.(type) {
		case NilExpr:
			return prependOp(secd.OpNil, c)
		case int64:
			return prependOpValue(secd.OpLdc, x, c)
		case Sym:
			return cp.compileVar(e, x, n, c)
		}
	}
	if list, ok := e.(List); ok {
		return cp.compileList(e, list, n, c)
	}
	cp.fail(e, "not a valid expression (%T)", e)
	return c
}

func (cp *Compiler) compileVar(e Expr, sym Sym, n NameList, c []secd.Value) []secd.Value {
	if frame, slot, found := index(sym, n); found {
		return prependOpValue(secd.OpLd, []secd.Value{int64(frame), int64(slot)}, c)
	}
	if cp.strict {
		cp.fail(e, "unresolved name %q (scope has %d frame(s))", sym, len(n))
		return c
	}
	return prependOpValue(secd.OpLdc, secd.Symbol(sym), c)
}

func (cp *Compiler) compileList(e Expr, list List, n NameList, c []secd.Value) []secd.Value {
	if len(list) == 0 {
		return prependOp(secd.OpNil, c)
	}
	fcn := list[0]
	args := list[1:]

	sym, fcnIsSym := fcn.(Sym)
	if !fcnIsSym {
		// an application with a nested function expression
		inner := cp.compile(fcn, n, prependOp(secd.OpAp, c))
		return prependOp(secd.OpNil, cp.compileApp(args, n, inner))
	}

	if op, ok := builtins[sym]; ok {
		want := arityOf(sym)
		if len(args) != want {
			cp.fail(e, "%s takes %d argument(s), got %d", sym, want, len(args))
			return c
		}
		return cp.compileBuiltin(args, n, prependOp(op, c))
	}

	switch sym {
	case symLambda:
		return cp.compileLambdaForm(e, args, n, c)
	case symIf:
		if len(args) != 3 {
			cp.fail(e, "IF takes 3 arguments (test, then, else), got %d", len(args))
			return c
		}
		return cp.compileIf(args[0], args[1], args[2], n, c)
	case symLet:
		return cp.compileLetForm(e, args, n, c, false)
	case symLetrec:
		return cp.compileLetForm(e, args, n, c, true)
	case symList:
		return cp.compileListForm(args, n, c)
	}

	// fcn names a bound variable holding a closure.
	inner := cp.compileVar(e, sym, n, prependOp(secd.OpAp, c))
	return prependOp(secd.OpNil, cp.compileApp(args, n, inner))
}

// compileBuiltin compiles a built-in's arguments, matching the original's
// fold direction exactly: the FIRST argument is compiled first (innermost,
// closest to c), so it is pushed last and ends up on top of the stack when
// the opcode fires. Spec §4.4's literal formula inverts this; original_source's
// actual recursion (and its own doctests) do not, so this follows the
// latter.
func (cp *Compiler) compileBuiltin(args []Expr, n NameList, c []secd.Value) []secd.Value {
	if len(args) == 0 {
		return c
	}
	return cp.compileBuiltin(args[1:], n, cp.compile(args[0], n, c))
}

// compileApp compiles a call's argument list for a closure application: each
// argument is compiled and CONSed onto the growing argument list, in the
// same reversed-fold order as compileBuiltin.
func (cp *Compiler) compileApp(args []Expr, n NameList, c []secd.Value) []secd.Value {
	if len(args) == 0 {
		return c
	}
	return cp.compileApp(args[1:], n, cp.compile(args[0], n, prependOp(secd.OpCons, c)))
}

func (cp *Compiler) compileIf(test, then, els Expr, n NameList, c []secd.Value) []secd.Value {
	thenCode := cp.compile(then, n, []secd.Value{secd.OpJoin})
	elseCode := cp.compile(els, n, []secd.Value{secd.OpJoin})
	rest := append([]secd.Value{secd.OpSel, thenCode, elseCode}, c...)
	return cp.compile(test, n, rest)
}

func (cp *Compiler) compileLambda(body Expr, n NameList, c []secd.Value) []secd.Value {
	bodyCode := cp.compile(body, n, []secd.Value{secd.OpRtn})
	return append([]secd.Value{secd.OpLdf, bodyCode}, c...)
}

func (cp *Compiler) compileLambdaForm(e Expr, args []Expr, n NameList, c []secd.Value) []secd.Value {
	if len(args) != 2 {
		cp.fail(e, "LAMBDA takes a parameter list and a body, got %d argument(s)", len(args))
		return c
	}
	frame, ok := toFrame(args[0])
	if !ok {
		cp.fail(e, "LAMBDA's parameter list must be a list of names")
		return c
	}
	return cp.compileLambda(args[1], append(NameList{frame}, n...), c)
}

// compileLetForm handles both LET and LETREC: (LET (names...) (values...)
// body) / (LETREC (names...) (values...) body). LETREC additionally wraps
// the whole thing in DUM/RAP so the bound names are visible while the
// values themselves are being compiled (mutual recursion between closures).
func (cp *Compiler) compileLetForm(e Expr, args []Expr, n NameList, c []secd.Value, rec bool) []secd.Value {
	if len(args) != 3 {
		name := "LET"
		if rec {
			name = "LETREC"
		}
		cp.fail(e, "%s takes a name list, a value list and a body, got %d argument(s)", name, len(args))
		return c
	}
	frame, ok := toFrame(args[0])
	if !ok {
		cp.fail(e, "LET/LETREC's first argument must be a list of names")
		return c
	}
	values, ok := args[1].(List)
	if !ok {
		cp.fail(e, "LET/LETREC's second argument must be a list of value expressions")
		return c
	}
	if len(values) != len(frame) {
		cp.fail(e, "LET/LETREC binds %d name(s) but %d value(s) were given", len(frame), len(values))
		return c
	}
	body := args[2]
	newn := append(NameList{frame}, n...)

	if rec {
		inner := cp.compileLambda(body, newn, prependOp(secd.OpRap, c))
		return prependOp(secd.OpDum, prependOp(secd.OpNil, cp.compileApp(values, newn, inner)))
	}

	inner := cp.compileLambda(body, newn, prependOp(secd.OpAp, c))
	return prependOp(secd.OpNil, cp.compileApp(values, n, inner))
}

// compileListForm implements (LIST a b c): build the list from the last
// element to the first, CONSing each onto a growing NIL-rooted chain, so
// the first element ends up at the head.
func (cp *Compiler) compileListForm(args []Expr, n NameList, c []secd.Value) []secd.Value {
	body := []secd.Value{}
	for i := len(args) - 1; i >= 0; i-- {
		frag := cp.compile(args[i], n, []secd.Value{secd.OpCons})
		body = append(body, frag...)
	}
	return append(append([]secd.Value{secd.OpNil}, body...), c...)
}

func toFrame(e Expr) (NameFrame, bool) {
	list, ok := e.(List)
	if !ok {
		if _, isNil := e.(NilExpr); isNil {
			return NameFrame{}, true
		}
		return nil, false
	}
	frame := make(NameFrame, 0, len(list))
	for _, el := range list {
		sym, ok := el.(Sym)
		if !ok {
			return nil, false
		}
		frame = append(frame, sym)
	}
	return frame, true
}

// prependOp conses op onto the front of an already-built code list.
func prependOp(op secd.Opcode, c []secd.Value) []secd.Value {
	return append([]secd.Value{op}, c...)
}

// prependOpValue conses op followed by its single operand onto the front of
// an already-built code list (LDC and LD take one operand this way).
func prependOpValue(op secd.Opcode, operand secd.Value, c []secd.Value) []secd.Value {
	return append([]secd.Value{op, operand}, c...)
}
