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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlohamalainen/pysecd/secd"
)

// Expected code lists below are cross-checked against original_source's
// compiler.py doctests.

func TestCompileLambdaAdd(t *testing.T) {
	e := List{Sym("LAMBDA"), List{Sym("x"), Sym("y")}, List{Sym("ADD"), Sym("x"), Sym("y")}}

	code, err := Compile(e, []secd.Value{secd.OpStop})
	require.NoError(t, err)

	want := []secd.Value{
		secd.OpLdf,
		[]secd.Value{
			secd.OpLd, []secd.Value{int64(1), int64(2)},
			secd.OpLd, []secd.Value{int64(1), int64(1)},
			secd.OpAdd,
			secd.OpRtn,
		},
		secd.OpStop,
	}
	assert.Equal(t, want, code)
}

func TestCompileImmediateApplication(t *testing.T) {
	lambda := List{Sym("LAMBDA"), List{Sym("x"), Sym("y")}, List{Sym("ADD"), Sym("x"), Sym("y")}}
	e := List{lambda, int64(8), int64(9)}

	code, err := Compile(e, []secd.Value{secd.OpStop})
	require.NoError(t, err)

	want := []secd.Value{
		secd.OpNil,
		secd.OpLdc, int64(9),
		secd.OpCons,
		secd.OpLdc, int64(8),
		secd.OpCons,
		secd.OpLdf,
		[]secd.Value{
			secd.OpLd, []secd.Value{int64(1), int64(2)},
			secd.OpLd, []secd.Value{int64(1), int64(1)},
			secd.OpAdd,
			secd.OpRtn,
		},
		secd.OpAp,
		secd.OpStop,
	}
	assert.Equal(t, want, code)
}

func TestCompileLetOverList(t *testing.T) {
	e := List{
		Sym("LET"),
		List{Sym("x")},
		List{List{Sym("LIST"), int64(1), int64(2), int64(3)}},
		List{Sym("CAR"), Sym("x")},
	}

	code, err := Compile(e, []secd.Value{secd.OpWritei, secd.OpStop})
	require.NoError(t, err)

	want := []secd.Value{
		secd.OpNil,
		secd.OpNil,
		secd.OpLdc, int64(3),
		secd.OpCons,
		secd.OpLdc, int64(2),
		secd.OpCons,
		secd.OpLdc, int64(1),
		secd.OpCons,
		secd.OpCons,
		secd.OpLdf,
		[]secd.Value{
			secd.OpLd, []secd.Value{int64(1), int64(1)},
			secd.OpCar,
			secd.OpRtn,
		},
		secd.OpAp,
		secd.OpWritei,
		secd.OpStop,
	}
	assert.Equal(t, want, code)
}

func TestCompileIf(t *testing.T) {
	e := List{Sym("IF"), Sym("x"), int64(1), int64(0)}
	n := NameList{NameFrame{"x"}}

	code, err := New().Compile(e, n, []secd.Value{secd.OpStop})
	require.NoError(t, err)

	want := []secd.Value{
		secd.OpLd, []secd.Value{int64(1), int64(1)},
		secd.OpSel,
		[]secd.Value{secd.OpLdc, int64(1), secd.OpJoin},
		[]secd.Value{secd.OpLdc, int64(0), secd.OpJoin},
		secd.OpStop,
	}
	assert.Equal(t, want, code)
}

func TestCompileLetrecCountdown(t *testing.T) {
	// (LETREC (count) ((LAMBDA (n) (IF (ZEROP n) n (count (SUB n 1)))))
	//   (count 3))
	countBody := List{
		Sym("IF"), List{Sym("ZEROP"), Sym("n")},
		Sym("n"),
		List{Sym("count"), List{Sym("SUB"), Sym("n"), int64(1)}},
	}
	lambda := List{Sym("LAMBDA"), List{Sym("n")}, countBody}
	e := List{
		Sym("LETREC"),
		List{Sym("count")},
		List{lambda},
		List{Sym("count"), int64(3)},
	}

	code, err := Compile(e, []secd.Value{secd.OpStop})
	require.NoError(t, err)

	require.NotEmpty(t, code)
	assert.Equal(t, secd.OpDum, code[0])
	assert.Equal(t, secd.OpNil, code[1])
}

func TestCompileUnresolvedVariablePermissive(t *testing.T) {
	code, err := Compile(Sym("undefined-name"), []secd.Value{secd.OpStop})
	require.NoError(t, err)
	assert.Equal(t, []secd.Value{secd.OpLdc, secd.Symbol("undefined-name"), secd.OpStop}, code)
}

func TestCompileUnresolvedVariableStrict(t *testing.T) {
	cp := New(Strict(true))
	_, err := cp.Compile(Sym("undefined-name"), nil, []secd.Value{secd.OpStop})
	require.Error(t, err)

	var cerr Errors
	require.ErrorAs(t, err, &cerr)
	require.Len(t, cerr, 1)
	assert.Contains(t, cerr[0].Msg, "undefined-name")
}

func TestCompileBuiltinArityMismatch(t *testing.T) {
	e := List{Sym("ADD"), int64(1)}
	_, err := Compile(e, []secd.Value{secd.OpStop})
	require.Error(t, err)

	var cerr Errors
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr[0].Msg, "ADD takes 2 argument(s), got 1")
}

func TestCompileListBuiltin(t *testing.T) {
	e := List{Sym("LIST"), int64(1), int64(2), int64(3)}
	code, err := Compile(e, []secd.Value{secd.OpStop})
	require.NoError(t, err)

	want := []secd.Value{
		secd.OpNil,
		secd.OpLdc, int64(3),
		secd.OpCons,
		secd.OpLdc, int64(2),
		secd.OpCons,
		secd.OpLdc, int64(1),
		secd.OpCons,
		secd.OpStop,
	}
	assert.Equal(t, want, code)
}

func TestCompileNilExpr(t *testing.T) {
	code, err := Compile(NilExpr{}, []secd.Value{secd.OpStop})
	require.NoError(t, err)
	assert.Equal(t, []secd.Value{secd.OpNil, secd.OpStop}, code)
}
