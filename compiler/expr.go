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
	"strings"
)

// Expr is a node of the expression tree the compiler consumes: a Sym, an
// int64, NilExpr, or a List application/special form.
type Expr interface{}

// Sym is an identifier: a bound variable, a built-in or special-form name.
type Sym string

// NilExpr is the empty list literal.
type NilExpr struct{}

// List is a compound expression (fcn arg...). List[0] names the function,
// built-in or special form being invoked.
type List []Expr

func isAtom(e Expr) bool {
	switch e.(type) {
	case NilExpr, int64, Sym:
		return true
	default:
		return false
	}
}

// formatExpr renders an Expr for diagnostics. It does not need to be a
// faithful reader syntax, only useful in an error message.
func formatExpr(e Expr) string {
	switch x := e.(type) {
	case NilExpr:
		return "NIL"
	case int64:
		return fmt.Sprintf("%d", x)
	case Sym:
		return string(x)
	case List:
		parts := make([]string, len(x))
		for i, el := range x {
			parts[i] = formatExpr(el)
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return fmt.Sprintf("%v", x)
	}
}
