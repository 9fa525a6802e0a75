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

// Error is a single compile-time diagnostic, tied to the offending Expr
// rather than a source position (there is no surface syntax to point at).
type Error struct {
	Expr Expr
	Msg  string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", formatExpr(e.Expr), e.Msg)
}

// Errors collects every Error raised while compiling a single top-level
// expression, modeled on asm.ErrAsm.
type Errors []Error

func (e Errors) Error() string {
	l := make([]string, 0, len(e))
	for _, err := range e {
		l = append(l, err.Error())
	}
	return strings.Join(l, "\n")
}
