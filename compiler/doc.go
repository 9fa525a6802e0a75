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

// Package compiler turns a host-constructed Lisp expression tree into the
// opcode list a secd.Machine can load and run.
//
// There is no surface syntax here: an Expr is built directly out of Sym,
// int64, NilExpr and List values, in the style of a Lisp reader's output
// rather than its input. The special forms are LAMBDA, LET, LETREC, IF and
// LIST; a handful of SECD opcodes (arithmetic, WRITEI/WRITEC, CAR/CDR/CONS,
// NULL and the three predicates) double as built-in functions; everything
// else that appears in function position is either a bound variable or a
// nested expression that evaluates to a closure.
package compiler
