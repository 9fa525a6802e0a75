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

// Package secd implements the SECD abstract machine: a tagged-cell heap and
// the four machine registers S (stack), E (environment), C (code) and D
// (dump), driven by an opcode dispatcher.
//
// The machine has no garbage collector: cells are bump-allocated out of a
// fixed-size heap (see MemoryCeiling) and never reclaimed. A letrec-style
// recursive environment, built with DUM/RAP, is the only place a cycle can
// appear in the heap; Heap.Decode and DumpRegisters are cycle-safe.
//
// Package compiler, not this one, turns a Lisp-like expression tree into the
// opcode list that Machine.Load feeds into the heap.
package secd
