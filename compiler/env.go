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

// NameFrame is a single binding frame: the parameter list of a LAMBDA, or
// the name list of a LET/LETREC.
type NameFrame []Sym

// NameList is the compiler's lexical namelist: NameList[0] is the innermost
// (most recently bound) frame, matching how LAMBDA/LET/LETREC prepend their
// new frame ahead of the enclosing one.
type NameList []NameFrame

// index finds sym in n and returns its 1-based (frame, slot) position, frame
// 1 being the innermost. It is the Go form of Figure 7-22 of K1991.
func index(sym Sym, n NameList) (frame, slot int, found bool) {
	for i, f := range n {
		for j, name := range f {
			if name == sym {
				return i + 1, j + 1, true
			}
		}
	}
	return 0, 0, false
}
