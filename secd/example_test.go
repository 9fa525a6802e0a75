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

package secd_test

import (
	"bytes"
	"fmt"

	"github.com/carlohamalainen/pysecd/secd"
)

// Shows loading a hand-assembled program directly (no compiler involved)
// and capturing its WRITEI output.
func ExampleMachine_Run() {
	var out bytes.Buffer
	m, err := secd.New(secd.Output(&out))
	if err != nil {
		panic(err)
	}

	// (+ 5 7), then print the result.
	code := []secd.Value{
		secd.OpLdc, int64(5),
		secd.OpLdc, int64(7),
		secd.OpAdd,
		secd.OpWritei,
		secd.OpStop,
	}
	if err := m.Load(code, nil); err != nil {
		panic(err)
	}
	if err := m.Run(); err != nil {
		panic(err)
	}

	fmt.Print(out.String())
	// Output:
	// 12
}
