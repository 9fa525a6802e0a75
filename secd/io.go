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
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// runeWriter is satisfied by anything that can write whole runes, the same
// shape bufio.Writer.WriteRune has.
type runeWriter interface {
	io.Writer
	WriteRune(r rune) (size int, err error)
}

type runeWriterWrapper struct {
	io.Writer
}

func (w *runeWriterWrapper) WriteRune(r rune) (size int, err error) {
	var b [utf8.UTFMax]byte
	if r < utf8.RuneSelf {
		return w.Write([]byte{byte(r)})
	}
	l := utf8.EncodeRune(b[:], r)
	return w.Write(b[:l])
}

// newRuneWriter adapts w into a runeWriter, reusing it directly if it
// already implements the interface (e.g. a *bufio.Writer).
func newRuneWriter(w io.Writer) runeWriter {
	switch ww := w.(type) {
	case nil:
		return nil
	case runeWriter:
		return ww
	default:
		return &runeWriterWrapper{w}
	}
}

type runeReaderWrapper struct {
	r *bufio.Reader
}

func (r *runeReaderWrapper) ReadRune() (rune, int, error) {
	return r.r.ReadRune()
}

// newRuneReader adapts r into an io.RuneReader, reusing it directly if it
// already implements the interface.
func newRuneReader(r io.Reader) io.RuneReader {
	switch rr := r.(type) {
	case nil:
		return nil
	case io.RuneReader:
		return rr
	default:
		return &runeReaderWrapper{bufio.NewReader(r)}
	}
}

// opWritei implements WRITEI: pop an integer, write its decimal form and a
// newline to the output stream.
func (m *Machine) opWritei() error {
	addr, err := m.Heap.Pop(&m.S)
	if err != nil {
		return err
	}
	v, err := m.Heap.GetInt(addr)
	if err != nil {
		return errors.Wrap(err, "WRITEI")
	}
	_, err = io.WriteString(m.output, strconv.FormatInt(v, 10)+"\n")
	return errors.Wrap(err, "WRITEI")
}

// opWritec implements WRITEC: pop an integer, write the rune with that code
// point and a newline to the output stream.
func (m *Machine) opWritec() error {
	addr, err := m.Heap.Pop(&m.S)
	if err != nil {
		return err
	}
	v, err := m.Heap.GetInt(addr)
	if err != nil {
		return errors.Wrap(err, "WRITEC")
	}
	if _, err := m.output.WriteRune(rune(v)); err != nil {
		return errors.Wrap(err, "WRITEC")
	}
	_, err = m.output.WriteRune('\n')
	return errors.Wrap(err, "WRITEC")
}

// opReadi implements READI: prompt "? " and read a whitespace-trimmed
// decimal integer from the input stream, pushing it onto S.
func (m *Machine) opReadi() error {
	if _, err := io.WriteString(m.output, "? "); err != nil {
		return errors.Wrap(err, "READI")
	}
	var sb strings.Builder
	for {
		r, _, err := m.input.ReadRune()
		if err != nil {
			return errors.Wrap(err, "READI")
		}
		if r == '\n' {
			break
		}
		sb.WriteRune(r)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(sb.String()), 10, 64)
	if err != nil {
		return errors.Wrap(err, "READI: malformed integer")
	}
	addr, err := m.Heap.NewInt(n)
	if err != nil {
		return err
	}
	return m.Heap.Push(&m.S, addr)
}
