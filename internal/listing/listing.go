// Copyright 2025 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package listing renders a resolved program as a human-readable listing:
// one line per run of consecutive bytes from the same source position,
// showing the run's start address and encoded bytes. It consumes the assembler's own output and never
// feeds back into assembly.
package listing

import (
	"bufio"
	"fmt"
	"io"
)

// Entry is one contiguous run of bytes sharing a single source position,
// as a program's Instrs/Positions pair groups naturally.
type Entry struct {
	Addr  byte
	Bytes []byte
	Pos   fmt.Stringer
}

// Printer renders Entries to a writer, buffering output the way the
// teacher's AST printer does.
type Printer struct {
	out           writer
	bufferWrapped bool
}

type writer interface {
	WriteString(string) (int, error)
}

func (p *Printer) reset(w io.Writer) {
	p.out = bufio.NewWriter(w)
	p.bufferWrapped = true
}

// Write prints one line per Entry: address, hex bytes, then the source
// position that produced them.
func (p *Printer) Write(w io.Writer, entries []Entry) (err error) {
	defer p.finish(&err)
	p.reset(w)

	for _, e := range entries {
		hex := make([]byte, 0, len(e.Bytes)*3)
		for i, b := range e.Bytes {
			if i > 0 {
				hex = append(hex, ' ')
			}
			hex = append(hex, fmt.Sprintf("%02x", b)...)
		}
		line := fmt.Sprintf("%02x  %-23s  %s\n", e.Addr, string(hex), e.Pos.String())
		if _, werr := p.out.WriteString(line); werr != nil {
			panic(printError{werr})
		}
	}
	return nil
}

type printError struct{ e error }

func (p *Printer) finish(err *error) {
	r := recover()
	if bw, ok := p.out.(*bufio.Writer); ok && p.bufferWrapped {
		if ferr := bw.Flush(); ferr != nil && *err == nil {
			*err = ferr
		}
	}
	if r == nil {
		return
	}
	if pe, ok := r.(printError); ok {
		*err = pe.e
		return
	}
	panic(r)
}

// Group collapses a byte-per-instruction position slice into contiguous
// Entries, merging consecutive bytes that share the same position (as a
// multi-byte push sequence or Raw run does).
func Group(bytes []byte, positions []fmt.Stringer) []Entry {
	var entries []Entry
	var addr int
	for i := 0; i < len(bytes); {
		j := i + 1
		for j < len(positions) && positions[j].String() == positions[i].String() {
			j++
		}
		entries = append(entries, Entry{Addr: byte(addr), Bytes: bytes[i:j], Pos: positions[i]})
		addr += j - i
		i = j
	}
	return entries
}
