// Copyright 2023 The go-ethereum Authors
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

// Package asm implements the assembler for the 8-bit stack machine: source
// text in, a 256-byte memory image out.
package asm

import "fmt"

// Pos identifies where a datum originated: a scope name (source file,
// "[token stream]", a macro name, or a synthetic stage name like
// "[bootstrap]"/"[codegen]") plus an index within that scope.
type Pos struct {
	Scope string
	Index int
}

func (p Pos) String() string {
	return fmt.Sprintf("%s#%d", p.Scope, p.Index)
}

//go:generate go run golang.org/x/tools/cmd/stringer@latest -type Kind

// Kind classifies a diagnostic so callers can switch on it without parsing
// the message text.
type Kind int

const (
	ErrIO Kind = iota
	ErrLex
	ErrShape
	ErrMacro
	ErrLabel
	ErrMarker
	ErrSize
)

// Diagnostic is implemented by every error the pipeline accumulates.
type Diagnostic interface {
	error
	Position() Pos
	Kind() Kind
}

// diag is the concrete Diagnostic, grounded on the teacher's statementError
// (position-wrapped error with Unwrap support).
type diag struct {
	pos  Pos
	kind Kind
	err  error
}

func newDiag(pos Pos, kind Kind, format string, args ...any) *diag {
	return &diag{pos: pos, kind: kind, err: fmt.Errorf(format, args...)}
}

func (d *diag) Position() Pos { return d.pos }
func (d *diag) Kind() Kind    { return d.kind }
func (d *diag) Unwrap() error { return d.err }
func (d *diag) Error() string { return fmt.Sprintf("%v  %s", d.pos, d.err) }
