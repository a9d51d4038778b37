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

package asm

// panic sentinel value, caught by ErrorList.CatchAbort.
type cancelCompilation struct{}

// ErrorList accumulates diagnostics across the whole pipeline and aborts
// compilation once too many real errors have piled up.
type ErrorList struct {
	list      []Diagnostic
	maxErrors int
}

// NewErrorList creates an error list that aborts as soon as more than
// maxErrors diagnostics have been recorded.
// A non-positive maxErrors disables the budget.
func NewErrorList(maxErrors int) *ErrorList {
	return &ErrorList{maxErrors: maxErrors}
}

// CatchAbort traps the panic thrown when the error budget is exceeded. A
// call to CatchAbort must be deferred around any code that uses Add.
func (e *ErrorList) CatchAbort() {
	r := recover()
	if r == nil {
		return
	}
	if _, ok := r.(cancelCompilation); !ok {
		panic(r)
	}
}

// Add records a diagnostic at pos with the given kind and message.
func (e *ErrorList) Add(pos Pos, kind Kind, format string, args ...any) {
	e.list = append(e.list, newDiag(pos, kind, format, args...))
	if e.maxErrors > 0 && len(e.list) > e.maxErrors {
		panic(cancelCompilation{})
	}
}

// Diagnostics returns every diagnostic recorded so far, in order.
func (e *ErrorList) Diagnostics() []Diagnostic {
	return e.list
}

// HasErrors reports whether any diagnostic was recorded.
func (e *ErrorList) HasErrors() bool {
	return len(e.list) > 0
}
