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

package asm

import (
	"strings"

	"github.com/bricktech2000/stackasm/internal/set"
)

// GroupMacros runs the first pass of macro resolution: it partitions a flat
// token stream into per-macro bodies. Tokens appearing before any macro
// definition are an orphan-instruction error.
func GroupMacros(toks []Token, errs *ErrorList) map[string][]Token {
	defs := make(map[string][]Token)
	var current string
	var inMacro bool

	for _, t := range toks {
		if t.Kind == TokMacroDef {
			current = t.Macro
			inMacro = true
			if _, ok := defs[current]; !ok {
				defs[current] = nil
			}
			continue
		}
		if !inMacro {
			errs.Add(t.Pos, ErrMacro, "orphan instruction found: %s", t)
			continue
		}
		defs[current] = append(defs[current], t)
	}
	return defs
}

// expander carries the mutable expansion state threaded through the
// recursive descent: the ancestor chain (for the self-reference
// diagnostic), a parallel set for O(1) membership, and the monotonically
// increasing per-expansion-site scope id.
type expander struct {
	defs    map[string][]Token
	parents []string
	onStack set.Set[string]
	scopeID int
	errs    *ErrorList
}

// ExpandMacros expands the entry-point macro's body recursively, assigning
// a fresh scope id to every expansion site so that local labels in distinct
// invocations of the same macro never collide.
func ExpandMacros(defs map[string][]Token, entryPoint string, errs *ErrorList) []Token {
	ex := &expander{
		defs:    defs,
		onStack: make(set.Set[string]),
		scopeID: 1,
		errs:    errs,
	}
	entry := []Token{{
		Pos:   Pos{Scope: "[bootstrap]", Index: 0},
		Kind:  TokMacroRef,
		Macro: entryPoint,
	}}
	return ex.expand(entry)
}

func (ex *expander) expand(toks []Token) []Token {
	var out []Token
	for _, t := range toks {
		if t.Kind != TokMacroRef {
			out = append(out, t)
			continue
		}

		m := t.Macro
		if ex.onStack.Includes(m) {
			chain := append(append([]string{}, ex.parents...), m)
			ex.errs.Add(t.Pos, ErrMacro, "macro self-reference: !%s", strings.Join(chain, " -> !"))
			continue
		}
		body, ok := ex.defs[m]
		if !ok {
			ex.errs.Add(t.Pos, ErrMacro, "definition not found for macro: !%s", m)
			continue
		}

		rewritten := make([]Token, len(body))
		for i, bt := range body {
			if (bt.Kind == TokLabelDef || bt.Kind == TokLabelRef) && !bt.Label.Global {
				bt.Label.Scope = ex.scopeID
			}
			rewritten[i] = bt
		}
		ex.scopeID++

		ex.parents = append(ex.parents, m)
		ex.onStack.Add(m)
		expanded := ex.expand(rewritten)
		delete(ex.onStack, m)
		ex.parents = ex.parents[:len(ex.parents)-1]

		out = append(out, expanded...)
	}
	return out
}
