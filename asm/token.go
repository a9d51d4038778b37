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
	"fmt"

	"github.com/bricktech2000/stackasm/internal/isa"
)

// Label identifies a label definition or reference. Global is valid
// everywhere; a local label's Scope is only meaningful once the macro
// resolver has rewritten it to a non-zero expansion-site id (see
// macro.go). A Scope of 0 denotes the tokenizer's placeholder and must
// never reach the placer.
type Label struct {
	Name   string
	Global bool
	Scope  int
}

func (l Label) String() string {
	if l.Global {
		return ":" + l.Name
	}
	return fmt.Sprintf(".%s#%d", l.Name, l.Scope)
}

// TokenKind tags the variant of a Token.
type TokenKind int

const (
	TokLabelDef TokenKind = iota
	TokLabelRef
	TokMacroDef
	TokMacroRef
	TokAtConst
	TokAtDyn
	TokAtOrg
	TokData   // dNN
	TokPush   // xNN
	TokOffset // ldN / stN, Op is isa.OpLdo/isa.OpSto
	TokArith  // bare or sized arithmetic/logic mnemonic
	TokFixed  // zero-operand instruction, Op identifies which
)

// Token is the tagged union produced by the tokenizer. Only the fields
// relevant to Kind are populated; the rest are zero.
type Token struct {
	Pos    Pos
	Kind   TokenKind
	Label  Label
	Macro  string
	Byte   byte // DDD/XXX immediate, or Ldo/Sto offset
	Op     isa.Op
	Size   byte // for TokArith: the raw size argument (1 for bare forms)
	Source string
}

func (t Token) String() string {
	switch t.Kind {
	case TokLabelDef:
		if t.Label.Global {
			return t.Label.Name + ":"
		}
		return t.Label.Name + "."
	case TokLabelRef:
		if t.Label.Global {
			return ":" + t.Label.Name
		}
		return "." + t.Label.Name
	case TokMacroDef:
		return t.Macro + "!"
	case TokMacroRef:
		return "!" + t.Macro
	case TokAtConst:
		return "@const"
	case TokAtDyn:
		return "@dyn"
	case TokAtOrg:
		return "@org"
	default:
		return t.Source
	}
}
