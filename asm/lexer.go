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
	"strconv"
	"strings"

	"github.com/bricktech2000/stackasm/internal/isa"
)

// Tokenize splits preprocessed source on ASCII whitespace and classifies
// each lexeme into a Token, in the fixed priority order spec'd for this
// language. Unknown lexemes are reported and replaced with a Nop so later
// stages keep running.
func Tokenize(source string, errs *ErrorList) []Token {
	fields := strings.Fields(source)
	toks := make([]Token, 0, len(fields))
	for i, f := range fields {
		pos := Pos{Scope: "[token stream]", Index: i}
		toks = append(toks, classify(f, pos, errs))
	}
	return toks
}

func classify(tok string, pos Pos, errs *ErrorList) Token {
	switch {
	case strings.HasSuffix(tok, ":"):
		return Token{Pos: pos, Kind: TokLabelDef, Label: Label{Name: tok[:len(tok)-1], Global: true}, Source: tok}
	case strings.HasPrefix(tok, ":"):
		return Token{Pos: pos, Kind: TokLabelRef, Label: Label{Name: tok[1:], Global: true}, Source: tok}
	case strings.HasSuffix(tok, "."):
		return Token{Pos: pos, Kind: TokLabelDef, Label: Label{Name: tok[:len(tok)-1], Global: false, Scope: 0}, Source: tok}
	case strings.HasPrefix(tok, "."):
		return Token{Pos: pos, Kind: TokLabelRef, Label: Label{Name: tok[1:], Global: false, Scope: 0}, Source: tok}
	case tok == "@const":
		return Token{Pos: pos, Kind: TokAtConst, Source: tok}
	case tok == "@dyn":
		return Token{Pos: pos, Kind: TokAtDyn, Source: tok}
	case tok == "@org":
		return Token{Pos: pos, Kind: TokAtOrg, Source: tok}
	case strings.HasSuffix(tok, "!"):
		return Token{Pos: pos, Kind: TokMacroDef, Macro: tok[:len(tok)-1], Source: tok}
	case strings.HasPrefix(tok, "!"):
		return Token{Pos: pos, Kind: TokMacroRef, Macro: tok[1:], Source: tok}

	case tok == "add":
		return arith(pos, isa.OpAdd, 1, tok)
	case tok == "adc":
		return arith(pos, isa.OpAdc, 1, tok)
	case strings.HasPrefix(tok, "add"):
		return arith(pos, isa.OpAdd, parseHex(tok[3:], pos, errs), tok)
	case strings.HasPrefix(tok, "adc"):
		return arith(pos, isa.OpAdc, parseHex(tok[3:], pos, errs), tok)

	case tok == "sub":
		return arith(pos, isa.OpSub, 1, tok)
	case tok == "sbc":
		return arith(pos, isa.OpSbc, 1, tok)
	case strings.HasPrefix(tok, "sub"):
		return arith(pos, isa.OpSub, parseHex(tok[3:], pos, errs), tok)
	case strings.HasPrefix(tok, "sbc"):
		return arith(pos, isa.OpSbc, parseHex(tok[3:], pos, errs), tok)

	case tok == "shf":
		return arith(pos, isa.OpShf, 1, tok)
	case strings.HasPrefix(tok, "shf"):
		return arith(pos, isa.OpShf, parseHex(tok[3:], pos, errs), tok)
	// "shc" is the bare Sfc mnemonic; "sfc" is only ever a sized-suffix
	// prefix. This asymmetry is carried over unchanged (see DESIGN.md).
	case tok == "shc":
		return arith(pos, isa.OpSfc, 1, tok)
	case strings.HasPrefix(tok, "sfc"):
		return arith(pos, isa.OpSfc, parseHex(tok[3:], pos, errs), tok)

	case tok == "rot":
		return arith(pos, isa.OpRot, 1, tok)
	case strings.HasPrefix(tok, "rot"):
		return arith(pos, isa.OpRot, parseHex(tok[3:], pos, errs), tok)

	case tok == "iff":
		return arith(pos, isa.OpIff, 1, tok)
	case strings.HasPrefix(tok, "iff"):
		return arith(pos, isa.OpIff, parseHex(tok[3:], pos, errs), tok)

	case tok == "orr":
		return arith(pos, isa.OpOrr, 1, tok)
	case strings.HasPrefix(tok, "orr"):
		return arith(pos, isa.OpOrr, parseHex(tok[3:], pos, errs), tok)

	case tok == "and":
		return arith(pos, isa.OpAnd, 1, tok)
	case strings.HasPrefix(tok, "and"):
		return arith(pos, isa.OpAnd, parseHex(tok[3:], pos, errs), tok)

	case tok == "xor":
		return arith(pos, isa.OpXor, 1, tok)
	case strings.HasPrefix(tok, "xor"):
		return arith(pos, isa.OpXor, parseHex(tok[3:], pos, errs), tok)

	case tok == "xnd":
		return arith(pos, isa.OpXnd, 1, tok)
	case strings.HasPrefix(tok, "xnd"):
		return arith(pos, isa.OpXnd, parseHex(tok[3:], pos, errs), tok)

	case tok == "adn":
		return fixed(pos, isa.OpAdn, tok)
	case tok == "sbn":
		return fixed(pos, isa.OpSbn, tok)
	case tok == "inc":
		return fixed(pos, isa.OpInc, tok)
	case tok == "dec":
		return fixed(pos, isa.OpDec, tok)
	case tok == "neg":
		return fixed(pos, isa.OpNeg, tok)
	case tok == "not":
		return fixed(pos, isa.OpNot, tok)
	case tok == "buf":
		return fixed(pos, isa.OpBuf, tok)
	case tok == "nop":
		return fixed(pos, isa.OpNop, tok)
	case tok == "clc":
		return fixed(pos, isa.OpClc, tok)
	case tok == "sec":
		return fixed(pos, isa.OpSec, tok)
	case tok == "flc":
		return fixed(pos, isa.OpFlc, tok)
	case tok == "swp":
		return fixed(pos, isa.OpSwp, tok)
	case tok == "pop":
		return fixed(pos, isa.OpPop, tok)
	case tok == "lda":
		return fixed(pos, isa.OpLda, tok)
	case tok == "sta":
		return fixed(pos, isa.OpSta, tok)
	case tok == "ldi":
		return fixed(pos, isa.OpLdi, tok)
	case tok == "sti":
		return fixed(pos, isa.OpSti, tok)
	case tok == "lds":
		return fixed(pos, isa.OpLds, tok)
	case tok == "sts":
		return fixed(pos, isa.OpSts, tok)

	case strings.HasPrefix(tok, "d"):
		return Token{Pos: pos, Kind: TokData, Byte: parseHex(tok[1:], pos, errs), Source: tok}
	case strings.HasPrefix(tok, "x"):
		return Token{Pos: pos, Kind: TokPush, Byte: parseHex(tok[1:], pos, errs), Source: tok}
	case strings.HasPrefix(tok, "ld"):
		return Token{Pos: pos, Kind: TokOffset, Op: isa.OpLdo, Byte: parseHex(tok[2:], pos, errs), Source: tok}
	case strings.HasPrefix(tok, "st"):
		return Token{Pos: pos, Kind: TokOffset, Op: isa.OpSto, Byte: parseHex(tok[2:], pos, errs), Source: tok}

	default:
		errs.Add(pos, ErrLex, "unexpected token: %s", tok)
		return fixed(pos, isa.OpNop, tok)
	}
}

func arith(pos Pos, op isa.Op, size byte, src string) Token {
	return Token{Pos: pos, Kind: TokArith, Op: op, Size: size, Source: src}
}

func fixed(pos Pos, op isa.Op, src string) Token {
	return Token{Pos: pos, Kind: TokFixed, Op: op, Source: src}
}

// parseHex parses a hexadecimal byte literal, reporting the three distinct
// failure categories the source language distinguishes.
func parseHex(s string, pos Pos, errs *ErrorList) byte {
	if s == "" {
		errs.Add(pos, ErrLex, "invalid empty hexadecimal literal")
		return 0
	}
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			errs.Add(pos, ErrLex, "hexadecimal literal out of range: %s", s)
		} else {
			errs.Add(pos, ErrLex, "invalid digits in hexadecimal literal: %s", s)
		}
		return 0
	}
	return byte(v)
}
