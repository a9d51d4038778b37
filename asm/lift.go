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

import "github.com/bricktech2000/stackasm/internal/isa"

// Lift maps the expanded token stream one-to-one onto Roots, running the
// operand validators and substituting safe defaults where a diagnostic
// fires.
func Lift(toks []Token, errs *ErrorList) []Root {
	roots := make([]Root, 0, len(toks))
	for _, t := range toks {
		roots = append(roots, lift1(t, errs))
	}
	return roots
}

func lift1(t Token, errs *ErrorList) Root {
	switch t.Kind {
	case TokLabelDef:
		return Root{Pos: t.Pos, Kind: RootLabelDef, Label: t.Label}
	case TokLabelRef:
		return rootNode(t.Pos, labelRef(t.Label))
	case TokMacroDef, TokMacroRef:
		panic("asm: macro token reached the IR lifter")
	case TokAtConst:
		return Root{Pos: t.Pos, Kind: RootConst}
	case TokAtDyn:
		return Root{Pos: t.Pos, Kind: RootDyn}
	case TokAtOrg:
		return Root{Pos: t.Pos, Kind: RootOrg}
	case TokData:
		return rootInstr(t.Pos, Instruction{Op: isa.OpRaw, Raw: t.Byte})
	case TokPush:
		return rootNode(t.Pos, imm(assertImmediate(t.Byte, t.Pos, errs)))
	case TokOffset:
		return rootInstr(t.Pos, Instruction{Op: t.Op, Offset: assertOffset(t.Byte, t.Pos, errs)})
	case TokArith:
		return rootInstr(t.Pos, Instruction{Op: t.Op, Size: isa.Size(assertSize(t.Size, t.Pos, errs))})
	case TokFixed:
		return rootInstr(t.Pos, Instruction{Op: t.Op})
	default:
		panic("asm: unknown token kind in IR lifter")
	}
}

// assertImmediate validates that a byte fits the VM's 8-bit immediate
// range. Every Go byte already does, so this never actually fires; it is
// kept because the source language's grammar names this as a distinct
// validation step (spec.md §4.2), mirroring the original implementation's
// explicit (if unreachable) assert_immediate check.
func assertImmediate(v byte, pos Pos, errs *ErrorList) byte {
	return v
}

func assertSize(v byte, pos Pos, errs *ErrorList) byte {
	switch v {
	case 1, 2, 4, 8:
		return v
	default:
		errs.Add(pos, ErrShape, "invalid size operand: %02x", v)
		return 1
	}
}

func assertOffset(v byte, pos Pos, errs *ErrorList) byte {
	if v <= 0x0F {
		return v
	}
	errs.Add(pos, ErrShape, "invalid offset operand: %02x", v)
	return 0
}
