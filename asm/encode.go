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

// ImageSize is the fixed size of the VM's addressable memory.
const ImageSize = 256

// EncodeOne maps a single resolved instruction to its byte, without the
// 256-byte padding/overflow check Encode applies to a whole program. Used
// by tooling (the listing printer) that wants the raw per-instruction
// bytes rather than a full image.
func EncodeOne(ins Instruction) byte { return encode1(ins) }

// Encode maps each resolved instruction to a byte and pads (or reports an
// overflow) to exactly ImageSize bytes.
func Encode(instrs []Instruction, errs *ErrorList) []byte {
	bytes := make([]byte, 0, len(instrs))
	for _, ins := range instrs {
		bytes = append(bytes, encode1(ins))
	}

	if len(bytes) > ImageSize {
		errs.Add(Pos{Scope: "[codegen]"}, ErrSize, "program size: %02x exceeds available memory: %02x", len(bytes), ImageSize)
		return bytes
	}
	padded := make([]byte, ImageSize)
	copy(padded, bytes)
	return padded
}

func encode1(ins Instruction) byte {
	switch ins.Op {
	case isa.OpPsh:
		return isa.EncodePsh(ins.Imm)
	case isa.OpPhn:
		return isa.EncodePhn(ins.Imm)
	case isa.OpLdo:
		return isa.EncodeLdo(ins.Offset)
	case isa.OpSto:
		return isa.EncodeSto(ins.Offset)
	case isa.OpAdd, isa.OpAdc, isa.OpSub, isa.OpSbc, isa.OpShf, isa.OpSfc, isa.OpRot, isa.OpIff,
		isa.OpOrr, isa.OpAnd, isa.OpXor, isa.OpXnd:
		return isa.EncodeSized(ins.Op, ins.Size)
	case isa.OpAdn, isa.OpSbn, isa.OpInc, isa.OpDec, isa.OpNeg, isa.OpNot, isa.OpBuf,
		isa.OpNop, isa.OpClc, isa.OpSec, isa.OpFlc, isa.OpSwp, isa.OpPop,
		isa.OpLda, isa.OpSta, isa.OpLdi, isa.OpSti, isa.OpLds, isa.OpSts:
		return isa.EncodeFixed(ins.Op)
	case isa.OpRaw:
		return ins.Raw
	default:
		panic("asm: unencodable instruction reached the encoder")
	}
}
