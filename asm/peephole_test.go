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
	"testing"

	"github.com/bricktech2000/stackasm/internal/isa"
)

func instrRoot(i Instruction) Root { return rootInstr(Pos{}, i) }

func nodeRoot(n *Node) Root { return rootNode(Pos{}, n) }

func TestOptimizeLdoOneFabricatesValue(t *testing.T) {
	// Node a, Node b, Ldo(1) -> a, b, a: Ldo(1) would have loaded the
	// value two slots below top, which after pushing a and b is a again.
	// A trailing Add then lets the main loop immediately fold the
	// fabricated duplicate together with b, proving the fabricated value
	// actually participated in constant folding rather than round-
	// tripping back to Ldo(1) unused (see postPassDup3, which would
	// otherwise undo the fabrication with nothing left to consume it).
	in := []Root{
		nodeRoot(imm(5)), nodeRoot(imm(9)),
		instrRoot(Instruction{Op: isa.OpLdo, Offset: 1}),
		instrRoot(Instruction{Op: isa.OpAdd, Size: isa.Size1}),
	}
	out := Optimize(in)

	if len(out) != 2 || out[0].Node.Kind != NodeImmediate || out[0].Node.Imm != 5 {
		t.Fatalf("got %+v, want [Imm(5), <fold>]", out)
	}
	v, ok, _ := eval(out[1].Node, nil)
	if !ok || v != 14 {
		t.Errorf("folded value = %d, want 14 (5+9, the fabricated duplicate plus b)", v)
	}
}

func TestOptimizeNotAndBufFolds(t *testing.T) {
	notOut := Optimize([]Root{nodeRoot(imm(0x0F)), instrRoot(Instruction{Op: isa.OpNot})})
	if len(notOut) != 1 || notOut[0].Node.Kind != NodeNot {
		t.Fatalf("Not fold: got %+v", notOut)
	}
	v, ok, _ := eval(notOut[0].Node, nil)
	if !ok || v != 0xF0 {
		t.Errorf("Not(0x0F) = %#02x, want 0xf0", v)
	}

	bufOut := Optimize([]Root{nodeRoot(imm(7)), instrRoot(Instruction{Op: isa.OpBuf})})
	if len(bufOut) != 1 || bufOut[0].Node.Imm != 7 {
		t.Errorf("Buf fold: got %+v, want the Node unchanged", bufOut)
	}
}

func TestOptimizeConstDropsMarker(t *testing.T) {
	out := Optimize([]Root{nodeRoot(imm(3)), {Kind: RootConst}})
	if len(out) != 1 || out[0].Kind != RootNode || out[0].Node.Imm != 3 {
		t.Fatalf("got %+v, want the bare Node", out)
	}
}

func TestOptimizeLdoSwpVariants(t *testing.T) {
	// Ldo(o), Node b, Swp -> b, Ldo(o+1)
	out := Optimize([]Root{
		instrRoot(Instruction{Op: isa.OpLdo, Offset: 2}),
		nodeRoot(imm(1)),
		instrRoot(Instruction{Op: isa.OpSwp}),
	})
	if len(out) != 2 || out[0].Node.Imm != 1 || out[1].Instr.Offset != 3 {
		t.Fatalf("got %+v, want [Node(1), Ldo(3)]", out)
	}

	// Node a, Ldo(o), Swp -> Ldo(o-1), a
	out = Optimize([]Root{
		nodeRoot(imm(1)),
		instrRoot(Instruction{Op: isa.OpLdo, Offset: 2}),
		instrRoot(Instruction{Op: isa.OpSwp}),
	})
	if len(out) != 2 || out[0].Instr.Offset != 1 || out[1].Node.Imm != 1 {
		t.Fatalf("got %+v, want [Ldo(1), Node(1)]", out)
	}

	// Ldo(o1), Ldo(o2), Swp -> Ldo(o2-1), Ldo(o1+1)
	out = Optimize([]Root{
		instrRoot(Instruction{Op: isa.OpLdo, Offset: 3}),
		instrRoot(Instruction{Op: isa.OpLdo, Offset: 5}),
		instrRoot(Instruction{Op: isa.OpSwp}),
	})
	if len(out) != 2 || out[0].Instr.Offset != 4 || out[1].Instr.Offset != 4 {
		t.Fatalf("got %+v, want [Ldo(4), Ldo(4)]", out)
	}
}

func TestOptimizeIsIdempotentOnPlainInstructions(t *testing.T) {
	in := []Root{instrRoot(Instruction{Op: isa.OpClc}), instrRoot(Instruction{Op: isa.OpSec})}
	out := Optimize(in)
	if len(out) != 2 || out[0].Instr.Op != isa.OpClc || out[1].Instr.Op != isa.OpSec {
		t.Fatalf("got %+v, want the input unchanged", out)
	}
}
