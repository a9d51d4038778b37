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

// eval computes a Node's value against the current label map. ok is false
// when the tree references a label that has no address yet; missing names
// the first such label encountered, for diagnostics.
func eval(n *Node, labels map[Label]byte) (value byte, ok bool, missing Label) {
	switch n.Kind {
	case NodeLabelRef:
		v, found := labels[n.Label]
		return v, found, n.Label
	case NodeImmediate:
		return n.Imm, true, Label{}
	case NodeNot:
		v, ok, missing := eval(n.Field1, labels)
		return ^v, ok, missing
	case NodeAdd, NodeSub, NodeShf, NodeRot, NodeOrr, NodeAnd, NodeXor, NodeXnd:
		a, ok1, miss1 := eval(n.Field1, labels)
		if !ok1 {
			return 0, false, miss1
		}
		b, ok2, miss2 := eval(n.Field2, labels)
		if !ok2 {
			return 0, false, miss2
		}
		return evalBinary(n.Kind, a, b), true, Label{}
	default:
		panic("asm: invalid node kind in eval")
	}
}

// evalBinary applies a binary node operator. a is Field1's value, b is
// Field2's value; the result is b ∘ a wherever order matters, matching the
// construction in peephole.go (see DESIGN.md for the derivation).
func evalBinary(k NodeKind, a, b byte) byte {
	switch k {
	case NodeAdd:
		return b + a
	case NodeSub:
		return b - a
	case NodeShf:
		return shf(a, b)
	case NodeRot:
		shifted := shf16(a, b)
		return byte(shifted&0xFF) | byte(shifted>>8)
	case NodeOrr:
		return b | a
	case NodeAnd:
		return b & a
	case NodeXor:
		return b ^ a
	case NodeXnd:
		return 0
	default:
		panic("asm: invalid binary node kind")
	}
}

// shf16 shifts b by the signed amount a on a 16-bit intermediate, without
// truncating back to 8 bits (used by Rot to fold the high byte back in).
func shf16(a, b byte) uint16 {
	amount := int8(a)
	v := uint16(b)
	if amount >= 0 {
		return v << uint(amount)
	}
	return v >> uint(-amount)
}

func shf(a, b byte) byte {
	return byte(shf16(a, b) & 0xFF)
}

// pushSequence returns the shortest instruction sequence that places the
// immediate v on the stack at runtime (spec.md §4.6). Its length is always
// exactly 1 or 2, which is why the placer can always reserve two bytes for
// a deferred push.
func pushSequence(pos Pos, v byte) []Instruction {
	switch {
	case v&0xF0 == 0xF0:
		return []Instruction{{Op: isa.OpPhn, Imm: v & 0x0F}}
	case v == 0x80:
		return []Instruction{
			{Op: isa.OpPsh, Imm: 0x7F},
			{Op: isa.OpInc},
		}
	case v&0x80 == 0:
		return []Instruction{{Op: isa.OpPsh, Imm: v}}
	default:
		neg := byte(-v) & 0x7F
		return []Instruction{
			{Op: isa.OpPsh, Imm: neg},
			{Op: isa.OpNeg},
		}
	}
}

const pushSequenceMaxLen = 2

// deferredNode records a Node the placer could not evaluate on the first
// pass, to be retried once every label is bound.
type deferredNode struct {
	addr byte
	pos  Pos
	node *Node
}

// Place walks Roots left to right, assigning an 8-bit wrapping location
// counter, emitting instructions for Nodes that are already resolvable and
// reserving two-byte placeholders for the rest, then back-patches once
// every label is known. Besides the instruction stream it returns every
// label's final address and the source Pos each instruction byte traces
// back to (same length as the instruction slice), for callers that want
// to print a listing or export symbols.
func Place(roots []Root, errs *ErrorList) ([]Instruction, []Pos, map[Label]byte) {
	labels := make(map[Label]byte)
	var deferred []deferredNode
	var out []Instruction
	var positions []Pos
	var counter byte

	emit := func(pos Pos, is ...Instruction) {
		out = append(out, is...)
		for range is {
			positions = append(positions, pos)
		}
		counter += byte(len(is))
	}

	for _, r := range roots {
		switch r.Kind {
		case RootInstruction:
			emit(r.Pos, *r.Instr)

		case RootDyn:
			if r.Instr == nil {
				errs.Add(r.Pos, ErrMarker, "dynamic argument is not an instruction")
				continue
			}
			emit(r.Pos, *r.Instr)

		case RootNode:
			if v, ok, _ := eval(r.Node, labels); ok {
				emit(r.Pos, pushSequence(r.Pos, v)...)
			} else {
				deferred = append(deferred, deferredNode{addr: counter, pos: r.Pos, node: r.Node})
				emit(r.Pos, Instruction{Op: isa.OpNop}, Instruction{Op: isa.OpNop})
			}

		case RootLabelDef:
			if r.Label.Scope == 0 && !r.Label.Global {
				panic("asm: local label reached placer with no scope id")
			}
			if _, dup := labels[r.Label]; dup {
				errs.Add(r.Pos, ErrLabel, "label already defined: %v", r.Label)
				continue
			}
			labels[r.Label] = counter

		case RootConst:
			errs.Add(r.Pos, ErrMarker, "origin or constant argument is not a constant expression")

		case RootOrg:
			if r.Node == nil {
				errs.Add(r.Pos, ErrMarker, "origin or constant argument is not a constant expression")
				continue
			}
			v, ok, label := eval(r.Node, labels)
			if !ok {
				errs.Add(r.Pos, ErrMarker, "origin argument contains currently unresolved label: %v", label)
				continue
			}
			if v < counter {
				errs.Add(r.Pos, ErrMarker, "origin cannot move location counter backward from: %02x to: %02x", counter, v)
				continue
			}
			pad := make([]Instruction, v-counter)
			for i := range pad {
				pad[i] = Instruction{Op: isa.OpRaw, Raw: 0}
			}
			emit(r.Pos, pad...)
		}
	}

	for _, d := range deferred {
		v, ok, label := eval(d.node, labels)
		if !ok {
			errs.Add(d.pos, ErrLabel, "definition not found for label: %v", label)
			v = 0
		}
		seq := pushSequence(d.pos, v)
		for i, ins := range seq {
			out[int(d.addr)+i] = ins
		}
		for i := len(seq); i < pushSequenceMaxLen; i++ {
			out[int(d.addr)+i] = Instruction{Op: isa.OpNop}
		}
	}

	return out, positions, labels
}
