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

// matchReplace slides a window of size n over roots, substituting the
// result of match whenever it returns ok. On a match the window is
// consumed entirely (no overlap); otherwise the window slides forward by
// one element, exactly as the teacher's sliding-window idioms elsewhere
// advance past a non-match.
func matchReplace(roots []Root, n int, match func(window []Root) ([]Root, bool)) ([]Root, bool) {
	if len(roots) < n {
		return roots, false
	}
	out := make([]Root, 0, len(roots))
	changed := false
	i := 0
	for i+n <= len(roots) {
		window := roots[i : i+n]
		if repl, ok := match(window); ok {
			pos := window[0].Pos
			for _, r := range repl {
				r.Pos = pos
				out = append(out, r)
			}
			i += n
			changed = true
			continue
		}
		out = append(out, roots[i])
		i++
	}
	out = append(out, roots[i:]...)
	return out, changed
}

// Optimize runs the peephole optimizer to fixpoint: pre-pass once, the main
// loop until no rewrite fires, then the three post-passes once each
// (spec.md §4.5).
func Optimize(roots []Root) []Root {
	roots, _ = matchReplace(roots, 2, prePass)

	for {
		changed := false
		var c bool
		roots, c = matchReplace(roots, 1, dropNop)
		changed = changed || c
		roots, c = matchReplace(roots, 2, window2)
		changed = changed || c
		roots, c = matchReplace(roots, 3, window3)
		changed = changed || c
		if !changed {
			break
		}
	}

	roots, _ = matchReplace(roots, 2, postPassDup2)
	roots, _ = matchReplace(roots, 2, postPassSwpPop)
	roots, _ = matchReplace(roots, 3, postPassDup3)
	return roots
}

func prePass(w []Root) ([]Root, bool) {
	if w[0].Kind == RootInstruction && w[1].Kind == RootDyn && w[1].Instr == nil {
		captured := *w[0].Instr
		return []Root{{Kind: RootDyn, Instr: &captured}}, true
	}
	return nil, false
}

func dropNop(w []Root) ([]Root, bool) {
	if w[0].Kind == RootInstruction && w[0].Instr.Op == isa.OpNop {
		return []Root{}, true
	}
	return nil, false
}

func window2(w []Root) ([]Root, bool) {
	a, b := w[0], w[1]
	if a.Kind != RootNode {
		return nil, false
	}
	node := a.Node

	if b.Kind == RootConst {
		return []Root{rootNode(Pos{}, node)}, true
	}
	if b.Kind == RootOrg && b.Node == nil {
		return []Root{{Kind: RootOrg, Node: node}}, true
	}
	if b.Kind == RootInstruction {
		switch {
		case b.Instr.Op == isa.OpLdo && b.Instr.Offset == 0:
			return []Root{rootNode(Pos{}, node), rootNode(Pos{}, node)}, true
		case b.Instr.Op == isa.OpInc:
			return []Root{rootNode(Pos{}, binary(NodeAdd, node, imm(1)))}, true
		case b.Instr.Op == isa.OpDec:
			return []Root{rootNode(Pos{}, binary(NodeSub, node, imm(1)))}, true
		case b.Instr.Op == isa.OpNeg:
			return []Root{rootNode(Pos{}, binary(NodeSub, node, imm(0)))}, true
		case b.Instr.Op == isa.OpNot:
			return []Root{rootNode(Pos{}, unary(NodeNot, node))}, true
		case b.Instr.Op == isa.OpBuf:
			return []Root{rootNode(Pos{}, node)}, true
		case b.Instr.Op == isa.OpPop:
			return []Root{}, true
		}
	}
	return nil, false
}

// binaryFoldKind maps a size-1 binary instruction opcode to the Node kind
// it folds into. Adc/Sbc/Sfc fold the same as Add/Sub/Shf respectively
// (spec.md §4.5 window 3).
var binaryFoldKind = map[isa.Op]NodeKind{
	isa.OpAdd: NodeAdd,
	isa.OpAdc: NodeAdd,
	isa.OpSub: NodeSub,
	isa.OpSbc: NodeSub,
	isa.OpShf: NodeShf,
	isa.OpSfc: NodeShf,
	isa.OpRot: NodeRot,
	isa.OpOrr: NodeOrr,
	isa.OpAnd: NodeAnd,
	isa.OpXor: NodeXor,
	isa.OpXnd: NodeXnd,
}

func window3(w []Root) ([]Root, bool) {
	a, b, c := w[0], w[1], w[2]

	if a.Kind == RootNode && b.Kind == RootNode && c.Kind == RootInstruction {
		if c.Instr.Op == isa.OpLdo && c.Instr.Offset == 1 {
			return []Root{rootNode(Pos{}, a.Node), rootNode(Pos{}, b.Node), rootNode(Pos{}, a.Node)}, true
		}
		if c.Instr.Size == isa.Size1 {
			if kind, ok := binaryFoldKind[c.Instr.Op]; ok {
				return []Root{rootNode(Pos{}, binary(kind, b.Node, a.Node))}, true
			}
		}
		if c.Instr.Op == isa.OpSwp {
			return []Root{rootNode(Pos{}, b.Node), rootNode(Pos{}, a.Node)}, true
		}
	}

	if a.Kind == RootInstruction && a.Instr.Op == isa.OpLdo && b.Kind == RootNode &&
		c.Kind == RootInstruction && c.Instr.Op == isa.OpSwp {
		return []Root{rootNode(Pos{}, b.Node), rootInstr(Pos{}, Instruction{Op: isa.OpLdo, Offset: a.Instr.Offset + 1})}, true
	}
	if a.Kind == RootNode && b.Kind == RootInstruction && b.Instr.Op == isa.OpLdo &&
		c.Kind == RootInstruction && c.Instr.Op == isa.OpSwp {
		return []Root{rootInstr(Pos{}, Instruction{Op: isa.OpLdo, Offset: b.Instr.Offset - 1}), rootNode(Pos{}, a.Node)}, true
	}
	if a.Kind == RootInstruction && a.Instr.Op == isa.OpLdo &&
		b.Kind == RootInstruction && b.Instr.Op == isa.OpLdo &&
		c.Kind == RootInstruction && c.Instr.Op == isa.OpSwp {
		return []Root{
			rootInstr(Pos{}, Instruction{Op: isa.OpLdo, Offset: b.Instr.Offset - 1}),
			rootInstr(Pos{}, Instruction{Op: isa.OpLdo, Offset: a.Instr.Offset + 1}),
		}, true
	}

	return nil, false
}

func postPassDup2(w []Root) ([]Root, bool) {
	if w[0].Kind == RootNode && w[1].Kind == RootNode && w[0].Node.Equal(w[1].Node) {
		return []Root{rootNode(Pos{}, w[0].Node), rootInstr(Pos{}, Instruction{Op: isa.OpLdo, Offset: 0})}, true
	}
	return nil, false
}

func postPassSwpPop(w []Root) ([]Root, bool) {
	if w[0].Kind == RootInstruction && w[0].Instr.Op == isa.OpSwp &&
		w[1].Kind == RootInstruction && w[1].Instr.Op == isa.OpPop {
		return []Root{rootInstr(Pos{}, Instruction{Op: isa.OpSto, Offset: 0})}, true
	}
	return nil, false
}

func postPassDup3(w []Root) ([]Root, bool) {
	if w[0].Kind == RootNode && w[1].Kind == RootNode && w[2].Kind == RootNode && w[0].Node.Equal(w[2].Node) {
		return []Root{
			rootNode(Pos{}, w[0].Node),
			rootNode(Pos{}, w[1].Node),
			rootInstr(Pos{}, Instruction{Op: isa.OpLdo, Offset: 1}),
		}, true
	}
	return nil, false
}
