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

// NodeKind tags a compile-time expression tree node.
type NodeKind int

const (
	NodeLabelRef NodeKind = iota
	NodeImmediate
	NodeNot
	NodeAdd
	NodeSub
	NodeShf
	NodeRot
	NodeOrr
	NodeAnd
	NodeXor
	NodeXnd
)

// Node is a compile-time expression tree element. Field1/Field2 mirror the
// two boxed operands of the original implementation's binary variants
// positionally: peephole.go constructs them in the exact field order the
// evaluator in place.go expects (see DESIGN.md for the operand-order
// derivation). Not and Immediate/LabelRef only use Field1 or neither.
type Node struct {
	Kind   NodeKind
	Label  Label
	Imm    byte
	Field1 *Node
	Field2 *Node
}

func imm(v byte) *Node                 { return &Node{Kind: NodeImmediate, Imm: v} }
func labelRef(l Label) *Node           { return &Node{Kind: NodeLabelRef, Label: l} }
func unary(k NodeKind, a *Node) *Node   { return &Node{Kind: k, Field1: a} }
func binary(k NodeKind, f1, f2 *Node) *Node {
	return &Node{Kind: k, Field1: f1, Field2: f2}
}

// Equal reports structural equality, used by the peephole optimizer's
// duplicate-detection rewrites (spec.md §4.5 post-passes).
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Kind != o.Kind {
		return false
	}
	switch n.Kind {
	case NodeLabelRef:
		return n.Label == o.Label
	case NodeImmediate:
		return n.Imm == o.Imm
	case NodeNot:
		return n.Field1.Equal(o.Field1)
	default:
		return n.Field1.Equal(o.Field1) && n.Field2.Equal(o.Field2)
	}
}

// Instruction is the resolved low-level form, one step away from an
// encoded byte.
type Instruction struct {
	Op     isa.Op
	Imm    byte      // Psh (7-bit) / Phn (4-bit)
	Offset byte      // Ldo / Sto
	Size   isa.Size  // sized arithmetic/logic family
	Raw    byte      // Raw data byte
}

// RootKind tags an IR element.
type RootKind int

const (
	RootInstruction RootKind = iota
	RootNode
	RootLabelDef
	RootConst
	RootDyn
	RootOrg
)

// Root is one element of the intermediate representation the peephole
// optimizer and placer operate on.
type Root struct {
	Pos   Pos
	Kind  RootKind
	Instr *Instruction // RootInstruction, and RootDyn when captured
	Node  *Node        // RootNode, and RootOrg when captured
	Label Label        // RootLabelDef
}

func rootInstr(pos Pos, i Instruction) Root {
	return Root{Pos: pos, Kind: RootInstruction, Instr: &i}
}
func rootNode(pos Pos, n *Node) Root { return Root{Pos: pos, Kind: RootNode, Node: n} }
