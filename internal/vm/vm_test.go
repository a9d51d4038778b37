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

package vm

import (
	"testing"

	"github.com/bricktech2000/stackasm/internal/isa"
)

// sequenceFor mirrors asm/place.go's pushSequence encoding rule, built
// directly from raw bytes here since this package sits below asm and
// cannot import it. Nothing here calls pushSequence itself, so a change
// to that rule has to be mirrored in this copy by hand.
func sequenceFor(v byte) []byte {
	switch {
	case v&0xF0 == 0xF0:
		return []byte{isa.EncodePhn(v & 0x0F)}
	case v == 0x80:
		return []byte{isa.EncodePsh(0x7F), isa.EncodeFixed(isa.OpInc)}
	case v&0x80 == 0:
		return []byte{isa.EncodePsh(v)}
	default:
		neg := byte(-v) & 0x7F
		return []byte{isa.EncodePsh(neg), isa.EncodeFixed(isa.OpNeg)}
	}
}

func runSequence(t *testing.T, seq []byte) *Machine {
	t.Helper()
	var image [256]byte
	copy(image[:], seq)
	m := NewMachine(image)
	if err := m.Run(len(seq)); err != nil {
		t.Fatalf("Run(%d): %v", len(seq), err)
	}
	return m
}

func TestPushSequenceDecodesToValue(t *testing.T) {
	values := []byte{0x00, 0x01, 0x7F, 0xF0, 0xF3, 0xFF, 0x80, 0x81, 0x90, 0xC0}
	for _, v := range values {
		seq := sequenceFor(v)
		m := runSequence(t, seq)
		if len(m.Stack) != 1 || m.Stack[0] != v {
			t.Errorf("value %#02x: sequence %v produced stack %v, want [%#02x]", v, seq, m.Stack, v)
		}
	}
}

func TestBinaryOpPopOrderMatchesPlacer(t *testing.T) {
	// Psh(5); Psh(3); Sub -> stack [5,3], top=3=a, bottom=5=b, result b-a=2.
	image := [256]byte{isa.EncodePsh(5), isa.EncodePsh(3), isa.EncodeSized(isa.OpSub, isa.Size1)}
	m := NewMachine(image)
	if err := m.Run(3); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(m.Stack) != 1 || m.Stack[0] != 2 {
		t.Fatalf("got stack %v, want [2] (5-3, matching the b-a convention)", m.Stack)
	}
}

func TestStepLdoCopiesBelowTop(t *testing.T) {
	// Psh(9); Psh(1); Ldo(1) duplicates the value one slot below top (9).
	image := [256]byte{isa.EncodePsh(9), isa.EncodePsh(1), isa.EncodeLdo(1)}
	m := NewMachine(image)
	if err := m.Run(3); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []byte{9, 1, 9}
	if len(m.Stack) != len(want) {
		t.Fatalf("got stack %v, want %v", m.Stack, want)
	}
	for i := range want {
		if m.Stack[i] != want[i] {
			t.Errorf("stack[%d] = %#02x, want %#02x", i, m.Stack[i], want[i])
		}
	}
}

func TestStepSwpAndPop(t *testing.T) {
	image := [256]byte{isa.EncodePsh(1), isa.EncodePsh(2), isa.EncodeFixed(isa.OpSwp), isa.EncodeFixed(isa.OpPop)}
	m := NewMachine(image)
	if err := m.Run(4); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(m.Stack) != 1 || m.Stack[0] != 2 {
		t.Fatalf("got stack %v, want [2] (swp then pop drops 1, the item that was below the top)", m.Stack)
	}
}

func TestStepStackUnderflow(t *testing.T) {
	tests := []struct {
		name string
		ops  []byte
	}{
		{"pop empty", []byte{isa.EncodeFixed(isa.OpPop)}},
		{"swp one item", []byte{isa.EncodePsh(1), isa.EncodeFixed(isa.OpSwp)}},
		{"ldo beyond depth", []byte{isa.EncodePsh(1), isa.EncodeLdo(1)}},
		{"binary one operand", []byte{isa.EncodePsh(1), isa.EncodeSized(isa.OpAdd, isa.Size1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var image [256]byte
			copy(image[:], tt.ops)
			m := NewMachine(image)
			err := m.Run(len(tt.ops))
			if _, ok := err.(ErrStackUnderflow); !ok {
				t.Fatalf("got %v, want ErrStackUnderflow", err)
			}
		})
	}
}

func TestStepUnsupportedOp(t *testing.T) {
	image := [256]byte{isa.EncodeFixed(isa.OpAdn)}
	m := NewMachine(image)
	err := m.Run(1)
	if _, ok := err.(ErrUnsupportedOp); !ok {
		t.Fatalf("got %v, want ErrUnsupportedOp", err)
	}
}
