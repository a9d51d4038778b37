// Package isa describes the fixed instruction set of the 8-bit stack
// machine: one opcode table, no forks, no target selection. It plays the
// role the teacher's internal/evm package plays for the EVM instruction
// set, minus everything related to choosing between instruction sets.
package isa

// Size is an operand width in bytes. The machine only supports four widths.
type Size uint8

const (
	Size1 Size = 1
	Size2 Size = 2
	Size4 Size = 4
	Size8 Size = 8
)

// Valid reports whether s is one of the four supported operand widths.
func (s Size) Valid() bool {
	switch s {
	case Size1, Size2, Size4, Size8:
		return true
	}
	return false
}

// code returns the two-bit size code used in the sized-instruction encodings.
func (s Size) code() byte {
	switch s {
	case Size1:
		return 0b00
	case Size2:
		return 0b01
	case Size4:
		return 0b10
	case Size8:
		return 0b11
	}
	panic("isa: invalid size")
}

// Op names every instruction mnemonic the encoder and the verification
// interpreter need to agree on.
type Op uint8

const (
	OpPsh Op = iota
	OpPhn
	OpLdo
	OpSto
	OpAdd
	OpAdc
	OpSub
	OpSbc
	OpShf
	OpSfc
	OpRot
	OpIff
	OpOrr
	OpAnd
	OpXor
	OpXnd
	OpAdn
	OpSbn
	OpInc
	OpDec
	OpNeg
	OpNot
	OpBuf
	OpNop
	OpClc
	OpSec
	OpFlc
	OpSwp
	OpPop
	OpLda
	OpSta
	OpLdi
	OpSti
	OpLds
	OpSts
	OpRaw
)

// sizedBase holds the fixed high bits for the 12 size-bearing arithmetic/logic
// ops encoded as `100 kkk ss` or `1010 kk ss` (spec.md §4.7).
var sizedBase = map[Op]byte{
	OpAdd: 0b10000000,
	OpAdc: 0b10000100,
	OpSub: 0b10001000,
	OpSbc: 0b10001100,
	OpShf: 0b10010000,
	OpSfc: 0b10010100,
	OpRot: 0b10011000,
	OpIff: 0b10011100,
	OpOrr: 0b10100000,
	OpAnd: 0b10100100,
	OpXor: 0b10101000,
	OpXnd: 0b10101100,
}

// fixedByte holds the complete encoding for every zero-operand instruction.
var fixedByte = map[Op]byte{
	OpAdn: 0b10110000,
	OpSbn: 0b10110001,
	OpInc: 0b10110010,
	OpDec: 0b10110011,
	OpNeg: 0b10110100,
	OpNot: 0b10110110,
	OpBuf: 0b10110111,
	OpNop: 0xE0,
	OpClc: 0xE1,
	OpSec: 0xE2,
	OpFlc: 0xE3,
	OpSwp: 0xE4,
	OpPop: 0xE5,
	OpLda: 0xE8,
	OpSta: 0xE9,
	OpLdi: 0xEA,
	OpSti: 0xEB,
	OpLds: 0xEC,
	OpSts: 0xED,
}

// EncodePsh encodes a 7-bit immediate push. The caller must ensure imm <= 0x7F;
// this is a codegen-stage invariant, not a user-facing check (spec.md §4.7).
func EncodePsh(imm byte) byte {
	if imm&0b10000000 != 0 {
		panic("isa: Psh immediate does not fit in 7 bits")
	}
	return imm
}

// EncodePhn encodes a 4-bit high-nibble push.
func EncodePhn(nibble byte) byte {
	if nibble&0b11110000 != 0 {
		panic("isa: Phn operand does not fit in 4 bits")
	}
	return 0b11110000 | nibble
}

// encodeOffset encodes the shared 4-bit offset form used by Ldo/Sto.
func encodeOffset(op Op, offset byte) byte {
	if offset&0b11110000 != 0 {
		panic("isa: offset does not fit in 4 bits")
	}
	switch op {
	case OpLdo:
		return 0b11000000 | offset
	case OpSto:
		return 0b11010000 | offset
	}
	panic("isa: not an offset op")
}

// EncodeLdo encodes Ldo(offset).
func EncodeLdo(offset byte) byte { return encodeOffset(OpLdo, offset) }

// EncodeSto encodes Sto(offset).
func EncodeSto(offset byte) byte { return encodeOffset(OpSto, offset) }

// EncodeSized encodes one of the twelve size-bearing instructions.
func EncodeSized(op Op, size Size) byte {
	base, ok := sizedBase[op]
	if !ok {
		panic("isa: not a sized op")
	}
	if !size.Valid() {
		panic("isa: invalid size")
	}
	return base | size.code()
}

// EncodeFixed encodes a zero-operand instruction.
func EncodeFixed(op Op) byte {
	b, ok := fixedByte[op]
	if !ok {
		panic("isa: not a fixed-encoding op")
	}
	return b
}

// Name returns the mnemonic used in source text for a sized or fixed op,
// without any size suffix.
func Name(op Op) string {
	switch op {
	case OpPsh:
		return "psh"
	case OpPhn:
		return "phn"
	case OpLdo:
		return "ldo"
	case OpSto:
		return "sto"
	case OpAdd:
		return "add"
	case OpAdc:
		return "adc"
	case OpSub:
		return "sub"
	case OpSbc:
		return "sbc"
	case OpShf:
		return "shf"
	case OpSfc:
		return "sfc"
	case OpRot:
		return "rot"
	case OpIff:
		return "iff"
	case OpOrr:
		return "orr"
	case OpAnd:
		return "and"
	case OpXor:
		return "xor"
	case OpXnd:
		return "xnd"
	case OpAdn:
		return "adn"
	case OpSbn:
		return "sbn"
	case OpInc:
		return "inc"
	case OpDec:
		return "dec"
	case OpNeg:
		return "neg"
	case OpNot:
		return "not"
	case OpBuf:
		return "buf"
	case OpNop:
		return "nop"
	case OpClc:
		return "clc"
	case OpSec:
		return "sec"
	case OpFlc:
		return "flc"
	case OpSwp:
		return "swp"
	case OpPop:
		return "pop"
	case OpLda:
		return "lda"
	case OpSta:
		return "sta"
	case OpLdi:
		return "ldi"
	case OpSti:
		return "sti"
	case OpLds:
		return "lds"
	case OpSts:
		return "sts"
	case OpRaw:
		return "raw"
	}
	return "?"
}
