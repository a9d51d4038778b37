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

// SymbolTable flattens a Result's resolved labels into a name -> address
// map suitable for YAML export (-symbols), keyed by Label.String. Global
// labels appear as ":name"; local labels appear as ".name#scope", carrying
// their expansion-site scope id, since the same name can legitimately
// resolve to several addresses.
func SymbolTable(labels map[Label]byte) map[string]int {
	out := make(map[string]int, len(labels))
	for l, addr := range labels {
		out[l.String()] = int(addr)
	}
	return out
}
