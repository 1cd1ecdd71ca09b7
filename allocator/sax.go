// Copyright (c) 2022-2023, The OTNS Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

package allocator

import "github.com/tsch-join/joinsim/types"

// sax16 is the Shift-Add-XOR hash the MAC-based allocators use to map a MAC
// address onto a 16-bit cell index: for each byte of the address,
// h = h XOR ((h<<5) + (h>>2) + byte), folded over all three 16-bit words.
// The accumulator must not be truncated between steps -- the reference
// accumulates h as an unbounded integer and masks to 16 bits only once, at
// the end, so intermediate growth beyond 16 bits still feeds later
// shifts/XORs before that single final truncation.
func sax16(mac types.MacAddress) uint16 {
	var h uint64
	for _, word := range mac.Words() {
		hi := byte(word >> 8)
		lo := byte(word)
		for _, b := range [2]byte{hi, lo} {
			h ^= (h << 5) + (h >> 2) + uint64(b)
		}
	}
	return uint16(h & 0xFFFF)
}
