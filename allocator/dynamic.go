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

import "github.com/tsch-join/joinsim/prng"

// PANCoordinatorCell is the fixed cell the PAN coordinator transmits on
// under every allocation method: channel offset 0, subslot 0. Under ECV/ECH
// the coordinator in fact holds channel offset 0 on every subslot; callers
// that need every one of its cells should range over TotalAdvSubslots with
// ChannelOffset fixed at 0 rather than using this single cell.
var PANCoordinatorCell = Cell{AdvSubslotIdx: 0, ChannelOffset: 0}

// AllocateMinimal6TiSCH picks the one cell a newly-joined advertiser uses
// under Minimal6TiSCH: channel offset 0, subslot drawn uniformly at random
// from the numAdvSlotsInMs choices.
func AllocateMinimal6TiSCH(streams *prng.Streams, numAdvSlotsInMs int) Cell {
	return Cell{AdvSubslotIdx: streams.NewFallbackSubslot(numAdvSlotsInMs), ChannelOffset: 0}
}

// InitialSensingCell is the cell a newly-joined FFD starts sensing at under
// ECV/ECH: subslot 0, channel offset 1 (offset 0 is reserved for the PAN
// coordinator).
var InitialSensingCell = Cell{AdvSubslotIdx: 0, ChannelOffset: 1}

// NextCellECV advances the sensing walk in column-major order: increment
// channel offset within the subslot; on wrapping past the last channel,
// advance to the next subslot and reset the offset to 1. ok is false once
// the walk has visited every (subslot, non-zero offset) cell.
func NextCellECV(cur Cell, totalAdvSubslots, numChannels int) (next Cell, ok bool) {
	c := cur.ChannelOffset + 1
	s := cur.AdvSubslotIdx
	if c >= numChannels {
		c = 1
		s++
	}
	if s >= totalAdvSubslots {
		return Cell{}, false
	}
	return Cell{AdvSubslotIdx: s, ChannelOffset: c}, true
}

// NextCellECH advances the sensing walk in row-major order: increment
// subslot at the current channel offset; on wrapping past the last subslot,
// advance to the next channel offset and reset the subslot to 0. ok is
// false once the walk has visited every (subslot, non-zero offset) cell.
func NextCellECH(cur Cell, totalAdvSubslots, numChannels int) (next Cell, ok bool) {
	s := cur.AdvSubslotIdx + 1
	c := cur.ChannelOffset
	if s >= totalAdvSubslots {
		s = 0
		c++
	}
	if c >= numChannels {
		return Cell{}, false
	}
	return Cell{AdvSubslotIdx: s, ChannelOffset: c}, true
}

// RandomFallbackCell draws the uniformly-random cell an ECV/ECH sensor is
// assigned when its sensing walk exhausts every (subslot, non-zero offset)
// cell while still finding the channel busy.
func RandomFallbackCell(streams *prng.Streams, totalAdvSubslots, numChannels int) Cell {
	return Cell{
		AdvSubslotIdx: streams.NewFallbackSubslot(totalAdvSubslots),
		ChannelOffset: 1 + streams.NewFallbackChannelOffset(numChannels-1),
	}
}
