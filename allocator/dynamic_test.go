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

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsch-join/joinsim/prng"
)

func TestNextCellECVColumnMajor(t *testing.T) {
	next, ok := NextCellECV(InitialSensingCell, 3, 4)
	assert.True(t, ok)
	assert.Equal(t, Cell{AdvSubslotIdx: 0, ChannelOffset: 2}, next)

	next, ok = NextCellECV(Cell{AdvSubslotIdx: 0, ChannelOffset: 3}, 3, 4)
	assert.True(t, ok)
	assert.Equal(t, Cell{AdvSubslotIdx: 1, ChannelOffset: 1}, next)
}

func TestNextCellECVExhausted(t *testing.T) {
	_, ok := NextCellECV(Cell{AdvSubslotIdx: 2, ChannelOffset: 3}, 3, 4)
	assert.False(t, ok)
}

func TestNextCellECHRowMajor(t *testing.T) {
	next, ok := NextCellECH(InitialSensingCell, 3, 4)
	assert.True(t, ok)
	assert.Equal(t, Cell{AdvSubslotIdx: 1, ChannelOffset: 1}, next)

	next, ok = NextCellECH(Cell{AdvSubslotIdx: 2, ChannelOffset: 1}, 3, 4)
	assert.True(t, ok)
	assert.Equal(t, Cell{AdvSubslotIdx: 0, ChannelOffset: 2}, next)
}

func TestNextCellECHExhausted(t *testing.T) {
	_, ok := NextCellECH(Cell{AdvSubslotIdx: 2, ChannelOffset: 3}, 3, 4)
	assert.False(t, ok)
}

func TestRandomFallbackCellAvoidsOffsetZero(t *testing.T) {
	streams := prng.New(11)
	for i := 0; i < 50; i++ {
		cell := RandomFallbackCell(streams, 5, 4)
		assert.GreaterOrEqual(t, cell.ChannelOffset, 1)
		assert.Less(t, cell.ChannelOffset, 4)
		assert.GreaterOrEqual(t, cell.AdvSubslotIdx, 0)
		assert.Less(t, cell.AdvSubslotIdx, 5)
	}
}

func TestAllocateMinimal6TiSCHUsesOffsetZero(t *testing.T) {
	streams := prng.New(13)
	for i := 0; i < 20; i++ {
		cell := AllocateMinimal6TiSCH(streams, 6)
		assert.Equal(t, 0, cell.ChannelOffset)
		assert.GreaterOrEqual(t, cell.AdvSubslotIdx, 0)
		assert.Less(t, cell.AdvSubslotIdx, 6)
	}
}
