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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsch-join/joinsim/types"
)

func TestNewGridCFASVGeometry(t *testing.T) {
	g, err := NewGrid(types.CFASV, 5, 2, 4, 3, 1, 250000, 21, 2120*time.Microsecond, false)
	require.NoError(t, err)

	assert.Equal(t, 1, g.R)
	assert.Equal(t, 2, g.NumAdvSlotsInMs)
	assert.Equal(t, 2, g.TotalAdvSubslots)
	assert.Equal(t, 10, g.SlotsInMs)
}

func TestGridASNAndAdvSlotPosition(t *testing.T) {
	g, err := NewGrid(types.CFASV, 5, 2, 4, 3, 1, 250000, 21, 2120*time.Microsecond, false)
	require.NoError(t, err)

	assert.Equal(t, 0, g.AdvSlotPosition(0))
	assert.Equal(t, 5, g.AdvSlotPosition(1))
	assert.Equal(t, int64(0), g.ASN(0, 0))
	assert.Equal(t, int64(5), g.ASN(0, 1))
	assert.Equal(t, int64(10), g.ASN(1, 0))
}

func TestGridChannelHopsWithASN(t *testing.T) {
	g, err := NewGrid(types.CFASV, 5, 2, 3, 1, 1, 250000, 21, 2120*time.Microsecond, false)
	require.NoError(t, err)

	assert.Equal(t, 2, g.Channel(2, 0, 0))
	assert.Equal(t, 0, g.Channel(3, 0, 0))
	assert.Equal(t, 1, g.Channel(2, 0, 2))
}

func TestGridChannelMixesSSNWhenATPEnabled(t *testing.T) {
	g, err := NewGrid(types.CFASV, 5, 2, 4, 1, 2, 250000, 21, 2120*time.Microsecond, true)
	require.NoError(t, err)

	assert.Equal(t, 2, g.SubslotsPerAdvSlot)
	assert.NotEqual(t, g.Channel(1, 0, 0), g.Channel(1, 1, 0))
}

func TestGridCoprime(t *testing.T) {
	coprime, err := NewGrid(types.CFASV, 5, 2, 3, 1, 1, 250000, 21, 2120*time.Microsecond, false)
	require.NoError(t, err)
	assert.True(t, coprime.Coprime()) // SlotsInMs=10, channels=3

	notCoprime, err := NewGrid(types.CFASV, 5, 2, 4, 1, 1, 250000, 21, 2120*time.Microsecond, false)
	require.NoError(t, err)
	assert.False(t, notCoprime.Coprime()) // SlotsInMs=10, channels=4
}

func TestNewGridRejectsNonPositiveSlotframeLength(t *testing.T) {
	_, err := NewGrid(types.CFASV, 0, 2, 4, 3, 1, 250000, 21, 2120*time.Microsecond, false)
	assert.Error(t, err)
}

func TestNewGridRejectsEnhancedSingleChannelMultiFFD(t *testing.T) {
	_, err := NewGrid(types.ECFASV, 5, 2, 1, 3, 1, 250000, 21, 2120*time.Microsecond, false)
	assert.Error(t, err)
}

func TestNewGridRejectsTooFewSlotsForRequiredAdvertisements(t *testing.T) {
	_, err := NewGrid(types.CFASV, 1, 1, 1, 100, 1, 250000, 21, 2120*time.Microsecond, false)
	assert.Error(t, err)
}

func TestNewGridMinimal6TiSCHRejectsATP(t *testing.T) {
	_, err := NewGrid(types.Minimal6TiSCH, 5, 2, 4, 3, 2, 250000, 21, 2120*time.Microsecond, true)
	assert.Error(t, err)
}

func TestChannelSpaceReservesOffsetZeroForEnhanced(t *testing.T) {
	enhanced, err := NewGrid(types.ECFASV, 5, 2, 4, 1, 1, 250000, 21, 2120*time.Microsecond, false)
	require.NoError(t, err)
	assert.Equal(t, 3, enhanced.ChannelSpace())

	plain, err := NewGrid(types.CFASV, 5, 2, 4, 1, 1, 250000, 21, 2120*time.Microsecond, false)
	require.NoError(t, err)
	assert.Equal(t, 4, plain.ChannelSpace())
}
