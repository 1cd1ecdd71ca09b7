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

package propagation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsch-join/joinsim/prng"
)

func TestReceivedPowerDecreasesWithDistance(t *testing.T) {
	streams := prng.New(21)
	near := ReceivedPower(0, 1, streams)
	far := ReceivedPower(0, 100, streams)
	assert.Greater(t, near, far)
}

func TestDbmMwRoundTrip(t *testing.T) {
	assert.InDelta(t, 0.0, MwToDbm(DbmToMw(0)), 1e-9)
	assert.InDelta(t, -20.0, MwToDbm(DbmToMw(-20)), 1e-9)
}

func TestMwToDbmHandlesZero(t *testing.T) {
	assert.True(t, math.IsInf(MwToDbm(0), -1))
}

func TestDelayScalesWithDistance(t *testing.T) {
	near := Delay(3)
	far := Delay(300)
	assert.Less(t, near, far)
	assert.Equal(t, int64(0), int64(Delay(0)))
}

func TestSHRDurationScalesInverselyWithDataRate(t *testing.T) {
	slow := SHRDuration(125000)
	fast := SHRDuration(250000)
	assert.Greater(t, slow, fast)
}
