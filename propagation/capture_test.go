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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsch-join/joinsim/types"
)

func baseScanner() Scanner {
	return Scanner{
		BootTime:             0,
		ScanStartTime:        0,
		ScanDuration:         time.Millisecond,
		ChannelSwitchingTime: 0,
		NumChannels:          1,
		ClockDriftPPM:        0,
	}
}

func TestCaptureSingleCandidateNoInterference(t *testing.T) {
	cands := []Candidate{
		{AdvertiserId: 1, Channel: 0, RxStart: 100 * time.Microsecond, RxPowerDbm: -50, AirTime: 100 * time.Microsecond},
	}
	got := Capture(cands, baseScanner(), 100*time.Microsecond, 250000)
	require.NotNil(t, got)
	assert.Equal(t, types.NodeId(1), got.AdvertiserId)
}

func TestCaptureNoCandidatesReturnsNil(t *testing.T) {
	assert.Nil(t, Capture(nil, baseScanner(), 100*time.Microsecond, 250000))
}

func TestCaptureIgnoresCandidateBeforeBootTime(t *testing.T) {
	scanner := baseScanner()
	scanner.BootTime = 500 * time.Microsecond
	cands := []Candidate{
		{AdvertiserId: 1, Channel: 0, RxStart: 100 * time.Microsecond, RxPowerDbm: -50, AirTime: 100 * time.Microsecond},
	}
	assert.Nil(t, Capture(cands, scanner, 100*time.Microsecond, 250000))
}

func TestCaptureIgnoresCandidateBeforeScanStart(t *testing.T) {
	scanner := baseScanner()
	scanner.ScanStartTime = 500 * time.Microsecond
	cands := []Candidate{
		{AdvertiserId: 1, Channel: 0, RxStart: 100 * time.Microsecond, RxPowerDbm: -50, AirTime: 100 * time.Microsecond},
	}
	assert.Nil(t, Capture(cands, scanner, 100*time.Microsecond, 250000))
}

// TestCaptureSurvivesWeakerLaterCandidate grounds the eviction decision
// (propagation/capture.go's captured != nil path) on the captured frame's
// own margin: a strong already-captured EB is not evicted by a much weaker
// candidate arriving on the same channel before it finishes.
func TestCaptureSurvivesWeakerLaterCandidate(t *testing.T) {
	scanner := baseScanner()
	scanner.ScanDuration = time.Millisecond
	cands := []Candidate{
		{AdvertiserId: 1, Channel: 0, RxStart: 100 * time.Microsecond, RxPowerDbm: -30, AirTime: 500 * time.Microsecond},
		{AdvertiserId: 2, Channel: 0, RxStart: 300 * time.Microsecond, RxPowerDbm: -80, AirTime: 100 * time.Microsecond},
	}
	got := Capture(cands, scanner, 100*time.Microsecond, 250000)
	require.NotNil(t, got)
	assert.Equal(t, types.NodeId(1), got.AdvertiserId)
}

// TestCaptureEvictedByStrongerLaterCandidate mirrors the same eviction
// decision when the captured frame's own margin does fail: a weak captured
// EB is displaced by a much stronger candidate arriving while the first
// frame's SHR (160us at 250 kbps, so until 260us) is still being received,
// which is then itself evaluated for capture against the remaining background.
func TestCaptureEvictedByStrongerLaterCandidate(t *testing.T) {
	scanner := baseScanner()
	scanner.ScanDuration = time.Millisecond
	cands := []Candidate{
		{AdvertiserId: 1, Channel: 0, RxStart: 100 * time.Microsecond, RxPowerDbm: -80, AirTime: 500 * time.Microsecond},
		{AdvertiserId: 2, Channel: 0, RxStart: 200 * time.Microsecond, RxPowerDbm: -40, AirTime: 100 * time.Microsecond},
	}
	got := Capture(cands, scanner, 100*time.Microsecond, 250000)
	require.NotNil(t, got)
	assert.Equal(t, types.NodeId(2), got.AdvertiserId)
}

func TestCaptureOnlyListensToChannelCurrentlyTuned(t *testing.T) {
	scanner := baseScanner()
	scanner.NumChannels = 2
	// Dwell is 1ms per channel: [0,1ms) listens channel 0, [1ms,2ms) channel 1.
	cands := []Candidate{
		{AdvertiserId: 1, Channel: 0, RxStart: 500 * time.Microsecond, RxPowerDbm: -50, AirTime: 100 * time.Microsecond},
		{AdvertiserId: 2, Channel: 1, RxStart: 500 * time.Microsecond, RxPowerDbm: -30, AirTime: 100 * time.Microsecond},
	}
	got := Capture(cands, scanner, 100*time.Microsecond, 250000)
	require.NotNil(t, got)
	assert.Equal(t, types.NodeId(1), got.AdvertiserId)
}
