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
	"sort"
	"time"

	"github.com/tsch-join/joinsim/types"
)

// CaptureThresholdDb is the minimum SINR margin, in dB, a frame needs over
// co-channel interference to be captured.
const CaptureThresholdDb = 3.0

// SHRDuration is the synchronization-header preamble duration at dataRate
// bits/second (5 bytes).
func SHRDuration(dataRate float64) time.Duration {
	return time.Duration(5 * 8 / dataRate * float64(time.Second))
}

// Candidate is one advertiser's EB as seen by a scanning node in a subslot:
// its hopped physical channel, true (pre-drift) receive start time, received
// power, and on-air duration.
type Candidate struct {
	AdvertiserId types.NodeId
	Channel      int
	RxStart      time.Duration
	RxPowerDbm   float64
	AirTime      time.Duration
}

// Scanner is the per-node, per-subslot state the capture decision needs:
// boot time, channel-scan schedule, and a one-time clock-drift factor drawn
// once per node at first use.
type Scanner struct {
	BootTime             time.Duration
	ScanStartTime        time.Duration
	ScanDuration         time.Duration
	ChannelSwitchingTime time.Duration
	NumChannels          int
	ClockDriftPPM        float64
}

func (s Scanner) localTime(t time.Duration) time.Duration {
	return t + time.Duration(float64(t)*s.ClockDriftPPM*1e-6)
}

type interferer struct {
	power  float64 // mW
	endsAt time.Duration
}

// Capture runs the per-subslot frame-capture decision over candidates as
// heard by scanner, returning the captured candidate (or nil if none was
// captured), per spec.md §4.4.
func Capture(candidates []Candidate, scanner Scanner, tEB time.Duration, dataRate float64) *Candidate {
	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].RxStart < sorted[j].RxStart })

	shrDuration := SHRDuration(dataRate)
	dwell := scanner.ScanDuration + scanner.ChannelSwitchingTime
	interferers := make(map[int][]interferer)

	purge := func(channel int, now time.Duration) float64 {
		list := interferers[channel]
		kept := list[:0]
		sum := 0.0
		for _, e := range list {
			if e.endsAt > now {
				kept = append(kept, e)
				sum += e.power
			}
		}
		interferers[channel] = kept
		return sum
	}

	addInterferer := func(channel int, rxPowerDbm float64, endsAt time.Duration) {
		interferers[channel] = append(interferers[channel], interferer{power: DbmToMw(rxPowerDbm), endsAt: endsAt})
	}

	var captured *Candidate
	var capturedEndsAt time.Duration
	var frameSyncEnd time.Duration
	inFrameSync := false

	for i := range sorted {
		cand := sorted[i]
		arrival := scanner.localTime(cand.RxStart)
		airEnd := scanner.localTime(cand.RxStart + cand.AirTime)

		if captured != nil && capturedEndsAt <= arrival {
			return captured
		}

		if cand.RxStart < scanner.BootTime || arrival < scanner.ScanStartTime {
			addInterferer(cand.Channel, cand.RxPowerDbm, airEnd)
			continue
		}

		elapsed := arrival - scanner.ScanStartTime
		if dwell <= 0 {
			addInterferer(cand.Channel, cand.RxPowerDbm, airEnd)
			continue
		}
		acn := int64(elapsed / dwell)
		listenChannel := int(acn % int64(scanner.NumChannels))
		remaining := dwell - elapsed%dwell
		if remaining < tEB {
			addInterferer(cand.Channel, cand.RxPowerDbm, airEnd)
			continue
		}

		if listenChannel != cand.Channel {
			addInterferer(cand.Channel, cand.RxPowerDbm, airEnd)
			continue
		}

		interferenceMw := purge(cand.Channel, arrival)
		interferenceDbm := MwToDbm(interferenceMw)

		switch {
		case captured == nil && interferenceMw == 0:
			c := cand
			captured = &c
			capturedEndsAt = airEnd
			frameSyncEnd = arrival + shrDuration
			inFrameSync = true

		case captured == nil:
			if (inFrameSync && frameSyncEnd <= arrival) || cand.RxPowerDbm-interferenceDbm < CaptureThresholdDb {
				addInterferer(cand.Channel, cand.RxPowerDbm, airEnd)
			} else {
				c := cand
				captured = &c
				capturedEndsAt = airEnd
				frameSyncEnd = arrival + shrDuration
				inFrameSync = true
			}

		default:
			// captured != nil: whether it survives this arrival depends on
			// ITS OWN margin against background interference plus cand,
			// not on cand's margin -- a stronger existing capture is never
			// evicted by a weaker new candidate.
			combinedDbm := MwToDbm(purge(captured.Channel, arrival) + DbmToMw(cand.RxPowerDbm))
			if captured.RxPowerDbm-combinedDbm < CaptureThresholdDb {
				addInterferer(captured.Channel, captured.RxPowerDbm, capturedEndsAt)
				captured = nil
				inFrameSync = false

				if frameSyncEnd <= arrival || cand.RxPowerDbm-interferenceDbm < CaptureThresholdDb {
					addInterferer(cand.Channel, cand.RxPowerDbm, airEnd)
				} else {
					c := cand
					captured = &c
					capturedEndsAt = airEnd
					frameSyncEnd = arrival + shrDuration
					inFrameSync = true
				}
			} else {
				addInterferer(cand.Channel, cand.RxPowerDbm, airEnd)
			}
		}
	}

	return captured
}
