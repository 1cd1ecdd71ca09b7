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

package simulator

import (
	"time"

	"github.com/tsch-join/joinsim/types"
)

// RejoinResult is the outcome of a RejoiningAttempt. EBSchedulingDelay and
// NumAdvSlotsSensed are only meaningful (HasSensingFields true) for FFDs
// rejoining under ECV or ECH.
type RejoinResult struct {
	JoiningTime       time.Duration
	EBSchedulingDelay time.Duration
	NumAdvSlotsSensed int
	HasSensingFields  bool
}

// RejoiningAttempt detaches target from the network and resumes the driver
// from offset after the simulator's current network time, implementing the
// 4.6 rejoining procedure. Execute runs first if it has not already.
func (s *Simulator) RejoiningAttempt(target types.NodeId, offset time.Duration) (RejoinResult, error) {
	n, ok := s.group.Node(target)
	if !ok {
		return RejoinResult{}, operationErrorf("node %d does not belong to this group", target)
	}
	if n.IsPANCoordinator() {
		return RejoinResult{}, operationErrorf("the PAN coordinator cannot rejoin")
	}

	if !s.executed {
		if _, err := s.Execute(); err != nil {
			return RejoinResult{}, err
		}
	}

	delete(s.joined, target)
	delete(s.advertisers, target)
	delete(s.sensingCell, target)
	s.clearAllocation(target)
	s.unjoined[target] = true

	start := s.networkTime + offset
	msf, i, j := s.advanceToSubslot(start)
	s.multislotframeIdx, s.startingI, s.startingJ = msf, i, j
	s.scanStartTime[target] = start

	finish, err := s.loop()
	if err != nil {
		return RejoinResult{}, err
	}

	result := RejoinResult{JoiningTime: finish - start}
	if s.cfg.Method.UsesSensing() && n.Type() == types.FFD {
		timeslotLength := s.cfg.Template.TimeslotLength()
		multislotframeDuration := time.Duration(s.grid.SlotsInMs) * timeslotLength

		ebSchedulingDelay := s.networkTime - finish
		sensingDuration := ebSchedulingDelay - multislotframeDuration + finish%multislotframeDuration

		var basis time.Duration
		if s.cfg.Method == types.ECV {
			basis = multislotframeDuration
		} else {
			basis = time.Duration(s.grid.SlotframeLength) * timeslotLength
		}

		result.EBSchedulingDelay = ebSchedulingDelay
		result.NumAdvSlotsSensed = ceilDiv(sensingDuration, basis)
		result.HasSensingFields = true
	}
	return result, nil
}

// advanceToSubslot finds the multi-slotframe index and (i, j) advertisement
// subslot position at or after start, applying the
// "elapsed-in-subslot <= macTsTxOffset + macTsRxWait/2 keeps the same
// subslot" threshold from the rejoining procedure.
func (s *Simulator) advanceToSubslot(start time.Duration) (msf int64, i, j int) {
	g := s.grid
	timeslotLength := s.cfg.Template.TimeslotLength()
	multislotframeDuration := time.Duration(g.SlotsInMs) * timeslotLength
	threshold := s.cfg.Template.TxOffset() + s.cfg.Template.RxWait()/2

	msf = int64(start / multislotframeDuration)
	if msf < 0 {
		msf = 0
	}

	for {
		for ii := 0; ii < g.NumAdvSlotsInMs; ii++ {
			asn := g.ASN(msf, ii)
			slotStart := s.slot0Start + time.Duration(asn)*timeslotLength
			for jj := 0; jj < g.SubslotsPerAdvSlot; jj++ {
				subslotStart := slotStart + time.Duration(jj)*g.SubslotLength
				subslotEnd := subslotStart + g.SubslotLength
				if subslotEnd <= start {
					continue
				}
				elapsed := start - subslotStart
				if elapsed < 0 {
					elapsed = 0
				}
				if elapsed <= threshold {
					return msf, ii, jj
				}
			}
		}
		msf++
	}
}

func ceilDiv(a, b time.Duration) int {
	if a <= 0 || b <= 0 {
		return 0
	}
	return int((a + b - 1) / b)
}
