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

	"github.com/tsch-join/joinsim/energy"
	"github.com/tsch-join/joinsim/types"
)

// ensureEnergyComputed reduces the per-node ASN/counter bookkeeping to
// activity durations and feeds them into the energy analyser, per 4.7. It
// runs once; later calls are no-ops, so it is safe to call from any reader.
func (s *Simulator) ensureEnergyComputed() {
	if s.energyComputed {
		return
	}
	s.energyComputed = true

	timeslotLength := s.cfg.Template.TimeslotLength()
	sensingBased := s.cfg.Method.UsesSensing()

	for _, n := range s.group.Nodes() {
		id := n.Id()
		syncASN := s.syncASN[id]
		ebTx := int64(s.ebTxCounter[id])

		s.energy.AddSync(id, time.Duration(syncASN)*timeslotLength)
		s.energy.AddTx(id, time.Duration(ebTx)*s.grid.TEB)

		idleSlots := s.formationASN - syncASN - ebTx
		if idleSlots < 0 {
			idleSlots = 0
		}
		s.energy.AddIdle(id, time.Duration(idleSlots)*timeslotLength)

		if sensingBased {
			s.energy.AddSense(id, time.Duration(s.numSlotsSensed[id])*s.cfg.Template.RxWait())
		}
	}
}

// EnergyReports returns the per-node energy breakdown after the joining
// phase has converged, ordered by node id.
func (s *Simulator) EnergyReports() []energy.Report {
	s.ensureEnergyComputed()
	return s.energy.Reports()
}

// TotalEnergy returns the summed energy, in joules, spent by the network
// during the joining phase.
func (s *Simulator) TotalEnergy() float64 {
	s.ensureEnergyComputed()
	return s.energy.NetworkTotal()
}

// FormationASN returns the Absolute Slot Number of the subslot in which the
// driver last declared convergence (every node joined and, under ECV/ECH, no
// sensor still walking its cells), valid once Execute has converged.
func (s *Simulator) FormationASN() int64 {
	return s.formationASN
}

// FallbackAssigned reports, for ECV/ECH runs, which nodes exhausted their
// sensing walk and were assigned a uniformly random fallback cell.
func (s *Simulator) FallbackAssigned() map[types.NodeId]bool {
	out := make(map[types.NodeId]bool, len(s.fallbackAssigned))
	for id, v := range s.fallbackAssigned {
		out[id] = v
	}
	return out
}
