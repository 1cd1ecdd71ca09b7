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

package energy

import (
	"time"

	"github.com/tsch-join/joinsim/types"
)

// nodeEnergy accumulates the durations a node spends in each activity over
// the run. Durations, not running joule totals, are kept so the electrical
// constants can be applied once at report time.
type nodeEnergy struct {
	nodeId      types.NodeId
	exempt      bool // PAN coordinator under an energy-exempt scheduling method
	spentSync   time.Duration
	spentTx     time.Duration
	spentIdle   time.Duration
	spentSense  time.Duration
}

func newNodeEnergy(nodeId types.NodeId, exempt bool) *nodeEnergy {
	return &nodeEnergy{nodeId: nodeId, exempt: exempt}
}

// AddSync accounts d of EB-listening time before the node has synchronized.
func (n *nodeEnergy) AddSync(d time.Duration) {
	if n.exempt {
		return
	}
	n.spentSync += d
}

// AddTx accounts d of EB-transmission time once the node is an advertiser.
func (n *nodeEnergy) AddTx(d time.Duration) {
	n.spentTx += d
}

// AddIdle accounts d of powered-but-inactive time.
func (n *nodeEnergy) AddIdle(d time.Duration) {
	if n.exempt {
		return
	}
	n.spentIdle += d
}

// AddSense accounts d of channel-sensing time (ECV/ECH only).
func (n *nodeEnergy) AddSense(d time.Duration) {
	if n.exempt {
		return
	}
	n.spentSense += d
}

func (n *nodeEnergy) report() Report {
	return Report{
		NodeId: n.nodeId,
		Sync:   joules(n.spentSync, CurrentRx),
		Tx:     joules(n.spentTx, CurrentTx),
		Idle:   joules(n.spentIdle, CurrentIdle),
		Sense:  joules(n.spentSense, CurrentSense),
	}
}

func joules(d time.Duration, current float64) float64 {
	return Volts * current * d.Seconds()
}
