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
	"sort"
	"time"

	"github.com/tsch-join/joinsim/logger"
	"github.com/tsch-join/joinsim/types"
)

// Analyser tracks per-node energy accumulation across a joining-phase run
// and produces both per-node and network-wide summaries.
type Analyser struct {
	nodes map[types.NodeId]*nodeEnergy
}

// NewAnalyser creates an empty Analyser.
func NewAnalyser() *Analyser {
	return &Analyser{nodes: make(map[types.NodeId]*nodeEnergy)}
}

// AddNode registers a node for energy accounting. exempt marks a PAN
// coordinator that is not billed for sync/idle/sense time under the active
// scheduling method.
func (a *Analyser) AddNode(nodeId types.NodeId, exempt bool) {
	if _, ok := a.nodes[nodeId]; ok {
		return
	}
	a.nodes[nodeId] = newNodeEnergy(nodeId, exempt)
}

func (a *Analyser) get(nodeId types.NodeId) *nodeEnergy {
	n, ok := a.nodes[nodeId]
	if !ok {
		logger.Panicf("energy: unknown node %v", nodeId)
	}
	return n
}

// AddSync accounts d of EB-listening time against nodeId.
func (a *Analyser) AddSync(nodeId types.NodeId, d time.Duration) {
	a.get(nodeId).AddSync(d)
}

// AddTx accounts d of EB-transmission time against nodeId.
func (a *Analyser) AddTx(nodeId types.NodeId, d time.Duration) {
	a.get(nodeId).AddTx(d)
}

// AddIdle accounts d of idle time against nodeId.
func (a *Analyser) AddIdle(nodeId types.NodeId, d time.Duration) {
	a.get(nodeId).AddIdle(d)
}

// AddSense accounts d of channel-sensing time against nodeId.
func (a *Analyser) AddSense(nodeId types.NodeId, d time.Duration) {
	a.get(nodeId).AddSense(d)
}

// Reports returns the per-node energy breakdown, ordered by node id.
func (a *Analyser) Reports() []Report {
	ids := make([]types.NodeId, 0, len(a.nodes))
	for id := range a.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	reports := make([]Report, 0, len(ids))
	for _, id := range ids {
		reports = append(reports, a.nodes[id].report())
	}
	return reports
}

// Report returns the single node's energy breakdown.
func (a *Analyser) Report(nodeId types.NodeId) Report {
	return a.get(nodeId).report()
}

// NetworkTotal sums the Total() of every node's report, the aggregate energy
// figure of the joining phase.
func (a *Analyser) NetworkTotal() float64 {
	total := 0.0
	for _, r := range a.Reports() {
		total += r.Total()
	}
	return total
}
