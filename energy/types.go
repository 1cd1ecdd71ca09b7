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

// Package energy accounts for the radio energy a node spends during the
// joining phase: listening for EBs while unsynchronized, transmitting EBs
// once promoted to advertiser, sitting idle, and channel-sensing under the
// ECV/ECH allocators.
package energy

import "github.com/tsch-join/joinsim/types"

// Electrical model of the radio, matched to the reference joining-phase
// simulator's constants.
const (
	Volts        float64 = 3.7
	CurrentRx    float64 = 0.02     // amps, receiving/synchronizing
	CurrentTx    float64 = 0.024    // amps, transmitting an EB
	CurrentIdle  float64 = 1.3e-6   // amps, radio idle/off
	CurrentSense float64 = CurrentRx // channel sensing costs the same as Rx
)

// Report is the per-node energy breakdown in joules, kept as first-class
// instrumentation instead of being discarded after the network total is
// computed.
type Report struct {
	NodeId types.NodeId
	Sync   float64 // spent listening for EBs before joining
	Tx     float64 // spent transmitting EBs as an advertiser
	Idle   float64 // spent powered but otherwise inactive
	Sense  float64 // spent channel-sensing (ECV/ECH only)
}

// Total returns the sum of the node's energy components.
func (r Report) Total() float64 {
	return r.Sync + r.Tx + r.Idle + r.Sense
}
