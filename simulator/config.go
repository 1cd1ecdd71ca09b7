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

// Package simulator drives the joining phase of a TSCH network to
// convergence: it advances the multi-slotframe/slotframe/subslot grid,
// attempts capture for every unjoined node, promotes newly-joined FFDs to
// advertisers with a freshly allocated EB schedule, and reduces the
// resulting per-node bookkeeping to a formation time and an energy total.
package simulator

import (
	"time"

	"github.com/tsch-join/joinsim/node"
	"github.com/tsch-join/joinsim/tsch"
	"github.com/tsch-join/joinsim/types"
)

// Config is the full set of construction parameters for a Simulator,
// mirroring the reference JoiningPhaseSimulator's constructor arguments.
type Config struct {
	Method          types.EBSchedulingMethod `yaml:"method"`
	Template        *tsch.TimeslotTemplate   `yaml:"-"`
	SlotframeLength int                      `yaml:"slotframeLength"`
	EBLength        int                      `yaml:"ebLength"` // bytes, [1,127]
	NumChannels     int                      `yaml:"numChannels"`
	ScanDuration    time.Duration            `yaml:"scanDuration"`
	EBI             int                      `yaml:"ebi"` // multi-slotframe length, in slotframes
	ATPEnabled      bool                     `yaml:"atpEnabled"`

	// MaxMultislotframes bounds how many multi-slotframes the driver will
	// advance through before giving up; zero means unbounded. Exceeding it
	// is reported as a configuration error, not a retriable condition.
	MaxMultislotframes int64 `yaml:"maxMultislotframes"`
}

func (c Config) validate(group *node.Group) error {
	if group.Size() == 0 {
		return configErrorf("node group is empty")
	}
	if group.PANCoordinator() == nil {
		return configErrorf("node group has no PAN coordinator")
	}
	if c.Template == nil {
		return configErrorf("timeslot template is required")
	}
	if c.SlotframeLength <= 0 {
		return configErrorf("slotframe length must be positive")
	}
	if c.EBLength < 1 || c.EBLength > 127 {
		return configErrorf("EB length must be in [1, 127] bytes")
	}
	if c.NumChannels <= 0 {
		return configErrorf("number of channels must be positive")
	}
	if c.ScanDuration <= 0 {
		return configErrorf("scan duration must be positive")
	}
	if c.EBI <= 0 {
		return configErrorf("EBI must be positive")
	}
	if c.Method == types.Minimal6TiSCH && c.ATPEnabled {
		return configErrorf("Minimal6TiSCH does not support advertisement-slot partitioning")
	}
	if c.MaxMultislotframes < 0 {
		return configErrorf("max multislotframes must not be negative")
	}
	return nil
}

func isEnhancedMethod(m types.EBSchedulingMethod) bool {
	switch m {
	case types.ECFASV, types.ECFASH, types.EnhancedMacBasedAS, types.ECV, types.ECH:
		return true
	default:
		return false
	}
}
