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

	"github.com/pkg/errors"

	"github.com/tsch-join/joinsim/node"
	"github.com/tsch-join/joinsim/prng"
	"github.com/tsch-join/joinsim/tsch"
	"github.com/tsch-join/joinsim/types"
)

// NodeSpec is the YAML-loadable description of one node within a
// ScenarioConfig's population: either a regular node or, with
// IsPANCoordinator set, the group's PAN coordinator.
type NodeSpec struct {
	Id                   types.NodeId   `yaml:"id"`
	X                    float64        `yaml:"x"`
	Y                    float64        `yaml:"y"`
	IsPANCoordinator     bool           `yaml:"isPanCoordinator"`
	IsMobile             bool           `yaml:"isMobile"`
	Type                 types.NodeType `yaml:"type"` // 0 = RFD, 1 = FFD
	TxPower              int            `yaml:"txPower"`
	RadioSensitivity     int            `yaml:"radioSensitivity"`
	BootTime             int64          `yaml:"bootTimeNs"`
	ChannelSwitchingTime int64          `yaml:"channelSwitchingTimeNs"`
}

// ScenarioConfig is the single YAML-loadable surface that a batch driver
// parses once and feeds into NodeGroupProperties/TimeslotTemplate/Config
// construction: the grouping method, slotframe/EBI/channel/EB-length/
// scan-duration/ATP settings, the timeslot template, the group-wide
// properties, and the node population, per spec.md §6's configuration
// inputs.
type ScenarioConfig struct {
	Method             types.EBSchedulingMethod    `yaml:"method"`
	Template           tsch.TimeslotTemplateConfig `yaml:"template"`
	GroupProperties    node.Properties             `yaml:"groupProperties"`
	SlotframeLength    int                         `yaml:"slotframeLength"`
	EBLength           int                         `yaml:"ebLength"`
	NumChannels        int                         `yaml:"numChannels"`
	ScanDuration       int64                       `yaml:"scanDurationNs"`
	EBI                int                         `yaml:"ebi"`
	ATPEnabled         bool                        `yaml:"atpEnabled"`
	MaxMultislotframes int64                       `yaml:"maxMultislotframes"`

	Nodes []NodeSpec `yaml:"nodes"`
}

// BuildGroup materializes the NodeGroup described by sc's GroupProperties
// and Nodes, drawing MAC addresses from streams. Exactly one NodeSpec must
// have IsPANCoordinator set.
func (sc ScenarioConfig) BuildGroup(streams *prng.Streams) (*node.Group, error) {
	var panCoordinators int
	for _, ns := range sc.Nodes {
		if ns.IsPANCoordinator {
			panCoordinators++
		}
	}
	if panCoordinators != 1 {
		return nil, errors.Errorf("simulator: scenario must name exactly one PAN coordinator, found %d", panCoordinators)
	}

	g := node.NewGroup(sc.GroupProperties, streams)
	for _, ns := range sc.Nodes {
		pos := types.Position{X: ns.X, Y: ns.Y}
		if ns.IsPANCoordinator {
			if _, err := node.NewPANCoordinator(g, node.PANCoordinatorConfig{
				Id:                   ns.Id,
				Position:             pos,
				TxPower:              ns.TxPower,
				RadioSensitivity:     ns.RadioSensitivity,
				BootTime:             time.Duration(ns.BootTime),
				ChannelSwitchingTime: time.Duration(ns.ChannelSwitchingTime),
			}); err != nil {
				return nil, err
			}
			continue
		}
		if _, err := node.NewNode(g, node.Config{
			Id:                   ns.Id,
			Position:             pos,
			IsMobile:             ns.IsMobile,
			Type:                 ns.Type,
			TxPower:              ns.TxPower,
			RadioSensitivity:     ns.RadioSensitivity,
			BootTime:             time.Duration(ns.BootTime),
			ChannelSwitchingTime: time.Duration(ns.ChannelSwitchingTime),
		}); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Config derives the simulator Config sc describes, given the
// TimeslotTemplate built from sc.Template (NewTimeslotTemplate is the
// caller's responsibility, since construction can fail independently of the
// rest of the scenario).
func (sc ScenarioConfig) Config(template *tsch.TimeslotTemplate) Config {
	return Config{
		Method:             sc.Method,
		Template:           template,
		SlotframeLength:    sc.SlotframeLength,
		EBLength:           sc.EBLength,
		NumChannels:        sc.NumChannels,
		ScanDuration:       time.Duration(sc.ScanDuration),
		EBI:                sc.EBI,
		ATPEnabled:         sc.ATPEnabled,
		MaxMultislotframes: sc.MaxMultislotframes,
	}
}
