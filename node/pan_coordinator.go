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

package node

import (
	"time"

	"github.com/pkg/errors"

	"github.com/tsch-join/joinsim/types"
)

// PANCoordinatorConfig describes the PAN coordinator to create: a fixed,
// non-mobile FFD, booted at BootTime (the multi-slotframe's slot 0 start).
type PANCoordinatorConfig struct {
	Id                   types.NodeId
	Position             types.Position
	TxPower              int
	RadioSensitivity     int
	BootTime             time.Duration
	ChannelSwitchingTime time.Duration
}

// NewPANCoordinator creates the group's PAN coordinator. It fails if the
// group already has one.
func NewPANCoordinator(group *Group, cfg PANCoordinatorConfig) (*Node, error) {
	if group.panCoordinator != nil {
		return nil, errors.New("node: node group already has a PAN coordinator")
	}

	n, err := NewNode(group, Config{
		Id:                   cfg.Id,
		Position:             cfg.Position,
		IsMobile:             false,
		Type:                 types.FFD,
		TxPower:              cfg.TxPower,
		RadioSensitivity:     cfg.RadioSensitivity,
		BootTime:             cfg.BootTime,
		ChannelSwitchingTime: cfg.ChannelSwitchingTime,
	})
	if err != nil {
		return nil, err
	}

	if err := group.setPANCoordinator(n); err != nil {
		return nil, err
	}
	return n, nil
}
