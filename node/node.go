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

// Config describes a node to be added to a Group.
type Config struct {
	Id                   types.NodeId
	Position             types.Position
	IsMobile             bool
	Type                 types.NodeType
	TxPower              int // dBm
	RadioSensitivity     int // dBm
	BootTime             time.Duration
	ChannelSwitchingTime time.Duration
}

// Node is one device in a Group: a fixed or Random-Waypoint-mobile position,
// a type (FFD/RFD), radio parameters, and a group-assigned MAC address.
type Node struct {
	id                   types.NodeId
	initialPosition      types.Position
	isMobile             bool
	nodeType             types.NodeType
	txPower              int
	radioSensitivity     int
	bootTime             time.Duration
	channelSwitchingTime time.Duration
	mac                  types.MacAddress

	group       *Group
	currentMove *move
}

// NewNode validates cfg and adds a new Node to group.
func NewNode(group *Group, cfg Config) (*Node, error) {
	if cfg.Id < 0 {
		return nil, errors.New("node: id must be non-negative")
	}
	if !withinArea(cfg.Position, group.properties) {
		return nil, errors.Errorf("node: initial position %v lies outside the group's area", cfg.Position)
	}
	if cfg.BootTime < 0 {
		return nil, errors.New("node: boot time must be non-negative")
	}
	if cfg.ChannelSwitchingTime < 0 {
		return nil, errors.New("node: channel switching time must be non-negative")
	}

	n := &Node{
		id:                   cfg.Id,
		initialPosition:      cfg.Position,
		isMobile:             cfg.IsMobile,
		nodeType:             cfg.Type,
		txPower:              cfg.TxPower,
		radioSensitivity:     cfg.RadioSensitivity,
		bootTime:             cfg.BootTime,
		channelSwitchingTime: cfg.ChannelSwitchingTime,
		group:                group,
	}
	n.mac = group.assignMacAddress()

	if err := group.addNode(n); err != nil {
		return nil, err
	}
	return n, nil
}

func withinArea(p types.Position, props Properties) bool {
	return p.X >= 0 && p.X <= props.AreaWidth && p.Y >= 0 && p.Y <= props.AreaHeight
}

func (n *Node) Id() types.NodeId                      { return n.id }
func (n *Node) Type() types.NodeType                  { return n.nodeType }
func (n *Node) IsMobile() bool                        { return n.isMobile }
func (n *Node) TxPower() int                           { return n.txPower }
func (n *Node) RadioSensitivity() int                  { return n.radioSensitivity }
func (n *Node) BootTime() time.Duration                { return n.bootTime }
func (n *Node) ChannelSwitchingTime() time.Duration    { return n.channelSwitchingTime }
func (n *Node) MacAddress() types.MacAddress           { return n.mac }

// IsPANCoordinator reports whether n is its group's PAN coordinator.
func (n *Node) IsPANCoordinator() bool {
	return n.group.panCoordinator == n
}

// DistanceFromNode returns the Euclidean distance between n and other's
// positions at time t.
func (n *Node) DistanceFromNode(other *Node, t time.Duration) float64 {
	return n.DistanceFromPoint(other.Position(t), t)
}

// DistanceFromPoint returns the Euclidean distance between n's position at
// time t and p.
func (n *Node) DistanceFromPoint(p types.Position, t time.Duration) float64 {
	return distance(n.Position(t), p)
}
