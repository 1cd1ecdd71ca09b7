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

// Package node models the nodes of a TSCH network under formation: their
// identity, mobility, radio parameters, and the NodeGroup that owns them,
// assigns their MAC addresses, and exposes the network time their mobility
// queries are evaluated against.
package node

import (
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/tsch-join/joinsim/prng"
	"github.com/tsch-join/joinsim/types"
)

// Properties are the group-wide parameters every node in a NodeGroup shares:
// the PHY data rate and the dimensions of the area nodes move within.
type Properties struct {
	DataRate   float64 `yaml:"dataRate"`   // bits per second
	AreaWidth  float64 `yaml:"areaWidth"`  // meters
	AreaHeight float64 `yaml:"areaHeight"` // meters
}

// NewProperties validates and returns group-wide Properties.
func NewProperties(dataRate, areaWidth, areaHeight float64) (Properties, error) {
	if dataRate <= 0 {
		return Properties{}, errors.New("node group: data rate must be positive")
	}
	if areaWidth <= 0 || areaHeight <= 0 {
		return Properties{}, errors.New("node group: area dimensions must be positive")
	}
	return Properties{DataRate: dataRate, AreaWidth: areaWidth, AreaHeight: areaHeight}, nil
}

// Group owns a collection of nodes within a shared area, assigns their MAC
// addresses, enforces the group-level invariants (at most one PAN
// coordinator, unique ids, unique MAC addresses), and tracks the network
// time that mobility queries are evaluated against. A Group and its Nodes
// live in the same package; the unexported fields that the reference
// implementation mutated across class boundaries are simply package-private
// here, which is the direct Go equivalent of the "friend" access it used.
type Group struct {
	properties     Properties
	streams        *prng.Streams
	nodes          map[types.NodeId]*Node
	order          []types.NodeId
	panCoordinator *Node
	macsInUse      map[types.MacAddress]bool
	time           time.Duration
}

// NewGroup creates an empty Group over the given properties, drawing its
// mobility and MAC-suffix randomness from streams.
func NewGroup(properties Properties, streams *prng.Streams) *Group {
	return &Group{
		properties: properties,
		streams:    streams,
		nodes:      make(map[types.NodeId]*Node),
		macsInUse:  make(map[types.MacAddress]bool),
	}
}

// Properties returns the group's shared parameters.
func (g *Group) Properties() Properties {
	return g.properties
}

// Size returns the number of nodes currently in the group.
func (g *Group) Size() int {
	return len(g.nodes)
}

// Node looks up a node by id.
func (g *Group) Node(id types.NodeId) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns every node in the group, ordered by id.
func (g *Group) Nodes() []*Node {
	ids := make([]types.NodeId, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	nodes := make([]*Node, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, g.nodes[id])
	}
	return nodes
}

// NumFFDs returns the number of full-function devices in the group,
// including the PAN coordinator if present.
func (g *Group) NumFFDs() int {
	n := 0
	for _, node := range g.nodes {
		if node.nodeType == types.FFD {
			n++
		}
	}
	return n
}

// PANCoordinator returns the group's PAN coordinator, or nil if none has
// been created yet.
func (g *Group) PANCoordinator() *Node {
	return g.panCoordinator
}

// Time returns the group's current network time.
func (g *Group) Time() time.Duration {
	return g.time
}

// SetTime advances the group's network time. Only the joining-phase driver
// calls this; mobility queries elsewhere only ever read it.
func (g *Group) SetTime(t time.Duration) {
	g.time = t
}

func (g *Group) addNode(n *Node) error {
	if _, exists := g.nodes[n.id]; exists {
		return errors.Errorf("node group: duplicate node id %d", n.id)
	}
	g.nodes[n.id] = n
	g.order = append(g.order, n.id)
	return nil
}

func (g *Group) setPANCoordinator(n *Node) error {
	if g.panCoordinator != nil {
		return errors.New("node group: a PAN coordinator already exists")
	}
	g.panCoordinator = n
	return nil
}

// assignMacAddress mints a locally-unique MAC address with the group's
// fixed 00-8c-fa OUI prefix and a random suffix, retrying on collision.
func (g *Group) assignMacAddress() types.MacAddress {
	for {
		suffix := g.streams.NewMacSuffix()
		mac := types.MacAddress{0x00, 0x8c, 0xfa, suffix[0], suffix[1], suffix[2]}
		if g.macsInUse[mac] {
			continue
		}
		g.macsInUse[mac] = true
		return mac
	}
}
