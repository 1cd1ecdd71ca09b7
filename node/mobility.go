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
	"math"
	"time"

	"github.com/tsch-join/joinsim/types"
)

// Random Waypoint Model speed bounds, in meters/second. Pause time is zero:
// a node picks a new destination and speed the instant it arrives.
const (
	minSpeed = 0.1
	maxSpeed = 5.0
)

// move is one leg of a node's Random Waypoint path: a straight-line segment
// from startPos at startT to endPos, covered at a constant speed.
type move struct {
	startPos types.Position
	startT   time.Duration
	endPos   types.Position
	speed    float64
}

func (m *move) endTime() time.Duration {
	if m.speed <= 0 {
		return m.startT
	}
	d := distance(m.startPos, m.endPos)
	return m.startT + time.Duration(d/m.speed*float64(time.Second))
}

func (m *move) positionAt(t time.Duration) types.Position {
	end := m.endTime()
	if end <= m.startT {
		return m.endPos
	}
	frac := float64(t-m.startT) / float64(end-m.startT)
	if frac > 1 {
		frac = 1
	}
	return types.Position{
		X: m.startPos.X + frac*(m.endPos.X-m.startPos.X),
		Y: m.startPos.Y + frac*(m.endPos.Y-m.startPos.Y),
	}
}

// Position evaluates n's location at time t: the initial position before
// boot, or a lazily-advanced chain of Random Waypoint legs afterward.
func (n *Node) Position(t time.Duration) types.Position {
	if !n.isMobile {
		return n.initialPosition
	}
	if t < n.bootTime {
		return n.initialPosition
	}
	if n.currentMove == nil {
		n.currentMove = n.newMove(n.initialPosition, n.bootTime)
	}
	for t >= n.currentMove.endTime() {
		next := n.newMove(n.currentMove.endPos, n.currentMove.endTime())
		if next.endTime() <= n.currentMove.endTime() {
			// Degenerate (zero-distance) leg: avoid an infinite loop and
			// just return the stationary point.
			n.currentMove = next
			break
		}
		n.currentMove = next
	}
	return n.currentMove.positionAt(t)
}

// newMove draws the next Random Waypoint leg starting at startPos/startT: a
// uniformly random destination distinct from startPos, at a uniform speed
// in [minSpeed, maxSpeed).
func (n *Node) newMove(startPos types.Position, startT time.Duration) *move {
	props := n.group.properties
	var end types.Position
	for {
		x, y := n.group.streams.NewWaypoint(props.AreaWidth, props.AreaHeight)
		end = types.Position{X: x, Y: y}
		if end != startPos {
			break
		}
	}
	speed := n.group.streams.NewSpeed(minSpeed, maxSpeed)
	return &move{startPos: startPos, startT: startT, endPos: end, speed: speed}
}

func distance(a, b types.Position) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
