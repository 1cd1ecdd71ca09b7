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

// Package types holds the small value types shared across the node,
// propagation, allocator, energy and driver packages.
package types

import "fmt"

// NodeId identifies a node within a NodeGroup. It doubles as the node's
// short address input to the static EB-schedule allocators.
type NodeId int

// NodeType distinguishes full-function devices, which can become EB
// advertisers, from reduced-function devices, which can only join.
type NodeType uint8

const (
	RFD NodeType = iota
	FFD
)

func (t NodeType) String() string {
	switch t {
	case FFD:
		return "FFD"
	case RFD:
		return "RFD"
	default:
		return fmt.Sprintf("NodeType(%d)", uint8(t))
	}
}

// MacAddress is a locally-assigned, collision-checked 48-bit address of the
// form 00-8c-fa-xx-xx-xx, in the style of the group's MAC allocator.
type MacAddress [6]byte

func (m MacAddress) String() string {
	return fmt.Sprintf("%02x-%02x-%02x-%02x-%02x-%02x", m[0], m[1], m[2], m[3], m[4], m[5])
}

// Words returns the address as three big-endian 16-bit words, the input
// format the SAX-hash based allocators operate on (mirroring netaddr.EUI.words
// for a 48-bit MAC in the reference implementation).
func (m MacAddress) Words() [3]uint16 {
	return [3]uint16{
		uint16(m[0])<<8 | uint16(m[1]),
		uint16(m[2])<<8 | uint16(m[3]),
		uint16(m[4])<<8 | uint16(m[5]),
	}
}

// Position is a 2-D coordinate in meters within a NodeGroup's area.
type Position struct {
	X, Y float64
}

// EBSchedulingMethod selects which of the nine EB-cell allocation policies
// a NodeGroup's joining-phase simulator uses.
type EBSchedulingMethod uint8

const (
	CFASV EBSchedulingMethod = iota
	CFASH
	ECFASV
	ECFASH
	MacBasedAS
	EnhancedMacBasedAS
	ECV
	ECH
	Minimal6TiSCH
)

func (m EBSchedulingMethod) String() string {
	switch m {
	case CFASV:
		return "CFASV"
	case CFASH:
		return "CFASH"
	case ECFASV:
		return "ECFASV"
	case ECFASH:
		return "ECFASH"
	case MacBasedAS:
		return "MAC_BASED_AS"
	case EnhancedMacBasedAS:
		return "EMAC_BASED_AS"
	case ECV:
		return "ECV"
	case ECH:
		return "ECH"
	case Minimal6TiSCH:
		return "Minimal6TiSCH"
	default:
		return fmt.Sprintf("EBSchedulingMethod(%d)", uint8(m))
	}
}

// EnergyExempt reports whether a PAN coordinator is exempt from EB-sensing /
// EB-listening energy accounting under this scheduling method, matching the
// reference's exemption set for the "enhanced" and sensing-based methods.
func (m EBSchedulingMethod) EnergyExempt() bool {
	switch m {
	case ECV, ECH, ECFASV, ECFASH, EnhancedMacBasedAS:
		return true
	default:
		return false
	}
}

// UsesSensing reports whether a method allocates EB cells by channel
// sensing rather than by a static hash of node identity.
func (m EBSchedulingMethod) UsesSensing() bool {
	return m == ECV || m == ECH
}
