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

package allocator

import (
	"github.com/pkg/errors"

	"github.com/tsch-join/joinsim/types"
)

// cellIndex returns the raw hash input a static allocator maps onto a cell:
// the node id for the CFAS family, the SAX hash of its MAC for the
// MAC-based family.
func cellIndex(g *Grid, nodeId types.NodeId, mac types.MacAddress) int {
	switch g.Method {
	case types.MacBasedAS, types.EnhancedMacBasedAS:
		return int(sax16(mac))
	default:
		return int(nodeId)
	}
}

// AllocateStatic computes the (subslot, channel-offset) cell for an
// advertiser under one of the static allocators: CFASV/CFASH/ECFASV/ECFASH/
// MAC_BASED_AS/EMAC_BASED_AS. Vertical methods vary channel offset fastest;
// horizontal methods vary subslot fastest.
func AllocateStatic(g *Grid, nodeId types.NodeId, mac types.MacAddress) (Cell, error) {
	chSpace := g.ChannelSpace()
	if chSpace <= 0 || g.TotalAdvSubslots <= 0 {
		return Cell{}, errors.New("allocator: degenerate grid for static allocation")
	}
	space := g.TotalAdvSubslots * chSpace
	raw := cellIndex(g, nodeId, mac) % space
	if raw < 0 {
		raw += space
	}

	var advSubslot, chOffset int
	switch g.Method {
	case types.CFASV, types.ECFASV, types.MacBasedAS, types.EnhancedMacBasedAS:
		advSubslot = raw / chSpace
		chOffset = raw % chSpace
	case types.CFASH, types.ECFASH:
		advSubslot = raw % g.TotalAdvSubslots
		chOffset = raw / g.TotalAdvSubslots
	default:
		return Cell{}, errors.Errorf("allocator: %v is not a static allocation method", g.Method)
	}

	if isEnhanced(g.Method) {
		chOffset++ // offset 0 reserved for the PAN coordinator
	}
	return Cell{AdvSubslotIdx: advSubslot, ChannelOffset: chOffset}, nil
}

// ValidateInjective checks that the static id/MAC-hash mapping is injective
// across ffds, as required for collision-free coverage by the CFAS and
// ECFAS families (see RequiresInjectivity). The MAC-based families are not
// checked at construction: their SAX-hash mapping carries no
// collision-freedom guarantee.
func ValidateInjective(g *Grid, ffds []types.NodeId, macOf func(types.NodeId) types.MacAddress) error {
	seen := make(map[Cell]types.NodeId, len(ffds))
	for _, id := range ffds {
		cell, err := AllocateStatic(g, id, macOf(id))
		if err != nil {
			return err
		}
		if prior, ok := seen[cell]; ok {
			return errors.Errorf("allocator: nodes %d and %d collide on cell %+v", prior, id, cell)
		}
		seen[cell] = id
	}
	return nil
}

// RequiresInjectivity reports whether method must be validated for a
// collision-free static mapping at construction time.
func RequiresInjectivity(method types.EBSchedulingMethod) bool {
	switch method {
	case types.CFASV, types.CFASH, types.ECFASV, types.ECFASH:
		return true
	default:
		return false
	}
}
