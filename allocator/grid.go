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

// Package allocator computes the multi-slotframe/slotframe/subslot grid and
// implements the nine EB-schedule allocation policies that map an
// advertising FFD onto one or more (advertisement-subslot, channel-offset)
// cells.
package allocator

import (
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/tsch-join/joinsim/types"
)

// Cell identifies one advertisement-subslot/channel-offset pair in the
// multi-slotframe EB schedule.
type Cell struct {
	AdvSubslotIdx int // 0-based, within [0, TotalAdvSubslots)
	ChannelOffset int
}

// Grid is the immutable time/channel geometry a joining-phase run schedules
// against: slotframe length, EBI, channel count, subslot partitioning, and
// the derived advertisement-slot layout for the chosen method family.
type Grid struct {
	Method             types.EBSchedulingMethod
	SlotframeLength    int
	EBI                int // multi-slotframe length, in slotframes
	NumChannels        int
	SubslotsPerAdvSlot int // 1 when ATP is disabled
	NumFFDs            int

	R                int // required advertisement slots per slotframe
	NumAdvSlotsInMs  int // R * EBI
	TotalAdvSubslots int // NumAdvSlotsInMs * SubslotsPerAdvSlot
	SlotsInMs        int // SlotframeLength * EBI

	TEB           time.Duration
	SubslotLength time.Duration
}

// NewGrid validates and computes the grid for method over the given
// parameters. dataRate is in bits/second, ebLength in bytes.
func NewGrid(method types.EBSchedulingMethod, slotframeLength, ebi, numChannels, numFFDs, subslotsPerAdvSlot int,
	dataRate float64, ebLength int, tsTxOffset time.Duration, atpEnabled bool) (*Grid, error) {

	if slotframeLength <= 0 {
		return nil, errors.New("allocator: slotframe length must be positive")
	}
	if ebi <= 0 {
		return nil, errors.New("allocator: EBI must be positive")
	}
	if numChannels <= 0 {
		return nil, errors.New("allocator: number of channels must be positive")
	}
	if method == types.Minimal6TiSCH && atpEnabled {
		return nil, errors.New("allocator: Minimal6TiSCH does not support advertisement-slot partitioning")
	}
	if isEnhanced(method) && numChannels < 2 && numFFDs > 1 {
		return nil, errors.New("allocator: enhanced scheduling methods require at least 2 channels when non-coordinator FFDs exist")
	}

	tEB := time.Duration((float64(ebLength)*8+48)/dataRate*float64(time.Second)) + 0
	subslotLength := tsTxOffset + tEB
	if !atpEnabled {
		subslotsPerAdvSlot = 1
	}

	g := &Grid{
		Method:             method,
		SlotframeLength:    slotframeLength,
		EBI:                ebi,
		NumChannels:        numChannels,
		SubslotsPerAdvSlot: subslotsPerAdvSlot,
		NumFFDs:            numFFDs,
		TEB:                tEB,
		SubslotLength:      subslotLength,
		SlotsInMs:          slotframeLength * ebi,
	}

	switch method {
	case types.ECV, types.ECH, types.Minimal6TiSCH:
		g.R = 1
	default:
		chSpace := numChannels
		numerator := numFFDs
		if isEnhanced(method) {
			chSpace = numChannels - 1
			numerator = numFFDs - 1
		}
		if numerator < 0 {
			numerator = 0
		}
		denom := chSpace * ebi * subslotsPerAdvSlot
		if denom <= 0 {
			return nil, errors.New("allocator: degenerate channel/subslot configuration")
		}
		g.R = int(math.Ceil(float64(numerator) / float64(denom)))
		if g.R < 1 {
			g.R = 1
		}
	}

	if g.R > slotframeLength {
		return nil, errors.Errorf("allocator: %d required advertisement slots exceed slotframe length %d", g.R, slotframeLength)
	}

	g.NumAdvSlotsInMs = g.R * ebi
	g.TotalAdvSubslots = g.NumAdvSlotsInMs * subslotsPerAdvSlot
	return g, nil
}

func isEnhanced(method types.EBSchedulingMethod) bool {
	switch method {
	case types.ECFASV, types.ECFASH, types.EnhancedMacBasedAS, types.ECV, types.ECH:
		return true
	default:
		return false
	}
}

// ChannelSpace returns the number of channel offsets this grid's method
// allocates over: NumChannels, or NumChannels-1 with offset 0 reserved for
// the PAN coordinator under the enhanced methods.
func (g *Grid) ChannelSpace() int {
	if isEnhanced(g.Method) {
		return g.NumChannels - 1
	}
	return g.NumChannels
}

// AdvSlotPosition returns the 0-based slot position, within the
// multi-slotframe, of the i-th advertisement slot (i in [0, NumAdvSlotsInMs)).
func (g *Grid) AdvSlotPosition(i int) int {
	return (i/g.R)*g.SlotframeLength + i%g.R
}

// AdvSlotOccurrenceInSlotframe returns the 0-based occurrence of the i-th
// advertisement slot within its own slotframe (used to compute ssn).
func (g *Grid) AdvSlotOccurrenceInSlotframe(i int) int {
	return i % g.R
}

// SSN computes the serial subslot number of subslot j within the
// advOccurrence-th advertisement slot of a slotframe: 0-based, reset at
// every slotframe boundary.
func (g *Grid) SSN(advOccurrence, j int) int {
	return advOccurrence*g.SubslotsPerAdvSlot + j
}

// ASN computes the Absolute Slot Number of advertisement-slot index i within
// the multi-slotframe numbered multislotframeIdx.
func (g *Grid) ASN(multislotframeIdx int64, i int) int64 {
	return multislotframeIdx*int64(g.SlotsInMs) + int64(g.AdvSlotPosition(i))
}

// Channel computes the hopped physical channel for asn/ssn/chOffset. ssn is
// only mixed in when the grid partitions advertisement slots into multiple
// subslots (ATP enabled).
func (g *Grid) Channel(asn int64, ssn int, chOffset int) int {
	n := int64(g.NumChannels)
	if g.SubslotsPerAdvSlot > 1 {
		return int(((asn+int64(ssn)+int64(chOffset))%n + n) % n)
	}
	return int(((asn+int64(chOffset))%n + n) % n)
}

// Coprime reports whether SlotsInMs and NumChannels share no common factor;
// construction logs (does not fail on) the coprimality warning when false.
func (g *Grid) Coprime() bool {
	return gcd(g.SlotsInMs, g.NumChannels) == 1
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
