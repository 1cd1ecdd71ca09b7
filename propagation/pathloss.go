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

// Package propagation implements the path-loss/shadowing model that
// converts a transmit power and distance into a received power, the
// propagation-delay approximation, and the frame-capture decision a
// scanning node applies across the candidate EBs it hears in a subslot.
package propagation

import (
	"math"
	"time"

	"github.com/tsch-join/joinsim/prng"
)

const (
	frequencyMHz     = 2400
	pathLossExponent = 40
	floorLoss        = 0 // no multi-floor attenuation modeled
	shadowingSigma   = 4
	shadowingClampDB = 11
)

// freeSpaceLossAt1m is Ld0 = 20*log10(f) - 28 from the reference ITU-R
// P.1238-style indoor model, evaluated once for the fixed 2400 MHz band.
var freeSpaceLossAt1m = 20*math.Log10(frequencyMHz) - 28

// ReceivedPower returns the received power in dBm for a transmitter at
// txPowerDbm, distanceMeters away, drawing a fresh log-normal shadowing
// sample from streams.
func ReceivedPower(txPowerDbm int, distanceMeters float64, streams *prng.Streams) float64 {
	shadowing := streams.NewShadowing(shadowingSigma, shadowingClampDB)
	return float64(txPowerDbm) - freeSpaceLossAt1m - pathLossExponent*math.Log10(distanceMeters) - floorLoss + shadowing
}

// DbmToMw converts a power in dBm to milliwatts, for additive interference
// summation.
func DbmToMw(dbm float64) float64 {
	return math.Pow(10, dbm/10)
}

// MwToDbm converts a summed power in milliwatts back to dBm.
func MwToDbm(mw float64) float64 {
	if mw <= 0 {
		return math.Inf(-1)
	}
	return 10 * math.Log10(mw)
}

// Delay approximates the propagation delay over distanceMeters as d*10/3
// nanoseconds (roughly d/c), truncated toward zero like the reference.
func Delay(distanceMeters float64) time.Duration {
	return time.Duration(math.Floor(distanceMeters*10/3)) * time.Nanosecond
}
