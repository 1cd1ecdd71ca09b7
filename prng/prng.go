// Copyright (c) 2024, The OTNS Authors.
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

// Package prng provides the seedable, per-concern random streams used by a
// joining-phase run: mobility waypoints, shadowing, clock drift, EB
// fallback-cell selection, and MAC-suffix generation. Keeping one *rand.Rand
// per concern means enabling or disabling one stochastic feature never
// perturbs the sequence drawn by another.
package prng

import (
	"math/rand"
	"time"
)

// Streams is a bundle of independent PRNG sources seeded off one root seed.
// A zero Streams is not usable; construct with New.
type Streams struct {
	mobility    *rand.Rand
	shadowing   *rand.Rand
	clockDrift  *rand.Rand
	fallback    *rand.Rand
	macSuffix   *rand.Rand
	txJitter    *rand.Rand
	rootSeed    int64
}

// New creates a Streams seeded from rootSeed. A rootSeed of 0 derives a
// time-based seed instead, for callers that don't need reproducibility.
func New(rootSeed int64) *Streams {
	if rootSeed == 0 {
		rootSeed = time.Now().UnixNano()
	}
	root := rand.New(rand.NewSource(rootSeed))

	return &Streams{
		rootSeed:   rootSeed,
		mobility:   rand.New(rand.NewSource(rootSeed + int64(root.Intn(1e9)))),
		shadowing:  rand.New(rand.NewSource(rootSeed + int64(root.Intn(1e9)))),
		clockDrift: rand.New(rand.NewSource(rootSeed + int64(root.Intn(1e9)))),
		fallback:   rand.New(rand.NewSource(rootSeed + int64(root.Intn(1e9)))),
		macSuffix:  rand.New(rand.NewSource(rootSeed + int64(root.Intn(1e9)))),
		txJitter:   rand.New(rand.NewSource(rootSeed + int64(root.Intn(1e9)))),
	}
}

// RootSeed returns the seed the Streams was constructed from.
func (s *Streams) RootSeed() int64 {
	return s.rootSeed
}

// NewSpeed draws a Random Waypoint Model speed in [minSpeed, maxSpeed).
func (s *Streams) NewSpeed(minSpeed, maxSpeed float64) float64 {
	return minSpeed + s.mobility.Float64()*(maxSpeed-minSpeed)
}

// NewWaypoint draws a uniform random point within a width x height area.
func (s *Streams) NewWaypoint(width, height float64) (x, y float64) {
	return s.mobility.Float64() * width, s.mobility.Float64() * height
}

// NewShadowing draws a log-normal shadowing term from N(0, sigma), rejecting
// samples outside [-clamp, clamp] and redrawing, matching the reference
// propagation model's truncated normal.
func (s *Streams) NewShadowing(sigma, clamp float64) float64 {
	for {
		x := s.shadowing.NormFloat64() * sigma
		if x >= -clamp && x <= clamp {
			return x
		}
	}
}

// NewClockDriftPPM draws a one-time clock drift in parts-per-million,
// uniformly within +/-maxPPM, assigned once per node at first use.
func (s *Streams) NewClockDriftPPM(maxPPM float64) float64 {
	return (s.clockDrift.Float64()*2 - 1) * maxPPM
}

// NewFallbackChannelOffset draws a uniformly random channel offset in
// [0, numChannels) for the ECV/ECH allocators' random-fallback path.
func (s *Streams) NewFallbackChannelOffset(numChannels int) int {
	return s.fallback.Intn(numChannels)
}

// NewFallbackSubslot draws a uniformly random subslot index in [0, n) for
// the ECV/ECH allocators' random-fallback path.
func (s *Streams) NewFallbackSubslot(n int) int {
	return s.fallback.Intn(n)
}

// NewMacSuffix draws the three random bytes appended after the 00:8c:fa
// organizationally-assigned prefix when minting a new MAC address.
func (s *Streams) NewMacSuffix() [3]byte {
	var suffix [3]byte
	s.macSuffix.Read(suffix[:])
	return suffix
}

// NewTxJitter draws a uniform random transmission-start jitter within
// +/-maxAbs, applied once per beacon transmission against the nominal
// subslot-start-plus-macTsTxOffset time.
func (s *Streams) NewTxJitter(maxAbs time.Duration) time.Duration {
	return time.Duration((s.txJitter.Float64()*2 - 1) * float64(maxAbs))
}

// NewUnit draws a uniform random float in [0, 1), used wherever a bare
// probability draw is needed (e.g. boot-time sampling by an external
// scenario driver).
func (s *Streams) NewUnit() float64 {
	return s.mobility.Float64()
}
