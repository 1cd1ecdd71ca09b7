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
	"sort"
	"time"

	"github.com/tsch-join/joinsim/allocator"
	"github.com/tsch-join/joinsim/energy"
	"github.com/tsch-join/joinsim/logger"
	"github.com/tsch-join/joinsim/node"
	"github.com/tsch-join/joinsim/prng"
	"github.com/tsch-join/joinsim/types"
)

// Option configures a Simulator at construction time.
type Option func(*Simulator)

// WithSeed fixes the root seed of the Simulator's internal PRNG streams.
func WithSeed(seed int64) Option {
	return func(s *Simulator) { s.streams = prng.New(seed) }
}

// WithRandSource injects an already-constructed set of PRNG streams,
// letting a caller share or pre-seed randomness across simulator instances.
func WithRandSource(streams *prng.Streams) Option {
	return func(s *Simulator) { s.streams = streams }
}

// Simulator runs the joining phase of a TSCH network to convergence over
// one NodeGroup and EB-scheduling method.
type Simulator struct {
	group   *node.Group
	cfg     Config
	grid    *allocator.Grid
	streams *prng.Streams
	energy  *energy.Analyser

	allocations      map[types.NodeId]map[int]int // advSubslotIdx -> channelOffset
	joined           map[types.NodeId]bool
	advertisers      map[types.NodeId]bool
	unjoined         map[types.NodeId]bool
	syncASN          map[types.NodeId]int64
	ebTxCounter      map[types.NodeId]int
	scanStartTime    map[types.NodeId]time.Duration
	clockDriftPPM    map[types.NodeId]float64
	haveDrift        map[types.NodeId]bool
	sensingCell      map[types.NodeId]allocator.Cell
	numSlotsSensed   map[types.NodeId]int
	fallbackAssigned map[types.NodeId]bool

	slot0Start        time.Duration
	multislotframeIdx int64
	formationASN      int64
	startingI         int
	startingJ         int
	networkTime       time.Duration
	lastCaptureTime   time.Duration

	executed       bool
	energyComputed bool
}

// New validates cfg against group and constructs a Simulator, applying any
// options (e.g. WithSeed) after defaulting to a time-based seed.
func New(group *node.Group, cfg Config, opts ...Option) (*Simulator, error) {
	if err := cfg.validate(group); err != nil {
		return nil, err
	}

	panc := group.PANCoordinator()
	numFFDs := group.NumFFDs()

	dataRate := group.Properties().DataRate
	grid, err := allocator.NewGrid(cfg.Method, cfg.SlotframeLength, cfg.EBI, cfg.NumChannels, numFFDs,
		subslotsFor(cfg, dataRate), dataRate, cfg.EBLength, cfg.Template.TxOffset(), cfg.ATPEnabled)
	if err != nil {
		return nil, configErrorf("%s", err)
	}

	if allocator.RequiresInjectivity(cfg.Method) {
		ffds := ffdIds(group, isEnhancedMethod(cfg.Method))
		if err := allocator.ValidateInjective(grid, ffds, func(id types.NodeId) types.MacAddress {
			n, _ := group.Node(id)
			return n.MacAddress()
		}); err != nil {
			return nil, configErrorf("%s", err)
		}
	}

	if !grid.Coprime() {
		logger.Warnf("simulator: slots-in-multislotframe (%d) and channel count (%d) are not coprime",
			grid.SlotsInMs, cfg.NumChannels)
	}

	s := &Simulator{
		group:            group,
		cfg:              cfg,
		grid:             grid,
		streams:          prng.New(0),
		energy:           energy.NewAnalyser(),
		allocations:      make(map[types.NodeId]map[int]int),
		joined:           make(map[types.NodeId]bool),
		advertisers:      make(map[types.NodeId]bool),
		unjoined:         make(map[types.NodeId]bool),
		syncASN:          make(map[types.NodeId]int64),
		ebTxCounter:      make(map[types.NodeId]int),
		scanStartTime:    make(map[types.NodeId]time.Duration),
		clockDriftPPM:    make(map[types.NodeId]float64),
		haveDrift:        make(map[types.NodeId]bool),
		sensingCell:      make(map[types.NodeId]allocator.Cell),
		numSlotsSensed:   make(map[types.NodeId]int),
		fallbackAssigned: make(map[types.NodeId]bool),
		slot0Start:       panc.BootTime(),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, n := range group.Nodes() {
		s.energy.AddNode(n.Id(), n.IsPANCoordinator() && cfg.Method.EnergyExempt())
		if n.IsPANCoordinator() {
			continue
		}
		s.unjoined[n.Id()] = true
		s.scanStartTime[n.Id()] = n.BootTime()
	}

	return s, nil
}

// subslotsFor computes how many subslots an advertisement slot partitions
// into under ATP: the timeslot length divided by the length of one subslot
// (tsTxOffset plus the EB's own on-air time at the group's data rate),
// mirroring the reference's mac_ts_timeslot_length // subslot_length. ATP
// disabled always yields a single, unpartitioned subslot.
func subslotsFor(cfg Config, dataRate float64) int {
	if !cfg.ATPEnabled {
		return 1
	}
	tEB := time.Duration((float64(cfg.EBLength)*8+48) / dataRate * float64(time.Second))
	subslotLength := cfg.Template.TxOffset() + tEB
	if subslotLength <= 0 {
		return 1
	}
	n := int(cfg.Template.TimeslotLength() / subslotLength)
	if n < 1 {
		n = 1
	}
	return n
}

func ffdIds(group *node.Group, excludeCoordinator bool) []types.NodeId {
	ids := make([]types.NodeId, 0, group.Size())
	for _, n := range group.Nodes() {
		if n.Type() != types.FFD {
			continue
		}
		if excludeCoordinator && n.IsPANCoordinator() {
			continue
		}
		ids = append(ids, n.Id())
	}
	return ids
}

func (s *Simulator) allocate(id types.NodeId, cell allocator.Cell) {
	m, ok := s.allocations[id]
	if !ok {
		m = make(map[int]int)
		s.allocations[id] = m
	}
	m[cell.AdvSubslotIdx] = cell.ChannelOffset
}

func (s *Simulator) clearAllocation(id types.NodeId) {
	delete(s.allocations, id)
}

func (s *Simulator) allocationAt(id types.NodeId, advSubslotIdx int) (int, bool) {
	m, ok := s.allocations[id]
	if !ok {
		return 0, false
	}
	ch, ok := m[advSubslotIdx]
	return ch, ok
}

// advertiserChannelOffset returns the channel offset advId holds at
// advSubslotIdx, special-casing ECV/ECH where the PAN coordinator holds
// offset 0 on every advertisement subslot rather than a fixed allocation.
func (s *Simulator) advertiserChannelOffset(advId types.NodeId, advSubslotIdx int) (int, bool) {
	if s.cfg.Method.UsesSensing() {
		if panc := s.group.PANCoordinator(); panc != nil && panc.Id() == advId {
			return 0, true
		}
	}
	return s.allocationAt(advId, advSubslotIdx)
}

func (s *Simulator) sortedUnjoined() []types.NodeId {
	ids := make([]types.NodeId, 0, len(s.unjoined))
	for id := range s.unjoined {
		ids = append(ids, id)
	}
	sortNodeIds(ids)
	return ids
}

func (s *Simulator) sortedAdvertisers() []types.NodeId {
	ids := make([]types.NodeId, 0, len(s.advertisers))
	for id := range s.advertisers {
		ids = append(ids, id)
	}
	sortNodeIds(ids)
	return ids
}

func sortNodeIds(ids []types.NodeId) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

func (s *Simulator) driftFor(id types.NodeId) float64 {
	if d, ok := s.haveDrift[id]; ok && d {
		return s.clockDriftPPM[id]
	}
	d := s.streams.NewClockDriftPPM(30)
	s.clockDriftPPM[id] = d
	s.haveDrift[id] = true
	return d
}
