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
	"strconv"
	"time"

	"github.com/tsch-join/joinsim/allocator"
	"github.com/tsch-join/joinsim/node"
	"github.com/tsch-join/joinsim/propagation"
	"github.com/tsch-join/joinsim/types"
)

// Execute runs the joining phase to convergence and returns the network
// formation time: the moment the last node synchronized to the network.
func (s *Simulator) Execute() (time.Duration, error) {
	if s.executed {
		return 0, operationErrorf("Execute has already run on this simulator")
	}

	panc := s.group.PANCoordinator()
	s.joined[panc.Id()] = true
	s.syncASN[panc.Id()] = 0
	s.ebTxCounter[panc.Id()] = 0
	s.networkTime = s.slot0Start
	s.group.SetTime(s.networkTime)

	s.advertisers[panc.Id()] = true
	if !s.cfg.Method.UsesSensing() {
		// Under ECV/ECH the coordinator's cell is synthesized on every
		// subslot by advertiserChannelOffset instead of a fixed allocation.
		s.allocate(panc.Id(), allocator.PANCoordinatorCell)
	}

	return s.loop()
}

// loop resumes the driver's main nested multislotframe/advslot/subslot loop
// from (s.multislotframeIdx, s.startingI, s.startingJ) and runs it to
// convergence, per the 4.5 state machine.
func (s *Simulator) loop() (time.Duration, error) {
	g := s.grid
	timeslotLength := s.cfg.Template.TimeslotLength()
	usesSensing := s.cfg.Method.UsesSensing()

	for {
		if s.cfg.MaxMultislotframes > 0 && s.multislotframeIdx >= s.cfg.MaxMultislotframes {
			return 0, configErrorf("exceeded %d multislotframes without convergence", s.cfg.MaxMultislotframes)
		}

		for i := s.startingI; i < g.NumAdvSlotsInMs; i++ {
			asn := g.ASN(s.multislotframeIdx, i)
			slotStart := s.slot0Start + time.Duration(asn)*timeslotLength
			advOccurrence := g.AdvSlotOccurrenceInSlotframe(i)

			for j := s.startingJ; j < g.SubslotsPerAdvSlot; j++ {
				subslotStart := slotStart + time.Duration(j)*g.SubslotLength
				subslotEnd := subslotStart + g.SubslotLength
				advSubslotIdx := i*g.SubslotsPerAdvSlot + j
				ssn := g.SSN(advOccurrence, j)

				for _, advId := range s.sortedAdvertisers() {
					if _, ok := s.advertiserChannelOffset(advId, advSubslotIdx); ok {
						s.ebTxCounter[advId]++
					}
				}

				if usesSensing {
					s.sensingPass(advSubslotIdx, subslotStart)
				}

				s.networkTime = subslotStart + s.cfg.Template.TxOffset()
				s.group.SetTime(s.networkTime)

				for _, id := range s.sortedUnjoined() {
					candidates := s.buildCandidates(id, advSubslotIdx, ssn, asn, subslotStart)
					scanner := propagation.Scanner{
						BootTime:             s.nodeOf(id).BootTime(),
						ScanStartTime:        s.scanStartTime[id],
						ScanDuration:         s.cfg.ScanDuration,
						ChannelSwitchingTime: s.nodeOf(id).ChannelSwitchingTime(),
						NumChannels:          g.NumChannels,
						ClockDriftPPM:        s.driftFor(id),
					}
					if captured := propagation.Capture(candidates, scanner, g.TEB, s.group.Properties().DataRate); captured != nil {
						s.lastCaptureTime = s.networkTime
						s.join(id, asn)
					}
				}

				if len(s.unjoined) == 0 && (!usesSensing || len(s.sensingCell) == 0) {
					s.formationASN = asn
					s.networkTime = subslotEnd
					s.group.SetTime(s.networkTime)
					s.executed = true
					s.startingI, s.startingJ = i, j+1
					return s.lastCaptureTime, nil
				}
			}
			s.startingJ = 0
		}
		s.startingI = 0
		s.multislotframeIdx++
	}
}

func (s *Simulator) nodeOf(id types.NodeId) *node.Node {
	n, ok := s.group.Node(id)
	if !ok {
		panic("simulator: unknown node id " + strconv.Itoa(int(id)))
	}
	return n
}

// join records id as synchronized at asn and, for full-function devices,
// begins its advertiser enrollment: an immediate fixed cell for the static
// and Minimal6TiSCH families, or a sensing enrollment for ECV/ECH.
func (s *Simulator) join(id types.NodeId, asn int64) {
	s.joined[id] = true
	if _, ok := s.syncASN[id]; !ok {
		s.syncASN[id] = asn
	}
	delete(s.unjoined, id)

	n := s.nodeOf(id)
	if n.Type() != types.FFD {
		return
	}

	if s.cfg.Method.UsesSensing() {
		s.sensingCell[id] = allocator.InitialSensingCell
		return
	}

	cell := s.allocateInitialSchedule(id, n)
	s.advertisers[id] = true
	s.allocate(id, cell)
	s.ebTxCounter[id] = 0
}

func (s *Simulator) allocateInitialSchedule(id types.NodeId, n *node.Node) allocator.Cell {
	if s.cfg.Method == types.Minimal6TiSCH {
		return allocator.AllocateMinimal6TiSCH(s.streams, s.grid.NumAdvSlotsInMs)
	}
	cell, err := allocator.AllocateStatic(s.grid, id, n.MacAddress())
	if err != nil {
		// Grid construction already proved the static allocators are
		// well-formed for this method; a failure here means a grid/method
		// mismatch that validation should have caught.
		panic(err)
	}
	return cell
}

// sensingPass runs one ECV/ECH sensing decision for every sensor currently
// assigned to advSubslotIdx, then flushes newly-computed next cells so a
// node promoted this subslot is not re-evaluated in the same pass.
func (s *Simulator) sensingPass(advSubslotIdx int, subslotStart time.Duration) {
	g := s.grid
	pending := make(map[types.NodeId]allocator.Cell)

	for _, id := range s.sortedSensing() {
		cell := s.sensingCell[id]
		if cell.AdvSubslotIdx != advSubslotIdx {
			continue
		}
		s.numSlotsSensed[id]++

		sensor := s.nodeOf(id)
		busy := false
		for _, advId := range s.sortedAdvertisers() {
			ch, ok := s.advertiserChannelOffset(advId, advSubslotIdx)
			if !ok || ch != cell.ChannelOffset {
				continue
			}
			adv := s.nodeOf(advId)
			d := sensor.DistanceFromNode(adv, subslotStart)
			rx := propagation.ReceivedPower(adv.TxPower(), d, s.streams)
			if rx >= float64(sensor.RadioSensitivity()) {
				busy = true
				break
			}
		}

		if !busy {
			s.advertisers[id] = true
			s.allocate(id, cell)
			s.ebTxCounter[id] = 0
			delete(s.sensingCell, id)
			continue
		}

		var next allocator.Cell
		var ok bool
		if s.cfg.Method == types.ECV {
			next, ok = allocator.NextCellECV(cell, g.TotalAdvSubslots, g.NumChannels)
		} else {
			next, ok = allocator.NextCellECH(cell, g.TotalAdvSubslots, g.NumChannels)
		}
		if ok {
			pending[id] = next
			continue
		}

		fallback := allocator.RandomFallbackCell(s.streams, g.TotalAdvSubslots, g.NumChannels)
		s.fallbackAssigned[id] = true
		s.advertisers[id] = true
		s.allocate(id, fallback)
		s.ebTxCounter[id] = 0
		delete(s.sensingCell, id)
	}

	for id, next := range pending {
		s.sensingCell[id] = next
	}
}

func (s *Simulator) sortedSensing() []types.NodeId {
	ids := make([]types.NodeId, 0, len(s.sensingCell))
	for id := range s.sensingCell {
		ids = append(ids, id)
	}
	sortNodeIds(ids)
	return ids
}

// buildCandidates assembles the candidate-EB list a scanning node hears in
// one subslot: every current advertiser holding advSubslotIdx whose received
// power clears the scanner's sensitivity.
func (s *Simulator) buildCandidates(scannerId types.NodeId, advSubslotIdx, ssn int, asn int64, subslotStart time.Duration) []propagation.Candidate {
	g := s.grid
	scanner := s.nodeOf(scannerId)

	var candidates []propagation.Candidate
	for _, advId := range s.sortedAdvertisers() {
		chOffset, ok := s.advertiserChannelOffset(advId, advSubslotIdx)
		if !ok {
			continue
		}
		adv := s.nodeOf(advId)
		d := scanner.DistanceFromNode(adv, subslotStart)
		rx := propagation.ReceivedPower(adv.TxPower(), d, s.streams)
		if rx < float64(scanner.RadioSensitivity()) {
			continue
		}

		channel := g.Channel(asn, ssn, chOffset)
		jitter := s.streams.NewTxJitter(s.cfg.Template.RxWait() / 2)
		delay := propagation.Delay(d)
		rxStart := subslotStart + s.cfg.Template.TxOffset() + jitter + delay

		candidates = append(candidates, propagation.Candidate{
			AdvertiserId: advId,
			Channel:      channel,
			RxStart:      rxStart,
			RxPowerDbm:   rx,
			AirTime:      g.TEB,
		})
	}
	return candidates
}
