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

package simulator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tsch-join/joinsim/prng"
	"github.com/tsch-join/joinsim/simulator"
	"github.com/tsch-join/joinsim/tsch"
	"github.com/tsch-join/joinsim/types"
)

func TestScenarioConfigYAMLRoundTrip(t *testing.T) {
	sc := simulator.ScenarioConfig{
		Method: types.CFASV,
		Template: tsch.TimeslotTemplateConfig{
			MacTsCcaOffset:      1800,
			MacTsCca:            128,
			MacTsTxOffset:       2120,
			MacTsRxOffset:       1020,
			MacTsRxAckDelay:     800,
			MacTsTxAckDelay:     1000,
			MacTsRxWait:         2200,
			MacTsRxTx:           192,
			MacTsMaxAck:         2400,
			MacTsMaxTx:          4256,
			MacTsTimeslotLength: 10000,
			MacTsAckWait:        400,
		},
		SlotframeLength: 4,
		EBLength:        20,
		NumChannels:     4,
		ScanDuration:    int64(10 * time.Millisecond),
		EBI:             2,
		ATPEnabled:      true,
		Nodes: []simulator.NodeSpec{
			{Id: 0, IsPANCoordinator: true, Type: types.FFD},
			{Id: 1, X: 3, Y: 4, Type: types.FFD, BootTime: int64(time.Second)},
		},
	}

	out, err := yaml.Marshal(sc)
	require.NoError(t, err)

	var round simulator.ScenarioConfig
	require.NoError(t, yaml.Unmarshal(out, &round))
	assert.Equal(t, sc, round)
}

func TestScenarioConfigBuildGroupRequiresExactlyOnePANCoordinator(t *testing.T) {
	sc := simulator.ScenarioConfig{
		Nodes: []simulator.NodeSpec{
			{Id: 0, Type: types.RFD},
		},
	}
	_, err := sc.BuildGroup(prng.New(1))
	assert.Error(t, err)
}
