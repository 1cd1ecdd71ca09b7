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

package tsch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig() TimeslotTemplateConfig {
	return TimeslotTemplateConfig{
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
	}
}

func TestNewTimeslotTemplateDefault(t *testing.T) {
	tmpl, err := NewTimeslotTemplate(defaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 2120*time.Microsecond, tmpl.TxOffset())
	assert.Equal(t, 10000*time.Microsecond, tmpl.TimeslotLength())
	assert.Equal(t, 2200*time.Microsecond, tmpl.RxWait())
}

func TestDefaultFor2450MHzBandMatchesTemplate(t *testing.T) {
	assert.Equal(t, DefaultFor2450MHzBand.TimeslotLength(), 10000*time.Microsecond)
}

func TestNewTimeslotTemplateOutOfRange(t *testing.T) {
	cfg := defaultConfig()
	cfg.MacTsCcaOffset = 70000
	_, err := NewTimeslotTemplate(cfg)
	assert.Error(t, err)
}

func TestNewTimeslotTemplateTxOffsetInvariant(t *testing.T) {
	cfg := defaultConfig()
	cfg.MacTsTxOffset = 1
	_, err := NewTimeslotTemplate(cfg)
	assert.ErrorContains(t, err, "macTsTxOffset must equal macTsCcaOffset")
}

func TestNewTimeslotTemplateRxWaitHalfInvariant(t *testing.T) {
	cfg := defaultConfig()
	cfg.MacTsRxOffset = 1 // breaks txOffset == rxOffset + rxWait/2
	_, err := NewTimeslotTemplate(cfg)
	assert.Error(t, err)
}

func TestNewTimeslotTemplateAckOrderingInvariant(t *testing.T) {
	cfg := defaultConfig()
	cfg.MacTsRxAckDelay, cfg.MacTsTxAckDelay = cfg.MacTsTxAckDelay, cfg.MacTsRxAckDelay
	_, err := NewTimeslotTemplate(cfg)
	assert.ErrorContains(t, err, "macTsRxAckDelay must not exceed")
}

func TestNewTimeslotTemplateOverrunsTimeslot(t *testing.T) {
	cfg := defaultConfig()
	cfg.MacTsMaxTx = 60000
	_, err := NewTimeslotTemplate(cfg)
	assert.Error(t, err)
}
