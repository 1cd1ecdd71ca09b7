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

// Package tsch models the IEEE 802.15.4-2015 TSCH timeslot template: its
// twelve durations and the invariants that bind them. The time/channel grid
// (ASN, slotframes, channel hopping) is computed by package allocator.
package tsch

import (
	"time"

	"github.com/pkg/errors"
)

// TimeslotTemplateConfig is the wire/YAML form of a TimeslotTemplate: all
// durations in microseconds, per the standard's units, each required to fit
// in the range 0-65535.
type TimeslotTemplateConfig struct {
	MacTsCcaOffset     int `yaml:"macTsCcaOffset"`
	MacTsCca           int `yaml:"macTsCca"`
	MacTsTxOffset      int `yaml:"macTsTxOffset"`
	MacTsRxOffset      int `yaml:"macTsRxOffset"`
	MacTsRxAckDelay    int `yaml:"macTsRxAckDelay"`
	MacTsTxAckDelay    int `yaml:"macTsTxAckDelay"`
	MacTsRxWait        int `yaml:"macTsRxWait"`
	MacTsRxTx          int `yaml:"macTsRxTx"`
	MacTsMaxAck        int `yaml:"macTsMaxAck"`
	MacTsMaxTx         int `yaml:"macTsMaxTx"`
	MacTsTimeslotLength int `yaml:"macTsTimeslotLength"`
	MacTsAckWait       int `yaml:"macTsAckWait"`
}

// TimeslotTemplate is a validated set of TSCH timeslot durations, as
// described by IEEE Std 802.15.4-2015 clause 6.5.4.
type TimeslotTemplate struct {
	ccaOffset     time.Duration
	cca           time.Duration
	txOffset      time.Duration
	rxOffset      time.Duration
	rxAckDelay    time.Duration
	txAckDelay    time.Duration
	rxWait        time.Duration
	rxTx          time.Duration
	maxAck        time.Duration
	maxTx         time.Duration
	timeslotLength time.Duration
	ackWait       time.Duration
}

// NewTimeslotTemplate validates cfg against the standard's interlocking
// invariants and returns the resulting TimeslotTemplate.
func NewTimeslotTemplate(cfg TimeslotTemplateConfig) (*TimeslotTemplate, error) {
	fields := map[string]int{
		"macTsCcaOffset":      cfg.MacTsCcaOffset,
		"macTsCca":            cfg.MacTsCca,
		"macTsTxOffset":       cfg.MacTsTxOffset,
		"macTsRxOffset":       cfg.MacTsRxOffset,
		"macTsRxAckDelay":     cfg.MacTsRxAckDelay,
		"macTsTxAckDelay":     cfg.MacTsTxAckDelay,
		"macTsRxWait":         cfg.MacTsRxWait,
		"macTsRxTx":           cfg.MacTsRxTx,
		"macTsMaxAck":         cfg.MacTsMaxAck,
		"macTsMaxTx":          cfg.MacTsMaxTx,
		"macTsTimeslotLength": cfg.MacTsTimeslotLength,
		"macTsAckWait":        cfg.MacTsAckWait,
	}
	for name, v := range fields {
		if v < 0 || v > 65535 {
			return nil, errors.Errorf("timeslot template: attribute %s must be in range 0-65535, got %d", name, v)
		}
	}

	t := &TimeslotTemplate{
		ccaOffset:      us(cfg.MacTsCcaOffset),
		cca:            us(cfg.MacTsCca),
		txOffset:       us(cfg.MacTsTxOffset),
		rxOffset:       us(cfg.MacTsRxOffset),
		rxAckDelay:     us(cfg.MacTsRxAckDelay),
		txAckDelay:     us(cfg.MacTsTxAckDelay),
		rxWait:         us(cfg.MacTsRxWait),
		rxTx:           us(cfg.MacTsRxTx),
		maxAck:         us(cfg.MacTsMaxAck),
		maxTx:          us(cfg.MacTsMaxTx),
		timeslotLength: us(cfg.MacTsTimeslotLength),
		ackWait:        us(cfg.MacTsAckWait),
	}

	if err := t.checkInvariants(); err != nil {
		return nil, err
	}
	return t, nil
}

func us(v int) time.Duration {
	return time.Duration(v) * time.Microsecond
}

func (t *TimeslotTemplate) checkInvariants() error {
	switch {
	case t.txOffset != t.ccaOffset+t.cca+t.rxTx:
		return errors.New("timeslot template: macTsTxOffset must equal macTsCcaOffset + macTsCca + macTsRxTx")
	case t.txOffset != t.rxOffset+t.rxWait/2:
		return errors.New("timeslot template: macTsTxOffset must equal macTsRxOffset + macTsRxWait/2")
	case t.rxAckDelay > t.txAckDelay:
		return errors.New("timeslot template: macTsRxAckDelay must not exceed macTsTxAckDelay")
	case t.rxAckDelay+t.ackWait <= t.txAckDelay:
		return errors.New("timeslot template: macTsRxAckDelay + macTsAckWait must exceed macTsTxAckDelay")
	case t.txOffset+t.maxTx+t.rxAckDelay+t.ackWait > t.timeslotLength:
		return errors.New("timeslot template: tx+ack-wait window overruns the timeslot")
	case t.txOffset+t.maxTx+t.txAckDelay+t.maxAck > t.timeslotLength:
		return errors.New("timeslot template: tx+ack window overruns the timeslot")
	case t.rxOffset+t.rxWait+t.maxTx+t.txAckDelay+t.maxAck > t.timeslotLength+t.ccaOffset:
		return errors.New("timeslot template: rx+tx+ack window overruns the timeslot plus CCA offset")
	case t.rxWait/2 > t.rxOffset+t.timeslotLength-t.txOffset-t.maxTx-t.txAckDelay-t.maxAck:
		return errors.New("timeslot template: half of macTsRxWait exceeds the trailing slack of the timeslot")
	}
	return nil
}

func (t *TimeslotTemplate) CcaOffset() time.Duration      { return t.ccaOffset }
func (t *TimeslotTemplate) Cca() time.Duration            { return t.cca }
func (t *TimeslotTemplate) TxOffset() time.Duration       { return t.txOffset }
func (t *TimeslotTemplate) RxOffset() time.Duration       { return t.rxOffset }
func (t *TimeslotTemplate) RxAckDelay() time.Duration     { return t.rxAckDelay }
func (t *TimeslotTemplate) TxAckDelay() time.Duration     { return t.txAckDelay }
func (t *TimeslotTemplate) RxWait() time.Duration         { return t.rxWait }
func (t *TimeslotTemplate) RxTx() time.Duration           { return t.rxTx }
func (t *TimeslotTemplate) MaxAck() time.Duration         { return t.maxAck }
func (t *TimeslotTemplate) MaxTx() time.Duration          { return t.maxTx }
func (t *TimeslotTemplate) TimeslotLength() time.Duration { return t.timeslotLength }
func (t *TimeslotTemplate) AckWait() time.Duration        { return t.ackWait }

// DefaultFor2450MHzBand is the timeslot template IEEE Std 802.15.4-2015
// specifies as the default for the 2450 MHz O-QPSK PHY.
var DefaultFor2450MHzBand = mustDefault()

func mustDefault() *TimeslotTemplate {
	t, err := NewTimeslotTemplate(TimeslotTemplateConfig{
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
	})
	if err != nil {
		panic(err)
	}
	return t
}
