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

package node

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsch-join/joinsim/types"
)

func TestNewPANCoordinatorSucceeds(t *testing.T) {
	g := newTestGroup(t)
	n, err := NewPANCoordinator(g, PANCoordinatorConfig{Id: 0, Position: types.Position{X: 5, Y: 5}})
	require.NoError(t, err)

	assert.True(t, n.IsPANCoordinator())
	assert.Equal(t, types.FFD, n.Type())
	assert.False(t, n.IsMobile())
	assert.Equal(t, time.Duration(0), n.BootTime())
	assert.Same(t, n, g.PANCoordinator())
}

func TestNewPANCoordinatorRejectsDuplicate(t *testing.T) {
	g := newTestGroup(t)
	_, err := NewPANCoordinator(g, PANCoordinatorConfig{Id: 0, Position: types.Position{X: 5, Y: 5}})
	require.NoError(t, err)

	_, err = NewPANCoordinator(g, PANCoordinatorConfig{Id: 1, Position: types.Position{X: 6, Y: 6}})
	assert.Error(t, err)
}
