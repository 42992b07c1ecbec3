// Copyright 2013 Google, Inc.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package term

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVTermForwardWithinLine(t *testing.T) {
	var buf bytes.Buffer
	vt := NewVTerm(&buf, -1, 1, 1, 10, 24)

	vt.Forward(3, []byte("R"), false)
	assert.Equal(t, 4, vt.X)
	assert.Equal(t, 1, vt.Y)
	assert.Equal(t, "RRR", buf.String())
}

func TestVTermForwardWraps(t *testing.T) {
	var buf bytes.Buffer
	vt := NewVTerm(&buf, -1, 8, 1, 10, 24)

	vt.Forward(5, []byte("R"), false)
	// 8 + 5 = 13 > width 10: wraps one row, lands at column 3.
	assert.Equal(t, 3, vt.X)
	assert.Equal(t, 2, vt.Y)
	assert.Contains(t, buf.String(), "\r")
	assert.Contains(t, buf.String(), "\n")
}

func TestVTermForwardUpdateOnlyDoesNotEmit(t *testing.T) {
	var buf bytes.Buffer
	vt := NewVTerm(&buf, -1, 1, 1, 10, 24)

	vt.Forward(3, []byte("R"), true)
	assert.Equal(t, 4, vt.X)
	assert.Empty(t, buf.String())
}

func TestVTermBackwardWithinLine(t *testing.T) {
	var buf bytes.Buffer
	vt := NewVTerm(&buf, -1, 5, 1, 10, 24)

	vt.Backward(3, []byte("D"))
	assert.Equal(t, 2, vt.X)
	assert.Equal(t, "DDD", buf.String())
}

func TestVTermBackwardAcrossWrap(t *testing.T) {
	var buf bytes.Buffer
	vt := NewVTerm(&buf, -1, 3, 2, 10, 24)

	vt.Backward(5, []byte("D"))
	// Started at col 3, row 2; moving back 5 uses up 2 columns to reach
	// col 1, then 3 more wrap into the row above without emitting a
	// row-up sequence (only cub1 bytes are ever written).
	assert.Equal(t, 1, vt.Y)
	assert.Equal(t, 8, vt.X)
	assert.Equal(t, strings.Repeat("D", 5), buf.String())
}

func TestVTermWriteAdvancesAndEchoes(t *testing.T) {
	var buf bytes.Buffer
	vt := NewVTerm(&buf, -1, 1, 1, 80, 24)

	vt.Write("hello")
	assert.Equal(t, "hello", buf.String())
	assert.Equal(t, 6, vt.X)
}

func TestVTermQueryCursorParsesReply(t *testing.T) {
	var out bytes.Buffer
	dec := NewDecoder(nil, strings.NewReader("\x1b[12;34R"))
	vt := NewVTerm(&out, -1, 1, 1, 80, 24)

	require.NoError(t, vt.QueryCursor(dec))
	assert.Equal(t, "\x1b[6n", out.String())
	assert.Equal(t, 34, vt.X)
	assert.Equal(t, 12, vt.Y)
}
