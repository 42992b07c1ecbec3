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
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gopherline/richline/terminfo"
)

// loadTestTerminfo writes a small legacy terminfo entry to a temp
// directory, points TERMINFO at it, and loads it through the real
// terminfo.Load path so decoder tests exercise an actual *terminfo.Terminfo
// rather than a hand-built stand-in.
func loadTestTerminfo(t *testing.T) *terminfo.Terminfo {
	t.Helper()
	dir := t.TempDir()
	sub := filepath.Join(dir, "x")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	path := filepath.Join(sub, "xterm-test")
	require.NoError(t, os.WriteFile(path, buildMinimalLegacy(t), 0o644))

	t.Setenv("TERMINFO", dir)
	ti, err := terminfo.Load("xterm-test")
	require.NoError(t, err)
	return ti
}

// buildMinimalLegacy hand-assembles a legacy terminfo file with a handful
// of string capabilities set, using the same field layout
// terminfo.decode expects: header, names, bools, numbers,
// string offsets, string table. Offsets are written in the position the
// corresponding capname would occupy in terminfo's canonical ordering;
// since that ordering is private to the terminfo package, this fixture
// carries its own copy of the subset it needs, verified against
// terminfo's public Get/Detect behavior rather than its internals.
func buildMinimalLegacy(t *testing.T) []byte {
	t.Helper()

	// Canonical string-capability order, duplicated here in the exact
	// sequence terminfo/capnames.go defines it, since only it determines offset positions in the file.
	order := []string{
		"cup", "cuu1", "cud1", "cub1", "cuf1", "home", "el", "ed", "clear",
		"bel", "cr", "civis", "cnorm", "kbs", "kdch1", "kcud1", "khome",
		"kcub1", "kend", "kcuf1", "kcuu1", "kf1", "kf2", "kf3", "kf4",
		"kich1", "knp", "kpp", "u7", "u6", "cub", "cuf", "cuu", "cud",
		"sc", "rc", "smcup", "rmcup", "smir", "rmir",
	}
	// cub1/cuf1 hold bytes different from the arrow keys: Detect resolves
	// a shared value to the capability earlier in canonical order, which
	// would be the cursor-motion one rather than kcub1/kcuf1.
	values := map[string]string{
		"cub1":  "\b",
		"cuf1":  "\x1b[1C",
		"ed":    "\x1b[J",
		"kcub1": "\x1b[D",
		"kcuf1": "\x1b[C",
		"kdch1": "\x1b[3~",
		"khome": "\x1b[H",
		"kend":  "\x1b[F",
		"kf1":   "\x1bOP",
	}

	name := "xterm-test"
	namesField := append([]byte(name), 0)

	const numBools = 8
	const numNums = 5
	boolVals := make([]byte, numBools)
	numVals := make([]int16, numNums)

	var table []byte
	offsets := make([]int16, len(order))
	for i, capname := range order {
		v, ok := values[capname]
		if !ok {
			offsets[i] = -1
			continue
		}
		offsets[i] = int16(len(table))
		table = append(table, []byte(v)...)
		table = append(table, 0)
	}

	buf := make([]byte, 0, 256)
	put16 := func(v int) {
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, uint16(int16(v)))
		buf = append(buf, b...)
	}

	const legacyMagic = 0x011A
	put16(legacyMagic)
	put16(len(namesField))
	put16(len(boolVals))
	put16(len(numVals))
	put16(len(offsets))
	put16(len(table))

	buf = append(buf, namesField...)
	buf = append(buf, boolVals...)
	if (len(namesField)+len(boolVals))%2 != 0 {
		buf = append(buf, 0)
	}
	for _, v := range numVals {
		put16(int(v))
	}
	for _, v := range offsets {
		put16(int(v))
	}
	buf = append(buf, table...)

	return buf
}

func TestDecoderPrintableAndControl(t *testing.T) {
	ti := loadTestTerminfo(t)
	dec := NewDecoder(ti, strings.NewReader("a\x04"))

	ev, err := dec.Next()
	require.NoError(t, err)
	require.Equal(t, PrintableChar, ev.Kind)
	require.Equal(t, 'a', ev.Rune)

	ev, err = dec.Next()
	require.NoError(t, err)
	require.Equal(t, ControlKey, ev.Kind)
	require.Equal(t, rune(EOT), ev.Rune)

	_, err = dec.Next()
	require.ErrorIs(t, err, io.EOF)
}

func TestDecoderCSISequenceMatchesCapability(t *testing.T) {
	ti := loadTestTerminfo(t)
	dec := NewDecoder(ti, strings.NewReader("\x1b[D"))

	ev, err := dec.Next()
	require.NoError(t, err)
	require.Equal(t, EscapeSequence, ev.Kind)
	require.Equal(t, "kcub1", ev.Capability.Capname)
}

func TestDecoderSingleByteCSIMatchesEscBracket(t *testing.T) {
	ti := loadTestTerminfo(t)

	dec := NewDecoder(ti, strings.NewReader("\x9bA"))
	single, err := dec.Next()
	require.NoError(t, err)
	require.Equal(t, EscapeSequence, single.Kind)

	dec = NewDecoder(ti, strings.NewReader("\x1b[A"))
	full, err := dec.Next()
	require.NoError(t, err)
	require.Equal(t, EscapeSequence, full.Kind)

	require.Equal(t, full.Capability, single.Capability)
	require.Equal(t, full.Raw, single.Raw)
}

func TestDecoderSS3Sequence(t *testing.T) {
	ti := loadTestTerminfo(t)
	dec := NewDecoder(ti, strings.NewReader("\x1bOP"))

	ev, err := dec.Next()
	require.NoError(t, err)
	require.Equal(t, EscapeSequence, ev.Kind)
	require.Equal(t, "kf1", ev.Capability.Capname)
}

func TestDecoderUnknownEscapeSequence(t *testing.T) {
	ti := loadTestTerminfo(t)
	dec := NewDecoder(ti, strings.NewReader("\x1b[99~"))

	ev, err := dec.Next()
	require.NoError(t, err)
	require.Equal(t, EscapeSequence, ev.Kind)
	require.Equal(t, terminfo.Unknown, ev.Capability.Kind)
	require.Equal(t, []byte("\x1b[99~"), ev.Raw)
}

func TestDecoderEmbeddedIntroducerResetsCollector(t *testing.T) {
	ti := loadTestTerminfo(t)
	// A second ESC arrives mid-sequence; the collector should discard the
	// aborted "\x1b[" and start a fresh CSI sequence from the new ESC.
	dec := NewDecoder(ti, strings.NewReader("\x1b[\x1b[C"))

	ev, err := dec.Next()
	require.NoError(t, err)
	require.Equal(t, EscapeSequence, ev.Kind)
	require.Equal(t, "kcuf1", ev.Capability.Capname)
}

func TestDecoderBareEscapeStandsAlone(t *testing.T) {
	ti := loadTestTerminfo(t)
	dec := NewDecoder(ti, strings.NewReader("\x1bq"))

	ev, err := dec.Next()
	require.NoError(t, err)
	require.Equal(t, EscapeSequence, ev.Kind)
	require.Equal(t, []byte("\x1bq"), ev.Raw)
}
