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

package terminfo

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// legacyMagic is 0432 octal, the magic number at the start of a compiled
// "legacy" 16-bit terminfo file.
const legacyMagic = 0x011A

// Bad-file errors.
var (
	ErrBadMagic  = errors.New("terminfo: bad magic number")
	ErrTruncated = errors.New("terminfo: truncated section")
	ErrBadOffset = errors.New("terminfo: string offset out of range")
)

// Terminfo is a named terminal description: its aliases, one index keyed by
// variable over the capabilities of all three kinds, and the derived
// reverse indexes. No per-kind mapping is kept, and none of the indexes
// preserves the canonical capability order.
type Terminfo struct {
	file  string
	Names []string // primary name followed by aliases

	byVariable map[string]Capability
	byCapname  map[string]Capability
	byTermcap  map[string]Capability
	byEscape   map[string]Capability // non-empty string caps, keyed by raw value
}

// File returns the path the description was loaded from.
func (ti *Terminfo) File() string { return ti.file }

// Get looks up a capability by capname, then variable, then termcap code,
// in that order, returning ErrNotAnEntry on a miss.
func (ti *Terminfo) Get(name string) (Capability, error) {
	if c, ok := ti.byCapname[name]; ok {
		return c, nil
	}
	if c, ok := ti.byVariable[name]; ok {
		return c, nil
	}
	if c, ok := ti.byTermcap[name]; ok {
		return c, nil
	}
	return Capability{}, fmt.Errorf("%w: %s", ErrNotAnEntry, name)
}

// Detect looks up raw escape-sequence bytes in the escape-to-capability
// index. On a miss it returns the unknown-capability sentinel with Value
// set to raw -- unmatched escape sequences are not an error.
func (ti *Terminfo) Detect(raw []byte) Capability {
	if c, ok := ti.byEscape[string(raw)]; ok {
		return c
	}
	return unknownCapability(append([]byte(nil), raw...))
}

// decode parses a compiled legacy-format terminfo file.
func decode(buf []byte) (*Terminfo, error) {
	r := &cursor{buf: buf}

	magic, err := r.int16()
	if err != nil {
		return nil, err
	}
	if magic != legacyMagic {
		return nil, ErrBadMagic
	}

	namesSize, err := r.int16()
	if err != nil {
		return nil, err
	}
	boolsSize, err := r.int16()
	if err != nil {
		return nil, err
	}
	numsCount, err := r.int16()
	if err != nil {
		return nil, err
	}
	offsetsCount, err := r.int16()
	if err != nil {
		return nil, err
	}
	strTableSize, err := r.int16()
	if err != nil {
		return nil, err
	}

	namesRaw, err := r.bytes(int(namesSize))
	if err != nil {
		return nil, fmt.Errorf("%w: terminal names", ErrTruncated)
	}
	names := strings.Split(strings.TrimRight(string(namesRaw), "\x00"), "|")

	boolVals, err := r.bytes(int(boolsSize))
	if err != nil {
		return nil, fmt.Errorf("%w: boolean section", ErrTruncated)
	}

	// Padding so the numbers section starts on an even byte.
	if (namesSize+boolsSize)%2 != 0 {
		if _, err := r.bytes(1); err != nil {
			return nil, fmt.Errorf("%w: alignment pad", ErrTruncated)
		}
	}

	nums := make([]int16, numsCount)
	for i := range nums {
		v, err := r.int16()
		if err != nil {
			return nil, fmt.Errorf("%w: number section", ErrTruncated)
		}
		nums[i] = v
	}

	offsets := make([]int16, offsetsCount)
	for i := range offsets {
		v, err := r.int16()
		if err != nil {
			return nil, fmt.Errorf("%w: string offset section", ErrTruncated)
		}
		offsets[i] = v
	}

	strTable, err := r.bytes(int(strTableSize))
	if err != nil {
		return nil, fmt.Errorf("%w: string table", ErrTruncated)
	}

	ti := &Terminfo{
		Names:      names,
		byVariable: make(map[string]Capability),
		byCapname:  make(map[string]Capability),
		byTermcap:  make(map[string]Capability),
		byEscape:   make(map[string]Capability),
	}

	for i, spec := range boolCaps {
		var val bool
		if i < len(boolVals) {
			val = boolVals[i] != 0
		}
		ti.index(Capability{Kind: Boolean, Variable: spec.Variable, Capname: spec.Capname, Termcap: spec.Termcap, Description: spec.Description, Bool: val})
	}

	for i, spec := range numCaps {
		var val int16
		if i < len(nums) {
			val = nums[i]
		}
		ti.index(Capability{Kind: Number, Variable: spec.Variable, Capname: spec.Capname, Termcap: spec.Termcap, Description: spec.Description, Num: val})
	}

	decoder := charmap.ISO8859_1.NewDecoder()
	for i, spec := range stringCaps {
		var value []byte
		if i < len(offsets) && offsets[i] >= 0 {
			off := int(offsets[i])
			if off >= len(strTable) {
				return nil, fmt.Errorf("%w: %s at %d", ErrBadOffset, spec.Capname, off)
			}
			end := off
			for end < len(strTable) && strTable[end] != 0 {
				end++
			}
			if end >= len(strTable) {
				return nil, fmt.Errorf("%w: %s unterminated", ErrTruncated, spec.Capname)
			}
			decoded, err := decoder.Bytes(strTable[off:end])
			if err != nil {
				decoded = strTable[off:end]
			}
			value = decoded
		}
		strCap := Capability{Kind: String, Variable: spec.Variable, Capname: spec.Capname, Termcap: spec.Termcap, Description: spec.Description, Value: value}
		ti.index(strCap)
		if len(value) > 0 {
			if _, exists := ti.byEscape[string(value)]; !exists {
				ti.byEscape[string(value)] = strCap
			}
		}
	}

	return ti, nil
}

// index places cap into the variable/capname/termcap maps it is reachable
// from; every capability is present in every index that can name it.
func (ti *Terminfo) index(c Capability) {
	ti.byVariable[c.Variable] = c
	if c.Capname != "" {
		ti.byCapname[c.Capname] = c
	}
	if c.Termcap != "" {
		ti.byTermcap[c.Termcap] = c
	}
}

// cursor is a small forward-only byte reader used while decoding.
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) int16() (int16, error) {
	b, err := c.bytes(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}

func (c *cursor) bytes(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, c.pos, len(c.buf))
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}
