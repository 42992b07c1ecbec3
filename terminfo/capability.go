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

// Package terminfo parses the compiled terminfo binary for a terminal and
// indexes its capabilities by variable name, capname, termcap code, and (for
// non-empty string capabilities) the raw escape bytes they hold.
package terminfo

import "fmt"

// Kind identifies which of the three terminfo capability types a
// Capability holds.
type Kind int

const (
	Unknown Kind = iota
	Boolean
	Number
	String
)

func (k Kind) String() string {
	switch k {
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// Capability is a single terminfo entry: a boolean flag, a signed number, or
// a byte string, addressable by its long variable name, short capname, or
// legacy two-letter termcap code. It is immutable once loaded.
type Capability struct {
	Kind        Kind
	Variable    string // long mnemonic, e.g. "key_up"
	Capname     string // short form, e.g. "kcuu1"
	Termcap     string // legacy two-letter code, e.g. "ku"
	Description string

	Bool   bool
	Num    int16
	Value  []byte // decoded ISO-8859-1 byte string; empty if absent or wrong Kind
}

// unknownCapability is returned by Detect on a cache miss: its
// Value holds the raw bytes that failed to match any known capability.
func unknownCapability(raw []byte) Capability {
	return Capability{
		Kind:        Unknown,
		Variable:    "unknown",
		Capname:     "",
		Description: "unrecognized escape sequence",
		Value:       raw,
	}
}

func (c Capability) String() string {
	switch c.Kind {
	case Boolean:
		return fmt.Sprintf("%s(%s/%s)=%v", c.Variable, c.Capname, c.Termcap, c.Bool)
	case Number:
		return fmt.Sprintf("%s(%s/%s)=%d", c.Variable, c.Capname, c.Termcap, c.Num)
	case String:
		return fmt.Sprintf("%s(%s/%s)=%q", c.Variable, c.Capname, c.Termcap, c.Value)
	default:
		return fmt.Sprintf("%s=%q", c.Variable, c.Value)
	}
}
