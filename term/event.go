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
	"fmt"

	"github.com/gopherline/richline/terminfo"
)

// EventKind discriminates the three variants of decoded terminal input.
type EventKind int

const (
	// PrintableChar is a single code point whose Unicode general category
	// does not begin with "C" (control).
	PrintableChar EventKind = iota
	// ControlKey is a single control code point that does not begin an
	// escape sequence.
	ControlKey
	// EscapeSequence is a normalized escape byte string bound to a
	// terminfo string capability, or to the unknown-capability sentinel.
	EscapeSequence
)

func (k EventKind) String() string {
	switch k {
	case PrintableChar:
		return "PrintableChar"
	case ControlKey:
		return "ControlKey"
	case EscapeSequence:
		return "EscapeSequence"
	default:
		return "Unknown"
	}
}

// Event is one decoded unit of terminal input. Only the fields relevant to
// its Kind are meaningful: Rune for PrintableChar/ControlKey, Capability
// and Raw for EscapeSequence.
type Event struct {
	Kind       EventKind
	Rune       rune
	Capability terminfo.Capability
	Raw        []byte
}

// String renders the event's textual representation: the printable/control
// rune as a one-rune string, or the raw escape bytes.
func (e Event) String() string {
	switch e.Kind {
	case PrintableChar, ControlKey:
		return string(e.Rune)
	default:
		return string(e.Raw)
	}
}

func (e Event) GoString() string {
	switch e.Kind {
	case EscapeSequence:
		return fmt.Sprintf("EscapeSequence(%s, %q)", e.Capability.Variable, e.Raw)
	default:
		return fmt.Sprintf("%s(%q)", e.Kind, e.Rune)
	}
}
