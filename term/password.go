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
	"io"
	"sync"
	"time"

	"github.com/gopherline/richline/terminfo"
)

// revealDuration is how long a freshly typed character stays visible
// before Password masks it.
const revealDuration = time.Second

const maskRune = '*'

// Password is a Line that echoes '*' in place of typed characters,
// briefly showing the most recently typed one so a user can catch a
// mistyped key, and supporting an F1 toggle to show the buffer in the
// clear.
type Password struct {
	line *Line

	mu        sync.Mutex
	gate      sync.Mutex // serializes a reveal timer firing against a keystroke redraw
	clearText bool
	revealAt  int // buffer index currently shown in the clear, or -1
	timer     *time.Timer
}

// NewPassword constructs a Password editor over the given terminal
// description and streams.
func NewPassword(ti *terminfo.Terminfo, in io.Reader, out io.Writer) *Password {
	return &Password{
		line:     NewLine(ti, in, out),
		revealAt: -1,
	}
}

// Read behaves like Line.Read but masks the input as it's typed. The
// terminator itself ends Read before the callback ever sees it, so a
// still-revealed last character would otherwise reach the caller on
// screen in the clear; Read masks it before returning, regardless of
// whether clear-text display was toggled on.
func (p *Password) Read(prompt string) (string, error) {
	text, err := p.line.Read(p.onEvent, DefaultTerminators, prompt)

	p.gate.Lock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.revealAt = -1
	p.maskLastChar()
	p.gate.Unlock()

	return text, err
}

// maskLastChar overwrites the single most recently typed character with
// maskRune in place, without a full redraw: back up one column and write
// the mask over it.
func (p *Password) maskLastChar() {
	idx := p.line.Buffer().Index()
	if idx == 0 {
		return
	}
	cub1 := p.line.capValue("cub1")
	p.line.vt.Backward(1, cub1)
	p.line.vt.Write(string(maskRune))
}

// onEvent is the Password callback passed to Line.Read: it
// never calls next, the library's plaintext default redraw, except while
// clear-text display is toggled on via F1.
func (p *Password) onEvent(ev Event, l *Line, next func()) {
	p.gate.Lock()
	defer p.gate.Unlock()

	if p.timer != nil {
		p.timer.Stop()
	}

	if ev.Kind == EscapeSequence && ev.Capability.Capname == "kf1" {
		p.mu.Lock()
		p.clearText = !p.clearText
		p.mu.Unlock()
		p.revealAt = -1
		if p.clearText {
			next()
		} else {
			p.redrawMasked(l)
		}
		return
	}

	p.mu.Lock()
	clear := p.clearText
	p.mu.Unlock()
	if clear {
		next()
		return
	}

	switch ev.Kind {
	case PrintableChar:
		p.revealAt = l.Buffer().Index() - 1
	case ControlKey:
		if ev.Rune == BS || ev.Rune == DEL {
			// Backspace never re-reveals a character; whatever was about
			// to be shown is simply gone.
			p.revealAt = -1
		}
	default:
		p.revealAt = -1
	}

	p.redrawMasked(l)

	if p.revealAt >= 0 {
		revealIdx := p.revealAt
		p.timer = time.AfterFunc(revealDuration, func() {
			p.gate.Lock()
			defer p.gate.Unlock()
			if p.revealAt != revealIdx {
				return // superseded by a later keystroke
			}
			p.revealAt = -1
			p.redrawMasked(l)
		})
	}
}

// redrawMasked renders the buffer as asterisks, except for the single
// index currently being revealed (if any), reusing Line's minimum-diff
// redraw against that masked projection.
func (p *Password) redrawMasked(l *Line) {
	text := []rune(l.Buffer().Text())
	masked := make([]rune, len(text))
	for i := range text {
		if i == p.revealAt {
			masked[i] = text[i]
		} else {
			masked[i] = maskRune
		}
	}
	l.redrawWith(masked)
}
