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
	"os"
	"strings"

	"github.com/gopherline/richline/internal/rlog"
	"github.com/gopherline/richline/termios"
	"github.com/gopherline/richline/terminfo"
)

// DefaultTerminators is the set of control runes that end Read when no
// terminator set is given explicitly: carriage return, line feed, and
// end-of-transmission.
const DefaultTerminators = CarriageReturn + NewLine + EndOfFile

// Callback is invoked after every keystroke is applied to the buffer, and
// before the screen is redrawn. next performs the library's default
// redraw; a callback that wants different on-screen behavior (see
// Password, in password.go) simply doesn't call it, or calls it after
// first rewriting what Line considers "rendered" on screen.
type Callback func(ev Event, l *Line, next func())

// Line binds a terminfo description, an input decoder, and a virtual
// cursor into an interactive single-line editor.
type Line struct {
	ti  *terminfo.Terminfo
	dec *Decoder
	out io.Writer
	fd  int

	vt  *VTerm
	buf *IndexedLine

	rendered    []rune
	cursorIndex int
}

// NewLine constructs a Line reading from in and writing its prompt and
// redraws to out.
func NewLine(ti *terminfo.Terminfo, in io.Reader, out io.Writer) *Line {
	fd := -1
	if f, ok := out.(*os.File); ok {
		fd = int(f.Fd())
	}
	return &Line{
		ti:  ti,
		dec: NewDecoder(ti, in),
		out: out,
		fd:  fd,
	}
}

// Read takes over the terminal in cbreak mode, writes prompt, and echoes
// and edits a single line until a rune in terminators is seen or the input
// stream ends. callback, if non-nil, is given a chance to intercept every
// event before the default redraw runs. Read returns the edited text;
// io.EOF is returned alongside whatever had been typed so far if the
// stream closes before a terminator arrives.
func (l *Line) Read(callback Callback, terminators, prompt string) (string, error) {
	if terminators == "" {
		terminators = DefaultTerminators
	}

	var guard *termios.Guard
	if l.fd >= 0 {
		g, err := termios.Acquire(l.fd)
		if err != nil {
			return "", err
		}
		guard = g
		defer guard.Release()
	}

	width, height := 80, 24
	if l.fd >= 0 {
		if w, h, err := termios.WindowSize(l.fd); err == nil {
			width, height = w, h
		}
	}
	l.vt = NewVTerm(l.out, l.fd, 1, 1, width, height)
	l.buf = NewIndexedLine("")
	l.rendered = nil
	l.cursorIndex = 0

	if prompt != "" {
		l.vt.Write(prompt)
	}

	for {
		ev, err := l.dec.Next()
		if err != nil {
			if err == io.EOF {
				return l.buf.Text(), io.EOF
			}
			return l.buf.Text(), err
		}

		if ev.Kind != EscapeSequence && strings.ContainsRune(terminators, ev.Rune) {
			l.vt.Write(NewLine)
			return l.buf.Text(), nil
		}

		l.applyEvent(ev)
		if callback != nil {
			callback(ev, l, l.defaultRedraw)
		} else {
			l.defaultRedraw()
		}
	}
}

// Buffer exposes the line's editing buffer, so a callback can inspect or
// further mutate it before choosing whether to call the default redraw.
func (l *Line) Buffer() *IndexedLine { return l.buf }

// Terminfo exposes the bound terminal description, so a callback can look
// up capabilities of its own.
func (l *Line) Terminfo() *terminfo.Terminfo { return l.ti }

// applyEvent is the per-event action table that mutates the buffer:
// printable runes insert, backspace/DEL delete backward, and the
// recognized navigation capabilities move or delete at the index.
func (l *Line) applyEvent(ev Event) {
	switch ev.Kind {
	case PrintableChar:
		l.buf.Insert(string(ev.Rune))
	case ControlKey:
		switch ev.Rune {
		case BS, DEL:
			l.buf.DeleteBackward()
		}
	case EscapeSequence:
		switch ev.Capability.Capname {
		case "kdch1":
			l.buf.DeleteForward()
		case "kcub1":
			l.buf.MoveBackward(1)
		case "kcuf1":
			l.buf.MoveForward(1)
		case "khome":
			l.buf.MoveHome()
		case "kend":
			l.buf.MoveEnd()
		}
	}
}

// defaultRedraw repaints the screen with the minimum work needed to go
// from what is currently rendered to the buffer's current text: it finds
// the longest common prefix, repositions the cursor there, clears to end
// of screen if the previously rendered text extends past that prefix,
// writes the new suffix, and repositions the cursor at the buffer's
// editing index.
func (l *Line) defaultRedraw() {
	l.redrawWith([]rune(l.buf.Text()))
}

// redrawWith is defaultRedraw's algorithm generalized over what text is
// actually shown on screen, so that Password (password.go) can redraw a
// masked projection of the buffer instead of the buffer itself while
// reusing the same minimum-diff logic and cursor bookkeeping.
//
// When newText is identical to what's already rendered, nothing but the
// cursor moved (an arrow key, Home, or End that only repositioned the
// index), so the cursor is repositioned directly instead of running the
// prefix/suffix diff, which would otherwise walk it out to the end of the
// line and back for no visible reason.
func (l *Line) redrawWith(newText []rune) {
	if sameRunes(l.rendered, newText) {
		l.moveCursorTo(l.buf.Index())
		return
	}

	prefix := commonPrefixLen(l.rendered, newText)

	cub1 := l.capValue("cub1")
	cuf1 := l.capValue("cuf1")

	if l.cursorIndex > prefix {
		l.vt.Backward(l.cursorIndex-prefix, cub1)
	} else if l.cursorIndex < prefix {
		l.vt.Forward(prefix-l.cursorIndex, cuf1, false)
	}

	if len(l.rendered) > prefix {
		if eos := l.capValue("clr_eos"); len(eos) > 0 {
			l.out.Write(eos)
		}
	}

	suffix := string(newText[prefix:])
	l.vt.Write(suffix)
	l.cursorIndex = len(newText)
	l.rendered = newText

	l.moveCursorTo(l.buf.Index())
}

// moveCursorTo repositions the cursor from where redrawWith last left it to
// target, the buffer's current editing index, without touching rendered
// text.
func (l *Line) moveCursorTo(target int) {
	cub1 := l.capValue("cub1")
	cuf1 := l.capValue("cuf1")
	if l.cursorIndex > target {
		l.vt.Backward(l.cursorIndex-target, cub1)
	} else if l.cursorIndex < target {
		l.vt.Forward(target-l.cursorIndex, cuf1, false)
	}
	l.cursorIndex = target
}

func sameRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (l *Line) capValue(name string) []byte {
	c, err := l.ti.Get(name)
	if err != nil {
		rlog.Debugf("term: capability %q not in description: %s", name, err)
		return nil
	}
	return c.Value
}

func commonPrefixLen(a, b []rune) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
