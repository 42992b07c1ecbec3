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
	"io"

	"github.com/gopherline/richline/termios"
)

// VTerm mirrors the position of the hardware cursor on the physical
// screen, accounting for line wrap, so that the line editor can compute
// the right sequence of motion bytes without ever reading the screen
// back. Coordinates are 1-based; the invariant 1 <= X <= Width holds
// after every motion.
type VTerm struct {
	w      io.Writer
	fd     int // descriptor to re-query window size/cursor position from
	X, Y   int
	Width  int
	Height int
}

// NewVTerm constructs a VTerm anchored at (x, y) for a terminal of the
// given width/height. Use QueryCursor/QuerySize to learn these from the
// real terminal at construction time.
func NewVTerm(w io.Writer, fd, x, y, width, height int) *VTerm {
	return &VTerm{w: w, fd: fd, X: x, Y: y, Width: width, Height: height}
}

// QuerySize re-reads the window geometry from the kernel. Nothing in this
// package calls it: Line.Read reads the size once when it starts, and no
// window-resize signal is handled.
func (v *VTerm) QuerySize() error {
	w, h, err := termios.WindowSize(v.fd)
	if err != nil {
		return err
	}
	v.Width, v.Height = w, h
	return nil
}

// QueryCursor writes the cursor-position-report request (ESC [ 6 n) and
// reads the reply (ESC [ row ; col R) rune by rune from dec's input,
// adopting the reported position.
func (v *VTerm) QueryCursor(dec *Decoder) error {
	if _, err := io.WriteString(v.w, "\x1b[6n"); err != nil {
		return err
	}
	row, col, err := readCursorReport(dec)
	if err != nil {
		return err
	}
	v.X, v.Y = col, row
	return nil
}

// Forward advances the logical cursor by s code points, wrapping across
// line boundaries as needed, and (unless updateOnly is set) emits the
// capability bytes that move the physical cursor to match.
func (v *VTerm) Forward(s int, cuf1 []byte, updateOnly bool) {
	if s <= 0 {
		return
	}
	if v.X+s <= v.Width {
		if !updateOnly {
			v.emitN(cuf1, s)
		}
		v.X += s
		return
	}

	down := (v.X + s - 1) / v.Width
	newX := ((v.X + s - 1) % v.Width) + 1
	if !updateOnly {
		v.echo([]byte("\r"))
		for i := 0; i < down; i++ {
			v.echo([]byte("\n"))
		}
		if newX > 1 {
			v.emitN(cuf1, newX-1)
		}
	}
	v.X = newX
	v.Y += down
}

// Backward moves the logical cursor back by s code points, emitting s
// copies of cub1. It never emits row-up sequences even when it crosses a
// line boundary the cursor previously wrapped across -- this assumes the
// terminal remembers the physical row the forward motion left it on,
// which holds for a cooperative emulator that hasn't scrolled in the
// interim (see DESIGN.md, Open Questions).
func (v *VTerm) Backward(s int, cub1 []byte) {
	if s <= 0 {
		return
	}
	v.emitN(cub1, s)

	if s <= v.X-1 {
		v.X -= s
		return
	}

	remaining := s - (v.X - 1)
	rows := (remaining + v.Width - 1) / v.Width
	v.Y -= rows
	v.X = v.Width - ((remaining - 1) % v.Width)
}

// Write emits text verbatim and advances the mirror as if a forward
// motion of len([]rune(text)) happened in update-only mode.
func (v *VTerm) Write(text string) {
	v.echo([]byte(text))
	v.Forward(len([]rune(text)), nil, true)
}

func (v *VTerm) emitN(seq []byte, n int) {
	if len(seq) == 0 || n <= 0 {
		return
	}
	for i := 0; i < n; i++ {
		v.echo(seq)
	}
}

func (v *VTerm) echo(b []byte) {
	if v.w == nil {
		return
	}
	v.w.Write(b)
}

// readCursorReport reads an ESC [ row ; col R reply from the decoder's
// input without requiring the terminfo description to carry a matching
// capability (the reply is read directly, rune by rune, rather than via
// Decoder.Next, since it must not be misclassified against an unrelated
// bound capability).
func readCursorReport(dec *Decoder) (row, col int, err error) {
	var buf []byte
	for {
		r, rerr := dec.readRune()
		if rerr != nil {
			return 0, 0, rerr
		}
		buf = append(buf, byte(r))
		if r == 'R' {
			break
		}
		if len(buf) > 32 {
			return 0, 0, fmt.Errorf("term: cursor-position reply too long: %q", buf)
		}
	}
	if _, err := fmt.Sscanf(string(buf), "\x1b[%d;%dR", &row, &col); err != nil {
		return 0, 0, fmt.Errorf("term: malformed cursor-position reply %q: %w", buf, err)
	}
	return row, col, nil
}
