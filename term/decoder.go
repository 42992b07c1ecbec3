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
	"bufio"
	"errors"
	"io"
	"os"
	"syscall"
	"time"
	"unicode"

	"golang.org/x/sys/unix"

	"github.com/gopherline/richline/internal/rlog"
	"github.com/gopherline/richline/terminfo"
)

// escState is the decoder's explicit state machine: any introducer byte,
// at any point, resets the collector to that byte's start state.
type escState int

const (
	stateGround escState = iota
	stateEsc                // saw ESC or CSI (0x9B); waiting for the next byte
	stateCSI                // collecting CSI parameter/intermediate bytes
	stateSS3                // saw ESC O; waiting for exactly one more byte
)

const (
	esc = 0x1B
	csi = 0x9B
)

// Decoder consumes raw bytes from a terminal and yields a lazy stream of
// classified Events. Events are constructed on demand and
// dropped after being read once.
type Decoder struct {
	ti *terminfo.Terminfo
	in *bufio.Reader
	fd int // -1 if the source isn't an *os.File we can poll
}

// NewDecoder returns a Decoder reading from r and resolving escape
// sequences against ti.
func NewDecoder(ti *terminfo.Terminfo, r io.Reader) *Decoder {
	fd := -1
	if f, ok := r.(*os.File); ok {
		fd = int(f.Fd())
	}
	return &Decoder{ti: ti, in: bufio.NewReader(r), fd: fd}
}

// Next blocks until the next byte(s) of input are available, classifies
// them, and returns the resulting Event. It returns io.EOF when the
// underlying reader is exhausted; signal interruptions (EINTR) and
// would-block errors (EAGAIN) are retried transparently and are not
// visible to the caller.
func (d *Decoder) Next() (Event, error) {
	r, err := d.readRune()
	if err != nil {
		return Event{}, err
	}

	if r == esc || r == csi {
		return d.readEscape(r)
	}
	// A code point outside the L, M, N, P, S and Z categories has a general
	// category beginning with "C" (Cc, Cf, Cs, Co, or unassigned Cn).
	if !unicode.In(r, unicode.L, unicode.M, unicode.N, unicode.P, unicode.S, unicode.Z) {
		return Event{Kind: ControlKey, Rune: r}, nil
	}
	return Event{Kind: PrintableChar, Rune: r}, nil
}

// readEscape collects one escape sequence starting with the introducer
// byte already read (ESC or single-byte CSI). It loops rather than
// recursing when an embedded introducer aborts the sequence in progress.
func (d *Decoder) readEscape(introducer rune) (Event, error) {
	state := stateEsc
	raw := []byte{esc}
	if introducer == csi {
		raw = append(raw, '[')
		state = stateCSI
	}

	for {
		b, err := d.readRune()
		if err != nil {
			return Event{}, err
		}

		// Any introducer byte, anywhere, resets the collector.
		if b == esc || b == csi {
			state = stateEsc
			raw = []byte{esc}
			if b == csi {
				raw = append(raw, '[')
				state = stateCSI
			}
			continue
		}

		switch state {
		case stateEsc:
			raw = append(raw, byte(b))
			switch b {
			case '[':
				state = stateCSI
			case 'O':
				state = stateSS3
			default:
				// A bare ESC-prefixed two-byte sequence stands alone.
				return d.detect(raw), nil
			}
		case stateCSI:
			raw = append(raw, byte(b))
			if isFinalByte(b) {
				return d.detect(raw), nil
			}
		case stateSS3:
			raw = append(raw, byte(b))
			return d.detect(raw), nil
		}
	}
}

// isFinalByte reports whether b terminates a CSI sequence: 0x40-0x7E, or
// the special 0x24 ('$') used by some extended DEC sequences.
func isFinalByte(b rune) bool {
	return (b >= 0x40 && b <= 0x7E) || b == 0x24
}

func (d *Decoder) detect(raw []byte) Event {
	matched := d.ti.Detect(raw)
	return Event{Kind: EscapeSequence, Capability: matched, Raw: raw}
}

// readRune reads the next decoded code point, retrying silently on
// interruption or (for a non-blocking fd) on would-block errors.
//
// The single-byte CSI introducer (0x9B) is not valid UTF-8 on its own, so
// bufio.Reader.ReadRune decodes it as U+FFFD rather than rune 0x9B. It is
// peeked and special-cased here before falling back to ReadRune, so that
// Next sees the same rune a caller feeding raw bytes would expect.
func (d *Decoder) readRune() (rune, error) {
	for {
		peek, err := d.in.Peek(1)
		if err == nil {
			if peek[0] == csi {
				d.in.Discard(1)
				return csi, nil
			}
			r, _, rerr := d.in.ReadRune()
			if rerr == nil {
				return r, nil
			}
			err = rerr
		}
		if errors.Is(err, io.EOF) {
			return 0, io.EOF
		}
		if isRetryable(err) {
			d.waitReadable()
			continue
		}
		return 0, err
	}
}

// isRetryable reports whether err is an EINTR/EAGAIN-equivalent that
// should be silently retried rather than propagated. os.File wraps the
// raw syscall.Errno in a *fs.PathError, which errors.Is unwraps.
func isRetryable(err error) bool {
	return errors.Is(err, syscall.EINTR) || errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.EWOULDBLOCK)
}

// waitReadable blocks until d.fd is readable, if it is a pollable file
// descriptor; otherwise it sleeps briefly to avoid busy-spinning against a
// source that doesn't support non-blocking reads.
func (d *Decoder) waitReadable() {
	if d.fd < 0 {
		time.Sleep(time.Millisecond)
		return
	}
	fds := []unix.PollFd{{Fd: int32(d.fd), Events: unix.POLLIN}}
	for {
		n, err := unix.Poll(fds, 250)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			rlog.Warnf("term: poll fd %d: %s", d.fd, err)
			return
		}
		if n > 0 {
			return
		}
	}
}
