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

// Package termios places a TTY file descriptor into cbreak, non-blocking
// mode for the duration of an interactive read and restores it afterward.
//
// A Guard is the scoped acquisition described in the line-editor design: on
// Acquire it saves the current termios attributes and fcntl flags, switches
// the terminal to single-character reads with signals preserved, and marks
// the fd non-blocking; Release (idempotent) restores both, attributes first
// and then flags, on every exit path, including panics if the caller
// defers it.
package termios

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/gopherline/richline/internal/rlog"
)

// ErrAlreadyRaw is returned by Acquire when the descriptor already has an
// outstanding Guard; the guard is non-reentrant.
var ErrAlreadyRaw = errors.New("termios: descriptor already in raw mode")

// Guard is a scoped raw-mode acquisition of a single file descriptor.
type Guard struct {
	fd       int
	saved    unix.Termios
	savedFl  int
	released bool
}

// acquired tracks which fds currently own a Guard, enforcing non-reentrancy.
var (
	acquiredMu sync.Mutex
	acquired   = map[int]bool{}
)

// Acquire saves fd's current terminal attributes and file-status flags,
// then switches it to cbreak (non-canonical, unbuffered, echo-less) mode
// with non-blocking reads. Signals (INTR/QUIT/SUSP) are left enabled.
func Acquire(fd int) (*Guard, error) {
	acquiredMu.Lock()
	if acquired[fd] {
		acquiredMu.Unlock()
		return nil, ErrAlreadyRaw
	}
	acquired[fd] = true
	acquiredMu.Unlock()
	release := func() {
		acquiredMu.Lock()
		delete(acquired, fd)
		acquiredMu.Unlock()
	}

	orig, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		release()
		return nil, fmt.Errorf("termios: get attributes: %w", err)
	}

	flags, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0)
	if err != nil {
		release()
		return nil, fmt.Errorf("termios: get file status flags: %w", err)
	}

	raw := *orig
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN
	raw.Iflag &^= unix.IXON | unix.ICRNL | unix.BRKINT | unix.INPCK | unix.ISTRIP
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &raw); err != nil {
		release()
		return nil, fmt.Errorf("termios: set attributes: %w", err)
	}
	if _, err := unix.FcntlInt(uintptr(fd), unix.F_SETFL, flags|unix.O_NONBLOCK); err != nil {
		unix.IoctlSetTermios(fd, ioctlSetTermios, orig)
		release()
		return nil, fmt.Errorf("termios: set non-blocking: %w", err)
	}

	rlog.Debugf("termios: fd %d acquired (raw mode)", fd)
	return &Guard{fd: fd, saved: *orig, savedFl: flags}, nil
}

// Release restores the attributes and flags saved by Acquire. It is safe
// to call more than once; only the first call has an effect.
func (g *Guard) Release() error {
	if g == nil || g.released {
		return nil
	}
	g.released = true
	acquiredMu.Lock()
	delete(acquired, g.fd)
	acquiredMu.Unlock()

	var firstErr error
	if err := unix.IoctlSetTermios(g.fd, ioctlSetTermios, &g.saved); err != nil {
		firstErr = fmt.Errorf("termios: restore attributes: %w", err)
	}
	if _, err := unix.FcntlInt(uintptr(g.fd), unix.F_SETFL, g.savedFl); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("termios: restore file status flags: %w", err)
	}
	rlog.Debugf("termios: fd %d released", g.fd)
	return firstErr
}

// WindowSize reports the current terminal width and height in columns and
// rows, as reported by the kernel for fd.
func WindowSize(fd int) (width, height int, err error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, fmt.Errorf("termios: get window size: %w", err)
	}
	return int(ws.Col), int(ws.Row), nil
}
