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

package termios

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// openPTY opens the controlling side of a pseudo-terminal pair, skipping
// the test if none is available in this environment (e.g. a sandboxed CI
// runner with no /dev/ptmx).
func openPTY(t *testing.T) *os.File {
	t.Helper()
	pty, err := os.OpenFile("/dev/ptmx", os.O_RDWR, 0)
	if err != nil {
		t.Skipf("no pty available: %s", err)
	}
	t.Cleanup(func() { pty.Close() })
	return pty
}

func TestAcquireNonReentrant(t *testing.T) {
	pty := openPTY(t)
	fd := int(pty.Fd())

	g, err := Acquire(fd)
	require.NoError(t, err)
	defer g.Release()

	_, err = Acquire(fd)
	assert.ErrorIs(t, err, ErrAlreadyRaw)
}

func TestAcquireReleaseRestoresAttributes(t *testing.T) {
	pty := openPTY(t)
	fd := int(pty.Fd())

	before, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	require.NoError(t, err)

	g, err := Acquire(fd)
	require.NoError(t, err)
	require.NoError(t, g.Release())

	after, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	require.NoError(t, err)
	assert.Equal(t, *before, *after)
}

func TestReleaseIsIdempotent(t *testing.T) {
	pty := openPTY(t)
	fd := int(pty.Fd())

	g, err := Acquire(fd)
	require.NoError(t, err)
	require.NoError(t, g.Release())
	require.NoError(t, g.Release())

	// A fresh Acquire should succeed now that the guard released its slot.
	g2, err := Acquire(fd)
	require.NoError(t, err)
	require.NoError(t, g2.Release())
}

func TestWindowSize(t *testing.T) {
	pty := openPTY(t)
	fd := int(pty.Fd())

	_, _, err := WindowSize(fd)
	// A freshly opened ptmx master has no size set by the kernel by
	// default on every platform; we only assert the call doesn't panic
	// and returns a well-formed error when it does fail.
	if err != nil {
		assert.Contains(t, err.Error(), "termios:")
	}
}
