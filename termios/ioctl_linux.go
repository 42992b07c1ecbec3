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

import "golang.org/x/sys/unix"

// ioctl request numbers for getting/setting termios attributes differ per
// kernel. Linux uses the TCGETS/TCSETSW family; TCSETSW (rather than plain
// TCSETS) waits for queued output to drain before applying the change, the
// "drain-on-change" restore semantics the raw-mode guard requires.
const (
	ioctlGetTermios = unix.TCGETS
	ioctlSetTermios = unix.TCSETSW
)
