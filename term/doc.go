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

// Package term implements interactive line editing against a terminfo
// description: a raw-byte decoder that classifies keystrokes, a virtual
// cursor that mirrors where the hardware cursor sits under line wrap, an
// indexed line buffer, and a Line editor that binds the two together and
// redraws with a minimum-diff algorithm after each keystroke.
//
// A Line is driven with Read, which takes over the terminal (via a
// termios.Guard) for the duration of the call:
//
//	ti, _ := terminfo.Load("")
//	line := term.NewLine(ti, os.Stdin, os.Stdout)
//	text, err := line.Read(nil, "", "> ")
//
// The callback argument to Read, if non-nil, is invoked after every
// keystroke with the event and the Line, whose Buffer holds the text and
// index after the keystroke; the text and index from before the keystroke
// are not passed. It is given the default redraw as a continuation it may
// call after
// transforming what will be echoed -- this is how Password (see password.go)
// is implemented without forking the editor.
package term
