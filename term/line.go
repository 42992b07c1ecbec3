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

// IndexedLine is the logical editing buffer: a Unicode code-point sequence
// plus an insertion index, with the invariant 0 <= Index() <= Len() (spec
// §3, §4.4). The zero value is an empty line with the index at 0.
type IndexedLine struct {
	text  []rune
	index int
}

// NewIndexedLine returns an IndexedLine containing s, with the index at
// the end of the text.
func NewIndexedLine(s string) *IndexedLine {
	r := []rune(s)
	return &IndexedLine{text: r, index: len(r)}
}

// Text returns the current contents of the line.
func (l *IndexedLine) Text() string { return string(l.text) }

// Len returns the number of code points in the line.
func (l *IndexedLine) Len() int { return len(l.text) }

// Index returns the current insertion index.
func (l *IndexedLine) Index() int { return l.index }

// Insert splices s at the insertion index and advances the index by the
// number of code points inserted.
func (l *IndexedLine) Insert(s string) {
	r := []rune(s)
	if len(r) == 0 {
		return
	}
	out := make([]rune, 0, len(l.text)+len(r))
	out = append(out, l.text[:l.index]...)
	out = append(out, r...)
	out = append(out, l.text[l.index:]...)
	l.text = out
	l.index += len(r)
}

// DeleteBackward removes the code point immediately before the insertion
// index and decrements it, if the index is greater than zero.
func (l *IndexedLine) DeleteBackward() {
	if l.index <= 0 {
		return
	}
	l.text = append(l.text[:l.index-1], l.text[l.index:]...)
	l.index--
}

// DeleteForward removes the code point at the insertion index, leaving the
// index unchanged, if the index is before the end of the text.
func (l *IndexedLine) DeleteForward() {
	if l.index >= len(l.text) {
		return
	}
	l.text = append(l.text[:l.index], l.text[l.index+1:]...)
}

// MoveBackward moves the index back by n, clamping at 0, and reports
// whether the index actually changed.
func (l *IndexedLine) MoveBackward(n int) bool {
	return l.moveTo(l.index - n)
}

// MoveForward moves the index forward by n, clamping at Len(), and reports
// whether the index actually changed.
func (l *IndexedLine) MoveForward(n int) bool {
	return l.moveTo(l.index + n)
}

// MoveHome moves the index to 0 and reports whether it changed.
func (l *IndexedLine) MoveHome() bool {
	return l.moveTo(0)
}

// MoveEnd moves the index to the end of the text and reports whether it
// changed.
func (l *IndexedLine) MoveEnd() bool {
	return l.moveTo(len(l.text))
}

func (l *IndexedLine) moveTo(idx int) bool {
	if idx < 0 {
		idx = 0
	}
	if idx > len(l.text) {
		idx = len(l.text)
	}
	if idx == l.index {
		return false
	}
	l.index = idx
	return true
}
