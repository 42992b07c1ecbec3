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

package terminfo

// capSpec is one entry of the canonical, built-in capability ordering:
// the i-th entry of a section pairs with the i-th byte/int/offset read
// from the compiled file. The order here is a
// curated subset of the real ncurses capability order -- exactly the
// booleans, numbers, and strings a line-editing library consumes (window
// geometry, cursor motion, the arrow/home/end/delete/F1 keys, screen
// clearing) -- rather than the full ~470-entry ncurses table, since nothing
// in this module ever addresses the capabilities this subset omits.
type capSpec struct {
	Variable    string
	Capname     string
	Termcap     string
	Description string
}

// boolCaps is the canonical boolean capability ordering.
var boolCaps = []capSpec{
	{"auto_left_margin", "bw", "bw", "cub1 wraps from column 0 to last column"},
	{"auto_right_margin", "am", "am", "terminal has automatic margins"},
	{"eat_newline_glitch", "xenl", "xn", "newline ignored after wrap"},
	{"move_insert_mode", "mir", "mi", "safe to move while in insert mode"},
	{"move_standout_mode", "msgr", "ms", "safe to move in standout modes"},
	{"can_change", "ccc", "cc", "terminal can redefine colors"},
	{"has_meta_key", "km", "km", "has a meta key"},
	{"backspaces_with_bs", "bs", "bs", "terminal can backspace"},
}

// numCaps is the canonical number capability ordering.
var numCaps = []capSpec{
	{"columns", "cols", "co", "number of columns in a line"},
	{"lines", "lines", "li", "number of lines on screen"},
	{"max_colors", "colors", "Co", "maximum number of colors"},
	{"max_pairs", "pairs", "pa", "maximum number of color-pairs"},
	{"padding_baud_rate", "pb", "pb", "lowest baud rate where padding is needed"},
}

// stringCaps is the canonical string capability ordering. Tie-breaking in
// Detect follows this order.
var stringCaps = []capSpec{
	{"cursor_address", "cup", "cm", "move cursor to row #1, column #2"},
	{"cursor_up", "cuu1", "up", "move cursor up one line"},
	{"cursor_down", "cud1", "do", "move cursor down one line"},
	{"cursor_left", "cub1", "le", "move cursor left one column"},
	{"cursor_right", "cuf1", "nd", "move cursor right one column"},
	{"cursor_home", "home", "ho", "move cursor to home position"},
	{"clr_eol", "el", "ce", "clear to end of line"},
	{"clr_eos", "ed", "cd", "clear to end of screen"},
	{"clear_screen", "clear", "cl", "clear screen and home cursor"},
	{"bell", "bel", "bl", "audible signal"},
	{"carriage_return", "cr", "cr", "carriage return"},
	{"cursor_invisible", "civis", "vi", "make cursor invisible"},
	{"cursor_normal", "cnorm", "ve", "make cursor appear normal"},
	{"key_backspace", "kbs", "kb", "backspace key"},
	{"key_dc", "kdch1", "kD", "delete-character key"},
	{"key_down", "kcud1", "kd", "down-arrow key"},
	{"key_home", "khome", "kh", "home key"},
	{"key_left", "kcub1", "kl", "left-arrow key"},
	{"key_end", "kend", "@7", "end key"},
	{"key_right", "kcuf1", "kr", "right-arrow key"},
	{"key_up", "kcuu1", "ku", "up-arrow key"},
	{"key_f1", "kf1", "k1", "F1 function key"},
	{"key_f2", "kf2", "k2", "F2 function key"},
	{"key_f3", "kf3", "k3", "F3 function key"},
	{"key_f4", "kf4", "k4", "F4 function key"},
	{"key_ic", "kich1", "kI", "insert-character key"},
	{"key_npage", "knp", "kN", "next-page key"},
	{"key_ppage", "kpp", "kP", "previous-page key"},
	{"user7", "u7", "u7", "cursor-position report request (DSR)"},
	{"user6", "u6", "u6", "cursor-position report reply template"},
	{"parm_left_cursor", "cub", "LE", "move cursor left #1 columns"},
	{"parm_right_cursor", "cuf", "RI", "move cursor right #1 columns"},
	{"parm_up_cursor", "cuu", "UP", "move cursor up #1 lines"},
	{"parm_down_cursor", "cud", "DO", "move cursor down #1 lines"},
	{"save_cursor", "sc", "sc", "save cursor position"},
	{"restore_cursor", "rc", "rc", "restore cursor to saved position"},
	{"enter_ca_mode", "smcup", "ti", "enter alternate screen"},
	{"exit_ca_mode", "rmcup", "te", "exit alternate screen"},
	{"enter_insert_mode", "smir", "im", "enter insert mode"},
	{"exit_insert_mode", "rmir", "ei", "exit insert mode"},
}
