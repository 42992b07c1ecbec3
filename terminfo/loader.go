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

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopherline/richline/internal/rlog"
)

// Configuration errors.
var (
	ErrTermUnset = errors.New("terminfo: TERM is unset and no fallback was provided")
	ErrNotFound  = errors.New("terminfo: no compiled terminfo entry found")
)

// Lookup errors.
var ErrNotAnEntry = errors.New("terminfo: not a known capability")

const defaultFallback = "vt100"

// searchDirs returns the ordered, de-duplicated list of terminfo database
// directories to probe:
//
//	TERMINFO (if set, search only there) else
//	TERMINFO_DIRS (":"-separated, empty entry == /usr/share/terminfo),
//	~/.terminfo, /etc/terminfo, /usr/local/ncurses/share/terminfo,
//	/lib/terminfo, /usr/share/terminfo
func searchDirs() []string {
	if dir := os.Getenv("TERMINFO"); dir != "" {
		return []string{dir}
	}

	var dirs []string
	if dirsEnv := os.Getenv("TERMINFO_DIRS"); dirsEnv != "" {
		for _, d := range strings.Split(dirsEnv, ":") {
			if d == "" {
				d = "/usr/share/terminfo"
			}
			dirs = append(dirs, d)
		}
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, filepath.Join(home, ".terminfo"))
	}
	dirs = append(dirs,
		"/etc/terminfo",
		"/usr/local/ncurses/share/terminfo",
		"/lib/terminfo",
		"/usr/share/terminfo",
	)

	seen := make(map[string]bool, len(dirs))
	out := dirs[:0]
	for _, d := range dirs {
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// resolveName decides the terminal name to load: explicit name, else TERM,
// else fallback. fallback is variadic purely to make it optional at the
// call site: omit it to get the built-in default ("vt100"); pass a single
// empty string to explicitly disable any fallback, in which case an unset
// TERM becomes ErrTermUnset rather than silently picking vt100.
func resolveName(explicit string, fallback ...string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if term := os.Getenv("TERM"); term != "" {
		return term, nil
	}
	if len(fallback) == 0 {
		return defaultFallback, nil
	}
	if fallback[0] != "" {
		return fallback[0], nil
	}
	return "", ErrTermUnset
}

// findFile searches, in order, each terminfo directory for
// <first-char-of-name>/<name>, returning the path of the first hit.
func findFile(name string) (string, error) {
	if name == "" {
		return "", ErrNotFound
	}
	sub := filepath.Join(name[0:1], name)
	for _, dir := range searchDirs() {
		path := filepath.Join(dir, sub)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Load resolves a terminal name (explicit, else $TERM, else fallback[0],
// or "vt100" when no fallback argument is passed; an empty fallback[0]
// with TERM unset gives ErrTermUnset, see resolveName), locates its
// compiled terminfo file, and decodes it into a Terminfo.
func Load(explicit string, fallback ...string) (*Terminfo, error) {
	name, err := resolveName(explicit, fallback...)
	if err != nil {
		return nil, err
	}

	path, err := findFile(name)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("terminfo: read %s: %w", path, err)
	}

	ti, err := decode(raw)
	if err != nil {
		return nil, fmt.Errorf("terminfo: decode %s: %w", path, err)
	}
	ti.file = path
	rlog.Debugf("terminfo: loaded %q from %s (%d strings indexed)", name, path, len(ti.byEscape))
	return ti, nil
}
