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

// richline-demo is a basic example of the richline packages: it reads
// lines interactively from standard input, using the terminal's own
// terminfo description to drive cursor motion, and echoes each line back.
//
// Press ^C, type "quit", or close standard input to exit. ^D ends the
// current line the same way Enter does.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/gopherline/richline/internal/rlog"
	"github.com/gopherline/richline/term"
	"github.com/gopherline/richline/terminfo"
)

var (
	password = flag.Bool("password", false, "Do a password-masking demo instead of plain line editing")
	termName = flag.String("term", "", "Terminal name to load (default: $TERM)")
	logFile  = flag.String("log", "", "Write debug logs to this file instead of discarding them")
)

func main() {
	flag.Parse()

	if *logFile != "" {
		if err := rlog.ToFile(*logFile, zerolog.DebugLevel); err != nil {
			fmt.Fprintf(os.Stderr, "richline-demo: %s\n", err)
			os.Exit(1)
		}
	}

	ti, err := terminfo.Load(*termName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "richline-demo: loading terminfo: %s\n", err)
		os.Exit(1)
	}

	if *password {
		passwordDemo(ti)
	} else {
		lineDemo(ti)
	}
}

func lineDemo(ti *terminfo.Terminfo) {
	line := term.NewLine(ti, os.Stdin, os.Stdout)
	for {
		text, err := line.Read(nil, "", "> ")
		switch {
		case text == "quit":
			io.WriteString(os.Stdout, "Goodbye!\r\n")
			return
		case errors.Is(err, io.EOF):
			io.WriteString(os.Stdout, "\r\nGoodbye!\r\n")
			return
		case err != nil:
			fmt.Fprintf(os.Stderr, "\r\nread: %s\r\n", err)
			return
		default:
			fmt.Fprintf(os.Stdout, "you said: %q\r\n", text)
		}
	}
}

func passwordDemo(ti *terminfo.Terminfo) {
	pw := term.NewPassword(ti, os.Stdin, os.Stdout)
	text, err := pw.Read("password: ")
	if err != nil && !errors.Is(err, io.EOF) {
		fmt.Fprintf(os.Stderr, "\r\nread: %s\r\n", err)
		return
	}
	fmt.Fprintf(os.Stdout, "\r\nlength was %d characters\r\n", len([]rune(text)))
}
