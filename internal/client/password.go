// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PasswordEnv names the environment variable that supplies the master
// password to non-interactive runs.
const PasswordEnv = "TRACK_PASSWORD"

// TerminalPassword reads the password from PasswordEnv, then from the
// terminal without echo, and finally as a single line of in when in is not
// a terminal.
func TerminalPassword(in *os.File, out io.Writer) PasswordFunc {
	return func(prompt string) (string, error) {
		if password, ok := os.LookupEnv(PasswordEnv); ok {
			return password, nil
		}

		fd := int(in.Fd())
		if term.IsTerminal(fd) {
			fmt.Fprint(out, prompt)
			raw, err := term.ReadPassword(fd)
			fmt.Fprintln(out)
			if err != nil {
				return "", err
			}
			return string(raw), nil
		}

		return readLine(in)
	}
}

// StaticPassword always returns password.
func StaticPassword(password string) PasswordFunc {
	return func(string) (string, error) {
		return password, nil
	}
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
