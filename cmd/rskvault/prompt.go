// Copyright (c) 2026 Rskvault Team
// rskvault - secure Rootstock wallet CLI
// This source code is licensed under the MIT license found in the LICENSE file.

package rskvault

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/rskvault/rskvault/internal/security"
)

// ErrPasswordMismatch is returned when the two entries of a new password
// prompt differ.
var ErrPasswordMismatch = errors.New("passwords do not match")

var (
	stdinReader *bufio.Reader
	stdinSource *os.File
)

// stdin returns a buffered reader over the current os.Stdin. The reader is
// reused across prompts so a pipe feeding several answers is not drained by
// the first read, and rebuilt when os.Stdin itself is swapped.
func stdin() *bufio.Reader {
	if stdinReader == nil || stdinSource != os.Stdin {
		stdinSource = os.Stdin
		stdinReader = bufio.NewReader(os.Stdin)
	}
	return stdinReader
}

// promptForConfirmation displays a prompt and reads a line from stdin.
func promptForConfirmation(prompt string) string {
	fmt.Print(prompt)
	answer, _ := stdin().ReadString('\n')
	return strings.TrimSpace(strings.ToLower(answer))
}

// readPassword reads a password without echo when stdin is a terminal and
// falls back to a plain line read when it is not (pipes, test harnesses).
// The newline the user typed is never part of the password.
func readPassword(prompt string) (security.Password, error) {
	fmt.Print(prompt)
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return security.Password{}, fmt.Errorf("could not read password: %w", err)
		}
		return security.PasswordFromBytes(raw), nil
	}
	line, err := stdin().ReadString('\n')
	if err != nil && line == "" {
		return security.Password{}, fmt.Errorf("could not read password: %w", err)
	}
	return security.NewPassword(strings.TrimRight(line, "\r\n")), nil
}

// readNewPassword prompts twice and verifies both entries match, the usual
// flow when sealing a new wallet.
func readNewPassword() (security.Password, error) {
	first, err := readPassword("Password: ")
	if err != nil {
		return security.Password{}, err
	}
	second, err := readPassword("Repeat password: ")
	if err != nil {
		return security.Password{}, err
	}
	if !first.Equal(second) {
		return security.Password{}, ErrPasswordMismatch
	}
	return first, nil
}

// passwordFromFlagOrPrompt prefers a --password flag value and prompts
// otherwise. Passing secrets on the command line leaks them into shell
// history and the process list, so flag use draws a warning.
func passwordFromFlagOrPrompt(flagValue, prompt string) (security.Password, error) {
	if flagValue != "" {
		fmt.Fprintln(os.Stderr, "warning: --password is visible in shell history and the process list")
		return security.NewPassword(flagValue), nil
	}
	return readPassword(prompt)
}
