/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package cli implements the dxpass command: checking passcodes against a
// policy, and entering one interactively on a terminal keypad.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"dirpx.dev/dxpass/dxcore/keypad"
	"dirpx.dev/dxpass/dxcore/model"
	"dirpx.dev/dxpass/dxcore/model/passcode"
	"dirpx.dev/dxpass/dxcore/policy"
	"go.uber.org/zap"
)

// ErrAborted is returned when the user interrupts a prompt or declines to
// retry.
var ErrAborted = errors.New("dxpass: aborted")

// DeleteKey removes the last digit when typed at the interactive prompt.
const DeleteKey = '-'

const usage = `usage:
  dxpass check [-policy file] [-reveal] [-debug] PASSCODE...
  dxpass enter [-policy file] [-reveal] [-debug]
`

// App carries the collaborators shared by the commands.
type App struct {
	Out    io.Writer
	Driver PromptDriver
	Logger *zap.Logger
}

// Run parses args (without the program name), runs the selected command and
// returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cmd, rest := args[0], args[1:]
	fs := flag.NewFlagSet("dxpass "+cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	policyPath := fs.String("policy", "", "policy document (YAML or JSON); built-in default if empty")
	reveal := fs.Bool("reveal", false, "print passcodes instead of masking them")
	debug := fs.Bool("debug", false, "enable development logging")
	if err := fs.Parse(rest); err != nil {
		return 2
	}

	logger := zap.NewNop()
	if *debug {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(stderr, "dxpass: %v\n", err)
			return 1
		}
		logger = l
	}
	defer func() { _ = logger.Sync() }()

	p, err := policy.Load(*policyPath)
	if err != nil {
		fmt.Fprintf(stderr, "dxpass: %v\n", err)
		return 1
	}
	logger.Debug("policy loaded", zap.Stringer("policy", p))

	app := &App{Out: stdout, Driver: NewSurveyDriver(), Logger: logger}

	switch cmd {
	case "check":
		if fs.NArg() == 0 {
			fmt.Fprint(stderr, usage)
			return 2
		}
		ok, err := app.Check(p, fs.Args(), *reveal)
		if err != nil {
			fmt.Fprintf(stderr, "dxpass: %v\n", err)
			return 1
		}
		if !ok {
			return 1
		}
		return 0
	case "enter":
		if _, err := app.Enter(ctx, p, *reveal); err != nil {
			fmt.Fprintf(stderr, "dxpass: %v\n", err)
			return 1
		}
		return 0
	default:
		fmt.Fprintf(stderr, "dxpass: unknown command %q\n%s", cmd, usage)
		return 2
	}
}

// Check runs every candidate through a fresh keypad configured by p and
// prints one verdict line per candidate. It reports whether all of them were
// accepted.
func (a *App) Check(p policy.Policy, candidates []string, reveal bool) (bool, error) {
	allOK := true

	for _, raw := range candidates {
		shown := model.SafeString(passcode.Passcode(raw), reveal)

		pin, err := passcode.Parse(raw)
		if err != nil {
			fmt.Fprintf(a.Out, "%s: rejected (digits 0-9 only)\n", shown)
			allOK = false
			continue
		}
		if pin.Len() != p.Digits {
			fmt.Fprintf(a.Out, "%s: rejected (needs %d digits, got %d)\n", shown, p.Digits, pin.Len())
			allOK = false
			continue
		}

		var (
			completed bool
			failure   passcode.Failure
		)
		cfg := p.KeypadConfig(
			func(string) { completed = true },
			func(f passcode.Failure) { failure = f },
		)
		cfg.Logger = a.Logger
		kp, err := keypad.New(cfg)
		if err != nil {
			return false, err
		}

		digits, ok := pin.Digits()
		if !ok {
			fmt.Fprintf(a.Out, "%s: rejected (digits 0-9 only)\n", shown)
			allOK = false
			continue
		}
		for _, d := range digits {
			if err := kp.PressDigit(d); err != nil {
				return false, err
			}
		}

		switch {
		case failure.Valid():
			fmt.Fprintf(a.Out, "%s: %s (%s)\n", shown, kp.Status(), failure.Description())
			allOK = false
		case completed && kp.Status() == passcode.StatusUnknown:
			fmt.Fprintf(a.Out, "%s: accepted (no rules)\n", shown)
		case completed:
			fmt.Fprintf(a.Out, "%s: %s\n", shown, kp.Status())
		}
	}

	return allOK, nil
}

// Enter prompts for digits until a passcode completes and returns it.
//
// Each answer is fed to the keypad key by key: digits are pressed, DeleteKey
// deletes, anything else is ignored. Partial answers accumulate across
// prompts. After a rejected passcode the user is asked whether to retry.
func (a *App) Enter(ctx context.Context, p policy.Policy, reveal bool) (passcode.Passcode, error) {
	var (
		result   passcode.Passcode
		done     bool
		rejected passcode.Failure
	)
	cfg := p.KeypadConfig(
		func(pin string) {
			result = passcode.Passcode(pin)
			done = true
		},
		func(f passcode.Failure) { rejected = f },
	)
	cfg.Logger = a.Logger
	kp, err := keypad.New(cfg)
	if err != nil {
		return "", err
	}
	cancel := kp.Subscribe(func(e keypad.Event) {
		if e.Shake() {
			fmt.Fprintln(a.Out, "✗")
		}
	})
	defer cancel()

	for !done {
		answer, err := a.Driver.Password(ctx, PasswordConfig{
			Message: fmt.Sprintf("Passcode (%d digits)", p.Digits),
			Help:    fmt.Sprintf("Type digits; %q deletes the last one.", DeleteKey),
		})
		if err != nil {
			return "", err
		}

		a.press(kp, answer)
		ind := kp.Indicator()
		fmt.Fprintf(a.Out, "%s %s\n", ind, ind.Tint())

		// A rejection earlier in the same answer is moot once a later
		// attempt completes.
		if done {
			break
		}
		if rejected.Valid() {
			fmt.Fprintln(a.Out, rejected.Description())
			rejected = passcode.FailureNone

			retry, err := a.Driver.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
			if err != nil {
				return "", err
			}
			if !retry {
				return "", ErrAborted
			}
		}
	}

	fmt.Fprintf(a.Out, "passcode %s entered\n", model.SafeString(result, reveal))
	return result, nil
}

func (a *App) press(kp *keypad.Keypad, answer string) {
	for _, r := range strings.TrimSpace(answer) {
		if r == DeleteKey {
			kp.PressDelete()
			continue
		}
		d, ok := passcode.DigitFromRune(r)
		if !ok {
			a.logger().Debug("ignoring key", zap.Int("rune", int(r)))
			continue
		}
		// Digits come from DigitFromRune and are always in range.
		_ = kp.PressDigit(d)
	}
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}
