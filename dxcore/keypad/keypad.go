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

// Package keypad implements the passcode entry state machine behind an
// on-screen numeric keypad.
//
// A Keypad accumulates digits up to a configured length. When the entry is
// full it evaluates the active rules, moves to passcode.StatusValid or
// passcode.StatusInvalid, and reports the outcome through the configured
// callbacks. A rejected entry stays on screen until the next digit press,
// which clears it and starts over.
//
// The keypad draws nothing. Hosts subscribe to Events and read an Indicator
// to render dots and colours, and may bind a StatusCell to observe or drive
// the status from outside.
//
// A Keypad is not safe for concurrent use. Every method is a synchronous
// reaction to one input event and returns before the next is handled.
package keypad

import (
	"fmt"

	"dirpx.dev/dxpass/dxcore/errors"
	"dirpx.dev/dxpass/dxcore/model/passcode"
	"dirpx.dev/dxpass/dxcore/model/rule"
	"dirpx.dev/rxmerr"
	"go.uber.org/zap"
)

// DefaultDigits is the passcode length used when Config.Digits is zero.
const DefaultDigits = 4

// MaxDigits is the longest passcode a keypad accepts.
const MaxDigits = 12

// Config configures a Keypad.
type Config struct {
	// Digits is the passcode length, at most MaxDigits. Zero means
	// DefaultDigits.
	Digits int

	// Rules are the active validation rules. Repeated rules count once.
	// Empty means every completed
	// entry is handed to OnComplete without a verdict; the status stays as
	// it was (normally StatusUnknown).
	Rules rule.Set

	// Status, when set, is kept in sync with the keypad's status.
	Status *StatusCell

	// OnComplete receives every accepted passcode. Required.
	OnComplete func(passcode string)

	// OnFailure receives the failure kind of every rejected passcode.
	OnFailure func(failure passcode.Failure)

	// Logger receives debug traces. Nil disables logging.
	Logger *zap.Logger
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	col := rxmerr.NewCollector()

	if c.Digits < 0 || c.Digits > MaxDigits {
		col.Append(&errors.ValidationError{
			Type:   "Config",
			Field:  "Digits",
			Reason: fmt.Sprintf("must be within [0, %d]", MaxDigits),
			Value:  c.Digits,
		})
	}
	if c.OnComplete == nil {
		col.Append(&errors.ValidationError{
			Type:   "Config",
			Field:  "OnComplete",
			Reason: "must not be nil",
		})
	}
	if err := c.Rules.Compact().Validate(); err != nil {
		col.Append(fmt.Errorf("rules: %w", err))
	}

	return col.Err()
}

// Keypad is the passcode entry state machine.
type Keypad struct {
	digits     int
	rules      rule.Set
	onComplete func(string)
	onFailure  func(passcode.Failure)
	log        *zap.Logger

	buffer []passcode.Digit
	status passcode.Status

	cell       *StatusCell
	cancelCell func()
	// syncing is set while the keypad writes its own status into cell, so
	// the resulting notification is not applied back.
	syncing bool

	subscribers []subscriber
	nextID      int
}

// New validates cfg and returns a Keypad with an empty entry.
//
// When cfg.Status is set the keypad adopts the cell's current value and
// observes it from then on.
func New(cfg Config) (*Keypad, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	digits := cfg.Digits
	if digits == 0 {
		digits = DefaultDigits
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	rules := cfg.Rules.Compact()

	k := &Keypad{
		digits:     digits,
		rules:      rules,
		onComplete: cfg.OnComplete,
		onFailure:  cfg.OnFailure,
		log:        log.Named("keypad"),
		buffer:     make([]passcode.Digit, 0, digits),
	}

	for _, r := range rules.Unsatisfiable(digits) {
		k.log.Warn("rule can never pass for this passcode length",
			zap.Stringer("rule", r),
			zap.Int("digits", digits))
	}

	if cfg.Status != nil {
		k.cell = cfg.Status
		k.status = cfg.Status.Get()
		k.cancelCell = cfg.Status.Observe(k.externalStatus)
	}

	return k, nil
}

// PressDigit handles a digit key.
//
// A rejected entry is cleared first. The digit is then appended unless the
// entry is already full; filling the last position evaluates the entry.
// The only error is a *ValidationError for a digit outside [0, 9], which
// leaves the keypad untouched.
func (k *Keypad) PressDigit(d passcode.Digit) error {
	if err := d.Validate(); err != nil {
		return err
	}

	if k.status == passcode.StatusInvalid {
		k.Reset()
	}

	if len(k.buffer) >= k.digits {
		k.log.Debug("entry full, digit ignored", zap.Int("length", len(k.buffer)))
		return nil
	}

	k.buffer = append(k.buffer, d)
	k.log.Debug("digit appended", zap.Int("length", len(k.buffer)))
	k.emit(Event{Kind: DigitAppended})

	if len(k.buffer) == k.digits {
		k.complete()
	}
	return nil
}

// PressDelete removes the last digit. It does nothing on an empty entry and
// never changes the status.
func (k *Keypad) PressDelete() {
	if len(k.buffer) == 0 {
		return
	}
	k.buffer = k.buffer[:len(k.buffer)-1]
	k.log.Debug("digit removed", zap.Int("length", len(k.buffer)))
	k.emit(Event{Kind: DigitRemoved})
}

// Reset sets the status to StatusUnknown and empties the entry.
func (k *Keypad) Reset() {
	k.setStatus(passcode.StatusUnknown)
	k.clear()
}

// Close stops observing the bound StatusCell. The keypad keeps working
// without it.
func (k *Keypad) Close() {
	if k.cancelCell != nil {
		k.cancelCell()
		k.cancelCell = nil
		k.cell = nil
	}
}

// Len returns the number of digits entered so far.
func (k *Keypad) Len() int {
	return len(k.buffer)
}

// Digits returns the configured passcode length.
func (k *Keypad) Digits() int {
	return k.digits
}

// Rules returns a copy of the active rules.
func (k *Keypad) Rules() rule.Set {
	out := make(rule.Set, len(k.rules))
	copy(out, k.rules)
	return out
}

// Status returns the current status.
func (k *Keypad) Status() passcode.Status {
	return k.status
}

// Entered returns the digits entered so far. Log it with Redacted.
func (k *Keypad) Entered() passcode.Passcode {
	return passcode.FromDigits(k.buffer)
}

// Indicator returns what the progress row shows right now.
func (k *Keypad) Indicator() Indicator {
	return Indicator{Filled: len(k.buffer), Total: k.digits, Status: k.status}
}

// Check evaluates the current entry without changing anything.
//
// For a full entry with active rules it returns the verdict the keypad
// reaches on completion. An incomplete entry, or a keypad without rules,
// has no verdict: Check returns StatusUnknown and FailureNone.
func (k *Keypad) Check() (passcode.Status, passcode.Failure) {
	if len(k.buffer) != k.digits || len(k.rules) == 0 {
		return passcode.StatusUnknown, passcode.FailureNone
	}
	if failure, ok := k.rules.Evaluate(k.Entered().String()); !ok {
		return passcode.StatusInvalid, failure
	}
	return passcode.StatusValid, passcode.FailureNone
}

// Subscribe registers fn for every Event and returns a function that removes
// it. Observers run synchronously in subscription order.
func (k *Keypad) Subscribe(fn func(Event)) (cancel func()) {
	k.nextID++
	id := k.nextID
	k.subscribers = append(k.subscribers, subscriber{id: id, fn: fn})

	return func() {
		for i, s := range k.subscribers {
			if s.id == id {
				k.subscribers = append(k.subscribers[:i], k.subscribers[i+1:]...)
				return
			}
		}
	}
}

// complete runs once per filled entry. With no rules the status is left
// alone and only the completion callback fires; callers rely on
// StatusUnknown there to mean "nothing was validated".
func (k *Keypad) complete() {
	entered := k.Entered()

	if len(k.rules) > 0 {
		status, failure := k.Check()
		if status == passcode.StatusInvalid {
			k.setStatus(passcode.StatusInvalid)
			k.log.Info("passcode rejected",
				zap.String("passcode", entered.Redacted()),
				zap.Stringer("failure", failure))
			k.emit(Event{Kind: Failed, Failure: failure})
			if k.onFailure != nil {
				k.onFailure(failure)
			}
			return
		}
		k.setStatus(passcode.StatusValid)
	}

	k.log.Info("passcode completed",
		zap.String("passcode", entered.Redacted()),
		zap.Stringer("status", k.status))
	k.emit(Event{Kind: Completed})
	k.onComplete(entered.String())
}

func (k *Keypad) clear() {
	if len(k.buffer) == 0 {
		return
	}
	k.buffer = k.buffer[:0]
	k.log.Debug("entry cleared")
	k.emit(Event{Kind: Cleared})
}

// setStatus changes the status from inside the keypad and pushes it to the
// bound cell.
func (k *Keypad) setStatus(s passcode.Status) {
	if s == k.status {
		return
	}
	k.status = s
	k.log.Debug("status changed", zap.Stringer("status", s))
	k.emit(Event{Kind: StatusChanged})

	if k.cell != nil {
		k.syncing = true
		k.cell.Set(s)
		k.syncing = false
	}
}

// externalStatus applies a value written to the bound cell by someone else.
// Last writer wins. Writing StatusUnknown also empties the entry, so a host
// can start a new attempt by resetting its status.
func (k *Keypad) externalStatus(s passcode.Status) {
	if k.syncing || s == k.status {
		return
	}
	k.status = s
	k.log.Debug("status set externally", zap.Stringer("status", s))
	k.emit(Event{Kind: StatusChanged})

	if s == passcode.StatusUnknown {
		k.clear()
	}
}

// emit fills in the current length and status and notifies subscribers.
func (k *Keypad) emit(e Event) {
	e.Length = len(k.buffer)
	e.Status = k.status

	subs := make([]subscriber, len(k.subscribers))
	copy(subs, k.subscribers)
	for _, s := range subs {
		s.fn(e)
	}
}
