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

// Package rule implements the passcode validation rules.
//
// A Rule is an enum-like identity paired with a pure predicate over a
// completed passcode string. Rules are stateless constants; they compare by
// identity, never by behaviour, and every rule has its own distinct identity
// value so that membership checks on a Set are exact.
//
// Two rules can be activated by callers:
//
//   - HasThreeUniqueDigits passes when the passcode contains at least three
//     distinct digits ("1123" passes, "1122" does not).
//   - IsNotWrappingSequence passes when the passcode is neither an ascending
//     nor a descending run modulo 10 starting at its own first digit ("1234",
//     "8901", "3210" and "1098" all fail).
//
// A Set holds the active rules. Set.Evaluate always checks rules in the fixed
// precedence order above, whatever order the Set lists them in, and reports
// only the first failure.
package rule

import (
	"encoding/json"
	"strconv"
	"strings"

	"dirpx.dev/dxpass/dxcore/errors"
	"dirpx.dev/dxpass/dxcore/model"
	"dirpx.dev/dxpass/dxcore/model/passcode"
	"gopkg.in/yaml.v3"
)

// Rule identifies a passcode validation rule.
//
// Identities are single bits and never collide. The zero value is not a rule.
type Rule int

const (
	// HasThreeUniqueDigits requires at least three distinct digits. It can
	// never pass for passcodes shorter than three digits.
	HasThreeUniqueDigits Rule = 1 << iota

	// IsNotWrappingSequence rejects ascending and descending runs that wrap
	// modulo 10. It is the conjunction of the two sub-rules below. It can
	// never pass for single-digit passcodes, which are trivially a run.
	IsNotWrappingSequence

	isNotIncreasingWrappingSequence
	isNotDecreasingWrappingSequence
)

// String constants for Rule values, as they appear in policy documents.
const (
	HasThreeUniqueDigitsStr  = "has-three-unique-digits"
	IsNotWrappingSequenceStr = "is-not-wrapping-sequence"

	isNotIncreasingWrappingSequenceStr = "is-not-increasing-wrapping-sequence"
	isNotDecreasingWrappingSequenceStr = "is-not-decreasing-wrapping-sequence"
)

// MinUniqueDigits is the distinct digit count HasThreeUniqueDigits requires.
const MinUniqueDigits = 3

// precedence is the fixed evaluation order of activatable rules.
var precedence = [...]Rule{HasThreeUniqueDigits, IsNotWrappingSequence}

// Precedence returns the activatable rules in evaluation order.
func Precedence() []Rule {
	out := make([]Rule, len(precedence))
	copy(out, precedence[:])
	return out
}

// ParseRule converts a rule name into a Rule. kebab-case, CamelCase and
// snake_case spellings are accepted. Sub-rule names are not: only the rules
// in Precedence can be activated.
func ParseRule(s string) (Rule, error) {
	switch s {
	case HasThreeUniqueDigitsStr, "HasThreeUniqueDigits", "has_three_unique_digits":
		return HasThreeUniqueDigits, nil
	case IsNotWrappingSequenceStr, "IsNotWrappingSequence", "is_not_wrapping_sequence":
		return IsNotWrappingSequence, nil
	default:
		return 0, &errors.ParseError{Type: "Rule", Value: s}
	}
}

// String returns the canonical name of r, or "unknown".
func (r Rule) String() string {
	switch r {
	case HasThreeUniqueDigits:
		return HasThreeUniqueDigitsStr
	case IsNotWrappingSequence:
		return IsNotWrappingSequenceStr
	case isNotIncreasingWrappingSequence:
		return isNotIncreasingWrappingSequenceStr
	case isNotDecreasingWrappingSequence:
		return isNotDecreasingWrappingSequenceStr
	default:
		return "unknown"
	}
}

// Valid reports whether r is a rule callers can activate.
func (r Rule) Valid() bool {
	return r == HasThreeUniqueDigits || r == IsNotWrappingSequence
}

// Check reports whether pin satisfies r. Identities that name no rule impose
// no constraint and always pass.
func (r Rule) Check(pin string) bool {
	switch r {
	case HasThreeUniqueDigits:
		return UniqueDigits(pin) >= MinUniqueDigits
	case IsNotWrappingSequence:
		return isNotIncreasingWrappingSequence.Check(pin) && isNotDecreasingWrappingSequence.Check(pin)
	case isNotIncreasingWrappingSequence:
		return !IsIncreasingWrappingSequence(pin)
	case isNotDecreasingWrappingSequence:
		return !IsDecreasingWrappingSequence(pin)
	default:
		return true
	}
}

// Failure returns the failure kind reported when r rejects a passcode.
// Sub-rules and unknown identities return passcode.FailureNone.
func (r Rule) Failure() passcode.Failure {
	switch r {
	case HasThreeUniqueDigits:
		return passcode.FailureNotEnoughUniqueDigits
	case IsNotWrappingSequence:
		return passcode.FailureIsWrappingSequence
	default:
		return passcode.FailureNone
	}
}

// Satisfiable reports whether any passcode of the given length can pass r.
func (r Rule) Satisfiable(length int) bool {
	switch r {
	case HasThreeUniqueDigits:
		return length >= MinUniqueDigits
	case IsNotWrappingSequence:
		return length >= 2
	default:
		return true
	}
}

// TypeName returns "Rule".
func (r Rule) TypeName() string {
	return "Rule"
}

// Redacted returns the same representation as String.
func (r Rule) Redacted() string {
	return r.String()
}

// IsZero reports whether r is the zero value.
func (r Rule) IsZero() bool {
	return r == 0
}

// Equal reports whether other is a Rule or *Rule with the same identity.
func (r Rule) Equal(other any) bool {
	switch v := other.(type) {
	case Rule:
		return r == v
	case *Rule:
		if v == nil {
			return false
		}
		return r == *v
	default:
		return false
	}
}

// Validate returns a *ValidationError unless r can be activated.
func (r Rule) Validate() error {
	if !r.Valid() {
		return &errors.ValidationError{
			Type:   "Rule",
			Reason: "invalid Rule value",
			Value:  int(r),
		}
	}
	return nil
}

// MarshalJSON encodes an activatable rule as its name.
func (r Rule) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, &errors.MarshalError{Type: "Rule", Value: int(r)}
	}
	return []byte(`"` + r.String() + `"`), nil
}

// UnmarshalJSON accepts the rule name or its numeric identity.
func (r *Rule) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return &errors.UnmarshalError{Type: "Rule", Data: data, Reason: "empty data"}
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return &errors.UnmarshalError{Type: "Rule", Data: data, Reason: err.Error()}
		}
		parsed, err := ParseRule(s)
		if err != nil {
			return err
		}
		*r = parsed
		return nil
	}

	var i int
	if err := json.Unmarshal(data, &i); err != nil {
		return &errors.UnmarshalError{Type: "Rule", Data: data, Reason: err.Error()}
	}
	if !Rule(i).Valid() {
		return &errors.UnmarshalError{Type: "Rule", Data: data, Reason: "invalid numeric value " + strconv.Itoa(i)}
	}
	*r = Rule(i)
	return nil
}

// MarshalYAML encodes an activatable rule as its name.
func (r Rule) MarshalYAML() (any, error) {
	if !r.Valid() {
		return nil, &errors.MarshalError{Type: "Rule", Value: int(r)}
	}
	return r.String(), nil
}

// UnmarshalYAML accepts a rule name.
func (r *Rule) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Rule", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseRule(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (r Rule) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, &errors.MarshalError{Type: "Rule", Value: int(r)}
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler via ParseRule.
func (r *Rule) UnmarshalText(text []byte) error {
	parsed, err := ParseRule(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

var _ model.Model = (*Rule)(nil)

// UniqueDigits returns the number of distinct characters in pin.
func UniqueDigits(pin string) int {
	var seen strings.Builder
	for _, c := range pin {
		if !strings.ContainsRune(seen.String(), c) {
			seen.WriteRune(c)
		}
	}
	return len([]rune(seen.String()))
}

// IsIncreasingWrappingSequence reports whether pin equals the run d, d+1, ...
// modulo 10 where d is its first digit ("789012" is one). An empty pin, or a
// pin whose first character is not a digit, is reported as a sequence so that
// IsNotWrappingSequence rejects it.
func IsIncreasingWrappingSequence(pin string) bool {
	return isWrappingSequence(pin, 1)
}

// IsDecreasingWrappingSequence is the descending counterpart of
// IsIncreasingWrappingSequence ("210987" is one).
func IsDecreasingWrappingSequence(pin string) bool {
	return isWrappingSequence(pin, -1)
}

func isWrappingSequence(pin string, step int) bool {
	runes := []rune(pin)
	if len(runes) == 0 {
		return true
	}
	first, ok := passcode.DigitFromRune(runes[0])
	if !ok {
		return true
	}
	for i, c := range runes {
		want := ((int(first)+step*i)%10 + 10) % 10
		if c != rune('0'+want) {
			return false
		}
	}
	return true
}
