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

package rule

import (
	"fmt"
	"strings"

	"dirpx.dev/dxpass/dxcore/errors"
	"dirpx.dev/dxpass/dxcore/model"
	"dirpx.dev/dxpass/dxcore/model/passcode"
	"dirpx.dev/rxmerr"
)

// Set is the list of active rules. Its order is irrelevant to evaluation.
// An empty Set imposes no constraint.
type Set []Rule

// NewSet returns a Set holding rules.
func NewSet(rules ...Rule) Set {
	return Set(rules)
}

// Contains reports whether r is active in s.
func (s Set) Contains(r Rule) bool {
	for _, have := range s {
		if have == r {
			return true
		}
	}
	return false
}

// Compact returns s without repeated rules, keeping the first occurrence of
// each.
func (s Set) Compact() Set {
	out := make(Set, 0, len(s))
	for _, r := range s {
		if !out.Contains(r) {
			out = append(out, r)
		}
	}
	return out
}

// Active returns the rules of s in precedence order.
func (s Set) Active() []Rule {
	out := make([]Rule, 0, len(s))
	for _, r := range precedence {
		if s.Contains(r) {
			out = append(out, r)
		}
	}
	return out
}

// Evaluate checks pin against the active rules in precedence order. The
// first rule to fail stops evaluation and its failure kind is returned with
// false. When every active rule passes (or s is empty) it returns
// passcode.FailureNone and true.
//
// Evaluate is a pure function of s and pin.
func (s Set) Evaluate(pin string) (passcode.Failure, bool) {
	for _, r := range precedence {
		if s.Contains(r) && !r.Check(pin) {
			return r.Failure(), false
		}
	}
	return passcode.FailureNone, true
}

// Unsatisfiable returns the active rules no passcode of the given length can
// ever pass, in precedence order.
func (s Set) Unsatisfiable(length int) []Rule {
	var out []Rule
	for _, r := range s.Active() {
		if !r.Satisfiable(length) {
			out = append(out, r)
		}
	}
	return out
}

// Validate reports unknown and duplicate identities, all at once.
func (s Set) Validate() error {
	c := rxmerr.NewCollector()

	if err := model.ValidateAll([]Rule(s)); err != nil {
		c.Append(err)
	}

	seen := make(map[Rule]bool, len(s))
	for i, r := range s {
		if seen[r] {
			c.Append(&errors.ValidationError{
				Type:   "Set",
				Field:  fmt.Sprintf("[%d]", i),
				Reason: "duplicate rule " + r.String(),
				Value:  int(r),
			})
		}
		seen[r] = true
	}

	return c.Err()
}

// TypeName returns "Set".
func (s Set) TypeName() string {
	return "Set"
}

// String lists the rule names, for example "[has-three-unique-digits]".
func (s Set) String() string {
	names := make([]string, len(s))
	for i, r := range s {
		names[i] = r.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// Redacted returns the same representation as String.
func (s Set) Redacted() string {
	return s.String()
}

// IsZero reports whether s has no active rules.
func (s Set) IsZero() bool {
	return len(s) == 0
}
