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
	"testing"

	"dirpx.dev/dxpass/dxcore/model/passcode"
	"github.com/google/go-cmp/cmp"
)

func TestSet_Evaluate(t *testing.T) {
	both := NewSet(HasThreeUniqueDigits, IsNotWrappingSequence)

	tests := []struct {
		name        string
		set         Set
		pin         string
		wantFailure passcode.Failure
		wantOK      bool
	}{
		{"empty set accepts anything", nil, "1111", passcode.FailureNone, true},
		{"wrap after uniqueness passes", both, "1234", passcode.FailureIsWrappingSequence, false},
		{"uniqueness fails first", both, "1122", passcode.FailureNotEnoughUniqueDigits, false},
		{"uniqueness wins over wrap", both, "1111", passcode.FailureNotEnoughUniqueDigits, false},
		{"both pass", both, "1357", passcode.FailureNone, true},
		{"wrap only", NewSet(IsNotWrappingSequence), "1122", passcode.FailureNone, true},
		{"uniqueness only", NewSet(HasThreeUniqueDigits), "1234", passcode.FailureNone, true},
		{
			"listing order does not change precedence",
			NewSet(IsNotWrappingSequence, HasThreeUniqueDigits),
			"0000",
			passcode.FailureNotEnoughUniqueDigits,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failure, ok := tt.set.Evaluate(tt.pin)
			if failure != tt.wantFailure || ok != tt.wantOK {
				t.Errorf("Evaluate(%q) = (%v, %v), want (%v, %v)", tt.pin, failure, ok, tt.wantFailure, tt.wantOK)
			}
		})
	}
}

func TestSet_Evaluate_Deterministic(t *testing.T) {
	s := NewSet(HasThreeUniqueDigits, IsNotWrappingSequence)
	f1, ok1 := s.Evaluate("9012")
	f2, ok2 := s.Evaluate("9012")
	if f1 != f2 || ok1 != ok2 {
		t.Errorf("Evaluate() not repeatable: (%v, %v) then (%v, %v)", f1, ok1, f2, ok2)
	}
}

func TestSet_Active(t *testing.T) {
	got := NewSet(IsNotWrappingSequence, HasThreeUniqueDigits).Active()
	want := []Rule{HasThreeUniqueDigits, IsNotWrappingSequence}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Active() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, Precedence()); diff != "" {
		t.Errorf("Precedence() mismatch (-want +got):\n%s", diff)
	}
}

func TestSet_Compact(t *testing.T) {
	tests := []struct {
		name string
		set  Set
		want Set
	}{
		{"empty", nil, Set{}},
		{"no duplicates", NewSet(IsNotWrappingSequence, HasThreeUniqueDigits), NewSet(IsNotWrappingSequence, HasThreeUniqueDigits)},
		{"duplicates", NewSet(HasThreeUniqueDigits, IsNotWrappingSequence, HasThreeUniqueDigits), NewSet(HasThreeUniqueDigits, IsNotWrappingSequence)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.set.Compact()
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Compact() mismatch (-want +got):\n%s", diff)
			}
			if err := got.Validate(); err != nil {
				t.Errorf("Compact().Validate() error = %v", err)
			}
		})
	}
}

func TestSet_Unsatisfiable(t *testing.T) {
	s := NewSet(HasThreeUniqueDigits, IsNotWrappingSequence)

	if got := s.Unsatisfiable(4); len(got) != 0 {
		t.Errorf("Unsatisfiable(4) = %v, want none", got)
	}
	if diff := cmp.Diff([]Rule{HasThreeUniqueDigits}, s.Unsatisfiable(2)); diff != "" {
		t.Errorf("Unsatisfiable(2) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]Rule{HasThreeUniqueDigits, IsNotWrappingSequence}, s.Unsatisfiable(1)); diff != "" {
		t.Errorf("Unsatisfiable(1) mismatch (-want +got):\n%s", diff)
	}
}

func TestSet_Validate(t *testing.T) {
	tests := []struct {
		name    string
		set     Set
		wantErr bool
	}{
		{"empty", nil, false},
		{"both", NewSet(HasThreeUniqueDigits, IsNotWrappingSequence), false},
		{"duplicate", NewSet(HasThreeUniqueDigits, HasThreeUniqueDigits), true},
		{"unknown", NewSet(Rule(32)), true},
		{"sub-rule", NewSet(isNotIncreasingWrappingSequence), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.set.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSet_String(t *testing.T) {
	s := NewSet(HasThreeUniqueDigits, IsNotWrappingSequence)
	if got, want := s.String(), "[has-three-unique-digits, is-not-wrapping-sequence]"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if !Set(nil).IsZero() || s.IsZero() {
		t.Error("IsZero() wrong")
	}
}
