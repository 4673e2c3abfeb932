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

package passcode

import (
	"encoding/json"
	"testing"
)

func TestFailure_String(t *testing.T) {
	tests := []struct {
		failure Failure
		want    string
	}{
		{FailureNone, "none"},
		{FailureNotEnoughUniqueDigits, "not-enough-unique-digits"},
		{FailureIsWrappingSequence, "is-wrapping-sequence"},
		{Failure(9), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.failure.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFailure_Valid(t *testing.T) {
	if FailureNone.Valid() {
		t.Error("FailureNone must not be a valid failure kind")
	}
	if !FailureNotEnoughUniqueDigits.Valid() || !FailureIsWrappingSequence.Valid() {
		t.Error("defined failure kinds must be valid")
	}
	if err := FailureNone.Validate(); err == nil {
		t.Error("FailureNone.Validate() expected error")
	}
	if !FailureNone.IsZero() {
		t.Error("FailureNone.IsZero() = false")
	}
}

func TestFailure_Description(t *testing.T) {
	tests := []struct {
		failure Failure
		want    string
	}{
		{FailureNotEnoughUniqueDigits, "Passcode does not contain three unique digits."},
		{FailureIsWrappingSequence, "Passcode contains wrapping sequence."},
		{FailureNone, ""},
	}

	for _, tt := range tests {
		if got := tt.failure.Description(); got != tt.want {
			t.Errorf("%v.Description() = %q, want %q", tt.failure, got, tt.want)
		}
	}
}

func TestParseFailure(t *testing.T) {
	tests := []struct {
		input   string
		want    Failure
		wantErr bool
	}{
		{"not-enough-unique-digits", FailureNotEnoughUniqueDigits, false},
		{"IsWrappingSequence", FailureIsWrappingSequence, false},
		{"is_wrapping_sequence", FailureIsWrappingSequence, false},
		{"none", FailureNone, true},
		{"", FailureNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFailure(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFailure() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFailure() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFailure_JSON(t *testing.T) {
	data, err := json.Marshal(FailureIsWrappingSequence)
	if err != nil || string(data) != `"is-wrapping-sequence"` {
		t.Fatalf("Marshal() = %s, %v", data, err)
	}
	if _, err := json.Marshal(FailureNone); err == nil {
		t.Error("Marshal(FailureNone) expected error")
	}

	var f Failure
	if err := json.Unmarshal([]byte(`"not-enough-unique-digits"`), &f); err != nil || f != FailureNotEnoughUniqueDigits {
		t.Errorf("Unmarshal() = %v, %v", f, err)
	}
	if err := json.Unmarshal([]byte(`0`), &f); err == nil {
		t.Error("Unmarshal(0) expected error")
	}
}
