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

package keypad

import (
	"testing"

	"dirpx.dev/dxpass/dxcore/model/passcode"
	"dirpx.dev/dxpass/dxcore/model/rule"
	"github.com/google/go-cmp/cmp"
)

func TestStatusCell_SetNotifiesOnChange(t *testing.T) {
	c := NewStatusCell(passcode.StatusUnknown)
	var seen []passcode.Status
	cancel := c.Observe(func(s passcode.Status) { seen = append(seen, s) })

	c.Set(passcode.StatusUnknown)
	c.Set(passcode.StatusValid)
	c.Set(passcode.StatusValid)
	cancel()
	c.Set(passcode.StatusInvalid)

	if diff := cmp.Diff([]passcode.Status{passcode.StatusValid}, seen); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
	if c.Get() != passcode.StatusInvalid {
		t.Errorf("Get() = %v, want invalid", c.Get())
	}
}

func TestBinding_InternalChangesReachCell(t *testing.T) {
	cell := NewStatusCell(passcode.StatusUnknown)
	var seen []passcode.Status
	cell.Observe(func(s passcode.Status) { seen = append(seen, s) })

	h := newHarness(t, Config{Rules: bothRules, Status: cell})
	h.enter("1111")
	if cell.Get() != passcode.StatusInvalid {
		t.Fatalf("cell = %v, want invalid", cell.Get())
	}

	h.enter("2")
	h.enter("468")
	want := []passcode.Status{passcode.StatusInvalid, passcode.StatusUnknown, passcode.StatusValid}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Errorf("cell history mismatch (-want +got):\n%s", diff)
	}
}

func TestBinding_NoFeedbackLoop(t *testing.T) {
	cell := NewStatusCell(passcode.StatusUnknown)
	h := newHarness(t, Config{Rules: bothRules, Status: cell})
	h.enter("1357")

	var changes int
	for _, e := range h.events {
		if e.Kind == StatusChanged {
			changes++
		}
	}
	if changes != 1 {
		t.Errorf("StatusChanged emitted %d times, want 1", changes)
	}
}

func TestBinding_ExternalResetClearsEntry(t *testing.T) {
	cell := NewStatusCell(passcode.StatusUnknown)
	h := newHarness(t, Config{Rules: bothRules, Status: cell})
	h.enter("1357")

	cell.Set(passcode.StatusUnknown)

	if h.kp.Status() != passcode.StatusUnknown || h.kp.Len() != 0 {
		t.Fatalf("after external reset: Status() = %v, Len() = %d", h.kp.Status(), h.kp.Len())
	}

	h.enter("2468")
	if diff := cmp.Diff([]string{"1357", "2468"}, h.completed); diff != "" {
		t.Errorf("completed mismatch (-want +got):\n%s", diff)
	}
}

func TestBinding_ExternalVerdictKeepsEntry(t *testing.T) {
	cell := NewStatusCell(passcode.StatusUnknown)
	h := newHarness(t, Config{Status: cell})
	h.enter("12")

	cell.Set(passcode.StatusInvalid)
	if h.kp.Status() != passcode.StatusInvalid || h.kp.Len() != 2 {
		t.Fatalf("Status() = %v, Len() = %d", h.kp.Status(), h.kp.Len())
	}

	// An externally rejected entry clears on the next digit like any other.
	h.enter("3")
	if h.kp.Len() != 1 || h.kp.Status() != passcode.StatusUnknown {
		t.Errorf("Status() = %v, Len() = %d", h.kp.Status(), h.kp.Len())
	}
	if cell.Get() != passcode.StatusUnknown {
		t.Errorf("cell = %v, want unknown", cell.Get())
	}
}

func TestBinding_AdoptsInitialCellValue(t *testing.T) {
	cell := NewStatusCell(passcode.StatusInvalid)
	h := newHarness(t, Config{Status: cell})
	if h.kp.Status() != passcode.StatusInvalid {
		t.Errorf("Status() = %v, want invalid", h.kp.Status())
	}
}

func TestBinding_NoRulesLeavesExternalStatus(t *testing.T) {
	cell := NewStatusCell(passcode.StatusValid)
	h := newHarness(t, Config{Digits: 2, Status: cell})
	h.enter("11")

	if h.kp.Status() != passcode.StatusValid || cell.Get() != passcode.StatusValid {
		t.Errorf("Status() = %v, cell = %v, want valid for both", h.kp.Status(), cell.Get())
	}
	if diff := cmp.Diff([]string{"11"}, h.completed); diff != "" {
		t.Errorf("completed mismatch (-want +got):\n%s", diff)
	}
}

func TestBinding_Close(t *testing.T) {
	cell := NewStatusCell(passcode.StatusUnknown)
	h := newHarness(t, Config{Rules: rule.NewSet(rule.HasThreeUniqueDigits), Status: cell})
	h.kp.Close()
	h.kp.Close()

	h.enter("1111")
	if cell.Get() != passcode.StatusUnknown {
		t.Errorf("closed keypad wrote %v to the cell", cell.Get())
	}
	cell.Set(passcode.StatusValid)
	if h.kp.Status() != passcode.StatusInvalid {
		t.Errorf("closed keypad followed the cell: %v", h.kp.Status())
	}
}

func TestIndicator_Tint(t *testing.T) {
	tests := []struct {
		status passcode.Status
		want   Tint
		name   string
	}{
		{passcode.StatusUnknown, TintAccent, "accent"},
		{passcode.StatusValid, TintValid, "valid"},
		{passcode.StatusInvalid, TintInvalid, "invalid"},
	}

	for _, tt := range tests {
		got := Indicator{Total: 4, Status: tt.status}.Tint()
		if got != tt.want || got.String() != tt.name {
			t.Errorf("Tint(%v) = %v, want %v", tt.status, got, tt.name)
		}
	}
	if got := (Indicator{Filled: 6, Total: 4}).String(); got != "●●●●" {
		t.Errorf("overfilled String() = %q", got)
	}
}
