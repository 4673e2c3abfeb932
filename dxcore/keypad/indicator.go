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
	"strings"

	"dirpx.dev/dxpass/dxcore/model/passcode"
)

// Tint is the palette role used to colour the progress dots.
type Tint int

const (
	// TintAccent is used while no verdict has been reached.
	TintAccent Tint = iota
	// TintValid is used once the entry passed its rules.
	TintValid
	// TintInvalid is used once the entry was rejected.
	TintInvalid
)

// String returns "accent", "valid" or "invalid".
func (t Tint) String() string {
	switch t {
	case TintValid:
		return "valid"
	case TintInvalid:
		return "invalid"
	default:
		return "accent"
	}
}

// Indicator is a snapshot of what the progress row shows.
type Indicator struct {
	Filled int
	Total  int
	Status passcode.Status
}

// Dots returns one entry per position, true where a digit was entered.
func (i Indicator) Dots() []bool {
	dots := make([]bool, i.Total)
	for n := 0; n < i.Filled && n < i.Total; n++ {
		dots[n] = true
	}
	return dots
}

// Tint maps the status to its palette role.
func (i Indicator) Tint() Tint {
	switch i.Status {
	case passcode.StatusValid:
		return TintValid
	case passcode.StatusInvalid:
		return TintInvalid
	default:
		return TintAccent
	}
}

// String renders the dots as "●●○○".
func (i Indicator) String() string {
	var b strings.Builder
	for _, filled := range i.Dots() {
		if filled {
			b.WriteRune('●')
		} else {
			b.WriteRune('○')
		}
	}
	return b.String()
}
