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

import "dirpx.dev/dxpass/dxcore/model/passcode"

// EventKind tells observers what changed.
type EventKind int

const (
	// DigitAppended is emitted after a digit was added to the entry.
	DigitAppended EventKind = iota + 1
	// DigitRemoved is emitted after the delete key removed a digit.
	DigitRemoved
	// Cleared is emitted after a non-empty entry was emptied by a reset.
	Cleared
	// StatusChanged is emitted after the status changed, whichever side
	// (keypad or bound cell) wrote it.
	StatusChanged
	// Completed is emitted when a full entry was accepted, right before the
	// completion callback runs.
	Completed
	// Failed is emitted when a full entry was rejected, right before the
	// failure callback runs.
	Failed
)

// String returns the kind's name.
func (k EventKind) String() string {
	switch k {
	case DigitAppended:
		return "digit-appended"
	case DigitRemoved:
		return "digit-removed"
	case Cleared:
		return "cleared"
	case StatusChanged:
		return "status-changed"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event describes a keypad change. It never carries the entered digits; a
// presentation layer needs only the length to draw dots.
type Event struct {
	Kind    EventKind
	Length  int
	Status  passcode.Status
	Failure passcode.Failure
}

// Shake reports whether the event is a transition into StatusInvalid, the
// moment the presentation layer plays its error animation.
func (e Event) Shake() bool {
	return e.Kind == StatusChanged && e.Status == passcode.StatusInvalid
}

type subscriber struct {
	id int
	fn func(Event)
}
