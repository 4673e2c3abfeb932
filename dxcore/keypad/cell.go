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

// StatusCell is an observable passcode.Status value shared between a Keypad
// and its host.
//
// Writes that do not change the value are ignored and notify nobody. A cell
// is not safe for concurrent use; it lives on the same event loop as the
// keypad bound to it.
type StatusCell struct {
	value     passcode.Status
	observers []cellObserver
	nextID    int
}

type cellObserver struct {
	id int
	fn func(passcode.Status)
}

// NewStatusCell returns a cell holding initial.
func NewStatusCell(initial passcode.Status) *StatusCell {
	return &StatusCell{value: initial}
}

// Get returns the current value.
func (c *StatusCell) Get() passcode.Status {
	return c.value
}

// Set stores s and notifies observers in subscription order if the value
// changed.
func (c *StatusCell) Set(s passcode.Status) {
	if s == c.value {
		return
	}
	c.value = s

	observers := make([]cellObserver, len(c.observers))
	copy(observers, c.observers)
	for _, o := range observers {
		o.fn(s)
	}
}

// Observe registers fn for value changes and returns a function that removes
// it. Calling the returned function more than once is harmless.
func (c *StatusCell) Observe(fn func(passcode.Status)) (cancel func()) {
	c.nextID++
	id := c.nextID
	c.observers = append(c.observers, cellObserver{id: id, fn: fn})

	return func() {
		for i, o := range c.observers {
			if o.id == id {
				c.observers = append(c.observers[:i], c.observers[i+1:]...)
				return
			}
		}
	}
}
