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

// Package policy loads passcode policies from YAML or JSON documents.
//
// A policy fixes how many digits a passcode has and which validation rules
// are active:
//
//	version: 1.0.0
//	digits: 4
//	rules:
//	  - has-three-unique-digits
//	  - is-not-wrapping-sequence
//
// Omitted fields take their defaults (version 1.0.0, 4 digits, no rules).
// Decoding validates the whole document and reports every problem at once.
package policy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dirpx.dev/dxpass/dxcore/errors"
	"dirpx.dev/dxpass/dxcore/keypad"
	"dirpx.dev/dxpass/dxcore/model"
	"dirpx.dev/dxpass/dxcore/model/passcode"
	"dirpx.dev/dxpass/dxcore/model/rule"
	"dirpx.dev/dxpass/dxcore/model/schema"
	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// Digit count bounds accepted in documents.
const (
	MinDigits = 1
	MaxDigits = keypad.MaxDigits
)

// Policy is a passcode policy document.
type Policy struct {
	// Version is the document format version.
	Version schema.Version `json:"version" yaml:"version"`

	// Digits is the passcode length.
	Digits int `json:"digits" yaml:"digits"`

	// Rules lists the active validation rules. Order does not matter.
	Rules rule.Set `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// Default returns the policy used when no document is given: 4 digits and
// no rules.
func Default() Policy {
	return Policy{
		Version: schema.Current,
		Digits:  keypad.DefaultDigits,
	}
}

// Validate checks the whole policy and aggregates every violation.
//
// Beyond field ranges it rejects rules that no passcode of the configured
// length could ever pass, such as has-three-unique-digits with 2 digits.
func (p Policy) Validate() error {
	c := rxmerr.NewCollector()

	if err := p.Version.Validate(); err != nil {
		c.Append(err)
	}

	if p.Digits < MinDigits || p.Digits > MaxDigits {
		c.Append(&errors.ValidationError{
			Type:   "Policy",
			Field:  "Digits",
			Reason: fmt.Sprintf("must be within [%d, %d]", MinDigits, MaxDigits),
			Value:  p.Digits,
		})
	}

	if err := p.Rules.Validate(); err != nil {
		c.Append(err)
	} else if p.Digits >= MinDigits {
		for _, r := range p.Rules.Unsatisfiable(p.Digits) {
			c.Append(&errors.ValidationError{
				Type:   "Policy",
				Field:  "Rules",
				Reason: fmt.Sprintf("%s can never pass with %d digits", r, p.Digits),
				Value:  r.String(),
			})
		}
	}

	return c.Err()
}

// KeypadConfig returns a keypad configuration enforcing p.
func (p Policy) KeypadConfig(onComplete func(string), onFailure func(passcode.Failure)) keypad.Config {
	rules := make(rule.Set, len(p.Rules))
	copy(rules, p.Rules)
	return keypad.Config{
		Digits:     p.Digits,
		Rules:      rules,
		OnComplete: onComplete,
		OnFailure:  onFailure,
	}
}

// TypeName returns "Policy".
func (p Policy) TypeName() string {
	return "Policy"
}

// String returns a one-line summary.
func (p Policy) String() string {
	return fmt.Sprintf("Policy{Version:%s, Digits:%d, Rules:%s}", p.Version, p.Digits, p.Rules)
}

// Redacted returns the same representation as String. Policies hold no
// secrets.
func (p Policy) Redacted() string {
	return p.String()
}

// IsZero reports whether no field is set.
func (p Policy) IsZero() bool {
	return p.Version.IsZero() && p.Digits == 0 && len(p.Rules) == 0
}

// MarshalJSON encodes a valid policy.
func (p Policy) MarshalJSON() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	type alias Policy
	return json.Marshal(alias(p))
}

// UnmarshalJSON decodes a document over the defaults and validates it.
func (p *Policy) UnmarshalJSON(data []byte) error {
	type alias Policy
	decoded := alias(Default())
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&decoded); err != nil {
		return &errors.UnmarshalError{Type: "Policy", Data: data, Reason: err.Error()}
	}
	if err := Policy(decoded).Validate(); err != nil {
		return err
	}
	*p = Policy(decoded)
	return nil
}

// MarshalYAML encodes a valid policy.
func (p Policy) MarshalYAML() (any, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	type alias Policy
	return alias(p), nil
}

// UnmarshalYAML decodes a document over the defaults and validates it.
// Unknown keys are rejected, as in JSON documents.
func (p *Policy) UnmarshalYAML(node *yaml.Node) error {
	type alias Policy
	decoded := alias(Default())

	// node.Decode does not honour KnownFields, so re-decode strictly.
	raw, err := yaml.Marshal(node)
	if err != nil {
		return &errors.UnmarshalError{Type: "Policy", Reason: err.Error()}
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&decoded); err != nil {
		return &errors.UnmarshalError{Type: "Policy", Reason: err.Error()}
	}
	if err := Policy(decoded).Validate(); err != nil {
		return err
	}
	*p = Policy(decoded)
	return nil
}

var _ model.Model = (*Policy)(nil)

// Format selects the document encoding.
type Format int

const (
	// FormatYAML is the default encoding.
	FormatYAML Format = iota
	// FormatJSON is used for files ending in .json.
	FormatJSON
)

// FormatForPath picks the encoding from a file extension.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Decode parses and validates a policy document. An empty document yields
// Default.
func Decode(data []byte, format Format) (Policy, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Default(), nil
	}

	p := &Policy{}
	var err error
	switch format {
	case FormatJSON:
		err = model.FromJSON(data, p)
	default:
		err = model.FromYAML(data, p)
	}
	if err != nil {
		return Policy{}, err
	}
	return *p, nil
}

// Encode validates p and renders it in the requested format.
func Encode(p Policy, format Format) ([]byte, error) {
	if format == FormatJSON {
		return model.ToJSON(&p)
	}
	return model.ToYAML(&p)
}

// Load reads the policy document at path. An empty path yields Default.
func Load(path string) (Policy, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("reading policy %s: %w", path, err)
	}
	p, err := Decode(data, FormatForPath(path))
	if err != nil {
		return Policy{}, fmt.Errorf("loading policy %s: %w", path, err)
	}
	return p, nil
}
