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

// Package schema versions dxpass policy documents.
//
// Every policy document carries a semantic version of the document format
// (not of the software). A reader accepts any version inside Supported, so a
// 1.x reader can load documents written by any other 1.x writer. Parsing and
// comparison are delegated to github.com/blang/semver/v4.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"dirpx.dev/dxpass/dxcore/errors"
	"dirpx.dev/dxpass/dxcore/model"
	bsemver "github.com/blang/semver/v4"
	"gopkg.in/yaml.v3"
)

// SupportedRange is the range of document versions this module reads.
const SupportedRange = ">=1.0.0 <2.0.0"

// Current is the version written into new documents.
var Current = MustParse("1.0.0")

var supported = bsemver.MustParseRange(SupportedRange)

// Version is a document format version, e.g. 1.0.0.
//
// The zero value is 0.0.0 and is outside SupportedRange.
type Version struct {
	v bsemver.Version
}

// Parse reads a version such as "1.2.0" or "v1.2.0".
func Parse(s string) (Version, error) {
	bv, err := bsemver.Parse(strings.TrimPrefix(strings.TrimSpace(s), "v"))
	if err != nil {
		return Version{}, &errors.ParseError{Type: "Version", Value: s}
	}
	return Version{v: bv}, nil
}

// MustParse is like Parse but panics on error. It is meant for constants.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("schema: %v", err))
	}
	return v
}

// Major returns the major component.
func (v Version) Major() uint64 {
	return v.v.Major
}

// Supported reports whether documents of version v can be read.
func (v Version) Supported() bool {
	return supported(v.v)
}

// Compare returns -1, 0 or 1 following semver precedence.
func (v Version) Compare(other Version) int {
	return v.v.Compare(other.v)
}

// String returns the canonical form without a "v" prefix.
func (v Version) String() string {
	return v.v.String()
}

// Redacted returns the same representation as String.
func (v Version) Redacted() string {
	return v.String()
}

// TypeName returns "Version".
func (v Version) TypeName() string {
	return "Version"
}

// IsZero reports whether v is 0.0.0 without prerelease or build parts.
func (v Version) IsZero() bool {
	return v.v.EQ(bsemver.Version{}) && len(v.v.Build) == 0
}

// Validate requires v to be inside SupportedRange.
func (v Version) Validate() error {
	if err := v.v.Validate(); err != nil {
		return &errors.ValidationError{Type: "Version", Reason: err.Error(), Value: v.String()}
	}
	if !v.Supported() {
		return &errors.ValidationError{
			Type:   "Version",
			Reason: "unsupported document version, want " + SupportedRange,
			Value:  v.String(),
		}
	}
	return nil
}

// MarshalJSON encodes v as a JSON string.
func (v Version) MarshalJSON() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes a JSON string. Range checks are left to Validate so
// callers can report an unsupported version with the rest of a document's
// problems.
func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Version", Data: data, Reason: err.Error()}
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML encodes v as a YAML string.
func (v Version) MarshalYAML() (any, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v.String(), nil
}

// UnmarshalYAML decodes a YAML scalar. See UnmarshalJSON.
func (v *Version) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Version", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

var _ model.Model = (*Version)(nil)
