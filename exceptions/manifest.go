// This file is part of tracecheck.
//
// tracecheck is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// tracecheck is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with tracecheck.  If not, see <https://www.gnu.org/licenses/>.

package exceptions

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"github.com/samfoo/tracecheck/curated"
	"github.com/samfoo/tracecheck/trace"
	"gopkg.in/yaml.v3"
)

// Version is the only manifest version that is understood.
const Version = 1

// Sentinal error patterns returned by functions in this package.
const (
	InvalidManifest = "exceptions: invalid manifest: %v"
	UnknownVersion  = "exceptions: unsupported manifest version (%d)"
	UnknownTrace    = "exceptions: no trace named '%s' in manifest"
	InvalidLine     = "exceptions: %s: invalid line number (%d)"
	DuplicateLine   = "exceptions: %s: duplicate line number (%d)"
)

// Exception is a single known exception.
type Exception struct {
	Line   int    `yaml:"line"`
	Reason string `yaml:"reason"`
}

// Entry is the list of exceptions for a single reference trace.
type Entry struct {
	Description string      `yaml:"description"`
	Exceptions  []Exception `yaml:"exceptions"`
}

// Manifest is the parsed form of a manifest document.
type Manifest struct {
	Version int              `yaml:"version"`
	Traces  map[string]Entry `yaml:"traces"`
}

// Parse the YAML data as a manifest. The manifest is checked for correctness
// before returning.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, curated.Errorf(InvalidManifest, err)
	}

	if m.Version != Version {
		return nil, curated.Errorf(UnknownVersion, m.Version)
	}

	for name, ent := range m.Traces {
		seen := make(map[int]bool, len(ent.Exceptions))
		for _, ex := range ent.Exceptions {
			if ex.Line < 1 {
				return nil, curated.Errorf(InvalidLine, name, ex.Line)
			}
			if seen[ex.Line] {
				return nil, curated.Errorf(DuplicateLine, name, ex.Line)
			}
			seen[ex.Line] = true
		}
	}

	return &m, nil
}

// Load reads and parses the manifest file at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, curated.Errorf(InvalidManifest, err)
	}
	return Parse(data)
}

//go:embed nestest.yaml
var defaultManifest []byte

// Default returns the embedded manifest.
func Default() *Manifest {
	m, err := Parse(defaultManifest)
	if err != nil {
		panic(fmt.Sprintf("embedded manifest: %v", err))
	}
	return m
}

// Names returns the sorted list of trace names in the manifest.
func (m *Manifest) Names() []string {
	n := make([]string, 0, len(m.Traces))
	for k := range m.Traces {
		n = append(n, k)
	}
	slices.Sort(n)
	return n
}

// Set returns the ExceptionSet for the named trace.
func (m *Manifest) Set(name string) (trace.ExceptionSet, error) {
	ent, ok := m.Traces[name]
	if !ok {
		return trace.ExceptionSet{}, curated.Errorf(UnknownTrace, name)
	}

	lines := make([]int, 0, len(ent.Exceptions))
	for _, ex := range ent.Exceptions {
		lines = append(lines, ex.Line)
	}

	return trace.NewExceptionSet(lines...), nil
}

// Lookup returns the Exception for the line in the named trace. The boolean
// result is false if the trace does not exist or if the line is not a known
// exception.
func (m *Manifest) Lookup(name string, line int) (Exception, bool) {
	ent, ok := m.Traces[name]
	if !ok {
		return Exception{}, false
	}
	for _, ex := range ent.Exceptions {
		if ex.Line == line {
			return ex, true
		}
	}
	return Exception{}, false
}
