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

package trace

import (
	"fmt"
	"strings"

	"github.com/samfoo/tracecheck/curated"
)

// DefaultContextLines is the number of lines of the actual trace shown before a
// reported divergence.
const DefaultContextLines = 15

// DefaultColumnWidth is the number of characters of each line that are
// compared. Traces in the nestest.log format carry PPU and cycle columns
// beyond this width, which are not compared.
const DefaultColumnWidth = 73

// MissingPolicy decides what happens when the actual trace is shorter than the
// expected trace.
type MissingPolicy int

// List of valid MissingPolicy values. Use String() and ParseMissingPolicy() to
// convert to and from string representations.
const (
	// the missing line is a divergence like any other. it will be suppressed
	// if the line number is in the ExceptionSet
	MissingIsMismatch MissingPolicy = iota

	// the missing line is reported as a truncated trace. the ExceptionSet is
	// not consulted
	MissingIsTruncation

	// the end of the actual trace ends the comparison as though the expected
	// trace was exhausted
	MissingIsExhaustion
)

func (p MissingPolicy) String() string {
	switch p {
	case MissingIsMismatch:
		return "mismatch"
	case MissingIsTruncation:
		return "truncation"
	case MissingIsExhaustion:
		return "exhaustion"
	}
	return "undefined"
}

// InvalidMissingPolicy is returned by ParseMissingPolicy().
const InvalidMissingPolicy = "trace: invalid missing line policy (%s)"

// ParseMissingPolicy converts a string to a MissingPolicy.
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mismatch":
		return MissingIsMismatch, nil
	case "truncation":
		return MissingIsTruncation, nil
	case "exhaustion":
		return MissingIsExhaustion, nil
	}
	return MissingIsMismatch, curated.Errorf(InvalidMissingPolicy, s)
}

// Config is the set of tunable parameters for a comparison.
type Config struct {
	// the number of actual trace lines shown before a divergence
	ContextLines int

	// lines longer than this are truncated before comparison
	ColumnWidth int

	// what to do when the actual trace is shorter than the expected trace
	Missing MissingPolicy

	// line numbers that are allowed to diverge
	Exceptions ExceptionSet
}

// DefaultConfig returns a Config with default values and an empty
// ExceptionSet.
func DefaultConfig() Config {
	return Config{
		ContextLines: DefaultContextLines,
		ColumnWidth:  DefaultColumnWidth,
		Missing:      MissingIsMismatch,
	}
}

// InvalidConfig is returned by Config.Validate().
const InvalidConfig = "trace: invalid config: %s"

// Validate checks that the values in the Config make sense.
func (cfg Config) Validate() error {
	if cfg.ContextLines < 0 {
		return curated.Errorf(InvalidConfig, fmt.Sprintf("context lines cannot be negative (%d)", cfg.ContextLines))
	}
	if cfg.ColumnWidth < 0 {
		return curated.Errorf(InvalidConfig, fmt.Sprintf("column width cannot be negative (%d)", cfg.ColumnWidth))
	}
	switch cfg.Missing {
	case MissingIsMismatch, MissingIsTruncation, MissingIsExhaustion:
	default:
		return curated.Errorf(InvalidConfig, fmt.Sprintf("unknown missing line policy (%d)", cfg.Missing))
	}
	return nil
}
