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

package performance

import (
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/samfoo/tracecheck/curated"
)

// Sentinal error patterns.
const (
	ProfileError   = "performance: %v"
	InvalidProfile = "performance: unrecognised profile (%s)"
)

// Profile specifies which profiling reports should be written.
type Profile int

// List of valid Profile values. Values can be combined.
const (
	ProfileNone Profile = 0
	ProfileCPU  Profile = 1 << iota
	ProfileMem
)

// ParseProfile converts a string to a Profile value. Valid strings are "none",
// "cpu", "mem" and "both". Case is ignored.
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return ProfileNone, nil
	case "cpu":
		return ProfileCPU, nil
	case "mem":
		return ProfileMem, nil
	case "both":
		return ProfileCPU | ProfileMem, nil
	}
	return ProfileNone, curated.Errorf(InvalidProfile, s)
}

func (p Profile) String() string {
	switch p {
	case ProfileNone:
		return "none"
	case ProfileCPU:
		return "cpu"
	case ProfileMem:
		return "mem"
	}
	return "both"
}

// Set implements the flag.Value interface.
func (p *Profile) Set(s string) error {
	v, err := ParseProfile(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// RunProfiler runs the supplied function, producing the requested profiles.
// Reports are named after the prefix: "prefix.cpu.profile" and
// "prefix.mem.profile".
//
// The error from the run function is returned in preference to any error from
// the profiler.
func RunProfiler(profile Profile, prefix string, run func() error) error {
	if profile&ProfileCPU == ProfileCPU {
		f, err := os.Create(prefix + ".cpu.profile")
		if err != nil {
			return curated.Errorf(ProfileError, err)
		}
		defer f.Close()

		err = pprof.StartCPUProfile(f)
		if err != nil {
			return curated.Errorf(ProfileError, err)
		}
		defer pprof.StopCPUProfile()
	}

	err := run()

	if profile&ProfileMem == ProfileMem {
		memErr := memProfile(prefix + ".mem.profile")
		if err == nil {
			err = memErr
		}
	}

	return err
}

func memProfile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf(ProfileError, err)
	}
	defer f.Close()

	runtime.GC()
	err = pprof.WriteHeapProfile(f)
	if err != nil {
		return curated.Errorf(ProfileError, err)
	}

	return nil
}
