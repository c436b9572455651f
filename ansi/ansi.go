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

// Package ansi defines ANSI control codes for styles and colours.
package ansi

import (
	"fmt"
	"strings"

	"github.com/samfoo/tracecheck/curated"
)

// Sentinal error patterns returned by ColorBuild().
const (
	UnknownPen       = "ansi: unknown pen (%s)"
	UnknownPaper     = "ansi: unknown paper (%s)"
	UnknownAttribute = "ansi: unknown attribute (%s)"
)

// ansi color.
var colours = map[string]int{
	"BLACK":   0,
	"RED":     1,
	"GREEN":   2,
	"YELLOW":  3,
	"BLUE":    4,
	"MAGENTA": 5,
	"CYAN":    6,
	"WHITE":   7,
	"NORMAL":  9,
}

// ansi target.
const (
	targetPen         = 3
	targetPaper       = 4
	targetBrightPen   = 9
	targetBrightPaper = 10
)

// ansi attribute.
var attributes = map[string]string{
	"BOLD":      "1",
	"DIM":       "2",
	"UNDERLINE": "4",
	"INVERSE":   "7",
	"STRIKE":    "9",
	"NORMAL":    "",
}

// Pens is the table of colors to be used for text.
var Pens map[string]string

// DimPens is the table of pastel colors to be used for text.
var DimPens map[string]string

// PenStyles is the table of styles to be used for text.
var PenStyles map[string]string

// NormalPen is the CSI sequence for regular text.
var NormalPen string

func init() {
	Pens = make(map[string]string)
	DimPens = make(map[string]string)
	PenStyles = make(map[string]string)

	NormalPen = mustBuild("", "", "", false, false)

	for _, c := range []string{"red", "green", "yellow", "blue", "magenta", "cyan", "white"} {
		Pens[c] = mustBuild(c, "normal", "", true, false)
		DimPens[c] = mustBuild(c, "normal", "", false, false)
	}

	for _, a := range []string{"bold", "dim", "underline"} {
		PenStyles[a] = mustBuild("", "", a, false, false)
	}
}

func mustBuild(pen, paper, attribute string, brightPen, brightPaper bool) string {
	s, err := ColorBuild(pen, paper, attribute, brightPen, brightPaper)
	if err != nil {
		panic(err)
	}
	return s
}

// ColorBuild creates the ANSI sequence to create the pen with the correct
// foreground/background color and attribute.
func ColorBuild(pen, paper, attribute string, brightPen, brightPaper bool) (string, error) {
	parts := make([]string, 0, 3)

	if pen != "" {
		c, ok := colours[strings.ToUpper(pen)]
		if !ok {
			return "", curated.Errorf(UnknownPen, pen)
		}
		target := targetPen
		if brightPen {
			target = targetBrightPen
		}
		parts = append(parts, fmt.Sprintf("%d%d", target, c))
	}

	if paper != "" {
		c, ok := colours[strings.ToUpper(paper)]
		if !ok {
			return "", curated.Errorf(UnknownPaper, paper)
		}
		target := targetPaper
		if brightPaper {
			target = targetBrightPaper
		}
		parts = append(parts, fmt.Sprintf("%d%d", target, c))
	}

	if attribute != "" {
		a, ok := attributes[strings.ToUpper(attribute)]
		if !ok {
			return "", curated.Errorf(UnknownAttribute, attribute)
		}
		if a != "" {
			parts = append(parts, a)
		}
	}

	return fmt.Sprintf("\033[%sm", strings.Join(parts, ";")), nil
}

// ClearLine is the CSI sequence to clear the entire of the current line.
const ClearLine = "\033[2K"

// Strip removes CSI colour sequences from a string. Only the 'm' terminated
// sequences created by this package and ClearLine are recognised.
func Strip(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] == ';' || (s[j] >= '0' && s[j] <= '9')) {
				j++
			}
			if j < len(s) && (s[j] == 'm' || s[j] == 'K') {
				i = j
				continue
			}
		}
		b.WriteByte(s[i])
	}

	return b.String()
}
