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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/samfoo/tracecheck/trace"
)

// the length of the buffer we're using isn't really important. that said, it
// needs to be at least sha1.Size bytes in length
const traceBufferLength = 4096 + sha1.Size

// to allow us to create digests on traces longer than traceBufferLength, we
// stuff the previous digest value into the first part of the buffer and
// include it when we create the next digest value
const traceBufferStart = sha1.Size

// the byte that ends every line in the buffer. without it the traces
// ["AB"] and ["A", "B"] would have the same digest
const lineTerminator = '\n'

// Trace accumulates a digest of trace lines.
type Trace struct {
	digest   [sha1.Size]byte
	buffer   []byte
	bufferCt int
}

// NewTrace is the preferred method of initialisation for the Trace type.
func NewTrace() *Trace {
	dig := &Trace{}
	dig.buffer = make([]byte, traceBufferLength)
	dig.ResetDigest()
	return dig
}

// String returns the current digest value as a hex string. Lines that have
// been added but not yet flushed are included. The digest of an empty trace
// is all zeroes.
func (dig *Trace) String() string {
	if dig.bufferCt > traceBufferStart {
		return fmt.Sprintf("%x", sha1.Sum(dig.buffer[:dig.bufferCt]))
	}
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest resets the current digest value to zero.
func (dig *Trace) ResetDigest() {
	clear(dig.digest[:])
	clear(dig.buffer)
	dig.bufferCt = traceBufferStart
}

// AddLine adds a line to the digest.
func (dig *Trace) AddLine(l trace.Line) {
	b := []byte(l)
	for len(b) > 0 {
		n := copy(dig.buffer[dig.bufferCt:], b)
		dig.bufferCt += n
		b = b[n:]
		if dig.bufferCt >= traceBufferLength {
			dig.flush()
		}
	}

	dig.buffer[dig.bufferCt] = lineTerminator
	dig.bufferCt++
	if dig.bufferCt >= traceBufferLength {
		dig.flush()
	}
}

func (dig *Trace) flush() {
	dig.digest = sha1.Sum(dig.buffer[:dig.bufferCt])
	copy(dig.buffer, dig.digest[:])
	dig.bufferCt = traceBufferStart
}

// Of returns the digest of the entire trace.
func Of(t trace.Trace) string {
	dig := NewTrace()
	for _, l := range t {
		dig.AddLine(l)
	}
	return dig.String()
}
