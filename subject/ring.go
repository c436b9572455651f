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

package subject

// ringWriter keeps the most recent bytes written to it. It is used to keep the
// end of a subject's stderr, which is where the reason for a failure is most
// likely to be.
type ringWriter struct {
	buffer  []byte
	size    int
	cursor  int
	wrapped bool
}

func newRingWriter(size int) *ringWriter {
	return &ringWriter{
		size:   size,
		buffer: make([]byte, size),
	}
}

func (r *ringWriter) String() string {
	if r.wrapped {
		return string(r.buffer[r.cursor:]) + string(r.buffer[:r.cursor])
	}
	return string(r.buffer[:r.cursor])
}

// Write implements the io.Writer interface. It always reports that all of p
// has been written.
func (r *ringWriter) Write(p []byte) (int, error) {
	n := len(p)

	// only the end of p can fit
	if n >= r.size {
		copy(r.buffer, p[n-r.size:])
		r.cursor = 0
		r.wrapped = true
		return n, nil
	}

	l := copy(r.buffer[r.cursor:], p)
	if l < n {
		copy(r.buffer, p[l:])
		r.wrapped = true
	}
	r.cursor = (r.cursor + n) % r.size
	if r.cursor == 0 && n > 0 {
		r.wrapped = true
	}

	return n, nil
}
