// Copyright 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package frame

// Cursor consumes bytes from the front of a buffer without copying.
// It never reads past the end of the buffer; every read reports whether
// enough bytes were available.
type Cursor struct {
	buf []byte
	off int
}

// NewCursor returns a cursor positioned at the start of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// ReadByte consumes one byte. ok is false when the buffer is exhausted.
func (c *Cursor) ReadByte() (b byte, ok bool) {
	if c.off >= len(c.buf) {
		return 0, false
	}
	b = c.buf[c.off]
	c.off++
	return b, true
}

// Next consumes n bytes and returns them as a sub-slice of the buffer.
// Nothing is consumed when fewer than n bytes remain.
func (c *Cursor) Next(n int) ([]byte, bool) {
	if n < 0 || n > len(c.buf)-c.off {
		return nil, false
	}
	out := c.buf[c.off : c.off+n]
	c.off += n
	return out, true
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int {
	return c.off
}

// Len returns the number of unconsumed bytes.
func (c *Cursor) Len() int {
	return len(c.buf) - c.off
}

// Remaining returns the unconsumed tail of the buffer.
func (c *Cursor) Remaining() []byte {
	return c.buf[c.off:]
}
