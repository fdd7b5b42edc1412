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

package stream

import (
	"bytes"
	"errors"
	"fmt"

	rplidar "github.com/ZaparooProject/go-rplidar"
	"github.com/ZaparooProject/go-rplidar/internal/frame"
	"github.com/ZaparooProject/go-rplidar/internal/syncutil"
)

var (
	// ErrNeedMore means the buffer holds only the start of a packet.
	ErrNeedMore = errors.New("need more data")
	// ErrBufferFull means a write would exceed Config.MaxBufferSize.
	ErrBufferFull = errors.New("decoder buffer full")
)

// Stats counts decoder activity.
type Stats struct {
	Packets   int // requests returned by Next
	Discarded int // bytes dropped while resynchronising
	Invalid   int // packets rejected for unknown command or bad checksum
}

// Decoder turns a byte stream into requests. It is safe for concurrent use.
type Decoder struct {
	cfg   Config
	buf   []byte
	stats Stats
	mu    syncutil.RWMutex
}

// NewDecoder creates a decoder. A nil cfg uses DefaultConfig. MaxBufferSize
// is raised to frame.MaxRequestLength so any single packet fits.
func NewDecoder(cfg *Config) *Decoder {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	if c.MaxBufferSize <= 0 {
		c.MaxBufferSize = DefaultConfig().MaxBufferSize
	}
	if c.MaxBufferSize < frame.MaxRequestLength {
		c.MaxBufferSize = frame.MaxRequestLength
	}
	return &Decoder{cfg: c}
}

// Write appends p to the decode buffer. It never retains p.
func (d *Decoder) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.buf)+len(p) > d.cfg.MaxBufferSize {
		return 0, fmt.Errorf("%w: %d buffered + %d new > %d",
			ErrBufferFull, len(d.buf), len(p), d.cfg.MaxBufferSize)
	}
	d.buf = append(d.buf, p...)
	return len(p), nil
}

// Next returns the next complete request. It returns an error wrapping
// ErrNeedMore when the buffered bytes are not yet a whole packet.
func (d *Decoder) Next() (rplidar.Request, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for {
		if len(d.buf) == 0 {
			return rplidar.Request{}, ErrNeedMore
		}

		req, rest, err := rplidar.ParseRequest(d.buf)
		switch {
		case err == nil:
			d.consume(len(d.buf) - len(rest))
			d.stats.Packets++
			return req, nil

		case rplidar.IsIncomplete(err):
			return rplidar.Request{}, fmt.Errorf("%w: %w", ErrNeedMore, err)

		case errors.Is(err, rplidar.ErrMissingStartFlag):
			d.resync(0)

		case rplidar.IsCorrupt(err):
			d.stats.Invalid++
			rplidar.Debugf("stream: dropping packet at %s: %v", rplidar.FormatHex(d.head()), err)
			// Drop the start flag only; the rest may hold the real packet.
			d.resync(1)
			if !d.cfg.SkipInvalid {
				return rplidar.Request{}, err
			}

		default:
			return rplidar.Request{}, err
		}
	}
}

// resync discards the first skip bytes and everything after them up to the
// next start flag, or the whole buffer when there is none.
func (d *Decoder) resync(skip int) {
	n := len(d.buf)
	if idx := bytes.IndexByte(d.buf[skip:], rplidar.StartFlag); idx >= 0 {
		n = skip + idx
	}
	rplidar.Debugf("stream: discarding %d bytes: %s", n, rplidar.FormatHex(d.buf[:n]))
	d.stats.Discarded += n
	d.consume(n)
}

func (d *Decoder) consume(n int) {
	remaining := copy(d.buf, d.buf[n:])
	d.buf = d.buf[:remaining]
}

// head returns up to the first 8 buffered bytes for log lines.
func (d *Decoder) head() []byte {
	if len(d.buf) > 8 {
		return d.buf[:8]
	}
	return d.buf
}

// Buffered returns the number of bytes waiting to be decoded.
func (d *Decoder) Buffered() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.buf)
}

// Stats returns a snapshot of the decoder counters.
func (d *Decoder) Stats() Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stats
}

// Reset drops all buffered bytes and zeroes the counters.
func (d *Decoder) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buf = d.buf[:0]
	d.stats = Stats{}
}
