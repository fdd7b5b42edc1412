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

package testing

import (
	"io"
	"math/rand/v2"
)

// FragmentConfig configures how FragmentReader splits its input.
type FragmentConfig struct {
	Seed              uint64
	MinBytes          int
	MaxBytes          int  // 0 means no upper bound beyond the caller's buffer
	USBBoundaryStress bool // never return a chunk that crosses a 64-byte boundary
}

// DefaultFragmentConfig returns a configuration that hands out 1-16 byte chunks.
func DefaultFragmentConfig() FragmentConfig {
	return FragmentConfig{
		MinBytes: 1,
		MaxBytes: 16,
	}
}

// FragmentReader wraps an io.Reader and returns its bytes in random-sized
// chunks, the way a USB-UART bridge (CP2102, CH340) delivers a serial stream.
// No bytes are lost or reordered.
type FragmentReader struct {
	backend io.Reader
	rng     *rand.Rand
	pending []byte
	config  FragmentConfig
	offset  int
	err     error
}

// NewFragmentReader wraps backend with fragmentation.
func NewFragmentReader(backend io.Reader, config FragmentConfig) *FragmentReader {
	var rng *rand.Rand
	if config.Seed != 0 {
		rng = rand.New(rand.NewPCG(config.Seed, config.Seed^0xDEADBEEF)) //nolint:gosec // Test code, not crypto
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint:gosec // Test code, not crypto
	}
	if config.MinBytes < 1 {
		config.MinBytes = 1
	}
	if config.MaxBytes != 0 && config.MaxBytes < config.MinBytes {
		config.MaxBytes = config.MinBytes
	}

	return &FragmentReader{
		backend: backend,
		config:  config,
		rng:     rng,
	}
}

// Read returns between MinBytes and MaxBytes of the backend's data.
func (f *FragmentReader) Read(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}

	if len(f.pending) == 0 {
		if f.err != nil {
			return 0, f.err
		}
		tmp := make([]byte, 1024)
		n, err := f.backend.Read(tmp)
		f.pending = append(f.pending, tmp[:n]...)
		f.err = err
		if n == 0 {
			return 0, err //nolint:wrapcheck // Pass-through wrapper
		}
	}

	toReturn := min(len(f.pending), len(buf))
	if f.config.MaxBytes > 0 {
		toReturn = min(toReturn, f.config.MaxBytes)
	}
	if toReturn > f.config.MinBytes {
		toReturn = f.config.MinBytes + f.rng.IntN(toReturn-f.config.MinBytes+1)
	}

	if f.config.USBBoundaryStress {
		untilBoundary := 64 - f.offset%64
		toReturn = min(toReturn, untilBoundary)
	}

	copy(buf, f.pending[:toReturn])
	f.pending = f.pending[toReturn:]
	f.offset += toReturn
	return toReturn, nil
}
