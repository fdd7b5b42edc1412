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

// Package stream decodes request packets from bytes that arrive in arbitrary
// chunks, such as a serial capture. It keeps the partial-packet buffer that
// the codec itself never holds, re-parses the residue after every packet and
// resynchronises on the next start flag after garbage.
package stream

// Config holds decoder options
type Config struct {
	// MaxBufferSize bounds the bytes held while waiting for a packet to
	// complete. Writes beyond it fail with ErrBufferFull. Decode sizes its
	// reads to stay within it. Values below the largest request packet are
	// raised to that size.
	MaxBufferSize int
	// SkipInvalid drops packets with an unknown command or a bad checksum
	// and keeps decoding. When false, Next returns those errors after
	// discarding the offending start flag.
	SkipInvalid bool
}

// DefaultConfig returns the default decoder configuration
func DefaultConfig() *Config {
	return &Config{
		MaxBufferSize: 4096,
		SkipInvalid:   true,
	}
}
