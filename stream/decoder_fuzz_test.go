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
	"context"
	"testing"

	rplidar "github.com/ZaparooProject/go-rplidar"
)

// FuzzDecoder feeds arbitrary bytes in two writes. The decoder must never
// panic and must always make progress: after draining, whatever is left in
// the buffer is a strict prefix of a packet starting with the start flag.
func FuzzDecoder(f *testing.F) {
	f.Add([]byte{0xA5, 0x25, 0xA5, 0x82, 0x04, 0x48, 0x84, 0x60, 0x7f, 0xF0}, 3)
	f.Add([]byte{0x00, 0xA5, 0xA5, 0x25}, 1)
	f.Add([]byte{0xA5, 0x82, 0xFF}, 0)
	f.Add([]byte{}, 0)

	f.Fuzz(func(t *testing.T, data []byte, split int) {
		if split < 0 || split > len(data) {
			split = len(data) / 2
		}
		d := NewDecoder(&Config{MaxBufferSize: 1 << 16, SkipInvalid: true})

		for _, part := range [][]byte{data[:split], data[split:]} {
			if _, err := d.Write(part); err != nil {
				t.Fatalf("Write: %v", err)
			}
			for {
				_, err := d.Next()
				if err != nil {
					break
				}
			}
		}

		if d.Buffered() > 0 {
			d.mu.RLock()
			head := d.buf[0]
			d.mu.RUnlock()
			if head != rplidar.StartFlag {
				t.Fatalf("left buffer starts with 0x%02X", head)
			}
		}

		// Decode over the same bytes must not panic either.
		_ = Decode(context.Background(), bytes.NewReader(data), nil, func(rplidar.Request) error { return nil })
	})
}
