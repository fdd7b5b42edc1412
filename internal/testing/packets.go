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

// Package testing holds wire fixtures and I/O helpers shared by the tests
// of the codec, the stream decoder and the CLI.
package testing

// StopPacket returns a header-only STOP request.
func StopPacket() []byte {
	return []byte{0xA5, 0x25}
}

// ResetPacket returns a header-only RESET request.
func ResetPacket() []byte {
	return []byte{0xA5, 0x40}
}

// GetHealthPacket returns a header-only GET_HEALTH request.
func GetHealthPacket() []byte {
	return []byte{0xA5, 0x52}
}

// ExpressScanPacket returns an EXPRESS_SCAN request with the payload
// 48 84 60 7F and checksum 0xF0.
func ExpressScanPacket() []byte {
	return []byte{0xA5, 0x82, 0x04, 0x48, 0x84, 0x60, 0x7f, 0xF0}
}

// BuildPayloadPacket frames payload for a payload-bearing command byte,
// computing the checksum independently of the codec under test.
func BuildPayloadPacket(cmd byte, payload []byte) []byte {
	out := make([]byte, 0, 4+len(payload))
	out = append(out, 0xA5, cmd, byte(len(payload)))
	out = append(out, payload...)

	chk := byte(0)
	for _, b := range out {
		chk ^= b
	}
	return append(out, chk)
}

// Concat joins packets into one buffer.
func Concat(packets ...[]byte) []byte {
	var out []byte
	for _, p := range packets {
		out = append(out, p...)
	}
	return out
}
