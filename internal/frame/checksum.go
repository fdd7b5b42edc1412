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

// Checksum computes the request checksum: a running XOR over the start flag,
// command byte, payload size and every payload byte, in that order.
func Checksum(startFlag, command, payloadSize byte, payload []byte) byte {
	chk := byte(0)
	chk ^= startFlag
	chk ^= command
	chk ^= payloadSize
	for _, b := range payload {
		chk ^= b
	}
	return chk
}

// VerifyChecksum recomputes the checksum and compares it with expected.
// The calculated value is returned either way so callers can report both.
func VerifyChecksum(startFlag, command, payloadSize byte, payload []byte, expected byte) (calculated byte, ok bool) {
	calculated = Checksum(startFlag, command, payloadSize, payload)
	return calculated, calculated == expected
}
