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

// Start markers
const (
	StartFlag         = 0xA5 // First byte of every request and response
	ResponseStartFlag = 0x5A // Second byte of a response descriptor
)

// Packet size limits
const (
	HeaderLength             = 2   // start flag + command
	BodyOverhead             = 2   // payload size + checksum
	MaxPayloadSize           = 255 // payload size is a single byte on the wire
	MaxRequestLength         = HeaderLength + BodyOverhead + MaxPayloadSize
	ResponseDescriptorLength = 7 // start flags(2) + length/mode(4) + data type(1)
)
