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

package rplidar

import (
	"fmt"

	"github.com/ZaparooProject/go-rplidar/internal/frame"
)

// ResponseStartFlag is the two-byte marker that opens a response descriptor.
var ResponseStartFlag = [2]byte{frame.StartFlag, frame.ResponseStartFlag}

// MaxDataResponseLength is the largest value of the 30-bit length field.
const MaxDataResponseLength = 1<<30 - 1

// SendMode tells whether a request is answered by one response or a stream.
type SendMode uint8

const (
	// SendModeSRSR is single request, single response.
	SendModeSRSR SendMode = 0x0
	// SendModeSRMR is single request, multiple response.
	SendModeSRMR SendMode = 0x1
	// SendModeReserved1 is reserved by the protocol.
	SendModeReserved1 SendMode = 0x2
	// SendModeReserved2 is reserved by the protocol.
	SendModeReserved2 SendMode = 0x3
)

// ParseSendMode maps the 2-bit field value to a SendMode.
func ParseSendMode(b byte) (SendMode, bool) {
	if b > byte(SendModeReserved2) {
		return 0, false
	}
	return SendMode(b), true
}

func (m SendMode) String() string {
	switch m {
	case SendModeSRSR:
		return "SRSR"
	case SendModeSRMR:
		return "SRMR"
	case SendModeReserved1:
		return "Reserved1"
	case SendModeReserved2:
		return "Reserved2"
	default:
		return fmt.Sprintf("SendMode(%d)", uint8(m))
	}
}

// ResponseDescriptor announces the data responses that follow a request.
//
// On the wire the length and send mode share one 32-bit field. The bit order
// of that field is not confirmed, so this type is not serialised.
type ResponseDescriptor struct {
	StartFlag          [2]byte
	DataResponseLength uint32 // 30 bits
	SendMode           SendMode
	DataType           byte
}

// NewResponseDescriptor builds a descriptor with the standard start flag.
func NewResponseDescriptor(length uint32, mode SendMode, dataType byte) (ResponseDescriptor, error) {
	d := ResponseDescriptor{
		StartFlag:          ResponseStartFlag,
		DataResponseLength: length,
		SendMode:           mode,
		DataType:           dataType,
	}
	if err := d.Validate(); err != nil {
		return ResponseDescriptor{}, err
	}
	return d, nil
}

// Validate checks the start flag and the ranges of the packed fields.
func (d ResponseDescriptor) Validate() error {
	const op = "ResponseDescriptor"
	if d.StartFlag != ResponseStartFlag {
		return newPacketError(op, 0, ErrMissingStartFlag)
	}
	if d.DataResponseLength > MaxDataResponseLength {
		return newPacketError(op, 0, fmt.Errorf("%w: %d", ErrLengthOutOfRange, d.DataResponseLength))
	}
	if _, ok := ParseSendMode(byte(d.SendMode)); !ok {
		return newPacketError(op, 0, fmt.Errorf("%w: %d", ErrInvalidSendMode, d.SendMode))
	}
	return nil
}

func (d ResponseDescriptor) String() string {
	return fmt.Sprintf("descriptor length=%d mode=%s type=0x%02X", d.DataResponseLength, d.SendMode, d.DataType)
}

// ResponseKind tells which form a Response takes.
type ResponseKind uint8

const (
	// ResponseKindDescriptor carries a ResponseDescriptor.
	ResponseKindDescriptor ResponseKind = iota + 1
	// ResponseKindData follows a descriptor and carries sensor data.
	ResponseKindData
)

// Response is a sensor-to-host packet.
type Response struct {
	descriptor ResponseDescriptor
	kind       ResponseKind
}

// NewDescriptorResponse wraps a descriptor.
func NewDescriptorResponse(d ResponseDescriptor) Response {
	return Response{kind: ResponseKindDescriptor, descriptor: d}
}

// NewDataResponse returns a data response. Data payloads are not decoded.
func NewDataResponse() Response {
	return Response{kind: ResponseKindData}
}

// Kind returns the response form.
func (r Response) Kind() ResponseKind {
	return r.kind
}

// Descriptor returns the descriptor and true for descriptor responses.
func (r Response) Descriptor() (ResponseDescriptor, bool) {
	if r.kind != ResponseKindDescriptor {
		return ResponseDescriptor{}, false
	}
	return r.descriptor, true
}
