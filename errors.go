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
	"errors"
	"fmt"
)

// Parse errors. A parse call fails with exactly one of these; typed errors
// below unwrap to the matching sentinel.
var (
	ErrMissingStartFlag   = errors.New("missing start flag")
	ErrMissingCommand     = errors.New("missing command")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrMissingPayloadSize = errors.New("missing payload size")
	ErrIncompletePayload  = errors.New("incomplete payload")
	ErrMissingChecksum    = errors.New("missing checksum")
	ErrInvalidChecksum    = errors.New("invalid checksum")
	ErrTrailingData       = errors.New("trailing data after packet")
)

// Build errors
var (
	ErrPayloadTooLarge   = errors.New("payload too large")
	ErrPayloadRequired   = errors.New("command requires a payload")
	ErrPayloadNotAllowed = errors.New("command does not take a payload")
	ErrInvalidRequest    = errors.New("invalid request")
)

// Response descriptor errors
var (
	ErrInvalidSendMode  = errors.New("invalid send mode")
	ErrLengthOutOfRange = errors.New("data response length out of range")
)

// UnknownCommandError carries a command byte that is not in the catalog.
type UnknownCommandError struct {
	Command byte
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command 0x%02X", e.Command)
}

func (*UnknownCommandError) Unwrap() error {
	return ErrUnknownCommand
}

// ChecksumError reports a checksum mismatch with both values for diagnostics.
type ChecksumError struct {
	Provided   byte
	Calculated byte
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("invalid checksum: provided 0x%02X, calculated 0x%02X", e.Provided, e.Calculated)
}

func (*ChecksumError) Unwrap() error {
	return ErrInvalidChecksum
}

// PayloadTooLargeError is returned when a payload does not fit the one-byte
// size field.
type PayloadTooLargeError struct {
	Size    int
	Command Command
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("%s payload of %d bytes exceeds %d", e.Command, e.Size, maxPayloadSize)
}

func (*PayloadTooLargeError) Unwrap() error {
	return ErrPayloadTooLarge
}

// PacketError wraps a codec failure with the operation and the byte offset
// at which it stopped.
type PacketError struct {
	Err    error  // Underlying error
	Op     string // Operation that failed
	Offset int    // Bytes consumed before the failure
}

func (e *PacketError) Error() string {
	return fmt.Sprintf("%s at offset %d: %v", e.Op, e.Offset, e.Err)
}

func (e *PacketError) Unwrap() error {
	return e.Err
}

func newPacketError(op string, offset int, err error) *PacketError {
	return &PacketError{Op: op, Offset: offset, Err: err}
}

// IsIncomplete returns true if the error means the buffer ended mid-packet,
// so parsing again once more bytes have arrived may succeed.
// ErrMissingStartFlag is not included: it is also returned for a wrong first byte.
func IsIncomplete(err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, ErrMissingCommand),
		errors.Is(err, ErrMissingPayloadSize),
		errors.Is(err, ErrIncompletePayload),
		errors.Is(err, ErrMissingChecksum):
		return true
	default:
		return false
	}
}

// IsCorrupt returns true if the error means the bytes can never form a valid
// packet: an unknown command or a checksum mismatch.
func IsCorrupt(err error) bool {
	return errors.Is(err, ErrUnknownCommand) || errors.Is(err, ErrInvalidChecksum)
}
