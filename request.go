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
	"bytes"
	"fmt"

	"github.com/ZaparooProject/go-rplidar/internal/frame"
)

const (
	// StartFlag is the first byte of every request packet.
	StartFlag = frame.StartFlag

	maxPayloadSize = frame.MaxPayloadSize
)

// PacketHeader is the two leading bytes of every request.
type PacketHeader struct {
	StartFlag byte
	Command   Command
}

// PacketBody is the payload section of a payload-bearing request.
type PacketBody struct {
	Payload     []byte
	PayloadSize byte
	Checksum    byte
}

// RequestKind tells which form a Request takes.
type RequestKind uint8

const (
	// RequestOnlyHeader is a header-only request for a payload-free command.
	RequestOnlyHeader RequestKind = iota + 1
	// RequestFull is a header plus body request for a payload-bearing command.
	RequestFull
)

func (k RequestKind) String() string {
	switch k {
	case RequestOnlyHeader:
		return "OnlyHeader"
	case RequestFull:
		return "Full"
	default:
		return fmt.Sprintf("RequestKind(%d)", uint8(k))
	}
}

// Request is a host-to-sensor packet. The zero value is not a valid request;
// use NewRequest, NewRequestWithPayload or ParseRequest.
type Request struct {
	body   PacketBody
	header PacketHeader
	kind   RequestKind
}

// NewRequest builds a header-only request for a payload-free command.
func NewRequest(cmd Command) (Request, error) {
	if !cmd.Valid() {
		return Request{}, newPacketError("NewRequest", 0, &UnknownCommandError{Command: cmd.Byte()})
	}
	if cmd.HasPayload() {
		return Request{}, newPacketError("NewRequest", 0, fmt.Errorf("%s: %w", cmd, ErrPayloadRequired))
	}
	return onlyHeader(cmd), nil
}

// NewRequestWithPayload builds a request for a payload-bearing command.
// The payload is copied; it may be empty but not longer than 255 bytes.
func NewRequestWithPayload(cmd Command, payload []byte) (Request, error) {
	if !cmd.Valid() {
		return Request{}, newPacketError("NewRequestWithPayload", 0, &UnknownCommandError{Command: cmd.Byte()})
	}
	if !cmd.HasPayload() {
		return Request{}, newPacketError("NewRequestWithPayload", 0, fmt.Errorf("%s: %w", cmd, ErrPayloadNotAllowed))
	}
	if len(payload) > maxPayloadSize {
		return Request{}, newPacketError("NewRequestWithPayload", 0,
			&PayloadTooLargeError{Command: cmd, Size: len(payload)})
	}

	size := byte(len(payload))
	owned := make([]byte, len(payload))
	copy(owned, payload)
	return full(cmd, PacketBody{
		PayloadSize: size,
		Payload:     owned,
		Checksum:    frame.Checksum(StartFlag, cmd.Byte(), size, owned),
	}), nil
}

func onlyHeader(cmd Command) Request {
	return Request{
		kind:   RequestOnlyHeader,
		header: PacketHeader{StartFlag: StartFlag, Command: cmd},
	}
}

func full(cmd Command, body PacketBody) Request {
	return Request{
		kind:   RequestFull,
		header: PacketHeader{StartFlag: StartFlag, Command: cmd},
		body:   body,
	}
}

// ParseRequest decodes one request from the front of b. On success it returns
// the request and the unconsumed remainder of b, which may hold further
// packets. Payload bytes are copied; the remainder aliases b.
func ParseRequest(b []byte) (Request, []byte, error) {
	const op = "ParseRequest"
	c := frame.NewCursor(b)

	flag, ok := c.ReadByte()
	if !ok || flag != StartFlag {
		return Request{}, nil, newPacketError(op, 0, ErrMissingStartFlag)
	}

	raw, ok := c.ReadByte()
	if !ok {
		return Request{}, nil, newPacketError(op, c.Offset(), ErrMissingCommand)
	}
	cmd, ok := ParseCommand(raw)
	if !ok {
		return Request{}, nil, newPacketError(op, c.Offset(), &UnknownCommandError{Command: raw})
	}

	if !cmd.HasPayload() {
		return onlyHeader(cmd), c.Remaining(), nil
	}

	body, err := parseBody(c, cmd)
	if err != nil {
		return Request{}, nil, newPacketError(op, c.Offset(), err)
	}
	return full(cmd, body), c.Remaining(), nil
}

func parseBody(c *frame.Cursor, cmd Command) (PacketBody, error) {
	size, ok := c.ReadByte()
	if !ok {
		return PacketBody{}, ErrMissingPayloadSize
	}
	wire, ok := c.Next(int(size))
	if !ok {
		return PacketBody{}, ErrIncompletePayload
	}
	checksum, ok := c.ReadByte()
	if !ok {
		return PacketBody{}, ErrMissingChecksum
	}
	if calculated, ok := frame.VerifyChecksum(StartFlag, cmd.Byte(), size, wire, checksum); !ok {
		return PacketBody{}, &ChecksumError{Provided: checksum, Calculated: calculated}
	}

	payload := make([]byte, len(wire))
	copy(payload, wire)
	return PacketBody{PayloadSize: size, Payload: payload, Checksum: checksum}, nil
}

// VerifyChecksum checks expected against the checksum of a request for cmd
// carrying payload.
func VerifyChecksum(cmd Command, payload []byte, expected byte) error {
	if len(payload) > maxPayloadSize {
		return &PayloadTooLargeError{Command: cmd, Size: len(payload)}
	}
	calculated, ok := frame.VerifyChecksum(StartFlag, cmd.Byte(), byte(len(payload)), payload, expected)
	if !ok {
		return &ChecksumError{Provided: expected, Calculated: calculated}
	}
	return nil
}

// Kind returns the request form.
func (r Request) Kind() RequestKind {
	return r.kind
}

// Header returns the request header.
func (r Request) Header() PacketHeader {
	return r.header
}

// Command returns the request command.
func (r Request) Command() Command {
	return r.header.Command
}

// Body returns a copy of the body and true for RequestFull values.
func (r Request) Body() (PacketBody, bool) {
	if r.kind != RequestFull {
		return PacketBody{}, false
	}
	body := r.body
	body.Payload = r.Payload()
	return body, true
}

// Payload returns a copy of the payload, or nil for header-only requests.
func (r Request) Payload() []byte {
	if r.kind != RequestFull {
		return nil
	}
	out := make([]byte, len(r.body.Payload))
	copy(out, r.body.Payload)
	return out
}

// Len returns the encoded size of the request in bytes.
func (r Request) Len() int {
	switch r.kind {
	case RequestOnlyHeader:
		return frame.HeaderLength
	case RequestFull:
		return frame.HeaderLength + frame.BodyOverhead + len(r.body.Payload)
	default:
		return 0
	}
}

// AppendBinary appends the wire encoding of r to dst.
// The zero Request appends nothing.
func (r Request) AppendBinary(dst []byte) []byte {
	switch r.kind {
	case RequestOnlyHeader:
		return append(dst, r.header.StartFlag, r.header.Command.Byte())
	case RequestFull:
		dst = append(dst, r.header.StartFlag, r.header.Command.Byte(), r.body.PayloadSize)
		dst = append(dst, r.body.Payload...)
		return append(dst, r.body.Checksum)
	default:
		return dst
	}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (r Request) MarshalBinary() ([]byte, error) {
	if r.kind != RequestOnlyHeader && r.kind != RequestFull {
		return nil, newPacketError("MarshalBinary", 0, ErrInvalidRequest)
	}
	return r.AppendBinary(make([]byte, 0, r.Len())), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. data must hold
// exactly one request.
func (r *Request) UnmarshalBinary(data []byte) error {
	req, rest, err := ParseRequest(data)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return newPacketError("UnmarshalBinary", len(data)-len(rest),
			fmt.Errorf("%w: %d bytes", ErrTrailingData, len(rest)))
	}
	*r = req
	return nil
}

// Equal reports whether two requests encode to the same packet.
func (r Request) Equal(other Request) bool {
	return r.kind == other.kind &&
		r.header == other.header &&
		r.body.PayloadSize == other.body.PayloadSize &&
		r.body.Checksum == other.body.Checksum &&
		bytes.Equal(r.body.Payload, other.body.Payload)
}

func (r Request) String() string {
	switch r.kind {
	case RequestOnlyHeader:
		return fmt.Sprintf("%s(0x%02X)", r.header.Command, r.header.Command.Byte())
	case RequestFull:
		return fmt.Sprintf("%s(0x%02X) size=%d payload=[%s] checksum=0x%02X",
			r.header.Command, r.header.Command.Byte(), r.body.PayloadSize,
			FormatHex(r.body.Payload), r.body.Checksum)
	default:
		return "Request(invalid)"
	}
}
