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
	"context"
	"errors"
	"fmt"
	"io"

	rplidar "github.com/ZaparooProject/go-rplidar"
	"github.com/ZaparooProject/go-rplidar/internal/frame"
)

// readChunkSize matches the largest possible request packet.
const readChunkSize = frame.MaxRequestLength

// Decode reads r until EOF, calling fn for every request decoded. It stops
// early when ctx is cancelled or fn returns an error. A partial packet left
// at EOF is reported as io.ErrUnexpectedEOF.
func Decode(ctx context.Context, r io.Reader, cfg *Config, fn func(rplidar.Request) error) error {
	dec := NewDecoder(cfg)
	chunk := make([]byte, readChunkSize)

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("stream decode cancelled: %w", ctx.Err())
		default:
		}

		// After a drain the buffer holds at most a packet prefix, so there
		// is always room for at least one byte.
		room := dec.cfg.MaxBufferSize - dec.Buffered()
		n, readErr := r.Read(chunk[:min(len(chunk), room)])
		if n > 0 {
			if _, err := dec.Write(chunk[:n]); err != nil {
				return err
			}
			if err := drain(dec, fn); err != nil {
				return err
			}
		}

		if errors.Is(readErr, io.EOF) {
			if left := dec.Buffered(); left > 0 {
				return fmt.Errorf("stream ended with %d undecoded bytes: %w", left, io.ErrUnexpectedEOF)
			}
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("stream read failed: %w", readErr)
		}
	}
}

// drain hands every complete request in dec to fn.
func drain(dec *Decoder, fn func(rplidar.Request) error) error {
	for {
		req, err := dec.Next()
		if errors.Is(err, ErrNeedMore) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(req); err != nil {
			return err
		}
	}
}
