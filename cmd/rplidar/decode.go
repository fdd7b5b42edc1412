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

package main

import (
	"bufio"
	"fmt"
	"io"

	rplidar "github.com/ZaparooProject/go-rplidar"
	"github.com/ZaparooProject/go-rplidar/stream"
	"github.com/spf13/cobra"
)

type decodeOptions struct {
	maxBuffer int
	raw       bool
	strict    bool
}

func newDecodeCmd() *cobra.Command {
	opts := &decodeOptions{}

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "decode a request stream from stdin",
		Long: `Read a captured host-to-device byte stream from stdin and print every
request found in it. Input is hex text unless --raw is given. Garbage
between packets is skipped unless --strict is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var in io.Reader = cmd.InOrStdin()
			if !opts.raw {
				in = newHexReader(in)
			}

			cfg := stream.DefaultConfig()
			cfg.SkipInvalid = !opts.strict
			if opts.maxBuffer > 0 {
				cfg.MaxBufferSize = opts.maxBuffer
			}

			out := cmd.OutOrStdout()
			count := 0
			err := stream.Decode(cmd.Context(), in, cfg, func(req rplidar.Request) error {
				count++
				_, err := fmt.Fprintln(out, req)
				return err
			})
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "decoded %d packets\n", count)
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.raw, "raw", false, "stdin holds raw bytes instead of hex text")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "stop at the first unknown command or bad checksum")
	cmd.Flags().IntVar(&opts.maxBuffer, "max-buffer", 0, "decoder buffer limit in bytes (default 4096)")
	return cmd
}

// hexReader turns hex text into bytes as it is read.
type hexReader struct {
	r *bufio.Reader
}

func newHexReader(r io.Reader) *hexReader {
	return &hexReader{r: bufio.NewReader(r)}
}

func (h *hexReader) Read(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		b, err := h.next()
		if err != nil {
			if n > 0 && err == io.EOF {
				return n, nil
			}
			return n, err
		}
		p[n] = b
		n++
		// Hand over what we have once the input goes quiet.
		if h.r.Buffered() == 0 {
			break
		}
	}
	return n, nil
}

// next decodes one byte, skipping separators and 0x prefixes.
func (h *hexReader) next() (byte, error) {
	hi, err := h.digit(true)
	if err != nil {
		return 0, err
	}
	lo, err := h.digit(false)
	if err == io.EOF {
		return 0, fmt.Errorf("%w: odd number of hex digits", io.ErrUnexpectedEOF)
	}
	if err != nil {
		return 0, err
	}
	return hi<<4 | lo, nil
}

// digit reads one hex digit. A 0x prefix is only recognised at a byte
// boundary, when first is set.
func (h *hexReader) digit(first bool) (byte, error) {
	for {
		c, err := h.r.ReadByte()
		if err != nil {
			return 0, err
		}
		if isHexSeparator(c) {
			continue
		}
		if first && c == '0' {
			if peek, perr := h.r.Peek(1); perr == nil && (peek[0] == 'x' || peek[0] == 'X') {
				_, _ = h.r.ReadByte()
				continue
			}
		}
		v, ok := hexValue(c)
		if !ok {
			return 0, fmt.Errorf("invalid hex character %q", c)
		}
		return v, nil
	}
}
