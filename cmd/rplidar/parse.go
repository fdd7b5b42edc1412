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
	"fmt"
	"strings"

	rplidar "github.com/ZaparooProject/go-rplidar"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <hex>...",
		Short: "parse one or more request packets from hex",
		Long: `Concatenate the arguments, then parse request packets back to back
until the buffer is consumed. Bytes that do not form a complete packet
are reported with their offset.`,
		Example: `  rplidar parse A525 "A5 82 04 48 84 60 7F F0"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			buf, err := decodeHex(strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			offset := 0
			for rest := buf; len(rest) > 0; {
				req, residue, perr := rplidar.ParseRequest(rest)
				if perr != nil {
					return fmt.Errorf("packet at byte %d (%s): %w",
						offset, rplidar.FormatHex(rest), perr)
				}
				_, _ = fmt.Fprintf(out, "%4d  %s\n", offset, req)
				offset += len(rest) - len(residue)
				rest = residue
			}
			return nil
		},
	}
}
