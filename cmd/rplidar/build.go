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
	"strconv"
	"strings"

	rplidar "github.com/ZaparooProject/go-rplidar"
	"github.com/spf13/cobra"
)

func newBuildCmd() *cobra.Command {
	var describe bool

	cmd := &cobra.Command{
		Use:   "build <command> [payload-hex]",
		Short: "encode a request packet",
		Long: `Encode a request and print its bytes as hex.

The command is a catalog name (stop, express_scan, get-lidar-conf, ...) or
a byte such as 0x82. EXPRESS_SCAN and GET_LIDAR_CONF need a payload; an
empty payload is written as "".`,
		Example: `  rplidar build stop
  rplidar build express_scan "48 84 60 7F"`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			command, err := resolveCommand(args[0])
			if err != nil {
				return err
			}

			var req rplidar.Request
			if len(args) == 2 {
				payload, perr := decodeHex(args[1])
				if perr != nil {
					return perr
				}
				req, err = rplidar.NewRequestWithPayload(command, payload)
			} else {
				req, err = rplidar.NewRequest(command)
			}
			if err != nil {
				return err
			}

			wire, err := req.MarshalBinary()
			if err != nil {
				return err
			}
			rplidar.Debugf("build: %s", req)

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, encodeHex(wire))
			if describe {
				_, _ = fmt.Fprintln(out, req)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&describe, "describe", false, "also print the decoded request")
	return cmd
}

// resolveCommand accepts a catalog name or a byte literal.
func resolveCommand(arg string) (rplidar.Command, error) {
	if c, ok := rplidar.LookupCommand(arg); ok {
		return c, nil
	}
	n, err := strconv.ParseUint(strings.TrimSpace(arg), 0, 8)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", rplidar.ErrUnknownCommand, arg)
	}
	c, ok := rplidar.ParseCommand(byte(n))
	if !ok {
		return 0, &rplidar.UnknownCommandError{Command: byte(n)}
	}
	return c, nil
}
