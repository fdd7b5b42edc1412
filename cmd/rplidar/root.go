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

	rplidar "github.com/ZaparooProject/go-rplidar"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	sessionLogDir string
	debug         bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "rplidar",
		Short: "RPLIDAR request packet tool",
		Long: `Build, parse and stream-decode RPLIDAR host-to-device request packets.

Hex input accepts upper or lower case digits, optionally separated by
spaces, commas or colons, with an optional 0x prefix per byte.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.debug {
				rplidar.SetDebugEnabled(true)
			}
			if cmd.Flags().Changed("session-log") {
				path, err := rplidar.InitSessionLog(opts.sessionLogDir)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Session log: %s\n", path)
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "print debug output")
	root.PersistentFlags().StringVar(&opts.sessionLogDir, "session-log", "",
		"write a timestamped debug session log into this directory")

	root.AddCommand(
		newCommandsCmd(),
		newBuildCmd(),
		newParseCmd(),
		newDecodeCmd(),
	)
	return root
}
