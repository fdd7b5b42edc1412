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
	"strings"
)

// Command is a request command byte understood by the sensor.
type Command byte

// RPLIDAR command codes
const (
	CmdStop          Command = 0x25
	CmdReset         Command = 0x40
	CmdScan          Command = 0x20
	CmdExpressScan   Command = 0x82
	CmdForceScan     Command = 0x21
	CmdGetInfo       Command = 0x50
	CmdGetHealth     Command = 0x52
	CmdGetSampleRate Command = 0x59
	CmdGetLidarConf  Command = 0x84
)

type commandInfo struct {
	name       string
	hasPayload bool
}

// catalog is the single source of truth for valid commands and for which of
// them carry a length-prefixed payload.
var catalog = map[Command]commandInfo{
	CmdStop:          {name: "STOP"},
	CmdReset:         {name: "RESET"},
	CmdScan:          {name: "SCAN"},
	CmdExpressScan:   {name: "EXPRESS_SCAN", hasPayload: true},
	CmdForceScan:     {name: "FORCE_SCAN"},
	CmdGetInfo:       {name: "GET_INFO"},
	CmdGetHealth:     {name: "GET_HEALTH"},
	CmdGetSampleRate: {name: "GET_SAMPLERATE"},
	CmdGetLidarConf:  {name: "GET_LIDAR_CONF", hasPayload: true},
}

// Commands returns every catalog command in protocol order.
func Commands() []Command {
	return []Command{
		CmdStop,
		CmdReset,
		CmdScan,
		CmdExpressScan,
		CmdForceScan,
		CmdGetInfo,
		CmdGetHealth,
		CmdGetSampleRate,
		CmdGetLidarConf,
	}
}

// ParseCommand maps a raw byte to a catalog command.
func ParseCommand(b byte) (Command, bool) {
	if _, ok := catalog[Command(b)]; !ok {
		return 0, false
	}
	return Command(b), true
}

// LookupCommand resolves a catalog name such as "express_scan" (case
// insensitive, '-' and '_' interchangeable).
func LookupCommand(name string) (Command, bool) {
	want := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), "-", "_"))
	for cmd, info := range catalog {
		if info.name == want {
			return cmd, true
		}
	}
	return 0, false
}

// Byte returns the wire encoding of the command.
func (c Command) Byte() byte {
	return byte(c)
}

// Valid reports whether c is in the catalog.
func (c Command) Valid() bool {
	_, ok := catalog[c]
	return ok
}

// HasPayload reports whether requests for c carry a payload section.
// Unknown commands report false.
func (c Command) HasPayload() bool {
	return catalog[c].hasPayload
}

func (c Command) String() string {
	if info, ok := catalog[c]; ok {
		return info.name
	}
	return fmt.Sprintf("UNKNOWN(0x%02X)", byte(c))
}
