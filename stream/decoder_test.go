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
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	rplidar "github.com/ZaparooProject/go-rplidar"
	"github.com/ZaparooProject/go-rplidar/internal/frame"
	virt "github.com/ZaparooProject/go-rplidar/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func commandsOf(reqs []rplidar.Request) []rplidar.Command {
	out := make([]rplidar.Command, len(reqs))
	for i, r := range reqs {
		out[i] = r.Command()
	}
	return out
}

func drainAll(t *testing.T, d *Decoder) []rplidar.Request {
	t.Helper()
	var out []rplidar.Request
	for {
		req, err := d.Next()
		if errors.Is(err, ErrNeedMore) {
			return out
		}
		require.NoError(t, err)
		out = append(out, req)
	}
}

func TestDecoder_ByteAtATime(t *testing.T) {
	t.Parallel()
	d := NewDecoder(nil)
	input := virt.Concat(virt.StopPacket(), virt.ExpressScanPacket(), virt.GetHealthPacket())

	var got []rplidar.Request
	for _, b := range input {
		_, err := d.Write([]byte{b})
		require.NoError(t, err)
		got = append(got, drainAll(t, d)...)
	}

	assert.Equal(t,
		[]rplidar.Command{rplidar.CmdStop, rplidar.CmdExpressScan, rplidar.CmdGetHealth},
		commandsOf(got))
	assert.Equal(t, []byte{0x48, 0x84, 0x60, 0x7f}, got[1].Payload())
	assert.Equal(t, 0, d.Buffered())
	assert.Equal(t, Stats{Packets: 3}, d.Stats())
}

func TestDecoder_NeedMoreWrapsCodecError(t *testing.T) {
	t.Parallel()
	d := NewDecoder(nil)
	_, err := d.Write(virt.ExpressScanPacket()[:5])
	require.NoError(t, err)

	_, err = d.Next()
	require.ErrorIs(t, err, ErrNeedMore)
	require.ErrorIs(t, err, rplidar.ErrIncompletePayload)
	assert.Equal(t, 5, d.Buffered(), "incomplete packet must stay buffered")

	empty := NewDecoder(nil)
	_, err = empty.Next()
	require.ErrorIs(t, err, ErrNeedMore)
}

func TestDecoder_SkipsLeadingGarbage(t *testing.T) {
	t.Parallel()
	d := NewDecoder(nil)
	_, err := d.Write(virt.Concat([]byte{0x00, 0x13, 0x37}, virt.StopPacket()))
	require.NoError(t, err)

	got := drainAll(t, d)
	assert.Equal(t, []rplidar.Command{rplidar.CmdStop}, commandsOf(got))
	assert.Equal(t, Stats{Packets: 1, Discarded: 3}, d.Stats())
}

func TestDecoder_GarbageWithoutStartFlag(t *testing.T) {
	t.Parallel()
	d := NewDecoder(nil)
	_, err := d.Write([]byte{0x01, 0x02, 0x03})
	require.NoError(t, err)

	assert.Empty(t, drainAll(t, d))
	assert.Equal(t, 0, d.Buffered())
	assert.Equal(t, 3, d.Stats().Discarded)
}

func TestDecoder_SkipInvalid(t *testing.T) {
	t.Parallel()
	bad := virt.ExpressScanPacket()
	bad[len(bad)-1] ^= 0xFF

	d := NewDecoder(nil)
	_, err := d.Write(virt.Concat([]byte{0xA5, 0xFF}, bad, virt.ResetPacket()))
	require.NoError(t, err)

	got := drainAll(t, d)
	assert.Equal(t, []rplidar.Command{rplidar.CmdReset}, commandsOf(got))

	stats := d.Stats()
	assert.Equal(t, 2, stats.Invalid)
	assert.Equal(t, 1, stats.Packets)
}

func TestDecoder_ReportInvalid(t *testing.T) {
	t.Parallel()
	d := NewDecoder(&Config{SkipInvalid: false})
	_, err := d.Write(virt.Concat([]byte{0xA5, 0xFF}, virt.StopPacket()))
	require.NoError(t, err)

	_, err = d.Next()
	var uce *rplidar.UnknownCommandError
	require.ErrorAs(t, err, &uce)
	assert.Equal(t, byte(0xFF), uce.Command)

	req, err := d.Next()
	require.NoError(t, err)
	assert.Equal(t, rplidar.CmdStop, req.Command())
}

func TestDecoder_StartFlagInsideCorruptPacket(t *testing.T) {
	t.Parallel()
	// A5 A5 25: the first A5 is followed by an unknown command (A5), the
	// second begins a valid STOP.
	d := NewDecoder(nil)
	_, err := d.Write([]byte{0xA5, 0xA5, 0x25})
	require.NoError(t, err)

	got := drainAll(t, d)
	assert.Equal(t, []rplidar.Command{rplidar.CmdStop}, commandsOf(got))
	assert.Equal(t, 1, d.Stats().Discarded)
}

func TestDecoder_BufferFull(t *testing.T) {
	t.Parallel()
	d := NewDecoder(&Config{MaxBufferSize: frame.MaxRequestLength})

	partial := append([]byte{0xA5, 0x82, 0xFF}, make([]byte, 255)...)
	_, err := d.Write(partial)
	require.NoError(t, err)
	n, err := d.Write([]byte{0x00, 0x00})
	require.ErrorIs(t, err, ErrBufferFull)
	assert.Equal(t, 0, n)
	assert.Equal(t, len(partial), d.Buffered())

	_, err = d.Write([]byte{0x00})
	require.NoError(t, err, "the last byte of a max-size packet still fits")
}

func TestDecoder_SmallBufferRaisedToMaxPacket(t *testing.T) {
	t.Parallel()
	d := NewDecoder(&Config{MaxBufferSize: 16, SkipInvalid: true})

	big := virt.BuildPayloadPacket(0x82, bytes.Repeat([]byte{0x5A}, 255))
	require.Len(t, big, frame.MaxRequestLength)
	_, err := d.Write(big)
	require.NoError(t, err)

	req, err := d.Next()
	require.NoError(t, err)
	assert.Len(t, req.Payload(), 255)
}

func TestDecoder_Reset(t *testing.T) {
	t.Parallel()
	d := NewDecoder(nil)
	_, err := d.Write(virt.Concat(virt.StopPacket(), []byte{0xA5}))
	require.NoError(t, err)
	_, err = d.Next()
	require.NoError(t, err)

	d.Reset()
	assert.Equal(t, 0, d.Buffered())
	assert.Equal(t, Stats{}, d.Stats())
}

func TestDecoder_ConcurrentWriters(t *testing.T) {
	t.Parallel()
	d := NewDecoder(&Config{MaxBufferSize: 1 << 16, SkipInvalid: true})

	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			for range 50 {
				// Whole packets per write keep framing intact across writers.
				if _, err := d.Write(virt.StopPacket()); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	got := drainAll(t, d)
	assert.Len(t, got, 400)
}

func TestDecode_FragmentedStream(t *testing.T) {
	t.Parallel()
	var packets [][]byte
	var want []rplidar.Command
	for i := range 40 {
		switch i % 3 {
		case 0:
			packets = append(packets, virt.StopPacket())
			want = append(want, rplidar.CmdStop)
		case 1:
			payload := bytes.Repeat([]byte{byte(i)}, i)
			packets = append(packets, virt.BuildPayloadPacket(0x84, payload))
			want = append(want, rplidar.CmdGetLidarConf)
		default:
			packets = append(packets, virt.ExpressScanPacket())
			want = append(want, rplidar.CmdExpressScan)
		}
	}
	input := virt.Concat(packets...)

	r := virt.NewFragmentReader(bytes.NewReader(input), virt.FragmentConfig{Seed: 99, MinBytes: 1, MaxBytes: 11})

	var got []rplidar.Request
	err := Decode(context.Background(), r, nil, func(req rplidar.Request) error {
		got = append(got, req)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, want, commandsOf(got))
}

func TestDecode_RespectsSmallBuffer(t *testing.T) {
	t.Parallel()
	var packets [][]byte
	for range 20 {
		packets = append(packets, virt.StopPacket())
	}

	count := 0
	err := Decode(context.Background(), bytes.NewReader(virt.Concat(packets...)),
		&Config{MaxBufferSize: 16, SkipInvalid: true},
		func(rplidar.Request) error {
			count++
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, 20, count)
}

func TestDecode_PartialPacketNeverOverflows(t *testing.T) {
	t.Parallel()
	big := virt.BuildPayloadPacket(0x82, bytes.Repeat([]byte{0x11}, 255))
	var packets [][]byte
	var want []rplidar.Command
	for range 6 {
		packets = append(packets, big, virt.StopPacket(), virt.StopPacket())
		want = append(want, rplidar.CmdExpressScan, rplidar.CmdStop, rplidar.CmdStop)
	}
	input := virt.Concat(packets...)

	readers := map[string]io.Reader{
		"whole reads": bytes.NewReader(input),
		"fragmented": virt.NewFragmentReader(bytes.NewReader(input),
			virt.FragmentConfig{Seed: 3, MinBytes: 1, MaxBytes: 300}),
	}
	for name, r := range readers {
		var got []rplidar.Request
		err := Decode(context.Background(), r, &Config{MaxBufferSize: 300, SkipInvalid: true},
			func(req rplidar.Request) error {
				got = append(got, req)
				return nil
			})
		require.NoError(t, err, name)
		assert.Equal(t, want, commandsOf(got), name)
	}
}

func TestDecode_TruncatedStream(t *testing.T) {
	t.Parallel()
	input := virt.Concat(virt.StopPacket(), virt.ExpressScanPacket()[:6])

	var got []rplidar.Request
	err := Decode(context.Background(), bytes.NewReader(input), nil, func(req rplidar.Request) error {
		got = append(got, req)
		return nil
	})
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Len(t, got, 1)
}

func TestDecode_CallbackError(t *testing.T) {
	t.Parallel()
	errStop := errors.New("stop here")
	input := virt.Concat(virt.StopPacket(), virt.ResetPacket())

	calls := 0
	err := Decode(context.Background(), bytes.NewReader(input), nil, func(rplidar.Request) error {
		calls++
		return errStop
	})
	require.ErrorIs(t, err, errStop)
	assert.Equal(t, 1, calls)
}

func TestDecode_ReportsInvalidWhenNotSkipping(t *testing.T) {
	t.Parallel()
	input := virt.Concat(virt.StopPacket(), []byte{0xA5, 0xFF})

	err := Decode(context.Background(), bytes.NewReader(input), &Config{SkipInvalid: false},
		func(rplidar.Request) error { return nil })
	require.ErrorIs(t, err, rplidar.ErrUnknownCommand)
}

func TestDecode_ContextCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Decode(ctx, bytes.NewReader(virt.StopPacket()), nil, func(rplidar.Request) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

func TestDecode_ReadError(t *testing.T) {
	t.Parallel()
	errPort := errors.New("port gone")

	err := Decode(context.Background(), failingReader{err: errPort}, nil, func(rplidar.Request) error { return nil })
	require.ErrorIs(t, err, errPort)
}
