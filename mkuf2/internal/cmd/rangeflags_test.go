// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"testing"

	"github.com/embeddedgo/uf2tools/mkuf2/internal/uf2"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func parseRangeFlags(t *testing.T, args ...string) *rangeFlags {
	t.Helper()
	rf := new(rangeFlags)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	rf.register(fs)
	require.NoError(t, fs.Parse(args))
	return rf
}

func TestRangeFlagsValidate(t *testing.T) {
	ok := [][]string{
		{"-s", ".text"},
		{"-s", ".text", "-O", "0"},
		{"-a", "0x10000000", "-l", "4096"},
		{"--address", "0", "--length", "1", "--offset", "0x100"},
	}
	for _, args := range ok {
		require.NoError(t, parseRangeFlags(t, args...).validate(), args)
	}
	bad := [][]string{
		{},
		{"-O", "16"},
		{"-s", ".text", "-a", "0"},
		{"-s", ".text", "-O", "1"},
	}
	for _, args := range bad {
		require.Error(t, parseRangeFlags(t, args...).validate(), args)
	}
}

func TestRangeFlagsExplicit(t *testing.T) {
	rf := parseRangeFlags(t, "-a", "0x1010", "-O", "0x40", "-l", "300")
	rng, err := rf.resolve(nil)
	require.NoError(t, err)
	require.Equal(t, uf2.Range{Addr: 0x1010, Offset: 0x40, Length: 300}, rng)
}

func TestRangeFlagsFiles(t *testing.T) {
	rf := parseRangeFlags(t)
	in, out, err := rf.files([]string{"app.elf"}, ".uf2")
	require.NoError(t, err)
	require.Equal(t, "app.elf", in)
	require.Equal(t, "app.uf2", out)

	rf = parseRangeFlags(t, "-o", "x.uf2")
	in, out, err = rf.files([]string{"app.elf"}, ".uf2")
	require.NoError(t, err)
	require.Equal(t, "app.elf", in)
	require.Equal(t, "x.uf2", out)

	rf = parseRangeFlags(t, "-f", "app.elf")
	in, out, err = rf.files([]string{"x.uf2"}, ".uf2")
	require.NoError(t, err)
	require.Equal(t, "app.elf", in)
	require.Equal(t, "x.uf2", out)

	rf = parseRangeFlags(t, "-f", "app.elf", "-o", "x.uf2")
	_, _, err = rf.files([]string{"y.uf2"}, ".uf2")
	require.Error(t, err)

	rf = parseRangeFlags(t)
	_, _, err = rf.files([]string{"a", "b", "c"}, ".uf2")
	require.Error(t, err)
}
