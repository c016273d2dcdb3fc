// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elfsect

import (
	"bytes"
	"debug/elf"
	"testing"

	"github.com/embeddedgo/uf2tools/mkuf2/internal/testutil/testelf"
	"github.com/embeddedgo/uf2tools/mkuf2/internal/uf2"
	"github.com/stretchr/testify/require"
)

func firmware(n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = byte(i)
	}
	return p
}

func TestResolve(t *testing.T) {
	for _, class := range []elf.Class{elf.ELFCLASS32, elf.ELFCLASS64} {
		t.Run(class.String(), func(t *testing.T) {
			text := firmware(300)
			obj := testelf.Build(
				class,
				testelf.Progbits(".text", 0x10000000, text),
				testelf.Progbits(".rodata", 0x10000200, firmware(16)),
			)
			rng, err := Resolve(bytes.NewReader(obj), ".text")
			require.NoError(t, err)
			require.Equal(t, uint32(0x10000000), rng.Addr)
			require.Equal(t, uint32(len(text)), rng.Length)
			require.NotZero(t, rng.Offset)
			require.Equal(t, text, obj[rng.Offset:rng.Offset+rng.Length])
		})
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	obj := testelf.Build(
		elf.ELFCLASS32,
		testelf.Progbits(".text", 0x1000, firmware(8)),
		testelf.Progbits(".text", 0x2000, firmware(16)),
	)
	rng, err := Resolve(bytes.NewReader(obj), ".text")
	require.NoError(t, err)
	require.Equal(t, uint32(0x1000), rng.Addr)
	require.Equal(t, uint32(8), rng.Length)
}

func TestResolveNotFound(t *testing.T) {
	obj := testelf.Build(
		elf.ELFCLASS32,
		testelf.Progbits(".text", 0x1000, firmware(8)),
	)
	for _, name := range []string{".TEXT", ".data", "text", ""} {
		_, err := Resolve(bytes.NewReader(obj), name)
		require.ErrorIs(t, err, ErrNotFound, name)
	}
}

func TestResolveUnusable(t *testing.T) {
	obj := testelf.Build(
		elf.ELFCLASS64,
		testelf.Progbits(".vectors", 0, firmware(64)),
		testelf.Progbits(".empty", 0x1000, nil),
		testelf.Section{
			Name:  ".bss",
			Type:  elf.SHT_NOBITS,
			Flags: elf.SHF_ALLOC | elf.SHF_WRITE,
			Addr:  0x20000000,
			Size:  0x400,
		},
		testelf.Progbits(".high", 0x100000000, firmware(4)),
	)
	for name, what := range map[string]string{
		".vectors": "address",
		".empty":   "length",
		".bss":     "offset",
		".high":    "address",
	} {
		_, err := Resolve(bytes.NewReader(obj), name)
		require.ErrorIs(t, err, ErrUnusableValue, name)
		require.Contains(t, err.Error(), what, name)
	}
}

func TestResolveMalformed(t *testing.T) {
	obj := testelf.Build(
		elf.ELFCLASS32,
		testelf.Progbits(".text", 0x1000, firmware(8)),
	)
	for name, p := range map[string][]byte{
		"garbage":   firmware(128),
		"empty":     nil,
		"truncated": obj[:len(obj)-20],
	} {
		_, err := Resolve(bytes.NewReader(p), ".text")
		require.ErrorIs(t, err, ErrMalformedELF, name)
	}
}

func TestList(t *testing.T) {
	obj := testelf.Build(
		elf.ELFCLASS32,
		testelf.Progbits(".text", 0x1000, firmware(8)),
		testelf.Progbits(".zero", 0, firmware(8)),
	)
	ss, err := List(bytes.NewReader(obj))
	require.NoError(t, err)
	require.Len(t, ss, 3)

	require.Equal(t, 1, ss[0].Index)
	require.Equal(t, ".text", ss[0].Name)
	require.Equal(t, elf.SHT_PROGBITS, ss[0].Type)
	require.True(t, ss[0].Usable())
	require.Equal(t, ".zero", ss[1].Name)
	require.False(t, ss[1].Usable())
	require.Equal(t, ".shstrtab", ss[2].Name)
	require.Equal(t, elf.SHT_STRTAB, ss[2].Type)

	_, err = List(bytes.NewReader(firmware(10)))
	require.ErrorIs(t, err, ErrMalformedELF)
}

// A section resolved by name feeds the encoder directly.
func TestResolveAndEncode(t *testing.T) {
	text := firmware(600)
	obj := testelf.Build(
		elf.ELFCLASS32,
		testelf.Progbits(".text", 0x10000000, text),
	)
	r := bytes.NewReader(obj)
	rng, err := Resolve(r, ".text")
	require.NoError(t, err)

	var out bytes.Buffer
	n, err := uf2.Encode(&out, r, rng, uf2.Families["rp2040"])
	require.NoError(t, err)
	require.Equal(t, n*uf2.BlockSize, out.Len())

	var got []byte
	for p := out.Bytes(); len(p) != 0; p = p[uf2.BlockSize:] {
		b, err := uf2.ParseBlock(p[:uf2.BlockSize])
		require.NoError(t, err)
		got = append(got, b.Data[:b.Len]...)
	}
	require.Equal(t, text, got)
}

func TestNoSections(t *testing.T) {
	obj := testelf.Build(elf.ELFCLASS32)
	_, err := Resolve(bytes.NewReader(obj), ".text")
	require.ErrorIs(t, err, ErrNotFound)
}
