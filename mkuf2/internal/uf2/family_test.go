// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uf2

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFamily(t *testing.T) {
	extra := map[string]uint32{"myboard": 0x11223344, "rp2040": 1}
	tests := []struct {
		in   string
		want uint32
	}{
		{"", 0},
		{"rp2350_arm_s", 0xe48bff59},
		{"rp2040", 1},
		{"myboard", 0x11223344},
		{"0xada52840", 0xada52840},
		{"1234", 1234},
	}
	for _, tc := range tests {
		got, err := ParseFamily(tc.in, extra)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}
	for _, bad := range []string{"0x100000000", "RP2040", "-1"} {
		_, err := ParseFamily(bad, nil)
		require.ErrorIs(t, err, ErrBadFamily, bad)
	}
}

func TestFamilyNames(t *testing.T) {
	names := FamilyNames()
	require.Len(t, names, len(Families))
	require.IsIncreasing(t, names)
}
