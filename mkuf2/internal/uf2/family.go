// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uf2

import (
	"maps"
	"slices"
	"strconv"

	"github.com/pkg/errors"
)

var ErrBadFamily = errors.New("uf2: bad family ID")

// Families maps the known family names to their IDs.
var Families = map[string]uint32{
	"rp2040":        0xe48bff56,
	"absolute":      0xe48bff57,
	"data":          0xe48bff58,
	"rp2350_arm_s":  0xe48bff59,
	"rp2350_riscv":  0xe48bff5a,
	"rp2350_arm_ns": 0xe48bff5b,
	"samd21":        0x68ed2b88,
	"samd51":        0x55114460,
	"nrf52840":      0xada52840,
	"stm32f4":       0x57755a57,
	"esp32s2":       0xbfdd4eee,
}

// FamilyNames returns the sorted names of the known families.
func FamilyNames() []string {
	return slices.Sorted(maps.Keys(Families))
}

// ParseFamily converts s to a family ID. The s can be a name from the extra
// map, a known family name or a 32-bit number. The extra map takes
// precedence over Families. An empty s means 0 (no family).
func ParseFamily(s string, extra map[string]uint32) (uint32, error) {
	if s == "" {
		return 0, nil
	}
	if id, ok := extra[s]; ok {
		return id, nil
	}
	if id, ok := Families[s]; ok {
		return id, nil
	}
	u, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrBadFamily, `"%s"`, s)
	}
	return uint32(u), nil
}
