// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Mkuf2 converts an ELF section or an explicit range of a firmware image to
// the Microsoft UF2 format.
//
// Usage:
//
//	mkuf2 uf2 -a ADDRESS -l LENGTH [-O OFFSET] [-F FAMILY] [INPUT [OUTPUT]]
//	mkuf2 uf2 -s SECTION [-F FAMILY] [INPUT [OUTPUT]]
//	mkuf2 hex -s SECTION [INPUT [OUTPUT]]
//	mkuf2 sections [ELF]
//	mkuf2 config
package main

import "github.com/embeddedgo/uf2tools/mkuf2/internal/cmd"

func main() {
	cmd.Execute()
}
