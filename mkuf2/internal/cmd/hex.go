// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"io"
	"os"

	"github.com/embeddedgo/uf2tools/mkuf2/internal/util"
	"github.com/marcinbor85/gohex"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const hexLineLength = 16

func newHexCmd(a *app) *cobra.Command {
	var rf rangeFlags
	cmd := &cobra.Command{
		Use:   "hex [FLAGS] [INPUT [OUTPUT]]",
		Short: "convert an ELF section or a file range to the Intel HEX format",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rf.validate(); err != nil {
				return err
			}
			in, out, err := rf.files(args, ".hex")
			if err != nil {
				return err
			}
			return writeHex(&rf, in, out)
		},
	}
	rf.register(cmd.Flags())
	return cmd
}

func writeHex(rf *rangeFlags, in, out string) (err error) {
	r, err := os.Open(in)
	if err != nil {
		return err
	}
	defer r.Close()
	rng, err := rf.resolve(r)
	if err != nil {
		return errors.Wrap(err, in)
	}
	if rng.Length == 0 {
		return errors.New("empty range")
	}
	data := make([]byte, rng.Length)
	_, err = io.ReadFull(io.NewSectionReader(r, int64(rng.Offset), int64(rng.Length)), data)
	if err != nil {
		return errors.Wrapf(err, "%s: reading %d bytes at %#x", in, rng.Length, rng.Offset)
	}
	mem := gohex.NewMemory()
	if err = mem.AddBinary(rng.Addr, data); err != nil {
		return errors.Wrap(err, "addbinary")
	}
	if err = util.CheckOutput(in, out); err != nil {
		return err
	}
	w, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			os.Remove(out)
		}
	}()
	logger.Info("writing Intel HEX", "output", out, "length", rng.Length)
	return errors.Wrap(mem.DumpIntelHex(w, hexLineLength), "dumpintelhex")
}
