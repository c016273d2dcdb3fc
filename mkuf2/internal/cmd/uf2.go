// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/embeddedgo/uf2tools/mkuf2/internal/uf2"
	"github.com/embeddedgo/uf2tools/mkuf2/internal/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const flagFamily = "family"

func newUF2Cmd(a *app) *cobra.Command {
	var (
		rf     rangeFlags
		family string
	)
	cmd := &cobra.Command{
		Use:   "uf2 [FLAGS] [INPUT [OUTPUT]]",
		Short: "convert an ELF section or a file range to the UF2 format",
		Long: "Convert an ELF section or an explicit range of the input file to the\n" +
			"UF2 format. Use either --section or --address and --length (with an\n" +
			"optional --offset).",
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rf.validate(); err != nil {
				return err
			}
			in, out, err := rf.files(args, ".uf2")
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed(flagFamily) {
				family = a.cfg.Family
			}
			familyID, err := uf2.ParseFamily(family, a.families)
			if err != nil {
				return err
			}
			n, err := a.encodeUF2(&rf, in, out, familyID)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Wrote %d blocks\n", n)
			return nil
		},
	}
	rf.register(cmd.Flags())
	cmd.Flags().StringVarP(
		&family, flagFamily, "F", "",
		"UF2 family `ID` (32-bit number) or a known family name:\n"+
			strings.Join(uf2.FamilyNames(), ", "),
	)
	return cmd
}

func (a *app) encodeUF2(rf *rangeFlags, in, out string, family uint32) (n int, err error) {
	r, err := os.Open(in)
	if err != nil {
		return 0, err
	}
	defer r.Close()
	rng, err := rf.resolve(r)
	if err != nil {
		return 0, errors.Wrap(err, in)
	}
	logger.Info(
		"converting", "input", in, "output", out,
		"addr", fmt.Sprintf("%#x", rng.Addr),
		"offset", fmt.Sprintf("%#x", rng.Offset),
		"length", rng.Length,
		"family", fmt.Sprintf("%#x", family),
	)
	if err = util.CheckOutput(in, out); err != nil {
		return 0, err
	}
	w, err := os.OpenFile(out, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := w.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			// The partial output is useless.
			os.Remove(out)
		}
	}()
	enc := uf2.NewEncoder(w, family)
	if a.cfg.Progress && util.IsTerminal(stderr) {
		enc.Progress = util.NewProgress(stderr, "uf2", "blocks").Update
	}
	n, err = enc.Encode(r, rng)
	if err != nil {
		return n, errors.Wrap(err, out)
	}
	if total := uf2.NumBlocks(rng.Addr, rng.Length); n != int(total) {
		logger.Warn("block count differs from numBlocks", "written", n, "numBlocks", total)
	}
	return n, nil
}
