// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/embeddedgo/uf2tools/mkuf2/internal/elfsect"
	"github.com/embeddedgo/uf2tools/mkuf2/internal/util"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newSectionsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sections [ELF]",
		Short: "list the sections of an ELF file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in string
			if len(args) != 0 {
				in = args[0]
			}
			in, _, err := util.InOutFiles(in, ".elf", "-", "")
			if err != nil {
				return err
			}
			return listSections(in)
		},
	}
}

func listSections(in string) error {
	r, err := os.Open(in)
	if err != nil {
		return err
	}
	defer r.Close()
	ss, err := elfsect.List(r)
	if err != nil {
		return errors.Wrap(err, in)
	}
	table := tablewriter.NewWriter(stdout)
	table.SetHeader([]string{
		"Idx", "Name", "Type", "Flags", "Addr", "Offset", "Size", "Usable",
	})
	for _, s := range ss {
		table.Append([]string{
			strconv.Itoa(s.Index),
			s.Name,
			s.Type.String(),
			s.Flags.String(),
			fmt.Sprintf("0x%08x", s.Addr),
			fmt.Sprintf("%#x", s.Offset),
			strconv.FormatUint(s.Size, 10),
			strconv.FormatBool(s.Usable()),
		})
	}
	table.Render()
	return nil
}
