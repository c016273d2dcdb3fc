// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"debug/elf"
	"io"

	"github.com/embeddedgo/uf2tools/mkuf2/internal/elfsect"
	"github.com/embeddedgo/uf2tools/mkuf2/internal/uf2"
	"github.com/embeddedgo/uf2tools/mkuf2/internal/util"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

const (
	flagAddress = "address"
	flagOffset  = "offset"
	flagLength  = "length"
	flagSection = "section"
	flagFile    = "file"
	flagOutput  = "output"
)

var errRangeFlags = errors.New("only one of --section and --address/--length/--offset may be specified")

// rangeFlags selects the part of the input file to convert.
type rangeFlags struct {
	fs      *pflag.FlagSet
	addr    uint32
	offset  uint32
	length  uint32
	section string
	file    string
	output  string
}

func (rf *rangeFlags) register(fs *pflag.FlagSet) {
	rf.fs = fs
	fs.Uint32VarP(&rf.addr, flagAddress, "a", 0, "target `address` of the first byte")
	fs.Uint32VarP(&rf.offset, flagOffset, "O", 0, "`offset` of the range in the input file")
	fs.Uint32VarP(&rf.length, flagLength, "l", 0, "`length` of the range in bytes")
	fs.StringVarP(&rf.section, flagSection, "s", "", "take address, offset and length from the ELF `section`")
	fs.StringVarP(&rf.file, flagFile, "f", "", "input `file`")
	fs.StringVarP(&rf.output, flagOutput, "o", "", "output `file`")
}

// validate checks that exactly one of the section or the explicit range is
// selected.
func (rf *rangeFlags) validate() error {
	if rf.section != "" {
		if rf.fs.Changed(flagAddress) || rf.fs.Changed(flagLength) || rf.offset != 0 {
			return errRangeFlags
		}
		return nil
	}
	if !rf.fs.Changed(flagAddress) {
		return errors.New("no target address specified")
	}
	if !rf.fs.Changed(flagLength) {
		return errors.New("no length specified")
	}
	return nil
}

// files returns the names of the input and output files taken from the
// flags or the positional arguments. The arguments are assigned in order to
// the names not given by flags.
func (rf *rangeFlags) files(args []string, outSuffix string) (in, out string, err error) {
	names := []*string{&rf.file, &rf.output}
	for _, arg := range args {
		for len(names) != 0 && *names[0] != "" {
			names = names[1:]
		}
		if len(names) == 0 {
			return "", "", errors.New("too many arguments")
		}
		*names[0] = arg
		names = names[1:]
	}
	return util.InOutFiles(rf.file, ".elf", rf.output, outSuffix)
}

// resolve returns the range selected by the flags. The r must be the input
// file.
func (rf *rangeFlags) resolve(r io.ReaderAt) (uf2.Range, error) {
	if rf.section == "" {
		return uf2.Range{Addr: rf.addr, Offset: rf.offset, Length: rf.length}, nil
	}
	s, err := elfsect.Find(r, rf.section)
	if err != nil {
		return uf2.Range{}, err
	}
	if s.Type != elf.SHT_PROGBITS || s.Flags&elf.SHF_ALLOC == 0 {
		logger.Warn("section is not loadable", "section", s.Name, "type", s.Type)
	}
	return s.Range()
}
