// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package elfsect finds ELF sections by name and describes them as ranges of
// the ELF file that can be converted to UF2.
package elfsect

import (
	"debug/elf"
	"io"
	"math"

	"github.com/embeddedgo/uf2tools/mkuf2/internal/uf2"
	"github.com/pkg/errors"
)

var (
	ErrNotFound      = errors.New("section not found")
	ErrMalformedELF  = errors.New("malformed ELF file")
	ErrUnusableValue = errors.New("unusable section value")
)

type Section struct {
	Index  int
	Name   string
	Type   elf.SectionType
	Flags  elf.SectionFlag
	Addr   uint64 // sh_addr, address in the memory during execution
	Offset uint64 // sh_offset, offset in the ELF file to the section data
	Size   uint64 // sh_size, size of the section in the file
}

// Range checks that the section can be selected by name and returns its
// address, offset and size. Zero is never a usable value.
func (s *Section) Range() (uf2.Range, error) {
	for _, v := range [...]struct {
		what string
		val  uint64
	}{
		{"address", s.Addr},
		{"offset", s.Offset},
		{"length", s.Size},
	} {
		if v.val == 0 || v.val > math.MaxUint32 {
			return uf2.Range{}, errors.Wrapf(
				ErrUnusableValue, "%s %#x for section %s", v.what, v.val, s.Name,
			)
		}
	}
	return uf2.Range{
		Addr:   uint32(s.Addr),
		Offset: uint32(s.Offset),
		Length: uint32(s.Size),
	}, nil
}

// Usable reports whether Range succeeds for s.
func (s *Section) Usable() bool {
	_, err := s.Range()
	return err == nil
}

func open(r io.ReaderAt) (*elf.File, error) {
	f, err := elf.NewFile(r)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedELF, "%v", err)
	}
	return f, nil
}

func section(i int, s *elf.Section) Section {
	return Section{
		Index:  i,
		Name:   s.Name,
		Type:   s.Type,
		Flags:  s.Flags,
		Addr:   s.Addr,
		Offset: s.Offset,
		Size:   s.FileSize,
	}
}

// Find returns the first section in the section header table with the given
// name. Names are compared case-sensitively.
func Find(r io.ReaderAt, name string) (Section, error) {
	if name == "" {
		return Section{}, errors.Wrap(ErrNotFound, "empty section name")
	}
	f, err := open(r)
	if err != nil {
		return Section{}, err
	}
	defer f.Close()
	for i, s := range f.Sections {
		if i == 0 {
			continue // SHN_UNDEF
		}
		if s.Name == name {
			return section(i, s), nil
		}
	}
	return Section{}, errors.Wrapf(ErrNotFound, "%s", name)
}

// Resolve finds the named section and returns the part of the ELF file
// described by its header together with the load address.
func Resolve(r io.ReaderAt, name string) (uf2.Range, error) {
	s, err := Find(r, name)
	if err != nil {
		return uf2.Range{}, err
	}
	return s.Range()
}

// List returns all sections of the ELF file in the section header table
// order, excluding the null section.
func List(r io.ReaderAt) ([]Section, error) {
	f, err := open(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if len(f.Sections) == 0 {
		return nil, nil
	}
	ss := make([]Section, 0, len(f.Sections)-1)
	for i, s := range f.Sections[1:] {
		ss = append(ss, section(i+1, s))
	}
	return ss, nil
}
