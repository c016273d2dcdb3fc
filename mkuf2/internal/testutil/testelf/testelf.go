// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testelf builds minimal little-endian ELF objects for tests.
package testelf

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
)

// Section describes a section to be written. If Offset is not zero the
// section header carries it verbatim and Data is not written to the file.
// If Size is not zero it replaces len(Data) in the header.
type Section struct {
	Name   string
	Type   elf.SectionType
	Flags  elf.SectionFlag
	Addr   uint64
	Offset uint64
	Size   uint64
	Data   []byte
}

// Progbits returns an allocatable SHT_PROGBITS section.
func Progbits(name string, addr uint64, data []byte) Section {
	return Section{
		Name:  name,
		Type:  elf.SHT_PROGBITS,
		Flags: elf.SHF_ALLOC | elf.SHF_EXECINSTR,
		Addr:  addr,
		Data:  data,
	}
}

// Build returns an ELF object of the given class (ELFCLASS32 or ELFCLASS64)
// that contains the null section, the sections ss in order and the section
// name string table as the last section.
func Build(class elf.Class, ss ...Section) []byte {
	is64 := class == elf.ELFCLASS64
	ehsize, shentsize := 52, 40
	if is64 {
		ehsize, shentsize = 64, 64
	}

	// section name string table
	shstrtab := []byte{0}
	names := make([]uint32, len(ss)+1)
	for i, s := range ss {
		names[i] = uint32(len(shstrtab))
		shstrtab = append(append(shstrtab, s.Name...), 0)
	}
	names[len(ss)] = uint32(len(shstrtab))
	shstrtab = append(append(shstrtab, ".shstrtab"...), 0)
	ss = append(ss, Section{
		Name: ".shstrtab",
		Type: elf.SHT_STRTAB,
		Data: shstrtab,
	})

	// section data
	body := make([]byte, ehsize)
	offs := make([]uint64, len(ss))
	for i, s := range ss {
		offs[i] = s.Offset
		if s.Offset != 0 || s.Type == elf.SHT_NOBITS {
			continue
		}
		for len(body)%4 != 0 {
			body = append(body, 0)
		}
		offs[i] = uint64(len(body))
		body = append(body, s.Data...)
	}
	for len(body)%8 != 0 {
		body = append(body, 0)
	}
	shoff := uint64(len(body))

	le := binary.LittleEndian
	buf := bytes.NewBuffer(body[:0:0])
	w := func(v any) { binary.Write(buf, le, v) }

	// ELF header
	ident := [elf.EI_NIDENT]byte{0x7f, 'E', 'L', 'F', byte(class), byte(elf.ELFDATA2LSB), byte(elf.EV_CURRENT)}
	w(ident)
	w(uint16(elf.ET_EXEC))
	w(uint16(elf.EM_ARM))
	w(uint32(elf.EV_CURRENT))
	if is64 {
		w(uint64(0)) // entry
		w(uint64(0)) // phoff
		w(shoff)
	} else {
		w(uint32(0))
		w(uint32(0))
		w(uint32(shoff))
	}
	w(uint32(0)) // flags
	w(uint16(ehsize))
	w(uint16(0)) // phentsize
	w(uint16(0)) // phnum
	w(uint16(shentsize))
	w(uint16(len(ss) + 1))
	w(uint16(len(ss))) // shstrndx

	buf.Write(body[ehsize:])

	// section header table, starting with the null section
	buf.Write(make([]byte, shentsize))
	for i, s := range ss {
		size := s.Size
		if size == 0 {
			size = uint64(len(s.Data))
		}
		if is64 {
			w(elf.Section64{
				Name: names[i], Type: uint32(s.Type), Flags: uint64(s.Flags),
				Addr: s.Addr, Off: offs[i], Size: size, Addralign: 4,
			})
		} else {
			w(elf.Section32{
				Name: names[i], Type: uint32(s.Type), Flags: uint32(s.Flags),
				Addr: uint32(s.Addr), Off: uint32(offs[i]), Size: uint32(size),
				Addralign: 4,
			})
		}
	}
	return buf.Bytes()
}
