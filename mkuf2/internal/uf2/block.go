// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package uf2 implements the Microsoft UF2 block format and an encoder that
// converts a byte range of a firmware image into a sequence of UF2 blocks.
package uf2

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	Magic0 = 0x0a324655 // "UF2\n"
	Magic1 = 0x9e5d5157
	Magic2 = 0x0ab16f30
)

const (
	NotMainFlash         = 0x00000001
	FileContainer        = 0x00001000
	FamilyIDPresent      = 0x00002000
	MD5ChecksumPresent   = 0x00004000
	ExtensionTagsPresent = 0x00008000
)

const (
	BlockSize   = 512
	PayloadSize = 256
)

var (
	ErrBlockSize = errors.New("uf2: block must be 512 bytes")
	ErrBadMagic  = errors.New("uf2: bad magic number")
)

// Block is a single UF2 record. The field order is the on-disk order, all
// fields are little-endian.
type Block struct {
	Magic0 uint32
	Magic1 uint32
	Flags  uint32
	Addr   uint32 // target address of Data[0]
	Len    uint32 // number of meaningful bytes in Data
	Seq    uint32 // block number, counted from 0
	Total  uint32 // number of blocks in the file
	Family uint32 // family ID if FamilyIDPresent flag is set
	Data   [PayloadSize]byte
	_      [476 - PayloadSize]byte
	Magic2 uint32
}

// AppendBinary appends the 512 byte encoding of b to dst.
func (b *Block) AppendBinary(dst []byte) ([]byte, error) {
	return binary.Append(dst, binary.LittleEndian, b)
}

// MarshalBinary returns the 512 byte encoding of b.
func (b *Block) MarshalBinary() ([]byte, error) {
	return b.AppendBinary(make([]byte, 0, BlockSize))
}

// ParseBlock decodes a single 512 byte UF2 record.
func ParseBlock(p []byte) (Block, error) {
	var b Block
	if len(p) != BlockSize {
		return b, errors.Wrapf(ErrBlockSize, "got %d bytes", len(p))
	}
	if _, err := binary.Decode(p, binary.LittleEndian, &b); err != nil {
		return b, errors.Wrap(err, "uf2")
	}
	if b.Magic0 != Magic0 || b.Magic1 != Magic1 || b.Magic2 != Magic2 {
		return b, errors.Wrapf(
			ErrBadMagic, "0x%08x 0x%08x 0x%08x", b.Magic0, b.Magic1, b.Magic2,
		)
	}
	return b, nil
}
