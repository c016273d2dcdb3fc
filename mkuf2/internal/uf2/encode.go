// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package uf2

import (
	"fmt"
	"io"

	"github.com/embeddedgo/uf2tools/mkuf2/internal/log"
	"github.com/pkg/errors"
)

var (
	ErrEmptyRange    = errors.New("uf2: empty range")
	ErrUnexpectedEOF = errors.New("unexpected EOF")
	ErrShortRead     = errors.New("unexpected short read")
	ErrShortWrite    = errors.New("wrong length for write")
)

// Range describes a contiguous part of the input file that should be written
// to the target memory at Addr.
type Range struct {
	Addr   uint32 // target address
	Offset uint32 // offset in the input file
	Length uint32 // number of bytes
}

// NumBlocks returns the number of blocks announced in every block of the
// file that contains length bytes starting at the target address addr. It is
// 0 if length <= addr%PayloadSize.
func NumBlocks(addr, length uint32) uint32 {
	n := (int64(length) - int64(addr%PayloadSize) + PayloadSize - 1) / PayloadSize
	return uint32(n)
}

// Encoder writes UF2 blocks to the underlying io.Writer.
type Encoder struct {
	w      io.Writer
	family uint32

	// Progress, if not nil, is called after every written block.
	Progress func(done, total int)
}

var logger = log.WithModule("uf2")

// NewEncoder returns an encoder that writes blocks tagged with the family ID
// to w.
func NewEncoder(w io.Writer, family uint32) *Encoder {
	return &Encoder{w: w, family: family}
}

// Encode reads the rng.Length bytes at rng.Offset from r and writes them to
// the underlying writer as UF2 blocks. Every block except the last ends at
// the 256-byte boundary of the input offset. Encode returns the number of
// written blocks. If an error is returned the output is incomplete and
// should be discarded.
func (e *Encoder) Encode(r io.ReaderAt, rng Range) (n int, err error) {
	if rng.Length == 0 {
		return 0, ErrEmptyRange
	}
	total := NumBlocks(rng.Addr, rng.Length)
	logger.Debug(
		"encoding range",
		"addr", hex32(rng.Addr), "offset", hex32(rng.Offset),
		"length", rng.Length, "blocks", total,
	)
	buf := make([]byte, 0, BlockSize)
	for pos := int64(0); pos < int64(rng.Length); {
		off := int64(rng.Offset) + pos
		amount := PayloadSize - off%PayloadSize
		if rest := int64(rng.Length) - pos; rest < amount {
			amount = rest
		}
		b := &Block{
			Magic0: Magic0,
			Magic1: Magic1,
			Flags:  FamilyIDPresent,
			Addr:   rng.Addr + uint32(pos),
			Len:    uint32(amount),
			Seq:    uint32(n),
			Total:  total,
			Family: e.family,
			Magic2: Magic2,
		}
		if err = readFull(r, b.Data[:amount], off); err != nil {
			return
		}
		buf, err = b.AppendBinary(buf[:0])
		if err != nil {
			return
		}
		var m int
		m, err = e.w.Write(buf)
		if m != len(buf) {
			if err == nil {
				err = errors.Wrapf(ErrShortWrite, "%d bytes", m)
			} else {
				err = errors.Wrapf(ErrShortWrite, "%d bytes: %v", m, err)
			}
			return
		}
		if err != nil {
			return n, errors.Wrap(err, "write")
		}
		logger.Trace(
			"wrote block", "seq", b.Seq, "addr", hex32(b.Addr), "len", b.Len,
		)
		n++
		if e.Progress != nil {
			e.Progress(n, int(total))
		}
		pos += amount
	}
	return
}

// readFull reads exactly len(p) bytes at off. The io.EOF reported together
// with a complete read is not an error.
func readFull(r io.ReaderAt, p []byte, off int64) error {
	m, err := r.ReadAt(p, off)
	if err != nil && err != io.EOF {
		return errors.Wrap(err, "pread")
	}
	switch {
	case m == 0:
		return errors.Wrapf(ErrUnexpectedEOF, "at offset %#x", off)
	case m != len(p):
		return errors.Wrapf(ErrShortRead, "%d of %d at offset %#x", m, len(p), off)
	}
	return nil
}

// Encode is a shorthand for NewEncoder(w, family).Encode(r, rng).
func Encode(w io.Writer, r io.ReaderAt, rng Range, family uint32) (int, error) {
	return NewEncoder(w, family).Encode(r, rng)
}

type hex32 uint32

func (h hex32) String() string {
	return fmt.Sprintf("0x%08x", uint32(h))
}
