// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
)

const (
	ptodo = "                         ] "
	pdone = " [========================="
)

// Progress draws a 25 character wide progress bar on a single terminal line.
type Progress struct {
	w     io.Writer
	buf   []byte
	pre   string
	post  string
	ended bool
}

// NewProgress returns a progress bar that writes to w. The pre is printed
// before the bar, the post after the current count.
func NewProgress(w io.Writer, pre, post string) *Progress {
	return &Progress{w: w, buf: make([]byte, 0, 80), pre: pre, post: post}
}

// IsTerminal reports whether f is a terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Update redraws the bar. The cur is clamped to max. The line is terminated
// when cur reaches max, after that Update does nothing.
func (p *Progress) Update(cur, max int) {
	if max <= 0 || p.ended {
		return
	}
	if cur > max {
		cur = max
	}
	b := p.buf[:0]
	b = append(b, '\r')
	b = append(b, p.pre...)
	done := 25 * cur / max
	b = append(b, pdone[:2+done]...)
	b = append(b, ptodo[done:]...)
	b = strconv.AppendInt(b, int64(cur), 10)
	b = append(b, ' ')
	b = append(b, p.post...)
	if cur == max {
		b = append(b, '\n')
		p.ended = true
	}
	p.buf = b
	p.w.Write(b)
}
