// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInOutFiles(t *testing.T) {
	in, out, err := InOutFiles("blinky.elf", ".elf", "", ".uf2")
	require.NoError(t, err)
	require.Equal(t, "blinky.elf", in)
	require.Equal(t, "blinky.uf2", out)

	in, out, err = InOutFiles("firmware.bin", ".elf", "", ".hex")
	require.NoError(t, err)
	require.Equal(t, "firmware.bin", in)
	require.Equal(t, "firmware.hex", out)

	_, out, err = InOutFiles("a.elf", ".elf", "b.uf2", ".uf2")
	require.NoError(t, err)
	require.Equal(t, "b.uf2", out)
}

func TestInOutFilesFromDir(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(wd) })

	in, out, err := InOutFiles("", ".elf", "", ".uf2")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(in, ".elf"))
	require.Equal(t, strings.TrimSuffix(in, ".elf")+".uf2", out)
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, "uf2", "blocks")
	p.Update(1, 4)
	require.Equal(t, "\ruf2 [======                   ] 1 blocks", buf.String())

	buf.Reset()
	p.Update(5, 4)
	require.Equal(t, "\ruf2 [=========================] 4 blocks\n", buf.String())

	buf.Reset()
	p.Update(6, 4)
	require.Zero(t, buf.Len())

	p = NewProgress(&buf, "uf2", "blocks")
	p.Update(1, 0)
	require.Zero(t, buf.Len())
}

func TestCheckOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "fw.uf2")
	require.NoError(t, os.WriteFile(in, []byte("firmware"), 0o644))
	other := filepath.Join(dir, "other.uf2")
	require.NoError(t, os.WriteFile(other, nil, 0o644))

	require.NoError(t, CheckOutput(in, filepath.Join(dir, "new.uf2")))
	require.NoError(t, CheckOutput(in, other))
	require.ErrorIs(t, CheckOutput(in, in), ErrSameFile)
	require.ErrorIs(t, CheckOutput(in, dir+"/./fw.uf2"), ErrSameFile)

	_, err := os.Stat(in)
	require.NoError(t, err)
	require.Error(t, CheckOutput(filepath.Join(dir, "missing.elf"), other))
}
