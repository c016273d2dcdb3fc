// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"bufio"
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// FatalErr prints an error description and exits the program if the
// err != nil.
func FatalErr(what string, err error) {
	if err == nil {
		return
	}
	s := err.Error() + "\n"
	if what != "" {
		s = what + ": " + s
	}
	os.Stderr.WriteString(s)
	os.Exit(1)
}

// dirName returns the last element of the path to the current working
// directory.
func dirName() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	dir = filepath.Base(dir)
	if dir == "/" || dir == "." {
		dir = ""
	}
	return dir, nil
}

// moduleName returns the last element of the module path found in the go.mod
// file of the current directory.
func moduleName() (string, error) {
	out, err := exec.Command("go", "env", "GOMOD").Output()
	if err != nil {
		return "", errors.Wrap(err, "go env GOMOD")
	}
	gomod := filepath.Clean(string(bytes.TrimRightFunc(out, unicode.IsSpace)))
	if gomod == "" || gomod == os.DevNull {
		return "", errors.New("go.mod file not found in current directory or any parent directory")
	}
	f, err := os.Open(gomod)
	if err != nil {
		return "", err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fs := bytes.Fields(sc.Bytes())
		if len(fs) >= 2 && string(fs[0]) == "module" {
			return filepath.Base(string(fs[1])), nil
		}
	}
	if err := sc.Err(); err != nil {
		return "", err
	}
	return "", errors.New("there is no module directive in " + gomod)
}

// InOutFiles infers the name of the input and output files. An empty inName
// is replaced by the name of the module in the current directory (or the
// name of the directory itself) with inSuffix appended. An empty outName is
// replaced by inName with inSuffix (or the extension) replaced by outSuffix.
func InOutFiles(inName, inSuffix, outName, outSuffix string) (string, string, error) {
	if inName == "" {
		var err error
		fi, serr := os.Stat("go.mod")
		if serr != nil || !fi.Mode().IsRegular() {
			inName, err = dirName()
		} else {
			inName, err = moduleName()
		}
		if err != nil {
			return "", "", err
		}
		if inName == "" {
			return "", "", errors.New("cannot infer the input file name")
		}
		inName += inSuffix
	}
	if outName == "" {
		base := strings.TrimSuffix(inName, inSuffix)
		if base == inName {
			base = strings.TrimSuffix(inName, filepath.Ext(inName))
		}
		outName = base + outSuffix
	}
	return inName, outName, nil
}

// ErrSameFile is returned by CheckOutput if the output file is the input file.
var ErrSameFile = errors.New("output file is the input file")

// CheckOutput returns ErrSameFile if out names the same file as in. A
// nonexistent out is never the same file.
func CheckOutput(in, out string) error {
	fi, err := os.Stat(in)
	if err != nil {
		return err
	}
	fo, err := os.Stat(out)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if os.SameFile(fi, fo) {
		return errors.Wrap(ErrSameFile, out)
	}
	return nil
}
