// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd implements the mkuf2 command line.
package cmd

import (
	"io"
	"os"

	"github.com/embeddedgo/uf2tools/mkuf2/internal/config"
	"github.com/embeddedgo/uf2tools/mkuf2/internal/log"
	"github.com/embeddedgo/uf2tools/mkuf2/internal/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	flagConfig   = "config"
	flagLogLevel = "log-level"
)

var (
	stdout io.Writer = os.Stdout
	stderr           = os.Stderr
)

var logger = log.WithModule("cmd")

// app holds the state shared by all commands of a single invocation.
type app struct {
	cfgPath  string
	logLevel string
	cfg      *config.Config
	families map[string]uint32
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.ReadConfigFile(a.cfgPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed(flagLogLevel) {
		cfg.LogLevel = a.logLevel
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	families, err := cfg.FamilyIDs()
	if err != nil {
		return errors.Wrap(err, a.cfgPath)
	}
	a.cfg, a.families = cfg, families
	logger.Debug("configuration loaded", "path", a.cfgPath, "families", len(families))
	return nil
}

func newRootCmd() *cobra.Command {
	a := new(app)
	root := &cobra.Command{
		Use:           "mkuf2",
		Short:         "Convert firmware images to the UF2 format",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, flagConfig, config.DefaultPath, "configuration `file`")
	pf.StringVar(&a.logLevel, flagLogLevel, config.DefaultConfig.LogLevel, "log `level` (trace, debug, info, warn, error)")
	root.AddCommand(
		newUF2Cmd(a),
		newHexCmd(a),
		newSectionsCmd(a),
		newConfigCmd(a),
	)
	return root
}

// Execute runs the command line and exits the program on error.
func Execute() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		util.FatalErr(root.Name(), err)
	}
}
