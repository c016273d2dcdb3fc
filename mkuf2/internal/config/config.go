// Copyright 2025 The Embedded Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads the optional mkuf2 configuration file.
package config

import (
	"io"
	"os"
	"strconv"

	"github.com/embeddedgo/uf2tools/mkuf2/internal/uf2"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

const DefaultPath = "~/.mkuf2.toml"

type Config struct {
	LogLevel string `toml:"log_level"`
	// Family is the default family name or ID used if not given on the
	// command line.
	Family   string            `toml:"family"`
	Progress bool              `toml:"progress"`
	Families map[string]string `toml:"families"`
}

var DefaultConfig = Config{
	LogLevel: "info",
	Family:   "",
	Progress: true,
	Families: map[string]string{},
}

// ReadConfig decodes the TOML configuration from r. Keys missing in r keep
// their default values.
func ReadConfig(r io.Reader) (*Config, error) {
	tree, err := toml.LoadReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "error decoding config file")
	}
	cfg := DefaultConfig
	cfg.Families = map[string]string{}
	if err := getString(tree, "log_level", &cfg.LogLevel); err != nil {
		return nil, err
	}
	if err := getString(tree, "family", &cfg.Family); err != nil {
		return nil, err
	}
	if v := tree.Get("progress"); v != nil {
		b, ok := v.(bool)
		if !ok {
			return nil, errors.Errorf("progress: expected boolean, got %T", v)
		}
		cfg.Progress = b
	}
	if v := tree.Get("families"); v != nil {
		t, ok := v.(*toml.Tree)
		if !ok {
			return nil, errors.Errorf("families: expected table, got %T", v)
		}
		for name, id := range t.ToMap() {
			switch id := id.(type) {
			case string:
				cfg.Families[name] = id
			case int64:
				cfg.Families[name] = strconv.FormatInt(id, 10)
			default:
				return nil, errors.Errorf("families.%s: expected string or integer, got %T", name, id)
			}
		}
	}
	return &cfg, nil
}

func getString(tree *toml.Tree, key string, dst *string) error {
	v := tree.Get(key)
	if v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return errors.Errorf("%s: expected string, got %T", key, v)
	}
	*dst = s
	return nil
}

// ReadConfigFile reads the configuration from the file at path. A leading ~
// in path is expanded to the home directory. A missing file yields the
// default configuration.
func ReadConfigFile(path string) (*Config, error) {
	path, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrap(err, "error expanding config path")
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig
			cfg.Families = map[string]string{}
			return &cfg, nil
		}
		return nil, errors.Wrap(err, "error opening config file")
	}
	defer f.Close()
	cfg, err := ReadConfig(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cfg, nil
}

// FamilyIDs parses the [families] table.
func (c *Config) FamilyIDs() (map[string]uint32, error) {
	ids := make(map[string]uint32, len(c.Families))
	for name, s := range c.Families {
		id, err := uf2.ParseFamily(s, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "family %s", name)
		}
		ids[name] = id
	}
	return ids, nil
}

// Marshal encodes c in the format accepted by ReadConfig.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(*c)
}
