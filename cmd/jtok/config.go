// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/creachadair/jtok"
	"github.com/spf13/cobra"
)

// config holds the settings of the tokenize command. Settings are read from
// an optional TOML file, then overridden by flags given on the command line.
type config struct {
	StrictRoot          bool   `toml:"strict_root"`
	NoTrailingCommas    bool   `toml:"no_trailing_commas"`
	AllowTrailingCommas bool   `toml:"allow_trailing_commas"`
	MultiRoot           bool   `toml:"multi_root"`
	TrackParents        bool   `toml:"track_parents"`
	JWCC                bool   `toml:"jwcc"`
	Format              string `toml:"format"`
	Jobs                int    `toml:"jobs"`
	Width               int    `toml:"width"`
}

func defaultConfig() config { return config{Format: "pretty", Width: 40} }

// loadConfig reads the config file at path. If path is empty, it returns the
// default configuration.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) != 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return cfg, fmt.Errorf("%s: unknown settings: %s", path, strings.Join(names, ", "))
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c config) validate() error {
	switch c.Format {
	case "pretty", "msgpack":
	default:
		return fmt.Errorf("unknown format: %s", c.Format)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("invalid jobs: %d", c.Jobs)
	}
	if c.Width < 4 {
		return fmt.Errorf("invalid width: %d", c.Width)
	}
	return nil
}

// options returns the tokenizer options selected by c.
func (c config) options() jtok.Options {
	var opts jtok.Options
	set := func(ok bool, o jtok.Options) {
		if ok {
			opts |= o
		}
	}
	set(c.StrictRoot, jtok.StrictRoot)
	set(c.NoTrailingCommas, jtok.NoTrailingCommas)
	set(c.AllowTrailingCommas, jtok.AllowTrailingCommas)
	set(c.MultiRoot, jtok.MultiRoot)
	set(c.TrackParents, jtok.TrackParents)
	return opts
}

func addConfigFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.String("config", "", "read settings from this TOML file")
	fs.Bool("strict-root", false, "require the document root to be an object")
	fs.Bool("no-trailing-commas", false, "report trailing commas as such")
	fs.Bool("allow-trailing-commas", false, "accept a comma before a closing bracket")
	fs.Bool("multi-root", false, "accept several top-level values")
	fs.Bool("parents", false, "record the parent of each token")
	fs.Bool("jwcc", false, "accept comments and trailing commas (JWCC)")
	fs.String("format", "pretty", "output format (pretty|msgpack)")
	fs.Int("jobs", 0, "number of inputs to tokenize concurrently (0 means GOMAXPROCS)")
	fs.Int("width", 40, "maximum display width of token text in pretty output")
}

// applyFlags overrides c with the flags explicitly set on cmd.
func (c *config) applyFlags(cmd *cobra.Command) error {
	fs := cmd.Flags()
	bools := []struct {
		name string
		dst  *bool
	}{
		{"strict-root", &c.StrictRoot},
		{"no-trailing-commas", &c.NoTrailingCommas},
		{"allow-trailing-commas", &c.AllowTrailingCommas},
		{"multi-root", &c.MultiRoot},
		{"parents", &c.TrackParents},
		{"jwcc", &c.JWCC},
	}
	for _, b := range bools {
		if !fs.Changed(b.name) {
			continue
		}
		v, err := fs.GetBool(b.name)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", b.name, err)
		}
		*b.dst = v
	}
	if fs.Changed("format") {
		v, err := fs.GetString("format")
		if err != nil {
			return fmt.Errorf("failed to get format flag: %w", err)
		}
		c.Format = v
	}
	ints := []struct {
		name string
		dst  *int
	}{
		{"jobs", &c.Jobs},
		{"width", &c.Width},
	}
	for _, n := range ints {
		if !fs.Changed(n.name) {
			continue
		}
		v, err := fs.GetInt(n.name)
		if err != nil {
			return fmt.Errorf("failed to get %s flag: %w", n.name, err)
		}
		*n.dst = v
	}
	return c.validate()
}
