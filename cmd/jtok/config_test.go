// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/creachadair/jtok"
	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"
)

func writeFile(t *testing.T, name, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(text), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		cfg, err := loadConfig("")
		if err != nil {
			t.Fatalf("loadConfig: unexpected error: %v", err)
		}
		if diff := cmp.Diff(defaultConfig(), cfg); diff != "" {
			t.Errorf("Config (-want, +got)\n%s", diff)
		}
	})

	t.Run("File", func(t *testing.T) {
		path := writeFile(t, "jtok.toml", `
strict_root = true
track_parents = true
format = "msgpack"
jobs = 3
`)
		cfg, err := loadConfig(path)
		if err != nil {
			t.Fatalf("loadConfig: unexpected error: %v", err)
		}
		want := config{StrictRoot: true, TrackParents: true, Format: "msgpack", Jobs: 3, Width: 40}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("Config (-want, +got)\n%s", diff)
		}
	})

	tests := []struct {
		name, text, want string
	}{
		{"Unknown", "strict_root = true\nbogus = 1\n", "unknown settings: bogus"},
		{"BadFormat", `format = "yaml"`, "unknown format: yaml"},
		{"BadJobs", "jobs = -1", "invalid jobs: -1"},
		{"BadWidth", "width = 2", "invalid width: 2"},
		{"BadTOML", "format = ", "failed to parse TOML"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := writeFile(t, "jtok.toml", test.text)
			_, err := loadConfig(path)
			if err == nil || !strings.Contains(err.Error(), test.want) {
				t.Errorf("loadConfig: got %v, want error containing %q", err, test.want)
			}
		})
	}

	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("loadConfig of a missing file: got nil error")
	}
}

func TestOptions(t *testing.T) {
	tests := []struct {
		cfg  config
		want jtok.Options
	}{
		{config{}, 0},
		{config{StrictRoot: true}, jtok.StrictRoot},
		{config{NoTrailingCommas: true, AllowTrailingCommas: true}, jtok.NoTrailingCommas | jtok.AllowTrailingCommas},
		{config{MultiRoot: true, TrackParents: true}, jtok.MultiRoot | jtok.TrackParents},
		{config{JWCC: true, Jobs: 4}, 0},
	}
	for _, test := range tests {
		if got := test.cfg.options(); got != test.want {
			t.Errorf("options(%+v): got %v, want %v", test.cfg, got, test.want)
		}
	}
}

func TestApplyFlags(t *testing.T) {
	newCmd := func(t *testing.T, args ...string) *cobra.Command {
		t.Helper()
		cmd := &cobra.Command{Use: "test"}
		addConfigFlags(cmd)
		if err := cmd.Flags().Parse(args); err != nil {
			t.Fatalf("Parse %q: %v", args, err)
		}
		return cmd
	}

	base := config{StrictRoot: true, Format: "msgpack", Jobs: 2, Width: 40}

	t.Run("Unset", func(t *testing.T) {
		cfg := base
		if err := cfg.applyFlags(newCmd(t)); err != nil {
			t.Fatalf("applyFlags: unexpected error: %v", err)
		}
		if diff := cmp.Diff(base, cfg); diff != "" {
			t.Errorf("Config (-want, +got)\n%s", diff)
		}
	})

	t.Run("Override", func(t *testing.T) {
		cfg := base
		cmd := newCmd(t, "--strict-root=false", "--parents", "--jwcc", "--format", "pretty", "--width", "12")
		if err := cfg.applyFlags(cmd); err != nil {
			t.Fatalf("applyFlags: unexpected error: %v", err)
		}
		want := config{TrackParents: true, JWCC: true, Format: "pretty", Jobs: 2, Width: 12}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("Config (-want, +got)\n%s", diff)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		cfg := base
		if err := cfg.applyFlags(newCmd(t, "--format", "xml")); err == nil {
			t.Error("applyFlags: got nil error for an unknown format")
		}
	})
}
