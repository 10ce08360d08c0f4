// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/creachadair/jtok"
	"github.com/creachadair/jtok/jwcc"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.json...",
	Short: "Tokenize JSON files",
	Long: `Tokenize scans each named file and prints the tokens it contains.
Use "-" to read standard input.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTokenize,
}

func init() { addConfigFlags(tokenizeCmd) }

// A result is the outcome of tokenizing one input.
type result struct {
	path  string
	input []byte
	toks  []jtok.Token
	err   error
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return err
	}
	if err := cfg.applyFlags(cmd); err != nil {
		return err
	}
	outColor, err := colorFor(cmd, os.Stdout)
	if err != nil {
		return err
	}
	errColor, err := colorFor(cmd, os.Stderr)
	if err != nil {
		return err
	}

	results, err := tokenizeFiles(cmd.Context(), args, cfg, os.Stdin)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	out, errOut := newPalette(outColor), newPalette(errColor)
	var failed int
	for _, r := range results {
		if r.err != nil {
			failed++
			if err := reportError(cmd.ErrOrStderr(), r, errOut); err != nil {
				return err
			}
		}
		switch cfg.Format {
		case "pretty":
			err = writePretty(cmd.OutOrStdout(), r, out, cfg.Width)
		case "msgpack":
			err = writeMsgpack(cmd.OutOrStdout(), r)
		}
		if err != nil {
			return fmt.Errorf("writing output for %s: %w", r.path, err)
		}
	}
	if failed != 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(results))
	}
	return nil
}

// tokenizeFiles tokenizes each of paths concurrently, in at most cfg.Jobs
// goroutines. The path "-" denotes stdin. Results are reported in the order
// of paths; a failure to tokenize an input is recorded in its result.
func tokenizeFiles(ctx context.Context, paths []string, cfg config, stdin io.Reader) ([]result, error) {
	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(paths))))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = tokenizeOne(path, cfg, stdin)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func tokenizeOne(path string, cfg config, stdin io.Reader) result {
	r := result{path: path}
	src := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			r.err = err
			return r
		}
		defer f.Close()
		src = f
	}

	if cfg.JWCC {
		// Comments must be blanked out of the whole input first.
		r.input, r.err = io.ReadAll(src)
		if r.err == nil {
			r.toks, r.err = jwcc.Tokenize(r.input, cfg.options())
		}
		return r
	}
	r.toks, r.input, r.err = jtok.NewStream(src, cfg.options()).Tokens()
	return r
}
