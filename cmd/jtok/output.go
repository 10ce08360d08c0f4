// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/creachadair/jtok"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/vmihailenco/msgpack/v5"
)

// A palette holds the colors used for output.
type palette struct {
	object, array, key, str, prim *color.Color
	err, dim                      *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		object: color.New(color.FgCyan, color.Bold),
		array:  color.New(color.FgBlue, color.Bold),
		key:    color.New(color.FgYellow),
		str:    color.New(color.FgGreen),
		prim:   color.New(color.FgMagenta),
		err:    color.New(color.FgRed, color.Bold),
		dim:    color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.object, p.array, p.key, p.str, p.prim, p.err, p.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) forToken(tok jtok.Token) *color.Color {
	switch tok.Kind {
	case jtok.Object:
		return p.object
	case jtok.Array:
		return p.array
	case jtok.String:
		if tok.IsKey {
			return p.key
		}
		return p.str
	case jtok.Primitive:
		return p.prim
	}
	return p.dim
}

// writePretty writes a human-readable listing of the tokens in r to w. Token
// text wider than width display cells is truncated.
func writePretty(w io.Writer, r result, p palette, width int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "== %s (%d tokens)\n", r.path, len(r.toks))
	for i, tok := range r.toks {
		c := p.forToken(tok)
		var detail string
		switch tok.Kind {
		case jtok.Object:
			detail = fmt.Sprintf("{%d}", tok.Children())
		case jtok.Array:
			detail = fmt.Sprintf("[%d]", tok.Children())
		case jtok.String:
			detail = `"` + runewidth.Truncate(string(tok.Text(r.input)), width, "...") + `"`
			if tok.IsKey {
				detail += ":"
			}
		default:
			detail = runewidth.Truncate(string(tok.Text(r.input)), width, "...")
		}
		fmt.Fprintf(bw, "%5d %s %6d  %s", i, c.Sprintf("%-9s", tok.Kind), tok.Start, c.Sprint(detail))
		if tok.Parent >= 0 {
			fmt.Fprint(bw, p.dim.Sprintf("  ^%d", tok.Parent))
		}
		fmt.Fprintln(bw)
	}
	return bw.Flush()
}

// reportError writes a diagnostic for the error in r to w. For a syntax
// error, the offending line is quoted with a marker under the location.
func reportError(w io.Writer, r result, p palette) error {
	var serr *jtok.SyntaxError
	if !errors.As(r.err, &serr) {
		_, err := fmt.Fprintf(w, "%s: %s\n", r.path, p.err.Sprint(r.err))
		return err
	}

	off := min(serr.Offset, len(r.input))
	start := bytes.LastIndexByte(r.input[:off], '\n') + 1
	end := len(r.input)
	if i := bytes.IndexByte(r.input[off:], '\n'); i >= 0 {
		end = off + i
	}
	line := strings.TrimSuffix(string(r.input[start:end]), "\r")
	pad := strings.Repeat(" ", runewidth.StringWidth(string(r.input[start:off])))

	_, err := fmt.Fprintf(w, "%s:%s: %s\n  %s\n  %s%s\n",
		r.path, serr.Location, p.err.Sprint(serr.Message), line, pad, p.err.Sprint("^"))
	return err
}

// A tokenRecord is the binary encoding of a token.
type tokenRecord struct {
	Kind   string `msgpack:"kind"`
	Start  uint32 `msgpack:"start"`
	Size   uint32 `msgpack:"size"`
	Parent int32  `msgpack:"parent"`
	Key    bool   `msgpack:"key,omitempty"`
}

// A fileRecord is the binary encoding of the result for one input.
type fileRecord struct {
	Path   string        `msgpack:"path"`
	Error  string        `msgpack:"error,omitempty"`
	Tokens []tokenRecord `msgpack:"tokens"`
}

func newFileRecord(r result) (*fileRecord, error) {
	rec := &fileRecord{Path: r.path, Tokens: make([]tokenRecord, len(r.toks))}
	if r.err != nil {
		rec.Error = r.err.Error()
	}
	for i, tok := range r.toks {
		start, err := safecast.Conv[uint32](tok.Start)
		if err != nil {
			return nil, fmt.Errorf("token %d: start: %w", i, err)
		}
		size, err := safecast.Conv[uint32](tok.Size)
		if err != nil {
			return nil, fmt.Errorf("token %d: size: %w", i, err)
		}
		parent, err := safecast.Conv[int32](tok.Parent)
		if err != nil {
			return nil, fmt.Errorf("token %d: parent: %w", i, err)
		}
		rec.Tokens[i] = tokenRecord{
			Kind:   tok.Kind.String(),
			Start:  start,
			Size:   size,
			Parent: parent,
			Key:    tok.IsKey,
		}
	}
	return rec, nil
}

// writeMsgpack writes the tokens of r to w as a MessagePack fileRecord.
func writeMsgpack(w io.Writer, r result) error {
	rec, err := newFileRecord(r)
	if err != nil {
		return err
	}
	return msgpack.NewEncoder(w).Encode(rec)
}
