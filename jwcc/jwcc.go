// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package jwcc tokenizes JSON With Commas and Comments (JWCC) as defined by
// https://nigeltao.github.io/blog/2021/json-with-commas-comments.html
//
// Comments and trailing commas are blanked out before tokenizing, so the
// offsets of the resulting tokens refer to the original input.
package jwcc

import (
	"bytes"

	"github.com/creachadair/jtok"
	"github.com/tailscale/hujson"
)

// Standardize returns a copy of input in which comments and trailing commas
// have been replaced by spaces. The offsets and line breaks of input are
// preserved. The input is not modified.
func Standardize(input []byte) ([]byte, error) {
	return hujson.Standardize(bytes.Clone(input))
}

// Tokenize tokenizes the JWCC text in input. Token offsets refer to input, so
// Token.Text may be used with the original text.
//
// If input is not valid JWCC, Tokenize reports the error found by tokenizing
// input directly, when there is one, since that error carries a location and
// a jtok.Code.
func Tokenize(input []byte, opts jtok.Options) ([]jtok.Token, error) {
	std, err := Standardize(input)
	if err != nil {
		if toks, terr := jtok.Tokenize(input, opts); terr != nil {
			return toks, terr
		}
		return nil, err
	}

	// Trailing commas are already gone.
	return jtok.Tokenize(std, opts&^jtok.NoTrailingCommas)
}
