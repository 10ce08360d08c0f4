// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"errors"
	"io"
)

const (
	minPoolSize      = 16
	defaultChunkSize = 4096
)

// Tokenize tokenizes the complete JSON text in input with the given options,
// growing the token pool as needed. In case of error, the tokens completed
// before the error are returned along with it.
func Tokenize(input []byte, opts Options) ([]Token, error) {
	t := New(opts)
	pool := make([]Token, poolSizeFor(len(input)))
	for {
		err := t.Scan(input, pool)
		if errors.Is(err, ErrNeedsCapacity) {
			pool = growPool(pool)
			continue
		}
		return pool[:t.Next()], err
	}
}

// poolSizeFor guesses an initial pool size for an input of n bytes.
func poolSizeFor(n int) int { return max(minPoolSize, n/8) }

// growPool returns a pool with twice the capacity of pool, with the contents
// of pool copied to its prefix.
func growPool(pool []Token) []Token {
	return append(pool, make([]Token, max(len(pool), minPoolSize))...)
}

// Stream tokenizes JSON text read incrementally from an io.Reader. Each chunk
// of input is handed to a single Tokenizer as it arrives, so tokens are not
// rescanned when the input is delivered in pieces.
type Stream struct {
	r     io.Reader
	t     *Tokenizer
	chunk int
	buf   []byte
	pool  []Token
}

// NewStream constructs a new Stream that consumes input from r.
func NewStream(r io.Reader, opts Options) *Stream {
	return &Stream{r: r, t: New(opts), chunk: defaultChunkSize}
}

// SetChunkSize sets the number of bytes s requests from its reader in each
// read. Values less than 1 are treated as 1.
func (s *Stream) SetChunkSize(n int) { s.chunk = max(n, 1) }

// Tokenizer returns the Tokenizer used by s.
func (s *Stream) Tokenizer() *Tokenizer { return s.t }

// Tokens reads the input of s to completion and returns its tokens, along
// with the complete input text the token offsets refer to.  In case of error,
// the tokens and input consumed so far are returned along with the error.
func (s *Stream) Tokens() ([]Token, []byte, error) {
	if s.pool == nil {
		s.pool = make([]Token, minPoolSize)
	}
	for {
		if len(s.buf) == cap(s.buf) {
			s.buf = append(s.buf, make([]byte, s.chunk)...)[:len(s.buf)]
		}
		n, rerr := s.r.Read(s.buf[len(s.buf):min(cap(s.buf), len(s.buf)+s.chunk)])
		s.buf = s.buf[:len(s.buf)+n]

		if rerr != nil && rerr != io.EOF {
			return s.tokens(), s.buf, rerr
		} else if n == 0 && rerr == nil {
			continue
		}

		err := s.scan()
		if rerr == io.EOF {
			return s.tokens(), s.buf, err
		} else if err != nil && !IsIncomplete(err) {
			return s.tokens(), s.buf, err
		}
	}
}

// scan advances the tokenizer over the data buffered so far, growing the pool
// as needed.
func (s *Stream) scan() error {
	for {
		err := s.t.Scan(s.buf, s.pool)
		if !errors.Is(err, ErrNeedsCapacity) {
			return err
		}
		s.pool = growPool(s.pool)
	}
}

func (s *Stream) tokens() []Token { return s.pool[:s.t.Next()] }
