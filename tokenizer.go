// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import "go4.org/mem"

// Options is a set of flags that adjust the behavior of a Tokenizer.
// The zero value selects the default behavior.
type Options uint

const (
	// StrictRoot rejects a document whose top-level value is not an object.
	StrictRoot Options = 1 << iota

	// NoTrailingCommas reports ErrTrailingComma for a comma that immediately
	// precedes a closing bracket. Without this option (and without
	// AllowTrailingCommas) the same input is rejected as ErrUnexpectedChar.
	// This option takes precedence over AllowTrailingCommas.
	NoTrailingCommas

	// AllowTrailingCommas accepts a single comma before a closing bracket.
	AllowTrailingCommas

	// TrackParents records the index of the enclosing token in each Token.
	// Without it, closing a container searches backward through the pool for
	// the enclosing container, which costs time proportional to the number of
	// tokens rather than constant time.
	TrackParents

	// MultiRoot permits more than one value at the top level of the input, for
	// example a stream of whitespace-separated documents.
	MultiRoot
)

// A Tokenizer holds the state of a scan over a single JSON text.  The zero
// value is not ready for use; construct a Tokenizer with New.
//
// A Tokenizer must not be used by multiple goroutines concurrently.
type Tokenizer struct {
	opts Options

	pos       int // offset of the next input byte
	line, col int // location of pos, 1-based
	next      int // index of the next free slot in the pool
	super     int // index of the innermost open container or key, or -1
	last      byte
	pending   Token // completed token awaiting a free slot
	err       error // latched terminal error
}

// New constructs a Tokenizer with the given options.
func New(opts Options) *Tokenizer {
	t := &Tokenizer{opts: opts}
	t.Reset()
	return t
}

// Reset discards the state of t so that it may be used to scan a new input.
// The options of t are not changed.
func (t *Tokenizer) Reset() {
	*t = Tokenizer{
		opts:    t.opts,
		line:    1,
		col:     1,
		super:   -1,
		pending: Token{Parent: -1},
	}
}

// Options returns the options t was constructed with.
func (t *Tokenizer) Options() Options { return t.opts }

// Pos returns the offset of the next byte of input to be scanned.
func (t *Tokenizer) Pos() int { return t.pos }

// Line returns the 1-based line number of Pos.
func (t *Tokenizer) Line() int { return t.line }

// Col returns the 1-based column of Pos within its line.
func (t *Tokenizer) Col() int { return t.col }

// Location returns the line and column of Pos.
func (t *Tokenizer) Location() LineCol { return LineCol{Line: t.line, Column: t.col} }

// Next returns the number of tokens written to the pool so far.
// After a successful scan the tokens are pool[:t.Next()].
func (t *Tokenizer) Next() int { return t.next }

// Pending reports whether t holds a completed token that has not yet been
// written to the pool because the pool was full.
func (t *Tokenizer) Pending() bool { return t.pending.Kind != Undefined }

// Scan tokenizes input from the current position of t, writing tokens into
// pool starting at index t.Next(). The capacity of the pool is len(pool).
//
// Scan returns nil when all of input has been consumed and every object and
// array is closed. It returns ErrNeedsCapacity if the pool filled up; in that
// case the caller may grow the pool, keeping pool[:t.Next()] intact, and call
// Scan again with the same input. If IsIncomplete reports true for the error,
// the caller may call Scan again once more input has been appended to input.
// Any other error is a *SyntaxError and is terminal: subsequent calls report
// the same error.
//
// It is a programming error to call Scan with a pool shorter than t.Next().
func (t *Tokenizer) Scan(input []byte, pool []Token) error { return t.scan(mem.B(input), pool) }

// ScanString behaves as Scan, but reads its input from a string.
func (t *Tokenizer) ScanString(input string, pool []Token) error {
	return t.scan(mem.S(input), pool)
}
