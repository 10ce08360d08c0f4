// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"errors"
	"fmt"
)

// Code classifies the conditions reported by a Tokenizer.  A Code is itself an
// error, so the constants below can be compared with errors.Is.
type Code byte

// Constants defining the valid Code values.
const (
	ErrNeedsCapacity      Code = iota + 1 // the token pool is full
	ErrUnexpectedEOF                      // a token was cut off by the end of input
	ErrUnterminatedString                 // no closing quotation mark
	ErrInvalidEscape                      // malformed escape sequence in a string
	ErrUnexpectedChar                     // byte not permitted at this position
	ErrInvalidStructure                   // value where a key is required, or extra root
	ErrUnclosedContainer                  // object or array still open at end of input
	ErrTrailingComma                      // comma before a closing bracket
	ErrMalformedLineBreak                 // carriage return without line feed
)

var codeStr = [...]string{
	"unknown error",
	ErrNeedsCapacity:      "token pool exhausted",
	ErrUnexpectedEOF:      "unexpected end of input",
	ErrUnterminatedString: "unterminated string",
	ErrInvalidEscape:      "invalid escape",
	ErrUnexpectedChar:     "unexpected character",
	ErrInvalidStructure:   "invalid structure",
	ErrUnclosedContainer:  "unclosed container",
	ErrTrailingComma:      "trailing comma",
	ErrMalformedLineBreak: "malformed line break",
}

// Error satisfies the error interface.
func (c Code) Error() string {
	v := int(c)
	if v >= len(codeStr) {
		return codeStr[0]
	}
	return codeStr[v]
}

// SyntaxError is the concrete type of errors reported for malformed input.
// It wraps the Code describing the problem.
type SyntaxError struct {
	Code     Code
	Offset   int     // byte offset of the problem, 0-based
	Location LineCol // line and column of Offset
	Message  string
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s (offset %d): %s", s.Location, s.Offset, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.Code }

// IsIncomplete reports whether err indicates that the input ended before the
// text it contains was complete. After such an error, the Tokenizer may be
// resumed with the same input extended by more data.
func IsIncomplete(err error) bool {
	return errors.Is(err, ErrUnexpectedEOF) ||
		errors.Is(err, ErrUnterminatedString) ||
		errors.Is(err, ErrUnclosedContainer)
}
