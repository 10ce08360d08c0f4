// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jtok implements an incremental, allocation-free tokenizer for JSON.
//
// # Tokenizing
//
// A Tokenizer scans a JSON text once, left to right, and records its
// structure as a flat array of Token values written into a pool supplied by
// the caller. No tree is built and the tokenizer does not allocate:
//
//	t := jtok.New(0)
//	pool := make([]jtok.Token, 64)
//	if err := t.Scan(input, pool); err != nil {
//	   log.Fatalf("Scan failed: %v", err)
//	}
//	toks := pool[:t.Next()]
//
// Each token reports its Kind and a Start offset. For Object and Array tokens
// the Size field is the number of immediate children (for an object, its
// keys); for String and Primitive tokens it is the length in bytes of the
// content. String tokens exclude their quotation marks. The value of an
// object member follows its key token in the array.
//
// # Resuming
//
// Scan reports ErrNeedsCapacity when the pool runs out of free slots. This is
// not a syntax error: the caller grows the pool (preserving the tokens
// already written) and calls Scan again with the same Tokenizer and input.
// Scanning resumes exactly where it stopped:
//
//	for {
//	   err := t.Scan(input, pool)
//	   if err != jtok.ErrNeedsCapacity {
//	      break
//	   }
//	   pool = append(pool, make([]jtok.Token, len(pool))...)
//	}
//
// Input may also be delivered incrementally. When the end of the buffer cuts
// a token or a container short, Scan reports an error for which IsIncomplete
// is true, and leaves the Tokenizer positioned so that a later call with the
// same buffer extended by more data carries on without rescanning. The Stream
// type and the Tokenize function implement these protocols for callers who do
// not need to control allocation.
//
// # Errors
//
// Errors other than ErrNeedsCapacity have concrete type *SyntaxError, which
// records the location of the problem and wraps one of the Code values:
//
//	var serr *jtok.SyntaxError
//	if errors.As(err, &serr) && serr.Code == jtok.ErrTrailingComma {
//	   log.Printf("Trailing comma at %v", serr.Location)
//	}
package jtok
