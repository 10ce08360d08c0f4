// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import (
	"errors"
	"fmt"

	"go4.org/mem"
)

func (t *Tokenizer) scan(in mem.RO, pool []Token) error {
	if t.err != nil {
		return t.err
	} else if len(pool) < t.next {
		panic(fmt.Sprintf("jtok: pool has %d slots but %d tokens are committed", len(pool), t.next))
	}

	// A token completed by the previous call must be committed before the
	// scan can proceed.
	if t.Pending() {
		tok := t.alloc(pool)
		if tok == nil {
			return ErrNeedsCapacity
		}
		*tok = t.pending
		t.pending = Token{Parent: -1}
	}

	for t.pos < in.Len() {
		c := in.At(t.pos)

		var err error
		switch c {
		case '{', '[':
			err = t.openContainer(c, pool)
		case '}', ']':
			err = t.closeContainer(c, pool)
		case '"':
			err = t.scanString(in, pool)
		case ':':
			err = t.colon(pool)
		case ',':
			err = t.comma(pool)
		case ' ', '\t', '\v', '\f', '\r', '\n':
			if err := t.skipSpace(in); err != nil {
				return t.setErr(err)
			}
			continue
		case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 't', 'f', 'n':
			err = t.scanPrimitive(in, pool)
		default:
			err = t.failf(ErrUnexpectedChar, "unexpected %q", c)
		}

		// A token stashed for lack of space has been consumed from the input
		// even though the scan must stop here.
		if err == nil || t.Pending() {
			t.last = c
		}
		if err != nil {
			return t.setErr(err)
		}
	}

	if i := t.innermost(pool); i >= 0 {
		return t.failf(ErrUnclosedContainer, "unclosed %v", pool[i].Kind)
	}
	return nil
}

// setErr latches err if it is terminal, and returns err.
func (t *Tokenizer) setErr(err error) error {
	if !errors.Is(err, ErrNeedsCapacity) && !IsIncomplete(err) {
		t.err = err
	}
	return err
}

func (t *Tokenizer) failf(code Code, msg string, args ...any) error {
	return t.failAt(t.pos, code, msg, args...)
}

// failAt reports an error at offset off, which must be on the current line at
// or after t.pos.
func (t *Tokenizer) failAt(off int, code Code, msg string, args ...any) error {
	return &SyntaxError{
		Code:     code,
		Offset:   off,
		Location: LineCol{Line: t.line, Column: t.col + off - t.pos},
		Message:  fmt.Sprintf(msg, args...),
	}
}

func (t *Tokenizer) advance(n int) { t.pos += n; t.col += n }

func (t *Tokenizer) newline(n int) { t.pos += n; t.line++; t.col = 1 }

// alloc returns the next free slot of pool, initialized, or nil if the pool
// is full.
func (t *Tokenizer) alloc(pool []Token) *Token {
	if t.next >= len(pool) {
		return nil
	}
	tok := &pool[t.next]
	t.next++
	*tok = Token{Parent: -1}
	return tok
}

// enclosing returns the index of the token directly enclosing pool[i], or -1
// if pool[i] is at the root. It must only be called for containers and keys.
func (t *Tokenizer) enclosing(pool []Token, i int) int {
	if t.opts&TrackParents != 0 {
		return pool[i].Parent
	}

	// A token immediately preceded by a key is the value of that key.
	if i > 0 && pool[i-1].IsKey {
		return i - 1
	}

	// Otherwise it belongs to the nearest container still open. Any
	// containers between it and pool[i] are already closed.
	for j := i - 1; j >= 0; j-- {
		if pool[j].Open {
			return j
		}
	}
	return -1
}

// innermost returns the index of the innermost open container, or -1.
func (t *Tokenizer) innermost(pool []Token) int {
	i := t.super
	if i >= 0 && pool[i].Kind == String {
		i = t.enclosing(pool, i)
	}
	return i
}

// lastIsBareKey reports whether the most recently committed token is a key
// that has not yet received a value.
func (t *Tokenizer) lastIsBareKey(pool []Token) bool {
	if t.next == 0 {
		return false
	}
	last := pool[t.next-1]
	return last.IsKey && !last.HasValue
}

// checkValue reports an error if a token of the given kind may not begin at
// the current position.
func (t *Tokenizer) checkValue(pool []Token, kind Kind) error {
	if t.super < 0 {
		if t.next > 0 && t.opts&MultiRoot == 0 {
			return t.failf(ErrInvalidStructure, "unexpected %v after end of document", kind)
		} else if t.opts&StrictRoot != 0 && kind != Object {
			return t.failf(ErrUnexpectedChar, "document root must be an object, not %v", kind)
		}
		return nil
	}

	switch p := pool[t.super]; p.Kind {
	case Object:
		if kind != String {
			return t.failf(ErrInvalidStructure, "object key must be a string, not %v", kind)
		} else if t.last != '{' && t.last != ',' {
			return t.failf(ErrUnexpectedChar, "missing comma before object key")
		}
	case Array:
		if t.last != '[' && t.last != ',' {
			return t.failf(ErrUnexpectedChar, "missing comma before array element")
		}
	case String:
		if p.HasValue {
			return t.failf(ErrUnexpectedChar, "missing comma after object member")
		}
	}
	return nil
}

// adopt records the new token tok as a child of the current container or key.
func (t *Tokenizer) adopt(pool []Token, tok *Token) {
	if t.opts&TrackParents != 0 {
		tok.Parent = t.super
	}
	if t.super < 0 {
		return
	}
	switch p := &pool[t.super]; p.Kind {
	case Object:
		tok.IsKey = true
		p.Size++
	case Array:
		p.Size++
	case String:
		p.HasValue = true
	}
}

func (t *Tokenizer) openContainer(c byte, pool []Token) error {
	kind := Array
	if c == '{' {
		kind = Object
	}
	if err := t.checkValue(pool, kind); err != nil {
		return err
	}
	tok := t.alloc(pool)
	if tok == nil {
		return ErrNeedsCapacity
	}
	t.adopt(pool, tok)
	tok.Kind = kind
	tok.Start = t.pos
	tok.Open = true
	t.super = t.next - 1
	t.advance(1)
	return nil
}

func (t *Tokenizer) closeContainer(c byte, pool []Token) error {
	kind := Array
	if c == '}' {
		kind = Object
	}
	if t.lastIsBareKey(pool) {
		return t.failf(ErrUnexpectedChar, "missing value for object key")
	}
	if t.last == ',' {
		if t.opts&NoTrailingCommas != 0 {
			return t.failf(ErrTrailingComma, "trailing comma before %q", c)
		} else if t.opts&AllowTrailingCommas == 0 {
			return t.failf(ErrUnexpectedChar, "unexpected %q after comma", c)
		}
	}

	i := t.innermost(pool)
	if i < 0 {
		return t.failf(ErrUnexpectedChar, "unmatched %q", c)
	} else if pool[i].Kind != kind {
		return t.failf(ErrUnexpectedChar, "unexpected %q in %v", c, pool[i].Kind)
	}
	pool[i].Open = false
	t.super = t.enclosing(pool, i)
	t.advance(1)
	return nil
}

func (t *Tokenizer) colon(pool []Token) error {
	if t.last != '"' || t.super < 0 || pool[t.super].Kind != Object || !t.lastIsBareKey(pool) {
		return t.failf(ErrUnexpectedChar, "unexpected %q", ':')
	}
	t.super = t.next - 1
	t.advance(1)
	return nil
}

func (t *Tokenizer) comma(pool []Token) error {
	switch {
	case t.super < 0:
		return t.failf(ErrUnexpectedChar, "unexpected %q outside object or array", ',')
	case t.last == ',':
		return t.failf(ErrUnexpectedChar, "doubled %q", ',')
	case t.last == '{' || t.last == '[' || t.last == ':':
		return t.failf(ErrUnexpectedChar, "unexpected %q after %q", ',', t.last)
	case t.lastIsBareKey(pool):
		return t.failf(ErrUnexpectedChar, "missing value for object key")
	}

	// After a member value, return to the object holding the key.
	if pool[t.super].Kind == String {
		t.super = t.enclosing(pool, t.super)
	}
	t.advance(1)
	return nil
}

func (t *Tokenizer) skipSpace(in mem.RO) error {
	for t.pos < in.Len() {
		switch in.At(t.pos) {
		case ' ', '\t', '\v', '\f':
			t.advance(1)
		case '\n':
			t.newline(1)
		case '\r':
			if t.pos+1 >= in.Len() {
				return t.failf(ErrUnexpectedEOF, "incomplete line break")
			} else if in.At(t.pos+1) != '\n' {
				return t.failf(ErrMalformedLineBreak, "carriage return not followed by line feed")
			}
			t.newline(2)
		default:
			return nil
		}
	}
	return nil
}

// commit records a completed string or primitive whose content spans
// [start, end) and advances the input to next. If the pool is full, the token
// is held pending and commit reports ErrNeedsCapacity.
func (t *Tokenizer) commit(pool []Token, kind Kind, start, end, next int) error {
	tok := Token{Kind: kind, Start: start, Size: end - start, Parent: -1}
	t.adopt(pool, &tok)
	t.advance(next - t.pos)

	slot := t.alloc(pool)
	if slot == nil {
		t.pending = tok
		return ErrNeedsCapacity
	}
	*slot = tok
	return nil
}

func (t *Tokenizer) scanString(in mem.RO, pool []Token) error {
	if err := t.checkValue(pool, String); err != nil {
		return err
	}
	start := t.pos
	for i := start + 1; i < in.Len(); i++ {
		c := in.At(i)
		if c == '"' {
			return t.commit(pool, String, start+1, i, i+1)
		} else if c < ' ' {
			return t.failAt(i, ErrUnexpectedChar, "unescaped control %q in string", c)
		} else if c != '\\' {
			continue
		}

		// We are awaiting the completion of a \-escape.
		i++
		if i == in.Len() {
			break
		}
		switch e := in.At(i); e {
		case '"', '/', '\\', 'b', 'f', 'r', 'n', 't':
		case 'u':
			for j := 1; j <= 4; j++ {
				if i+j == in.Len() {
					return t.failf(ErrUnterminatedString, "unterminated string")
				} else if h := in.At(i + j); !isHexDigit(h) {
					return t.failAt(i+j, ErrInvalidEscape, "invalid hex digit %q in Unicode escape", h)
				}
			}
			i += 4
		default:
			return t.failAt(i, ErrInvalidEscape, "invalid %q after escape", e)
		}
	}
	return t.failf(ErrUnterminatedString, "unterminated string")
}

func (t *Tokenizer) scanPrimitive(in mem.RO, pool []Token) error {
	if err := t.checkValue(pool, Primitive); err != nil {
		return err
	}
	start := t.pos
	for i := start; i < in.Len(); i++ {
		switch in.At(i) {
		case ',', ']', '}', ' ', '\t', '\v', '\f', '\r', '\n':
			return t.commit(pool, Primitive, start, i, i)
		}
	}

	// Without a delimiter the primitive may continue in later input. Inside
	// an object or array, that the container is unclosed is the more useful
	// diagnosis.
	if i := t.innermost(pool); i >= 0 {
		return t.failf(ErrUnclosedContainer, "unclosed %v", pool[i].Kind)
	}
	return t.failf(ErrUnexpectedEOF, "incomplete primitive")
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
