// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jtok"
	"github.com/creachadair/mds/mtest"
)

func TestTokenAccessors(t *testing.T) {
	input := []byte(`{"key": [-12.5, "v\"w"]}`)
	toks := mustTokenize(t, string(input), 0)
	if len(toks) != 5 {
		t.Fatalf("Got %d tokens, want 5", len(toks))
	}
	obj, key, arr, num, str := toks[0], toks[1], toks[2], toks[3], toks[4]

	if got := obj.Children(); got != 1 {
		t.Errorf("Object children: got %d, want 1", got)
	}
	if got := arr.Children(); got != 2 {
		t.Errorf("Array children: got %d, want 2", got)
	}
	if got := string(key.Text(input)); got != "key" {
		t.Errorf("Key text: got %q, want %q", got, "key")
	}
	if got := string(num.Text(input)); got != "-12.5" || num.Len() != 5 {
		t.Errorf("Number text: got %q (len %d), want %q", got, num.Len(), "-12.5")
	}
	if got := string(str.Text(input)); got != `v\"w` {
		t.Errorf("String text: got %q, want %q", got, `v\"w`)
	}
	if got := obj.Text(input); got != nil {
		t.Errorf("Object text: got %q, want nil", got)
	}
	if sp := arr.Span(); sp != (jtok.Span{Pos: 8, End: 9}) || sp.String() != "8-9" {
		t.Errorf("Array span: got %v, want 8-9", sp)
	}
	if sp := key.Span(); sp.Len() != 3 {
		t.Errorf("Key span: got %v, want length 3", sp)
	}

	mtest.MustPanic(t, func() { obj.Len() })
	mtest.MustPanic(t, func() { arr.Len() })
	mtest.MustPanic(t, func() { key.Children() })
	mtest.MustPanic(t, func() { num.Children() })
	mtest.MustPanic(t, func() { jtok.Token{}.Len() })
}

func TestStrings(t *testing.T) {
	tests := []struct {
		input stringer
		want  string
	}{
		{jtok.Object, "object"},
		{jtok.Primitive, "primitive"},
		{jtok.Kind(99), "undefined"},
		{jtok.Token{Kind: jtok.Array, Start: 3, Size: 2}, "array@3[2]"},
		{jtok.Token{Kind: jtok.String, Start: 5, Size: 4}, "string@5+4"},
		{jtok.Token{}, "undefined"},
		{jtok.LineCol{Line: 3, Column: 7}, "3:7"},
	}
	for _, test := range tests {
		if got := test.input.String(); got != test.want {
			t.Errorf("String: got %q, want %q", got, test.want)
		}
	}
}

type stringer interface{ String() string }

func TestCodes(t *testing.T) {
	tests := []struct {
		code jtok.Code
		want string
	}{
		{jtok.ErrNeedsCapacity, "token pool exhausted"},
		{jtok.ErrTrailingComma, "trailing comma"},
		{jtok.ErrMalformedLineBreak, "malformed line break"},
		{jtok.Code(0), "unknown error"},
		{jtok.Code(200), "unknown error"},
	}
	for _, test := range tests {
		if got := test.code.Error(); got != test.want {
			t.Errorf("Error: got %q, want %q", got, test.want)
		}
	}
}

func TestSyntaxError(t *testing.T) {
	_, err := jtok.Tokenize([]byte("[1,\n  2,,]"), 0)
	var serr *jtok.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("Tokenize: got %v, want *SyntaxError", err)
	}
	if serr.Code != jtok.ErrUnexpectedChar {
		t.Errorf("Code: got %v, want %v", serr.Code, jtok.ErrUnexpectedChar)
	}
	const want = `at 2:5 (offset 8): doubled ','`
	if got := err.Error(); got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}
	if jtok.IsIncomplete(err) {
		t.Error("IsIncomplete reported true for a terminal error")
	}
	if jtok.IsIncomplete(jtok.ErrNeedsCapacity) {
		t.Error("IsIncomplete reported true for ErrNeedsCapacity")
	}
}

func TestTokenizerState(t *testing.T) {
	const opts = jtok.StrictRoot | jtok.TrackParents
	tz := jtok.New(opts)
	if tz.Options() != opts {
		t.Errorf("Options: got %v, want %v", tz.Options(), opts)
	}
	if tz.Pos() != 0 || tz.Line() != 1 || tz.Col() != 1 || tz.Next() != 0 || tz.Pending() {
		t.Errorf("New: got pos=%d at %v next=%d pending=%v, want a fresh state",
			tz.Pos(), tz.Location(), tz.Next(), tz.Pending())
	}

	pool := make([]jtok.Token, 2)
	if err := tz.ScanString("{\n}", pool); err != nil {
		t.Fatalf("Scan: unexpected error: %v", err)
	}
	if tz.Pos() != 3 || tz.Line() != 2 || tz.Col() != 2 || tz.Next() != 1 {
		t.Errorf("Scan: got pos=%d at %v next=%d, want pos=3 at 2:2 next=1", tz.Pos(), tz.Location(), tz.Next())
	}

	mtest.MustPanic(t, func() { tz.ScanString("{\n}", nil) })
}
