// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jtok

import "fmt"

// Kind is the type of a lexical token in the JSON grammar.
type Kind byte

// Constants defining the valid Kind values.
const (
	Undefined Kind = iota // unused or pending slot
	Object                // object: { ... }
	Array                 // array: [ ... ]
	String                // quoted string
	Primitive             // number, true, false, null
)

var kindStr = [...]string{
	Undefined: "undefined",
	Object:    "object",
	Array:     "array",
	String:    "string",
	Primitive: "primitive",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Undefined]
	}
	return kindStr[v]
}

// A Token describes one lexical unit of a JSON text.
type Token struct {
	Kind Kind

	// Start is the offset of the first byte of the token. For an object or
	// array this is the opening bracket; for a string it is the byte after the
	// opening quotation mark.
	Start int

	// For an object or array, Size is the number of immediate children, where
	// the children of an object are its keys. For a string or primitive, Size
	// is the length of the content in bytes.
	Size int

	// Parent is the index of the token directly enclosing this one, or -1 for
	// a value at the root. The value of an object member is enclosed by its
	// key. Parent is only populated when the TrackParents option is set;
	// otherwise it is -1.
	Parent int

	Open     bool // container whose closing bracket has not been seen
	IsKey    bool // string in key position of an object
	HasValue bool // key whose value has begun
}

// IsContainer reports whether t is an object or array.
func (t Token) IsContainer() bool { return t.Kind == Object || t.Kind == Array }

// Span returns the span of input covered by the content of t. For a
// container, the span covers only its opening bracket.
func (t Token) Span() Span {
	if t.IsContainer() {
		return Span{Pos: t.Start, End: t.Start + 1}
	}
	return Span{Pos: t.Start, End: t.Start + t.Size}
}

// Text returns the undecoded content of a string or primitive token from the
// input it was scanned from. The result aliases input. For other kinds, Text
// returns nil.
func (t Token) Text(input []byte) []byte {
	if t.Kind != String && t.Kind != Primitive {
		return nil
	}
	sp := t.Span()
	return input[sp.Pos:sp.End:sp.End]
}

// Len returns the content length in bytes of a string or primitive token.
// It panics if t is of any other kind.
func (t Token) Len() int {
	if t.Kind != String && t.Kind != Primitive {
		panic(fmt.Sprintf("jtok: Len of %v token", t.Kind))
	}
	return t.Size
}

// Children returns the number of immediate children of an object or array
// token. It panics if t is not a container.
func (t Token) Children() int {
	if !t.IsContainer() {
		panic(fmt.Sprintf("jtok: Children of %v token", t.Kind))
	}
	return t.Size
}

func (t Token) String() string {
	switch t.Kind {
	case Object, Array:
		return fmt.Sprintf("%v@%d[%d]", t.Kind, t.Start, t.Size)
	case String, Primitive:
		return fmt.Sprintf("%v@%d+%d", t.Kind, t.Start, t.Size)
	}
	return t.Kind.String()
}
