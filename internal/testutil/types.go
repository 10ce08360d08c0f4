// Package testutil defines support code for unit tests.
package testutil

import (
	"fmt"

	"github.com/creachadair/jtok"
)

// Summary renders each token of toks as a compact string for comparison in
// tests. Objects render as "{n}" and arrays as "[n]" where n is the Size;
// strings render quoted and primitives verbatim, from the text of input.
// Keys are suffixed by ":".
func Summary(input string, toks []jtok.Token) []string {
	var out []string
	for _, tok := range toks {
		out = append(out, Render(input, tok))
	}
	return out
}

// Render renders a single token as described for Summary.
func Render(input string, tok jtok.Token) string {
	switch tok.Kind {
	case jtok.Object:
		return fmt.Sprintf("{%d}", tok.Size)
	case jtok.Array:
		return fmt.Sprintf("[%d]", tok.Size)
	case jtok.String:
		s := `"` + input[tok.Start:tok.Start+tok.Size] + `"`
		if tok.IsKey {
			s += ":"
		}
		return s
	case jtok.Primitive:
		return input[tok.Start : tok.Start+tok.Size]
	}
	return tok.Kind.String()
}

// Parents returns the Parent field of each token of toks.
func Parents(toks []jtok.Token) []int {
	out := make([]int, len(toks))
	for i, tok := range toks {
		out[i] = tok.Parent
	}
	return out
}
