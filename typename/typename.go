// Package typename parses the reader names stored in an XNB type reader
// table.
//
// A reader name is a .NET type name, optionally assembly qualified and
// optionally generic:
//
//	Microsoft.Xna.Framework.Content.Texture2DReader, Microsoft.Xna.Framework.Graphics
//	Microsoft.Xna.Framework.Content.ArrayReader`1[[System.Char, mscorlib]]
//
// Parse reduces it to the bare identity used for decoder dispatch and the
// ordered list of generic argument type names.
package typename

import (
	"strings"

	"github.com/wippyai/xnb/errors"
)

// Name is a parsed reader name.
type Name struct {
	Identity string
	Args     []string
}

// Arity returns the number of generic arguments.
func (n Name) Arity() int {
	return len(n.Args)
}

// String renders the name in a compact form for logs.
func (n Name) String() string {
	if len(n.Args) == 0 {
		return n.Identity
	}
	return n.Identity + "<" + strings.Join(n.Args, ", ") + ">"
}

// Bare returns the identity of name: the text before any generic marker
// with the assembly qualification dropped.
func Bare(name string) string {
	head, _, _ := strings.Cut(name, "`")
	head, _, _ = strings.Cut(head, ",")
	return strings.TrimSpace(head)
}

// Parse splits a reader name into its bare identity and generic argument
// names. Each argument keeps its own generic suffix but loses its assembly
// qualification, so nested generics survive intact:
//
//	Foo`2[[Bar,Asm],[Baz`1[[Qux,Asm]],Asm]]  ->  Foo, [Bar, Baz`1[[Qux,Asm]]]
func Parse(name string) (Name, error) {
	n := Name{Identity: Bare(name)}

	_, generic, ok := strings.Cut(name, "`")
	if !ok {
		return n, nil
	}

	open := strings.IndexByte(generic, '[')
	if open < 0 {
		return Name{}, errors.MalformedGenericName(name, "missing generic argument list")
	}
	for _, c := range generic[:open] {
		if c < '0' || c > '9' {
			return Name{}, errors.MalformedGenericName(name, "invalid generic arity")
		}
	}

	closeIdx, err := matching(generic, open)
	if err != nil {
		return Name{}, errors.MalformedGenericName(name, err.Error())
	}
	if strings.ContainsAny(generic[closeIdx+1:], "[]") {
		return Name{}, errors.MalformedGenericName(name, "unbalanced brackets")
	}

	for _, piece := range splitTopLevel(generic[open+1 : closeIdx]) {
		piece = strings.TrimSpace(piece)
		if len(piece) >= 2 && piece[0] == '[' && piece[len(piece)-1] == ']' {
			piece = piece[1 : len(piece)-1]
		}
		arg := strings.TrimSpace(splitTopLevel(piece)[0])
		if arg == "" {
			return Name{}, errors.MalformedGenericName(name, "empty generic argument")
		}
		n.Args = append(n.Args, arg)
	}

	if len(n.Args) == 0 {
		return Name{}, errors.MalformedGenericName(name, "empty generic argument list")
	}
	return n, nil
}

type bracketError string

func (e bracketError) Error() string { return string(e) }

// matching returns the index of the bracket closing the one at open.
func matching(s string, open int) (int, error) {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, bracketError("unbalanced brackets")
}

// splitTopLevel splits s at commas that are not nested inside brackets.
// It always returns at least one element.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
