package typename_test

import (
	"reflect"
	"testing"

	"github.com/wippyai/xnb/errors"
	"github.com/wippyai/xnb/typename"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		identity string
		args     []string
	}{
		{
			name:     "plain",
			input:    "Microsoft.Xna.Framework.Content.Texture2DReader",
			identity: "Microsoft.Xna.Framework.Content.Texture2DReader",
		},
		{
			name:     "assembly qualified",
			input:    "Microsoft.Xna.Framework.Content.Texture2DReader, Microsoft.Xna.Framework.Graphics, Version=4.0.0.0, Culture=neutral, PublicKeyToken=842cf8be1de50553",
			identity: "Microsoft.Xna.Framework.Content.Texture2DReader",
		},
		{
			name:     "single argument",
			input:    "Foo`1[[Bar, Asm]]",
			identity: "Foo",
			args:     []string{"Bar"},
		},
		{
			name:     "nested argument",
			input:    "Foo`2[[Bar,Asm],[Baz`1[[Qux,Asm]],Asm]]",
			identity: "Foo",
			args:     []string{"Bar", "Baz`1[[Qux,Asm]]"},
		},
		{
			name:     "xna array reader",
			input:    "Microsoft.Xna.Framework.Content.ArrayReader`1[[System.Char, mscorlib, Version=4.0.0.0, Culture=neutral, PublicKeyToken=b77a5c561934e089]]",
			identity: "Microsoft.Xna.Framework.Content.ArrayReader",
			args:     []string{"System.Char"},
		},
		{
			name:     "dictionary reader",
			input:    "Microsoft.Xna.Framework.Content.DictionaryReader`2[[System.Int32, mscorlib],[System.String, mscorlib]]",
			identity: "Microsoft.Xna.Framework.Content.DictionaryReader",
			args:     []string{"System.Int32", "System.String"},
		},
		{
			name:     "unqualified arguments",
			input:    "Foo`2[System.Int32,System.String]",
			identity: "Foo",
			args:     []string{"System.Int32", "System.String"},
		},
		{
			name:     "array typed argument",
			input:    "Foo`1[[System.Int32[], mscorlib]]",
			identity: "Foo",
			args:     []string{"System.Int32[]"},
		},
		{
			name:     "outer assembly after list",
			input:    "Foo`1[[Bar, Asm]], Outer, Version=1.0",
			identity: "Foo",
			args:     []string{"Bar"},
		},
	}

	for _, tt := range tests {
		tt := tt // per-iteration copy (Go 1.22 loopvar semantics)
		t.Run(tt.name, func(t *testing.T) {
			got, err := typename.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got.Identity != tt.identity {
				t.Errorf("Identity = %q, want %q", got.Identity, tt.identity)
			}
			if !reflect.DeepEqual(got.Args, tt.args) {
				t.Errorf("Args = %q, want %q", got.Args, tt.args)
			}
			if got.Arity() != len(tt.args) {
				t.Errorf("Arity = %d, want %d", got.Arity(), len(tt.args))
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	inputs := []string{
		"Foo`1[[Bar, Asm]",
		"Foo`2[[Bar,Asm],[Baz`1[[Qux,Asm]],Asm]",
		"Foo`1[[Bar]]]",
		"Foo`1",
		"Foo`x[[Bar]]",
		"Foo`1[]",
		"Foo`1[[, Asm]]",
	}

	for _, in := range inputs {
		in := in // per-iteration copy (Go 1.22 loopvar semantics)
		t.Run(in, func(t *testing.T) {
			_, err := typename.Parse(in)
			if !errors.IsKind(err, errors.KindMalformedGenericName) {
				t.Fatalf("err = %v, want %v", err, errors.KindMalformedGenericName)
			}
		})
	}
}

func TestBare(t *testing.T) {
	if got := typename.Bare("A.B`1[[C, D]]"); got != "A.B" {
		t.Errorf("Bare = %q", got)
	}
	if got := typename.Bare(" A.B , Asm"); got != "A.B" {
		t.Errorf("Bare = %q", got)
	}
}

func TestNameString(t *testing.T) {
	n := typename.Name{Identity: "Dict", Args: []string{"K", "V"}}
	if n.String() != "Dict<K, V>" {
		t.Errorf("String = %q", n.String())
	}
	if (typename.Name{Identity: "X"}).String() != "X" {
		t.Error("plain String mismatch")
	}
}
