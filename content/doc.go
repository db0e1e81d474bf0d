// Package content decodes the object graph stored in an XNB payload.
//
// A payload starts with a type reader table: the names of the .NET
// readers that wrote each object. Every object is preceded by a 1-based
// index into that table (0 is null). Decoding an object means resolving
// the index to a reader name, reducing the name to its bare identity and
// generic arguments, and running the decoder registered for it.
//
// # Typed decoding
//
// The caller states the type it expects with a Decoder. A reference to a
// different reader is a reader_mismatch error, never a silent cast:
//
//	font, err := content.ReadObject(s, content.SpriteFontType)
//	names, err := content.ReadObject(s, content.ArrayOf(content.StringType))
//	table, err := content.ReadObject(s, content.DictionaryOf(content.Int32Type, content.StringType))
//
// Generic containers learn their element type names from the reader name
// at run time. Elements of System.Int32, System.Char, Vector3 and Rectangle
// are stored inline; all other elements carry their own reference index.
//
// # Dynamic decoding
//
// ReadAny decodes whatever the stream holds using a Registry. Arrays
// become []any and dictionaries map[any]any.
//
// # Sessions
//
// A Session binds the byte stream, the reader table and the registry for
// one container. It is created by the envelope decoder in the root package.
package content
