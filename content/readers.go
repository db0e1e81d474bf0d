package content

// Reader identities of the built-in decoders.
const (
	Int32Reader      = "Microsoft.Xna.Framework.Content.Int32Reader"
	CharReader       = "Microsoft.Xna.Framework.Content.CharReader"
	StringReader     = "Microsoft.Xna.Framework.Content.StringReader"
	RectangleReader  = "Microsoft.Xna.Framework.Content.RectangleReader"
	Vector3Reader    = "Microsoft.Xna.Framework.Content.Vector3Reader"
	Texture2DReader  = "Microsoft.Xna.Framework.Content.Texture2DReader"
	SpriteFontReader = "Microsoft.Xna.Framework.Content.SpriteFontReader"
	ArrayReader      = "Microsoft.Xna.Framework.Content.ArrayReader"
	DictionaryReader = "Microsoft.Xna.Framework.Content.DictionaryReader"
	NullableReader   = "Microsoft.Xna.Framework.Content.NullableReader"
)

// inlineReaders maps the element type names that the format stores inline
// inside arrays and dictionaries (no reference index) to their readers.
var inlineReaders = map[string]string{
	"System.Int32":                      Int32Reader,
	"System.Char":                       CharReader,
	"Microsoft.Xna.Framework.Vector3":   Vector3Reader,
	"Microsoft.Xna.Framework.Rectangle": RectangleReader,
}

// inlineReader returns the reader used for members of the given element
// type when the format stores them without a reference index.
func inlineReader(typeName string) (string, bool) {
	r, ok := inlineReaders[typeName]
	return r, ok
}
