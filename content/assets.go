package content

import (
	"github.com/wippyai/xnb/errors"
)

// Built-in decoders for the primitive and graphics readers.
var (
	Int32Type = NewDecoder(Int32Reader, func(s *Session, _ []string) (int32, error) {
		return s.ReadInt32()
	})

	CharType = NewDecoder(CharReader, func(s *Session, _ []string) (rune, error) {
		return readChar(s)
	})

	StringType = NewDecoder(StringReader, func(s *Session, _ []string) (string, error) {
		return s.ReadString()
	})

	RectangleType = NewDecoder(RectangleReader, func(s *Session, _ []string) (Rectangle, error) {
		return readRectangle(s)
	})

	Vector3Type = NewDecoder(Vector3Reader, func(s *Session, _ []string) (Vector3, error) {
		return readVector3(s)
	})

	Texture2DType = NewDecoder(Texture2DReader, func(s *Session, _ []string) (Texture2D, error) {
		return readTexture2D(s)
	})

	SpriteFontType = NewDecoder(SpriteFontReader, func(s *Session, _ []string) (SpriteFont, error) {
		return readSpriteFont(s)
	})
)

// readChar reads a single byte widened to a character.
func readChar(s *Session) (rune, error) {
	b, err := s.ReadByte()
	if err != nil {
		return 0, err
	}
	return rune(b), nil
}

func readRectangle(s *Session) (Rectangle, error) {
	var r Rectangle
	var err error
	for _, f := range []*int32{&r.X, &r.Y, &r.Width, &r.Height} {
		if *f, err = s.ReadInt32(); err != nil {
			return Rectangle{}, err
		}
	}
	return r, nil
}

func readVector3(s *Session) (Vector3, error) {
	var v Vector3
	var err error
	for _, f := range []*float32{&v.X, &v.Y, &v.Z} {
		if *f, err = s.ReadFloat32(); err != nil {
			return Vector3{}, err
		}
	}
	return v, nil
}

func readTexture2D(s *Session) (Texture2D, error) {
	offset := s.Position()
	code, err := s.ReadUint32()
	if err != nil {
		return Texture2D{}, err
	}
	format := SurfaceFormat(code)
	if !format.Valid() {
		return Texture2D{}, errors.UnrecognizedSurfaceFormat(code, offset)
	}

	tex := Texture2D{Format: format}
	if tex.Width, err = s.ReadUint32(); err != nil {
		return Texture2D{}, err
	}
	if tex.Height, err = s.ReadUint32(); err != nil {
		return Texture2D{}, err
	}
	mipCount, err := s.ReadUint32()
	if err != nil {
		return Texture2D{}, err
	}

	for i := uint32(0); i < mipCount; i++ {
		size, err := s.ReadUint32()
		if err != nil {
			return Texture2D{}, err
		}
		data, err := s.ReadBytes(int(size))
		if err != nil {
			return Texture2D{}, err
		}
		tex.MipLevels = append(tex.MipLevels, data)
	}
	return tex, nil
}

var (
	rectangleArray = ArrayOf(RectangleType)
	charArray      = ArrayOf(CharType)
	vector3Array   = ArrayOf(Vector3Type)
)

// readSpriteFont reads the font fields in their fixed file order.
func readSpriteFont(s *Session) (SpriteFont, error) {
	var f SpriteFont
	var err error

	if f.Texture, err = ReadObject(s, Texture2DType); err != nil {
		return SpriteFont{}, err
	}
	if f.Glyphs, err = ReadObject(s, rectangleArray); err != nil {
		return SpriteFont{}, err
	}
	if f.Cropping, err = ReadObject(s, rectangleArray); err != nil {
		return SpriteFont{}, err
	}
	if f.CharMap, err = ReadObject(s, charArray); err != nil {
		return SpriteFont{}, err
	}
	if f.VerticalSpacing, err = s.ReadInt32(); err != nil {
		return SpriteFont{}, err
	}
	if f.HorizontalSpacing, err = s.ReadFloat32(); err != nil {
		return SpriteFont{}, err
	}
	if f.Kerning, err = ReadObject(s, vector3Array); err != nil {
		return SpriteFont{}, err
	}
	// The default character is always a single byte here, whatever the
	// nullable's generic argument says.
	if f.DefaultChar, err = ReadNullable(s, readChar); err != nil {
		return SpriteFont{}, err
	}
	return f, nil
}
