package tide

import (
	"go.uber.org/zap"

	"github.com/wippyai/xnb/content"
	"github.com/wippyai/xnb/errors"
	"github.com/wippyai/xnb/internal/binary"
)

// TideReader is the content reader identity for xTile maps.
const TideReader = "xTile.Pipeline.TideReader"

// Magic opens every tBIN10 blob.
const Magic = "tBIN10"

// Tile stream tags.
const (
	tagTileSheet byte = 'T'
	tagStatic    byte = 'S'
	tagNull      byte = 'N'
	tagAnimated  byte = 'A'
)

// MapType returns a content decoder for TideReader objects. The object is
// a u32 length followed by that many bytes of tBIN10 data.
func MapType[P any](props PropertyFunc[P]) content.Decoder[*Map[P]] {
	return content.NewDecoder(TideReader, func(s *content.Session, _ []string) (*Map[P], error) {
		n, err := s.ReadUint32()
		if err != nil {
			return nil, err
		}
		base := s.Position()
		blob, err := s.ReadBytes(int(n))
		if err != nil {
			return nil, err
		}
		return decode(blob, base, props)
	})
}

// Decode decodes a tBIN10 blob, starting at the magic. A nil props leaves
// every property field at its zero value.
func Decode[P any](blob []byte, props PropertyFunc[P]) (*Map[P], error) {
	return decode(blob, 0, props)
}

func decode[P any](blob []byte, base int, props PropertyFunc[P]) (*Map[P], error) {
	cur := getCursor(blob)
	defer putCursor(cur)

	r := binary.NewReaderAt(cur, base)
	r.SetPhase(errors.PhaseTide)
	d := &decoder[P]{r: r, props: props}
	return d.readMap()
}

type decoder[P any] struct {
	r     *binary.Reader
	props PropertyFunc[P]
}

func (d *decoder[P]) readMap() (*Map[P], error) {
	offset := d.r.Position()
	magic, err := d.r.ReadBytes(len(Magic))
	if err != nil {
		return nil, err
	}
	if string(magic) != Magic {
		return nil, errors.New(errors.PhaseTide, errors.KindMalformed).
			Offset(offset).
			Value(magic).
			Detail("bad magic %q", magic).
			Build()
	}

	m := &Map[P]{}
	if m.ID, err = d.readString(); err != nil {
		return nil, err
	}
	if m.Description, err = d.readString(); err != nil {
		return nil, err
	}
	if m.Properties, err = d.readProperties(); err != nil {
		return nil, err
	}

	count, err := d.r.ReadUint32()
	if err != nil {
		return nil, err
	}
	for i := uint32(0); i < count; i++ {
		sheet, err := d.readTileSheet()
		if err != nil {
			return nil, err
		}
		m.TileSheets = append(m.TileSheets, sheet)
	}

	if count, err = d.r.ReadUint32(); err != nil {
		return nil, err
	}
	for i := uint32(0); i < count; i++ {
		layer, err := d.readLayer()
		if err != nil {
			return nil, err
		}
		m.Layers = append(m.Layers, layer)
	}

	Logger().Debug("decoded map",
		zap.String("id", m.ID),
		zap.Int("tilesheets", len(m.TileSheets)),
		zap.Int("layers", len(m.Layers)))
	return m, nil
}

func (d *decoder[P]) readString() (string, error) {
	n, err := d.r.ReadUint32()
	if err != nil {
		return "", err
	}
	return d.r.ReadStringN(int(n))
}

func (d *decoder[P]) readSize() (Size, error) {
	w, err := d.r.ReadUint32()
	if err != nil {
		return Size{}, err
	}
	h, err := d.r.ReadUint32()
	if err != nil {
		return Size{}, err
	}
	return Size{Width: w, Height: h}, nil
}

func (d *decoder[P]) readProperties() (P, error) {
	var zero P
	count, err := d.r.ReadUint32()
	if err != nil {
		return zero, err
	}
	var list []Property
	for i := uint32(0); i < count; i++ {
		name, err := d.readString()
		if err != nil {
			return zero, err
		}
		offset := d.r.Position()
		kind, err := d.r.ReadByte()
		if err != nil {
			return zero, err
		}
		var value PropertyValue
		switch kind {
		case propBool:
			b, err := d.r.ReadByte()
			if err != nil {
				return zero, err
			}
			value = Bool(b != 0)
		case propInt:
			v, err := d.r.ReadInt32()
			if err != nil {
				return zero, err
			}
			value = Int(v)
		case propFloat:
			v, err := d.r.ReadFloat32()
			if err != nil {
				return zero, err
			}
			value = Float(v)
		case propString:
			v, err := d.readString()
			if err != nil {
				return zero, err
			}
			value = String(v)
		default:
			return zero, errors.New(errors.PhaseTide, errors.KindMalformed).
				Offset(offset).
				Path(name).
				Value(kind).
				Detail("unknown property type %d", kind).
				Build()
		}
		list = append(list, Property{Name: name, Value: value})
	}
	if d.props == nil {
		return zero, nil
	}
	return d.props(list), nil
}

func (d *decoder[P]) readTileSheet() (TileSheet[P], error) {
	var t TileSheet[P]
	var err error
	if t.ID, err = d.readString(); err != nil {
		return t, err
	}
	if t.Description, err = d.readString(); err != nil {
		return t, err
	}
	if t.ImageSource, err = d.readString(); err != nil {
		return t, err
	}
	for _, s := range []*Size{&t.SheetSize, &t.TileSize, &t.Margin, &t.Spacing} {
		if *s, err = d.readSize(); err != nil {
			return t, err
		}
	}
	if t.Properties, err = d.readProperties(); err != nil {
		return t, err
	}
	return t, nil
}

func (d *decoder[P]) readLayer() (Layer[P], error) {
	var l Layer[P]
	var err error
	if l.ID, err = d.readString(); err != nil {
		return l, err
	}
	visible, err := d.r.ReadByte()
	if err != nil {
		return l, err
	}
	l.Visible = visible != 0
	if l.Description, err = d.readString(); err != nil {
		return l, err
	}
	if l.Size, err = d.readSize(); err != nil {
		return l, err
	}
	if l.TileSize, err = d.readSize(); err != nil {
		return l, err
	}
	if l.Properties, err = d.readProperties(); err != nil {
		return l, err
	}
	if l.Tiles, err = d.readTiles(l.ID, l.Size); err != nil {
		return l, err
	}
	Logger().Debug("decoded layer",
		zap.String("id", l.ID),
		zap.Uint32("width", l.Size.Width),
		zap.Uint32("height", l.Size.Height),
		zap.Int("tiles", len(l.Tiles)))
	return l, nil
}

// tileScan carries the tilesheet selected by the last T tag.
type tileScan struct {
	sheet    string
	hasSheet bool
}

// readTiles scans the tile stream row by row. The column only moves on
// S, A and N tags; a run that passes the row end finishes the row.
func (d *decoder[P]) readTiles(layer string, size Size) ([]Tile[P], error) {
	var tiles []Tile[P]
	var scan tileScan
	for y := uint32(0); y < size.Height; y++ {
		for x := uint32(0); x < size.Width; {
			offset := d.r.Position()
			tag, err := d.r.ReadByte()
			if err != nil {
				return nil, err
			}
			pos := Point{X: x, Y: y}
			switch tag {
			case tagTileSheet:
				if err := d.readTileSheetTag(&scan); err != nil {
					return nil, err
				}
			case tagStatic:
				t, err := d.readStatic(&scan, pos, offset)
				if err != nil {
					return nil, err
				}
				tiles = append(tiles, t)
				x++
			case tagNull:
				run, err := d.r.ReadUint32()
				if err != nil {
					return nil, err
				}
				if run > size.Width-x {
					x = size.Width
				} else {
					x += run
				}
			case tagAnimated:
				t, err := d.readAnimated(layer, &scan, pos)
				if err != nil {
					return nil, err
				}
				tiles = append(tiles, t)
				x++
			default:
				return nil, errors.MalformedTileTag(tag, offset, layer)
			}
		}
	}
	return tiles, nil
}

func (d *decoder[P]) readTileSheetTag(scan *tileScan) error {
	id, err := d.readString()
	if err != nil {
		return err
	}
	scan.sheet = id
	scan.hasSheet = true
	return nil
}

func (d *decoder[P]) readStatic(scan *tileScan, pos Point, offset int) (*StaticTile[P], error) {
	if !scan.hasSheet {
		return nil, errors.Malformed(errors.PhaseTide, offset,
			"static tile at (%d, %d) before any tilesheet", pos.X, pos.Y)
	}
	t := &StaticTile[P]{TileSheet: scan.sheet, Pos: pos}
	var err error
	if t.Index, err = d.r.ReadUint32(); err != nil {
		return nil, err
	}
	if t.BlendMode, err = d.r.ReadByte(); err != nil {
		return nil, err
	}
	if t.Props, err = d.readProperties(); err != nil {
		return nil, err
	}
	return t, nil
}

// readAnimated reads an animated tile. Only S sub-tags count toward the
// frame count; T sub-tags switch the tilesheet for the frames after them.
func (d *decoder[P]) readAnimated(layer string, scan *tileScan, pos Point) (*AnimatedTile[P], error) {
	t := &AnimatedTile[P]{Pos: pos}
	var err error
	if t.Interval, err = d.r.ReadUint32(); err != nil {
		return nil, err
	}
	frames, err := d.r.ReadUint32()
	if err != nil {
		return nil, err
	}
	for n := uint32(0); n < frames; {
		offset := d.r.Position()
		tag, err := d.r.ReadByte()
		if err != nil {
			return nil, err
		}
		switch tag {
		case tagTileSheet:
			if err := d.readTileSheetTag(scan); err != nil {
				return nil, err
			}
		case tagStatic:
			frame, err := d.readStatic(scan, pos, offset)
			if err != nil {
				return nil, err
			}
			t.Frames = append(t.Frames, *frame)
			n++
		default:
			return nil, errors.MalformedTileTag(tag, offset, layer, "animated")
		}
	}
	if t.Props, err = d.readProperties(); err != nil {
		return nil, err
	}
	return t, nil
}
