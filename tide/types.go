package tide

// Size is a width and height pair.
type Size struct {
	Width, Height uint32
}

// Point is a cell position within a layer.
type Point struct {
	X, Y uint32
}

// Map is a decoded tBIN10 map.
type Map[P any] struct {
	ID          string
	Description string
	Properties  P
	TileSheets  []TileSheet[P]
	Layers      []Layer[P]
}

// TileSheet returns the tilesheet with the given id.
func (m *Map[P]) TileSheet(id string) (*TileSheet[P], bool) {
	for i := range m.TileSheets {
		if m.TileSheets[i].ID == id {
			return &m.TileSheets[i], true
		}
	}
	return nil, false
}

// Layer returns the layer with the given id.
func (m *Map[P]) Layer(id string) (*Layer[P], bool) {
	for i := range m.Layers {
		if m.Layers[i].ID == id {
			return &m.Layers[i], true
		}
	}
	return nil, false
}

type TileSheet[P any] struct {
	ID          string
	Description string
	ImageSource string
	SheetSize   Size
	TileSize    Size
	Margin      Size
	Spacing     Size
	Properties  P
}

// Layer is a grid of tiles. Empty cells have no entry in Tiles.
type Layer[P any] struct {
	ID          string
	Description string
	Visible     bool
	Size        Size
	TileSize    Size
	Properties  P
	Tiles       []Tile[P]
}

// TileAt returns the tile stored at cell (x, y), or nil for an empty cell.
func (l *Layer[P]) TileAt(x, y uint32) Tile[P] {
	for _, t := range l.Tiles {
		if p := t.Position(); p.X == x && p.Y == y {
			return t
		}
	}
	return nil
}

// Tile is implemented by *StaticTile and *AnimatedTile.
type Tile[P any] interface {
	Position() Point
	TileSheetID() string
	// IndexAt returns the tilesheet index shown at the given time in
	// milliseconds.
	IndexAt(tick uint32) uint32
	Properties() P
}

type StaticTile[P any] struct {
	TileSheet string
	Index     uint32
	Pos       Point
	BlendMode byte
	Props     P
}

func (t *StaticTile[P]) Position() Point       { return t.Pos }
func (t *StaticTile[P]) TileSheetID() string   { return t.TileSheet }
func (t *StaticTile[P]) IndexAt(uint32) uint32 { return t.Index }
func (t *StaticTile[P]) Properties() P         { return t.Props }

// AnimatedTile cycles through Frames, showing each for Interval
// milliseconds.
type AnimatedTile[P any] struct {
	Interval uint32
	Pos      Point
	Frames   []StaticTile[P]
	Props    P
}

func (t *AnimatedTile[P]) Position() Point { return t.Pos }
func (t *AnimatedTile[P]) Properties() P   { return t.Props }

// TileSheetID returns the tilesheet of the first frame.
func (t *AnimatedTile[P]) TileSheetID() string {
	if len(t.Frames) == 0 {
		return ""
	}
	return t.Frames[0].TileSheet
}

func (t *AnimatedTile[P]) IndexAt(tick uint32) uint32 {
	switch {
	case len(t.Frames) == 0:
		return 0
	case t.Interval == 0:
		return t.Frames[0].Index
	}
	return t.Frames[int(tick/t.Interval)%len(t.Frames)].Index
}
