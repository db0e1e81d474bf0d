package tide_test

import (
	"bytes"
	stderrors "errors"
	"reflect"
	"testing"

	"github.com/wippyai/xnb/content"
	"github.com/wippyai/xnb/errors"
	"github.com/wippyai/xnb/internal/binary"
	"github.com/wippyai/xnb/tide"
)

// prop is a property entry written by writeProps.
type prop struct {
	name string
	kind byte
	val  any
}

func writeProps(w *binary.Writer, props ...prop) {
	w.WriteUint32(uint32(len(props)))
	for _, p := range props {
		w.WriteString32(p.name).Byte(p.kind)
		switch v := p.val.(type) {
		case bool:
			if v {
				w.Byte(1)
			} else {
				w.Byte(0)
			}
		case int32:
			w.WriteInt32(v)
		case float32:
			w.WriteFloat32(v)
		case string:
			w.WriteString32(v)
		}
	}
}

func writeStatic(w *binary.Writer, index uint32, blend byte, props ...prop) {
	w.Byte('S').WriteUint32(index).Byte(blend)
	writeProps(w, props...)
}

// mapHeader writes the magic, a map with one property, one tilesheet and
// the layer count.
func mapHeader(layers uint32) *binary.Writer {
	w := binary.NewWriter().WriteBytes([]byte(tide.Magic))
	w.WriteString32("Town").WriteString32("")
	writeProps(w, prop{"Music", 3, "spring"})

	w.WriteUint32(1)
	w.WriteString32("sheetA").WriteString32("outdoors").WriteString32("Maps/spring_town")
	w.WriteUint32(16).WriteUint32(32) // sheet size
	w.WriteUint32(16).WriteUint32(16) // tile size
	w.WriteUint32(0).WriteUint32(0)   // margin
	w.WriteUint32(0).WriteUint32(0)   // spacing
	writeProps(w)

	w.WriteUint32(layers)
	return w
}

func layerHeader(w *binary.Writer, id string, width, height uint32) {
	w.WriteString32(id).Byte(1).WriteString32("")
	w.WriteUint32(width).WriteUint32(height)
	w.WriteUint32(16).WriteUint32(16)
	writeProps(w)
}

func kindOf(t *testing.T, err error) errors.Kind {
	t.Helper()
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("error %v is not *errors.Error", err)
	}
	return e.Kind
}

func TestDecodeRowWithEmptyRun(t *testing.T) {
	w := mapHeader(1)
	layerHeader(w, "Back", 3, 1)
	w.Byte('T').WriteString32("sheetA")
	writeStatic(w, 7, 0)
	w.Byte('N').WriteUint32(1)
	writeStatic(w, 9, 1)

	m, err := tide.Decode(w.Bytes(), tide.KeepProperties)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Layers) != 1 {
		t.Fatalf("layers = %d", len(m.Layers))
	}
	tiles := m.Layers[0].Tiles
	if len(tiles) != 2 {
		t.Fatalf("tiles = %d, want 2", len(tiles))
	}

	want := []tide.Point{{X: 0, Y: 0}, {X: 2, Y: 0}}
	for i, tile := range tiles {
		if tile.Position() != want[i] {
			t.Errorf("tile %d at %+v, want %+v", i, tile.Position(), want[i])
		}
		if tile.TileSheetID() != "sheetA" {
			t.Errorf("tile %d sheet = %q", i, tile.TileSheetID())
		}
		if _, ok := tile.(*tide.StaticTile[[]tide.Property]); !ok {
			t.Errorf("tile %d is %T", i, tile)
		}
	}
	if m.Layers[0].TileAt(1, 0) != nil {
		t.Error("cell (1,0) should be empty")
	}
	if got := m.Layers[0].TileAt(2, 0).IndexAt(0); got != 9 {
		t.Errorf("index at (2,0) = %d", got)
	}
}

func TestDecodeMapFields(t *testing.T) {
	w := mapHeader(0)
	m, err := tide.Decode(w.Bytes(), tide.IndexProperties)
	if err != nil {
		t.Fatal(err)
	}
	if m.ID != "Town" || m.Description != "" {
		t.Errorf("map = %q %q", m.ID, m.Description)
	}
	if m.Properties["Music"] != tide.String("spring") {
		t.Errorf("Music = %v", m.Properties["Music"])
	}
	sheet, ok := m.TileSheet("sheetA")
	if !ok {
		t.Fatal("sheetA not found")
	}
	want := tide.TileSheet[map[string]tide.PropertyValue]{
		ID:          "sheetA",
		Description: "outdoors",
		ImageSource: "Maps/spring_town",
		SheetSize:   tide.Size{Width: 16, Height: 32},
		TileSize:    tide.Size{Width: 16, Height: 16},
		Properties:  map[string]tide.PropertyValue{},
	}
	if !reflect.DeepEqual(*sheet, want) {
		t.Errorf("sheet = %+v", *sheet)
	}
	if _, ok := m.TileSheet("missing"); ok {
		t.Error("missing tilesheet found")
	}
}

func TestTileSheetTagCarriesAcrossRows(t *testing.T) {
	w := mapHeader(1)
	layerHeader(w, "Buildings", 2, 2)
	w.Byte('T').WriteString32("sheetA")
	writeStatic(w, 1, 0)
	w.Byte('T').WriteString32("sheetB")
	writeStatic(w, 2, 0)
	// second row keeps sheetB
	writeStatic(w, 3, 0)
	w.Byte('N').WriteUint32(1)

	m, err := tide.Decode(w.Bytes(), tide.DiscardProperties)
	if err != nil {
		t.Fatal(err)
	}
	tiles := m.Layers[0].Tiles
	tests := []struct {
		pos   tide.Point
		sheet string
		index uint32
	}{
		{tide.Point{X: 0, Y: 0}, "sheetA", 1},
		{tide.Point{X: 1, Y: 0}, "sheetB", 2},
		{tide.Point{X: 0, Y: 1}, "sheetB", 3},
	}
	if len(tiles) != len(tests) {
		t.Fatalf("tiles = %d", len(tiles))
	}
	for i, tt := range tests {
		if tiles[i].Position() != tt.pos || tiles[i].TileSheetID() != tt.sheet || tiles[i].IndexAt(0) != tt.index {
			t.Errorf("tile %d = %+v", i, tiles[i])
		}
	}
}

func TestAnimatedTile(t *testing.T) {
	w := mapHeader(1)
	layerHeader(w, "Front", 1, 1)
	w.Byte('T').WriteString32("sheetA")
	w.Byte('A').WriteUint32(250).WriteUint32(3)
	writeStatic(w, 10, 0)
	w.Byte('T').WriteString32("sheetB")
	writeStatic(w, 11, 0)
	writeStatic(w, 12, 0)
	writeProps(w, prop{"Action", 3, "Door"})

	m, err := tide.Decode(w.Bytes(), tide.IndexProperties)
	if err != nil {
		t.Fatal(err)
	}
	tile, ok := m.Layers[0].TileAt(0, 0).(*tide.AnimatedTile[map[string]tide.PropertyValue])
	if !ok {
		t.Fatalf("tile = %T", m.Layers[0].TileAt(0, 0))
	}
	if tile.Interval != 250 || len(tile.Frames) != 3 {
		t.Fatalf("interval %d, frames %d", tile.Interval, len(tile.Frames))
	}
	if tile.Frames[0].TileSheet != "sheetA" || tile.Frames[1].TileSheet != "sheetB" {
		t.Errorf("frame sheets = %q, %q", tile.Frames[0].TileSheet, tile.Frames[1].TileSheet)
	}
	if tile.TileSheetID() != "sheetA" {
		t.Errorf("TileSheetID = %q", tile.TileSheetID())
	}
	if tile.Properties()["Action"] != tide.String("Door") {
		t.Errorf("properties = %v", tile.Properties())
	}

	for _, tt := range []struct{ tick, want uint32 }{
		{0, 10}, {249, 10}, {250, 11}, {500, 12}, {750, 10},
	} {
		if got := tile.IndexAt(tt.tick); got != tt.want {
			t.Errorf("IndexAt(%d) = %d, want %d", tt.tick, got, tt.want)
		}
	}
}

func TestPropertyValues(t *testing.T) {
	w := mapHeader(1)
	layerHeader(w, "Paths", 1, 1)
	w.Byte('T').WriteString32("sheetA")
	writeStatic(w, 0, 0,
		prop{"Passable", 0, true},
		prop{"Depth", 1, int32(-3)},
		prop{"Scale", 2, float32(1.5)},
		prop{"Name", 3, "caf\xe9"},
		prop{"Depth", 1, int32(4)},
	)

	m, err := tide.Decode(w.Bytes(), tide.KeepProperties)
	if err != nil {
		t.Fatal(err)
	}
	got := m.Layers[0].Tiles[0].Properties()
	want := []tide.Property{
		{Name: "Passable", Value: tide.Bool(true)},
		{Name: "Depth", Value: tide.Int(-3)},
		{Name: "Scale", Value: tide.Float(1.5)},
		{Name: "Name", Value: tide.String("café")},
		{Name: "Depth", Value: tide.Int(4)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("properties = %+v", got)
	}

	indexed := tide.IndexProperties(got)
	if indexed["Depth"] != tide.Int(4) {
		t.Errorf("indexed Depth = %v, want last value", indexed["Depth"])
	}
}

func TestRunPastRowEnd(t *testing.T) {
	w := mapHeader(1)
	layerHeader(w, "Back", 2, 2)
	w.Byte('N').WriteUint32(0xffffffff)
	w.Byte('T').WriteString32("sheetA")
	writeStatic(w, 5, 0)
	w.Byte('N').WriteUint32(1)

	m, err := tide.Decode(w.Bytes(), tide.DiscardProperties)
	if err != nil {
		t.Fatal(err)
	}
	tiles := m.Layers[0].Tiles
	if len(tiles) != 1 || tiles[0].Position() != (tide.Point{X: 0, Y: 1}) {
		t.Errorf("tiles = %+v", tiles)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func() []byte
		kind  errors.Kind
	}{
		{
			name: "bad magic",
			build: func() []byte {
				return []byte("tBIN09rest")
			},
			kind: errors.KindMalformed,
		},
		{
			name: "truncated",
			build: func() []byte {
				return mapHeader(1).Bytes()
			},
			kind: errors.KindIO,
		},
		{
			name: "unknown tile tag",
			build: func() []byte {
				w := mapHeader(1)
				layerHeader(w, "Back", 1, 1)
				w.Byte('X')
				return w.Bytes()
			},
			kind: errors.KindMalformedTileTag,
		},
		{
			name: "unknown frame tag",
			build: func() []byte {
				w := mapHeader(1)
				layerHeader(w, "Back", 1, 1)
				w.Byte('T').WriteString32("sheetA")
				w.Byte('A').WriteUint32(100).WriteUint32(1)
				w.Byte('N')
				return w.Bytes()
			},
			kind: errors.KindMalformedTileTag,
		},
		{
			name: "static before tilesheet",
			build: func() []byte {
				w := mapHeader(1)
				layerHeader(w, "Back", 1, 1)
				writeStatic(w, 0, 0)
				return w.Bytes()
			},
			kind: errors.KindMalformed,
		},
		{
			name: "unknown property type",
			build: func() []byte {
				w := binary.NewWriter().WriteBytes([]byte(tide.Magic))
				w.WriteString32("m").WriteString32("")
				w.WriteUint32(1).WriteString32("p").Byte(9)
				return w.Bytes()
			},
			kind: errors.KindMalformed,
		},
	}
	for _, tt := range tests {
		tt := tt // per-iteration copy (Go 1.22 loopvar semantics)
		t.Run(tt.name, func(t *testing.T) {
			_, err := tide.Decode(tt.build(), tide.KeepProperties)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := kindOf(t, err); got != tt.kind {
				t.Errorf("kind = %s, want %s (%v)", got, tt.kind, err)
			}
		})
	}
}

func TestMalformedTileTagCarriesByte(t *testing.T) {
	w := mapHeader(1)
	layerHeader(w, "Back", 1, 1)
	offset := w.Len()
	w.Byte('Q')

	_, err := tide.Decode(w.Bytes(), tide.DiscardProperties)
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("err = %v", err)
	}
	if e.Value != byte('Q') || e.Offset != offset || e.Phase != errors.PhaseTide {
		t.Errorf("error = %+v", e)
	}
}

func TestNilPropertyFunc(t *testing.T) {
	m, err := tide.Decode[map[string]tide.PropertyValue](mapHeader(0).Bytes(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if m.Properties != nil {
		t.Errorf("properties = %v, want nil", m.Properties)
	}
}

func TestMapType(t *testing.T) {
	blob := mapHeader(0).Bytes()
	payload := binary.NewWriter().
		WriteVarUint32(1).
		WriteUint32(uint32(len(blob))).
		WriteBytes(blob).
		Bytes()
	table := content.ReaderTable{{Name: tide.TideReader + ", xTile"}}
	s := content.NewSession(binary.NewReader(bytes.NewReader(payload)), table,
		content.NewRegistry(tide.MapType(tide.DiscardProperties).Entry()))

	m, err := content.ReadObject(s, tide.MapType(tide.DiscardProperties))
	if err != nil {
		t.Fatal(err)
	}
	if m.ID != "Town" || len(m.TileSheets) != 1 {
		t.Errorf("map = %+v", m)
	}
}

func TestMapTypeErrorOffsets(t *testing.T) {
	blob := []byte("tBIN11")
	payload := binary.NewWriter().
		WriteVarUint32(1).
		WriteUint32(uint32(len(blob))).
		WriteBytes(blob).
		Bytes()
	table := content.ReaderTable{{Name: tide.TideReader}}
	s := content.NewSession(binary.NewReader(bytes.NewReader(payload)), table, nil)

	_, err := content.ReadObject(s, tide.MapType(tide.KeepProperties))
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("err = %v", err)
	}
	// one byte reference, four byte length
	if e.Kind != errors.KindMalformed || e.Offset != 5 {
		t.Errorf("error = %+v", e)
	}
}

func TestPropertyValueString(t *testing.T) {
	tests := []struct {
		v    tide.PropertyValue
		want string
	}{
		{tide.Bool(true), "true"},
		{tide.Int(-12), "-12"},
		{tide.Float(0.25), "0.25"},
		{tide.String("x"), "x"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.v, got, tt.want)
		}
	}
}
