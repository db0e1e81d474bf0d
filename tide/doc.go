// Package tide decodes xTile tBIN10 maps, the tilemap format carried by
// the xTile.Pipeline.TideReader content reader.
//
// A map holds tilesheets and layers. Each layer stores its tiles as a
// tagged stream scanned row by row:
//
//	T <string>   switch the current tilesheet; the column does not move
//	S <tile>     one static tile at the current cell, then advance one column
//	N <u32>      skip that many empty cells
//	A <anim>     one animated tile at the current cell, then advance one column
//
// Property lists appear on the map, on every tilesheet, layer and tile.
// The caller chooses how they are kept with a PropertyFunc:
//
//	m, err := tide.Decode(blob, tide.IndexProperties)
//	if v, ok := m.Properties["Music"].(tide.String); ok {
//		...
//	}
//
// Use MapType to decode a map straight out of an XNB container.
package tide
