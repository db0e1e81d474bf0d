// Package xnb decodes XNB containers, the compiled asset format of the XNA
// content pipeline.
//
// A container is a short header followed by a payload, optionally
// compressed. The payload holds a type reader table, a count of shared
// resources (always zero here) and the primary asset:
//
//	offset  field
//	0       magic "XNB"
//	3       platform: w, m or x
//	4       format version, 5
//	5       flags; bit 7 set when compressed
//	6       container size, u32
//	10      decompressed payload size, u32, compressed containers only
//
// # Typed decoding
//
// The caller names the asset type it expects:
//
//	c, err := xnb.Decode(f, content.Texture2DType)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(c.Primary.Width, c.Primary.Height)
//
// Maps produced by xTile are decoded with tide.MapType:
//
//	c, err := xnb.Decode(f, tide.MapType(tide.IndexProperties))
//
// # Dynamic decoding
//
// DecodeAny decodes whatever the container holds using Registry, or the
// registry given with WithRegistry.
//
// # Compression
//
// Compressed payloads are handed to a Decompressor supplied with
// WithDecompressor. No decompressor ships with this package; decoding a
// compressed container without one fails with
// errors.KindUnsupportedCompression.
//
// # Package layout
//
//	xnb/                 Container envelope, options, registry
//	├── content/         Reader table, object graph, typed asset decoders
//	├── tide/            xTile tBIN10 map decoder
//	├── typename/        Reader name and generic argument parsing
//	├── errors/          Structured error types
//	├── internal/binary/ Primitive encodings
//	└── cmd/xnbdump/     Command line inspector
package xnb
