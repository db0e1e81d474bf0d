// Package errors provides structured error types for the xnb decoder.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: byte offset, the reader identity found in the
// stream and the one expected, the offending value, and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseObject, errors.KindReaderMismatch).
//		Reader("Microsoft.Xna.Framework.Content.StringReader").
//		Expected("Microsoft.Xna.Framework.Content.Texture2DReader").
//		Offset(42).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnrecognizedSurfaceFormat(code, offset)
//	err := errors.MalformedTileTag(tag, offset, "layer", "Back")
//
// All errors implement the standard error interface and support errors.Is/As.
// KindOf extracts the Kind from anywhere in a wrapped chain.
package errors
