package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/wippyai/xnb/errors"
)

// formatError renders err as a colored block. Decoder errors show their
// phase, kind and location on separate lines.
func formatError(err error, noColor bool) string {
	var b strings.Builder

	header := color.New(color.FgRed, color.Bold)
	body := color.New(color.FgRed)
	hint := color.New(color.FgCyan)
	if noColor {
		header.DisableColor()
		body.DisableColor()
		hint.DisableColor()
	}

	var e *errors.Error
	if !stderrors.As(err, &e) {
		header.Fprintf(&b, "Error: %v\n", err)
		return b.String()
	}

	header.Fprintf(&b, "%s ERROR: %s\n", strings.ToUpper(string(e.Phase)), e.Kind)
	if prefix, _, ok := strings.Cut(err.Error(), e.Error()); ok && prefix != "" {
		body.Fprintf(&b, "   %s\n", strings.TrimSuffix(prefix, ": "))
	}
	if e.Detail != "" {
		body.Fprintf(&b, "   %s\n", e.Detail)
	}
	if e.Reader != "" {
		body.Fprintf(&b, "   reader: %s\n", e.Reader)
	}
	if e.Expected != "" {
		body.Fprintf(&b, "   expected: %s\n", e.Expected)
	}
	if e.Offset >= 0 {
		body.Fprintf(&b, "   at byte offset %d\n", e.Offset)
	}
	if e.Cause != nil {
		body.Fprintf(&b, "   cause: %v\n", e.Cause)
	}
	if h := hintFor(e.Kind); h != "" {
		b.WriteString("\n")
		hint.Fprintf(&b, "   → %s\n", h)
	}
	return b.String()
}

func hintFor(kind errors.Kind) string {
	switch kind {
	case errors.KindUnsupportedCompression:
		return "the container is compressed; no decompressor is built into xnbdump"
	case errors.KindReaderMismatch:
		return "try --type auto"
	case errors.KindUnknownReader:
		return "the asset uses a reader xnbdump does not know"
	}
	return ""
}

func printError(w io.Writer, err error, noColor bool) {
	fmt.Fprint(w, formatError(err, noColor))
}
