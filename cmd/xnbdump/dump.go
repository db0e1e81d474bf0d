package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/wippyai/xnb/content"
	"github.com/wippyai/xnb/tide"
)

func newDumpCommand(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Print a summary of a container's primary asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			as, err := loadAsset(args[0], kind)
			if err != nil {
				return err
			}
			writeSummary(cmd.OutOrStdout(), as)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", kindAuto, "asset type: "+strings.Join(assetKinds, ", "))
	return cmd
}

func writeSummary(w io.Writer, as *asset) {
	title := color.New(color.FgCyan, color.Bold)
	if as.Path != "" {
		title.Fprintf(w, "%s\n", as.Path)
	}
	fmt.Fprintf(w, "platform %s, version %d", as.Header.Platform, as.Header.Version)
	if as.Header.Compressed() {
		fmt.Fprintf(w, ", compressed %d -> %d bytes", as.Header.Size, as.Header.DecompressedSize)
	}
	fmt.Fprintln(w)

	title.Fprintln(w, "readers")
	for i, r := range as.Readers {
		fmt.Fprintf(w, "  %d  %s (v%d)\n", i+1, r.Identity(), r.Version)
	}

	title.Fprintln(w, "primary")
	writeValue(w, as.Value, "  ")
}

func writeValue(w io.Writer, v any, indent string) {
	switch v := v.(type) {
	case content.Texture2D:
		writeTexture(w, v, indent)
	case content.SpriteFont:
		writeSpriteFont(w, v, indent)
	case *tide.Map[[]tide.Property]:
		writeMap(w, v, indent)
	case *tide.Map[map[string]tide.PropertyValue]:
		writeMap(w, v, indent)
	case []string:
		fmt.Fprintf(w, "%sstring array, %d item(s)\n", indent, len(v))
		for i, s := range v {
			fmt.Fprintf(w, "%s  [%d] %q\n", indent, i, s)
		}
	case []any:
		fmt.Fprintf(w, "%sarray, %d item(s)\n", indent, len(v))
		for i, item := range v {
			fmt.Fprintf(w, "%s  [%d] %s\n", indent, i, short(item))
		}
	case map[any]any:
		fmt.Fprintf(w, "%sdictionary, %d entry(ies)\n", indent, len(v))
		keys := make([]string, 0, len(v))
		vals := make(map[string]any, len(v))
		for k, item := range v {
			ks := short(k)
			keys = append(keys, ks)
			vals[ks] = item
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "%s  %s: %s\n", indent, k, short(vals[k]))
		}
	default:
		fmt.Fprintf(w, "%s%s\n", indent, short(v))
	}
}

// short renders a value on one line.
func short(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", v)
	case content.Texture2D:
		return fmt.Sprintf("Texture2D %dx%d %s", v.Width, v.Height, v.Format)
	}
	return fmt.Sprintf("%v", v)
}

func writeTexture(w io.Writer, t content.Texture2D, indent string) {
	fmt.Fprintf(w, "%sTexture2D %dx%d, format %s, %d mip level(s)\n",
		indent, t.Width, t.Height, t.Format, len(t.MipLevels))
	for i, m := range t.MipLevels {
		fmt.Fprintf(w, "%s  mip %d: %d bytes\n", indent, i, len(m))
	}
}

func writeSpriteFont(w io.Writer, f content.SpriteFont, indent string) {
	fmt.Fprintf(w, "%sSpriteFont, %d glyph(s), line spacing %d, spacing %g\n",
		indent, len(f.CharMap), f.VerticalSpacing, f.HorizontalSpacing)
	if f.DefaultChar != nil {
		fmt.Fprintf(w, "%s  default char %q\n", indent, *f.DefaultChar)
	}
	writeTexture(w, f.Texture, indent+"  ")
	var chars strings.Builder
	for _, c := range f.CharMap {
		chars.WriteRune(c)
	}
	fmt.Fprintf(w, "%s  chars %q\n", indent, chars.String())
}

func writeMap[P any](w io.Writer, m *tide.Map[P], indent string) {
	fmt.Fprintf(w, "%smap %q", indent, m.ID)
	if m.Description != "" {
		fmt.Fprintf(w, " (%s)", m.Description)
	}
	fmt.Fprintln(w)
	for _, s := range m.TileSheets {
		fmt.Fprintf(w, "%s  tilesheet %q %s, %dx%d tiles of %dx%d\n", indent, s.ID, s.ImageSource,
			s.SheetSize.Width, s.SheetSize.Height, s.TileSize.Width, s.TileSize.Height)
	}
	for _, l := range m.Layers {
		state := "visible"
		if !l.Visible {
			state = "hidden"
		}
		var animated int
		for _, t := range l.Tiles {
			if _, ok := t.(*tide.AnimatedTile[P]); ok {
				animated++
			}
		}
		fmt.Fprintf(w, "%s  layer %q %s, %dx%d, %d tile(s), %d animated\n", indent, l.ID, state,
			l.Size.Width, l.Size.Height, len(l.Tiles), animated)
	}
}
