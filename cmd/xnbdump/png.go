package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/xnb/content"
	"github.com/wippyai/xnb/errors"
)

func newPNGCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "png <file>",
		Short: "Save the mip levels of a Color texture or sprite font as PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			as, err := loadAsset(args[0], kindAuto)
			if err != nil {
				return err
			}
			tex, err := textureOf(as.Value)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(a.cfg.OutputDir, 0o755); err != nil {
				return errors.Load("create output directory", err)
			}
			base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			for level := range tex.MipLevels {
				img, err := mipImage(tex, level)
				if err != nil {
					return err
				}
				out := filepath.Join(a.cfg.OutputDir, fmt.Sprintf("%s_%d.png", base, level))
				if err := writePNG(out, img); err != nil {
					return err
				}
				a.log.Info("wrote mip level", zap.Int("level", level), zap.String("output", out))
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}
}

func textureOf(v any) (content.Texture2D, error) {
	switch v := v.(type) {
	case content.Texture2D:
		return v, nil
	case content.SpriteFont:
		return v.Texture, nil
	}
	return content.Texture2D{}, fmt.Errorf("primary asset is %T, not a texture", v)
}

// mipImage wraps one Color mip level. Level n is the base size halved n
// times, never below one pixel.
func mipImage(t content.Texture2D, level int) (*image.RGBA, error) {
	if t.Format != content.SurfaceColor {
		return nil, fmt.Errorf("cannot convert %s textures to PNG", t.Format)
	}
	w := max(1, int(t.Width)>>level)
	h := max(1, int(t.Height)>>level)
	data := t.MipLevels[level]
	if len(data) != w*h*4 {
		return nil, fmt.Errorf("mip %d holds %d bytes, want %d for %dx%d", level, len(data), w*h*4, w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	copy(img.Pix, data)
	return img, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Load("create "+path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Load("encode "+path, err)
	}
	if err := f.Close(); err != nil {
		return errors.Load("close "+path, err)
	}
	return nil
}
