package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/wippyai/xnb"
	"github.com/wippyai/xnb/content"
	"github.com/wippyai/xnb/errors"
	"github.com/wippyai/xnb/tide"
)

// Asset kinds accepted by --type.
const (
	kindAuto        = "auto"
	kindTexture     = "texture2d"
	kindSpriteFont  = "spritefont"
	kindStringArray = "stringarray"
	kindTide        = "tide"
)

var assetKinds = []string{kindAuto, kindTexture, kindSpriteFont, kindStringArray, kindTide}

// asset is one decoded container.
type asset struct {
	Path    string
	Header  xnb.Header
	Readers content.ReaderTable
	Value   any
}

func loadAsset(path, kind string) (*asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read "+path, err)
	}
	a, err := decodeAsset(data, kind)
	if err != nil {
		return nil, err
	}
	a.Path = path
	return a, nil
}

func decodeAsset(data []byte, kind string) (*asset, error) {
	switch strings.ToLower(kind) {
	case kindAuto, "":
		c, err := xnb.DecodeAny(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return &asset{Header: c.Header, Readers: c.Readers, Value: c.Primary}, nil
	case kindTexture:
		return decodeAs(data, content.Texture2DType)
	case kindSpriteFont:
		return decodeAs(data, content.SpriteFontType)
	case kindStringArray:
		return decodeAs(data, content.ArrayOf(content.StringType))
	case kindTide:
		return decodeAs(data, tide.MapType(tide.IndexProperties))
	}
	return nil, fmt.Errorf("unknown asset type %q (want one of %s)", kind, strings.Join(assetKinds, ", "))
}

func decodeAs[T any](data []byte, d content.Decoder[T]) (*asset, error) {
	c, err := xnb.DecodeBytes(data, d)
	if err != nil {
		return nil, err
	}
	return &asset{Header: c.Header, Readers: c.Readers, Value: c.Primary}, nil
}
