package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/xnb/errors"
)

// document is the exported form of one container.
type document struct {
	File       string   `json:"file" yaml:"file" cbor:"file" toml:"file"`
	Platform   string   `json:"platform" yaml:"platform" cbor:"platform" toml:"platform"`
	Version    byte     `json:"version" yaml:"version" cbor:"version" toml:"version"`
	Compressed bool     `json:"compressed" yaml:"compressed" cbor:"compressed" toml:"compressed"`
	Readers    []string `json:"readers" yaml:"readers" cbor:"readers" toml:"readers"`
	Primary    any      `json:"primary" yaml:"primary" cbor:"primary" toml:"primary"`
}

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("xnbdump: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

func newExportCommand(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "export <file>...",
		Short: "Decode containers and write them as json, yaml, cbor or toml",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportFiles(a, args, kind)
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", kindAuto, "asset type: "+strings.Join(assetKinds, ", "))
	return cmd
}

// exportFiles decodes up to GOMAXPROCS files at a time and returns the
// first failure.
func exportFiles(a *app, paths []string, kind string) error {
	if err := os.MkdirAll(a.cfg.OutputDir, 0o755); err != nil {
		return errors.Load("create output directory", err)
	}

	var group errgroup.Group
	group.SetLimit(runtime.GOMAXPROCS(0))
	for _, path := range paths {
		path := path // per-iteration copy (Go 1.22 loopvar semantics)
		group.Go(func() error {
			out, err := exportFile(path, kind, a.cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			a.log.Info("exported", zap.String("file", path), zap.String("output", out))
			return nil
		})
	}
	return group.Wait()
}

func exportFile(path, kind string, cfg *Config) (string, error) {
	as, err := loadAsset(path, kind)
	if err != nil {
		return "", err
	}
	data, err := render(cfg.Format, newDocument(as))
	if err != nil {
		return "", err
	}
	out := filepath.Join(cfg.OutputDir, outputName(path, cfg.Format))
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", errors.Load("write "+out, err)
	}
	return out, nil
}

func outputName(path, ext string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "." + ext
}

func newDocument(as *asset) document {
	doc := document{
		File:       as.Path,
		Platform:   as.Header.Platform.String(),
		Version:    as.Header.Version,
		Compressed: as.Header.Compressed(),
		Primary:    normalize(as.Value),
	}
	for _, r := range as.Readers {
		doc.Readers = append(doc.Readers, r.Name)
	}
	return doc
}

// normalize rewrites dynamically decoded dictionaries to string keys so
// every format can encode them.
func normalize(v any) any {
	switch v := v.(type) {
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, item := range v {
			m[fmt.Sprint(k)] = normalize(item)
		}
		return m
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalize(item)
		}
		return out
	}
	return v
}

func render(format string, doc document) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(doc, "", "  ")
	case "yaml":
		return yaml.Marshal(doc)
	case "cbor":
		return cborEncMode.Marshal(doc)
	case "toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}
