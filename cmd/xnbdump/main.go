// Command xnbdump inspects XNB containers: it prints summaries, exports
// decoded assets, saves textures as PNG and browses assets interactively.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/xnb"
)

// app carries the loaded configuration to subcommands.
type app struct {
	configPath string
	cfg        *Config
	log        *zap.Logger
}

func main() {
	a := &app{}
	root := newRootCommand(a)
	if err := root.Execute(); err != nil {
		printError(root.ErrOrStderr(), err, a.cfg != nil && a.cfg.NoColor)
		os.Exit(1)
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "xnbdump",
		Short:         "Inspect XNB game asset containers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(a.configPath, cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg
			if cfg.NoColor {
				color.NoColor = true
			}
			log, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			a.log = log
			xnb.SetLogger(log)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default ./xnbdump.yaml)")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("output-dir", ".", "directory for exported and PNG files")
	pf.String("format", "json", "export format: json, yaml, cbor, toml")
	pf.Bool("no-color", false, "disable colored output")

	root.AddCommand(newDumpCommand(a))
	root.AddCommand(newExportCommand(a))
	root.AddCommand(newPNGCommand(a))
	root.AddCommand(newBrowseCommand(a))

	return root
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	return cfg.Build()
}
