// Package main is the entry point for roundc, the roundscript parser front end.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/lemonberrylabs/roundscript/pkg/config"
	"github.com/lemonberrylabs/roundscript/pkg/parser"
	"github.com/spf13/cobra"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// errFailed is returned after a command has already reported its failures.
var errFailed = errors.New("roundc: failed")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "roundc",
		Short:         "Parse and check roundscript token streams",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.Version = version + " (commit=" + commit + ", built=" + date + ")"
	root.SetVersionTemplate("roundc version {{.Version}}\n")

	root.PersistentFlags().String("config", "", "Path to a TOML config file")
	root.PersistentFlags().Bool("strict", false, "Reject repeated begin/expect blocks (env ROUNDC_STRICT)")
	root.PersistentFlags().Bool("no-color", false, "Disable colored output (env NO_COLOR)")

	root.AddCommand(newParseCmd(), newCheckCmd(), newServeCmd())
	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

// loadConfig reads the config file and environment, then applies the
// persistent flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if v, _ := cmd.Flags().GetBool("strict"); v {
		cfg.Parser.StrictBlocks = true
	}
	if v, _ := cmd.Flags().GetBool("no-color"); v {
		cfg.Output.Color = false
	}
	return cfg, nil
}

func parserOptions(cfg config.Config, source []byte) []parser.Option {
	opts := []parser.Option{parser.WithSource(source)}
	if cfg.Parser.StrictBlocks {
		opts = append(opts, parser.WithStrictBlocks())
	}
	return opts
}
