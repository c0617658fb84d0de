package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lemonberrylabs/roundscript/pkg/api"
	"github.com/lemonberrylabs/roundscript/pkg/ast"
	"github.com/lemonberrylabs/roundscript/pkg/config"
	"github.com/lemonberrylabs/roundscript/pkg/parser"
	"github.com/lemonberrylabs/roundscript/pkg/store"
	"github.com/lemonberrylabs/roundscript/pkg/tokenfile"
	"github.com/lemonberrylabs/roundscript/web"
	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"
)

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a token document and print the program tree",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	pal := newPalette(cmd.ErrOrStderr(), cfg.Output.Color)

	path := args[0]
	prog, err := parseFile(cfg, path)
	if err != nil {
		pal.reportError(cmd.ErrOrStderr(), path, err)
		return errFailed
	}

	fmt.Fprintln(cmd.OutOrStdout(), prog)
	return nil
}

func parseFile(cfg config.Config, path string) (*ast.Program, error) {
	f, err := tokenfile.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parser.Parse(f.Tokens, parserOptions(cfg, f.Source)...)
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Parse every token document and report failures",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	pal := newPalette(out, cfg.Output.Color)

	failed := 0
	for _, path := range args {
		prog, err := parseFile(cfg, path)
		if err == nil {
			fmt.Fprintf(out, "%s %s %s\n", pal.ok.Render("ok  "), path,
				pal.muted.Render(fmt.Sprintf("(%d statements)", prog.Len())))
			continue
		}
		failed++
		fmt.Fprintf(out, "%s %s\n", pal.fail.Render("FAIL"), path)
		pal.reportError(out, path, err)
	}

	summary := fmt.Sprintf("%d checked, %d failed", len(args), failed)
	if failed > 0 {
		fmt.Fprintln(out, pal.fail.Render(summary))
		return errFailed
	}
	fmt.Fprintln(out, pal.ok.Render(summary))
	return nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP check service",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	cmd.Flags().String("host", "", "Bind address (default 0.0.0.0, env ROUNDC_HOST)")
	cmd.Flags().Int("port", 0, "HTTP server port (default 8790, env ROUNDC_PORT)")
	cmd.Flags().String("programs-dir", "", "Directory of token documents to load at startup (env ROUNDC_PROGRAMS_DIR)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if v, _ := cmd.Flags().GetString("host"); v != "" {
		cfg.Server.Host = v
	}
	if v, _ := cmd.Flags().GetInt("port"); v != 0 {
		cfg.Server.Port = v
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	programsDir := env.Str("ROUNDC_PROGRAMS_DIR")
	if v, _ := cmd.Flags().GetString("programs-dir"); v != "" {
		programsDir = v
	}

	s := store.New(cfg.Server.MaxPrograms)
	server := api.New(s, api.Options{
		StrictBlocks: cfg.Parser.StrictBlocks,
		ReadTimeout:  cfg.Server.ReadTimeout.Duration,
		WriteTimeout: cfg.Server.WriteTimeout.Duration,
	})

	web.New(s).Register(server.App())

	if programsDir != "" {
		if err := server.LoadDir(programsDir); err != nil {
			log.Printf("Warning: failed to load programs directory: %v", err)
		}
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down roundc...")
		if err := server.Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.Printf("roundc check service listening on %s (strict=%t)", cfg.Addr(), cfg.Parser.StrictBlocks)
	return server.Listen(cfg.Addr())
}
