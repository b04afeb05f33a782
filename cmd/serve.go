package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/perftrack/internal/logger"
	"github.com/theirongolddev/perftrack/internal/web"
)

var (
	flagServeAddr   string
	flagServePretty bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web dashboard",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "HTTP listen address (default from config, 127.0.0.1:8501)")
	serveCmd.Flags().BoolVar(&flagServePretty, "pretty", false, "Human-readable logs instead of JSON")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	addr := cfg.Server.Addr
	if flagServeAddr != "" {
		addr = flagServeAddr
	}

	l, err := openLedger(os.Stderr)
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Level:  cfg.Server.LogLevel,
		Pretty: cfg.Server.Pretty || flagServePretty,
	})

	srv, err := web.New(web.Config{
		Addr:   addr,
		Log:    log,
		Ledger: l,
		Plan:   cfg.Plan,
	})
	if err != nil {
		return err
	}

	fmt.Printf("  perftrack dashboard on http://%s\n", addr)
	fmt.Printf("  Data file: %s\n", l.Path())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
