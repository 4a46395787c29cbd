package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"notepad/internal/config"
	"notepad/internal/web"
)

const shutdownTimeout = 5 * time.Second

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgPath string

	run := func(cmd *cobra.Command, _ []string) error {
		if cfgPath != "" {
			v.SetConfigFile(cfgPath)
		}
		return serve(cmd.Context(), v)
	}

	cmd := &cobra.Command{
		Use:           "notepad",
		Short:         "Plain-text notes in the browser, one file per URL slug",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          run,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&cfgPath, "config", "", "path to config file (yaml|toml|json)")
	flags.String("addr", "", "listen address (default "+config.DefaultListenAddr+")")
	flags.String("notes-dir", "", "directory holding <slug>.txt files (default: notes/ next to the binary)")
	flags.String("log-level", "", "debug, info, warn or error")
	flags.Bool("log-pretty", false, "human readable console logs")
	bindFlag(v, "listen_addr", flags.Lookup("addr"))
	bindFlag(v, "notes_dir", flags.Lookup("notes-dir"))
	bindFlag(v, "log_level", flags.Lookup("log-level"))
	bindFlag(v, "log_pretty", flags.Lookup("log-pretty"))

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (the default command)",
		Args:  cobra.NoArgs,
		RunE:  run,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildVersion)
		},
	})
	return cmd
}

func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", key, err))
	}
}

func serve(ctx context.Context, v *viper.Viper) error {
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	closeLog := setupLogging(cfg)
	defer closeLog()

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.EnsureNotesDir(); err != nil {
		return err
	}
	slog.Info("startup", "build_version", buildVersion, "notes_dir", cfg.NotesDir)

	srv, err := web.NewServer(cfg)
	if err != nil {
		return err
	}
	httpSrv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.ListenAddr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
