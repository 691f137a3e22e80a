package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/api"
	"github.com/spigell/resume-screener/internal/scoring"
	"github.com/spigell/resume-screener/internal/secrets"
)

const (
	shutdownTimeout = 10 * time.Second
	minTokenLength  = 16
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve extraction, scoring and rankings over HTTP",
	Run: func(cmd *cobra.Command, _ []string) {
		runServe(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default is serve.addr from config)")
	serveCmd.Flags().Bool("insecure", false, "serve without a bearer token")
}

func runServe(cmd *cobra.Command) {
	e := newEnv(cmd)
	defer e.close()

	addr := e.config.Serve.Addr
	if v := cmd.Flag("addr").Value.String(); v != "" {
		addr = v
	}

	var token string
	if insecure, _ := cmd.Flags().GetBool("insecure"); !insecure {
		var err error
		token, err = secrets.Load(secrets.Source{
			Name:      "api token",
			Value:     e.config.Serve.Token,
			File:      e.config.Serve.TokenFile,
			MinLength: minTokenLength,
		})
		if err != nil {
			e.logger.Fatal(
				"loading api token",
				zap.Error(err),
				zap.String("hint", "set RESUME_SCREENER_TOKEN_FILE environment variable, the 'serve.token-file' key in the configuration file or pass --insecure"),
			)
		}
	} else {
		e.logger.Warn("serving without authentication")
	}

	svc, err := e.intake()
	if err != nil {
		e.logger.Fatal("preparing intake", zap.Error(err))
	}

	s, err := e.openStore()
	if err != nil {
		e.logger.Fatal("opening database", zap.Error(err))
	}

	server := api.New(api.Deps{
		Intake:       svc,
		Applications: s,
		Scorer:       scoring.New(scoring.DefaultConfig()),
		Heuristic:    e.heuristic(),
		Logger:       e.logger,
	}, token)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(e.ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		e.logger.Info("listening", zap.String("addr", addr), zap.String("version", resolveVersion()))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			e.logger.Fatal("serving", zap.Error(err))
		}
	case <-ctx.Done():
		e.logger.Info("shutting down", zap.String("reason", "signal received"))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			e.logger.Error("shutting down", zap.Error(err))
		}
	}
}
