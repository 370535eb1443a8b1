package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/WatsonMLDev/codele-backend/internal/api"
	"github.com/WatsonMLDev/codele-backend/internal/contentgen"
	"github.com/WatsonMLDev/codele-backend/internal/llm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			if p := os.Getenv("CODELE_PORT"); p != "" {
				addr = ":" + p
			} else {
				addr = ":8080"
			}
		}

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := cmd.Context()

		provider, err := llm.NewProviderFromEnv(ctx, s.EventRepo())
		if err != nil {
			return fmt.Errorf("configure LLM provider: %w", err)
		}

		engine := contentgen.New(provider, s.TimelineRepo(), s.ThemeRepo(), contentgen.DefaultConfig())
		srv := api.NewServer(s.TimelineRepo(), s.ThemeRepo(), engine)

		httpServer := &http.Server{
			Addr:         addr,
			Handler:      srv.Router(),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 5 * time.Minute, // generation requests are slow
			IdleTimeout:  120 * time.Second,
		}

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		errCh := make(chan error, 1)
		go func() {
			fmt.Printf("Listening on %s (model: %s)\n", addr, provider.ModelID())
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return err
		case <-stop:
		}

		fmt.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default :8080, or :$CODELE_PORT)")
}
