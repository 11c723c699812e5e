package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scholia-labs/scholia/internal/catalog"
	"github.com/scholia-labs/scholia/internal/server"
	"github.com/scholia-labs/scholia/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site with live reload",
	Long: `Loads the content tree, mirrors it into the local catalog and serves the
site over HTTP. With --watch, edits under the content directory are picked
up and open pages reload themselves.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (defaults to server.port)")
	serveCmd.Flags().Bool("watch", false, "reload when content changes (defaults to server.watch)")
	serveCmd.Flags().Bool("open", false, "open the site in a browser")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	port := cfg.Server.Port
	if cmd.Flags().Changed("port") {
		port, _ = cmd.Flags().GetInt("port")
	}
	watch := cfg.Server.Watch
	if cmd.Flags().Changed("watch") {
		watch, _ = cmd.Flags().GetBool("watch")
	}
	open, _ := cmd.Flags().GetBool("open")

	database, err := openCatalog()
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer database.Close()

	s, err := newSite(catalog.NewStore(database), watch)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := s.Reload(ctx); err != nil {
		return err
	}

	srv := server.New(server.Config{
		Port:     port,
		AllowAll: cfg.Server.AllowAllOrigins,
	}, database, logger)
	s.RegisterRoutes(srv.Router())

	if watch {
		w, err := site.NewWatcher(cfg.ContentDir, site.DefaultDebounce, func(path string) {
			if err := s.Reload(ctx); err != nil {
				logger.Warn("reload failed", zap.String("path", path), zap.Error(err))
				return
			}
			logger.Info("content reloaded", zap.String("path", path))
			s.Hub().Broadcast(path)
		}, logger)
		if err != nil {
			return err
		}
		go func() {
			if err := w.Run(ctx); err != nil {
				logger.Warn("watcher stopped", zap.Error(err))
			}
		}()
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if hub := s.Hub(); hub != nil {
			hub.Close()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", zap.Error(err))
		}
	}()

	url := fmt.Sprintf("http://localhost:%d", port)
	logger.Info("serving site",
		zap.String("url", url),
		zap.String("content", cfg.ContentDir),
		zap.String("catalog", database.Path()),
		zap.Bool("watch", watch),
		zap.String("version", Version))
	fmt.Fprintf(os.Stderr, "Serving %s at %s\nPress Ctrl+C to stop.\n", cfg.Site.Title, url)

	if open {
		go server.OpenBrowser(url)
	}
	return srv.Start()
}
