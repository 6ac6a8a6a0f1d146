package cmd

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ezerfernandes/codetabs/internal/auth"
	"github.com/ezerfernandes/codetabs/internal/config"
	"github.com/ezerfernandes/codetabs/internal/content"
	"github.com/ezerfernandes/codetabs/internal/logging"
	"github.com/ezerfernandes/codetabs/internal/render"
	"github.com/ezerfernandes/codetabs/internal/roadmap"
	"github.com/ezerfernandes/codetabs/internal/server"
	"github.com/ezerfernandes/codetabs/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func serveCmd(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{ //nolint:exhaustruct
		Use:   "serve [flags]",
		Short: "Serve a local preview of the site",
		Long: "Serve the blog, roadmap and account API together with rendered article\n" +
			"pages. State is kept in the configured store.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.config)
			if err != nil {
				return err
			}

			if cmd.Flag("addr").Changed {
				cfg.Server.Addr = addr
			}

			logger, err := logging.New(cfg.Logging.Level)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			srv, closeStore, err := newServer(cfg, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},

		DisableAutoGenTag: true,
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides config)")

	return cmd
}

// newServer assembles the services described by cfg. The returned func
// releases the store.
func newServer(cfg *config.Config, logger *zap.Logger) (*server.Server, func(), error) {
	st, err := store.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return nil, nil, err
	}

	closeStore := func() {
		if c, ok := st.(io.Closer); ok {
			if err := c.Close(); err != nil {
				logger.Warn("Closing store", zap.Error(err))
			}
		}
	}

	posts, err := content.LoadCatalog()
	if err != nil {
		closeStore()

		return nil, nil, err
	}

	roadmaps, err := roadmap.Load()
	if err != nil {
		closeStore()

		return nil, nil, err
	}

	logger.Info("Store opened", zap.String("driver", cfg.Storage.Driver), zap.String("path", cfg.Storage.Path))

	srv := server.New(
		auth.NewMock(st, cfg.Auth.BcryptCost, logger),
		content.NewService(st, posts, logger),
		roadmaps,
		render.NewHTML(logger, render.WithStyle(cfg.Render.Style)),
		logger,
	)

	return srv, closeStore, nil
}

