// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/shopgraph/shopgraph/internal/access"
	"github.com/shopgraph/shopgraph/internal/auth"
	authmongo "github.com/shopgraph/shopgraph/internal/auth/mongodb"
	"github.com/shopgraph/shopgraph/internal/catalog"
	catalogmongo "github.com/shopgraph/shopgraph/internal/catalog/mongodb"
	"github.com/shopgraph/shopgraph/internal/config"
	"github.com/shopgraph/shopgraph/internal/graphapi"
	"github.com/shopgraph/shopgraph/internal/logging"
)

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the GraphQL server",
		Long: `Start the GraphQL server. Composes the schema from the user,
product, category, and order modules and serves it on /graphql.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServeWithDeps(cmd, nil)
		},
	}

	cmd.Flags().String("server.listen", "", "GraphQL listen address (overrides config)")
	cmd.Flags().String("mongo.uri", "", "MongoDB connection URI (overrides config)")
	cmd.Flags().String("metrics.listen", "", "metrics/health listen address (overrides config)")

	return cmd
}

// runServeWithDeps starts the server with injectable dependencies.
// If deps is nil, default implementations are used.
func runServeWithDeps(cmd *cobra.Command, deps *ServeDeps) error {
	if deps == nil {
		deps = &ServeDeps{}
	}
	deps.applyDefaults()

	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	logging.SetDefault("shopgraph", version, cfg.Log.Format, cfg.Log.Level)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	slog.Info("connecting to mongodb", "database", cfg.Mongo.Database)
	st, err := deps.StoreFactory(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		return oops.Code("SERVE_STORE_FAILED").Wrap(err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if closeErr := st.Close(closeCtx); closeErr != nil {
			slog.Warn("error closing mongodb connection", "error", closeErr)
		}
	}()

	handler, err := buildAPI(ctx, st, cfg)
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Readiness follows the database, not the process.
	obsServer := deps.ObservabilityServerFactory(cfg.Metrics.Listen, func() bool {
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer pingCancel()
		return st.Ping(pingCtx) == nil
	})
	obsErrChan, err := obsServer.Start()
	if err != nil {
		return oops.Code("SERVE_METRICS_FAILED").Wrap(err)
	}
	go monitorServerErrors(ctx, cancel, obsErrChan, "observability")

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		if serveErr := httpSrv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errChan <- serveErr
		}
	}()

	cmd.Println("Shopgraph server started")
	slog.Info("server ready", "addr", cfg.Server.Listen, "metrics_addr", obsServer.Addr())

	select {
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig)
	case err := <-errChan:
		return oops.Code("SERVE_FAILED").Wrap(err)
	case <-ctx.Done():
		slog.Info("context cancelled, shutting down")
	}

	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("error shutting down http server", "error", err)
	}
	if err := obsServer.Stop(shutdownCtx); err != nil {
		slog.Warn("error stopping observability server", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// buildAPI wires repositories, services, and the composed schema.
func buildAPI(ctx context.Context, st Store, cfg config.Config) (http.Handler, error) {
	db := st.Database()

	userRepo := authmongo.NewUserRepository(db)
	productRepo := catalogmongo.NewProductRepository(db)
	categoryRepo := catalogmongo.NewCategoryRepository(db)
	orderRepo := catalogmongo.NewOrderRepository(db)

	for name, ensure := range map[string]func(context.Context) error{
		"users":      userRepo.EnsureIndexes,
		"products":   productRepo.EnsureIndexes,
		"categories": categoryRepo.EnsureIndexes,
		"orders":     orderRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return nil, oops.Code("SERVE_INDEX_FAILED").With("collection", name).Wrap(err)
		}
	}

	issuer, err := auth.NewTokenIssuer(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}
	authSvc, err := auth.NewService(userRepo, auth.NewArgon2idHasher(), issuer)
	if err != nil {
		return nil, err
	}
	catalogSvc, err := catalog.NewService(productRepo, categoryRepo)
	if err != nil {
		return nil, err
	}
	orderSvc, err := catalog.NewOrderService(orderRepo, productRepo)
	if err != nil {
		return nil, err
	}

	return graphapi.NewServer(graphapi.Services{
		Auth:    authSvc,
		Catalog: catalogSvc,
		Orders:  orderSvc,
		Policy:  access.NewPolicy(),
	}, slog.Default())
}

// monitorServerErrors watches a server error channel and cancels the
// main context if an error occurs.
func monitorServerErrors(ctx context.Context, cancel context.CancelFunc, errChan <-chan error, name string) {
	select {
	case err, ok := <-errChan:
		if ok && err != nil {
			slog.Error("server failed", "server", name, "error", err)
			cancel()
		}
	case <-ctx.Done():
	}
}
