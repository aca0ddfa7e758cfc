// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/shopgraph/shopgraph/internal/access"
	"github.com/shopgraph/shopgraph/internal/auth"
	authmongo "github.com/shopgraph/shopgraph/internal/auth/mongodb"
	"github.com/shopgraph/shopgraph/internal/catalog"
	catalogmongo "github.com/shopgraph/shopgraph/internal/catalog/mongodb"
	"github.com/shopgraph/shopgraph/internal/config"
	"github.com/shopgraph/shopgraph/internal/store"
)

// Default timeout for seed command.
const defaultSeedTimeout = 30 * time.Second

// Well-known IDs make the seed idempotent: re-running hits the
// existing documents instead of inserting twice.
// ULIDs must be exactly 26 characters (Crockford's base32 alphabet).
const (
	seedCategoryBooksID = "01J0SEED000000000000000001"
	seedCategoryGamesID = "01J0SEED000000000000000002"
	seedProductNovelID  = "01J0SEED0000000000000000A1"
	seedProductPuzzleID = "01J0SEED0000000000000000A2"
)

// seedConfig holds configuration for the seed command.
type seedConfig struct {
	timeout    time.Duration
	adminEmail string
}

// NewSeedCmd creates the seed subcommand.
func NewSeedCmd() *cobra.Command {
	cfg := &seedConfig{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the catalog with initial data",
		Long: `Creates initial catalog data and an optional admin account.
This command is idempotent - it will not create duplicates if run multiple times.

The admin password is read from SHOPGRAPH_ADMIN_PASSWORD; the account is
only created when both --admin-email and the password are set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, args, cfg)
		},
	}

	cmd.Flags().DurationVar(&cfg.timeout, "timeout", defaultSeedTimeout, "timeout for database operations (e.g., 30s, 1m)")
	cmd.Flags().StringVar(&cfg.adminEmail, "admin-email", "", "email for the admin account to create")

	return cmd
}

func runSeed(cmd *cobra.Command, _ []string, cfg *seedConfig) error {
	appCfg, err := config.Load(configFile, nil)
	if err != nil {
		return err
	}

	// Use cmd.Context() to respect SIGINT/SIGTERM signals
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.timeout)
	defer cancel()

	cmd.Println("Connecting to database...")
	st, err := store.Connect(ctx, appCfg.Mongo.URI, appCfg.Mongo.Database)
	if err != nil {
		return oops.Code("SEED_CONNECT_FAILED").Wrap(err)
	}
	defer func() {
		if closeErr := st.Close(context.Background()); closeErr != nil {
			slog.Warn("error closing mongodb connection", "error", closeErr)
		}
	}()

	db := st.Database()
	categoryRepo := catalogmongo.NewCategoryRepository(db)
	productRepo := catalogmongo.NewProductRepository(db)
	userRepo := authmongo.NewUserRepository(db)

	cmd.Println("Ensuring indexes...")
	for _, ensure := range []func(context.Context) error{
		categoryRepo.EnsureIndexes, productRepo.EnsureIndexes, userRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return oops.Code("SEED_INDEX_FAILED").Wrap(err)
		}
	}

	if err := seedCatalog(ctx, cmd, categoryRepo, productRepo); err != nil {
		return err
	}
	if err := seedAdmin(ctx, cmd, userRepo, cfg.adminEmail); err != nil {
		return err
	}

	cmd.Println("Seeding complete!")
	return nil
}

func seedCatalog(ctx context.Context, cmd *cobra.Command, categories *catalogmongo.CategoryRepository, products *catalogmongo.ProductRepository) error {
	type categorySeed struct {
		id, name, description string
	}
	type productSeed struct {
		id, name, description string
		priceCents            int64
		categoryID            string
		stock                 int
	}

	categorySeeds := []categorySeed{
		{seedCategoryBooksID, "Books", "Printed and electronic books"},
		{seedCategoryGamesID, "Games", "Board games and puzzles"},
	}
	productSeeds := []productSeed{
		{seedProductNovelID, "The Colour of Magic", "A fantasy novel", 1299, seedCategoryBooksID, 25},
		{seedProductPuzzleID, "Thud", "A strategy board game", 3499, seedCategoryGamesID, 10},
	}

	for _, seed := range categorySeeds {
		id := ulid.MustParse(seed.id)
		if _, err := categories.GetByID(ctx, id); err == nil {
			cmd.Printf("Category %q already exists, skipping\n", seed.name)
			continue
		} else if !errors.Is(err, catalog.ErrNotFound) {
			return oops.Code("SEED_FAILED").With("category", seed.name).Wrap(err)
		}

		category, err := catalog.NewCategory(seed.name, seed.description)
		if err != nil {
			return err
		}
		category.ID = id
		if err := categories.Create(ctx, category); err != nil {
			return oops.Code("SEED_FAILED").With("category", seed.name).Wrap(err)
		}
		cmd.Printf("Created category %q\n", seed.name)
	}

	for _, seed := range productSeeds {
		id := ulid.MustParse(seed.id)
		if _, err := products.GetByID(ctx, id); err == nil {
			cmd.Printf("Product %q already exists, skipping\n", seed.name)
			continue
		} else if !errors.Is(err, catalog.ErrNotFound) {
			return oops.Code("SEED_FAILED").With("product", seed.name).Wrap(err)
		}

		product, err := catalog.NewProduct(seed.name, seed.description, seed.priceCents, ulid.MustParse(seed.categoryID), seed.stock)
		if err != nil {
			return err
		}
		product.ID = id
		if err := products.Create(ctx, product); err != nil {
			return oops.Code("SEED_FAILED").With("product", seed.name).Wrap(err)
		}
		cmd.Printf("Created product %q\n", seed.name)
	}

	return nil
}

func seedAdmin(ctx context.Context, cmd *cobra.Command, users *authmongo.UserRepository, email string) error {
	if email == "" {
		return nil
	}
	password := os.Getenv("SHOPGRAPH_ADMIN_PASSWORD")
	if password == "" {
		return oops.Code("SEED_ADMIN_PASSWORD_MISSING").
			Errorf("SHOPGRAPH_ADMIN_PASSWORD must be set when --admin-email is given")
	}

	if _, err := users.GetByEmail(ctx, auth.NormalizeEmail(email)); err == nil {
		cmd.Printf("Admin account %q already exists, skipping\n", email)
		return nil
	} else if !errors.Is(err, auth.ErrNotFound) {
		return oops.Code("SEED_FAILED").With("admin", email).Wrap(err)
	}

	if err := auth.ValidatePassword(password); err != nil {
		return err
	}
	hash, err := auth.NewArgon2idHasher().Hash(password)
	if err != nil {
		return err
	}
	admin, err := auth.NewUser(email, hash, access.RoleAdmin)
	if err != nil {
		return err
	}
	if err := users.Create(ctx, admin); err != nil {
		// A concurrent seed may have won the race; that's still seeded.
		if errors.Is(err, auth.ErrEmailTaken) {
			cmd.Printf("Admin account %q already exists, skipping\n", email)
			return nil
		}
		return oops.Code("SEED_FAILED").With("admin", email).Wrap(err)
	}

	cmd.Printf("Created admin account %q\n", email)
	slog.Info("created admin account", "email", email)
	return nil
}
