package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shipping"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	switch command {
	case "up":
		log.Info("Running schema migration")
		err := db.DB.AutoMigrate(
			&shipping.ShippingProfile{},
			&shipping.FulfillmentSet{},
			&shipping.ServiceZone{},
			&shipping.ShippingOption{},
			&cart.Cart{},
			&cart.Item{},
		)
		if err != nil {
			log.Fatal("Schema migration failed", zap.Error(err))
		}
		log.Info("Schema migration completed")

	case "seed":
		log.Info("Seeding shipping topology")
		if err := seedTopology(db, log); err != nil {
			log.Fatal("Seeding failed", zap.Error(err))
		}
		log.Info("Seeding completed")

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

// seedTopology creates the minimal default profile and shipping fulfillment
// set that option synchronization requires. Safe to run repeatedly.
func seedTopology(db *persistence.Database, log *zap.Logger) error {
	profileRepo := persistence.NewGormShippingProfileRepository(db.DB)
	setRepo := persistence.NewGormFulfillmentSetRepository(db.DB)

	ctx := context.Background()

	if _, err := profileRepo.FindDefault(ctx); err != nil {
		profile, err := shipping.NewShippingProfile("Default Shipping Profile", shipping.ProfileTypeDefault)
		if err != nil {
			return err
		}
		if err := profileRepo.Save(ctx, profile); err != nil {
			return err
		}
		log.Info("Created default shipping profile", zap.String("id", profile.ID.String()))
	}

	sets, err := setRepo.FindByType(ctx, shipping.FulfillmentSetTypeShipping)
	if err != nil {
		return err
	}
	if len(sets) == 0 {
		set, err := shipping.NewFulfillmentSet("Default Warehouse", shipping.FulfillmentSetTypeShipping)
		if err != nil {
			return err
		}
		if _, err := set.AddServiceZone("Worldwide"); err != nil {
			return err
		}
		if err := setRepo.Save(ctx, set); err != nil {
			return err
		}
		log.Info("Created shipping fulfillment set with worldwide zone", zap.String("id", set.ID.String()))
	}

	return nil
}

func printUsage() {
	fmt.Println(`Storefront Database Migration Tool

Usage:
  migrate [flags] <command>

Commands:
  up      Create or update the schema for all managed tables
  seed    Create the default shipping profile and fulfillment set

Flags:
  -log-level string   Log level: debug, info, warn, error (default: info)`)
}
