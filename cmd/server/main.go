package main

import (
	"fmt"
	"log/slog"

	log "github.com/charmbracelet/log"

	"github.com/cryptofolio/wallet/infra"
	infrarepo "github.com/cryptofolio/wallet/infra/repository"
	"github.com/cryptofolio/wallet/pkg/config"
	walletsvc "github.com/cryptofolio/wallet/pkg/service/wallet"
	"github.com/cryptofolio/wallet/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	logger := slog.Default()

	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	db, err := infra.NewDBConnection(cfg.DB.Url, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := infra.RunMigrations(db, cfg.DB.MigrationsPath); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	svc := walletsvc.New(infrarepo.NewUoW(db), logger)
	app := webapi.SetupApp(svc, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr)

	return app.Listen(addr)
}
