package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/auth"
	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/config"
	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/db"
	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/health"
	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/logging"
	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/service"
	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/storage"
	"github.com/Rogue-Bear-Innovations/kochrezepte-back/internal/transport"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	root := &cli.Command{
		Name:  "kochrezepte",
		Usage: "Recipe management backend",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
		},
		Action: func(ctx context.Context, _ *cli.Command) error {
			return serve()
		},
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API and the gRPC health endpoint",
		Action: func(ctx context.Context, _ *cli.Command) error {
			return serve()
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply database migrations and exit",
		Action: func(ctx context.Context, _ *cli.Command) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			gdb, err := db.Open(cfg)
			if err != nil {
				return err
			}
			sqlDB, err := gdb.DB()
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			return db.Migrate(ctx, gdb, db.DialectFor(cfg.DBDriver))
		},
	}
}

func serve() error {
	app := fx.New(
		fx.Provide(config.NewConfig),
		logging.Module,
		db.Module,
		service.Module,
		auth.Module,
		storage.Module,
		transport.Module,
		health.Module,
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l}
		}),
		fx.Invoke(func(*transport.HTTPServer, *health.Server) {}),
	)

	app.Run()
	return app.Err()
}
