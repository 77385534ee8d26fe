// Command sqlgen generates table and column name constants from a live
// database schema. See package gen for the config file format.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/syssam/sqlgen/gen"
)

func main() {
	configPath := flag.String("config", "sqlgen.yaml", "path to the generator config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := gen.LoadConfig(*configPath)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	if err := gen.Run(ctx, cfg); err != nil {
		slog.Error("generate", "err", err)
		os.Exit(1)
	}
	slog.Info("generated", "driver", cfg.Driver, "out", cfg.Out)
}
