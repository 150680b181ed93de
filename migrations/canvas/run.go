package main

import (
	"embed"

	"github.com/ghuser/mediaboard/pkg/config"
	"github.com/ghuser/mediaboard/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if cfg.UsesSQLite() {
		// The sqlite store applies its own schema when it is opened.
		return
	}
	if err := migrator.RunMigrations(cfg.DatabaseURL, MigrationsFS); err != nil {
		panic(err)
	}
}
