package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/config"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/logger"
	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/infrastructure/migration"
)

const defaultMigrationsDir = "migrations"

func main() {
	var (
		migrationsPath string
		logLevel       string
	)
	flag.StringVar(&migrationsPath, "path", "", "Read migrations from this directory instead of the compiled-in set")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{Level: logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	switch command {
	case "create":
		if len(args) < 2 {
			log.Fatal("Migration name required. Usage: migrate create <name> [description]")
		}
		description := ""
		if len(args) > 2 {
			description = args[2]
		}
		mf, err := migration.CreateMigration(dirOrDefault(migrationsPath), args[1], description)
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created",
			zap.String("version", mf.Version),
			zap.String("up_file", mf.UpPath),
			zap.String("down_file", mf.DownPath))
		return

	case "list":
		names, err := migration.ListMigrations(dirOrDefault(migrationsPath))
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		for _, n := range names {
			fmt.Println("  -", n)
		}
		return
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database", zap.Error(err))
	}

	var m *migration.Migrator
	if migrationsPath != "" {
		m, err = migration.NewFromPath(db, migrationsPath, log)
	} else {
		m, err = migration.New(db, log)
	}
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	// Closing the migrator also closes db.
	defer func() { _ = m.Close() }()

	if err := run(m, command, args[1:], log); err != nil {
		log.Error("Migration command failed", zap.String("command", command), zap.Error(err))
		os.Exit(1)
	}
}

func run(m *migration.Migrator, command string, args []string, log *zap.Logger) error {
	switch command {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "step":
		if len(args) < 1 {
			return fmt.Errorf("usage: migrate step <n>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid step count %q", args[0])
		}
		return m.Steps(n)
	case "goto":
		if len(args) < 1 {
			return fmt.Errorf("usage: migrate goto <version>")
		}
		v, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return m.GoTo(uint(v))
	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		log.Info("Current migration version", zap.Uint("version", v), zap.Bool("dirty", dirty))
		return nil
	case "force":
		if len(args) < 1 {
			return fmt.Errorf("usage: migrate force <version>")
		}
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid version %q", args[0])
		}
		return m.Force(v)
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func dirOrDefault(path string) string {
	if path == "" {
		return defaultMigrationsDir
	}
	return path
}

func printUsage() {
	fmt.Println(`Feed ledger database migrations

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (positive=up, negative=down)
  goto <version>        Migrate to a specific version
  version               Show current migration version
  force <version>       Force set migration version after a failed run
  create <name> [desc]  Create the next numbered migration pair
  list                  List migrations in the migrations directory

Flags:
  -path string          Migrations directory (default: compiled-in; ./migrations for create/list)
  -log-level string     Log level: debug, info, warn, error (default: info)

Database settings come from config.toml and FEED_DATABASE_* environment variables.`)
}
