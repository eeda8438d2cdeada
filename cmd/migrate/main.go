package main

import (
	"database/sql"
	"flag"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"oasisweb/internal/infra"
)

// Applies db/schema.sql against DATABASE_URL. The schema is idempotent, so
// running this repeatedly is safe.
func main() {
	_ = godotenv.Load()

	schemaPath := flag.String("schema", "db/schema.sql", "path to the schema file")
	flag.Parse()

	logger := infra.NewLogger(os.Getenv("APP_ENV"))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal().Msg("DATABASE_URL is required")
	}

	schema, err := os.ReadFile(*schemaPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *schemaPath).Msg("failed to read schema")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("failed to reach database")
	}

	if _, err := db.Exec(string(schema)); err != nil {
		logger.Fatal().Err(err).Msg("failed to apply schema")
	}

	logger.Info().Str("path", *schemaPath).Msg("schema applied")
}
