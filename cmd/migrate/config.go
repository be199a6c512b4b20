package main

import (
	"os"

	"github.com/joho/godotenv"
)

const defaultMigrationsDir = "db/migrations"

func loadEnvFiles() {
	// Environment provided by the runtime (e.g. Docker) wins over the files.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// migrationsDir is the on-disk source tree location where `create` writes new
// migration files. Applying migrations reads the embedded copy instead.
func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return defaultMigrationsDir
}
