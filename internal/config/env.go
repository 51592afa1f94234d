package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads a project-local .env file if one is present, so
// OSMPTPARSER_* overrides can be kept out of the shell environment. A
// missing .env file is not an error: unlike the teacher's tool, this CLI
// has no required secrets.
func LoadDotEnv() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}
}
