// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8000)
  - DatabaseURL: PostgreSQL connection string (required)
  - CORSOrigins: Allowed CORS origins (default: http://localhost:3000)

# CLI Flags

	-p     Server port
	-d     Database URL
	-cors  Comma-separated allowed CORS origins

# Environment Variables

Flags fall back to environment variables:

	PORT         → -p
	DATABASE_URL → -d
	CORS_ORIGINS → -cors

CLI flags take precedence over environment variables. main.go loads a .env
file (via godotenv) before parsing, so a local .env works for development.

# Validation

ParseFlags returns an error if DATABASE_URL is missing or PORT is not a
number.
*/
package cliparse
