// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: sqlite file or PostgreSQL connection string (default: surveys.db for sqlite)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - LogLevel: logrus level name (default: info)

# CLI Flags

	-p          Server port
	-d          Database URL
	-t          Database type
	-log-level  Log level
	-c          YAML config file

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	LOG_LEVEL     → -log-level
	CONFIG_FILE   → -c

main loads a .env file into the environment first, if one exists.

# Config File

Values still missing are read from the YAML file:

	port: 8080
	database_type: postgres
	database_url: postgres://surveys@localhost/surveys?sslmode=disable
	log_level: debug

CLI flags take precedence over environment variables, which take
precedence over the config file.
*/
package cliparse
