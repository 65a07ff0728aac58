// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A Loader keeps the parsed flags so the same layering can be rebuilt later:

	loader, err := cliparse.NewLoader(os.Args[1:])
	cfg, err := loader.Load()

# Sources

Settings are merged in increasing precedence:

 1. Defaults()
 2. yaml config file (-config or CONFIG_FILE)
 3. environment variables, after loading .env with godotenv
 4. CLI flags that were explicitly set

# Config Fields

  - Port: Server listen port (default: 8080)
  - LogLevel: debug, info, warn, error (default: info)
  - LogFormat: text or json (default: text)
  - SeedTasks: start with the example tasks (default: true)
  - StrictOptions: reject options for unknown polls (default: true)
  - CORSOrigin: allowed origin; empty echoes the request Origin
  - ReadTimeout, WriteTimeout, IdleTimeout: http.Server timeouts (yaml only)

# CLI Flags

	-p               Server port
	-config          yaml config file
	-env-file        .env file (default: .env, ignored if missing)
	-log-level       Log level
	-log-format      Log format
	-seed            Seed example tasks
	-strict-options  Validate pollId on option creation
	-cors-origin     Allowed CORS origin

# Environment Variables

	PORT           → -p
	CONFIG_FILE    → -config
	LOG_LEVEL      → -log-level
	LOG_FORMAT     → -log-format
	SEED_TASKS     → -seed
	STRICT_OPTIONS → -strict-options
	CORS_ORIGIN    → -cors-origin

# Config File

	port: 8080
	log_level: info
	log_format: json
	seed_tasks: true
	strict_options: true
	read_timeout: 10s

# Reloading

Watch rebuilds the Config through the Loader once a save to the config file
settles. The directory is watched, so editors that rename a temp file over
the config are seen too. Empty files are skipped. Environment variables and
set flags still win over the file. main uses it to apply a new log_level
without a restart:

	go cliparse.Watch(ctx, loader, func(c cliparse.Config) {
		lvl, _ := cliparse.ParseLevel(c.LogLevel)
		level.Set(lvl)
	})
*/
package cliparse
