/*
Package log provides structured logging for gridboard using zerolog.

The log package wraps the zerolog library to provide JSON-structured logging
with component-specific loggers, configurable log levels, and helper
functions for common logging patterns. All logs include timestamps and
support filtering by severity level.

# Usage

Initializing the Logger:

	// JSON output (production)
	log.Init(log.Config{
		Level:      log.InfoLevel,
		JSONOutput: true,
		Output:     os.Stdout,
	})

	// Console output (development)
	log.Init(log.Config{
		Level:      log.DebugLevel,
		JSONOutput: false,
		Output:     os.Stdout,
	})

Simple Logging:

	log.Info("error cache initialized")
	log.Warn("readiness endpoint unreachable")
	log.Error("failed to open history database")

Structured Logging:

	log.Logger.Info().
		Str("workflow", "pdmvserv_task_HIG-RunIISummer15").
		Int("steps", 4).
		Msg("workflow page rendered")

Component Loggers:

	webLog := log.WithComponent("web")
	webLog.Info().Msg("listening")

	actLog := log.WithAction(record.ID)
	actLog.Info().Str("workflow", record.Workflow).Msg("action submitted")

# Integration Points

This package integrates with:

  - pkg/errorinfo: logs connection lifecycle and cache refreshes
  - pkg/web: logs HTTP requests and handler errors
  - pkg/storage: logs history database operations
  - pkg/readiness: logs readiness fetch failures
*/
package log
