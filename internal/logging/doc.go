// Package logging configures the process-wide structured logger. It provides
// a compact slog.Handler suited to interactive terminal use (one line per
// record, timestamp + level + message + attributes) alongside a JSON format
// for machine consumption.
//
// Format and level default from the MATHPROSE_LOG_FORMAT and
// MATHPROSE_LOG_LEVEL environment variables and can be overridden
// programmatically via [Options].
package logging
