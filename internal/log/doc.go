// Package log provides slog loggers that sanitize their output.
//
// Scan results and tab stop events carry snapshots of page markup, and
// captured input elements may contain what a user typed into them. The
// SecureHandler masks attribute values of sensitive keys (passwords,
// tokens, cookies), masks values that look like bearer tokens or JWTs, and
// strips value attributes from attributes holding HTML.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("tab stop", "html", `<input type="password" value="hunter2">`)
//	// html="<input type=\"password\">"
//
//	slog.SetDefault(logger)
package log
