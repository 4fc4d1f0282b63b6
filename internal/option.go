package internal

import "github.com/D3nams/Notepad/internal/spell"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	oracle spell.Oracle
	mcp    bool
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithOracle overrides the spell-check oracle. Defaults to the built-in
// dictionary when unset.
func WithOracle(o spell.Oracle) Option {
	return func(a *application) {
		a.oracle = o
	}
}

// WithMCP switches the application to MCP stdio mode instead of the HTTP
// server.
func WithMCP(enabled bool) Option {
	return func(a *application) {
		a.mcp = enabled
	}
}
