package ipmc

import (
	"time"

	"github.com/apollo-tools/go-ipmc/protocol"
)

// Config holds the configurer configuration.
type Config struct {
	// ProgressCallback is called as the run advances (optional)
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional)
	Logger Logger

	// ResponseLimit is the byte budget for a single command response
	ResponseLimit int

	// SettleDelay is the quiescence period between consecutive
	// commands; some controllers stall when writes arrive back to back
	SettleDelay time.Duration

	// Prompt is the response terminator byte
	Prompt byte
}

func defaultConfig() Config {
	return Config{
		ResponseLimit: protocol.DefaultMaxResponseSize,
		SettleDelay:   500 * time.Millisecond,
		Prompt:        protocol.Prompt,
	}
}

// Option is a functional option for configuring the Configurer.
type Option func(*Config)

// WithProgressCallback sets a callback to track run progress.
//
// Example:
//
//	cfg := ipmc.New(conn,
//	    ipmc.WithProgressCallback(func(p ipmc.Progress) {
//	        fmt.Printf("[%s] %d/%d %s\n", p.Phase, p.Index, p.Total, p.Command)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for the run.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithResponseLimit sets the byte budget for a single response.
// Default is protocol.DefaultMaxResponseSize.
func WithResponseLimit(limit int) Option {
	return func(c *Config) {
		if limit > 0 {
			c.ResponseLimit = limit
		}
	}
}

// WithSettleDelay sets the pause between consecutive commands.
// Zero disables the pause; the default is 500ms.
func WithSettleDelay(delay time.Duration) Option {
	return func(c *Config) {
		if delay >= 0 {
			c.SettleDelay = delay
		}
	}
}

// WithPrompt overrides the response terminator byte. The stock IPMC
// firmware uses '>'.
func WithPrompt(prompt byte) Option {
	return func(c *Config) {
		c.Prompt = prompt
	}
}
