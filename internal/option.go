package internal

import "github.com/halvard/skald/internal/source"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	source source.Source
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithSource overrides the document source that would otherwise be built
// from the configuration. Used by tests.
func WithSource(src source.Source) Option {
	return func(a *application) {
		a.source = src
	}
}
