package testutil

import (
	"github.com/nroehner/libSBOL/internal/domain/identity"
	"github.com/nroehner/libSBOL/internal/domain/sbol"
)

// Homespace is the namespace of fixture documents.
const Homespace = "http://examples.com"

// CompliantConfig returns the default fixture configuration: compliant, typed URIs under
// Homespace, fail-fast.
func CompliantConfig() sbol.Config {
	return sbol.Config{
		Settings: identity.Settings{
			Homespace:     Homespace,
			CompliantURIs: true,
			TypedURIs:     true,
		},
	}
}

// ConfigOption adjusts the fixture configuration.
type ConfigOption func(*sbol.Config)

// NonCompliant switches to caller-supplied identities under Homespace.
func NonCompliant() ConfigOption {
	return func(c *sbol.Config) {
		c.CompliantURIs = false
		c.TypedURIs = false
	}
}

// Untyped drops the type segment from compliant identities.
func Untyped() ConfigOption {
	return func(c *sbol.Config) { c.TypedURIs = false }
}

// NoHomespace clears the homespace.
func NoHomespace() ConfigOption {
	return func(c *sbol.Config) { c.Homespace = "" }
}

// Silent downgrades mutator failures to logged warnings.
func Silent() ConfigOption {
	return func(c *sbol.Config) { c.SilentFailures = true }
}

// Format sets the default file format.
func Format(format string) ConfigOption {
	return func(c *sbol.Config) { c.FileFormat = format }
}

// Config applies opts to CompliantConfig.
func Config(opts ...ConfigOption) sbol.Config {
	cfg := CompliantConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
