package server

import (
	"fmt"
	"time"
)

const (
	MaxSecretSize = 64
	MinSecretSize = 32
)

// Config is a configuration for a Server. It contains all parameters needed
// to run the automaton registry HTTP service.
type Config struct {
	// TokenSecret is the secret used for signing bearer tokens handed out by
	// the /token endpoint.
	TokenSecret []byte

	// ListenAddress is the BIND_ADDRESS:PORT the server listens on.
	ListenAddress string

	// UnauthDelayMillis is additional time to wait, in milliseconds, before
	// responding to a request that failed authentication. Set to a negative
	// number to disable the delay.
	UnauthDelayMillis int
}

// UnauthDelay returns the configured delay as a time.Duration.
func (cfg Config) UnauthDelay() time.Duration {
	if cfg.UnauthDelayMillis < 1 {
		var dur time.Duration
		return dur
	}
	return time.Millisecond * time.Duration(cfg.UnauthDelayMillis)
}

// FillDefaults returns a new Config identical to cfg but with unset values
// set to their defaults.
func (cfg Config) FillDefaults() Config {
	newCFG := cfg

	if newCFG.TokenSecret == nil {
		newCFG.TokenSecret = []byte("DEFAULT_NFA_REGISTRY_SECRET-DO_NOT_USE_IN_PROD!")
	}
	if newCFG.ListenAddress == "" {
		newCFG.ListenAddress = "localhost:8080"
	}
	if newCFG.UnauthDelayMillis == 0 {
		newCFG.UnauthDelayMillis = 1000
	}

	return newCFG
}

// Validate returns an error if cfg has invalid field values. Call
// FillDefaults first if defaults are intended to be used.
func (cfg Config) Validate() error {
	if len(cfg.TokenSecret) < MinSecretSize {
		return fmt.Errorf("token secret: must be at least %d bytes, but is %d", MinSecretSize, len(cfg.TokenSecret))
	}
	if len(cfg.TokenSecret) > MaxSecretSize {
		return fmt.Errorf("token secret: must be no more than %d bytes, but is %d", MaxSecretSize, len(cfg.TokenSecret))
	}
	if cfg.ListenAddress == "" {
		return fmt.Errorf("listen address: must not be empty")
	}

	return nil
}
