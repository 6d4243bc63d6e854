package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/dekarrin/nfa/server/middle"
	"github.com/go-chi/chi/v5"
)

// Server serves the HTTP API for an in-memory registry of named automata.
type Server struct {
	cfg      Config
	registry *Registry
	router   chi.Router
}

// New creates a Server ready to listen, with cfg's unset fields filled with
// their defaults.
func New(cfg Config) (Server, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return Server{}, fmt.Errorf("invalid config: %w", err)
	}

	reg := NewRegistry()

	r := chi.NewRouter()
	r.Use(middle.DontPanic())

	api := API{Registry: reg, Secret: cfg.TokenSecret, UnauthDelay: cfg.UnauthDelay()}
	api.Mount(r)

	return Server{cfg: cfg, registry: reg, router: r}, nil
}

// Registry returns the Server's backing automaton registry, for embedders
// that want direct programmatic access alongside the HTTP API.
func (s Server) Registry() *Registry {
	return s.registry
}

// ServeForever blocks, listening for and handling HTTP requests until the
// process is terminated or the underlying listener fails.
func (s Server) ServeForever() error {
	log.Printf("INFO  Listening on %s", s.cfg.ListenAddress)
	return http.ListenAndServe(s.cfg.ListenAddress, s.router)
}
