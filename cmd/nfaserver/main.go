/*
Nfaserver starts an HTTP server hosting an in-memory registry of named NFA
automata and begins listening for new connections.

Usage:

	nfaserver [flags]
	nfaserver [flags] -l [[ADDRESS]:PORT]

Once started, the server listens for HTTP requests and responds to them
using a small REST API for building automata, inspecting them, and running
matches against them. By default, it listens on localhost:8080. This can be
changed with the --listen/-l flag or the corresponding environment
variable.

If a token secret is not given, one is generated and seeded from random
bytes. As a consequence, in this mode of operation all tokens are rendered
invalid as soon as the server shuts down. This is suitable for testing, but
a secret must be given via flag or environment variable for production use.

The flags are:

	-v, --version
		Give the current version of the program and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, defaults to the value of environment variable
		NFA_LISTEN_ADDRESS, and if that is not given, to localhost:8080.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing bearer tokens. If there are
		fewer than 32 bytes in the secret, it is repeated until it is. The
		maximum size is 64 bytes. If not given, defaults to the value of
		environment variable NFA_TOKEN_SECRET; if that is also empty, a
		random secret is generated.
*/
package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dekarrin/nfa/internal/version"
	"github.com/dekarrin/nfa/server"
	"github.com/spf13/pflag"
)

const (
	EnvListen = "NFA_LISTEN_ADDRESS"
	EnvSecret = "NFA_TOKEN_SECRET"
)

var (
	flagVersion = pflag.BoolP("version", "v", false, "Give the current version of the program and then exit.")
	flagListen  = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret  = pflag.StringP("secret", "s", "", "Use the given secret for token generation.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("nfaserver (nfa v%s)\n", version.Current)
		return
	}

	if args := pflag.Args(); len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	addr := "localhost:8080"
	listenAddr := os.Getenv(EnvListen)
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	if listenAddr != "" {
		addr = listenAddr
		if !strings.Contains(addr, ":") {
			fmt.Fprintf(os.Stderr, "Listen address is not in ADDRESS:PORT or :PORT format.\nDo -h for help.\n")
			os.Exit(1)
		}
	}

	var tokSecret []byte
	tokSecStr := os.Getenv(EnvSecret)
	if pflag.Lookup("secret").Changed {
		tokSecStr = *flagSecret
	}
	if tokSecStr != "" {
		tokSecret = []byte(tokSecStr)
		for len(tokSecret) < 32 {
			tokSecret = append(tokSecret, tokSecret...)
		}
		if len(tokSecret) > 64 {
			fmt.Fprintf(os.Stderr, "Token secret is %d bytes, but it must be <= 64 bytes\nDo -h for help.\n", len(tokSecret))
			os.Exit(1)
		}
	} else {
		tokSecret = make([]byte, 64)
		if _, err := rand.Read(tokSecret); err != nil {
			fmt.Fprintf(os.Stderr, "Could not generate token secret: %s\n", err.Error())
			os.Exit(1)
		}
		log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
	}

	srv, err := server.New(server.Config{TokenSecret: tokSecret, ListenAddress: addr})
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}

	log.Printf("INFO  Starting nfaserver %s...", version.Current)
	if err := srv.ServeForever(); err != nil {
		log.Fatalf("FATAL server exited: %s", err.Error())
	}
}
