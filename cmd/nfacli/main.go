/*
Nfacli starts an interactive session for building and exploring NFA
automata.

Usage:

	nfacli [flags]

The interpreter reads named automaton presets from a TOML file (see
--presets) and lets the user load one as the "current" automaton, inspect
it, compile it, convert it to an equivalent DFA, and run matches against it.
Type HELP once in a session for a list of commands; type QUIT to exit.

The flags are:

	-v, --version
		Give the current version of the program and then exit.

	-p, --presets FILE
		Load named automaton presets from the given TOML file. If not
		given, no presets are available to LOAD and automata must be built
		by hand with BUILD.

	-d, --direct
		Force reading commands directly from stdin instead of going
		through GNU readline, even when stdin is a TTY.

	-c, --command COMMANDS
		Immediately run the given command(s) at start, separated by ";".
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dekarrin/nfa/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitCommandError indicates an unsuccessful execution due to a problem
	// running a command during the session.
	ExitCommandError

	// ExitInitError indicates an unsuccessful execution due to an issue
	// initializing the session.
	ExitInitError
)

var (
	returnCode   = ExitSuccess
	flagVersion  = pflag.BoolP("version", "v", false, "Give the current version of the program and then exit.")
	presetsFile  = pflag.StringP("presets", "p", "", "TOML file of named automaton presets to load.")
	forceDirect  = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible.")
	startCommand = pflag.StringP("command", "c", "", "Execute the given session commands immediately at start.")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	var startCommands []string
	if *startCommand != "" {
		startCommands = strings.Split(*startCommand, ";")
	}

	sess, initErr := newSession(*presetsFile, *forceDirect)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer sess.Close()

	if err := sess.RunUntilQuit(startCommands); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitCommandError
		return
	}
}
