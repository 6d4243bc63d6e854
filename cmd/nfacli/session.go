package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/dekarrin/nfa"
	"github.com/dekarrin/nfa/internal/input"
	"github.com/dekarrin/nfa/internal/util"
	"github.com/dekarrin/rosed"
)

// lineReader is satisfied by both of internal/input's reader types.
type lineReader interface {
	ReadLine() (string, error)
	Close() error
}

// session holds the state of one interactive nfacli run: the loaded
// presets, whichever automaton is currently selected, and the reader
// commands are read from.
type session struct {
	presets map[string]preset
	reader  lineReader

	currentName string
	current     *nfa.State[rune]
}

func newSession(presetsFile string, forceDirect bool) (*session, error) {
	presets, err := loadPresets(presetsFile)
	if err != nil {
		return nil, err
	}

	var reader lineReader
	if forceDirect || !isTerminal() {
		reader = input.NewDirectReader(os.Stdin)
	} else {
		ilr, err := input.NewInteractiveReader("nfa> ")
		if err != nil {
			return nil, err
		}
		reader = ilr
	}

	return &session{presets: presets, reader: reader}, nil
}

func isTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// Close tears down the session's reader.
func (s *session) Close() error {
	return s.reader.Close()
}

// RunUntilQuit executes startCommands in order, then reads and executes
// further commands from the session's reader until QUIT is seen or the
// reader reaches end of input.
func (s *session) RunUntilQuit(startCommands []string) error {
	for _, c := range startCommands {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		quit, err := s.execute(c)
		if err != nil {
			fmt.Fprintf(os.Stdout, "ERROR: %s\n", err.Error())
		}
		if quit {
			return nil
		}
	}

	for {
		line, err := s.reader.ReadLine()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		quit, err := s.execute(line)
		if err != nil {
			fmt.Fprintf(os.Stdout, "ERROR: %s\n", err.Error())
		}
		if quit {
			return nil
		}
	}
}

func (s *session) execute(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	cmd := strings.ToUpper(fields[0])
	args := fields[1:]

	switch cmd {
	case "QUIT", "EXIT":
		return true, nil
	case "HELP":
		s.printHelp()
	case "LIST":
		s.printPresets()
	case "LOAD":
		err = s.cmdLoad(args)
	case "DUMP":
		err = s.cmdDump()
	case "INFO":
		err = s.cmdInfo()
	case "SYMBOLS":
		err = s.cmdSymbols()
	case "COMPILE":
		err = s.cmdCompile()
	case "DFA":
		err = s.cmdDFA()
	case "MATCH":
		err = s.cmdMatch(args)
	default:
		err = fmt.Errorf("unknown command %q; type HELP for a list", fields[0])
	}

	return false, err
}

func (s *session) printHelp() {
	fmt.Fprint(os.Stdout, rosed.Edit(strings.Join([]string{
		"Commands:",
		"  LIST                   list available automaton presets",
		"  LOAD <name>             load a preset as the current automaton",
		"  INFO                    show a summary of the current automaton",
		"  DUMP                    print the current automaton's structure",
		"  SYMBOLS                 list the current automaton's input symbols",
		"  COMPILE                 compile the current automaton's flat table",
		"  DFA                     replace the current automaton with an equivalent DFA",
		"  MATCH FULL|PREFIX TEXT  run a match against the current automaton",
		"  QUIT                    end the session",
	}, "\n")).String() + "\n")
}

func (s *session) printPresets() {
	names := make([]string, 0, len(s.presets))
	for name := range s.presets {
		names = append(names, name)
	}
	sort.Strings(names)

	data := [][]string{{"NAME", "NODES", "EDGES"}}
	for _, name := range names {
		p := s.presets[name]
		data = append(data, []string{name, fmt.Sprint(len(p.Nodes)), fmt.Sprint(len(p.Edges))})
	}

	opts := rosed.Options{TableHeaders: true, NoTrailingLineSeparators: true}
	fmt.Fprintln(os.Stdout, rosed.Edit("").InsertTableOpts(0, data, 80, opts).String())
}

func (s *session) cmdLoad(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: LOAD <name>")
	}

	p, ok := s.presets[args[0]]
	if !ok {
		return fmt.Errorf("no such preset: %q", args[0])
	}

	start, err := p.build()
	if err != nil {
		return fmt.Errorf("build preset %q: %w", args[0], err)
	}

	s.current = start
	s.currentName = args[0]
	fmt.Fprintf(os.Stdout, "loaded %q\n", args[0])
	return nil
}

func (s *session) requireCurrent() error {
	if s.current == nil {
		return fmt.Errorf("no automaton loaded; use LOAD first")
	}
	return nil
}

func (s *session) cmdDump() error {
	if err := s.requireCurrent(); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, s.current.String())
	return nil
}

func (s *session) cmdInfo() error {
	if err := s.requireCurrent(); err != nil {
		return err
	}

	data := [][]string{
		{"FIELD", "VALUE"},
		{"name", s.currentName},
		{"accepting", fmt.Sprint(s.current.Accepting())},
		{"states", fmt.Sprint(len(s.current.Reachable()))},
		{"symbols", fmt.Sprint(len(s.current.Symbols()))},
	}
	opts := rosed.Options{TableHeaders: true, NoTrailingLineSeparators: true}
	fmt.Fprintln(os.Stdout, rosed.Edit("").InsertTableOpts(0, data, 80, opts).String())
	return nil
}

func (s *session) cmdSymbols() error {
	if err := s.requireCurrent(); err != nil {
		return err
	}
	syms := s.current.Symbols()
	if len(syms) == 0 {
		fmt.Fprintln(os.Stdout, "(no symbols)")
		return nil
	}
	strs := make([]string, len(syms))
	for i, r := range syms {
		strs[i] = string(r)
	}
	fmt.Fprintln(os.Stdout, util.MakeTextList(strs))
	return nil
}

func (s *session) cmdCompile() error {
	if err := s.requireCurrent(); err != nil {
		return err
	}
	s.current.Compile()
	fmt.Fprintln(os.Stdout, "compiled")
	return nil
}

func (s *session) cmdDFA() error {
	if err := s.requireCurrent(); err != nil {
		return err
	}
	s.current = s.current.ToDFA()
	fmt.Fprintln(os.Stdout, "current automaton replaced with its DFA equivalent")
	return nil
}

func (s *session) cmdMatch(args []string) error {
	if err := s.requireCurrent(); err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("usage: MATCH FULL|PREFIX TEXT")
	}

	var full bool
	switch strings.ToUpper(args[0]) {
	case "FULL":
		full = true
	case "PREFIX":
		full = false
	default:
		return fmt.Errorf("match kind must be FULL or PREFIX, got %q", args[0])
	}

	text := strings.Join(args[1:], " ")
	length, ok := s.current.Match([]rune(text), full)
	if !ok {
		fmt.Fprintln(os.Stdout, "no match")
		return nil
	}

	fmt.Fprintf(os.Stdout, "matched %d of %d runes\n", length, len([]rune(text)))
	return nil
}
