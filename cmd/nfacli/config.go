package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/nfa"
	"github.com/dekarrin/nfa/internal/util"
)

// presetNode is one state of a preset automaton definition, as read from a
// TOML presets file.
type presetNode struct {
	Accept *bool `toml:"accept"`
}

// presetEdge is one (from, label, to...) transition of a preset automaton.
// An empty Label means epsilon.
type presetEdge struct {
	From  int    `toml:"from"`
	Label string `toml:"label"`
	To    []int  `toml:"to"`
}

// preset is a single named automaton definition loaded from a presets file.
type preset struct {
	Start int          `toml:"start"`
	Nodes []presetNode `toml:"nodes"`
	Edges []presetEdge `toml:"edges"`
}

// presetFile is the top-level shape of a presets TOML file: a table of
// named presets under the "preset" key, e.g.
//
//	[preset.abc]
//	start = 0
//	nodes = [{}, {}, {accept = true}]
//	edges = [{from = 0, label = "a", to = [1]}, {from = 1, label = "b", to = [2]}]
type presetFile struct {
	Preset map[string]preset `toml:"preset"`
}

// loadPresets reads and parses a presets file from path. A missing path is
// not an error; it simply yields no presets.
func loadPresets(path string) (map[string]preset, error) {
	if path == "" {
		return map[string]preset{}, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return map[string]preset{}, nil
	}

	var pf presetFile
	if _, err := toml.DecodeFile(path, &pf); err != nil {
		return nil, fmt.Errorf("parse presets file: %w", err)
	}

	return pf.Preset, nil
}

// build constructs the automaton described by p, validating that every node
// index referenced by Start and by an edge is actually declared.
func (p preset) build() (*nfa.State[rune], error) {
	if len(p.Nodes) == 0 {
		return nil, fmt.Errorf("preset has no nodes")
	}

	valid := util.NewKeySet[int]()
	for i := range p.Nodes {
		valid.Add(i)
	}

	if !valid.Has(p.Start) {
		return nil, fmt.Errorf("start node %d is not declared", p.Start)
	}

	states := make([]*nfa.State[rune], len(p.Nodes))
	for i, n := range p.Nodes {
		s := nfa.MustNew[rune]()
		if n.Accept != nil {
			if *n.Accept {
				s = s.ForceAccept()
			} else {
				s = s.ForceReject()
			}
		}
		states[i] = s
	}

	for _, e := range p.Edges {
		if !valid.Has(e.From) {
			return nil, fmt.Errorf("edge references undeclared node %d", e.From)
		}
		if len(e.To) == 0 {
			return nil, fmt.Errorf("edge from %d has no targets", e.From)
		}

		to := make([]*nfa.State[rune], len(e.To))
		for i, t := range e.To {
			if !valid.Has(t) {
				return nil, fmt.Errorf("edge references undeclared node %d", t)
			}
			to[i] = states[t]
		}

		label := nfa.Eps[rune]()
		if e.Label != "" {
			runes := []rune(e.Label)
			if len(runes) != 1 {
				return nil, fmt.Errorf("label %q must be empty (epsilon) or exactly one rune", e.Label)
			}
			label = nfa.Sym(runes[0])
		}

		if err := states[e.From].AddTransition(label, to...); err != nil {
			return nil, err
		}
	}

	return states[p.Start], nil
}
