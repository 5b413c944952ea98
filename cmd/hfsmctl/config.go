package main

import (
	"fmt"
	"os"

	"github.com/orbitalstate/hfsm"
	"github.com/orbitalstate/hfsm/builder"
	"gopkg.in/yaml.v3"
)

// machineDocument is the YAML shape a definition file declares. Guards
// and actions are not expressible in this format — building one this
// way only exercises structure, matching the core's stance that it has
// no CLI, wire, or file format of its own.
type machineDocument struct {
	Name    string          `yaml:"name"`
	Initial string          `yaml:"initial"`
	States  []stateDocument `yaml:"states"`
}

type stateDocument struct {
	ID      string                        `yaml:"id"`
	Super   string                        `yaml:"super,omitempty"`
	Initial string                        `yaml:"initial,omitempty"`
	History string                        `yaml:"history,omitempty"`
	On      map[string]transitionDocument `yaml:"on,omitempty"`
}

type transitionDocument struct {
	Target string `yaml:"target,omitempty"`
}

func loadDocument(path string) (*machineDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hfsmctl: read %s: %w", path, err)
	}
	var doc machineDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("hfsmctl: parse %s: %w", path, err)
	}
	return &doc, nil
}

func (doc *machineDocument) build() (*hfsm.Graph, error) {
	b := builder.New()
	for _, s := range doc.States {
		sb := b.State(hfsm.StateID(s.ID))
		if s.Super != "" {
			sb.Super(hfsm.StateID(s.Super))
		}
		if s.Initial != "" {
			sb.Compound(hfsm.StateID(s.Initial))
		}
		switch s.History {
		case "shallow":
			sb.History(hfsm.HistoryShallow)
		case "deep":
			sb.History(hfsm.HistoryDeep)
		}
		for event, trans := range s.On {
			sb.On(hfsm.EventID(event), hfsm.StateID(trans.Target), nil)
		}
	}
	return b.Build()
}
