package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/orbitalstate/hfsm"
	"github.com/orbitalstate/hfsm/extension"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Drive a YAML machine definition through a comma-separated event list",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		initial, _ := cmd.Flags().GetString("initial")
		eventsFlag, _ := cmd.Flags().GetString("events")

		doc, err := loadDocument(path)
		if err != nil {
			return err
		}
		graph, err := doc.build()
		if err != nil {
			return fmt.Errorf("hfsmctl: build: %w", err)
		}
		if initial == "" {
			initial = doc.Initial
		}
		if initial == "" {
			return fmt.Errorf("hfsmctl: no initial state given (pass --initial or set initial: in the document)")
		}

		m := hfsm.NewPassiveMachine(graph, doc.Name)
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		m.AddExtension(extension.NewLoggingExtension(logger))

		if err := m.Initialize(hfsm.StateID(initial)); err != nil {
			return fmt.Errorf("hfsmctl: initialize: %w", err)
		}

		for _, name := range splitEvents(eventsFlag) {
			if err := m.FireSync(hfsm.NewEvent(hfsm.EventID(name), nil)); err != nil {
				return fmt.Errorf("hfsmctl: fire %q: %w", name, err)
			}
		}
		fmt.Printf("final state: %s\n", m.Container().Current().ID())
		return nil
	},
}

func splitEvents(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	events := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			events = append(events, p)
		}
	}
	return events
}

func init() {
	runCmd.Flags().String("initial", "", "initial state id (overrides the document's initial: field)")
	runCmd.Flags().String("events", "", "comma-separated list of event ids to fire in order")
	rootCmd.AddCommand(runCmd)
}
