package main

import (
	"fmt"

	"github.com/orbitalstate/hfsm"
	"github.com/orbitalstate/hfsm/report"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a YAML machine definition as DOT or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		format, _ := cmd.Flags().GetString("format")
		current, _ := cmd.Flags().GetString("current")

		doc, err := loadDocument(path)
		if err != nil {
			return err
		}
		graph, err := doc.build()
		if err != nil {
			return fmt.Errorf("hfsmctl: build: %w", err)
		}

		switch format {
		case "dot":
			fmt.Print(report.DOTReporter{}.Render(doc.Name, graph, hfsm.StateID(current)))
		case "json":
			out, err := report.JSONReporter{}.Render(doc.Name, graph, hfsm.StateID(current))
			if err != nil {
				return fmt.Errorf("hfsmctl: render json: %w", err)
			}
			fmt.Println(string(out))
		default:
			return fmt.Errorf("hfsmctl: unknown format %q, want dot or json", format)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().String("format", "dot", "output format: dot or json")
	reportCmd.Flags().String("current", "", "state id to highlight as current")
	rootCmd.AddCommand(reportCmd)
}
