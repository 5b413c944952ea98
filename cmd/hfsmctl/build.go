package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Validate a YAML machine definition builds into a graph",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		doc, err := loadDocument(path)
		if err != nil {
			return err
		}
		graph, err := doc.build()
		if err != nil {
			return fmt.Errorf("hfsmctl: build: %w", err)
		}
		fmt.Printf("ok: %d states, %d root(s)\n", graph.Len(), len(graph.Roots()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
