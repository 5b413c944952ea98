package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hfsmctl",
	Short: "Inspect and smoke-test hfsm machine definitions",
	Long:  "hfsmctl loads a YAML state hierarchy definition and validates it, renders it, or drives it through a scripted event list.",
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("file", "", "path to a YAML machine definition")
	rootCmd.MarkPersistentFlagRequired("file")
}
