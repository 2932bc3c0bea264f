package cmd

import (
	"fmt"
	"os"

	"github.com/processforge/bpmn-architect/utils/config"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "bpmn-architect",
	Short: "Generate BPMN 2.0 diagrams from natural language",
	Long: `bpmn-architect turns plain-language process descriptions into BPMN 2.0 XML.
It refines the description into structured modeling instructions, generates the
diagram, validates it against common BPMN pitfalls, and can automatically
correct issues the validator finds.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Verbose = verbose
		config.Debug = debug
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug output")
}

func Execute() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
