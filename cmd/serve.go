package cmd

import (
	"log"

	"github.com/processforge/bpmn-architect/utils/config"
	"github.com/processforge/bpmn-architect/utils/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server exposing the refinement, generation, validation and correction pipeline plus diagram persistence.`,
	Run: func(cmd *cobra.Command, args []string) {
		envConfig := config.LoadEnvConfigOrDefault(config.GetEnvPath())

		if err := server.Run(envConfig); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
