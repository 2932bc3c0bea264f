package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/processforge/bpmn-architect/utils/config"
	"github.com/processforge/bpmn-architect/utils/models"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available models",
	Long:  `List the model catalog across all registered providers, with credential status and the resolved default model.`,
	Run: func(cmd *cobra.Command, args []string) {
		envConfig := config.LoadEnvConfigOrDefault(config.GetEnvPath())

		descriptors := models.ListAvailableModels(envConfig)
		if len(descriptors) == 0 {
			descriptors = models.FallbackModels()
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MODEL\tPROVIDER\tSTATUS")
		for _, d := range descriptors {
			fmt.Fprintf(w, "%s\t%s\t%s\n", d.ID, d.Provider, d.Status)
		}
		w.Flush()

		fmt.Printf("\nDefault model: %s\n", models.DefaultModel(envConfig))
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
