package cmd

import (
	"fmt"
	"os"

	"github.com/processforge/bpmn-architect/utils/prompts"
	"github.com/spf13/cobra"
)

var promptSaveFile string

var promptCmd = &cobra.Command{
	Use:   "prompt [kind]",
	Short: "Show or replace a prompt template",
	Long: `Show the prompt template for a pipeline stage, or replace it with --save.
Valid kinds: generation, refinement, validation, correction.
Without a kind, lists the available kinds and the template directory.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := prompts.NewStore("")

		if len(args) == 0 {
			fmt.Printf("Template directory: %s\n\nKinds:\n", store.Dir())
			for _, kind := range prompts.Kinds() {
				fmt.Printf("  %s\n", kind)
			}
			return
		}

		kind := args[0]
		if !prompts.ValidKind(kind) {
			fmt.Fprintf(os.Stderr, "Unknown prompt kind %q\n", kind)
			os.Exit(1)
		}

		if promptSaveFile != "" {
			data, err := os.ReadFile(promptSaveFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", promptSaveFile, err)
				os.Exit(1)
			}
			if err := store.Save(prompts.Kind(kind), string(data)); err != nil {
				fmt.Fprintf(os.Stderr, "Error saving template: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Saved %s template\n", kind)
			return
		}

		fmt.Println(store.Get(prompts.Kind(kind)))
	},
}

func init() {
	promptCmd.Flags().StringVar(&promptSaveFile, "save", "", "replace the template with the contents of a file")
	rootCmd.AddCommand(promptCmd)
}
