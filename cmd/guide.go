package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/processforge/bpmn-architect/utils/guide"
	"github.com/spf13/cobra"
)

var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show the BPMN 2.0 notation reference",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(guide.Overview)
		fmt.Println()

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ELEMENT\tCATEGORY\tDESCRIPTION")
		for _, e := range guide.Elements {
			fmt.Fprintf(w, "%s\t%s\t%s\n", e.Name, e.Category, e.Description)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(guideCmd)
}
