package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/processforge/bpmn-architect/utils/config"
	"github.com/processforge/bpmn-architect/utils/pipeline"
	"github.com/processforge/bpmn-architect/utils/prompts"
	"github.com/processforge/bpmn-architect/utils/scraper"
	"github.com/spf13/cobra"
)

var (
	generateModel   string
	generateCorrect bool
	generateOutput  string
	generateFromURL string
	generateYes     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate [description]",
	Short: "Generate a BPMN diagram from a process description",
	Long: `Generate BPMN 2.0 XML from a natural-language process description.
The description is first refined into structured modeling instructions which
you can accept, edit, or cancel before generation. The generated XML is
validated, and with --correct an invalid diagram is corrected and re-validated
once.`,
	Run: func(cmd *cobra.Command, args []string) {
		description, err := readDescription(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		envConfig := config.LoadEnvConfigOrDefault(config.GetEnvPath())
		p := pipeline.New(envConfig, prompts.NewStore(""))

		var confirm pipeline.ConfirmFunc
		if !generateYes {
			confirm = confirmRefined
		}

		result := p.Run(pipeline.RunInput{
			RawUserInput: description,
			ModelID:      generateModel,
			AutoCorrect:  generateCorrect,
		}, confirm)

		if result.Cancelled {
			fmt.Println("Cancelled.")
			return
		}
		if result.Error != "" && result.BpmnXml == "" {
			fmt.Fprintf(os.Stderr, "Error: %s\n", result.Error)
			os.Exit(1)
		}

		xml := result.BpmnXml
		if result.CorrectedBpmnXml != "" {
			xml = result.CorrectedBpmnXml
		}

		printVerdict("Validation", result.Validation)
		if result.Revalidation != nil {
			printVerdict("Re-validation", result.Revalidation)
		}
		if result.Error != "" {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", result.Error)
		}

		if generateOutput != "" {
			if err := os.WriteFile(generateOutput, []byte(xml), 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", generateOutput, err)
				os.Exit(1)
			}
			fmt.Printf("Wrote %s\n", generateOutput)
			return
		}
		fmt.Println(xml)
	},
}

// readDescription resolves the process description from the URL flag, the
// positional argument, or stdin, in that order.
func readDescription(args []string) (string, error) {
	if generateFromURL != "" {
		page, err := scraper.NewScraper().FetchDescription(generateFromURL)
		if err != nil {
			return "", fmt.Errorf("fetching %s: %w", generateFromURL, err)
		}
		return page.Description(), nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	info, err := os.Stdin.Stat()
	if err == nil && (info.Mode()&os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err == nil && strings.TrimSpace(string(data)) != "" {
			return string(data), nil
		}
	}

	fmt.Print("Describe the process: ")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func confirmRefined(refined string) (string, bool) {
	fmt.Println("\nRefined instructions:")
	fmt.Println(refined)

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("\nProceed? [y]es / [e]dit / [n]o: ")
		answer, err := reader.ReadString('\n')
		if err != nil {
			return "", false
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes", "":
			return refined, true
		case "n", "no":
			return "", false
		case "e", "edit":
			fmt.Println("Enter the edited instructions, end with an empty line:")
			var lines []string
			for {
				line, err := reader.ReadString('\n')
				if err != nil {
					break
				}
				line = strings.TrimRight(line, "\n")
				if line == "" {
					break
				}
				lines = append(lines, line)
			}
			if edited := strings.TrimSpace(strings.Join(lines, "\n")); edited != "" {
				return edited, true
			}
			fmt.Println("No edits entered, keeping the refined instructions.")
			return refined, true
		default:
			fmt.Println("Please answer y, e, or n.")
		}
	}
}

func printVerdict(label string, verdict *pipeline.Verdict) {
	if verdict == nil {
		return
	}
	if verdict.IsValid {
		fmt.Fprintf(os.Stderr, "%s: valid\n", label)
		return
	}
	fmt.Fprintf(os.Stderr, "%s: invalid\n", label)
	for _, issue := range verdict.Issues {
		fmt.Fprintf(os.Stderr, "  - %s\n", issue)
	}
	if verdict.Summary != "" {
		fmt.Fprintf(os.Stderr, "  %s\n", verdict.Summary)
	}
}

func init() {
	generateCmd.Flags().StringVarP(&generateModel, "model", "m", "", "model to use (provider/model-name)")
	generateCmd.Flags().BoolVar(&generateCorrect, "correct", false, "automatically correct an invalid diagram and re-validate")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "write the BPMN XML to a file instead of stdout")
	generateCmd.Flags().StringVar(&generateFromURL, "from-url", "", "fetch the process description from a web page")
	generateCmd.Flags().BoolVarP(&generateYes, "yes", "y", false, "accept the refined instructions without prompting")
	rootCmd.AddCommand(generateCmd)
}
