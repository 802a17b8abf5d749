package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pagecap/pagecap/internal/output"
	"github.com/pagecap/pagecap/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "pagecap",
	Short: "Capture document pages from a desktop viewer into a PDF",
	Long: "pagecap drives a page-at-a-time desktop document viewer: it locates the viewer\n" +
		"window, screenshots each page, clicks the next-page control, and assembles the\n" +
		"captured frames into a single PDF.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		switch format {
		case "yaml", "":
			output.OutputFormat = output.FormatYAML
		case "json":
			output.OutputFormat = output.FormatJSON
		default:
			return fmt.Errorf("unsupported format: %s (use yaml or json)", format)
		}
		pretty, _ := rootCmd.PersistentFlags().GetBool("pretty")
		output.PrettyOutput = pretty
		return nil
	}
}
