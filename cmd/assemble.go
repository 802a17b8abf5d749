package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagecap/pagecap/internal/assemble"
	"github.com/pagecap/pagecap/internal/capture"
	"github.com/pagecap/pagecap/internal/output"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Assemble captured frames into a PDF",
	Long: `Assemble the frame files in the working directory into a single PDF,
without running a capture. Useful after a stopped or interrupted run.

Truncated or undersized frames are skipped; page order follows the frame
numbering.`,
	RunE: runAssemble,
}

func init() {
	rootCmd.AddCommand(assembleCmd)
	assembleCmd.Flags().String("workdir", capture.DefaultWorkDir, "Directory holding frame files")
	assembleCmd.Flags().String("output", capture.DefaultOutput, "Output PDF path")
	assembleCmd.Flags().Int64("min-bytes", capture.DefaultMinFrameBytes, "Minimum valid frame size in bytes")
}

func runAssemble(cmd *cobra.Command, args []string) error {
	workdir, _ := cmd.Flags().GetString("workdir")
	out, _ := cmd.Flags().GetString("output")
	minBytes, _ := cmd.Flags().GetInt64("min-bytes")

	store := capture.NewStore(workdir, minBytes)
	valid, invalid, err := store.Scan()
	if err != nil {
		return err
	}

	pages, err := assemble.Document(valid, out, minBytes)
	if err != nil {
		if errors.Is(err, assemble.ErrNoFrames) {
			return fmt.Errorf("no valid frames in %s", workdir)
		}
		return err
	}

	return output.Print(output.AssembleResult{
		Output:  out,
		Pages:   pages,
		Skipped: len(invalid),
	})
}
