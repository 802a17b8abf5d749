package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pagecap/pagecap/internal/capture"
	"github.com/pagecap/pagecap/internal/output"
)

var framesCmd = &cobra.Command{
	Use:   "frames",
	Short: "Inspect captured frames in the working directory",
	Long: `Report the state of the working directory: how many valid frames exist,
which files are truncated, and the page a resumed run would continue from.`,
	RunE: runFrames,
}

func init() {
	rootCmd.AddCommand(framesCmd)
	framesCmd.Flags().String("workdir", capture.DefaultWorkDir, "Directory holding frame files")
	framesCmd.Flags().Int64("min-bytes", capture.DefaultMinFrameBytes, "Minimum valid frame size in bytes")
}

func runFrames(cmd *cobra.Command, args []string) error {
	workdir, _ := cmd.Flags().GetString("workdir")
	minBytes, _ := cmd.Flags().GetInt64("min-bytes")

	store := capture.NewStore(workdir, minBytes)
	valid, invalid, err := store.Scan()
	if err != nil {
		return err
	}
	resume, err := store.ResumePage()
	if err != nil {
		return err
	}

	return output.Print(output.FramesResult{
		Dir:        workdir,
		Valid:      len(valid),
		Invalid:    invalid,
		ResumePage: resume,
	})
}
