package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pagecap/pagecap/internal/model"
	"github.com/pagecap/pagecap/internal/output"
	"github.com/pagecap/pagecap/internal/platform"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List titled windows currently on screen",
	Long: `List every titled window with app name, PID, title, and bounds.
Use this to find the title substring to pass to 'run --window'.`,
	RunE: runWindows,
}

func init() {
	rootCmd.AddCommand(windowsCmd)
	windowsCmd.Flags().String("title", "", "Filter by title substring (case-insensitive)")
}

func runWindows(cmd *cobra.Command, args []string) error {
	provider, err := platform.NewProvider()
	if err != nil {
		return err
	}

	windows, err := provider.Finder.ListWindows()
	if err != nil {
		return err
	}

	if filter, _ := cmd.Flags().GetString("title"); filter != "" {
		needle := strings.ToLower(filter)
		filtered := make([]model.Window, 0, len(windows))
		for _, w := range windows {
			if strings.Contains(strings.ToLower(w.Title), needle) {
				filtered = append(filtered, w)
			}
		}
		windows = filtered
	}

	return output.Print(output.WindowsResult{
		TS:      time.Now().Unix(),
		Windows: windows,
	})
}
