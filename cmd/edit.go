package cmd

import (
	"github.com/spf13/cobra"

	"github.com/soocke/parking-watch-go/ui/model"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Mark parking spaces on the reference image",
	Long: `Shows the reference image with every saved region outlined.
Left click adds a region at the cursor, right click removes the first region
under the cursor. The list is saved after every change. Press the quit key or
close the window to exit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd.Context(), model.ModeEdit)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
