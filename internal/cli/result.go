package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"playconsole/internal/studio"
)

var resultLocation string

var resultCmd = &cobra.Command{
	Use:   "result",
	Short: "Fetch and render a finished job's result bundle",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSession()
		if err != nil {
			return err
		}
		location := resultLocation
		if location == "" {
			location = cfg.LastJobURL
		}
		if location == "" {
			return fmt.Errorf("no result location known, pass --location or submit a job first")
		}

		client := newStudioClient(cfg)
		bundle, err := client.FetchResult(cmd.Context(), location)
		if err != nil {
			return err
		}
		fmt.Print(studio.RenderText(bundle))
		return nil
	},
}

func init() {
	resultCmd.Flags().StringVar(&resultLocation, "location", "", "result bundle URL (defaults to the last submitted job's)")
}
