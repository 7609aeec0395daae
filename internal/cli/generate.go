package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"playconsole/internal/studio"
)

var (
	generateTheme    string
	generateStyle    string
	generateAssets   []string
	generateTemplate string
	generateFollow   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Submit a playable generation job",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSession()
		if err != nil {
			return err
		}
		if generateTheme == "" || generateStyle == "" {
			return fmt.Errorf("--theme and --style are required")
		}

		var assets []studio.AssetRef
		for _, id := range generateAssets {
			assets = append(assets, studio.AssetRef{ID: id})
		}

		client := newStudioClient(cfg)
		handle, err := client.Submit(cmd.Context(), cfg.AccessToken, studio.PlayableSpec{
			Theme:    generateTheme,
			Style:    generateStyle,
			Assets:   assets,
			Template: generateTemplate,
		})
		if err != nil {
			return submissionError(err)
		}
		rememberSubmission(cfg, handle)
		fmt.Printf("Submitted job %s\n", handle.JobID)

		if !generateFollow {
			return nil
		}
		return followJob(cmd.Context(), client, cfg, handle)
	},
}

// submissionError surfaces the raw upstream body when one was captured, so
// quota and validation messages reach the user verbatim.
func submissionError(err error) error {
	if body, ok := studio.ResponseBody(err); ok && body != "" {
		return fmt.Errorf("submission rejected: %s", body)
	}
	return err
}

func init() {
	generateCmd.Flags().StringVar(&generateTheme, "theme", "", "content theme, e.g. 'wild west'")
	generateCmd.Flags().StringVar(&generateStyle, "style", "", "art style, e.g. 'cartoon'")
	generateCmd.Flags().StringArrayVar(&generateAssets, "asset", nil, "asset id to include (repeatable)")
	generateCmd.Flags().StringVar(&generateTemplate, "template", "", "template name")
	generateCmd.Flags().BoolVarP(&generateFollow, "follow", "f", false, "poll until the job finishes and render the result")
}
