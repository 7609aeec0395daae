package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"playconsole/internal/studio"
)

var (
	variationImage  string
	variationPrompt string
	variationRefs   []string
	variationFollow bool
)

var variationCmd = &cobra.Command{
	Use:   "variation",
	Short: "Submit an image variation job",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSession()
		if err != nil {
			return err
		}
		if variationImage == "" {
			return fmt.Errorf("--image is required")
		}
		image, err := os.ReadFile(variationImage)
		if err != nil {
			return fmt.Errorf("reading image: %w", err)
		}

		client := newStudioClient(cfg)
		handle, err := client.Submit(cmd.Context(), cfg.AccessToken, studio.VariationSpec{
			Image:           image,
			Prompt:          variationPrompt,
			ReferenceImages: variationRefs,
		})
		if err != nil {
			return submissionError(err)
		}
		rememberSubmission(cfg, handle)
		fmt.Printf("Submitted job %s\n", handle.JobID)

		if !variationFollow {
			return nil
		}
		return followJob(cmd.Context(), client, cfg, handle)
	},
}

func init() {
	variationCmd.Flags().StringVar(&variationImage, "image", "", "path to the source image")
	variationCmd.Flags().StringVar(&variationPrompt, "prompt", "", "guidance prompt for the variations")
	variationCmd.Flags().StringArrayVar(&variationRefs, "reference", nil, "reference image URL (repeatable)")
	variationCmd.Flags().BoolVarP(&variationFollow, "follow", "f", false, "poll until the job finishes and render the result")
}
