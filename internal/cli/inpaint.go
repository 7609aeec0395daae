package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"playconsole/internal/studio"
)

var (
	inpaintImage  string
	inpaintMask   string
	inpaintPrompt string
	inpaintSize   string
	inpaintFollow bool
)

var inpaintCmd = &cobra.Command{
	Use:   "inpaint",
	Short: "Submit a masked image edit job",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSession()
		if err != nil {
			return err
		}
		if inpaintImage == "" || inpaintMask == "" {
			return fmt.Errorf("--image and --mask are required")
		}
		image, err := os.ReadFile(inpaintImage)
		if err != nil {
			return fmt.Errorf("reading image: %w", err)
		}
		mask, err := os.ReadFile(inpaintMask)
		if err != nil {
			return fmt.Errorf("reading mask: %w", err)
		}

		client := newStudioClient(cfg)
		handle, err := client.Submit(cmd.Context(), cfg.AccessToken, studio.InpaintSpec{
			Image:  image,
			Prompt: inpaintPrompt,
			Mask:   mask,
			Size:   inpaintSize,
		})
		if err != nil {
			return submissionError(err)
		}
		rememberSubmission(cfg, handle)
		fmt.Printf("Submitted job %s\n", handle.JobID)

		if !inpaintFollow {
			return nil
		}
		return followJob(cmd.Context(), client, cfg, handle)
	},
}

func init() {
	inpaintCmd.Flags().StringVar(&inpaintImage, "image", "", "path to the source image")
	inpaintCmd.Flags().StringVar(&inpaintMask, "mask", "", "path to the mask image")
	inpaintCmd.Flags().StringVar(&inpaintPrompt, "prompt", "", "what to paint into the masked region")
	inpaintCmd.Flags().StringVar(&inpaintSize, "size", "", "output size, e.g. 1024x1024")
	inpaintCmd.Flags().BoolVarP(&inpaintFollow, "follow", "f", false, "poll until the job finishes and render the result")
}
