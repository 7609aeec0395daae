package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"playconsole/internal/cliconfig"
	"playconsole/internal/studio"
	"playconsole/internal/watcher"
)

var (
	validateImage      string
	validateBrand      string
	validateGuidelines []string
	validateVision     bool
	validateUser       string
	validateWatchDir   string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check an image against brand guidelines",
	Long: "Validates a single image, or with --watch validates every image " +
		"dropped into a folder as soon as it finishes writing.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSession()
		if err != nil {
			return err
		}
		if validateBrand == "" {
			return fmt.Errorf("--brand is required")
		}

		guidelines, err := readGuidelines(validateGuidelines)
		if err != nil {
			return err
		}
		client := newStudioClient(cfg)

		if validateWatchDir != "" {
			return watchAndValidate(cmd.Context(), client, cfg, guidelines)
		}

		if validateImage == "" {
			return fmt.Errorf("--image is required")
		}
		return validateOne(cmd.Context(), client, cfg, validateImage, guidelines)
	},
}

func validateOne(ctx context.Context, client *studio.Client, cfg *cliconfig.Config, path string, guidelines []string) error {
	image, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}
	user := validateUser
	if user == "" {
		user = cfg.Username
	}
	result, err := client.Validate(ctx, cfg.AccessToken, studio.ValidationRequest{
		Image:      image,
		Brand:      validateBrand,
		Vision:     validateVision,
		User:       user,
		Guidelines: guidelines,
	})
	if err != nil {
		return err
	}
	fmt.Printf("%s\n%s", path, studio.RenderValidation(result))
	return nil
}

func watchAndValidate(ctx context.Context, client *studio.Client, cfg *cliconfig.Config, guidelines []string) error {
	w, err := watcher.New(validateWatchDir, watcher.Options{}, func(path string) {
		if err := validateOne(ctx, client, cfg, path, guidelines); err != nil {
			fmt.Printf("Error validating %s: %v\n", path, err)
		}
	})
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Printf("Watching %s for images... Press Ctrl+C to stop.\n", validateWatchDir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}
	fmt.Println("\nStopping watcher...")
	return nil
}

func readGuidelines(paths []string) ([]string, error) {
	var pages []string
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("reading guidelines %s: %w", p, err)
		}
		pages = append(pages, string(data))
	}
	return pages, nil
}

func init() {
	validateCmd.Flags().StringVar(&validateImage, "image", "", "path to the image to validate")
	validateCmd.Flags().StringVar(&validateBrand, "brand", "", "brand whose guidelines apply")
	validateCmd.Flags().StringArrayVar(&validateGuidelines, "guidelines", nil, "guideline text file for text-based validation (repeatable)")
	validateCmd.Flags().BoolVar(&validateVision, "vision", false, "use vision-based validation")
	validateCmd.Flags().StringVar(&validateUser, "user", "", "user to attribute the validation to (defaults to the logged-in user)")
	validateCmd.Flags().StringVar(&validateWatchDir, "watch", "", "validate every image dropped into this directory")
}
