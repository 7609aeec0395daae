package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"playconsole/internal/studio"
)

var (
	statusJobID   string
	statusJobType string
	statusFollow  bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current phase of a job",
	Long:  "Shows the phase of a job, defaulting to the most recently submitted one.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSession()
		if err != nil {
			return err
		}
		jobID := statusJobID
		resultURL := ""
		if jobID == "" {
			jobID = cfg.LastJobID
			resultURL = cfg.LastJobURL
		}
		if jobID == "" {
			return fmt.Errorf("no job to inspect, pass --job or submit one first")
		}

		client := newStudioClient(cfg)
		query := studio.StatusQuery{JobType: statusJobType}

		if statusFollow {
			handle := studio.JobHandle{JobID: jobID, ResultLocation: resultURL}
			poller := studio.NewPoller(client, cfg.AccessToken, handle, studio.PollerOptions{Query: query})
			_, err := poller.Run(cmd.Context(), func(status studio.JobStatus) {
				fmt.Printf("%s  %d%%\n", studio.PhaseLabel(status.Phase), status.Progress)
			})
			if err != nil {
				return err
			}
			fmt.Println("Done. Run 'playctl result' to render the bundle.")
			return nil
		}

		status, err := client.Status(cmd.Context(), cfg.AccessToken, jobID, query)
		if err != nil {
			return err
		}
		fmt.Printf("Job %s: %s  %d%%\n", jobID, studio.PhaseLabel(status.Phase), status.Progress)
		if status.Message != "" {
			fmt.Printf("  %s\n", status.Message)
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusJobID, "job", "", "job id (defaults to the last submitted job)")
	statusCmd.Flags().StringVar(&statusJobType, "job-type", "", "job type discriminator, when the endpoint variant needs one")
	statusCmd.Flags().BoolVarP(&statusFollow, "follow", "f", false, "poll until the job reaches a terminal phase")
}
