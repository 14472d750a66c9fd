package cmd

import (
	"errors"
	"fmt"

	"data-reconciler/core/config"
	"data-reconciler/core/database"
	"data-reconciler/core/logger"
	"data-reconciler/core/report"
	"data-reconciler/feature/validation"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errMismatches makes the process exit non-zero when a run did not fully pass.
var errMismatches = errors.New("reconciliation found mismatches")

// validateCmd runs one profile from the command line.
var validateCmd = &cobra.Command{
	Use:   "validate <profile>",
	Short: "Reconcile one profile against the remote API",
	Long: `Loads the profile's local dataset, pages through the remote endpoint and compares
every remote record with the local record sharing its primary key.

Prints metrics by default. Failure and success workbooks are written to the
output directory, and uploaded to object storage with --upload.

Examples:
  # Validate every remote record
  validate assets

  # Validate the first 5000 records, 500 per page
  validate assets --records 5000 --page-size 500

  # Also save the full result as JSON
  validate assets --json`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Int("records", 0, "Number of remote records to validate (0 = all)")
	validateCmd.Flags().Int("page-size", 0, "Records per page (0 = profile or configured default)")
	validateCmd.Flags().Bool("json", false, "Save the detailed result as JSON")
	validateCmd.Flags().Bool("upload", false, "Upload reports to object storage")

	RootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	records, _ := cmd.Flags().GetInt("records")
	pageSize, _ := cmd.Flags().GetInt("page-size")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	upload, _ := cmd.Flags().GetBool("upload")
	if records < 0 || pageSize < 0 {
		return fmt.Errorf("--records and --page-size must not be negative")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logg.Sync()

	opts, err := validationOptions(cfg, logg, true)
	if err != nil {
		return err
	}
	defer database.Close(opts.DB)

	svc := validation.NewService(opts)
	res, err := svc.Run(ctx, validation.Request{
		Profile:       args[0],
		TargetRecords: records,
		PageSize:      pageSize,
		Upload:        upload,
	})
	if err != nil {
		return fmt.Errorf("validation of %s failed: %w", args[0], err)
	}

	fmt.Print(report.Summary(res.Profile, res.Aggregate))
	fmt.Printf("Execution Time: %s\n", res.Duration.String())
	for _, r := range res.Reports {
		fmt.Printf("%s report: %s (%d rows)\n", r.Kind, r.Path, r.Rows)
	}

	if jsonOutput {
		file, err := report.WriteJSON(cfg.Validation.OutputDir, *res)
		if err != nil {
			return fmt.Errorf("failed to save JSON file: %w", err)
		}
		fmt.Printf("\nDetailed JSON saved to: %s\n", file)
		logg.Info("Detailed JSON report saved", zap.String("file", file))
	}

	if !res.Aggregate.OverallPass {
		return fmt.Errorf("%w: %d of %d records failed", errMismatches, res.Aggregate.TotalFail, res.Aggregate.TotalValidated)
	}
	return nil
}
