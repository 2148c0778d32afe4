package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/environment"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/filecheck"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/logging"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/store"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/uploads"
)

// NewCleanupCommand creates the 'cleanup' command that removes expired uploads.
func NewCleanupCommand(fs afero.Fs, ctx context.Context, env *environment.Environment, logger *logging.Logger) *cobra.Command {
	var ageHours int

	cmd := &cobra.Command{
		Use:     "cleanup",
		Aliases: []string{"c"},
		Short:   "Remove uploaded files older than the retention threshold",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := store.Open(env.DatabasePath)
			if err != nil {
				return err
			}
			defer db.Close()

			checker := filecheck.NewChecker(fs, env.StrictImageValidation, env.ExtractMinChars, logger)
			svc := uploads.NewService(fs, env.UploadDir, checker, db, logger)

			age := time.Duration(ageHours) * time.Hour
			removed, err := svc.CleanupOlderThan(age)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired upload(s) older than %s\n", removed, age)
			return nil
		},
	}

	cmd.Flags().IntVar(&ageHours, "age", env.RetentionHours, "age threshold in hours")
	return cmd
}
