// Package cmd wires the CLI: serving the API, sweeping expired uploads and
// bootstrapping a local configuration.
package cmd

import (
	"context"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/environment"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/logging"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/version"
)

// NewRootCommand returns the root command with all subcommands attached.
func NewRootCommand(fs afero.Fs, ctx context.Context, env *environment.Environment, logger *logging.Logger) *cobra.Command {
	cobra.EnableCommandSorting = false
	rootCmd := &cobra.Command{
		Use:   "nde-assistant",
		Short: "Multimodal conversational assistant for NDE engineering.",
		Long: `NDE Assistant is a conversational web assistant for non-destructive evaluation
engineering. It answers method and standards questions, analyzes uploaded
inspection documents, images and audio, searches educational videos, digests
web content and speaks its answers aloud.`,
		Version: version.Version,
	}

	rootCmd.AddCommand(NewServeCommand(fs, ctx, env, logger))
	rootCmd.AddCommand(NewCleanupCommand(fs, ctx, env, logger))
	rootCmd.AddCommand(NewInitCommand(fs, logger))

	return rootCmd
}
