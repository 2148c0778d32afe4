package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/logging"
)

const envFileName = ".env"

// NewInitCommand creates the 'init' command that writes a starter .env file.
func NewInitCommand(fs afero.Fs, logger *logging.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Interactively create a .env configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if exists, _ := afero.Exists(fs, envFileName); exists {
				var overwrite bool
				if err := huh.Run(
					huh.NewConfirm().
						Title("A .env file already exists. Overwrite it?").
						Value(&overwrite),
				); err != nil {
					return fmt.Errorf("could not read confirmation: %w", err)
				}
				if !overwrite {
					return nil
				}
			}

			var openAIKey, youtubeKey, port string
			form := huh.NewForm(
				huh.NewGroup(
					huh.NewInput().
						Title("OpenAI API key").
						Description("Required for chat, image analysis, generation and transcription.").
						EchoMode(huh.EchoModePassword).
						Value(&openAIKey),
					huh.NewInput().
						Title("YouTube API key").
						Description("Optional; leave empty to disable video search.").
						EchoMode(huh.EchoModePassword).
						Value(&youtubeKey),
					huh.NewInput().
						Title("Server port").
						Value(&port).
						Placeholder("5000"),
				),
			)
			if err := form.Run(); err != nil {
				return fmt.Errorf("configuration aborted: %w", err)
			}

			if port == "" {
				port = "5000"
			}

			content := fmt.Sprintf("OPENAI_API_KEY=%s\nYOUTUBE_API_KEY=%s\nSERVER_PORT=%s\n", openAIKey, youtubeKey, port)
			if err := afero.WriteFile(fs, envFileName, []byte(content), 0o600); err != nil {
				return fmt.Errorf("failed to write %s: %w", envFileName, err)
			}

			logger.Info("configuration written", "file", envFileName)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", envFileName)
			return nil
		},
	}
}
