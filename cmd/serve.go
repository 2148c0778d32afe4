package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/ai"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/api"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/environment"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/filecheck"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/logging"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/messages"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/scraper"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/speech"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/store"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/uploads"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/version"
	"github.com/swathisivakumar15/Multimodal-NDE-Assistant/pkg/youtube"
)

var bannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("86")).
	Padding(0, 1)

// NewServeCommand creates the 'serve' command that runs the API server.
func NewServeCommand(fs afero.Fs, ctx context.Context, env *environment.Environment, logger *logging.Logger) *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s"},
		Short:   "Start the assistant API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return startServer(cmd, fs, ctx, env, logger)
		},
	}
}

func startServer(cmd *cobra.Command, fs afero.Fs, ctx context.Context, env *environment.Environment, logger *logging.Logger) error {
	db, err := store.Open(env.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	aiSvc, err := ai.New(env.OpenAIAPIKey, fs, logger)
	if err != nil {
		return err
	}

	checker := filecheck.NewChecker(fs, env.StrictImageValidation, env.ExtractMinChars, logger)
	uploadSvc := uploads.NewService(fs, env.UploadDir, checker, db, logger)

	server := &api.Server{
		Env:      env,
		Fs:       fs,
		Logger:   logger,
		Store:    db,
		Uploads:  uploadSvc,
		AI:       aiSvc,
		Videos:   youtube.NewClient(env.YouTubeAPIKey, logger),
		Scraper:  scraper.NewService(aiSvc, logger),
		Speech:   speech.NewService(env.UploadDir, logger),
		AudioDir: env.UploadDir,
	}

	fmt.Fprintln(cmd.OutOrStdout(), bannerStyle.Render(fmt.Sprintf("NDE Assistant %s listening on %s", version.Version, env.ListenAddr())))
	logger.Info(messages.MsgServerStarting, "addr", env.ListenAddr(), "upload_dir", env.UploadDir)

	srv := &http.Server{
		Addr:    env.ListenAddr(),
		Handler: server.Router(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
