package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"habla-jungla/cmd/jungla/cmd/cmdutil"
	"habla-jungla/internal/app"
	"habla-jungla/internal/app/audio"
)

var (
	host            string
	port            int
	shutdownTimeout time.Duration
)

func init() {
	Cmd.Flags().StringVar(&host, "host", "", "listen host, overrides server.host")
	Cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port, overrides server.port")
	Cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 15*time.Second, "time allowed for in-flight requests on shutdown")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the translation HTTP service",
	Long: `Run the translation HTTP service.

The models are loaded once at startup. The service exposes the recorder page
at /, the legacy /process_audio endpoint, the /api/v1 API, /health and
/metrics. It stops gracefully on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, logger, err := cmdutil.Setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if host != "" {
			settings.Server.Host = host
		}
		if port != 0 {
			settings.Server.Port = port
		}

		if !audio.FFmpegAvailable(settings.Audio.FFmpegPath) {
			logger.Warn("ffmpeg not found, only WAV, MP3 and raw PCM uploads will decode; recorder page uploads (webm, ogg) will be rejected",
				zap.String("ffmpeg_path", settings.Audio.FFmpegPath))
		}

		srv, err := app.InitializeServer(settings, logger)
		if err != nil {
			return err
		}
		if err := srv.Start(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
		logger.Info("Received shutdown signal", zap.Duration("timeout", shutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
