package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/interpretive-systems/studybuddy/internal/devserver"
)

func newDevServerCmd() *cobra.Command {
	var addr, dbPath, videoDir string
	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run a local backend for development",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, true)
			if err != nil {
				return err
			}
			logger := e.log.Named("devserver")
			defer logger.Sync()

			if addr == "" {
				addr = e.cfg.DevServer.Addr
			}
			if dbPath == "" {
				dbPath = e.cfg.DevServer.DatabasePath
			}
			if videoDir == "" {
				videoDir = e.cfg.DevServer.VideoDir
			}

			store, err := devserver.OpenStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if videoDir != "" {
				n, err := store.ImportVideos(cmd.Context(), videoDir, uuid.NewString)
				if err != nil {
					logger.Warn("video import failed", zap.String("dir", videoDir), zap.Error(err))
				} else {
					logger.Info("videos imported", zap.String("dir", videoDir), zap.Int("count", n))
				}
			}

			srv := devserver.NewServer(store, logger)
			errc := make(chan error, 1)
			go func() {
				errc <- srv.Start(addr)
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			defer signal.Stop(sigChan)
			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-sigChan:
			}

			logger.Info("Shutting down...")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Stop(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default from config)")
	cmd.Flags().StringVar(&videoDir, "video", "", "Directory of lecture recordings to import")
	return cmd
}
