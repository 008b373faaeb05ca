// Package cli wires configuration, logging and the backend client into the
// studybuddy commands.
package cli

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/interpretive-systems/studybuddy/internal/api"
	"github.com/interpretive-systems/studybuddy/internal/app"
	"github.com/interpretive-systems/studybuddy/internal/chat"
	"github.com/interpretive-systems/studybuddy/internal/config"
	"github.com/interpretive-systems/studybuddy/internal/logging"
	"github.com/interpretive-systems/studybuddy/internal/notify"
	"github.com/interpretive-systems/studybuddy/internal/resize"
)

func Execute() error {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		return fmt.Errorf("execute: %w", err)
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "studybuddy",
		Short:        "Terminal study assistant for your courses",
		Long:         "StudyBuddy: organise courses, upload lecture materials and ask questions about them from the terminal.",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringP("config", "c", config.DefaultPath(), "Path to config file")
	root.PersistentFlags().Bool("debug", false, "Enable debug logging")
	root.PersistentFlags().String("env-file", ".env", "Optional .env file with endpoint overrides")

	root.AddCommand(newOpenCmd())
	root.AddCommand(newUploadCmd())
	root.AddCommand(newDevServerCmd())
	return root
}

// env is what every command starts from.
type env struct {
	cfg *config.Config
	log *zap.Logger
}

// loadEnv reads the config file, the .env file and environment overrides,
// then builds the logger. With toStderr the logger ignores log.path.
func loadEnv(cmd *cobra.Command, toStderr bool) (*env, error) {
	root := cmd.Root()
	if err := config.LoadDotEnv(mustGetStringFlag(root, "env-file")); err != nil {
		return nil, err
	}
	cfg, err := config.LoadOptional(mustGetStringFlag(root, "config"))
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	debug, _ := root.PersistentFlags().GetBool("debug")
	debug = debug || cfg.Debug

	path := cfg.Log.Path
	if toStderr {
		path = ""
	}
	log, err := logging.New(debug, path)
	if err != nil {
		return nil, err
	}
	log.Debug("config loaded",
		zap.String("api", cfg.API.BaseURL),
		zap.String("chat_mode", cfg.Chat.Mode),
		zap.Bool("debug", debug),
	)
	return &env{cfg: cfg, log: log}, nil
}

func (e *env) client() *api.Client {
	return api.New(api.Endpoints{
		API:     e.cfg.API.BaseURL,
		Video:   e.cfg.API.VideoURL,
		Backend: e.cfg.API.BackendURL,
	},
		api.WithHTTPClient(&http.Client{Timeout: e.cfg.API.Timeout}),
		api.WithLogger(e.log.Named("api")),
	)
}

func (e *env) responder(client *api.Client) chat.Responder {
	if e.cfg.Chat.Mode == config.ChatRemote {
		return chat.NewRemoteResponder(client)
	}
	return chat.NewMockResponder()
}

func (e *env) controllerOptions(client *api.Client, n notify.Notifier) app.Options {
	return app.Options{
		Backend:           client,
		Responder:         e.responder(client),
		Notifier:          n,
		Logger:            e.log.Named("app"),
		UploadConcurrency: e.cfg.Upload.Concurrency,
		APITimeout:        e.cfg.API.Timeout,
		ChatTimeout:       e.cfg.Chat.Timeout,
		Panel: resize.Bounds{
			Min:     e.cfg.UI.PanelMin,
			Max:     e.cfg.UI.PanelMax,
			Default: e.cfg.UI.PanelWidth,
		},
		Dark: e.cfg.UI.Dark,
	}
}

func mustGetStringFlag(cmd *cobra.Command, name string) string {
	v, err := cmd.PersistentFlags().GetString(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "flag error:", err)
		os.Exit(2)
	}
	return v
}
