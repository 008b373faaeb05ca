package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/interpretive-systems/studybuddy/internal/app"
	"github.com/interpretive-systems/studybuddy/internal/notify"
	"github.com/interpretive-systems/studybuddy/internal/prefs"
	"github.com/interpretive-systems/studybuddy/internal/tui"
	"github.com/interpretive-systems/studybuddy/internal/types"
)

const toastLimit = 5

func newOpenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open the study assistant",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, false)
			if err != nil {
				return err
			}
			defer e.log.Sync()

			client := e.client()
			toasts := notify.NewCenter(toastLimit, tui.ToastTTL)
			opts := e.controllerOptions(client, toasts)
			if e.cfg.UI.SeedSampleCourses {
				opts.Courses = types.SampleCourses()
			}

			var prefsPath string
			if e.cfg.UI.RememberLayout {
				prefsPath = prefs.DefaultPath()
			}
			ctrl := app.New(opts)
			applyPrefs(ctrl, prefsPath, e.log)

			tmp, err := os.MkdirTemp("", "studybuddy-slides-")
			if err != nil {
				return err
			}
			defer os.RemoveAll(tmp)

			if dir := e.cfg.UI.DropDir; dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					e.log.Warn("create drop folder", zap.String("dir", dir), zap.Error(err))
				}
			}

			e.log.Info("starting", zap.String("api", e.cfg.API.BaseURL), zap.Int("courses", len(opts.Courses)))
			return tui.Run(ctrl, tui.Options{
				Documents: client,
				Videos:    client,
				Toasts:    toasts,
				DropDir:   e.cfg.UI.DropDir,
				PrefsPath: prefsPath,
				TempDir:   filepath.Clean(tmp),
				Logger:    e.log.Named("tui"),
			})
		},
	}
	return cmd
}

// applyPrefs restores persisted theme and layout over the configured ones.
func applyPrefs(ctrl *app.Controller, path string, log *zap.Logger) {
	if path == "" {
		return
	}
	p := prefs.Load(path)
	if p.DarkSet {
		ctrl.SetDarkMode(p.Dark)
	}
	if p.PanelSet {
		ctrl.Panel().SetWidth(p.PanelWidth)
	}
	if p.LayoutSet {
		ctrl.SetLeftCollapsed(p.LeftCollapsed)
		ctrl.SetRightCollapsed(p.RightCollapsed)
	}
	log.Debug("preferences restored", zap.String("path", path), zap.Bool("dark", ctrl.DarkMode()), zap.Int("panel", ctrl.Panel().Width()))
}
