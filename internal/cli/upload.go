package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/interpretive-systems/studybuddy/internal/app"
	"github.com/interpretive-systems/studybuddy/internal/notify"
	"github.com/interpretive-systems/studybuddy/internal/types"
	"github.com/interpretive-systems/studybuddy/internal/uploadq"
)

func newUploadCmd() *cobra.Command {
	var courseID string
	cmd := &cobra.Command{
		Use:   "upload --course <id> FILE...",
		Short: "Upload course materials without opening the UI",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, true)
			if err != nil {
				return err
			}
			defer e.log.Sync()

			files, err := uploadq.LoadFiles(args...)
			if err != nil {
				return err
			}
			opts := e.controllerOptions(e.client(), printer(cmd.ErrOrStderr()))
			opts.Courses = []types.Course{{ID: courseID, Name: courseID, Content: []types.Unit{}}}
			ctrl := app.New(opts)
			defer ctrl.Close()
			return uploadFiles(ctrl, cmd.OutOrStdout(), files)
		},
	}
	cmd.Flags().StringVar(&courseID, "course", "", "Course id to attach the files to")
	_ = cmd.MarkFlagRequired("course")
	return cmd
}

// uploadFiles runs the upload pipeline for the current course. Non-PDF files
// are dropped by the queue before anything is sent.
func uploadFiles(ctrl *app.Controller, out io.Writer, files []types.UploadedFile) error {
	ctrl.EnqueueFiles(files...)
	if ctrl.Queue().Len() == 0 {
		return fmt.Errorf("no PDF files to upload")
	}
	res, ok := ctrl.UploadMaterials()
	if !ok {
		return fmt.Errorf("upload did not start")
	}
	for _, o := range res.Outcomes {
		if o.Err != nil {
			fmt.Fprintf(out, "FAIL  %s: %v\n", o.File.Name, o.Err)
			continue
		}
		fmt.Fprintf(out, "OK    %s -> %s (%s)\n", o.File.Name, o.Doc.DocumentID, o.Doc.Status)
	}
	if failed := len(res.Failed()); failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(res.Outcomes))
	}
	return nil
}

// printer writes notifications as plain lines.
func printer(w io.Writer) notify.Notifier {
	return notify.Func(func(n notify.Notification) {
		prefix := "info"
		if n.Variant == notify.VariantDestructive {
			prefix = "error"
		}
		fmt.Fprintf(w, "%s: %s: %s\n", prefix, n.Title, n.Description)
	})
}
