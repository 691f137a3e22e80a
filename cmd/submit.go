package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/store"
)

var submitCmd = &cobra.Command{
	Use:   "submit <file>",
	Short: "Apply to a job with a résumé file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runSubmit(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(submitCmd)

	submitCmd.Flags().String("job", "", "id of the job to apply to")
	submitCmd.Flags().BoolP("yes", "y", false, "submit the extracted profile without reviewing it")

	submitCmd.MarkFlagRequired("job")
}

func runSubmit(cmd *cobra.Command, path string) {
	e := newEnv(cmd)
	defer e.close()

	jobID := cmd.Flag("job").Value.String()

	svc, err := e.intake()
	if err != nil {
		e.logger.Fatal("preparing intake", zap.Error(err))
	}

	s, err := e.openStore()
	if err != nil {
		e.logger.Fatal("opening database", zap.Error(err))
	}

	job, err := s.GetJob(e.ctx, jobID)
	if err != nil {
		e.logger.Fatal("getting job", zap.String("job_id", jobID), zap.Error(err))
	}

	draft, err := svc.AnalyzeFile(path)
	if err != nil {
		e.logger.Fatal("analyzing résumé", zap.String("path", path), zap.Error(err))
	}

	e.logger.Info("applying", zap.String("job", job.Title), zap.String("company", job.Company))

	if cmd.Flag("yes").Value.String() == "false" {
		draft.Profile, err = editProfile(draft.Profile)
		if errors.Is(err, errExit) {
			e.logger.Info("exiting", zap.String("reason", "application cancelled"))
			return
		}
		if err != nil {
			e.logger.Fatal("reviewing profile", zap.Error(err))
		}
	}

	app, err := svc.Submit(e.ctx, job.ID, draft)
	if errors.Is(err, store.ErrDuplicateApplication) {
		e.logger.Warn("already applied", zap.String("email", draft.Profile.Email), zap.String("job_id", job.ID))
		return
	}
	if err != nil {
		e.logger.Fatal("submitting application", zap.Error(err))
	}

	logger.WithApplicationFields(e.logger, job.ID, app.ID).Info("application submitted",
		zap.String("name", app.Profile.Name),
		zap.String("status", string(app.Status)),
	)
}
