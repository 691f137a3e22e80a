package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/report"
	"github.com/spigell/resume-screener/internal/scoring"
	"github.com/spigell/resume-screener/internal/screening"
	"github.com/spigell/resume-screener/internal/store"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank the applications for a job by score",
	Run: func(cmd *cobra.Command, _ []string) {
		runRank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().String("job", "", "id of the job to rank applications for")
	rankCmd.Flags().Float64("min-score", 0, "drop applications scoring below this value")
	rankCmd.Flags().String("suspicion", string(screening.SuspicionFlag), "what to do with suspicious applications: flag, only or exclude")
	rankCmd.Flags().StringSlice("exclude-status", []string{string(store.StatusRejected)}, "application statuses to leave out")
	rankCmd.Flags().Bool("saved", false, "only rank applications saved for later")
	rankCmd.Flags().StringP("output", "o", "text", "output format: text, yaml or json")

	rankCmd.MarkFlagRequired("job")
}

func runRank(cmd *cobra.Command) {
	e := newEnv(cmd)
	defer e.close()

	format, err := report.ParseFormat(cmd.Flag("output").Value.String())
	if err != nil {
		e.logger.Fatal("parsing output format", zap.Error(err))
	}

	flags := cmd.Flags()
	minScore, _ := flags.GetFloat64("min-score")
	rawStatuses, _ := flags.GetStringSlice("exclude-status")
	savedOnly, _ := flags.GetBool("saved")

	cfg := &screening.Config{
		MinimumScore: minScore,
		Suspicion:    screening.SuspicionMode(cmd.Flag("suspicion").Value.String()),
	}
	for _, raw := range rawStatuses {
		st, err := store.ParseStatus(raw)
		if err != nil {
			e.logger.Fatal("parsing statuses", zap.Error(err))
		}
		cfg.ExcludeStatuses = append(cfg.ExcludeStatuses, st)
	}

	s, err := e.openStore()
	if err != nil {
		e.logger.Fatal("opening database", zap.Error(err))
	}

	ranked, err := screenJob(e.ctx, e, s, cmd.Flag("job").Value.String(), cfg, store.Filter{SavedOnly: savedOnly})
	if err != nil {
		e.logger.Fatal("ranking applications", zap.Error(err))
	}

	if err := report.Write(os.Stdout, format, report.Rows(ranked)); err != nil {
		e.logger.Fatal("writing ranking", zap.Error(err))
	}
}

// screenJob runs the default screening pipeline over a job's applications and returns them ranked.
func screenJob(ctx context.Context, e *env, s *store.Store, jobID string, cfg *screening.Config, filter store.Filter) ([]*screening.Candidate, error) {
	job, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	filter.JobID = job.ID
	apps, err := s.ListApplications(ctx, filter)
	if err != nil {
		return nil, err
	}

	e.logger.Info("screening applications", zap.String("job", job.Title), zap.Int("count", len(apps)))

	deps := screening.Deps{
		Logger:    e.logger,
		Job:       &job,
		Scorer:    scoring.New(scoring.DefaultConfig()),
		Heuristic: e.heuristic(),
	}

	screened, err := screening.Run(ctx, cfg, deps, screening.Default(), screening.FromApplications(apps))
	if err != nil {
		return nil, err
	}
	return screened.Ranked(), nil
}
