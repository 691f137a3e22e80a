package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/report"
	"github.com/spigell/resume-screener/internal/store"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage job postings",
}

var jobsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Post a new job",
	Run: func(cmd *cobra.Command, _ []string) {
		runJobsAdd(cmd)
	},
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posted jobs, newest first",
	Run: func(cmd *cobra.Command, _ []string) {
		runJobsList(cmd)
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsAddCmd, jobsListCmd)

	f := jobsAddCmd.Flags()
	f.String("title", "", "job title")
	f.String("company", "", "company name")
	f.String("location", "", "job location")
	f.String("type", "", "job type: Full-time, Part-time, Contract, Internship or Remote")
	f.String("salary", "", "salary range")
	f.String("deadline", "", "application deadline (YYYY-MM-DD)")
	f.String("description", "", "job description")
	f.String("requirements", "", "required skills separated by commas or semicolons")

	jobsAddCmd.MarkFlagRequired("title")
	jobsAddCmd.MarkFlagRequired("company")

	jobsListCmd.Flags().StringP("output", "o", "yaml", "output format: yaml or json")
}

func runJobsAdd(cmd *cobra.Command) {
	e := newEnv(cmd)
	defer e.close()

	s, err := e.openStore()
	if err != nil {
		e.logger.Fatal("opening database", zap.Error(err))
	}

	flag := func(name string) string { return cmd.Flag(name).Value.String() }

	job, err := s.CreateJob(e.ctx, store.Job{
		Title:        flag("title"),
		Company:      flag("company"),
		Location:     flag("location"),
		Type:         flag("type"),
		Salary:       flag("salary"),
		Deadline:     flag("deadline"),
		Description:  flag("description"),
		Requirements: flag("requirements"),
	})
	if err != nil {
		e.logger.Fatal("posting job", zap.Error(err))
	}

	e.logger.Info("job posted",
		zap.String("job_id", job.ID),
		zap.Strings("requirements", job.Requirement().Skills()),
	)
}

func runJobsList(cmd *cobra.Command) {
	e := newEnv(cmd)
	defer e.close()

	format, err := report.ParseFormat(cmd.Flag("output").Value.String())
	if err != nil {
		e.logger.Fatal("parsing output format", zap.Error(err))
	}

	s, err := e.openStore()
	if err != nil {
		e.logger.Fatal("opening database", zap.Error(err))
	}

	jobs, err := s.ListJobs(e.ctx)
	if err != nil {
		e.logger.Fatal("listing jobs", zap.Error(err))
	}

	if err := report.Write(os.Stdout, format, jobs); err != nil {
		e.logger.Fatal("writing jobs", zap.Error(err))
	}
}
