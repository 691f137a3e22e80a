package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/intake"
	"github.com/spigell/resume-screener/internal/report"
)

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract candidate profiles from résumé files without storing them",
	Run: func(cmd *cobra.Command, args []string) {
		runExtract(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().String("dir", "", "process every supported file in the directory (default is resume-dir from config when no files are given)")
	extractCmd.Flags().StringP("output", "o", "yaml", "output format: yaml or json")
}

func runExtract(cmd *cobra.Command, args []string) {
	e := newEnv(cmd)
	defer e.close()

	format, err := report.ParseFormat(cmd.Flag("output").Value.String())
	if err != nil {
		e.logger.Fatal("parsing output format", zap.Error(err))
	}

	svc, err := e.intake()
	if err != nil {
		e.logger.Fatal("preparing extraction", zap.Error(err))
	}

	var drafts []intake.Draft

	dir := cmd.Flag("dir").Value.String()
	if dir == "" && len(args) == 0 {
		dir = e.config.ResumeDir
	}

	if dir != "" {
		results, err := svc.ProcessDir(e.ctx, dir)
		if err != nil {
			e.logger.Fatal("processing résumé directory", zap.Error(err))
		}
		for _, r := range results {
			if r.Err == nil {
				drafts = append(drafts, r.Draft)
			}
		}
	}

	for _, path := range args {
		draft, err := svc.AnalyzeFile(path)
		if err != nil {
			e.logger.Warn("skipping résumé", zap.String("path", path), zap.Error(err))
			continue
		}
		drafts = append(drafts, draft)
	}

	e.logger.Info("profiles extracted", zap.Int("count", len(drafts)))

	if err := report.Write(os.Stdout, format, drafts); err != nil {
		e.logger.Fatal("writing profiles", zap.Error(err))
	}
}
