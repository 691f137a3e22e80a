package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var importCmd = &cobra.Command{
	Use:   "import <results.csv>",
	Short: "Import applications from a legacy results CSV file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runImport(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, path string) {
	e := newEnv(cmd)
	defer e.close()

	f, err := os.Open(path)
	if err != nil {
		e.logger.Fatal("opening legacy file", zap.Error(err))
	}
	defer f.Close()

	s, err := e.openStore()
	if err != nil {
		e.logger.Fatal("opening database", zap.Error(err))
	}

	stats, err := s.ImportLegacyCSV(e.ctx, f)
	if err != nil {
		e.logger.Fatal("importing legacy applications", zap.String("path", path), zap.Error(err))
	}

	e.logger.Info("legacy applications imported",
		zap.Int("imported", stats.Imported),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("jobs_created", stats.JobsCreated),
	)
}
