package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/candidate"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Inspect and grow the skill vocabulary",
}

var vocabListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every known skill",
	Run: func(cmd *cobra.Command, _ []string) {
		runVocabList(cmd)
	},
}

var vocabAddCmd = &cobra.Command{
	Use:   "add <skill>[,<skill>...]",
	Short: "Add skills to the vocabulary",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runVocabAdd(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(vocabCmd)
	vocabCmd.AddCommand(vocabListCmd, vocabAddCmd)
}

func runVocabList(cmd *cobra.Command) {
	e := newEnv(cmd)
	defer e.close()

	vocab, err := e.vocabulary().Load()
	if err != nil {
		e.logger.Fatal("loading vocabulary", zap.Error(err))
	}

	for _, skill := range vocab.Items() {
		fmt.Println(skill)
	}
}

func runVocabAdd(cmd *cobra.Command, args []string) {
	e := newEnv(cmd)
	defer e.close()

	var skills []string
	for _, arg := range args {
		skills = append(skills, candidate.ParseSkills(arg)...)
	}

	added, err := e.vocabulary().Merge(skills...)
	if err != nil {
		e.logger.Fatal("updating vocabulary", zap.Error(err))
	}

	e.logger.Info("vocabulary updated", zap.Strings("added", added), zap.Int("skipped", len(skills)-len(added)))
}
