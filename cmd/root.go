package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/document"
	"github.com/spigell/resume-screener/internal/extract"
	"github.com/spigell/resume-screener/internal/intake"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/skills"
	"github.com/spigell/resume-screener/internal/store"
	"github.com/spigell/resume-screener/internal/suspicion"
)

const (
	app       = "resume-screener"
	envPrefix = "RESUME_SCREENER"
)

type Config struct {
	Database       string            `mapstructure:"database" validate:"required"`
	VocabularyFile string            `mapstructure:"vocabulary-file" validate:"required"`
	ResumeDir      string            `mapstructure:"resume-dir"`
	Extraction     *ExtractionConfig `mapstructure:"extraction" validate:"required"`
	Suspicion      *suspicion.Config `mapstructure:"suspicion" validate:"required"`
	Serve          *ServeConfig      `mapstructure:"serve" validate:"required"`
}

type ExtractionConfig struct {
	NameStrategy   string `mapstructure:"name-strategy" validate:"omitempty,oneof=labeled first-line"`
	SkillMode      string `mapstructure:"skill-mode" validate:"omitempty,oneof=exact fuzzy"`
	FuzzyThreshold int    `mapstructure:"fuzzy-threshold" validate:"gte=0,lte=100"`
	MaxPages       int    `mapstructure:"max-pages" validate:"gte=0"`
	MaxFileSize    int64  `mapstructure:"max-file-size" validate:"gte=0"`
	Workers        int    `mapstructure:"workers" validate:"gte=0"`
}

type ServeConfig struct {
	Addr      string `mapstructure:"addr" validate:"required"`
	Token     string `mapstructure:"token" json:"-"`
	TokenFile string `mapstructure:"token-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-screener extracts candidate profiles from résumés, scores them against jobs and flags suspicious ones",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-screener.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults()
}

func setDefaults() {
	viper.SetDefault("database", "data/applications.db")
	viper.SetDefault("vocabulary-file", "data/skills.json")
	viper.SetDefault("resume-dir", "resumes")

	viper.SetDefault("extraction.name-strategy", string(extract.NameLabeledOrCapitalized))
	viper.SetDefault("extraction.skill-mode", string(skills.ModeFuzzy))
	viper.SetDefault("extraction.fuzzy-threshold", skills.DefaultThreshold)
	viper.SetDefault("extraction.max-pages", document.DefaultMaxPages)
	viper.SetDefault("extraction.max-file-size", document.DefaultMaxFileSize)
	viper.SetDefault("extraction.workers", intake.DefaultWorkers)

	viper.SetDefault("suspicion.max-skills", suspicion.DefaultMaxSkills)
	viper.SetDefault("suspicion.buzzwords", suspicion.DefaultBuzzwords())

	viper.SetDefault("serve.addr", ":8080")
}

func initConfig() {
	// Values from a local .env file only fill variables that are not set already.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.BindEnv("serve.token-file", envPrefix+"_TOKEN_FILE"); err != nil {
		log.Fatalf("binding %s_TOKEN_FILE environment variable: %v", envPrefix, err)
	}
	if err := viper.BindEnv("serve.token", envPrefix+"_TOKEN"); err != nil {
		log.Fatalf("binding %s_TOKEN environment variable: %v", envPrefix, err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
	}

	// The config file is optional, defaults cover every key. A file that exists but does not parse is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(config); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return config, nil
}

// env is what most commands need: config, logger and lazily opened collaborators.
type env struct {
	ctx    context.Context
	config *Config
	logger *zap.Logger
	store  *store.Store
}

func newEnv(cmd *cobra.Command) *env {
	logger := logger.New(viper.GetBool("json"), viper.GetBool("debug"))

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting %s with config: \n %s", cmd.CommandPath(), pretty), zap.String("version", resolveVersion()))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	return &env{ctx: ctx, config: config, logger: logger}
}

func (e *env) openStore() (*store.Store, error) {
	if e.store != nil {
		return e.store, nil
	}
	s, err := store.Open(e.ctx, e.config.Database, e.logger)
	if err != nil {
		return nil, err
	}
	e.store = s
	return s, nil
}

func (e *env) vocabulary() *skills.Store {
	return skills.NewStore(e.config.VocabularyFile)
}

func (e *env) intake() (*intake.Service, error) {
	s, err := e.openStore()
	if err != nil {
		return nil, err
	}

	ex := e.config.Extraction
	strategy, ok := extract.ParseNameStrategy(ex.NameStrategy)
	if !ok {
		return nil, fmt.Errorf("unknown name strategy %q", ex.NameStrategy)
	}
	match := skills.MatchOptions{Mode: skills.Mode(ex.SkillMode), Threshold: ex.FuzzyThreshold}
	if err := match.Validate(); err != nil {
		return nil, err
	}

	decoder := document.New(document.Options{MaxFileSize: ex.MaxFileSize, MaxPages: ex.MaxPages})
	return intake.New(decoder, e.vocabulary(), s, intake.Config{
		NameStrategy: strategy,
		Match:        match,
		Workers:      ex.Workers,
	}, e.logger), nil
}

func (e *env) heuristic() *suspicion.Heuristic {
	return suspicion.New(*e.config.Suspicion)
}

func (e *env) close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.logger.Warn("closing database", zap.Error(err))
		}
	}
	_ = e.logger.Sync()
}
