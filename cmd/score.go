package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/ai"
	"github.com/spigell/jobfit/internal/ai/gemini"
	"github.com/spigell/jobfit/internal/engine"
	"github.com/spigell/jobfit/internal/filtering"
	"github.com/spigell/jobfit/internal/logger"
	"github.com/spigell/jobfit/internal/posting"
	"github.com/spigell/jobfit/internal/profile"
	"github.com/spigell/jobfit/internal/scoring"
	"github.com/spigell/jobfit/internal/secrets"
	"github.com/spigell/jobfit/internal/store"
	"github.com/spigell/jobfit/internal/taxonomy"
	"github.com/spigell/jobfit/internal/ui"
)

const (
	PromptShowTable           = "Show ranked table"
	PromptReportByTier        = "Report by tier"
	PromptDetails             = "Show posting details"
	PromptTailor              = "Tailor resume with AI"
	PromptSaveToStore         = "Save results to store"
	PromptPostingsToFile      = "Dump postings to file"
	PromptAppendToExcludeFile = "Append all postings to exclude file"
	PromptExit                = "Exit"
	PromptBack                = "back"
)

var errExit = errors.New("exit requested")

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score postings, sort them into tiers and act on the results",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for actions; save results to the store and exit")
	scoreCmd.Flags().StringP("postings", "p", "", "postings file (JSON or YAML)")
	scoreCmd.Flags().StringP("exclude-file", "e", "", "special file with postings to exclude. Default is unset.")
	scoreCmd.Flags().IntP("workers", "w", 0, "concurrent scoring workers (default: number of CPUs)")
	scoreCmd.Flags().StringSlice("skip-filter", nil, "filter steps to disable (exclude_file, excluded_companies, minimum_priority, tiers)")

	viper.BindPFlag("postings", scoreCmd.Flags().Lookup("postings"))
	viper.BindPFlag("filters.exclude-file", scoreCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("workers", scoreCmd.Flags().Lookup("workers"))
}

// session is the state the interactive menu works on.
type session struct {
	config   *Config
	logger   *zap.Logger
	profile  *profile.Profile
	postings *posting.Postings
	advisor  ai.Advisor
}

func score(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the jobfit", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redacted(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if strings.TrimSpace(config.Postings) == "" {
		logger.Fatal("postings file is required", zap.String("hint", "set 'postings' in the config or pass --postings"))
	}
	if strings.TrimSpace(config.Profile) == "" {
		logger.Fatal("profile file is required", zap.String("hint", "set 'profile' in the config"))
	}

	prof, err := profile.Load(config.Profile)
	if err != nil {
		logger.Fatal("loading profile", zap.Error(err))
	}

	reg, err := loadRegistry(config.Taxonomy)
	if err != nil {
		logger.Fatal("loading taxonomy", zap.Error(err))
	}

	e, err := newEngine(config, reg, prof, logger)
	if err != nil {
		logger.Fatal("configuring the engine", zap.Error(err))
	}

	postings, err := posting.LoadFile(config.Postings)
	if err != nil {
		logger.Fatal("loading postings", zap.Error(err))
	}

	if postings.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no postings found"))
		return
	}

	logger.Info("scoring postings", zap.Int("count", postings.Len()), zap.String("profile", prof.Name()))

	bar := pb.StartNew(postings.Len())
	results, err := e.ScoreBatch(ctx, postings.Items, engine.BatchOptions{
		Workers:  config.Workers,
		OnScored: func(*posting.Posting, *posting.Result) { bar.Increment() },
	})
	bar.Finish()

	scored := postings.ApplyResults(results)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Warn("scoring interrupted, continuing with scored postings", zap.Int("scored", scored))
		postings.RemoveIf(func(p *posting.Posting) bool { return !p.Scored() })
	case err != nil:
		logger.Fatal("scoring failed", zap.Error(err))
	}

	// the menu keeps running after an interrupt during scoring
	ctx = context.Background()

	steps := filtering.Default()
	skipped, _ := cmd.Flags().GetStringSlice("skip-filter")
	for _, name := range skipped {
		filtering.DisableByName(steps, strings.TrimSpace(name), "disabled with --skip-filter")
	}

	filtered, err := filtering.Run(ctx, &config.Filters, filtering.Deps{Logger: logger}, steps, postings)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}
	for _, status := range filtering.Describe(steps) {
		logger.Debug("filter status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}
	postings = filtered
	postings.SortByTotal()

	if postings.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no postings left after filters"))
		return
	}

	s := &session{config: config, logger: logger, profile: prof, postings: postings}
	if config.AI != nil && config.AI.Enabled {
		advisor, err := newAdvisor(ctx, config.AI, logger)
		if err != nil {
			logger.Warn("tailoring with AI is disabled", zap.Error(err))
		} else {
			s.advisor = advisor
		}
	}

	autoApprove, _ := cmd.Flags().GetBool("auto-approve")
	if autoApprove {
		if err := s.saveToStore(ctx); err != nil {
			logger.Fatal("saving results", zap.Error(err))
		}
		return
	}

	for {
		prompt := promptui.Select{
			Label: "What next?",
			Items: s.actions(),
		}
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		logger.Info("current list of postings", zap.Int("count", s.postings.Len()))

		if err := s.handleAction(ctx, action); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func (s *session) actions() []string {
	items := []string{PromptShowTable, PromptReportByTier, PromptDetails}
	if s.advisor != nil {
		items = append(items, PromptTailor)
	}
	if s.storePath() != "" {
		items = append(items, PromptSaveToStore)
	}
	items = append(items, PromptPostingsToFile)
	if s.config.Filters.ExcludeFile != "" && s.postings.Len() != 0 {
		items = append(items, PromptAppendToExcludeFile)
	}
	return append(items, PromptExit)
}

func (s *session) handleAction(ctx context.Context, action string) error {
	switch action {
	case PromptShowTable:
		table, err := ui.ResultsTable(s.postings)
		if err != nil {
			return fmt.Errorf("render table: %w", err)
		}
		fmt.Println(table)
		return nil
	case PromptReportByTier:
		fmt.Print(ui.TierReport(s.postings))
		return nil
	case PromptDetails:
		p, err := choosePosting(s.postings, "Choose a posting and press ENTER")
		if err != nil || p == nil {
			return err
		}
		fmt.Print(ui.Details(p, s.profile))
		return nil
	case PromptTailor:
		return s.tailor(ctx)
	case PromptSaveToStore:
		return s.saveToStore(ctx)
	case PromptPostingsToFile:
		filename, err := s.postings.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		s.logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return s.appendToExcludeFile()
	case PromptExit:
		s.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func (s *session) tailor(ctx context.Context) error {
	p, err := choosePosting(s.postings, "Choose a posting to tailor for")
	if err != nil || p == nil {
		return err
	}

	advice, err := s.advisor.Advise(ctx, p, s.profile)
	if err != nil {
		// the generator already retried; keep the menu alive
		s.logger.Warn("getting tailoring advice", append(logger.PostingFields(p.URL, p.Title, p.Company), zap.Error(err))...)
		return nil
	}
	fmt.Print(ui.AdviceReport(advice))
	return nil
}

func (s *session) storePath() string {
	if s.config.Store == nil {
		return ""
	}
	return strings.TrimSpace(s.config.Store.Path)
}

func (s *session) saveToStore(ctx context.Context) error {
	path := s.storePath()
	if path == "" {
		s.logger.Info("store is not configured, results are not saved")
		return nil
	}

	st, err := store.Open(ctx, path, s.logger)
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.SaveRun(ctx, s.postings, s.profile)
	if err != nil {
		return err
	}

	s.logger.Info("saved results", zap.String("run_id", run.ID), zap.String("path", path), zap.Int("count", run.Saved))
	return nil
}

func (s *session) appendToExcludeFile() error {
	excludeFile := s.config.Filters.ExcludeFile

	excluded, err := posting.LoadExcluded(excludeFile)
	if err != nil {
		return err
	}

	excluded.Append(s.postings.ToExcluded())

	if err = excluded.ToFile(excludeFile); err != nil {
		return err
	}

	s.logger.Info("appended to exclude file", zap.String("filename", excludeFile))

	s.postings.Exclude(posting.URLField, excluded.URLs())
	return nil
}

// choosePosting returns nil when the user goes back.
func choosePosting(ps *posting.Postings, label string) (*posting.Posting, error) {
	items := make([]string, 0, ps.Len()+1)
	for i, p := range ps.Items {
		items = append(items, fmt.Sprintf("%d. [%s %.1f] %s / %s / %s",
			i+1, p.Tier(), p.Total(), p.Title, p.Company, p.URL,
		))
	}

	postingPrompt := promptui.Select{
		Label: label,
		Items: append(items, PromptBack),
		Size:  15,
	}

	_, selected, err := postingPrompt.Run()
	if err != nil {
		return nil, err
	}
	if selected == PromptBack {
		return nil, nil
	}

	n, err := strconv.Atoi(strings.SplitN(selected, ".", 2)[0])
	if err != nil || n < 1 || n > ps.Len() {
		return nil, fmt.Errorf("there is no such posting %q", selected)
	}
	return ps.Items[n-1], nil
}

func loadRegistry(path string) (*taxonomy.Registry, error) {
	if strings.TrimSpace(path) == "" {
		return taxonomy.Default()
	}
	return taxonomy.Load(path)
}

func newEngine(config *Config, reg *taxonomy.Registry, prof *profile.Profile, logger *zap.Logger) (*engine.Engine, error) {
	var (
		weights scoring.Weights
		err     error
	)
	if len(config.Weights) > 0 {
		weights, err = scoring.ParseWeights(config.Weights)
	} else {
		weights, err = scoring.WeightsPreset(config.WeightsPreset)
	}
	if err != nil {
		return nil, err
	}

	relevant := make([]taxonomy.Category, 0, len(config.RelevantCategories))
	for _, c := range config.RelevantCategories {
		relevant = append(relevant, taxonomy.Category(strings.TrimSpace(c)))
	}

	return engine.New(reg, prof, engine.Config{
		Weights:            weights,
		Thresholds:         config.Thresholds,
		Tiers:              config.Tiers,
		RelevantCategories: relevant,
	}, logger)
}

func newAdvisor(ctx context.Context, config *AIConfig, log *zap.Logger) (ai.Advisor, error) {
	if config.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: config.Gemini.APIKey,
		File:  config.Gemini.APIKeyFile,
		Env:   "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, err
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, config.Gemini.Model, config.Gemini.MaxRetries, log)
	if err != nil {
		return nil, err
	}

	log.Info("tailoring with AI is enabled", logger.AIFields(gemini.Provider, generator.Model())...)
	return gemini.NewAdvisor(generator, log, config.Gemini.MaxLogLength), nil
}

// redacted hides the inline API key before the config is logged.
func redacted(config *Config) Config {
	c := *config
	if c.AI != nil && c.AI.Gemini != nil && c.AI.Gemini.APIKey != "" {
		aiConfig := *c.AI
		gemini := *aiConfig.Gemini
		gemini.APIKey = "***"
		aiConfig.Gemini = &gemini
		c.AI = &aiConfig
	}
	return c
}
