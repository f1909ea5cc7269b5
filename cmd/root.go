package cmd

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/jobfit/internal/filtering"
	"github.com/spigell/jobfit/internal/scoring"
	"github.com/spigell/jobfit/internal/tiering"
)

const (
	app = "jobfit"
)

type Config struct {
	Postings string `mapstructure:"postings"`
	Profile  string `mapstructure:"profile"`
	// Taxonomy overrides the embedded keyword and company lists.
	Taxonomy string `mapstructure:"taxonomy"`

	WeightsPreset      string             `mapstructure:"weights-preset"`
	Weights            map[string]float64 `mapstructure:"weights"`
	Thresholds         scoring.Thresholds `mapstructure:"thresholds"`
	Tiers              tiering.Thresholds `mapstructure:"tiers"`
	RelevantCategories []string           `mapstructure:"relevant-categories"`
	Workers            int                `mapstructure:"workers"`

	Filters filtering.Config `mapstructure:"filters"`
	Store   *StoreConfig     `mapstructure:"store"`
	AI      *AIConfig        `mapstructure:"ai"`
}

type StoreConfig struct {
	Path string `mapstructure:"path"`
}

type AIConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Gemini  *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "jobfit scores job postings against a candidate profile and sorts them into application tiers",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("store.path", "JOBFIT_STORE"); err != nil {
		log.Fatalf("binding JOBFIT_STORE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is jobfit.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// .env is optional
	_ = godotenv.Load()

	// Config needed only for the score and gaps commands. If there is no config, we can skip initialization
	if scoreCmd.CalledAs() == "" && gapsCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
		viper.SetConfigType("yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

// getConfig decodes the config over the defaults, so omitted threshold keys
// keep their default values.
func getConfig() (*Config, error) {
	config := &Config{
		Thresholds: scoring.DefaultThresholds(),
		Tiers:      tiering.DefaultThresholds(),
	}
	if err := viper.Unmarshal(config); err != nil {
		return config, err
	}

	return config, nil
}
