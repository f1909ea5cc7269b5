package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/jobfit/internal/logger"
	"github.com/spigell/jobfit/internal/store"
	"github.com/spigell/jobfit/internal/ui"
)

var gapsCmd = &cobra.Command{
	Use:   "gaps",
	Short: "Report skill gaps and occupation eligibility across saved postings",
	Run: func(cmd *cobra.Command, _ []string) {
		gaps(cmd)
	},
}

func init() {
	rootCmd.AddCommand(gapsCmd)

	gapsCmd.Flags().IntP("limit", "l", store.DefaultRecommendations, "how many skills to list per section")
	gapsCmd.Flags().Bool("occupations", false, "also report occupation codes and median wage")
	gapsCmd.Flags().String("store", "", "store file (default is store.path from the config)")
	gapsCmd.Flags().Int("top", 0, "also list the N highest scored stored postings")
	gapsCmd.Flags().String("url", "", "show the stored details of one posting and exit")

	viper.BindPFlag("store.path", gapsCmd.Flags().Lookup("store"))
}

func gaps(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config.Store == nil || strings.TrimSpace(config.Store.Path) == "" {
		logger.Fatal("store path is required", zap.String("hint", "set 'store.path' in the config or JOBFIT_STORE"))
	}

	st, err := store.Open(ctx, config.Store.Path, logger)
	if err != nil {
		logger.Fatal("opening store", zap.Error(err))
	}
	defer st.Close()

	if url, _ := cmd.Flags().GetString("url"); url != "" {
		p, err := st.Get(ctx, url)
		if err != nil {
			logger.Fatal("getting stored posting", zap.String("url", url), zap.Error(err))
		}
		fmt.Print(ui.Details(p, nil))
		return
	}

	limit, _ := cmd.Flags().GetInt("limit")
	report, err := st.SkillGaps(ctx, limit)
	if err != nil {
		logger.Fatal("building skill gap report", zap.Error(err))
	}

	out, err := ui.GapReport(report, limit)
	if err != nil {
		logger.Fatal("rendering skill gap report", zap.Error(err))
	}
	fmt.Print(out)

	if occupations, _ := cmd.Flags().GetBool("occupations"); occupations {
		summary, err := st.OccupationSummary(ctx)
		if err != nil {
			logger.Fatal("building occupation summary", zap.Error(err))
		}
		out, err := ui.OccupationReport(summary)
		if err != nil {
			logger.Fatal("rendering occupation summary", zap.Error(err))
		}
		fmt.Print(out)
	}

	if top, _ := cmd.Flags().GetInt("top"); top > 0 {
		ps, err := st.List(ctx, store.Filter{Limit: top})
		if err != nil {
			logger.Fatal("listing stored postings", zap.Error(err))
		}
		table, err := ui.ResultsTable(ps)
		if err != nil {
			logger.Fatal("rendering stored postings", zap.Error(err))
		}
		fmt.Println(table)
	}
}
