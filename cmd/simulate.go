package cmd

import (
	"fmt"
	"time"

	"github.com/klokku/finance-kanban/internal/utils"
	"github.com/klokku/finance-kanban/pkg/autoplay"
	"github.com/klokku/finance-kanban/pkg/finance"
	"github.com/klokku/finance-kanban/pkg/report"
	"github.com/klokku/finance-kanban/pkg/scenario"
	"github.com/spf13/cobra"
)

var (
	flagDifficulty string
	flagHousing    string
	flagRounds     int
	flagSeed       uint64
	flagCsv        bool
	flagUseCredit  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a game with the autoplay strategy and print every round",
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty key (hard, medium, easy)")
	simulateCmd.Flags().StringVar(&flagHousing, "housing", "", "Housing key (sharedRoom, sharedApartment, oneBed, luxury)")
	simulateCmd.Flags().IntVarP(&flagRounds, "rounds", "r", 26, "Number of rounds to play")
	simulateCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "Random seed, 0 picks one from the clock")
	simulateCmd.Flags().BoolVar(&flagCsv, "csv", false, "Print the round history as CSV")
	simulateCmd.Flags().BoolVar(&flagUseCredit, "credit", true, "Let the strategy pay bills on credit")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	if flagRounds < 1 {
		return fmt.Errorf("rounds must be positive, got %d", flagRounds)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	builder, err := scenario.NewBuilder(scenario.NewDefaultCatalog(), cfg.Game.EngineRules())
	if err != nil {
		return err
	}

	difficulty := firstNonEmpty(flagDifficulty, cfg.Game.Difficulty)
	housing := firstNonEmpty(flagHousing, cfg.Game.Housing)
	seed := flagSeed
	if seed == 0 {
		seed = cfg.Game.Seed
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	state, summary := builder.Build(difficulty, housing)
	engine := finance.NewEngine(state, builder.Rules(), utils.NewSeededRandom(seed), builder.Catalog())
	rounds := autoplay.Simulate(engine, autoplay.NewPriorityStrategy(flagUseCredit), flagRounds)

	out := cmd.OutOrStdout()
	if flagCsv {
		csv, err := report.NewCsvHistoryRenderer().RenderHistory(rounds)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(out, csv)
		return err
	}

	fmt.Fprintf(out, "%s, %s (rent %s, %d%% of take-home), seed %d\n",
		summary.DifficultyLabel, summary.HousingLabel, summary.RentAmount.StringFixed(2), summary.RentPercentage, seed)
	for _, r := range rounds {
		fmt.Fprintf(out, "round %2d  qol %3d  score %3d  debt %10s  savings %10s  investments %10s  %s\n",
			r.Round+1, r.QualityOfLife, r.CreditScore, r.DebtBalance.StringFixed(2),
			r.SavingsBalance.StringFixed(2), r.InvestmentBalance.StringFixed(2), r.Status)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
