/* main.go
 * The "main" method for running the bot and the lookup command
 * Usage: go run . bot [--test=true]
 *        go run . lookup "Mustermann, Max" [club] [--chart chart.png]
 */

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"dwz-bot/api/api"
	"dwz-bot/api/config"
	"dwz-bot/api/external"
	"dwz-bot/api/i18n"
	"dwz-bot/api/metrics"
	"dwz-bot/api/shared"
	"dwz-bot/api/store"
	"dwz-bot/bot"
	"dwz-bot/web"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	testFlag  string
	chartPath string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "dwz-bot",
		Short:        "Discord bot for DWZ chess ratings",
		SilenceUsage: true,
		RunE:         runBotCmd,
	}

	botCmd := &cobra.Command{
		Use:   "bot",
		Short: "Run the Discord bot and the HTTP server",
		Args:  cobra.NoArgs,
		RunE:  runBotCmd,
	}
	for _, cmd := range []*cobra.Command{rootCmd, botCmd} {
		cmd.Flags().StringVar(&testFlag, "test", "false", "Use main or beta bot: takes true or false as argument")
	}

	lookupCmd := &cobra.Command{
		Use:   "lookup <name> [club]",
		Short: "Print the report of a player",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runLookupCmd,
	}
	lookupCmd.Flags().StringVar(&chartPath, "chart", "", "Write the rating chart to this PNG file")

	rootCmd.AddCommand(botCmd, lookupCmd)
	return rootCmd
}

// loadConfig loads .env and the configuration
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	return config.Load()
}

// newAPI creates the api and everything it depends on from the configuration
// Preconditions: Receives a validated Config
// Postconditions: Returns the API, its metrics and a function closing the cache, or an error if the cache database
// cannot be reached
func newAPI(ctx context.Context, cfg *config.Config) (*api.API, *metrics.Metrics, func(), error) {
	m := metrics.New()
	provider := external.NewDewisClient(cfg.DewisBaseURL, cfg.RequestsPerSecond, cfg.RequestBurst)

	var cache store.Interface = store.NoopStore{}
	if cfg.MongoURI != "" {
		s, err := store.NewStore(ctx, cfg.MongoDatabase, cfg.MongoURI, cfg.CacheDuration())
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to initialize cache: %w", err)
		}
		cache = s
	} else {
		log.Println("No mongo_uri configured, player cards are not cached")
	}

	a, err := api.NewAPI(provider, cache, cfg.Limits(), cfg.ChartStyle(), m)
	if err != nil {
		return nil, nil, nil, err
	}
	closeCache := func() {
		if err := cache.Close(context.Background()); err != nil {
			log.Println("error closing cache:", err)
		}
	}
	return a, m, closeCache, nil
}

func runBotCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("test") {
		beta, err := convertStrToBool(testFlag)
		if err != nil {
			return fmt.Errorf("invalid \"test\" flag %q. Should be true or false", testFlag)
		}
		cfg.Beta = beta
	}
	if err := cfg.RequireToken(); err != nil {
		return err
	}

	apiPtr, m, closeCache, err := newAPI(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	translator, err := i18n.New(cfg.Language)
	if err != nil {
		return err
	}

	if cfg.WebAddr != "" {
		go func() {
			err := web.Start(web.Config{Addr: cfg.WebAddr, API: apiPtr, Metrics: m, Timeout: cfg.Timeout()})
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Println("HTTP server stopped:", err)
			}
		}()
	}

	b, err := bot.NewBot(cfg.Token(), apiPtr, translator)
	if err != nil {
		return err
	}
	b.Prefix = cfg.CommandPrefix
	b.MaxCandidates = cfg.MaxCandidates
	b.Timeout = cfg.Timeout()
	return b.Run()
}

func runLookupCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
	defer cancel()

	apiPtr, _, closeCache, err := newAPI(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	report, err := apiPtr.LookupPlayer(ctx, shared.NewQuery(args))
	var ambiguous *api.AmbiguousPlayerError
	if errors.As(err, &ambiguous) {
		fmt.Fprintf(cmd.OutOrStdout(), "%d players match %q:\n", len(ambiguous.Candidates), args[0])
		for _, candidate := range ambiguous.Candidates {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s (%s) DWZ %s\n", candidate.ID, candidate.Name, candidate.Club, candidate.DWZ)
		}
		return nil
	}
	if err != nil {
		return err
	}

	printReport(cmd.OutOrStdout(), report)
	if chartPath != "" {
		if !report.HasChart() {
			return fmt.Errorf("not enough rated tournaments for a chart")
		}
		if err := os.WriteFile(chartPath, report.Chart, 0o644); err != nil {
			return fmt.Errorf("error writing chart: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Chart written to", chartPath)
	}
	return nil
}

// printReport writes a plain text report of a player
func printReport(w io.Writer, report *api.PlayerReport) {
	player := report.Player
	fmt.Fprintf(w, "%s (%s)\n", player.Name, player.ID)
	if player.Club != "" {
		fmt.Fprintf(w, "Club: %s\n", player.Club)
	}
	fmt.Fprintf(w, "DWZ: %s\n", valueOr(player.DWZ, "-"))
	if player.Elo != "" && player.Elo != "0" {
		fmt.Fprintf(w, "Elo: %s\n", player.Elo)
	}

	if stats := report.Statistics; stats != nil {
		fmt.Fprintf(w, "Rating: %d -> %d (%+d)\n", stats.StartingRating, stats.CurrentRating, stats.NetChange)
		fmt.Fprintf(w, "Best/worst tournament: %+d / %+d\n", stats.BestGain, stats.WorstLoss)
		fmt.Fprintf(w, "Tournaments: %d, games: %d, points: %g (%.1f%%)\n",
			stats.TournamentCount, stats.TotalGames, stats.TotalPoints, stats.AverageScorePercent)
	}

	if report.Series != nil {
		fmt.Fprintln(w, "History:")
		for _, point := range report.Series.Points {
			fmt.Fprintf(w, "  %-*s %d\n", labelWidth(report), point.Label, point.Value)
		}
	}
}

func labelWidth(report *api.PlayerReport) int {
	width := 0
	for _, label := range report.Series.Labels() {
		width = max(width, len([]rune(label)))
	}
	return width
}

func valueOr(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
