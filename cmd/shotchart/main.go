package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/stitts-dev/nba-shotchart/internal/court"
	"github.com/stitts-dev/nba-shotchart/internal/models"
	"github.com/stitts-dev/nba-shotchart/internal/players"
	"github.com/stitts-dev/nba-shotchart/internal/providers"
	"github.com/stitts-dev/nba-shotchart/internal/services"
	"github.com/stitts-dev/nba-shotchart/internal/shotchart"
	"github.com/stitts-dev/nba-shotchart/pkg/config"
	"github.com/stitts-dev/nba-shotchart/pkg/logger"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type options struct {
	player       string
	season       string
	output       string
	list         string
	noHeadshot   bool
	noOuterLines bool
	refresh      bool
	query        providers.ShotChartQuery
}

func newFlagSet(opts *options) *pflag.FlagSet {
	flags := pflag.NewFlagSet("shotchart", pflag.ContinueOnError)
	flags.SortFlags = false

	flags.StringVarP(&opts.player, "player", "p", "", `player name, "First Last" or "Last, First"`)
	flags.StringVarP(&opts.season, "season", "s", "", "season in yyyy-yy format, e.g. 2014-15")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (.png, .jpg, .svg or .pdf); default <output-dir>/<player id>_<season>.png")
	flags.StringVar(&opts.list, "list", "", "print a reference table and exit: shots or all")
	flags.BoolVar(&opts.noHeadshot, "no-headshot", false, "do not download the player photo")
	flags.BoolVar(&opts.noOuterLines, "no-outer-lines", false, "omit the baseline, sidelines and half court line")
	flags.BoolVar(&opts.refresh, "refresh", false, "drop the cached response before fetching")

	// bound to configuration keys
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("output-dir", "", "directory for the default output file")
	flags.String("redis-url", "", "redis:// URL of the response cache")
	flags.String("player-csv", "", "path of the player ID reference table")

	q := &opts.query
	*q = providers.DefaultShotChartQuery(0, "")
	flags.StringVar(&q.LeagueID, "league-id", q.LeagueID, "league ID")
	flags.StringVar(&q.SeasonType, "season-type", q.SeasonType, `"Regular Season", "Playoffs" or "Pre Season"`)
	flags.Int64Var(&q.TeamID, "team-id", q.TeamID, "only shots taken for this team")
	flags.StringVar(&q.GameID, "game-id", q.GameID, "only shots from this game")
	flags.StringVar(&q.Outcome, "outcome", q.Outcome, "W or L")
	flags.StringVar(&q.Location, "location", q.Location, "Home or Road")
	flags.IntVar(&q.Month, "month", q.Month, "month of the season, 1 is October")
	flags.StringVar(&q.SeasonSegment, "season-segment", q.SeasonSegment, `"Pre All-Star" or "Post All-Star"`)
	flags.StringVar(&q.DateFrom, "date-from", q.DateFrom, "MM/DD/YYYY")
	flags.StringVar(&q.DateTo, "date-to", q.DateTo, "MM/DD/YYYY")
	flags.Int64Var(&q.OpponentTeamID, "opponent-team-id", q.OpponentTeamID, "only shots against this team")
	flags.StringVar(&q.VsConference, "vs-conference", q.VsConference, "East or West")
	flags.StringVar(&q.VsDivision, "vs-division", q.VsDivision, "opponent division")
	flags.StringVar(&q.Position, "position", q.Position, "player position")
	flags.StringVar(&q.RookieYear, "rookie-year", q.RookieYear, "rookie season")
	flags.StringVar(&q.GameSegment, "game-segment", q.GameSegment, `"First Half", "Second Half" or "Overtime"`)
	flags.IntVar(&q.Period, "period", q.Period, "quarter, 0 for all")
	flags.IntVar(&q.LastNGames, "last-n-games", q.LastNGames, "only the last n games, 0 for all")
	flags.StringVar(&q.ClutchTime, "clutch-time", q.ClutchTime, `e.g. "Last 5 Minutes"`)
	flags.StringVar(&q.AheadBehind, "ahead-behind", q.AheadBehind, `"Ahead or Behind", "Ahead or Tied" or "Behind or Tied"`)
	flags.StringVar(&q.PointDiff, "point-diff", q.PointDiff, "score margin for clutch time")
	flags.StringVar(&q.RangeType, "range-type", q.RangeType, "")
	flags.StringVar(&q.StartPeriod, "start-period", q.StartPeriod, "")
	flags.StringVar(&q.EndPeriod, "end-period", q.EndPeriod, "")
	flags.StringVar(&q.StartRange, "start-range", q.StartRange, "")
	flags.StringVar(&q.EndRange, "end-range", q.EndRange, "")
	flags.StringVar(&q.ContextFilter, "context-filter", q.ContextFilter, "")
	flags.StringVar(&q.ContextMeasure, "context-measure", q.ContextMeasure, "FGA, FG3A, ...")

	return flags
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var opts options
	flags := newFlagSet(&opts)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := config.LoadConfig(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return exitError
	}
	log := logger.InitLogger(cfg.LogLevel, cfg.LogFormat, cfg.IsDevelopment())
	correlationID := uuid.New().String()
	runLog := logger.WithCorrelationID(correlationID)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir := players.NewDirectory(cfg.PlayerIDCSV, cfg.ShotPlayersCSV, log)
	prompt := newPrompter(os.Stdin, os.Stdout)

	if opts.list != "" {
		return listTable(dir, strings.ToUpper(opts.list), runLog)
	}

	name := opts.player
	if name == "" {
		if name, err = prompt.player(); err != nil {
			runLog.WithError(err).Error("Failed to read player name")
			return exitError
		}
	}
	// the bulk tables can also be requested at the prompt
	if upper := strings.ToUpper(name); upper == players.SentinelShots || upper == players.SentinelAll {
		return listTable(dir, upper, runLog)
	}

	player, err := resolvePlayer(dir, prompt, name)
	if err != nil {
		if errors.Is(err, players.ErrNoSuchPlayer) {
			fmt.Fprintln(os.Stderr, err)
		} else {
			runLog.WithError(err).Error("Failed to resolve player")
		}
		return exitError
	}

	season := opts.season
	if season == "" {
		if season, err = prompt.season(); err != nil {
			runLog.WithError(err).Error("Failed to read season")
			return exitError
		}
	}

	query := opts.query
	query.PlayerID = player.PersonID
	query.Season = season

	runLog = logger.WithPlayerContext(correlationID, player.PersonID, season)
	runLog.WithField("player", player.DisplayLastFirst).Info("Generating shot chart")

	var cache models.CacheProvider
	if cfg.CacheEnabled() {
		cacheService, err := services.ConnectCache(ctx, cfg.RedisURL)
		if err != nil {
			runLog.WithError(err).Warn("Response cache unavailable, continuing without it")
		} else {
			defer cacheService.Close()
			cache = cacheService
			if opts.refresh {
				if err := cacheService.Delete(ctx, providers.ShotChartCacheKey(query)); err != nil {
					runLog.WithError(err).Warn("Failed to drop cached response")
				}
			}
		}
	}

	stats := providers.NewNBAStatsClient(providers.ClientOptions{
		BaseURL:           cfg.StatsBaseURL,
		Timeout:           cfg.ExternalAPITimeout,
		RequestsPerSecond: cfg.StatsRateLimit,
		Cache:             cache,
		CacheTTL:          cfg.CacheTTL,
	}, log)
	headshots := providers.NewHeadshotClient(providers.ClientOptions{
		BaseURL:           cfg.HeadshotBaseURL,
		Timeout:           cfg.ExternalAPITimeout,
		RequestsPerSecond: cfg.StatsRateLimit,
	}, log)
	breakers := services.NewCircuitBreakerService(cfg.CircuitBreakerThreshold, cfg.CircuitBreakerTimeout, log)
	svc := services.NewShotChartService(stats, headshots, breakers, log)

	output := opts.output
	if output == "" {
		output = services.DefaultOutputPath(cfg.OutputDir, query)
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		runLog.WithError(err).Error("Failed to create output directory")
		return exitError
	}

	courtOpts := court.DefaultOptions()
	courtOpts.OuterLines = !opts.noOuterLines

	result, err := svc.Generate(ctx, services.ChartRequest{
		CorrelationID: correlationID,
		PlayerName:    name,
		Query:         query,
		OutputPath:    output,
		SkipHeadshot:  opts.noHeadshot,
		Court:         courtOpts,
	})
	if err != nil {
		if errors.Is(err, shotchart.ErrNoShotData) {
			fmt.Fprintf(os.Stderr, "No shot data for %s in %s\n", player.DisplayLastFirst, season)
		} else {
			runLog.WithError(err).Error("Failed to generate shot chart")
		}
		return exitError
	}

	if err := services.WriteZoneReport(os.Stdout, result.Analysis); err != nil {
		runLog.WithError(err).Error("Failed to write zone report")
		return exitError
	}
	fmt.Printf("Chart written to %s\n", result.OutputPath)
	return exitOK
}

func listTable(dir *players.Directory, sentinel string, log *logrus.Entry) int {
	table, ok, err := dir.Lookup(sentinel)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown table %q, expected shots or all\n", strings.ToLower(sentinel))
		return exitUsage
	}
	if err != nil {
		log.WithError(err).Error("Failed to read reference table")
		return exitError
	}
	if err := writeTable(os.Stdout, table); err != nil {
		log.WithError(err).Error("Failed to write reference table")
		return exitError
	}
	return exitOK
}
