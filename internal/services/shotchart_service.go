package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/nba-shotchart/internal/court"
	"github.com/stitts-dev/nba-shotchart/internal/models"
	"github.com/stitts-dev/nba-shotchart/internal/providers"
	"github.com/stitts-dev/nba-shotchart/internal/render"
	"github.com/stitts-dev/nba-shotchart/internal/shotchart"
)

// ShotChartFetcher is satisfied by providers.NBAStatsClient
type ShotChartFetcher interface {
	GetShotChart(ctx context.Context, query providers.ShotChartQuery) (*providers.ShotChartResponse, error)
}

// HeadshotFetcher is satisfied by providers.HeadshotClient
type HeadshotFetcher interface {
	GetHeadshot(ctx context.Context, playerID int64) (image.Image, error)
}

// ShotChartService runs fetch, analysis and rendering for one player season
type ShotChartService struct {
	stats     ShotChartFetcher
	headshots HeadshotFetcher
	breakers  *CircuitBreakerService
	logger    *logrus.Logger
}

func NewShotChartService(stats ShotChartFetcher, headshots HeadshotFetcher, breakers *CircuitBreakerService, logger *logrus.Logger) *ShotChartService {
	return &ShotChartService{
		stats:     stats,
		headshots: headshots,
		breakers:  breakers,
		logger:    logger,
	}
}

// ChartRequest describes one chart
type ChartRequest struct {
	CorrelationID string
	// PlayerName is used in the title as typed by the user
	PlayerName string
	Query      providers.ShotChartQuery
	OutputPath string
	// SkipHeadshot renders without downloading the photo
	SkipHeadshot bool
	Court        court.Options
}

// ChartResult is the outcome of Generate
type ChartResult struct {
	Analysis   *shotchart.Analysis
	OutputPath string
	// HeadshotErr is set when the photo could not be fetched; the chart is
	// still written
	HeadshotErr error
}

// Analyze fetches the player's shots and league averages and compares them
func (s *ShotChartService) Analyze(ctx context.Context, query providers.ShotChartQuery) (*shotchart.Analysis, error) {
	result, err := s.breakers.Execute(BreakerNBAStats, func() (interface{}, error) {
		return s.stats.GetShotChart(ctx, query)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get shot chart: %w", err)
	}
	resp := result.(*providers.ShotChartResponse)

	detail, err := resp.ShotDetail()
	if err != nil {
		return nil, err
	}
	leagueSet, err := resp.LeagueAverages()
	if err != nil {
		return nil, err
	}

	shots, err := shotchart.ShotsFromResultSet(detail)
	if err != nil {
		return nil, fmt.Errorf("failed to decode shots: %w", err)
	}
	league, err := shotchart.LeagueAveragesFromResultSet(leagueSet)
	if err != nil {
		return nil, fmt.Errorf("failed to decode league averages: %w", err)
	}

	return shotchart.Analyze(shots, league)
}

// Generate analyzes the season and writes the chart to req.OutputPath
func (s *ShotChartService) Generate(ctx context.Context, req ChartRequest) (*ChartResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"correlation_id": req.CorrelationID,
		"player_id":      req.Query.PlayerID,
		"season":         req.Query.Season,
	})

	analysis, err := s.Analyze(ctx, req.Query)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"attempts": analysis.Attempts,
		"makes":    analysis.Makes,
		"zones":    len(analysis.Zones),
	}).Info("Analyzed shot zones")

	for _, zone := range analysis.UnclassifiedZones() {
		log.WithFields(logrus.Fields{
			"zone":     zone,
			"attempts": analysis.Unclassified[zone],
		}).Warn("Zone missing from league averages, shots left uncolored")
	}

	result := &ChartResult{Analysis: analysis, OutputPath: req.OutputPath}

	chart := render.Chart{
		PlayerName: req.PlayerName,
		Season:     req.Query.Season,
		SeasonType: req.Query.SeasonType,
		Shots:      analysis.Shots,
		Court:      req.Court,
	}

	if !req.SkipHeadshot {
		img, err := s.breakers.Execute(BreakerHeadshots, func() (interface{}, error) {
			return s.headshots.GetHeadshot(ctx, req.Query.PlayerID)
		})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil, err
			}
			result.HeadshotErr = err
			log.WithError(err).Warn("Failed to fetch headshot, rendering without it")
		} else {
			chart.Headshot, _ = img.(image.Image)
		}
	}

	if err := render.SaveFile(req.OutputPath, chart); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	log.WithField("output", req.OutputPath).Info("Shot chart written")

	return result, nil
}

// DefaultOutputPath is <dir>/<player id>_<season>.png
func DefaultOutputPath(dir string, query providers.ShotChartQuery) string {
	return filepath.Join(dir, fmt.Sprintf("%d_%s.png", query.PlayerID, query.Season))
}

// WriteZoneReport prints one line per league zone followed by any
// unclassified zones
func WriteZoneReport(w io.Writer, a *shotchart.Analysis) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ZONE\tFGM\tFGA\tFG%\tLEAGUE\tTIER")
	for _, z := range a.Zones {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.3f\t%.3f\t%s\n", z.Zone, z.Makes, z.Attempts, z.Pct, z.LeaguePct, z.Tier)
	}
	for _, zone := range a.UnclassifiedZones() {
		fmt.Fprintf(tw, "%s\t-\t%d\t-\t-\t%s\n", zone, a.Unclassified[zone], models.Tier(0))
	}
	fmt.Fprintf(tw, "TOTAL\t%d\t%d\t%.3f\t\t\n", a.Makes, a.Attempts, a.FGPct)
	return tw.Flush()
}
