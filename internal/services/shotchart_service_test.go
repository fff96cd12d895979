package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/nba-shotchart/internal/models"
	"github.com/stitts-dev/nba-shotchart/internal/providers"
	"github.com/stitts-dev/nba-shotchart/internal/shotchart"
)

type fakeStats struct {
	resp  *providers.ShotChartResponse
	err   error
	calls int
}

func (f *fakeStats) GetShotChart(_ context.Context, _ providers.ShotChartQuery) (*providers.ShotChartResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeHeadshots struct {
	err   error
	calls []int64
}

func (f *fakeHeadshots) GetHeadshot(_ context.Context, playerID int64) (image.Image, error) {
	f.calls = append(f.calls, playerID)
	if f.err != nil {
		return nil, f.err
	}
	img := image.NewNRGBA(image.Rect(0, 0, 230, 185))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	return img, nil
}

func loadResponse(t *testing.T) *providers.ShotChartResponse {
	t.Helper()
	body, err := os.ReadFile(filepath.Join("testdata", "shotchartdetail.json"))
	require.NoError(t, err)
	var resp providers.ShotChartResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	return &resp
}

func newTestService(stats ShotChartFetcher, headshots HeadshotFetcher) *ShotChartService {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	return NewShotChartService(stats, headshots, NewCircuitBreakerService(5, time.Minute, logger), logger)
}

func curryRequest(t *testing.T) ChartRequest {
	return ChartRequest{
		CorrelationID: "test-run",
		PlayerName:    "Stephen Curry",
		Query:         providers.DefaultShotChartQuery(201939, "2015-16"),
		OutputPath:    filepath.Join(t.TempDir(), "curry.png"),
	}
}

func TestShotChartService_Analyze(t *testing.T) {
	svc := newTestService(&fakeStats{resp: loadResponse(t)}, &fakeHeadshots{})

	a, err := svc.Analyze(context.Background(), providers.DefaultShotChartQuery(201939, "2015-16"))
	require.NoError(t, err)

	assert.Equal(t, 4, a.Attempts)
	assert.Equal(t, 2, a.Makes)
	assert.InDelta(t, 0.5, a.FGPct, 1e-9)
	require.Len(t, a.Zones, 4)
	assert.Empty(t, a.Unclassified)

	tiers := make(map[models.ZoneKey]models.Tier)
	for _, z := range a.Zones {
		tiers[z.Zone] = z.Tier
	}
	assert.Equal(t, models.TierWellAbove, tiers[models.NewZoneKey("Above the Break 3", "Center(C)", "24+ ft.")])
	assert.Equal(t, models.TierWellAbove, tiers[models.NewZoneKey("Restricted Area", "Center(C)", "Less Than 8 ft.")])
	assert.Equal(t, models.TierWellBelow, tiers[models.NewZoneKey("Mid-Range", "Center(C)", "16-24 ft.")])
	assert.Equal(t, models.TierWellBelow, tiers[models.NewZoneKey("Left Corner 3", "Left Side(L)", "24+ ft.")])
}

func TestShotChartService_AnalyzeErrors(t *testing.T) {
	t.Run("fetch error", func(t *testing.T) {
		boom := errors.New("boom")
		svc := newTestService(&fakeStats{err: boom}, &fakeHeadshots{})
		_, err := svc.Analyze(context.Background(), providers.DefaultShotChartQuery(1, "2015-16"))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("missing league averages", func(t *testing.T) {
		resp := loadResponse(t)
		resp.ResultSets = resp.ResultSets[:1]
		svc := newTestService(&fakeStats{resp: resp}, &fakeHeadshots{})
		_, err := svc.Analyze(context.Background(), providers.DefaultShotChartQuery(1, "2015-16"))
		assert.ErrorIs(t, err, providers.ErrMissingResultSet)
	})

	t.Run("no shots", func(t *testing.T) {
		resp := loadResponse(t)
		resp.ResultSets[0].RowSet = nil
		svc := newTestService(&fakeStats{resp: resp}, &fakeHeadshots{})
		_, err := svc.Analyze(context.Background(), providers.DefaultShotChartQuery(1, "2015-16"))
		assert.ErrorIs(t, err, shotchart.ErrNoShotData)
	})
}

func TestShotChartService_Generate(t *testing.T) {
	headshots := &fakeHeadshots{}
	svc := newTestService(&fakeStats{resp: loadResponse(t)}, headshots)
	req := curryRequest(t)

	result, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, req.OutputPath, result.OutputPath)
	assert.NoError(t, result.HeadshotErr)
	assert.Equal(t, []int64{201939}, headshots.calls)
	assert.Equal(t, 4, result.Analysis.Attempts)

	f, err := os.Open(req.OutputPath)
	require.NoError(t, err)
	defer f.Close()
	cfg, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 1100, cfg.Width)
}

func TestShotChartService_GenerateWithoutHeadshot(t *testing.T) {
	headshots := &fakeHeadshots{}
	svc := newTestService(&fakeStats{resp: loadResponse(t)}, headshots)
	req := curryRequest(t)
	req.SkipHeadshot = true

	_, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, headshots.calls)
	assert.FileExists(t, req.OutputPath)
}

func TestShotChartService_HeadshotFailureIsNotFatal(t *testing.T) {
	svc := newTestService(&fakeStats{resp: loadResponse(t)}, &fakeHeadshots{err: errors.New("404")})
	req := curryRequest(t)

	result, err := svc.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Error(t, result.HeadshotErr)
	assert.FileExists(t, req.OutputPath)
}

func TestShotChartService_GenerateFailsWithoutWriting(t *testing.T) {
	svc := newTestService(&fakeStats{err: errors.New("unexpected status code: 500")}, &fakeHeadshots{})
	req := curryRequest(t)

	_, err := svc.Generate(context.Background(), req)
	require.Error(t, err)
	assert.NoFileExists(t, req.OutputPath)
}

func TestShotChartService_BreakerOpens(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{})
	stats := &fakeStats{err: errors.New("timeout")}
	svc := NewShotChartService(stats, &fakeHeadshots{}, NewCircuitBreakerService(2, time.Minute, logger), logger)
	query := providers.DefaultShotChartQuery(201939, "2015-16")

	for i := 0; i < 2; i++ {
		_, err := svc.Analyze(context.Background(), query)
		require.Error(t, err)
	}
	_, err := svc.Analyze(context.Background(), query)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, stats.calls)
}

func TestDefaultOutputPath(t *testing.T) {
	q := providers.DefaultShotChartQuery(201939, "2015-16")
	assert.Equal(t, filepath.Join("charts", "201939_2015-16.png"), DefaultOutputPath("charts", q))
}

func TestWriteZoneReport(t *testing.T) {
	midRange := models.NewZoneKey("Mid-Range", "Center(C)", "16-24 ft.")
	backcourt := models.NewZoneKey("Backcourt", "Back Court(BC)", "Back Court Shot")
	a := &shotchart.Analysis{
		Zones: []models.ZoneStats{
			{Zone: midRange, Attempts: 10, Makes: 9, Pct: 0.9, LeaguePct: 0.4, Tier: models.TierWellAbove},
		},
		Unclassified: map[models.ZoneKey]int{backcourt: 2},
		Attempts:     12,
		Makes:        9,
		FGPct:        0.75,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteZoneReport(&buf, a))

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 4)
	assert.Contains(t, string(lines[0]), "ZONE")
	assert.Contains(t, string(lines[1]), "Mid-Range-Center(C): 16-24 ft.")
	assert.Contains(t, string(lines[1]), "0.900")
	assert.Contains(t, string(lines[1]), "well above")
	assert.Contains(t, string(lines[2]), "unclassified")
	assert.Contains(t, string(lines[3]), "TOTAL")
	assert.Contains(t, string(lines[3]), "0.750")
}
