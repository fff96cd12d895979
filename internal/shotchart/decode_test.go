package shotchart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/nba-shotchart/internal/models"
)

func shotDetailSet(rows ...[]interface{}) *models.ResultSet {
	return &models.ResultSet{
		Name: "Shot_Chart_Detail",
		Headers: []string{
			"GAME_ID", "PERIOD", "ACTION_TYPE", "SHOT_TYPE", "SHOT_ZONE_BASIC",
			"SHOT_ZONE_AREA", "SHOT_ZONE_RANGE", "SHOT_DISTANCE", "LOC_X", "LOC_Y",
			"SHOT_MADE_FLAG", "GAME_DATE",
		},
		RowSet: rows,
	}
}

func TestShotsFromResultSet(t *testing.T) {
	rs := shotDetailSet(
		[]interface{}{"0021500001", 1.0, "Jump Shot", "3PT Field Goal", "Above the Break 3", "Center(C)", "24+ ft.", 26.0, -12.0, 258.0, 1.0, "20151027"},
		[]interface{}{"0021500001", 2.0, "Layup Shot", "2PT Field Goal", "Restricted Area", "Center(C)", "Less Than 8 ft.", 1.0, 4.0, 9.0, 0.0, "20151027"},
	)

	shots, err := ShotsFromResultSet(rs)
	require.NoError(t, err)
	require.Len(t, shots, 2)

	first := shots[0]
	assert.Equal(t, "0021500001", first.GameID)
	assert.Equal(t, 1, first.Period)
	assert.Equal(t, "Jump Shot", first.ActionType)
	assert.Equal(t, -12.0, first.LocX)
	assert.Equal(t, 258.0, first.LocY)
	assert.Equal(t, 26.0, first.ShotDistance)
	assert.True(t, first.Made)
	assert.Equal(t, time.Date(2015, 10, 27, 0, 0, 0, 0, time.UTC), first.GameDate)
	assert.Equal(t, models.NewZoneKey("Above the Break 3", "Center(C)", "24+ ft."), first.Zone())

	assert.False(t, shots[1].Made)
	assert.Equal(t, 2, shots[1].Period)
}

func TestShotsFromResultSet_StringCells(t *testing.T) {
	rs := shotDetailSet(
		[]interface{}{"0021500002", "3", "Jump Shot", "2PT Field Goal", "Mid-Range", "Center(C)", "16-24 ft.", "18", "-5", "180", "1", "not-a-date"},
	)

	shots, err := ShotsFromResultSet(rs)
	require.NoError(t, err)
	require.Len(t, shots, 1)
	assert.Equal(t, -5.0, shots[0].LocX)
	assert.Equal(t, 180.0, shots[0].LocY)
	assert.Equal(t, 3, shots[0].Period)
	assert.True(t, shots[0].Made)
	assert.True(t, shots[0].GameDate.IsZero())
}

func TestShotsFromResultSet_OptionalColumns(t *testing.T) {
	rs := shotDetailSet(
		[]interface{}{nil, nil, nil, []int{1}, "Mid-Range", "Center(C)", "16-24 ft.", nil, 10.0, 150.0, 0.0, nil},
	)

	shots, err := ShotsFromResultSet(rs)
	require.NoError(t, err)
	require.Len(t, shots, 1)

	shot := shots[0]
	assert.Empty(t, shot.GameID)
	assert.Empty(t, shot.ActionType)
	assert.Empty(t, shot.ShotType)
	assert.Zero(t, shot.Period)
	assert.Zero(t, shot.ShotDistance)
	assert.True(t, shot.GameDate.IsZero())
	assert.Equal(t, 10.0, shot.LocX)
	assert.False(t, shot.Made)
}

func TestShotsFromResultSet_Errors(t *testing.T) {
	t.Run("missing column", func(t *testing.T) {
		rs := &models.ResultSet{
			Name:    "Shot_Chart_Detail",
			Headers: []string{"SHOT_ZONE_BASIC", "SHOT_ZONE_AREA", "SHOT_ZONE_RANGE", "LOC_X", "LOC_Y"},
		}
		_, err := ShotsFromResultSet(rs)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SHOT_MADE_FLAG")
	})

	t.Run("null location", func(t *testing.T) {
		rs := shotDetailSet(
			[]interface{}{"0021500003", 1.0, "Jump Shot", "2PT Field Goal", "Mid-Range", "Center(C)", "16-24 ft.", 18.0, nil, 180.0, 1.0, "20151027"},
		)
		_, err := ShotsFromResultSet(rs)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LOC_X")
	})

	t.Run("unparseable flag", func(t *testing.T) {
		rs := shotDetailSet(
			[]interface{}{"0021500003", 1.0, "Jump Shot", "2PT Field Goal", "Mid-Range", "Center(C)", "16-24 ft.", 18.0, 1.0, 180.0, "yes", "20151027"},
		)
		_, err := ShotsFromResultSet(rs)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SHOT_MADE_FLAG")
	})
}

func TestShotsFromResultSet_ReorderedColumns(t *testing.T) {
	rs := &models.ResultSet{
		Headers: []string{"SHOT_MADE_FLAG", "LOC_Y", "LOC_X", "SHOT_ZONE_RANGE", "SHOT_ZONE_AREA", "SHOT_ZONE_BASIC"},
		RowSet: [][]interface{}{
			{0.0, 30.0, 100.0, "8-16 ft.", "Right Side(R)", "In The Paint (Non-RA)"},
		},
	}

	shots, err := ShotsFromResultSet(rs)
	require.NoError(t, err)
	require.Len(t, shots, 1)
	assert.Equal(t, 100.0, shots[0].LocX)
	assert.Equal(t, 30.0, shots[0].LocY)
	assert.Equal(t, "In The Paint (Non-RA)", shots[0].ZoneBasic)
	assert.False(t, shots[0].Made)
}

func TestLeagueZonesFromResultSet(t *testing.T) {
	rs := &models.ResultSet{
		Name:    "LeagueAverages",
		Headers: []string{"GRID_TYPE", "SHOT_ZONE_BASIC", "SHOT_ZONE_AREA", "SHOT_ZONE_RANGE", "FGA", "FGM", "FG_PCT"},
		RowSet: [][]interface{}{
			{"League Averages", "Mid-Range", "Center(C)", "16-24 ft.", 9087.0, 3606.0, 0.397},
			{"League Averages", "Restricted Area", "Center(C)", "Less Than 8 ft.", 50000.0, 29750.0, "0.595"},
		},
	}

	zones, err := LeagueZonesFromResultSet(rs)
	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Equal(t, midRangeCenter, zones[0].Zone)
	assert.Equal(t, 9087, zones[0].FGA)
	assert.Equal(t, 3606, zones[0].FGM)
	assert.InDelta(t, 0.397, zones[0].FGPct, 1e-9)
	assert.InDelta(t, 0.595, zones[1].FGPct, 1e-9)

	_, err = LeagueZonesFromResultSet(&models.ResultSet{Name: "LeagueAverages", Headers: []string{"SHOT_ZONE_BASIC"}})
	assert.Error(t, err)
}

func TestNewLeagueAverages_LastValueWins(t *testing.T) {
	avgs := NewLeagueAverages([]models.LeagueZone{
		{Zone: midRangeCenter, FGPct: 0.30},
		{Zone: midRangeCenter, FGPct: 0.40},
	})

	assert.Len(t, avgs, 1)
	assert.Equal(t, 0.40, avgs[midRangeCenter])
}

func TestLeagueAveragesFromResultSet(t *testing.T) {
	rs := &models.ResultSet{
		Name:    "LeagueAverages",
		Headers: []string{"SHOT_ZONE_BASIC", "SHOT_ZONE_AREA", "SHOT_ZONE_RANGE", "FG_PCT"},
		RowSet:  [][]interface{}{{"Mid-Range", "Center(C)", "16-24 ft.", 0.397}},
	}

	avgs, err := LeagueAveragesFromResultSet(rs)
	require.NoError(t, err)
	assert.Equal(t, models.LeagueAverages{midRangeCenter: 0.397}, avgs)
}
