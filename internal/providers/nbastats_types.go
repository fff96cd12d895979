package providers

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/stitts-dev/nba-shotchart/internal/models"
)

// ErrMissingResultSet is returned when a response lacks an expected table
var ErrMissingResultSet = errors.New("result set missing from response")

const (
	ResultSetShotDetail     = "Shot_Chart_Detail"
	ResultSetLeagueAverages = "LeagueAverages"
)

// ShotChartQuery holds every filter accepted by the shotchartdetail endpoint.
// Zero values mean "no filter" except where DefaultShotChartQuery sets one.
type ShotChartQuery struct {
	PlayerID int64
	LeagueID string // "00" is the NBA
	Season   string // e.g. "2014-15"
	// SeasonType is "Regular Season", "Playoffs" or "Pre Season"
	SeasonType string
	// TeamID restricts to games played for this team
	TeamID int64
	GameID string
	// Outcome is "W" or "L"
	Outcome string
	// Location is "Home" or "Road"
	Location      string
	Month         int
	SeasonSegment string // "Pre All-Star" or "Post All-Star"
	DateFrom      string // MM/DD/YYYY
	DateTo        string // MM/DD/YYYY
	// OpponentTeamID restricts to games against this team
	OpponentTeamID int64
	VsConference   string
	VsDivision     string
	Position       string
	RookieYear     string
	GameSegment    string // "First Half", "Second Half" or "Overtime"
	Period         int
	LastNGames     int
	// ClutchTime e.g. "Last 5 Minutes": 4th quarter or OT, score within 5
	ClutchTime     string
	AheadBehind    string
	PointDiff      string
	RangeType      string
	StartPeriod    string
	EndPeriod      string
	StartRange     string
	EndRange       string
	ContextFilter  string
	ContextMeasure string // "FGA" by default
}

// DefaultShotChartQuery returns the query for all field goal attempts of a
// player's regular season
func DefaultShotChartQuery(playerID int64, season string) ShotChartQuery {
	if season == "" {
		season = "2014-15"
	}
	return ShotChartQuery{
		PlayerID:       playerID,
		LeagueID:       "00",
		Season:         season,
		SeasonType:     "Regular Season",
		ContextMeasure: "FGA",
	}
}

// Values encodes the query. Every parameter is sent, empty or not, since the
// endpoint rejects requests with missing keys.
func (q ShotChartQuery) Values() url.Values {
	itoa := func(n int64) string { return strconv.FormatInt(n, 10) }

	v := url.Values{}
	v.Set("LeagueID", q.LeagueID)
	v.Set("Season", q.Season)
	v.Set("SeasonType", q.SeasonType)
	v.Set("TeamID", itoa(q.TeamID))
	v.Set("PlayerID", itoa(q.PlayerID))
	v.Set("GameID", q.GameID)
	v.Set("Outcome", q.Outcome)
	v.Set("Location", q.Location)
	v.Set("Month", strconv.Itoa(q.Month))
	v.Set("SeasonSegment", q.SeasonSegment)
	v.Set("DateFrom", q.DateFrom)
	v.Set("DateTo", q.DateTo)
	v.Set("OpponentTeamID", itoa(q.OpponentTeamID))
	v.Set("VsConference", q.VsConference)
	v.Set("VsDivision", q.VsDivision)
	v.Set("Position", q.Position)
	v.Set("RookieYear", q.RookieYear)
	v.Set("GameSegment", q.GameSegment)
	v.Set("Period", strconv.Itoa(q.Period))
	v.Set("LastNGames", strconv.Itoa(q.LastNGames))
	v.Set("ClutchTime", q.ClutchTime)
	v.Set("AheadBehind", q.AheadBehind)
	v.Set("PointDiff", q.PointDiff)
	v.Set("RangeType", q.RangeType)
	v.Set("StartPeriod", q.StartPeriod)
	v.Set("EndPeriod", q.EndPeriod)
	v.Set("StartRange", q.StartRange)
	v.Set("EndRange", q.EndRange)
	v.Set("ContextFilter", q.ContextFilter)
	v.Set("ContextMeasure", q.ContextMeasure)
	return v
}

// ShotChartResponse is the body returned by shotchartdetail
type ShotChartResponse struct {
	Resource   string                 `json:"resource"`
	Parameters map[string]interface{} `json:"parameters"`
	ResultSets []models.ResultSet     `json:"resultSets"`
}

// ShotDetail returns the per-shot table
func (r *ShotChartResponse) ShotDetail() (*models.ResultSet, error) {
	return r.resultSet(ResultSetShotDetail, 0)
}

// LeagueAverages returns the league-average-by-zone table
func (r *ShotChartResponse) LeagueAverages() (*models.ResultSet, error) {
	return r.resultSet(ResultSetLeagueAverages, 1)
}

// resultSet finds a table by name, falling back to its usual position for
// responses that omit names
func (r *ShotChartResponse) resultSet(name string, position int) (*models.ResultSet, error) {
	for i := range r.ResultSets {
		if r.ResultSets[i].Name == name {
			return &r.ResultSets[i], nil
		}
	}
	if position < len(r.ResultSets) && r.ResultSets[position].Name == "" {
		return &r.ResultSets[position], nil
	}
	return nil, fmt.Errorf("%w: %s", ErrMissingResultSet, name)
}
