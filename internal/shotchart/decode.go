package shotchart

import (
	"fmt"
	"time"

	"github.com/spf13/cast"

	"github.com/stitts-dev/nba-shotchart/internal/models"
)

const (
	colZoneBasic    = "SHOT_ZONE_BASIC"
	colZoneArea     = "SHOT_ZONE_AREA"
	colZoneRange    = "SHOT_ZONE_RANGE"
	colLocX         = "LOC_X"
	colLocY         = "LOC_Y"
	colMadeFlag     = "SHOT_MADE_FLAG"
	colGameID       = "GAME_ID"
	colGameDate     = "GAME_DATE"
	colPeriod       = "PERIOD"
	colActionType   = "ACTION_TYPE"
	colShotType     = "SHOT_TYPE"
	colShotDistance = "SHOT_DISTANCE"
	colFGA          = "FGA"
	colFGM          = "FGM"
	colFGPct        = "FG_PCT"
)

// row reads cells of a result set by column name
type row struct {
	cells []interface{}
	idx   map[string]int
	line  int
}

func (r row) has(col string) bool {
	i, ok := r.idx[col]
	return ok && i < len(r.cells) && r.cells[i] != nil
}

func (r row) str(col string) (string, error) {
	if !r.has(col) {
		return "", nil
	}
	s, err := cast.ToStringE(r.cells[r.idx[col]])
	if err != nil {
		return "", fmt.Errorf("row %d: %s: %w", r.line, col, err)
	}
	return s, nil
}

func (r row) float(col string) (float64, error) {
	if !r.has(col) {
		return 0, fmt.Errorf("row %d: %s is empty", r.line, col)
	}
	f, err := cast.ToFloat64E(r.cells[r.idx[col]])
	if err != nil {
		return 0, fmt.Errorf("row %d: %s: %w", r.line, col, err)
	}
	return f, nil
}

func (r row) optionalStr(col string) string {
	if !r.has(col) {
		return ""
	}
	return cast.ToString(r.cells[r.idx[col]])
}

func (r row) optionalFloat(col string) float64 {
	if !r.has(col) {
		return 0
	}
	return cast.ToFloat64(r.cells[r.idx[col]])
}

func requireColumns(rs *models.ResultSet, idx map[string]int, cols ...string) error {
	for _, c := range cols {
		if _, ok := idx[c]; !ok {
			return fmt.Errorf("result set %q missing column %s", rs.Name, c)
		}
	}
	return nil
}

// ShotsFromResultSet decodes the Shot_Chart_Detail table
func ShotsFromResultSet(rs *models.ResultSet) ([]models.Shot, error) {
	idx := rs.ColumnIndex()
	if err := requireColumns(rs, idx, colZoneBasic, colZoneArea, colZoneRange, colLocX, colLocY, colMadeFlag); err != nil {
		return nil, err
	}

	shots := make([]models.Shot, 0, len(rs.RowSet))
	for i, cells := range rs.RowSet {
		r := row{cells: cells, idx: idx, line: i}

		var (
			shot models.Shot
			err  error
		)
		if shot.ZoneBasic, err = r.str(colZoneBasic); err != nil {
			return nil, err
		}
		if shot.ZoneArea, err = r.str(colZoneArea); err != nil {
			return nil, err
		}
		if shot.ZoneRange, err = r.str(colZoneRange); err != nil {
			return nil, err
		}
		if shot.LocX, err = r.float(colLocX); err != nil {
			return nil, err
		}
		if shot.LocY, err = r.float(colLocY); err != nil {
			return nil, err
		}
		made, err := r.float(colMadeFlag)
		if err != nil {
			return nil, err
		}
		shot.Made = made != 0

		shot.GameID = r.optionalStr(colGameID)
		shot.ActionType = r.optionalStr(colActionType)
		shot.ShotType = r.optionalStr(colShotType)
		shot.Period = int(r.optionalFloat(colPeriod))
		shot.ShotDistance = r.optionalFloat(colShotDistance)
		if date := r.optionalStr(colGameDate); date != "" {
			if t, err := time.Parse("20060102", date); err == nil {
				shot.GameDate = t
			}
		}

		shots = append(shots, shot)
	}
	return shots, nil
}

// LeagueZonesFromResultSet decodes the LeagueAverages table
func LeagueZonesFromResultSet(rs *models.ResultSet) ([]models.LeagueZone, error) {
	idx := rs.ColumnIndex()
	if err := requireColumns(rs, idx, colZoneBasic, colZoneArea, colZoneRange, colFGPct); err != nil {
		return nil, err
	}

	zones := make([]models.LeagueZone, 0, len(rs.RowSet))
	for i, cells := range rs.RowSet {
		r := row{cells: cells, idx: idx, line: i}

		basic, err := r.str(colZoneBasic)
		if err != nil {
			return nil, err
		}
		area, err := r.str(colZoneArea)
		if err != nil {
			return nil, err
		}
		rng, err := r.str(colZoneRange)
		if err != nil {
			return nil, err
		}
		pct, err := r.float(colFGPct)
		if err != nil {
			return nil, err
		}

		zones = append(zones, models.LeagueZone{
			Zone:  models.NewZoneKey(basic, area, rng),
			FGA:   int(r.optionalFloat(colFGA)),
			FGM:   int(r.optionalFloat(colFGM)),
			FGPct: pct,
		})
	}
	return zones, nil
}

// NewLeagueAverages maps each zone to its league percentage. A repeated zone
// keeps its last value.
func NewLeagueAverages(zones []models.LeagueZone) models.LeagueAverages {
	avgs := make(models.LeagueAverages, len(zones))
	for _, z := range zones {
		avgs[z.Zone] = z.FGPct
	}
	return avgs
}

// LeagueAveragesFromResultSet decodes the LeagueAverages table into a zone map
func LeagueAveragesFromResultSet(rs *models.ResultSet) (models.LeagueAverages, error) {
	zones, err := LeagueZonesFromResultSet(rs)
	if err != nil {
		return nil, err
	}
	return NewLeagueAverages(zones), nil
}
