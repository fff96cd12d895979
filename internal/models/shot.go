package models

import (
	"fmt"
	"time"
)

// ZoneKey identifies a court zone: SHOT_ZONE_BASIC-SHOT_ZONE_AREA: SHOT_ZONE_RANGE
type ZoneKey string

// NewZoneKey joins the three zone labels the way the stats API groups them
func NewZoneKey(basic, area, rng string) ZoneKey {
	return ZoneKey(fmt.Sprintf("%s-%s: %s", basic, area, rng))
}

// Tier is the relative-efficiency bucket used as color intensity
type Tier float64

const (
	TierWellBelow Tier = 0.1
	TierBelow     Tier = 0.3
	TierAverage   Tier = 0.5
	TierAbove     Tier = 0.7
	TierWellAbove Tier = 0.9
)

func (t Tier) String() string {
	switch t {
	case TierWellBelow:
		return "well below"
	case TierBelow:
		return "below"
	case TierAverage:
		return "average"
	case TierAbove:
		return "above"
	case TierWellAbove:
		return "well above"
	default:
		return "unclassified"
	}
}

// Shot is a single field goal attempt
type Shot struct {
	GameID       string    `json:"game_id,omitempty"`
	GameDate     time.Time `json:"game_date,omitempty"`
	Period       int       `json:"period,omitempty"`
	ActionType   string    `json:"action_type,omitempty"`
	ShotType     string    `json:"shot_type,omitempty"`
	ShotDistance float64   `json:"shot_distance,omitempty"`
	ZoneBasic    string    `json:"zone_basic"`
	ZoneArea     string    `json:"zone_area"`
	ZoneRange    string    `json:"zone_range"`
	LocX         float64   `json:"loc_x"`
	LocY         float64   `json:"loc_y"`
	Made         bool      `json:"made"`
}

func (s Shot) Zone() ZoneKey {
	return NewZoneKey(s.ZoneBasic, s.ZoneArea, s.ZoneRange)
}

// LeagueZone is one row of the league-average table
type LeagueZone struct {
	Zone  ZoneKey `json:"zone"`
	FGA   int     `json:"fga"`
	FGM   int     `json:"fgm"`
	FGPct float64 `json:"fg_pct"`
}

// LeagueAverages maps a zone to the league field goal percentage
type LeagueAverages map[ZoneKey]float64

// ZoneStats holds a player's aggregate for one zone
type ZoneStats struct {
	Zone      ZoneKey `json:"zone"`
	Attempts  int     `json:"attempts"`
	Makes     int     `json:"makes"`
	Pct       float64 `json:"pct"`
	LeaguePct float64 `json:"league_pct"`
	Tier      Tier    `json:"tier"`
}

// AnnotatedShot is a shot carrying its zone percentage and tier.
// Classified is false when the zone has no league average.
type AnnotatedShot struct {
	Shot
	ZonePct    float64 `json:"zone_pct"`
	Tier       Tier    `json:"tier"`
	Classified bool    `json:"classified"`
}
