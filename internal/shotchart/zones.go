package shotchart

import (
	"errors"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/stitts-dev/nba-shotchart/internal/models"
)

// ErrNoShotData is returned when the player has no attempts for the query
var ErrNoShotData = errors.New("no shot attempts for the requested player and season")

// Relative thresholds as multiples of the league percentage, highest first
var tierThresholds = []struct {
	factor float64
	tier   models.Tier
}{
	{1.07, models.TierWellAbove},
	{1.03, models.TierAbove},
	{0.97, models.TierAverage},
	{0.93, models.TierBelow},
}

// ClassifyTier compares a player percentage to the league percentage.
// Comparisons are strict: a value exactly on a threshold falls to the lower tier.
func ClassifyTier(playerPct, leaguePct float64) models.Tier {
	for _, t := range tierThresholds {
		if playerPct > leaguePct*t.factor {
			return t.tier
		}
	}
	return models.TierWellBelow
}

// GroupByZone collects the made flags (1 or 0) of every attempt per zone
func GroupByZone(shots []models.Shot) map[models.ZoneKey][]float64 {
	groups := make(map[models.ZoneKey][]float64)
	for _, s := range shots {
		flag := 0.0
		if s.Made {
			flag = 1
		}
		groups[s.Zone()] = append(groups[s.Zone()], flag)
	}
	return groups
}

// PlayerZonePercentages returns the player's percentage for every league
// zone. Zones without attempts are 0.
func PlayerZonePercentages(shots []models.Shot, league models.LeagueAverages) map[models.ZoneKey]float64 {
	groups := GroupByZone(shots)
	pcts := make(map[models.ZoneKey]float64, len(league))
	for zone := range league {
		if flags := groups[zone]; len(flags) > 0 {
			pcts[zone] = stat.Mean(flags, nil)
		} else {
			pcts[zone] = 0
		}
	}
	return pcts
}

// CompareZones assigns a tier to every league zone
func CompareZones(league models.LeagueAverages, player map[models.ZoneKey]float64) map[models.ZoneKey]models.Tier {
	tiers := make(map[models.ZoneKey]models.Tier, len(league))
	for zone, leaguePct := range league {
		tiers[zone] = ClassifyTier(player[zone], leaguePct)
	}
	return tiers
}

// Analysis is the zone comparison of one player season
type Analysis struct {
	// Zones holds one entry per league zone, sorted by zone key
	Zones []models.ZoneStats
	Shots []models.AnnotatedShot
	// Unclassified counts attempts in zones missing from the league table
	Unclassified map[models.ZoneKey]int
	Attempts     int
	Makes        int
	FGPct        float64
}

// Analyze aggregates shots per zone, classifies each zone against the league
// and annotates every shot.
func Analyze(shots []models.Shot, league models.LeagueAverages) (*Analysis, error) {
	if len(shots) == 0 {
		return nil, ErrNoShotData
	}

	groups := GroupByZone(shots)
	pcts := PlayerZonePercentages(shots, league)
	tiers := CompareZones(league, pcts)

	a := &Analysis{
		Zones:        make([]models.ZoneStats, 0, len(league)),
		Shots:        make([]models.AnnotatedShot, 0, len(shots)),
		Unclassified: make(map[models.ZoneKey]int),
		Attempts:     len(shots),
	}

	for zone, leaguePct := range league {
		flags := groups[zone]
		makes := 0
		for _, f := range flags {
			makes += int(f)
		}
		a.Zones = append(a.Zones, models.ZoneStats{
			Zone:      zone,
			Attempts:  len(flags),
			Makes:     makes,
			Pct:       pcts[zone],
			LeaguePct: leaguePct,
			Tier:      tiers[zone],
		})
	}
	sort.Slice(a.Zones, func(i, j int) bool { return a.Zones[i].Zone < a.Zones[j].Zone })

	all := make([]float64, 0, len(shots))
	for _, s := range shots {
		annotated := models.AnnotatedShot{Shot: s}
		zone := s.Zone()
		if tier, ok := tiers[zone]; ok {
			annotated.ZonePct = pcts[zone]
			annotated.Tier = tier
			annotated.Classified = true
		} else {
			a.Unclassified[zone]++
		}
		a.Shots = append(a.Shots, annotated)

		if s.Made {
			a.Makes++
			all = append(all, 1)
		} else {
			all = append(all, 0)
		}
	}
	a.FGPct = stat.Mean(all, nil)

	return a, nil
}

// UnclassifiedZones lists zones without a league average, sorted
func (a *Analysis) UnclassifiedZones() []models.ZoneKey {
	zones := make([]models.ZoneKey, 0, len(a.Unclassified))
	for z := range a.Unclassified {
		zones = append(zones, z)
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i] < zones[j] })
	return zones
}

// Classified returns the annotated shots that carry a tier
func (a *Analysis) Classified() []models.AnnotatedShot {
	out := make([]models.AnnotatedShot, 0, len(a.Shots))
	for _, s := range a.Shots {
		if s.Classified {
			out = append(out, s)
		}
	}
	return out
}
