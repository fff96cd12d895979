package players

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/nba-shotchart/internal/models"
)

// ErrNoSuchPlayer is returned when a name matches nothing in the reference table
var ErrNoSuchPlayer = errors.New("there is no player with that name")

const (
	// SentinelShots requests the bulk table of players with shot chart data
	SentinelShots = "SHOTS"
	// SentinelAll requests the complete player ID reference table
	SentinelAll = "ALL"
)

// Resolution is the result of resolving a name: SingleMatch or MultipleMatches
type Resolution interface {
	resolution()
}

// SingleMatch is an unambiguous name
type SingleMatch struct {
	Player models.Player
}

// MultipleMatches carries every candidate for an ambiguous name, in table order
type MultipleMatches struct {
	Players []models.Player
}

func (SingleMatch) resolution()     {}
func (MultipleMatches) resolution() {}

// IDs returns the person IDs of all candidates
func (m MultipleMatches) IDs() []int64 {
	ids := make([]int64, len(m.Players))
	for i, p := range m.Players {
		ids[i] = p.PersonID
	}
	return ids
}

// Directory resolves player names against the CSV reference tables
type Directory struct {
	playerIDPath    string
	shotPlayersPath string
	logger          *logrus.Logger
}

// NewDirectory creates a directory over the player ID table and the
// table of players with shot data
func NewDirectory(playerIDPath, shotPlayersPath string, logger *logrus.Logger) *Directory {
	return &Directory{
		playerIDPath:    playerIDPath,
		shotPlayersPath: shotPlayersPath,
		logger:          logger,
	}
}

// Resolve looks up a "Last, First" name. A query without a comma is
// matched against the last name only.
func (d *Directory) Resolve(name string) (Resolution, error) {
	all, err := d.AllPlayers()
	if err != nil {
		return nil, err
	}

	query := strings.TrimSpace(name)
	lastNameOnly := !strings.Contains(query, ",")

	var matches []models.Player
	for _, p := range all {
		candidate := p.DisplayLastFirst
		if lastNameOnly {
			candidate, _, _ = strings.Cut(candidate, ",")
		}
		if strings.EqualFold(strings.TrimSpace(candidate), query) {
			matches = append(matches, p)
		}
	}

	d.logger.WithFields(logrus.Fields{
		"name":    query,
		"matches": len(matches),
	}).Debug("Resolved player name")

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrNoSuchPlayer, query)
	case 1:
		return SingleMatch{Player: matches[0]}, nil
	default:
		return MultipleMatches{Players: matches}, nil
	}
}

// Lookup handles the SHOTS and ALL sentinels, returning the bulk table.
// Any other input returns ok == false.
func (d *Directory) Lookup(sentinel string) (table *models.Table, ok bool, err error) {
	switch sentinel {
	case SentinelShots:
		table, err = readTable(d.shotPlayersPath)
	case SentinelAll:
		table, err = readTable(d.playerIDPath)
	default:
		return nil, false, nil
	}
	return table, true, err
}

// AllPlayers parses the complete player ID reference table
func (d *Directory) AllPlayers() ([]models.Player, error) {
	table, err := readTable(d.playerIDPath)
	if err != nil {
		return nil, err
	}
	return parsePlayers(table)
}

func parsePlayers(table *models.Table) ([]models.Player, error) {
	idx := make(map[string]int, len(table.Headers))
	for i, h := range table.Headers {
		idx[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"PERSON_ID", "DISPLAY_LAST_COMMA_FIRST"} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("player table missing column %s", required)
		}
	}

	get := func(row []string, col string) string {
		if i, ok := idx[col]; ok && i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	players := make([]models.Player, 0, len(table.Rows))
	for line, row := range table.Rows {
		id, err := strconv.ParseInt(get(row, "PERSON_ID"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid PERSON_ID: %w", line+2, err)
		}
		status, _ := strconv.Atoi(get(row, "ROSTERSTATUS"))
		players = append(players, models.Player{
			PersonID:         id,
			DisplayLastFirst: get(row, "DISPLAY_LAST_COMMA_FIRST"),
			RosterStatus:     status,
			FromYear:         get(row, "FROM_YEAR"),
			ToYear:           get(row, "TO_YEAR"),
			PlayerCode:       get(row, "PLAYERCODE"),
		})
	}
	return players, nil
}

func readTable(path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	headers, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	// spreadsheet exports often start with a byte order mark
	headers[0] = strings.TrimPrefix(headers[0], "\ufeff")

	table := &models.Table{Headers: headers}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// LastCommaFirst turns "Stephen Curry" into "Curry, Stephen". The first word
// is the first name and the rest the last name; single words and names that
// already contain a comma are returned trimmed.
func LastCommaFirst(name string) string {
	name = strings.TrimSpace(name)
	if strings.Contains(name, ",") {
		return name
	}
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return name
	}
	return strings.Join(fields[1:], " ") + ", " + fields[0]
}
