package models

// Player is a row of the player ID reference table
type Player struct {
	PersonID         int64  `json:"person_id"`
	DisplayLastFirst string `json:"display_last_comma_first"`
	RosterStatus     int    `json:"roster_status"`
	FromYear         string `json:"from_year"`
	ToYear           string `json:"to_year"`
	PlayerCode       string `json:"player_code"`
}

// Table is a generic header/rows table used for bulk reference dumps
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}
