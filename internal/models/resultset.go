package models

// ResultSet is one table of a stats.nba.com response. Column order is
// defined by Headers and may change between API versions.
type ResultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

// ColumnIndex maps header names to their position
func (rs *ResultSet) ColumnIndex() map[string]int {
	idx := make(map[string]int, len(rs.Headers))
	for i, h := range rs.Headers {
		idx[h] = i
	}
	return idx
}
