// Package query assembles parameterized SQL for the play_by_play table.
//
// Every caller-supplied value reaches the database as a bound "?" argument.
// Column and table names come only from the constants in columns.go, so the
// query text itself never contains request data.
//
// Example:
//
//	sql, args := query.EventsQuery(query.Filter{Team: "Canada"}, query.Page{Limit: 50})
//	// SELECT id, game_date, ... FROM play_by_play WHERE team_name = ?
//	// ORDER BY game_date DESC, period ASC, clock_seconds DESC, id ASC LIMIT ? OFFSET ?
//	// args: ["Canada", 50, 0]
package query
