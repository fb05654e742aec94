package database

import (
	"context"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Status reports store availability for the diagnostics endpoint.
type Status struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name,omitempty"`
	ConnectionStatus string   `json:"connection_status"`
	Tables           []string `json:"tables"`
}

// Check pings the store and lists up to ten visible tables. It never returns
// an error; a failed round trip is reported inside the status payload.
func Check(ctx context.Context, pool *pgxpool.Pool) Status {
	st := Status{
		Backend:          "running",
		Database:         "not available",
		DatabaseURL:      "not set",
		ConnectionStatus: "not connected",
		Tables:           []string{},
	}
	if os.Getenv("DATABASE_URL") != "" {
		st.DatabaseURL = "set"
	}
	if pool == nil {
		return st
	}
	if err := pool.Ping(ctx); err != nil {
		st.Database = "error: " + err.Error()
		return st
	}
	st.Database = "available"
	st.ConnectionStatus = "connected"

	if err := pool.QueryRow(ctx, `SELECT current_database()`).Scan(&st.DatabaseName); err != nil {
		st.Database = "connected but error: " + err.Error()
		return st
	}

	rows, err := pool.Query(ctx, `SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public' ORDER BY table_name LIMIT 10`)
	if err != nil {
		st.Database = "connected but error: " + err.Error()
		return st
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			st.Database = "connected but error: " + err.Error()
			return st
		}
		st.Tables = append(st.Tables, name)
	}
	st.Database = "connected and working"
	return st
}
