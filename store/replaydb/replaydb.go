// Package replaydb queries archived replay files with DuckDB. Every parquet
// file under the given roots is exposed as a single "ticks" view; files whose
// parent directory is tmp/ are still being written and are ignored.
package replaydb

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
)

type DB struct {
	db *sql.DB
}

// MatchSummary is one archived match.
type MatchSummary struct {
	MatchID  string `json:"match_id"`
	Scenario string `json:"scenario"`
	Ticks    int    `json:"ticks"`
	Winner   string `json:"winner"`
	File     string `json:"file"`
}

// AbilityTotals aggregates impacts across every archived match.
type AbilityTotals struct {
	Ability string `json:"ability"`
	Casts   int    `json:"casts"`
	Damage  int    `json:"damage"`
	Healing int    `json:"healing"`
	Evaded  int    `json:"evaded"`
	Crits   int    `json:"crits"`
}

func Open(roots ...string) (*DB, error) {
	var globs []string
	for _, root := range roots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		glob := filepath.Join(root, "**", "*.parquet")
		globs = append(globs, "'"+escapeSQLString(glob)+"'")
	}
	if len(globs) == 0 {
		return nil, fmt.Errorf("no replay roots given")
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, err
	}
	_, _ = db.Exec("PRAGMA threads=4")

	view := `CREATE OR REPLACE VIEW ticks AS
		SELECT * FROM read_parquet([` + strings.Join(globs, ",") + `], filename=true, union_by_name=true)
		WHERE NOT regexp_matches(filename, '[/\\]tmp[/\\][^/\\]*$')`
	if _, err := db.Exec(view); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create ticks view: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error { return d.db.Close() }

func escapeSQLString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// Matches lists every archived match ordered by id.
func (d *DB) Matches(ctx context.Context) ([]MatchSummary, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT
			match_id,
			MIN(scenario)::VARCHAR,
			(MAX(tick) + 1)::INTEGER,
			COALESCE(MAX(winner) FILTER (WHERE game_over), '')::VARCHAR,
			MIN(filename)::VARCHAR
		FROM ticks
		GROUP BY match_id
		ORDER BY match_id`)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var out []MatchSummary
	for rows.Next() {
		var m MatchSummary
		if err := rows.Scan(&m.MatchID, &m.Scenario, &m.Ticks, &m.Winner, &m.File); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Abilities totals the recorded impacts per ability. Casts counts distinct
// (match, tick, caster) triples.
func (d *DB) Abilities(ctx context.Context) ([]AbilityTotals, error) {
	rows, err := d.db.QueryContext(ctx, `
		WITH impacts AS (
			SELECT match_id, tick, unnest(impacts) AS imp FROM ticks
		)
		SELECT
			imp.ability::VARCHAR,
			COUNT(DISTINCT (match_id, tick, imp.caster))::INTEGER,
			COALESCE(SUM(imp.amount) FILTER (WHERE imp.effect = 'DAMAGE'), 0)::INTEGER,
			COALESCE(SUM(imp.amount) FILTER (WHERE imp.effect = 'HEAL'), 0)::INTEGER,
			COUNT(*) FILTER (WHERE imp.evaded)::INTEGER,
			COUNT(*) FILTER (WHERE imp.effect = 'DAMAGE' AND imp.outcome = 'CRIT')::INTEGER
		FROM impacts
		GROUP BY 1
		ORDER BY 1`)
	if err != nil {
		return nil, fmt.Errorf("query abilities: %w", err)
	}
	defer rows.Close()

	var out []AbilityTotals
	for rows.Next() {
		var a AbilityTotals
		if err := rows.Scan(&a.Ability, &a.Casts, &a.Damage, &a.Healing, &a.Evaded, &a.Crits); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// WinRates counts wins per team across finished matches.
func (d *DB) WinRates(ctx context.Context) (map[string]int, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT winner::VARCHAR, COUNT(DISTINCT match_id)::INTEGER
		FROM ticks
		WHERE game_over AND winner IS NOT NULL AND winner <> ''
		GROUP BY winner`)
	if err != nil {
		return nil, fmt.Errorf("query win rates: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var team string
		var n int
		if err := rows.Scan(&team, &n); err != nil {
			return nil, err
		}
		out[team] = n
	}
	return out, rows.Err()
}
