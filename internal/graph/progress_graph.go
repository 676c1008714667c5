package graph

import (
	"context"
	"fmt"

	"celeste-saves/internal/save"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// ProgressGraph mirrors save progress into Neo4j as
// (:Player)-[:OWNS]->(:Save)-[:PLAYED {side}]->(:Area).
type ProgressGraph struct {
	driver neo4j.DriverWithContext
}

// NewProgressGraph creates a new progress graph writer.
func NewProgressGraph(driver neo4j.DriverWithContext) *ProgressGraph {
	return &ProgressGraph{driver: driver}
}

// EnsureSchema creates constraints and seeds the known areas.
func (pg *ProgressGraph) EnsureSchema(ctx context.Context) error {
	session := pg.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	constraints := []string{
		"CREATE CONSTRAINT IF NOT EXISTS FOR (a:Area) REQUIRE a.sid IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (s:Save) REQUIRE s.path IS UNIQUE",
		"CREATE CONSTRAINT IF NOT EXISTS FOR (p:Player) REQUIRE p.name IS UNIQUE",
	}

	for _, c := range constraints {
		if _, err := session.Run(ctx, c, nil); err != nil {
			return fmt.Errorf("create constraint: %w", err)
		}
	}

	for _, a := range save.AllAreas() {
		_, err := session.Run(ctx, `
			MERGE (a:Area {sid: $sid})
			SET a.name = $name,
			    a.title = $title,
			    a.chapter = $chapter
		`, map[string]any{
			"sid":     a.SID(),
			"name":    a.String(),
			"title":   a.Title(),
			"chapter": a.Chapter(),
		})
		if err != nil {
			return fmt.Errorf("upsert area %s: %w", a, err)
		}
	}

	log.Debug().Int("areas", save.AreaCount).Msg("Graph schema ensured")
	return nil
}

// Upsert writes one save summary and its per-side progress.
func (pg *ProgressGraph) Upsert(ctx context.Context, savePath string, summary *save.Summary) error {
	session := pg.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	_, err := session.Run(ctx, `
		MERGE (p:Player {name: $player})
		MERGE (s:Save {path: $path})
		SET s += $stats
		MERGE (p)-[:OWNS]->(s)
	`, map[string]any{
		"player": summary.PlayerName,
		"path":   savePath,
		"stats":  SaveProperties(summary),
	})
	if err != nil {
		return fmt.Errorf("upsert save %s: %w", savePath, err)
	}

	_, err = session.Run(ctx, `
		MATCH (s:Save {path: $path})
		UNWIND $sides AS side
		MATCH (a:Area {sid: side.sid})
		MERGE (s)-[r:PLAYED {side: side.side}]->(a)
		SET r.strawberries = side.strawberries,
		    r.deaths = side.deaths,
		    r.heartGem = side.heartGem,
		    r.completed = side.completed
	`, map[string]any{
		"path":  savePath,
		"sides": SideParams(summary),
	})
	if err != nil {
		return fmt.Errorf("upsert sides for %s: %w", savePath, err)
	}

	log.Info().Str("path", savePath).Str("player", summary.PlayerName).Msg("Upserted save into graph")
	return nil
}

// SaveProperties returns the scalar properties stored on a Save node.
func SaveProperties(summary *save.Summary) map[string]any {
	return map[string]any{
		"version":            summary.Version,
		"cheatMode":          summary.CheatMode,
		"assistMode":         summary.AssistMode,
		"variantMode":        summary.VariantMode,
		"strawberries":       summary.Strawberries,
		"goldenStrawberries": summary.GoldenStrawberries,
		"deaths":             summary.Deaths,
		"jumps":              summary.Jumps,
		"dashes":             summary.Dashes,
		"wallJumps":          summary.WallJumps,
	}
}

// SideParams returns one parameter map per area side, in chapter order.
func SideParams(summary *save.Summary) []map[string]any {
	params := make([]map[string]any, 0, save.AreaCount*save.SideCount)
	for _, entry := range summary.Progress.Areas() {
		for _, side := range save.AllSides() {
			p := entry.Progress.Side(side)
			params = append(params, map[string]any{
				"sid":          entry.Area.SID(),
				"side":         side.String(),
				"strawberries": p.Strawberries,
				"deaths":       p.Deaths,
				"heartGem":     p.HeartGem,
				"completed":    p.Completed,
			})
		}
	}
	return params
}
