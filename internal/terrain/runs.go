package terrain

import (
	"github.com/guffzilla/pudconv/internal/model"
)

// EncodeRuns scans the grid in strict row-major order and emits the
// minimal run sequence. A run breaks whenever either the category or the
// raw tile id changes, so expanding each run by its count reproduces the
// original tile sequence exactly. A stretch longer than the u16 count
// field splits into adjacent same-tile runs rather than wrapping the
// counter. An empty grid yields an empty list.
func EncodeRuns(tiles []uint16, width uint16, tileset uint8) []model.TerrainRun {
	if len(tiles) == 0 || width == 0 {
		return nil
	}

	runs := make([]model.TerrainRun, 0, 64)
	open := model.TerrainRun{
		Category: Classify(tiles[0], tileset),
		TileID:   tiles[0],
		Count:    1,
	}

	for i := 1; i < len(tiles); i++ {
		cat := Classify(tiles[i], tileset)
		if cat == open.Category && tiles[i] == open.TileID && open.Count < 0xFFFF {
			open.Count++
			continue
		}
		runs = append(runs, open)
		open = model.TerrainRun{
			Category: cat,
			TileID:   tiles[i],
			Count:    1,
			StartX:   uint16(i % int(width)),
			StartY:   uint16(i / int(width)),
		}
	}

	return append(runs, open)
}

// ExpandRuns reverses EncodeRuns, reproducing the row-major tile
// sequence. Used by the round-trip tests and by callers that want the
// raw grid back from a run stream.
func ExpandRuns(runs []model.TerrainRun) []uint16 {
	var total int
	for _, r := range runs {
		total += int(r.Count)
	}
	tiles := make([]uint16, 0, total)
	for _, r := range runs {
		for i := uint16(0); i < r.Count; i++ {
			tiles = append(tiles, r.TileID)
		}
	}
	return tiles
}

// Stats computes the legacy six-bucket area percentages over the full
// grid. Deep water folds into water, coast reports as shore, dark rock
// folds into rock and light grass into grass. Sand, snow and swamp are
// not part of the fixed bucket set, so Coverage can fall below 100 on
// non-default tilesets.
func Stats(tiles []uint16, tileset uint8) model.TerrainStats {
	stats := model.TerrainStats{Total: uint32(len(tiles))}
	if len(tiles) == 0 {
		return stats
	}

	var water, forest, grass, rock, shore, dirt int
	for _, id := range tiles {
		switch Classify(id, tileset) {
		case model.CategoryWater, model.CategoryDeepWater:
			water++
		case model.CategoryForest:
			forest++
		case model.CategoryGrass, model.CategoryGrassLight:
			grass++
		case model.CategoryRock, model.CategoryDarkRock:
			rock++
		case model.CategoryCoast:
			shore++
		case model.CategoryDirt:
			dirt++
		}
	}

	pct := func(n int) float64 {
		return float64(n) / float64(len(tiles)) * 100
	}
	stats.Water = pct(water)
	stats.Forest = pct(forest)
	stats.Grass = pct(grass)
	stats.Rock = pct(rock)
	stats.Shore = pct(shore)
	stats.Dirt = pct(dirt)
	stats.Coverage = stats.Water + stats.Forest + stats.Grass + stats.Rock + stats.Shore + stats.Dirt
	return stats
}
