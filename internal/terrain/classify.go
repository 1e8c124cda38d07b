// Package terrain classifies raw tile ids into semantic categories and
// re-encodes decoded grids as run-length streams and area statistics.
package terrain

import (
	"github.com/guffzilla/pudconv/internal/model"
)

// Classify maps a (tile id, tileset) pair to its terrain category. The
// function is total: every u16 tile id under every tileset yields a
// defined category.
//
// Two ranges share their numeric space between tilesets (woodland-style
// tiles render as forest, snow, sand or swamp depending on the palette),
// and three ranges disambiguate dirt from grass with a fixed modulus
// test. The modulus thresholds are calibrated against the retail tile
// sets; keep them as-is for output compatibility.
func Classify(tileID uint16, tileset uint8) model.TerrainCategory {
	switch {
	case tileID <= 0x0F:
		return model.CategoryGrass
	case tileID <= 0x1F:
		return model.CategoryWater
	case tileID <= 0x2F:
		return model.CategoryDeepWater
	case tileID <= 0x4F:
		return model.CategoryCoast
	case tileID <= 0x6F:
		return vegetation(tileset)
	case tileID <= 0x7F:
		return model.CategoryRock
	case tileID <= 0x8F:
		return dirtOrGrass(tileID, 4)
	case tileID <= 0xAF:
		return dirtOrGrass(tileID, 8)
	case tileID <= 0xCF:
		return vegetation(tileset)
	case tileID <= 0xEF:
		return model.CategoryDarkRock
	case tileID <= 0xFF:
		return dirtOrGrass(tileID, 16)
	default:
		return model.CategoryGrass
	}
}

// vegetation resolves the tileset-dependent tile ranges.
func vegetation(tileset uint8) model.TerrainCategory {
	switch tileset {
	case 0:
		return model.CategoryForest
	case 1:
		return model.CategorySnow
	case 2:
		return model.CategorySand
	case 3:
		return model.CategorySwamp
	default:
		return model.CategoryGrass
	}
}

// dirtOrGrass applies the modulus heuristic for the mixed ranges. Most
// tiles there are grass variants, so grass is the safe default.
func dirtOrGrass(tileID, mod uint16) model.TerrainCategory {
	if tileID%mod == 0 {
		return model.CategoryDirt
	}
	return model.CategoryGrass
}
