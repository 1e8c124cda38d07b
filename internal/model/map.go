package model

// MapModel is the complete decoded map in a format-agnostic way.
// This is the unified internal representation consumed by every
// projection and derived view.
type MapModel struct {
	Header      Header
	Width       uint16
	Height      uint16
	MaxPlayers  uint16
	Name        string
	Description string
	Version     uint16
	Tileset     uint8
	Tiles       []uint16 // Row-major terrain grid, len = Width*Height when both are set
	Units       []UnitRecord
	Resources   []ResourceRecord
}

// Header holds the 12-byte container header fields.
type Header struct {
	Magic        [4]byte // "TYPE" or "FORM"
	DeclaredSize uint32  // Total file size as declared by the writer
	TypeTag      [4]byte // Format discriminator, "WAR2" for retail maps
}

// UnitRecord is one entry of the unit chunk.
type UnitRecord struct {
	Type   uint8  // Unit type code
	X      uint16 // Tile coordinate
	Y      uint16
	Owner  uint8 // 0-7 player slots, 15 neutral
	Health uint8
}

// ResourceRecord is a resource deposit derived during decode.
type ResourceRecord struct {
	Type   uint8 // 0 gold, 1 oil, others reserved
	X      uint16
	Y      uint16
	Amount uint32
}

// TerrainCategory is the semantic class of a tile id.
type TerrainCategory string

const (
	CategoryWater      TerrainCategory = "water"
	CategoryDeepWater  TerrainCategory = "deep-water"
	CategoryCoast      TerrainCategory = "coast"
	CategoryGrass      TerrainCategory = "grass"
	CategoryGrassLight TerrainCategory = "grass-light"
	CategoryRock       TerrainCategory = "rock"
	CategoryDarkRock   TerrainCategory = "dark-rock"
	CategoryDirt       TerrainCategory = "dirt"
	CategorySand       TerrainCategory = "sand"
	CategorySnow       TerrainCategory = "snow"
	CategoryForest     TerrainCategory = "forest"
	CategorySwamp      TerrainCategory = "swamp"
)

// CategoryCode maps a terrain category to its fixed binary-projection code.
// Unlisted categories encode as CodeUnknown.
func CategoryCode(c TerrainCategory) uint8 {
	if code, ok := categoryCodes[c]; ok {
		return code
	}
	return CodeUnknown
}

// CodeUnknown is the sentinel for categories and marker kinds without a code.
const CodeUnknown = 255

var categoryCodes = map[TerrainCategory]uint8{
	CategoryWater:      0,
	CategoryDeepWater:  1,
	CategoryCoast:      2,
	CategoryGrass:      3,
	CategoryGrassLight: 4,
	CategoryRock:       5,
	CategoryDarkRock:   6,
	CategoryDirt:       7,
	CategorySand:       8,
	CategorySnow:       9,
	CategoryForest:     10,
	CategorySwamp:      11,
}

// TerrainRun is a maximal row-major sequence of tiles sharing both
// category and raw tile id.
type TerrainRun struct {
	Category TerrainCategory `json:"category"`
	TileID   uint16          `json:"tile_id"`
	Count    uint16          `json:"count"`
	StartX   uint16          `json:"start_x"`
	StartY   uint16          `json:"start_y"`
}

// MarkerKind classifies a derived point of interest.
type MarkerKind string

const (
	MarkerPlayer   MarkerKind = "player"
	MarkerGoldmine MarkerKind = "goldmine"
	MarkerOil      MarkerKind = "oil"
	MarkerResource MarkerKind = "resource"
)

// MarkerCode maps a marker kind to its fixed binary-projection code.
func MarkerCode(k MarkerKind) uint8 {
	if code, ok := markerCodes[k]; ok {
		return code
	}
	return CodeUnknown
}

var markerCodes = map[MarkerKind]uint8{
	MarkerPlayer:   0,
	MarkerGoldmine: 1,
	MarkerOil:      2,
	MarkerResource: 3,
}

// Marker is a derived point annotation. Markers are recomputed from the
// model on demand and hold no back-reference to it.
type Marker struct {
	Kind   MarkerKind `json:"kind"`
	X      uint16     `json:"x"`
	Y      uint16     `json:"y"`
	Label  string     `json:"label"`
	Amount uint32     `json:"amount,omitempty"`
}

// TerrainStats reports per-category area percentages over the full grid.
// Only the six legacy buckets are reported; sand, snow and swamp tiles on
// non-default tilesets are not counted, so Coverage can fall below 100.
type TerrainStats struct {
	Water    float64 `json:"water"`
	Forest   float64 `json:"forest"`
	Grass    float64 `json:"grass"`
	Rock     float64 `json:"rock"`
	Shore    float64 `json:"shore"`
	Dirt     float64 `json:"dirt"`
	Total    uint32  `json:"total_tiles"`
	Coverage float64 `json:"coverage"`
}

// Unit type codes with decoder-level meaning.
const (
	UnitGoldmine   = 92
	UnitOilPatch   = 93
	UnitHumanStart = 94
	UnitOrcStart   = 95
)

// Resource type codes.
const (
	ResourceGold = 0
	ResourceOil  = 1
)

// NeutralOwner is the owner slot used for unowned map features.
const NeutralOwner = 15

// TilesetName returns the display name for a tileset id.
func TilesetName(id uint8) string {
	switch id {
	case 0:
		return "forest"
	case 1:
		return "winter"
	case 2:
		return "wasteland"
	case 3:
		return "swamp"
	default:
		return "unknown"
	}
}

// unitNames maps unit type codes to display names. Codes not listed
// render as "unknown". Only codes the summary view cares about are kept.
var unitNames = map[uint8]string{
	0:  "Peasant",
	1:  "Footman",
	2:  "Knight",
	3:  "Archer",
	4:  "Ranger",
	5:  "Mage",
	6:  "Paladin",
	7:  "Ogre",
	8:  "Dwarven Demolition Squad",
	9:  "Goblin Sappers",
	58: "Farm",
	59: "Pig Farm",
	60: "Town Hall",
	61: "Human Barracks",
	62: "Church",
	63: "Altar of Storms",
	66: "Stables",
	67: "Ogre Mound",
	75: "Great Hall",
	88: "Keep",
	89: "Stronghold",
	90: "Castle",
	91: "Fortress",
	92: "Gold Mine",
	93: "Oil Patch",
	94: "Human Start Location",
	95: "Orc Start Location",
}

// UnitName returns the display name for a unit type code.
func UnitName(code uint8) string {
	if name, ok := unitNames[code]; ok {
		return name
	}
	return "unknown"
}

// ResourceName returns the display name for a resource type code.
func ResourceName(code uint8) string {
	switch code {
	case ResourceGold:
		return "Gold Mine"
	case ResourceOil:
		return "Oil Patch"
	default:
		return "unknown"
	}
}

// NewMapModel creates an empty model with non-nil record slices. The
// decoder fills in dimension and player-count defaults after the chunk
// walk, for fields no chunk established.
func NewMapModel() *MapModel {
	return &MapModel{
		Units:     make([]UnitRecord, 0),
		Resources: make([]ResourceRecord, 0),
	}
}
