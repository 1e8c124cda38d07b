// Package export serializes the decoded map and its derived views into
// the structured-text and compressed projections.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/guffzilla/pudconv/internal/model"
)

// Document is the structured-text projection: a self-describing view of
// the decoded map plus every derived structure. It is lossless with
// respect to the derived data, not the raw tile grid.
type Document struct {
	Name         string             `json:"name,omitempty"`
	Description  string             `json:"description,omitempty"`
	Width        uint16             `json:"width"`
	Height       uint16             `json:"height"`
	MaxPlayers   uint16             `json:"max_players"`
	Tileset      uint8              `json:"tileset"`
	TilesetName  string             `json:"tileset_name"`
	TerrainRuns  []model.TerrainRun `json:"terrain_runs"`
	Markers      []model.Marker     `json:"markers"`
	TerrainStats model.TerrainStats `json:"terrain_stats"`
}

// NewDocument assembles the projection input from the model and its
// derived views.
func NewDocument(m *model.MapModel, runs []model.TerrainRun, markers []model.Marker, stats model.TerrainStats) *Document {
	if runs == nil {
		runs = []model.TerrainRun{}
	}
	if markers == nil {
		markers = []model.Marker{}
	}
	return &Document{
		Name:         m.Name,
		Description:  m.Description,
		Width:        m.Width,
		Height:       m.Height,
		MaxPlayers:   m.MaxPlayers,
		Tileset:      m.Tileset,
		TilesetName:  model.TilesetName(m.Tileset),
		TerrainRuns:  runs,
		Markers:      markers,
		TerrainStats: stats,
	}
}

// EncodeJSON renders the document as indented JSON. Field order is fixed
// by the struct, so identical inputs produce byte-identical output.
func EncodeJSON(doc *Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}
