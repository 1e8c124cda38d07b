// Package marker derives point-of-interest annotations from decoded
// unit and resource records.
package marker

import (
	"fmt"

	"github.com/guffzilla/pudconv/internal/model"
)

// Extract computes the marker list for a decoded map. Player markers
// come from start-location units owned by a player slot; resource
// markers mirror the resource records. Markers keep the order of their
// source records and are never deduplicated, so two deposits at the same
// coordinate produce two markers.
func Extract(m *model.MapModel) []model.Marker {
	markers := make([]model.Marker, 0, len(m.Resources))

	for _, u := range m.Units {
		if u.Owner > 7 {
			continue
		}
		if u.Type != model.UnitHumanStart && u.Type != model.UnitOrcStart {
			continue
		}
		markers = append(markers, model.Marker{
			Kind:  model.MarkerPlayer,
			X:     u.X,
			Y:     u.Y,
			Label: fmt.Sprintf("Player %d start", u.Owner+1),
		})
	}

	for _, res := range m.Resources {
		kind := model.MarkerResource
		switch res.Type {
		case model.ResourceGold:
			kind = model.MarkerGoldmine
		case model.ResourceOil:
			kind = model.MarkerOil
		}
		markers = append(markers, model.Marker{
			Kind:   kind,
			X:      res.X,
			Y:      res.Y,
			Label:  model.ResourceName(res.Type),
			Amount: res.Amount,
		})
	}

	return markers
}
