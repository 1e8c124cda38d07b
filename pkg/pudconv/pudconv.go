// Package pudconv decodes tile-based strategy-game map files and
// re-encodes them as compact projections.
//
// The decoder operates on a caller-supplied byte buffer and never
// performs I/O itself. A decode yields an immutable model; runs, markers
// and statistics are pure derived views recomputed on demand.
//
// Example usage:
//
//	data, _ := os.ReadFile("garden.pud")
//	m, diags, err := pudconv.Decode(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	doc, _ := pudconv.ProjectJSON(m)
//	os.WriteFile("garden.json", doc, 0o644)
package pudconv

import (
	"fmt"

	"github.com/guffzilla/pudconv/internal/binary"
	"github.com/guffzilla/pudconv/internal/export"
	"github.com/guffzilla/pudconv/internal/marker"
	"github.com/guffzilla/pudconv/internal/model"
	"github.com/guffzilla/pudconv/internal/terrain"
)

// Codec selects the compressor for ProjectCompressed.
type Codec = export.Codec

const (
	CodecGzip = export.CodecGzip
	CodecLZ4  = export.CodecLZ4
	CodecXZ   = export.CodecXZ
)

// SizeReport accounts for a projection's size against its source.
type SizeReport = export.SizeReport

// Decode parses a map buffer and returns the decoded model plus any
// non-fatal diagnostics observed along the way.
//
// Only a buffer shorter than the 12-byte header or an unrecognized magic
// tag fails (with a *binary.FormatError); truncated chunks, oversized
// declared lengths and unknown tags are recovered locally, falling back
// to 128x128 dimensions and 4 players where chunks are missing.
func Decode(data []byte) (*model.MapModel, []string, error) {
	r := binary.NewReader(data)
	m, err := r.Decode()
	if err != nil {
		return nil, nil, err
	}
	return m, r.Diagnostics(), nil
}

// Derive recomputes the run stream, marker list and terrain statistics
// for a decoded map. The results hold no reference to the model.
func Derive(m *model.MapModel) ([]model.TerrainRun, []model.Marker, model.TerrainStats) {
	runs := terrain.EncodeRuns(m.Tiles, m.Width, m.Tileset)
	markers := marker.Extract(m)
	stats := terrain.Stats(m.Tiles, m.Tileset)
	return runs, markers, stats
}

// ProjectJSON renders the structured-text projection.
func ProjectJSON(m *model.MapModel) ([]byte, error) {
	runs, markers, stats := Derive(m)
	return export.EncodeJSON(export.NewDocument(m, runs, markers, stats))
}

// ProjectCompressed renders the structured-text projection and
// compresses it with the given codec, reporting both sizes.
func ProjectCompressed(m *model.MapModel, codec Codec) ([]byte, SizeReport, error) {
	doc, err := ProjectJSON(m)
	if err != nil {
		return nil, SizeReport{}, err
	}
	packed, err := export.Compress(doc, codec)
	if err != nil {
		return nil, SizeReport{}, &Error{Code: "compress_failed", Message: "compress projection", Cause: err}
	}
	return packed, export.NewSizeReport(len(doc), len(packed)), nil
}

// ProjectBinary renders the compact fixed-layout binary projection. The
// size report compares against the structured-text projection.
func ProjectBinary(m *model.MapModel) ([]byte, SizeReport, error) {
	doc, err := ProjectJSON(m)
	if err != nil {
		return nil, SizeReport{}, err
	}
	runs, markers, _ := Derive(m)
	packed := binary.NewWriter().Encode(m, runs, markers)
	return packed, export.NewSizeReport(len(doc), len(packed)), nil
}

// Error represents a pudconv error.
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}
