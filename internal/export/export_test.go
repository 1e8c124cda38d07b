package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/guffzilla/pudconv/internal/model"
)

func testDocument() *Document {
	m := &model.MapModel{
		Name:       "Test Map",
		Width:      32,
		Height:     32,
		MaxPlayers: 2,
		Tileset:    0,
	}
	runs := []model.TerrainRun{
		{Category: model.CategoryGrass, TileID: 0, Count: 1024},
	}
	markers := []model.Marker{
		{Kind: model.MarkerGoldmine, X: 5, Y: 5, Label: "Gold Mine", Amount: 10000},
	}
	return NewDocument(m, runs, markers, model.TerrainStats{Grass: 100, Total: 1024, Coverage: 100})
}

func TestEncodeJSONShape(t *testing.T) {
	data, err := EncodeJSON(testDocument())
	if err != nil {
		t.Fatalf("EncodeJSON failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	for _, key := range []string{"width", "height", "tileset", "tileset_name", "terrain_runs", "markers", "terrain_stats"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("projection missing %q field", key)
		}
	}
	if decoded["tileset_name"] != "forest" {
		t.Errorf("tileset_name = %v, want forest", decoded["tileset_name"])
	}
}

func TestEncodeJSONDeterministic(t *testing.T) {
	a, err := EncodeJSON(testDocument())
	if err != nil {
		t.Fatalf("EncodeJSON failed: %v", err)
	}
	b, err := EncodeJSON(testDocument())
	if err != nil {
		t.Fatalf("EncodeJSON failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical documents produced different JSON")
	}
}

func TestEncodeJSONEmptyDerived(t *testing.T) {
	m := &model.MapModel{Width: 128, Height: 128}
	data, err := EncodeJSON(NewDocument(m, nil, nil, model.TerrainStats{}))
	if err != nil {
		t.Fatalf("EncodeJSON failed: %v", err)
	}
	// Empty derived views must render as [] rather than null.
	if bytes.Contains(data, []byte(`"terrain_runs": null`)) {
		t.Error("nil runs rendered as null")
	}
	if bytes.Contains(data, []byte(`"markers": null`)) {
		t.Error("nil markers rendered as null")
	}
}

func TestCompressRoundTrip(t *testing.T) {
	doc, err := EncodeJSON(testDocument())
	if err != nil {
		t.Fatalf("EncodeJSON failed: %v", err)
	}

	for _, codec := range []Codec{CodecGzip, CodecLZ4, CodecXZ} {
		t.Run(string(codec), func(t *testing.T) {
			packed, err := Compress(doc, codec)
			if err != nil {
				t.Fatalf("Compress failed: %v", err)
			}
			restored, err := Decompress(packed, codec)
			if err != nil {
				t.Fatalf("Decompress failed: %v", err)
			}
			if !bytes.Equal(restored, doc) {
				t.Error("round trip does not reproduce the projection")
			}
		})
	}
}

func TestCompressUnknownCodec(t *testing.T) {
	if _, err := Compress([]byte("data"), Codec("zstd")); err == nil {
		t.Error("unknown codec did not fail")
	}
}

func TestCompressDeterministic(t *testing.T) {
	doc := bytes.Repeat([]byte("terrain "), 64)
	a, err := Compress(doc, CodecGzip)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	b, err := Compress(doc, CodecGzip)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("identical inputs compressed differently")
	}
}

func TestSizeReport(t *testing.T) {
	tests := []struct {
		name     string
		original int
		encoded  int
		want     float64
	}{
		{"half", 200, 100, 50},
		{"no savings", 100, 100, 0},
		{"expansion goes negative", 100, 125, -25},
		{"zero original", 0, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewSizeReport(tt.original, tt.encoded)
			if r.Ratio != tt.want {
				t.Errorf("ratio = %v, want %v", r.Ratio, tt.want)
			}
			if r.OriginalSize != tt.original || r.EncodedSize != tt.encoded {
				t.Errorf("report = %+v", r)
			}
		})
	}
}
