package pudconv

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/guffzilla/pudconv/internal/model"
)

func chunk(tag string, payload []byte) []byte {
	b := make([]byte, 0, 8+len(payload))
	b = append(b, tag...)
	var l [4]byte
	binary.BigEndian.PutUint32(l[:], uint32(len(payload)))
	b = append(b, l[:]...)
	return append(b, payload...)
}

func mapFile(chunks ...[]byte) []byte {
	var body bytes.Buffer
	for _, c := range chunks {
		body.Write(c)
	}
	var buf bytes.Buffer
	buf.WriteString("TYPE")
	var size [4]byte
	binary.BigEndian.PutUint32(size[:], uint32(12+body.Len()))
	buf.Write(size[:])
	buf.WriteString("WAR2")
	buf.Write(body.Bytes())
	return buf.Bytes()
}

func u16be(v uint16) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return b[:]
}

// fixture builds a small but complete map: 8x8 terrain, two start
// locations, one goldmine.
func fixture() []byte {
	terrain := append(u16be(8), u16be(8)...)
	for i := 0; i < 64; i++ {
		switch {
		case i < 16:
			terrain = append(terrain, u16be(0x10)...) // water
		case i < 48:
			terrain = append(terrain, u16be(0x00)...) // grass
		default:
			terrain = append(terrain, u16be(0x50)...) // forest
		}
	}

	units := []byte{94}
	units = append(units, u16be(1)...)
	units = append(units, u16be(1)...)
	units = append(units, 0, 60)
	units = append(units, 95)
	units = append(units, u16be(6)...)
	units = append(units, u16be(6)...)
	units = append(units, 1, 60)
	units = append(units, 92)
	units = append(units, u16be(3)...)
	units = append(units, u16be(3)...)
	units = append(units, 15, 4)

	return mapFile(
		chunk("ERA ", u16be(0)),
		chunk("MTXM", terrain),
		chunk("UNIT", units),
	)
}

func TestDecodeEndToEnd(t *testing.T) {
	m, diags, err := Decode(fixture())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(diags) != 0 {
		t.Errorf("unexpected diagnostics: %v", diags)
	}
	if m.Width != 8 || m.Height != 8 {
		t.Errorf("dimensions = %dx%d, want 8x8", m.Width, m.Height)
	}
	if len(m.Units) != 3 || len(m.Resources) != 1 {
		t.Errorf("units=%d resources=%d, want 3 and 1", len(m.Units), len(m.Resources))
	}
}

func TestDeriveViews(t *testing.T) {
	m, _, err := Decode(fixture())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	runs, markers, stats := Derive(m)
	if len(runs) != 3 {
		t.Errorf("got %d runs, want 3", len(runs))
	}
	// Two player starts plus the goldmine.
	if len(markers) != 3 {
		t.Fatalf("got %d markers, want 3", len(markers))
	}
	if markers[0].Kind != model.MarkerPlayer || markers[2].Kind != model.MarkerGoldmine {
		t.Errorf("marker kinds = %s, %s, %s", markers[0].Kind, markers[1].Kind, markers[2].Kind)
	}
	if stats.Water != 25 || stats.Grass != 50 || stats.Forest != 25 {
		t.Errorf("stats = %+v", stats)
	}
}

// TestProjectionsDeterministic decodes the same buffer twice and checks
// all three projections are byte-identical.
func TestProjectionsDeterministic(t *testing.T) {
	data := fixture()

	m1, _, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	m2, _, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	j1, err := ProjectJSON(m1)
	if err != nil {
		t.Fatalf("ProjectJSON failed: %v", err)
	}
	j2, _ := ProjectJSON(m2)
	if !bytes.Equal(j1, j2) {
		t.Error("JSON projections differ")
	}

	c1, r1, err := ProjectCompressed(m1, CodecGzip)
	if err != nil {
		t.Fatalf("ProjectCompressed failed: %v", err)
	}
	c2, r2, _ := ProjectCompressed(m2, CodecGzip)
	if !bytes.Equal(c1, c2) {
		t.Error("compressed projections differ")
	}
	if r1 != r2 {
		t.Errorf("size reports differ: %+v vs %+v", r1, r2)
	}

	b1, _, err := ProjectBinary(m1)
	if err != nil {
		t.Fatalf("ProjectBinary failed: %v", err)
	}
	b2, _, _ := ProjectBinary(m2)
	if !bytes.Equal(b1, b2) {
		t.Error("binary projections differ")
	}
}

func TestProjectCompressedReport(t *testing.T) {
	m, _, err := Decode(fixture())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	doc, err := ProjectJSON(m)
	if err != nil {
		t.Fatalf("ProjectJSON failed: %v", err)
	}
	packed, report, err := ProjectCompressed(m, CodecGzip)
	if err != nil {
		t.Fatalf("ProjectCompressed failed: %v", err)
	}

	if report.OriginalSize != len(doc) {
		t.Errorf("OriginalSize = %d, want %d", report.OriginalSize, len(doc))
	}
	if report.EncodedSize != len(packed) {
		t.Errorf("EncodedSize = %d, want %d", report.EncodedSize, len(packed))
	}
	want := float64(len(doc)-len(packed)) / float64(len(doc)) * 100
	if report.Ratio != want {
		t.Errorf("Ratio = %v, want %v", report.Ratio, want)
	}
}

// TestProjectBinaryGoldmine checks the goldmine marker wire layout end
// to end: marker code 1 with the amount in little-endian byte order.
func TestProjectBinaryGoldmine(t *testing.T) {
	// A goldmine unit with health 4 yields a 10000 gold deposit.
	units := []byte{92}
	units = append(units, u16be(5)...)
	units = append(units, u16be(5)...)
	units = append(units, 15, 4)

	m, _, err := Decode(mapFile(chunk("UNIT", units)))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	packed, report, err := ProjectBinary(m)
	if err != nil {
		t.Fatalf("ProjectBinary failed: %v", err)
	}
	if report.EncodedSize != len(packed) {
		t.Errorf("EncodedSize = %d, want %d", report.EncodedSize, len(packed))
	}

	// Layout: w(2) h(2) tileset(1) run_count(2)=0 marker_count(2)=1,
	// marker at offset 9.
	if len(packed) != 18 {
		t.Fatalf("packed %d bytes, want 18", len(packed))
	}
	le := binary.LittleEndian
	if n := le.Uint16(packed[7:]); n != 1 {
		t.Fatalf("marker count = %d, want 1", n)
	}
	if packed[9] != 1 {
		t.Errorf("marker code = %d, want 1 (goldmine)", packed[9])
	}
	if x := le.Uint16(packed[10:]); x != 5 {
		t.Errorf("marker x = %d, want 5", x)
	}
	if got, want := packed[14:18], []byte{0x10, 0x27, 0x00, 0x00}; !bytes.Equal(got, want) {
		t.Errorf("amount bytes = % x, want % x", got, want)
	}
}
