package binary

import (
	"bytes"
	"encoding/binary"

	"github.com/guffzilla/pudconv/internal/model"
)

// Writer encodes the derived map views into the compact fixed-layout
// binary projection. The layout is little-endian throughout:
//
//	width:u16 height:u16 tileset:u8
//	run_count:u16 [category:u8 tile_id:u16 count:u16 start_x:u16 start_y:u16]*
//	marker_count:u16 [kind:u8 x:u16 y:u16 amount:u32]*
type Writer struct {
	buf bytes.Buffer
}

// NewWriter creates a compact binary writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Encode serializes the model plus its derived runs and markers and
// returns the packed bytes. Counts are clamped to the u16 field width;
// anything beyond the first 65535 entries is not representable.
func (w *Writer) Encode(m *model.MapModel, runs []model.TerrainRun, markers []model.Marker) []byte {
	w.buf.Reset()

	w.putU16(m.Width)
	w.putU16(m.Height)
	w.buf.WriteByte(m.Tileset)

	if len(runs) > 0xFFFF {
		runs = runs[:0xFFFF]
	}
	w.putU16(uint16(len(runs)))
	for _, run := range runs {
		w.buf.WriteByte(model.CategoryCode(run.Category))
		w.putU16(run.TileID)
		w.putU16(run.Count)
		w.putU16(run.StartX)
		w.putU16(run.StartY)
	}

	if len(markers) > 0xFFFF {
		markers = markers[:0xFFFF]
	}
	w.putU16(uint16(len(markers)))
	for _, mk := range markers {
		w.buf.WriteByte(model.MarkerCode(mk.Kind))
		w.putU16(mk.X)
		w.putU16(mk.Y)
		w.putU32(mk.Amount)
	}

	out := make([]byte, w.buf.Len())
	copy(out, w.buf.Bytes())
	return out
}

func (w *Writer) putU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) putU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}
