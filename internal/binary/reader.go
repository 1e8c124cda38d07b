package binary

import (
	"bytes"
	"fmt"

	"github.com/guffzilla/pudconv/internal/model"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// Chunk tags. Tags are 4 ASCII bytes; short mnemonics are space-padded.
const (
	tagVersion   = "VER "
	tagDimension = "DIM "
	tagEra       = "ERA "
	tagEraExt    = "ERAX"
	tagOwner     = "OWNR"
	tagTerrain   = "MTXM"
	tagUnit      = "UNIT"
	tagName      = "NAME"
	tagDesc      = "DESC"
)

// unitRecordSize is the fixed wire size of one unit record:
// type u8, x u16, y u16, owner u8, health u8.
const unitRecordSize = 7

// headerSize is the fixed container header: magic, declared size, type tag.
const headerSize = 12

// acceptedMagics are the container tags the decoder recognizes. A buffer
// whose magic is not in this set is rejected outright; nothing else is.
var acceptedMagics = [][4]byte{
	{'T', 'Y', 'P', 'E'},
	{'F', 'O', 'R', 'M'},
}

// FormatError reports a buffer that is structurally not a map file.
// It is the only fatal decode failure.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "invalid map format: " + e.Reason
}

// Reader decodes a tagged-chunk map buffer into the internal model.
type Reader struct {
	c       *Cursor
	decoder *encoding.Decoder // Text decoder for name/description chunks
	diags   []string
	eraxSet bool
}

// NewReader creates a reader over the given buffer. The buffer is not
// copied and must stay immutable for the reader's lifetime.
func NewReader(data []byte) *Reader {
	return &Reader{
		c:       NewCursor(data),
		decoder: charmap.Windows1252.NewDecoder(),
	}
}

// Diagnostics returns non-fatal anomalies observed during the last
// Decode call, in encounter order.
func (r *Reader) Diagnostics() []string {
	return r.diags
}

// Decode walks the chunk container and returns the decoded model.
// Only a short buffer or an unrecognized magic tag fails; every other
// anomaly is recovered locally and recorded as a diagnostic.
func (r *Reader) Decode() (*model.MapModel, error) {
	m := model.NewMapModel()

	header, err := r.readHeader()
	if err != nil {
		return nil, err
	}
	m.Header = *header

	for r.c.Remaining() >= 8 {
		tag := string(r.c.ReadBytes(4))
		length := int(r.c.ReadU32())

		if length > r.c.Remaining() {
			r.diags = append(r.diags, fmt.Sprintf(
				"chunk %q declares %d bytes with only %d remaining, clamping",
				tag, length, r.c.Remaining()))
			length = r.c.Remaining()
		}

		payload := NewCursor(r.c.ReadBytes(length))
		r.dispatch(tag, payload, m)
	}

	// Dimensions and player count fall back to the documented defaults
	// when the relevant chunks never appeared.
	if m.Width == 0 {
		m.Width = 128
	}
	if m.Height == 0 {
		m.Height = 128
	}
	if m.MaxPlayers == 0 {
		m.MaxPlayers = 4
	}

	return m, nil
}

// readHeader validates the 12-byte container header.
func (r *Reader) readHeader() (*model.Header, error) {
	if r.c.Remaining() < headerSize {
		return nil, &FormatError{Reason: fmt.Sprintf("buffer too small: %d bytes", r.c.Remaining())}
	}

	var h model.Header
	copy(h.Magic[:], r.c.ReadBytes(4))
	h.DeclaredSize = r.c.ReadU32()
	copy(h.TypeTag[:], r.c.ReadBytes(4))

	for _, magic := range acceptedMagics {
		if h.Magic == magic {
			return &h, nil
		}
	}
	return nil, &FormatError{Reason: fmt.Sprintf("unrecognized magic tag %q", h.Magic[:])}
}

// dispatch decodes one chunk payload by tag. Unknown tags fall through
// untouched; the caller has already advanced past them.
func (r *Reader) dispatch(tag string, payload *Cursor, m *model.MapModel) {
	switch tag {
	case tagVersion:
		m.Version = payload.ReadU16()
	case tagDimension:
		r.readDimensions(payload, m)
	case tagEra:
		if !r.eraxSet {
			m.Tileset = uint8(payload.ReadU16())
		}
	case tagEraExt:
		m.Tileset = uint8(payload.ReadU16())
		r.eraxSet = true
	case tagOwner:
		m.MaxPlayers = countPlayerSlots(payload)
	case tagTerrain:
		r.readTerrain(payload, m)
	case tagUnit:
		r.readUnits(payload, m)
	case tagName:
		m.Name = r.decodeText(payload.ReadBytes(payload.Remaining()))
	case tagDesc:
		m.Description = r.decodeText(payload.ReadBytes(payload.Remaining()))
	}
}

// readDimensions applies a dimension chunk unless a terrain chunk
// already established the grid size.
func (r *Reader) readDimensions(payload *Cursor, m *model.MapModel) {
	w := payload.ReadU16()
	h := payload.ReadU16()
	if m.Width == 0 && m.Height == 0 {
		m.Width = w
		m.Height = h
	}
}

// readTerrain decodes the terrain chunk: two leading u16 grid dimensions
// followed by row-major u16 tile ids. The embedded dimensions serve as a
// fallback when no dimension chunk was seen.
func (r *Reader) readTerrain(payload *Cursor, m *model.MapModel) {
	w := payload.ReadU16()
	h := payload.ReadU16()
	if m.Width == 0 && m.Height == 0 {
		m.Width = w
		m.Height = h
	}

	want := int(w) * int(h)
	have := payload.Remaining() / 2
	if have < want {
		r.diags = append(r.diags, fmt.Sprintf(
			"terrain chunk carries %d of %d declared tiles", have, want))
		want = have
	}

	tiles := make([]uint16, want)
	for i := range tiles {
		tiles[i] = payload.ReadU16()
	}
	m.Tiles = tiles
}

// readUnits decodes fixed-size unit records. Records that would overrun
// the payload are dropped, matching the chunk clamping above. Goldmine
// and oil-patch units additionally yield resource records.
func (r *Reader) readUnits(payload *Cursor, m *model.MapModel) {
	count := payload.Remaining() / unitRecordSize
	for i := 0; i < count; i++ {
		u := model.UnitRecord{
			Type:   payload.ReadU8(),
			X:      payload.ReadU16(),
			Y:      payload.ReadU16(),
			Owner:  payload.ReadU8(),
			Health: payload.ReadU8(),
		}
		m.Units = append(m.Units, u)

		switch u.Type {
		case model.UnitGoldmine:
			m.Resources = append(m.Resources, model.ResourceRecord{
				Type:   model.ResourceGold,
				X:      u.X,
				Y:      u.Y,
				Amount: uint32(u.Health) * 2500,
			})
		case model.UnitOilPatch:
			m.Resources = append(m.Resources, model.ResourceRecord{
				Type:   model.ResourceOil,
				X:      u.X,
				Y:      u.Y,
				Amount: uint32(u.Health) * 2500,
			})
		}
	}
}

// countPlayerSlots counts active player slots in an ownership chunk.
// Slot values 0x04-0x07 mark human or computer controlled sides; maps
// always field at least two.
func countPlayerSlots(payload *Cursor) uint16 {
	n := payload.Remaining()
	if n > 8 {
		n = 8
	}
	var count uint16
	for i := 0; i < n; i++ {
		slot := payload.ReadU8()
		if slot >= 0x04 && slot <= 0x07 {
			count++
		}
	}
	if count < 2 {
		count = 2
	}
	return count
}

// decodeText converts a NUL-padded codepage string to UTF-8, falling
// back to the raw bytes if the decoder rejects them.
func (r *Reader) decodeText(data []byte) string {
	data = bytes.TrimRight(data, "\x00")
	decoded, err := r.decoder.Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
