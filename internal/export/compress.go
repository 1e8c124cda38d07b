package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// Codec selects the general-purpose compressor for the compressed
// projection.
type Codec string

const (
	CodecGzip Codec = "gzip"
	CodecLZ4  Codec = "lz4"
	CodecXZ   Codec = "xz"
)

// SizeReport accounts for one projection's size against its source.
type SizeReport struct {
	OriginalSize int     `json:"original_size"`
	EncodedSize  int     `json:"encoded_size"`
	Ratio        float64 `json:"ratio"`
}

// NewSizeReport computes the savings ratio (original-encoded)/original
// as a percentage. A zero-byte original reports a ratio of 0.
func NewSizeReport(original, encoded int) SizeReport {
	r := SizeReport{OriginalSize: original, EncodedSize: encoded}
	if original > 0 {
		r.Ratio = float64(original-encoded) / float64(original) * 100
	}
	return r
}

// Compress encodes data with the selected codec. The output carries no
// timestamps or file names, so identical inputs compress identically.
func Compress(data []byte, codec Codec) ([]byte, error) {
	var buf bytes.Buffer
	w, err := newCodecWriter(&buf, codec)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%s write: %w", codec, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("%s close: %w", codec, err)
	}
	return buf.Bytes(), nil
}

// Decompress reverses Compress for the given codec.
func Decompress(data []byte, codec Codec) ([]byte, error) {
	r, err := newCodecReader(bytes.NewReader(data), codec)
	if err != nil {
		return nil, fmt.Errorf("%s open: %w", codec, err)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s read: %w", codec, err)
	}
	return out, nil
}

func newCodecWriter(buf *bytes.Buffer, codec Codec) (io.WriteCloser, error) {
	switch codec {
	case CodecGzip:
		return gzip.NewWriter(buf), nil
	case CodecLZ4:
		return lz4.NewWriter(buf), nil
	case CodecXZ:
		w, err := xz.NewWriter(buf)
		if err != nil {
			return nil, fmt.Errorf("xz writer: %w", err)
		}
		return w, nil
	default:
		return nil, fmt.Errorf("unknown codec: %s", codec)
	}
}

func newCodecReader(r io.Reader, codec Codec) (io.Reader, error) {
	switch codec {
	case CodecGzip:
		return gzip.NewReader(r)
	case CodecLZ4:
		return lz4.NewReader(r), nil
	case CodecXZ:
		return xz.NewReader(r)
	}
	return nil, fmt.Errorf("unknown codec: %s", codec)
}
