package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/gsfs/policy"
)

// Compression selects how an encoded report is compressed.
type Compression uint8

const (
	// None stores the encoded report as is.
	None Compression = iota
	// LZ4 uses the lz4 frame format (fast).
	LZ4
	// Zstd uses zstd (better ratio).
	Zstd
)

var (
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// ParseCompression resolves "none", "lz4" or "zstd". The empty string is
// None.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd", "zst":
		return Zstd, nil
	default:
		return None, &policy.ConfigError{Field: "compression", Value: s, Reason: "expected none, lz4 or zstd"}
	}
}

func (c Compression) String() string {
	switch c {
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return "none"
	}
}

// Extension returns the file name suffix of a report with this compression.
func (c Compression) Extension() string {
	switch c {
	case LZ4:
		return ".json.lz4"
	case Zstd:
		return ".json.zst"
	default:
		return ".json"
	}
}

// zstd encoder/decoder pools
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func compress(data []byte, c Compression) ([]byte, error) {
	switch c {
	case None:
		return data, nil
	case Zstd:
		enc := getZstdEncoder()
		defer zstdEncoderPool.Put(enc)
		return enc.EncodeAll(data, nil), nil
	case LZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("report: unknown compression %d", c)
	}
}

// detect reports the compression of data from its magic bytes.
func detect(data []byte) Compression {
	switch {
	case bytes.HasPrefix(data, zstdMagic):
		return Zstd
	case bytes.HasPrefix(data, lz4Magic):
		return LZ4
	default:
		return None
	}
}

func decompress(data []byte) ([]byte, error) {
	switch detect(data) {
	case Zstd:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		return dec.DecodeAll(data, nil)
	case LZ4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	default:
		return data, nil
	}
}
