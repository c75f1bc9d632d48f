package report

import (
	"context"
	"fmt"

	"github.com/hupe1980/gsfs/blobstore"
	"github.com/hupe1980/gsfs/codec"
)

type options struct {
	codec       codec.Codec
	compression Compression
}

// Option configures Encode, Save, Decode and Load.
type Option func(*options)

// WithCodec sets the codec. Default: codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

// WithCompression sets the compression of written reports. Default: None.
// Reading ignores it and detects the compression instead.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

func newOptions(optFns []Option) options {
	o := options{codec: codec.Default}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// Name returns the conventional blob name of a run's report.
func Name(runID string, c Compression) string {
	return "gsfs-" + runID + c.Extension()
}

// Encode marshals and compresses r.
func Encode(r *Report, optFns ...Option) ([]byte, error) {
	o := newOptions(optFns)

	data, err := o.codec.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("report: encode: %w", err)
	}
	return compress(data, o.compression)
}

// Decode decompresses and unmarshals data.
func Decode(data []byte, optFns ...Option) (*Report, error) {
	o := newOptions(optFns)

	raw, err := decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidReport, err)
	}

	var r Report
	if err := o.codec.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidReport, err)
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Save writes r to store under name and returns the number of bytes
// written.
func Save(ctx context.Context, store blobstore.Store, name string, r *Report, optFns ...Option) (int64, error) {
	data, err := Encode(r, optFns...)
	if err != nil {
		return 0, err
	}
	if err := store.Put(ctx, name, data); err != nil {
		return 0, fmt.Errorf("report: save %s: %w", name, err)
	}
	return int64(len(data)), nil
}

// Load reads the report stored under name.
func Load(ctx context.Context, store blobstore.Store, name string, optFns ...Option) (*Report, error) {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, fmt.Errorf("report: load %s: %w", name, err)
	}
	return Decode(data, optFns...)
}
