package psmio

import "github.com/hupe1980/binder/codec"

// Option configures encoding and decoding.
type Option func(*options)

type options struct {
	codec codec.Codec
}

// WithCodec sets the JSON codec. Defaults to codec.Default.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		if c != nil {
			o.codec = c
		}
	}
}

func applyOptions(optFns []Option) options {
	opts := options{codec: codec.Default}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}
