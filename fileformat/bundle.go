// Package fileformat implements the format-agnostic dispatch layer of
// spec.md §4.6: a Bundle maps a detected format tag to a transform
// builder, and dispatch packs/unpacks the embeddable header around
// whichever kernel package (bc1/bc2/bc3) the format tag selects.
package fileformat

import (
	"github.com/dxtlt/dxt-lossless-transform-go/bc1"
	"github.com/dxtlt/dxt-lossless-transform-go/bc2"
	"github.com/dxtlt/dxt-lossless-transform-go/bc3"
	"github.com/dxtlt/dxt-lossless-transform-go/dxterrors"
	"github.com/dxtlt/dxt-lossless-transform-go/header"
)

// Builder is implemented by ManualBuilder and AutoBuilder per format: it
// runs a forward transform and reports the settings used, so the caller
// can embed them in a TransformHeader.
type Builder interface {
	// Transform runs the builder's configured transform over src into
	// dst, returning the TransformHeader to embed.
	Transform(src, dst []byte) (header.TransformHeader, error)
}

// ManualBuilder carries a fixed settings value for one format.
type ManualBuilder struct {
	Format      header.FormatTag
	BC1         bc1.Settings
	BC2         bc2.Settings
	BC3         bc3.Settings
}

func (b ManualBuilder) Transform(src, dst []byte) (header.TransformHeader, error) {
	switch b.Format {
	case header.FormatBC1:
		if err := bc1.Transform(b.BC1, src, dst); err != nil {
			return header.TransformHeader{}, err
		}
		return header.PackBC1(b.BC1), nil
	case header.FormatBC2:
		if err := bc2.Transform(b.BC2, src, dst); err != nil {
			return header.TransformHeader{}, err
		}
		return header.PackBC2(b.BC2), nil
	case header.FormatBC3:
		if err := bc3.Transform(b.BC3, src, dst); err != nil {
			return header.TransformHeader{}, err
		}
		return header.PackBC3(b.BC3), nil
	default:
		return header.TransformHeader{}, dxterrors.ErrUnsupportedFormat
	}
}

// AutoBuilder carries an estimator and runs the brute-force search for one
// format.
type AutoBuilder struct {
	Format header.FormatTag
	BC1    bc1.EstimateSettings
	BC2    bc2.EstimateSettings
	BC3    bc3.EstimateSettings
}

func (b AutoBuilder) Transform(src, dst []byte) (header.TransformHeader, error) {
	switch b.Format {
	case header.FormatBC1:
		s, err := bc1.TransformAuto(b.BC1, src, dst)
		if err != nil {
			return header.TransformHeader{}, err
		}
		return header.PackBC1(s), nil
	case header.FormatBC2:
		s, err := bc2.TransformAuto(b.BC2, src, dst)
		if err != nil {
			return header.TransformHeader{}, err
		}
		return header.PackBC2(s), nil
	case header.FormatBC3:
		s, err := bc3.TransformAuto(b.BC3, src, dst)
		if err != nil {
			return header.TransformHeader{}, err
		}
		return header.PackBC3(s), nil
	default:
		return header.TransformHeader{}, dxterrors.ErrUnsupportedFormat
	}
}

// Bundle maps a format tag to the builder that knows how to transform it.
// Bundles are deeply immutable once constructed: callers build one with
// NewBundle and With* and never mutate it concurrently with a dispatch
// call.
type Bundle struct {
	builders map[header.FormatTag]Builder
}

// NewBundle constructs an empty Bundle.
func NewBundle() *Bundle {
	return &Bundle{builders: make(map[header.FormatTag]Builder)}
}

// With registers builder for format, returning the Bundle for chaining.
func (b *Bundle) With(format header.FormatTag, builder Builder) *Bundle {
	b.builders[format] = builder
	return b
}

// DispatchTransform selects the builder registered for format, validates
// that dst is large enough, runs it, and returns the resulting header.
func (b *Bundle) DispatchTransform(format header.FormatTag, src, dst []byte) (header.TransformHeader, error) {
	builder, ok := b.builders[format]
	if !ok {
		return header.TransformHeader{}, dxterrors.ErrNoBuilderForFormat
	}
	if len(dst) < len(src) {
		return header.TransformHeader{}, dxterrors.NewOutputBufferTooSmall(len(src), len(dst))
	}
	return builder.Transform(src, dst)
}

// DispatchUntransform reads h's format tag and payload, validates the
// block-size alignment for that format, and runs the matching inverse
// kernel. src and dst may alias the same array.
func (b *Bundle) DispatchUntransform(h header.TransformHeader, src, dst []byte) error {
	switch h.Format {
	case header.FormatBC1:
		if len(src)%bc1.BlockSize != 0 {
			return dxterrors.NewInvalidDataAlignment(len(src), bc1.BlockSize)
		}
		return bc1.Untransform(h.BC1Settings, src, dst)
	case header.FormatBC2:
		if len(src)%bc2.BlockSize != 0 {
			return dxterrors.NewInvalidDataAlignment(len(src), bc2.BlockSize)
		}
		return bc2.Untransform(h.BC2Settings, src, dst)
	case header.FormatBC3:
		if len(src)%bc3.BlockSize != 0 {
			return dxterrors.NewInvalidDataAlignment(len(src), bc3.BlockSize)
		}
		return bc3.Untransform(h.BC3Settings, src, dst)
	default:
		return dxterrors.ErrUnsupportedFormat
	}
}
