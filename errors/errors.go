// Package errors collects the sentinel errors shared across the decoding
// pipeline, plus the glue that turns a metadata.Status into one of them.
package errors

import (
	"errors"

	"github.com/fournarakis/jabcode/metadata"
)

var (
	// ErrSymbolNotFound is returned when no finder pattern candidates survive
	// locating a symbol in the source image.
	ErrSymbolNotFound = errors.New("jabcode: symbol not found")

	// ErrVersionMismatch is returned when master metadata decodes cleanly but
	// the side size it encodes disagrees with the matrix's dimensions.
	ErrVersionMismatch = errors.New("jabcode: metadata version mismatch")

	// ErrMetadataDecodeFailed covers any non-fatal failure while reading
	// master or slave metadata (LDPC non-convergence, an invalid field).
	ErrMetadataDecodeFailed = errors.New("jabcode: metadata decode failed")

	// ErrFatal covers a metadata or payload failure severe enough that no
	// retry with different parameters would help (malformed matrix, a
	// corrupt data map).
	ErrFatal = errors.New("jabcode: fatal decode error")

	// ErrPayloadDecodeFailed is returned when payload LDPC decoding does not
	// converge or returns fewer information bits than expected.
	ErrPayloadDecodeFailed = errors.New("jabcode: payload decode failed")

	// ErrInvalidParameter indicates a caller-supplied parameter (palette,
	// color count, docking position) is out of range.
	ErrInvalidParameter = errors.New("jabcode: invalid parameter")

	// ErrUnsupportedColorNumber indicates a color count outside the set this
	// module knows how to classify (2, 4, 8, 16, 32, 64, 128, 256).
	ErrUnsupportedColorNumber = errors.New("jabcode: unsupported color number")
)

// FromStatus translates a metadata.Status into the matching sentinel error,
// or nil for metadata.StatusSuccess.
func FromStatus(s metadata.Status) error {
	switch s {
	case metadata.StatusSuccess:
		return nil
	case metadata.StatusVersionMismatch:
		return ErrVersionMismatch
	case metadata.StatusDecodeFailure:
		return ErrMetadataDecodeFailed
	case metadata.StatusFatal:
		return ErrFatal
	default:
		return ErrFatal
	}
}
